// Package patch repairs a known malformed source file by splicing a closing block after an anchor,
// or by falling back to literal substring replacements.
package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

// Strategy describes how a recipe changed the content.
type Strategy string

const (
	// StrategySplice truncates after the anchor and appends the replacement block.
	StrategySplice Strategy = "splice"
	// StrategyFallback applies the literal fallback replacements.
	StrategyFallback Strategy = "fallback"
	// StrategyNone means nothing was applied.
	StrategyNone Strategy = "none"
)

var (
	// ErrMissingMarker is returned when the detection pattern matches but a marker is absent.
	ErrMissingMarker = errors.New("marker not found")
	// ErrNothingToPatch is returned when neither the detection pattern nor the fallback trigger is present.
	ErrNothingToPatch = errors.New("nothing to patch")
)

// Replacement is one literal substring replacement.
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Recipe describes the repair of a single file.
type Recipe struct {
	Name            string         `yaml:"name"`
	Path            string         `yaml:"path"`
	Detect          *regexp.Regexp `yaml:"-"`
	SplitMarker     string         `yaml:"splitMarker"`
	AnchorMarker    string         `yaml:"anchorMarker"`
	Replacement     string         `yaml:"replacement"`
	FallbackTrigger string         `yaml:"fallbackTrigger"`
	Fallback        []Replacement  `yaml:"fallback"`
}

// Apply transforms content. It never touches the filesystem.
func (r *Recipe) Apply(content string) (string, Strategy, error) {
	if r.Detect != nil && r.Detect.MatchString(content) {
		split := strings.Index(content, r.SplitMarker)
		if r.SplitMarker == "" || split < 0 {
			return content, StrategyNone, fmt.Errorf("%w: %q", ErrMissingMarker, r.SplitMarker)
		}
		head := content[:split]
		anchor := strings.LastIndex(head, r.AnchorMarker)
		if r.AnchorMarker == "" || anchor < 0 {
			return content, StrategyNone, fmt.Errorf("%w: %q", ErrMissingMarker, r.AnchorMarker)
		}
		return head[:anchor+len(r.AnchorMarker)] + r.Replacement, StrategySplice, nil
	}

	if r.FallbackTrigger != "" && strings.Contains(content, r.FallbackTrigger) {
		for _, rep := range r.Fallback {
			content = strings.ReplaceAll(content, rep.Old, rep.New)
		}
		return content, StrategyFallback, nil
	}

	return content, StrategyNone, ErrNothingToPatch
}

type recipeFile struct {
	Recipes []struct {
		Recipe `yaml:",inline"`
		Detect string `yaml:"detect"`
	} `yaml:"recipes"`
}

// LoadRecipes reads additional recipes from a YAML file. Unset markers inherit the built-in defaults.
func LoadRecipes(path string) (map[string]*Recipe, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read recipe file %s", path)
	}
	var rf recipeFile
	if err = yaml.Unmarshal(content, &rf); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal recipe file %s", path)
	}

	recipes := make(map[string]*Recipe, len(rf.Recipes))
	for i, entry := range rf.Recipes {
		r := entry.Recipe
		if r.Name == "" {
			return nil, errors.Errorf("recipe #%d in %s has no name", i, path)
		}
		if entry.Detect != "" {
			if r.Detect, err = regexp.Compile(entry.Detect); err != nil {
				return nil, errors.Wrapf(err, "recipe %s: invalid detect pattern", r.Name)
			}
		}
		if r.SplitMarker == "" {
			r.SplitMarker = DefaultSplitMarker
		}
		if r.AnchorMarker == "" {
			r.AnchorMarker = DefaultAnchorMarker
		}
		recipes[r.Name] = &r
	}
	return recipes, nil
}
