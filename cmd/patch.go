package cmd

import (
	"fmt"
	"log/slog"

	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/patch"
	"github.com/spf13/cobra"
)

var patchRoot string

func cmdPatch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Repair a known malformed source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recipe, err := selectRecipe()
			if err != nil {
				return fail("selecting recipe", err)
			}
			if config.Patch.File != "" {
				recipe.Path = config.Patch.File
			}

			p := patch.NewPatcher(
				patch.WithRoot(patchRoot),
				patch.WithDryRun(config.Patch.DryRun),
				patch.WithLogger(logger.With("component", "patcher")))
			result, err := p.Run(cmd.Context(), recipe)
			if err != nil {
				return fail("patching failed", err, slog.String("recipe", recipe.Name), slog.String("path", recipe.Path))
			}

			logger.Info("patch complete", slog.Any("result", result))
			if config.Patch.DryRun {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), result.Content)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", result.Path, patchSummary(result), result.Strategy)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&patchRoot, "root", "C", ".", "directory relative recipe paths are resolved against")
	bindEnvMap(cmd, patchEnvMapString)
	bindEnvMap(cmd, patchEnvMapBool)
	return cmd
}

func selectRecipe() (*patch.Recipe, error) {
	recipes := map[string]*patch.Recipe{}
	builtin := patch.NavItemRecipe()
	recipes[builtin.Name] = builtin

	if config.Patch.RecipeFile != "" {
		loaded, err := patch.LoadRecipes(config.Patch.RecipeFile)
		if err != nil {
			return nil, err
		}
		for name, r := range loaded {
			recipes[name] = r
		}
	}

	recipe, found := recipes[config.Patch.Name]
	if !found {
		return nil, fmt.Errorf("unknown recipe: %s", config.Patch.Name)
	}
	return recipe, nil
}

func patchSummary(result *patch.Result) string {
	if result.Changed {
		return "patched"
	}
	return "unchanged"
}
