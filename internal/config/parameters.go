// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

const (
	// AuthModeToken reads the instance token from flags or the environment.
	AuthModeToken = "token"
	// AuthModeSSM reads the instance token from AWS SSM Parameter Store.
	AuthModeSSM = "ssm"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// API is a struct that contains the configuration of the remote messaging API.
	API api
	// Webhook is a struct that contains the webhook settings pushed to the remote API.
	Webhook webhook
	// Patch is a struct that contains the configuration for the patch command.
	Patch patch
	// Receiver is a struct that contains the configuration for the callback receiver.
	Receiver receiver
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
)

type global struct {
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type api struct {
	// BaseURL is the root of the remote API. The webhook endpoint lives at <BaseURL>/webhook.
	BaseURL string `yaml:"baseURL,omitempty" default:"http://localhost:8080"`
	// AuthMode selects where the instance token comes from. Supported values are 'token' and 'ssm'.
	AuthMode string `yaml:"authMode,omitempty" default:"token"`
	// Token is the instance identifier sent in the `token` header.
	Token string `yaml:"token,omitempty"`
	// SSMKey is the SSM parameter holding the token when AuthMode is 'ssm'.
	SSMKey string `yaml:"ssmKey,omitempty" default:"hookctl-api-token"`
	// Timeout bounds a single API call.
	Timeout time.Duration `yaml:"timeout,omitempty" default:"10s"`
}

type webhook struct {
	// URL is the callback URL registered with the remote API.
	URL string `yaml:"url,omitempty" default:"http://localhost:3000/"`
	// Events is the list of event names the webhook subscribes to.
	Events []string `yaml:"events,omitempty" default:"[\"All\"]"`
	// Active enables or disables delivery on the remote side.
	Active bool `yaml:"active,omitempty" default:"true"`
}

type patch struct {
	// RecipeFile is an optional YAML file declaring additional recipes.
	RecipeFile string `yaml:"recipeFile,omitempty"`
	// Name is the recipe to run.
	Name string `yaml:"name,omitempty" default:"navitem"`
	// File overrides the path of the file the recipe repairs.
	File string `yaml:"file,omitempty"`
	// DryRun computes the result without writing it back.
	DryRun bool `yaml:"dryRun,omitempty"`
}

type receiver struct {
	// Events is the list of callback types the receiver accepts. 'All' accepts every type.
	Events []string `yaml:"events,omitempty" default:"[\"All\"]"`
	// SignatureHeader is the header carrying the HMAC-SHA256 callback signature.
	SignatureHeader string `yaml:"signatureHeader,omitempty" default:"X-Hub-Signature-256"`
	// Secret enables signature validation when not empty.
	Secret string `yaml:"secret,omitempty"`
	// S3 is a struct that contains the configuration for archiving callbacks to S3.
	S3 struct {
		Upload struct {
			BucketName string `yaml:"bucketName,omitempty"`
			Enabled    bool   `yaml:"enabled,omitempty"`
		} `yaml:"upload,omitempty"`
	} `yaml:"s3,omitempty"`
}

type service struct {
	Path        string        `yaml:"path,omitempty" default:"/"`
	MetricsPath string        `yaml:"metricsPath,omitempty" default:"/metrics"`
	Addr        string        `yaml:"addr,omitempty"`
	Port        string        `yaml:"port,omitempty" default:"3000"`
	Timeout     time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

// NormalizeAuthMode returns mode in the canonical form of the AuthMode constants.
func NormalizeAuthMode(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&API),
		defaults.Set(&Webhook),
		defaults.Set(&Patch),
		defaults.Set(&Receiver),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
	)
}

// Reset restores every section to its defaults.
func Reset() error {
	Global = global{}
	API = api{}
	Webhook = webhook{}
	Patch = patch{}
	Receiver = receiver{}
	Service = service{}
	Lambda = lambda{}
	return SetDefaults()
}

// LoadFromFile overlays the configuration file on the current values. Keys absent from the
// file keep their value, so defaults must be set before loading.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global   global   `yaml:"global,omitempty"`
		API      api      `yaml:"api,omitempty"`
		Webhook  webhook  `yaml:"webhook,omitempty"`
		Patch    patch    `yaml:"patch,omitempty"`
		Receiver receiver `yaml:"receiver,omitempty"`
		Service  service  `yaml:"service,omitempty"`
		Lambda   lambda   `yaml:"lambda,omitempty"`
	}
	a := all{
		Global:   Global,
		API:      API,
		Webhook:  Webhook,
		Patch:    Patch,
		Receiver: Receiver,
		Service:  Service,
		Lambda:   Lambda,
	}
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	API = a.API
	Webhook = a.Webhook
	Patch = a.Patch
	Receiver = a.Receiver
	Service = a.Service
	Lambda = a.Lambda

	return nil
}
