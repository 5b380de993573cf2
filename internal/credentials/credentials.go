// Package credentials resolves the instance token sent to the remote API.
package credentials

import (
	"log/slog"
	"strings"

	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/helpers"
	"github.com/pkg/errors"
)

// SecretGetter fetches a secret by key.
type SecretGetter interface {
	GetSecret(key string, encrypted bool) (string, error)
}

// Resolver returns the instance token according to the configured auth mode.
type Resolver struct {
	authMode string
	token    string
	ssmKey   string
	secrets  SecretGetter
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAuthMode sets the authentication mode. Supported values are 'token' and 'ssm'.
func WithAuthMode(mode string) Option {
	return func(r *Resolver) {
		r.authMode = mode
	}
}

// WithToken sets the static token used in 'token' mode.
func WithToken(token string) Option {
	return func(r *Resolver) {
		r.token = token
	}
}

// WithSSMKey sets the parameter read in 'ssm' mode.
func WithSSMKey(key string) Option {
	return func(r *Resolver) {
		r.ssmKey = key
	}
}

// WithSecrets sets the secret store used in 'ssm' mode.
func WithSecrets(secrets SecretGetter) Option {
	return func(r *Resolver) {
		r.secrets = secrets
	}
}

// WithLogger sets the logger instance for the resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a new Resolver.
func NewResolver(opts ...Option) *Resolver {
	_inst := &Resolver{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Token returns the instance token.
func (r *Resolver) Token() (string, error) {
	switch config.NormalizeAuthMode(r.authMode) {
	case "", config.AuthModeToken:
		if r.token == "" {
			return "", errors.New("missing [API_TOKEN]")
		}
		return r.token, nil
	case config.AuthModeSSM:
		if r.secrets == nil {
			return "", errors.New("no secret store configured for ssm auth mode")
		}
		r.logger.Debug("retrieving token from SSM...", slog.String("key", r.ssmKey))
		token, err := r.secrets.GetSecret(r.ssmKey, true)
		if err != nil {
			return "", errors.Wrap(err, "failed to fetch token from SSM")
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return "", errors.Errorf("SSM parameter %s is empty", r.ssmKey)
		}
		return token, nil
	default:
		return "", errors.Errorf("unsupported auth mode: %s", r.authMode)
	}
}
