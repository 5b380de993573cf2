package cmd

import (
	"time"

	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/helpers"
)

var apiEnvMapString = map[*string]boundEnvVar[string]{
	&config.API.BaseURL: {
		Name:        "api-url",
		Description: "The base URL of the remote API",
		Env:         helpers.Ptr("API_URL"),
	},
	&config.API.Token: {
		Name:        "api-token",
		Description: "The instance identifier sent in the token header",
		Short:       helpers.Ptr("T"),
		Env:         helpers.Ptr("API_TOKEN"),
	},
	&config.API.AuthMode: {
		Name:        "auth-mode",
		Description: "Instance token provider. Supported values are 'token' and 'ssm'",
		Short:       helpers.Ptr("A"),
		Env:         helpers.Ptr("API_AUTH_MODE"),
	},
	&config.API.SSMKey: {
		Name:        "api-token-ssm-key",
		Description: "The SSM parameter holding the instance token when --auth-mode=ssm",
		Env:         helpers.Ptr("API_TOKEN_SSM_KEY"),
	},
}

var apiEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.API.Timeout: {
		Name:        "api-timeout",
		Description: "The timeout of a single API call",
		Env:         helpers.Ptr("API_TIMEOUT"),
	},
}

var webhookEnvMapString = map[*string]boundEnvVar[string]{
	&config.Webhook.URL: {
		Name:        "url",
		Description: "The callback URL to register",
		Short:       helpers.Ptr("u"),
		Env:         helpers.Ptr("WEBHOOK_URL"),
	},
}

var webhookEnvMapStringSlice = map[*[]string]boundEnvVar[[]string]{
	&config.Webhook.Events: {
		Name:        "events",
		Description: "The event types to subscribe to ('All' for every type)",
		Short:       helpers.Ptr("e"),
		Env:         helpers.Ptr("WEBHOOK_EVENTS"),
	},
}

var webhookEnvMapBool = map[*bool]boundEnvVar[bool]{
	&config.Webhook.Active: {
		Name:        "active",
		Description: "Enable delivery of callbacks",
		Env:         helpers.Ptr("WEBHOOK_ACTIVE"),
	},
}
