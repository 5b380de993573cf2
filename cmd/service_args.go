package cmd

import (
	"time"

	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/helpers"
)

var svcEnvMapString = map[*string]boundEnvVar[string]{
	&config.Service.Addr: {
		Name:        "service-host-addr",
		Description: "The address to serve the service on (default all interfaces in dual-stack mode)",
		Short:       helpers.Ptr("H"),
	},
	&config.Service.Port: {
		Name:        "service-host-port",
		Description: "The port to serve the service on",
		Short:       helpers.Ptr("p"),
		Env:         helpers.Ptr("PORT"),
	},
	&config.Service.Path: {
		Name:        "service-host-path",
		Description: "The path to receive callbacks on",
		Short:       helpers.Ptr("P"),
	},
	&config.Service.MetricsPath: {
		Name:        "service-metrics-path",
		Description: "The path to expose Prometheus metrics on",
	},
}

var svcEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Service.Timeout: {
		Name:        "service-io-timeout",
		Description: "The timeout for I/O operations",
		Short:       helpers.Ptr("t"),
	},
}

var lambdaEnvMapString = map[*string]boundEnvVar[string]{
	&config.Lambda.PayloadType: {
		Name:        "lambda-payload-type",
		Description: "The payload type to expect when running in Lambda mode. Supported values are 'api-gateway-v1', 'api-gateway-v2' and 'lambda-url'",
	},
}

var receiverEnvMapString = map[*string]boundEnvVar[string]{
	&config.Receiver.Secret: {
		Name:        "webhook-secret",
		Description: "The secret used to validate callback signatures. If not specified, no validation is performed",
		Env:         helpers.Ptr("WEBHOOK_SECRET"),
	},
	&config.Receiver.SignatureHeader: {
		Name:        "webhook-signature-header",
		Description: "The header carrying the sha256=<hex> callback signature",
	},
	&config.Receiver.S3.Upload.BucketName: {
		Name:        "callback-s3-upload-bucket",
		Description: "The S3 bucket to archive accepted callbacks to",
		Env:         helpers.Ptr("CALLBACK_S3_BUCKET"),
	},
}

var receiverEnvMapStringSlice = map[*[]string]boundEnvVar[[]string]{
	&config.Receiver.Events: {
		Name:        "callback-events",
		Description: "The callback types to accept ('All' for every type)",
	},
}

var receiverEnvMapBool = map[*bool]boundEnvVar[bool]{
	&config.Receiver.S3.Upload.Enabled: {
		Name:        "callback-s3-upload",
		Description: "Enable S3 archiving of accepted callbacks",
		Env:         helpers.Ptr("CALLBACK_S3_UPLOAD"),
	},
}
