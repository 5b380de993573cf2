package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/controllers/aws"
	"github.com/isometry/hookctl/internal/metrics"
	"github.com/isometry/hookctl/internal/receiver"
	"github.com/isometry/hookctl/internal/runtime"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "server"},
		Short:   "Receive callbacks delivered to the registered webhook",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger = logger.With("mode", "service")
			logger.Info("Spawning...")

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			rtm, err := newRuntime(cmd.Context(), metrics.New(reg))
			if err != nil {
				return fail("creating runtime", err)
			}

			logger.Debug("Creating HTTP server...")
			s := &http.Server{
				Handler:      newServiceHandler(reg, rtm),
				Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
				WriteTimeout: config.Service.Timeout,
				ReadTimeout:  config.Service.Timeout,
				IdleTimeout:  config.Service.Timeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				logger.Info("Shutting down...")
				_ = s.Shutdown(context.Background())
			}()

			logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
			if err = s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fail("serving", err)
			}
			return nil
		},
	}

	bindEnvMap(cmd, svcEnvMapString)
	bindEnvMap(cmd, svcEnvMapDuration)
	bindReceiverFlags(cmd)
	return cmd
}

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Receive callbacks behind API Gateway or a Lambda function URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger = logger.With("mode", "lambda")
			rtm, err := newRuntime(cmd.Context(), metrics.New(prometheus.NewRegistry()))
			if err != nil {
				return fail("creating runtime", err)
			}

			logger.Info("lambda starting...", slog.String("payloadType", config.Lambda.PayloadType))
			lambda.StartWithOptions(rtm.Lambda,
				lambda.WithContext(cmd.Context()))
			return nil
		},
	}

	bindEnvMap(cmd, lambdaEnvMapString)
	bindReceiverFlags(cmd)
	return cmd
}

// newServiceHandler routes callbacks to rtm and exposes the collectors of reg.
func newServiceHandler(reg *prometheus.Registry, rtm *runtime.Runtime) http.Handler {
	h := http.NewServeMux()
	h.Handle(config.Service.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	h.HandleFunc(config.Service.Path, rtm.ServeHTTP)
	return h
}

func bindReceiverFlags(cmd *cobra.Command) {
	bindEnvMap(cmd, receiverEnvMapString)
	bindEnvMap(cmd, receiverEnvMapStringSlice)
	bindEnvMap(cmd, receiverEnvMapBool)
}

func newRuntime(ctx context.Context, m *metrics.Metrics) (*runtime.Runtime, error) {
	opts := []receiver.Option{
		receiver.WithLogger(logger.With("component", "receiver")),
		receiver.WithEvents(config.Receiver.Events),
		receiver.WithWebhookSecret(config.Receiver.Secret),
		receiver.WithSignatureHeader(config.Receiver.SignatureHeader),
		receiver.WithMetrics(m),
	}

	if upload := config.Receiver.S3.Upload; upload.Enabled {
		if upload.BucketName == "" {
			return nil, pkgerrors.New("S3 upload enabled without a bucket name")
		}
		logger.Debug("Creating AWS controller...")
		awsCtl, err := aws.NewController(
			aws.WithContext(ctx),
			aws.WithLogger(logger.With("component", "aws-controller")))
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to create AWS controller")
		}
		opts = append(opts, receiver.WithArchiver(awsCtl, upload.BucketName))
	}

	logger.Debug("Creating runtime...")
	return runtime.NewRuntime(receiver.NewHandler(opts...),
		runtime.WithLambdaPayloadType(config.Lambda.PayloadType),
		runtime.WithLogger(logger.With("component", "runtime"))), nil
}
