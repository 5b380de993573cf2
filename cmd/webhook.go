package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/controllers/aws"
	"github.com/isometry/hookctl/internal/credentials"
	"github.com/isometry/hookctl/internal/models"
	"github.com/isometry/hookctl/internal/webhook"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdWebhook() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhook",
		Aliases: []string{"wh"},
		Short:   "Inspect or update the webhook of the remote instance",
	}
	bindEnvMap(cmd, apiEnvMapString)
	bindEnvMap(cmd, apiEnvMapDuration)

	cmd.AddCommand(cmdWebhookSet(), cmdWebhookGet())
	return cmd
}

func cmdWebhookSet() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the webhook URL and subscribed events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newWebhookClient(cmd)
			if err != nil {
				return fail("creating webhook client", err)
			}
			settings := models.NewWebhookSettings(config.Webhook.URL, config.Webhook.Events, config.Webhook.Active)
			logger.Info("updating webhook...", slog.Any("settings", settings))

			resp, err := client.SetWebhook(cmd.Context(), settings)
			if err != nil {
				return fail("updating webhook", err)
			}
			logger.Info("webhook updated", slog.Int("status", resp.StatusCode))
			return printBody(cmd.OutOrStdout(), resp.Body)
		},
	}
	bindEnvMap(cmd, webhookEnvMapString)
	bindEnvMap(cmd, webhookEnvMapStringSlice)
	bindEnvMap(cmd, webhookEnvMapBool)
	return cmd
}

func cmdWebhookGet() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current webhook configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newWebhookClient(cmd)
			if err != nil {
				return fail("creating webhook client", err)
			}
			resp, err := client.GetWebhook(cmd.Context())
			if err != nil {
				return fail("fetching webhook", err)
			}
			return printBody(cmd.OutOrStdout(), resp.Body)
		},
	}
}

func newWebhookClient(cmd *cobra.Command) (*webhook.Client, error) {
	opts := []credentials.Option{
		credentials.WithAuthMode(config.API.AuthMode),
		credentials.WithToken(config.API.Token),
		credentials.WithSSMKey(config.API.SSMKey),
		credentials.WithLogger(logger.With("component", "credentials")),
	}
	if config.NormalizeAuthMode(config.API.AuthMode) == config.AuthModeSSM {
		awsCtl, err := aws.NewController(
			aws.WithContext(cmd.Context()),
			aws.WithLogger(logger.With("component", "aws-controller")))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
		opts = append(opts, credentials.WithSecrets(awsCtl))
	}

	token, err := credentials.NewResolver(opts...).Token()
	if err != nil {
		return nil, err
	}
	return webhook.NewClient(
		webhook.WithBaseURL(config.API.BaseURL),
		webhook.WithToken(token),
		webhook.WithTimeout(config.API.Timeout),
		webhook.WithLogger(logger.With("component", "webhook-client")))
}

// printBody writes body indented when it is JSON, verbatim otherwise.
func printBody(w io.Writer, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		buf.Reset()
		buf.Write(body)
	}
	if buf.Len() == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
