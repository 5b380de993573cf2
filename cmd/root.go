// Package cmd provides the entrypoint for the hookctl cli.
package cmd

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/helpers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfigFile = "hookctl.yaml"

var (
	configFilePath string
	logger         = helpers.NewNoopLogger()
)

// New returns the root command for hookctl.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hookctl",
		Short:        "Configure and receive webhooks of a remote messaging API instance",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger = helpers.NewLogger(cmd.ErrOrStderr(), config.Global.Logging.Verbosity, config.Global.Logging.CallerTrace).
				With("command", cmd.Name())
		},
	}

	// Root command flags
	configFilePath = resolveConfigPath(os.Args[1:])
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", configFilePath, "[HOOKCTL_CONFIG] path to the configuration file")

	// Configuration loading & defaults
	if err := errors.Join(
		config.SetDefaults(),
		config.LoadFromFile(configFilePath),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdPatch(),
		cmdWebhook(),
		cmdService(),
		cmdLambda(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	v = viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
}

// resolveConfigPath finds the configuration file before flags are parsed, since the file seeds the flag defaults.
func resolveConfigPath(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	if path, found := os.LookupEnv("HOOKCTL_CONFIG"); found {
		return path
	}
	return defaultConfigFile
}

// fail logs err and returns it, so cobra exits non-zero.
func fail(msg string, err error, attrs ...any) error {
	logger.Error(msg, append(attrs, slog.Any("error", err))...)
	return err
}
