// Package main is the starwars-api command.
//
//	starwars-api [serve]                 run the HTTP API (default)
//	starwars-api migrate                 apply the schema and exit
//	starwars-api seed                    load sample data into an empty store
//	starwars-api create-user --email --password
//
// Everything else lives under internal/; main only reads configuration,
// builds the logger and hands off.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/starwars-api/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra has already printed usage errors; runtime failures are logged
		// by the command that hit them.
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configFile string
	dotenvFile string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "starwars-api",
		Short:         "Star Wars characters, planets, vehicles and user favorites over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.dotenvFile, a.configFile)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cfg.Log)
			slog.SetDefault(a.logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", config.DefaultFile, "path to a JSON or YAML config file")
	root.PersistentFlags().StringVar(&a.dotenvFile, "env-file", ".env", "path to a .env file loaded before the environment")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newCreateUserCmd(a),
	)
	return root
}

// newLogger builds the slog logger from config. Text output is for humans
// at a terminal, json for log shippers.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
