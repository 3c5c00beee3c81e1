package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/seed"
	"github.com/sakif/starwars-api/internal/server"
	"github.com/sakif/starwars-api/internal/service"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	srv, err := server.New(a.cfg, a.logger)
	if err != nil {
		a.logger.Error("failed to create server", slog.String("error", err.Error()))
		return err
	}

	// Start blocks until shutdown and closes the store on the way out.
	if err := srv.Start(); err != nil {
		a.logger.Error("server error", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Opening a store applies pending migrations.
			store, err := server.OpenStore(a.cfg.Database, a.logger)
			if err != nil {
				a.logger.Error("migration failed", slog.String("error", err.Error()))
				return err
			}
			defer store.Close()

			a.logger.Info("schema is up to date")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample users, characters, planets and vehicles into an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := server.OpenStore(a.cfg.Database, a.logger)
			if err != nil {
				a.logger.Error("failed to open store", slog.String("error", err.Error()))
				return err
			}
			defer store.Close()

			res, err := seed.Run(ctx, store, auth.NewPasswordService(a.cfg.Auth.BcryptCost), a.logger)
			if err != nil {
				a.logger.Error("seeding failed", slog.String("error", err.Error()))
				return err
			}
			if res.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "store already has users; nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d characters, %d planets, %d vehicles\n",
				res.Users, res.Characters, res.Planets, res.Vehicles)
			return nil
		},
	}
}

func newCreateUserCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user with a bcrypt-hashed password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := server.OpenStore(a.cfg.Database, a.logger)
			if err != nil {
				a.logger.Error("failed to open store", slog.String("error", err.Error()))
				return err
			}
			defer store.Close()

			users := service.NewUserService(store, auth.NewPasswordService(a.cfg.Auth.BcryptCost), a.logger)
			user, err := users.Create(cmd.Context(), email, password)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s>\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "plaintext password, stored as a bcrypt hash (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
