package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ravosoft/photohub/backend/internal/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	root := &cobra.Command{
		Use:           "photohub",
		Short:         "PhotoHub API backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(serve, &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database schema and run seeders",
		RunE:  runMigrate,
	})
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, cleanup, err := server.InitializeApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		return err
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run server: %v\n", err)
		return err
	}
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	migrator, cleanup, err := server.InitializeMigrator(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize migrator: %v\n", err)
		return err
	}
	defer cleanup()

	if err := migrator.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		return err
	}
	return nil
}
