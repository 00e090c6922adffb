package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kbaudit/internal/app"
	"kbaudit/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "kbaudit",
	Short: "KB maintenance toolkit for the insurance chatbot",
	Long: `kbaudit audits and maintains the insurance chatbot's knowledge base:
it classifies documents against obsolescence, relevance and mistagging rules,
approves freshly imported documents, and smoke-checks the backend API.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is given, print help.
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		appInstance, err := app.NewApp(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store the app instance in the command's context.
		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check backend and database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		fmt.Println("Checking backend API...")
		if err := appInstance.KBClient.Health(ctx); err != nil {
			return fmt.Errorf("backend health check failed: %w", err)
		}
		fmt.Println("Backend API reachable.")

		if appInstance.DocumentStore == nil {
			fmt.Println("KB database not configured (database.kb.dsn), skipping database check.")
			return nil
		}
		fmt.Println("Checking KB database...")
		if err := appInstance.DocumentStore.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		fmt.Println("Database connection successful.")
		return nil
	},
}
