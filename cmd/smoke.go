package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var smokeChatMessage string

// smokeCmd represents the smoke command
var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Run smoke checks against the chatbot backend API",
	Long: `Exercises the backend endpoints the toolkit depends on: the health check,
KB document listing, content retrieval for one document, and a chat
round-trip. Intended as a quick manual check after a backend deploy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}
		client := appInstance.KBClient

		checks := []struct {
			name string
			run  func(ctx context.Context) error
		}{
			{
				name: "health endpoint",
				run:  client.Health,
			},
			{
				name: "KB document listing",
				run: func(ctx context.Context) error {
					docs, err := client.ListDocuments(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("    %d documents in KB\n", len(docs))
					return nil
				},
			},
			{
				name: "KB document content",
				run: func(ctx context.Context) error {
					docs, err := client.ListDocuments(ctx)
					if err != nil {
						return err
					}
					if len(docs) == 0 {
						fmt.Println("    KB is empty, skipping content fetch")
						return nil
					}
					content, err := client.GetDocumentContent(ctx, docs[0].ID)
					if err != nil {
						return err
					}
					fmt.Printf("    fetched %d bytes for document %s\n", len(content), docs[0].ID)
					return nil
				},
			},
			{
				name: "chat round-trip",
				run: func(ctx context.Context) error {
					answer, err := client.Chat(ctx, smokeChatMessage)
					if err != nil {
						return err
					}
					if answer == "" {
						return fmt.Errorf("chat returned an empty answer")
					}
					return nil
				},
			},
		}

		pass := color.New(color.FgGreen)
		fail := color.New(color.FgRed)
		failures := 0
		for _, check := range checks {
			fmt.Printf("Checking %s...\n", check.name)
			if err := check.run(ctx); err != nil {
				fail.Printf("  FAIL: %v\n", err)
				failures++
				continue
			}
			pass.Println("  PASS")
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d smoke checks failed", failures, len(checks))
		}
		fmt.Println("All smoke checks passed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(smokeCmd)
	smokeCmd.Flags().StringVar(&smokeChatMessage, "chat-message", "Как оформить полис ОСАГО?", "Message to send in the chat round-trip check")
}
