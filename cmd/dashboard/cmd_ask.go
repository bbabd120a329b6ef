package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the weather assistant a question",
	Long: `Load weather for --city and ask the assistant about it. The language
model is tried first, then the backend's rule-based chatbot.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("question cannot be empty")
	}

	// A failed load still leaves the assistant able to answer from its fallbacks.
	app.Search(cmd.Context(), cityFlag)

	fmt.Fprintln(cmd.OutOrStdout(), app.Ask(cmd.Context(), question))
	return nil
}
