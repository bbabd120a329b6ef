package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"weather-dashboard/internal/chat"
	"weather-dashboard/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const chatHelp = `Commands:
  /city <name>  load weather for another city
  /show         print the dashboard
  /help         show this help
  /quit         exit
Anything else is sent to the assistant.`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive dashboard with the weather assistant",
	Long:  `Start an interactive session: search cities and chat about their weather.`,
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	app.Transcript().OnAppend(func(e chat.Entry) {
		if e.Role == chat.RoleBot {
			fmt.Fprintf(out, "🤖 %s\n", e.Text)
		}
	})

	show := func() {
		if err := render.WriteText(out, app.View()); err != nil {
			logger.Error("Failed to render dashboard", zap.Error(err))
		}
	}

	app.Search(ctx, cityFlag)
	show()
	if interactive {
		fmt.Fprintln(out, chatHelp)
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read input: %w", err)
		}
		input := strings.TrimSpace(line)

		switch {
		case input == "/quit" || input == "/exit":
			return nil
		case input == "/help":
			fmt.Fprintln(out, chatHelp)
		case input == "/show":
			show()
		case isCityCommand(input):
			if app.Search(ctx, cityArgument(input)) != "" {
				show()
			}
		case input != "":
			app.Ask(ctx, input)
		}

		if err == io.EOF {
			return nil
		}
	}
}

func isCityCommand(input string) bool {
	command, _, _ := strings.Cut(input, " ")
	return command == "/city"
}

func cityArgument(input string) string {
	_, city, _ := strings.Cut(input, " ")
	return strings.TrimSpace(city)
}
