package main

import (
	"fmt"
	"strings"

	"weather-dashboard/internal/render"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [city]",
	Short: "Show current conditions and the forecast",
	Long:  `Load weather for a city and print the dashboard once.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	city := cityFlag
	if len(args) == 1 {
		city = args[0]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, app.Search(cmd.Context(), city))

	if !app.HasData() {
		return fmt.Errorf("no weather data for %s", strings.TrimSpace(city))
	}

	fmt.Fprintln(out)
	return render.WriteText(out, app.View())
}
