package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/voltember/stormbolt/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the resolved settings",
	Run:   showSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func showSettings(cmd *cobra.Command, args []string) {
	settingsPath, err := config.GetSettingsPath()
	if err != nil {
		log.Fatal("Failed to resolve settings path:", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		log.Fatal("Failed to marshal settings:", err)
	}

	fmt.Println("Settings file:", settingsPath)
	fmt.Println(string(data))
}
