package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/voltember/stormbolt/internal/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Run:   resetSettings,
}

func init() {
	rootCmd.AddCommand(resetCmd)
	log.SetFlags(0)
}

func resetSettings(cmd *cobra.Command, args []string) {
	if err := config.SaveSettings(config.DefaultSettings()); err != nil {
		log.Fatal("Failed to save settings:", err)
	}

	settingsPath, err := config.GetSettingsPath()
	if err != nil {
		log.Fatal("Failed to resolve settings path:", err)
	}

	fmt.Println("Settings reset:", settingsPath)
}
