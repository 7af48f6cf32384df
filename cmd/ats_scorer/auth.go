package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var authSettingsPath string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Gemini API key",
}

var authSetCmd = &cobra.Command{
	Use:   "set [api-key]",
	Short: "Store the Gemini API key",
	Long:  "Store the Gemini API key in the settings file. Reads GEMINI_API_KEY from the environment when no argument is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API key is configured",
	RunE:  runAuthStatus,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE:  runAuthClear,
}

func init() {
	authCmd.PersistentFlags().StringVar(&authSettingsPath, "settings", "", "Path to the settings file")
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(_ *cobra.Command, args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	} else {
		key = envCredential()
	}
	if key == "" {
		return fmt.Errorf("no API key provided; pass it as an argument or set GEMINI_API_KEY")
	}

	settings, err := openSettings(authSettingsPath)
	if err != nil {
		return err
	}
	if err := settings.StoreCredential(key); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "API key stored")
	return nil
}

func runAuthStatus(_ *cobra.Command, _ []string) error {
	settings, err := openSettings(authSettingsPath)
	if err != nil {
		return err
	}
	_, ok, err := settings.Credential()
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(os.Stdout, "API key: configured")
	} else {
		fmt.Fprintln(os.Stdout, "API key: not configured")
	}
	return nil
}

func runAuthClear(_ *cobra.Command, _ []string) error {
	settings, err := openSettings(authSettingsPath)
	if err != nil {
		return err
	}
	if err := settings.RemoveCredential(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "API key removed")
	return nil
}
