package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Saanvi26/ATS-Scorer/internal/llm"
)

var modelsSettingsPath string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models and the current selection",
	RunE:  runModelsList,
}

var modelsSetCmd = &cobra.Command{
	Use:   "set <model-id>",
	Short: "Select the model used for scoring",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsSet,
}

var modelsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Revert to the default model",
	RunE:  runModelsReset,
}

func init() {
	modelsCmd.PersistentFlags().StringVar(&modelsSettingsPath, "settings", "", "Path to the settings file")
	modelsCmd.AddCommand(modelsSetCmd)
	modelsCmd.AddCommand(modelsResetCmd)
	rootCmd.AddCommand(modelsCmd)
}

func runModelsList(_ *cobra.Command, _ []string) error {
	settings, err := openSettings(modelsSettingsPath)
	if err != nil {
		return err
	}
	selected, err := settings.Model()
	if err != nil {
		return err
	}

	for _, id := range llm.AllowedModels() {
		marker := " "
		if id == selected {
			marker = "*"
		}
		suffix := ""
		if id == llm.DefaultModel {
			suffix = " (default)"
		}
		fmt.Fprintf(os.Stdout, "%s %s%s\n", marker, id, suffix)
	}
	return nil
}

func runModelsSet(_ *cobra.Command, args []string) error {
	settings, err := openSettings(modelsSettingsPath)
	if err != nil {
		return err
	}
	if err := settings.StoreModel(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Model set to %s\n", args[0])
	return nil
}

func runModelsReset(_ *cobra.Command, _ []string) error {
	settings, err := openSettings(modelsSettingsPath)
	if err != nil {
		return err
	}
	if err := settings.ClearModel(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Model reset to %s\n", llm.DefaultModel)
	return nil
}
