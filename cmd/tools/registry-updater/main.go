// cmd/tools/registry-updater/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"legal-marketplace/pkg/registry"
)

var registryPath string

var rootCmd = &cobra.Command{
	Use:   "registry-updater",
	Short: "Maintain the activity registry of BPMN service tasks",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new activity to the registry",
	Example: "  registry-updater add --id rank-lawyers --display-name \"Rank Lawyers\" " +
		"--category matching --task-type rank-lawyers --error-code PARSE_ERROR",
	RunE: runAdd,
}

var updateCmd = &cobra.Command{
	Use:     "update",
	Short:   "Update one field of an existing activity",
	Example: "  registry-updater update --id rank-lawyers --field status --value verified",
	RunE:    runUpdate,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry file",
	RunE:  runValidate,
}

var (
	newActivity registry.Activity
	updateID    string
	updateField string
	updateValue string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "path", registry.DefaultPath, "path to the registry file")

	f := addCmd.Flags()
	f.StringVar(&newActivity.ID, "id", "", "activity ID")
	f.StringVar(&newActivity.DisplayName, "display-name", "", "display name")
	f.StringVar(&newActivity.Description, "description", "", "description")
	f.StringVar(&newActivity.Category, "category", "", "one of legal, matching, advisory, consultation")
	f.StringVar(&newActivity.TaskType, "task-type", "", "Zeebe job type")
	f.StringVar(&newActivity.Version, "version", "1.0.0", "activity version")
	f.StringVar(&newActivity.ImplementationStatus, "status", "planned", "planned, in-progress, completed or verified")
	f.StringVar(&newActivity.Timeout, "timeout", "10s", "job timeout")
	f.IntVar(&newActivity.Retries, "retries", 3, "job retries")
	f.StringSliceVar(&newActivity.ErrorCodes, "error-code", nil, "BPMN error code raised by the worker (repeatable)")
	f.StringSliceVar(&newActivity.Workflows, "workflow", nil, "BPMN process using the task (repeatable)")
	for _, name := range []string{"id", "display-name", "category", "task-type"} {
		_ = addCmd.MarkFlagRequired(name)
	}

	u := updateCmd.Flags()
	u.StringVar(&updateID, "id", "", "activity ID to update")
	u.StringVar(&updateField, "field", "", "status, version, displayName, description, category, timeout or retries")
	u.StringVar(&updateValue, "value", "", "new value")
	for _, name := range []string{"id", "field", "value"} {
		_ = updateCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(addCmd, updateCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAdd(cmd *cobra.Command, _ []string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if os.IsNotExist(err) {
		reg, err = registry.New(), nil
	}
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if newActivity.ErrorCodes == nil {
		newActivity.ErrorCodes = []string{}
	}
	if err := reg.Add(newActivity); err != nil {
		return err
	}
	if err := reg.Save(registryPath); err != nil {
		return err
	}
	cmd.Printf("Added activity: %s\n", newActivity.ID)
	return nil
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Update(updateID, updateField, updateValue); err != nil {
		return err
	}
	if err := reg.Save(registryPath); err != nil {
		return err
	}
	cmd.Printf("Updated activity %s, field %s to %s\n", updateID, updateField, updateValue)
	return nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	cmd.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}
