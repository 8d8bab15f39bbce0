//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FieldForms/FieldForms/cli/functions/agent"
	"github.com/FieldForms/FieldForms/cli/functions/auth"
	"github.com/FieldForms/FieldForms/cli/functions/form"
	"github.com/FieldForms/FieldForms/cli/functions/health"
	"github.com/FieldForms/FieldForms/cli/functions/session"
	"github.com/FieldForms/FieldForms/cli/functions/version"
	"github.com/FieldForms/FieldForms/cli/global"
)

func main() {
	var err error

	// Get the name of this binary, eliminating any path information
	progName := os.Args[0]
	progName = progName[strings.LastIndex(progName, "/")+1:]

	// Initialize the root command
	rootCmd := &cobra.Command{
		Use:   progName,
		Short: global.Description,
		Long: global.LongDescription + "\n\nCredentials are read from ~/" + global.CredentialsFile +
			" or the " + global.EnvCode + ", " + global.EnvSecret + " and " + global.EnvServer + " environment variables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("A subcommand is required\n")
		},
	}

	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add the functions
	rootCmd.AddCommand(agent.Register())
	rootCmd.AddCommand(auth.Register()...)
	rootCmd.AddCommand(form.Register())
	rootCmd.AddCommand(health.Register())
	rootCmd.AddCommand(session.Register())
	rootCmd.AddCommand(version.Register())

	// Execute the CLI
	err = rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
