//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package health

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/FieldForms/FieldForms/cli/communications"
	"github.com/FieldForms/FieldForms/cli/display"
	"github.com/FieldForms/FieldForms/cli/global"
	"github.com/FieldForms/FieldForms/common/schema"
)

func Register() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "server health",
		Long:  "report whether the server can reach its store. No login is required.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if global.ServerURL == "" {
				if homeDir, err := os.UserHomeDir(); err == nil {
					_ = godotenv.Load(filepath.Join(homeDir, global.CredentialsFile))
				}
				global.ServerURL = os.Getenv(global.EnvServer)
			}
			display.ErrorWrapper(display.AnyResp(communications.New().Get(schema.EndpointHealth)))
			return nil
		},
	}
}
