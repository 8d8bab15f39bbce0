//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package auth

import (
	"github.com/spf13/cobra"

	"github.com/FieldForms/FieldForms/cli/communications"
	"github.com/FieldForms/FieldForms/cli/credentials"
	"github.com/FieldForms/FieldForms/cli/display"
	"github.com/FieldForms/FieldForms/cli/login"
	"github.com/FieldForms/FieldForms/common/schema"
)

// Register returns the login and logout commands
func Register() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:     "login",
			Aliases: []string{"whoami"},
			Short:   "log in and show identity",
			Long:    "log in and show the identity carried by the access token",
			RunE: func(cmd *cobra.Command, args []string) error {
				c := communications.New(login.Login())
				display.ErrorWrapper(display.AnyResp(c.Get(schema.EndpointVerify)))
				return nil
			},
		},
		{
			Use:   "logout",
			Short: "log out",
			Long:  "cancel your detection sessions and forget the tokens",
			RunE: func(cmd *cobra.Command, args []string) error {
				c := communications.New(login.Login())
				display.ErrorWrapper(display.GenericResp(c.Post(schema.EndpointLogout, nil)))
				credentials.AccessExpired()
				credentials.RefreshExpired()
				return nil
			},
		},
	}
}
