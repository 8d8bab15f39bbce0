//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package session

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FieldForms/FieldForms/cli/communications"
	"github.com/FieldForms/FieldForms/cli/display"
	"github.com/FieldForms/FieldForms/cli/login"
	"github.com/FieldForms/FieldForms/common/schema"
)

func Register() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "detection session functions",
		Long:  "relay completion signals for an open form and manage detection sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a subcommand is required\n")
			}
			return fmt.Errorf("unknown subcommand: %s\n", args[0])
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "watch <session_id>",
		Short: "start watching",
		Long:  "report that the external form is displayed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Session ID is required\n")
			}
			c := communications.New(login.Login())
			display.ErrorWrapper(display.DetectResp(c.Post(schema.EndpointDetect+"/"+args[0]+"/watch", nil)))
			return nil
		},
	})

	var message schema.DetectMessageRequest
	messageCmd := &cobra.Command{
		Use:   "message <session_id>",
		Short: "relay a message",
		Long:  "relay a message received from the external form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Session ID is required\n")
			}
			c := communications.New(login.Login())
			display.ErrorWrapper(display.DetectResp(c.Post(schema.EndpointDetect+"/"+args[0]+"/message", message)))
			return nil
		},
	}
	messageCmd.Flags().StringVar(&message.Origin, "origin", "", "origin of the message")
	messageCmd.Flags().StringVar(&message.Type, "type", "", "message type")
	messageCmd.Flags().StringVar(&message.URL, "url", "", "URL carried by the message")
	_ = messageCmd.MarkFlagRequired("origin")
	cmd.AddCommand(messageCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "storage <key> [value]",
		Short: "relay a storage change",
		Long:  "relay a change of a completion storage key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Storage key is required\n")
			}
			request := schema.DetectStorageRequest{Key: args[0]}
			if len(args) > 1 {
				request.Value = args[1]
			}
			c := communications.New(login.Login())
			display.ErrorWrapper(display.DetectResp(c.Post(schema.EndpointDetectStorage, request)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "script <session_id>",
		Short: "print detection script",
		Long:  "print the script to inject into the external form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Session ID is required\n")
			}
			c := communications.New(login.Login())
			code, data, err := c.Get(schema.EndpointDetect + "/" + args[0] + "/script")
			if err != nil {
				return err
			}
			if code != 200 {
				display.ErrorWrapper(display.GenericResp(code, data, nil))
				return nil
			}
			fmt.Println(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel <session_id>",
		Short: "cancel detection",
		Long:  "stop watching without recording anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Session ID is required\n")
			}
			c := communications.New(login.Login())
			display.ErrorWrapper(display.GenericResp(c.Delete(schema.EndpointDetect + "/" + args[0])))
			return nil
		},
	})

	return cmd
}
