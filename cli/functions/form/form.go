//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package form

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FieldForms/FieldForms/cli/communications"
	"github.com/FieldForms/FieldForms/cli/display"
	"github.com/FieldForms/FieldForms/cli/login"
	"github.com/FieldForms/FieldForms/cli/util"
	"github.com/FieldForms/FieldForms/common/schema"
)

func Register() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "form functions",
		Long:  "list, assign, open and confirm forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a subcommand is required\n")
			}
			return fmt.Errorf("unknown subcommand: %s\n", args[0])
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list forms",
		Long:  "list every form (administrators) or the forms assigned to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := communications.New(login.Login())
			display.ErrorWrapper(display.FormsResp(c.Get(schema.EndpointForms)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <form_id>",
		Short: "get form",
		Long:  "show a form with the status of every assigned agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return formGet(args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pending [agent_id|code]",
		Short: "pending forms",
		Long:  "forms assigned to the agent that are not completed, yourself by default",
		RunE: func(cmd *cobra.Command, args []string) error {
			return formPending(args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "status report",
		Long:  "one line per form and active agent with totals (administrators only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := communications.New(login.Login())
			display.ErrorWrapper(display.StatusReportResp(c.Get(schema.EndpointFormsStatus)))
			return nil
		},
	})

	var create schema.FormCreateRequest
	var client []string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "create form",
		Long:  "create a form assigned to the listed agents, or to every active agent with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			create.Client = ClientMeta(util.NewNVPairs(client))
			c := communications.New(login.Login())
			display.ErrorWrapper(display.FormResp(c.Post(schema.EndpointForms, create)))
			return nil
		},
	}
	createCmd.Flags().StringVar(&create.Title, "title", "", "form title")
	createCmd.Flags().StringVar(&create.ExternalURL, "url", "", "external form URL")
	createCmd.Flags().StringVar(&create.FormType, "type", "", "form type")
	createCmd.Flags().StringArrayVar(&client, "client", nil, "client detail as name=, phone= or ref=")
	createCmd.Flags().StringArrayVar(&create.AgentIDs, "agent", nil, "assigned agent ID (repeatable)")
	createCmd.Flags().BoolVar(&create.SendToAll, "all", false, "assign to every active agent")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("url")
	cmd.AddCommand(createCmd)

	var update schema.FormUpdateRequest
	updateCmd := &cobra.Command{
		Use:   "update <form_id>",
		Short: "update form",
		Long:  "change the fields given as flags. --agent replaces the assignee list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Form ID is required\n")
			}
			if cmd.Flags().Changed("title") {
				v, _ := cmd.Flags().GetString("title")
				update.Title = &v
			}
			if cmd.Flags().Changed("url") {
				v, _ := cmd.Flags().GetString("url")
				update.ExternalURL = &v
			}
			if cmd.Flags().Changed("client") {
				v, _ := cmd.Flags().GetStringArray("client")
				meta := ClientMeta(util.NewNVPairs(v))
				update.Client = &meta
			}
			c := communications.New(login.Login())
			display.ErrorWrapper(display.FormResp(c.Put(schema.EndpointForms+"/"+args[0], update)))
			return nil
		},
	}
	updateCmd.Flags().String("title", "", "form title")
	updateCmd.Flags().String("url", "", "external form URL")
	updateCmd.Flags().StringArray("client", nil, "client detail as name=, phone= or ref=")
	updateCmd.Flags().StringArrayVar(&update.AgentIDs, "agent", nil, "assigned agent ID (repeatable)")
	updateCmd.Flags().BoolVar(&update.SendToAll, "all", false, "assign to every active agent")
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <form_id>",
		Short: "delete form",
		Long:  "soft delete the specified form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Form ID is required\n")
			}
			c := communications.New(login.Login())
			display.ErrorWrapper(display.GenericResp(c.Delete(schema.EndpointForms + "/" + args[0])))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "open <form_id>",
		Short: "open form",
		Long:  "record that you opened the form and start completion detection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Form ID is required\n")
			}
			c := communications.New(login.Login())
			display.ErrorWrapper(display.OpenResp(c.Post(schema.EndpointForms+"/"+args[0]+"/open", nil)))
			return nil
		},
	})

	var payload string
	submitCmd := &cobra.Command{
		Use:   "submit <form_id>",
		Short: "confirm submission",
		Long:  "confirm that you submitted the form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("Form ID is required\n")
			}
			request, err := SubmitRequest(payload)
			if err != nil {
				return err
			}
			c := communications.New(login.Login())
			display.ErrorWrapper(display.FormResp(c.Post(schema.EndpointForms+"/"+args[0]+"/submit", request)))
			return nil
		},
	}
	submitCmd.Flags().StringVar(&payload, "payload", "", "response payload as JSON")
	cmd.AddCommand(submitCmd)

	return cmd
}

func formGet(args []string) error {
	if len(args) == 0 {
		return errors.New("Form ID is required\n")
	}

	c := communications.New(login.Login())
	display.ErrorWrapper(display.FormResp(c.Get(schema.EndpointForms + "/" + args[0])))
	return nil
}

func formPending(args []string) error {
	c := communications.New(login.Login())

	agent := ""
	if len(args) > 0 {
		agent = args[0]
	} else {
		identity, err := whoami(c)
		if err != nil {
			return err
		}
		agent = identity.ID
	}

	display.ErrorWrapper(display.FormsResp(c.Get(schema.EndpointFormsAgent + "/" + agent)))
	return nil
}

type comms interface {
	Get(endpoint string) (int, []byte, error)
}

func whoami(c comms) (schema.Identity, error) {
	code, data, err := c.Get(schema.EndpointVerify)
	if err != nil {
		return schema.Identity{}, err
	}
	var resp schema.APIIdentityResponse
	if err = json.Unmarshal(data, &resp); err != nil {
		return schema.Identity{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if code != 200 || resp.Data.ID == "" {
		return schema.Identity{}, fmt.Errorf("unable to verify identity (HTTP %d)", code)
	}
	return resp.Data, nil
}

// ClientMeta reads name, phone and ref from key=value pairs
func ClientMeta(p *util.NVPairs) schema.ClientMeta {
	return schema.ClientMeta{
		Name:  p.Get("name"),
		Phone: p.Get("phone"),
		Ref:   p.Get("ref"),
	}
}

// SubmitRequest validates an optional JSON payload
func SubmitRequest(payload string) (schema.SubmitRequest, error) {
	var r schema.SubmitRequest
	if payload == "" {
		return r, nil
	}
	if !json.Valid([]byte(payload)) {
		return r, errors.New("payload is not valid JSON\n")
	}
	r.Payload = json.RawMessage(payload)
	return r, nil
}
