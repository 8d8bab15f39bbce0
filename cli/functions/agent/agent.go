//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package agent

import (
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
		Use:   "agent",
		Short: "agent functions",
		Long:  "manage field agents (administrators only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a subcommand is required\n")
			}
			return fmt.Errorf("unknown subcommand: %s\n", args[0])
		},
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "list agents",
		Long:  "list agents that are not deleted. --all includes administrators.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return agentList(all)
		},
	}
	list.Flags().BoolVar(&all, "all", false, "include administrators")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <agent_id>",
		Short: "get agent",
		Long:  "get information about the specified agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return agentGet(args)
		},
	})

	var create schema.AgentCreateRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "create agent",
		Long:  "create an agent. A six digit secret is generated when --secret is omitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return agentCreate(create)
		},
	}
	createCmd.Flags().StringVar(&create.Code, "code", "", "login code")
	createCmd.Flags().StringVar(&create.Name, "name", "", "display name")
	createCmd.Flags().StringVar(&create.Phone, "phone", "", "phone number")
	createCmd.Flags().StringVar(&create.Email, "email", "", "email address")
	createCmd.Flags().StringVar(&create.Secret, "secret", "", "login secret")
	createCmd.Flags().StringVar(&create.Role, "role", schema.RoleNameAgent, "agent or admin")
	_ = createCmd.MarkFlagRequired("code")
	_ = createCmd.MarkFlagRequired("name")
	cmd.AddCommand(createCmd)

	updateCmd := &cobra.Command{
		Use:   "update <agent_id>",
		Short: "update agent",
		Long:  "change the fields given as flags, e.g. --status inactive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return agentUpdate(cmd, args)
		},
	}
	for _, f := range []string{"code", "name", "phone", "email", "secret", "status"} {
		updateCmd.Flags().String(f, "", "new "+f)
	}
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <agent_id>",
		Short: "delete agent",
		Long:  "soft delete the specified agent and cancel their detection sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return agentDelete(args)
		},
	})

	return cmd
}

func agentList(all bool) error {
	c := communications.New(login.Login())
	var pairs *util.NVPairs
	if all {
		pairs = util.NewNVPairs(nil).Set("all", "true")
	}
	display.ErrorWrapper(display.AgentsResp(c.GetQuery(schema.EndpointAgents, pairs)))
	return nil
}

func agentGet(args []string) error {
	if len(args) == 0 {
		return errors.New("Agent ID is required\n")
	}

	c := communications.New(login.Login())
	display.ErrorWrapper(display.AgentResp(c.Get(schema.EndpointAgents + "/" + args[0])))
	return nil
}

func agentCreate(request schema.AgentCreateRequest) error {
	c := communications.New(login.Login())
	display.ErrorWrapper(display.AgentResp(c.Post(schema.EndpointAgents, request)))
	return nil
}

func agentUpdate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("Agent ID is required\n")
	}

	request, err := UpdateRequest(func(name string) (string, bool) {
		if !cmd.Flags().Changed(name) {
			return "", false
		}
		v, _ := cmd.Flags().GetString(name)
		return v, true
	})
	if err != nil {
		return err
	}

	c := communications.New(login.Login())
	display.ErrorWrapper(display.AgentResp(c.Put(schema.EndpointAgents+"/"+args[0], request)))
	return nil
}

// UpdateRequest builds a partial update from the flags that were set
func UpdateRequest(flag func(name string) (string, bool)) (schema.AgentUpdateRequest, error) {
	var r schema.AgentUpdateRequest
	targets := map[string]**string{
		"code":   &r.Code,
		"name":   &r.Name,
		"phone":  &r.Phone,
		"email":  &r.Email,
		"secret": &r.Secret,
		"status": &r.Status,
	}

	changed := 0
	for name, target := range targets {
		if v, ok := flag(name); ok {
			value := v
			*target = &value
			changed++
		}
	}
	if changed == 0 {
		return r, errors.New("nothing to update\n")
	}
	return r, nil
}

func agentDelete(args []string) error {
	if len(args) == 0 {
		return errors.New("Agent ID is required\n")
	}

	c := communications.New(login.Login())
	display.ErrorWrapper(display.GenericResp(c.Delete(schema.EndpointAgents + "/" + args[0])))
	return nil
}
