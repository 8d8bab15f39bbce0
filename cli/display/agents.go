/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/FieldForms/FieldForms/common/schema"
)

// AgentsResp prints an agent list
func AgentsResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIAgentListResponse](statusCode, data, err)
	if err != nil {
		return err
	}
	notice(resp.Details)

	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCODE\tNAME\tPHONE\tROLE\tSTATUS")
	for _, a := range resp.Data.Agents {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Code, a.Name, a.Phone, a.Role, Status(a.Status))
	}
	return w.Flush()
}

// AgentResp prints one agent and the generated secret if the server returned one
func AgentResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIAgentResponse](statusCode, data, err)
	if err != nil {
		return err
	}

	a := resp.Data
	_, _ = fmt.Fprintf(Out, "ID:      %s\n", a.ID)
	_, _ = fmt.Fprintf(Out, "Code:    %s\n", a.Code)
	_, _ = fmt.Fprintf(Out, "Name:    %s\n", a.Name)
	_, _ = fmt.Fprintf(Out, "Phone:   %s\n", a.Phone)
	if a.Email != "" {
		_, _ = fmt.Fprintf(Out, "Email:   %s\n", a.Email)
	}
	_, _ = fmt.Fprintf(Out, "Role:    %s\n", a.Role)
	_, _ = fmt.Fprintf(Out, "Status:  %s\n", Status(a.Status))
	if resp.Secret != "" {
		_, _ = fmt.Fprintf(Out, "Secret:  %s\n", color.New(color.Bold).Sprint(resp.Secret))
	}
	return nil
}

// GenericResp prints the details of a response without a data object
func GenericResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIGenericResponse](statusCode, data, err)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Out, resp.Details)
	return err
}
