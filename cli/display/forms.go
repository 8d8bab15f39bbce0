/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/FieldForms/FieldForms/common/schema"
)

// FormsResp prints a form list, one line per form
func FormsResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIFormListResponse](statusCode, data, err)
	if err != nil {
		return err
	}
	notice(resp.Details)

	if len(resp.Data.Forms) == 0 {
		_, err = fmt.Fprintln(Out, "No forms")
		return err
	}

	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tCLIENT\tASSIGNED\tCREATED\tSTATUS")
	for _, f := range resp.Data.Forms {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			f.ID, f.Title, f.Client.Name, len(f.Assignments), when(&f.CreatedAt), Status(f.Status))
	}
	return w.Flush()
}

// FormResp prints one form with its assignments
func FormResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIFormResponse](statusCode, data, err)
	if err != nil {
		return err
	}
	notice(resp.Details)
	if resp.Data.ID == "" {
		_, err = fmt.Fprintln(Out, resp.Details)
		return err
	}
	return printForm(resp.Data)
}

// OpenResp prints the opened form and the detection session
func OpenResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIOpenResponse](statusCode, data, err)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(Out, "Open %s\n\n", color.CyanString(resp.Form.ExternalURL))
	_, _ = fmt.Fprintf(Out, "Session:     %s\n", resp.Session.ID)
	_, _ = fmt.Fprintf(Out, "State:       %s\n", Status(resp.Session.State))
	_, _ = fmt.Fprintf(Out, "Storage key: %s\n", resp.Session.StorageKey)
	_, _ = fmt.Fprintf(Out, "Expires:     %s\n", when(&resp.Session.ExpiresAt))
	if resp.Session.ScriptURL != "" {
		_, _ = fmt.Fprintf(Out, "Script:      %s\n", resp.Session.ScriptURL)
	}
	return nil
}

// DetectResp prints the result of a detection signal
func DetectResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIDetectResponse](statusCode, data, err)
	if err != nil {
		return err
	}
	notice(resp.Details)

	completed := "no"
	if resp.Data.Completed {
		completed = green("yes")
	}
	if resp.Data.Session.ID != "" {
		_, _ = fmt.Fprintf(Out, "Session:   %s (%s)\n", resp.Data.Session.ID, Status(resp.Data.Session.State))
	}
	_, err = fmt.Fprintf(Out, "Completed: %s\n", completed)
	return err
}

// StatusReportResp prints one line per form and agent followed by totals
func StatusReportResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIStatusReportResponse](statusCode, data, err)
	if err != nil {
		return err
	}
	notice(resp.Details)

	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FORM\tTITLE\tAGENT\tNAME\tOPENED\tCOMPLETED\tSTATUS")
	for _, r := range resp.Data.Rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.FormID, r.Title, r.AgentCode, r.AgentName, when(r.OpenedAt), when(r.CompletedAt), Status(r.Status))
	}
	if err = w.Flush(); err != nil {
		return err
	}

	keys := make([]string, 0, len(resp.Data.Totals))
	for k := range resp.Data.Totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, _ = fmt.Fprintln(Out)
	for _, k := range keys {
		_, _ = fmt.Fprintf(Out, "%s: %d\n", Status(k), resp.Data.Totals[k])
	}
	return nil
}

func printForm(f schema.Form) error {
	_, _ = fmt.Fprintf(Out, "%s  %s  [%s]\n", f.ID, color.New(color.Bold).Sprint(f.Title), Status(f.Status))
	_, _ = fmt.Fprintf(Out, "URL:     %s\n", f.ExternalURL)
	if f.Client.Name != "" || f.Client.Phone != "" || f.Client.Ref != "" {
		_, _ = fmt.Fprintf(Out, "Client:  %s %s %s\n", f.Client.Name, f.Client.Phone, f.Client.Ref)
	}
	_, _ = fmt.Fprintf(Out, "Created: %s by %s\n\n", when(&f.CreatedAt), f.CreatedBy)

	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "AGENT\tNAME\tOPENED\tCOMPLETED\tSTATUS")
	for _, a := range f.Assignments {
		code := a.AgentCode
		if code == "" {
			code = a.AgentID
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", code, a.AgentName, when(a.OpenedAt), when(a.CompletedAt), Status(a.Status))
	}
	return w.Flush()
}

// notice prints server details such as a degraded store warning
func notice(details string) {
	if details != "" {
		_, _ = fmt.Fprintln(Out, color.YellowString("Note: %s", details))
	}
}
