/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"time"

	"github.com/fatih/color"

	"github.com/FieldForms/FieldForms/common/schema"
)

const timeFormat = "2006-01-02 15:04"

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// Status colours a per-agent, aggregate or detection status
func Status(s string) string {
	switch s {
	case schema.StatusCompleted, schema.DetectCompleted, schema.DetectManuallyConfirmed, schema.AgentActive:
		return green(s)
	case schema.StatusOpened, schema.AggregateInProgress, schema.DetectArmed, schema.DetectWatching:
		return yellow(s)
	case schema.StatusNotOpened, schema.DetectTimedOut, schema.AgentDeleted:
		return red(s)
	case schema.AggregateNew, schema.DetectCancelled, schema.AgentInactive:
		return faint(s)
	}
	return s
}

func when(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeFormat)
}
