/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package common

import (
	"strings"
)

// SingleLine normalizes free text for a single spreadsheet cell or log field:
// outer whitespace is trimmed, line breaks become " | " and runs of
// whitespace collapse to one space.
func SingleLine(s string) string {
	if s == "" {
		return s
	}

	replacer := strings.NewReplacer(
		"\r\n", " | ",
		"\n", " | ",
		"\r", " | ",
	)

	return strings.Join(strings.Fields(replacer.Replace(strings.TrimSpace(s))), " ")
}
