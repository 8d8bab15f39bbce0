//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package global

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/FieldForms/FieldForms/common"
)

func Banner() {
	common.Banner(Description, Version, Build)
	if ServerURL != "" {
		fmt.Printf("Server: %s\n\n", color.CyanString(ServerURL))
	}
}
