/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"time"

	"github.com/FieldForms/FieldForms/common"
)

//goland:noinspection GoUnusedConst
const (
	Version         = common.Version
	Build           = common.Build
	Name            = "ffcli"
	Description     = "FieldForms CLI"
	LongDescription = "FieldForms command line interface for agents and administrators"
	Copyright       = "Copyright (c) 2024-2026 Tenebris Technologies Inc."
	CredentialsFile = ".fieldforms"    // in the user's home directory
	EnvCode         = "FF_CODE"        // agent code
	EnvSecret       = "FF_SECRET"      // agent secret, prompted for when absent
	EnvServer       = "FF_SERVER"      // server URL, e.g. https://forms.example.com
	HTTPTimeout     = 30 * time.Second // per request
)

var ServerURL string
