//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package global

import (
	"time"

	"github.com/FieldForms/FieldForms/common"
)

const (
	Version          = common.Version
	Build            = common.Build
	Name             = "FieldForms"
	LogName          = "fieldforms-server"
	Description      = "FieldForms Server"
	UnixBinaryName   = "fieldforms-server"
	EnvPrefix        = "FIELDFORMS"
	TaskTicker       = 30 * time.Second // interval between background tasks
	ConsoleExitDelay = 10               // seconds to wait so that user can read the console output when exiting
	TokenLength      = 64               // JWT key length prior to base-64 encoding
)

var (
	UnixConfigFiles = []string{"/etc/fieldforms.conf", "/usr/local/etc/fieldforms.conf", "./fieldforms.conf"}
	Debug           = false
	ListenOverride  = ""
)
