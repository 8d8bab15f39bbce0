//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package common

// Version and Build are shared by the server and the CLI
const (
	Version = "0.3.0"
	Build   = 31
)
