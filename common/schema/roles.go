/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

import "strings"

//goland:noinspection GoUnusedConst
const (
	RoleNone = iota
	RoleAgent
	RoleAdmin
)

const (
	RoleNameAgent = "agent"
	RoleNameAdmin = "admin"
)

var (
	RolesAll = []int{RoleAgent, RoleAdmin}
)

// RoleName returns the stored representation of a role
func RoleName(role int) string {
	switch role {
	case RoleAdmin:
		return RoleNameAdmin
	case RoleAgent:
		return RoleNameAgent
	default:
		return ""
	}
}

// ParseRole maps a stored role to its constant. An empty cell is an
// agent, which is what rows written before the role column existed were.
func ParseRole(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RoleNameAdmin:
		return RoleAdmin
	case RoleNameAgent, "":
		return RoleAgent
	default:
		return RoleNone
	}
}
