/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"encoding/json"
)

// Dump returns the effective (constraint enforced) values of every set.
// Sets whose name contains "private" are omitted.
func (c *UConfig) Dump() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]map[string]string)
	for name, set := range c.Sets {
		if isPrivate(name) {
			continue
		}
		out[name] = set.GetMap()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isPrivate(name string) bool {
	return len(name) >= 7 && name[len(name)-7:] == "private"
}
