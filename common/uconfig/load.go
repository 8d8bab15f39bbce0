/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/FieldForms/FieldForms/common/uconfig/params"
)

// loadFile replaces the stored values with the file contents.
// Constraints already registered on existing sets are preserved.
func (c *UConfig) loadFile() error {
	data, err := os.ReadFile(c.file)
	if err != nil {
		return fmt.Errorf("error opening file %s: %w", c.file, err)
	}

	// An empty file is a freshly created one
	if len(data) == 0 {
		return nil
	}

	var loaded struct {
		Sets map[string]*params.Params `json:"sets"`
	}
	if err = json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("deserialization error: %w", err)
	}

	for name, set := range loaded.Sets {
		if set == nil {
			continue
		}
		existing, ok := c.Sets[name]
		if !ok {
			c.Sets[name] = set
			continue
		}
		existing.Merge(set)
	}
	return nil
}
