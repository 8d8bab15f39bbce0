/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"errors"
	"os"
)

//goland:noinspection GoUnusedExportedFunction
func WithLoad(filename string) func(*UConfig) error {
	return func(c *UConfig) error {
		return c.Load(filename)
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithLoadOrCreate(filename string) func(*UConfig) error {
	return func(c *UConfig) error {
		if _, err := os.Stat(filename); err == nil {
			return c.Load(filename)
		}
		return c.Save(filename)
	}
}

// WithFindOrCreate loads the first existing file in the list, or creates
// the first one that is writable
//
//goland:noinspection GoUnusedExportedFunction
func WithFindOrCreate(filenames []string) func(*UConfig) error {
	return func(c *UConfig) error {
		for _, filename := range filenames {
			if _, err := os.Stat(filename); err == nil {
				return c.Load(filename)
			}
		}

		for _, filename := range filenames {
			file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
			if err == nil {
				_ = file.Close()
				return c.Save(filename)
			}
		}
		return errors.New("could not create configuration file")
	}
}
