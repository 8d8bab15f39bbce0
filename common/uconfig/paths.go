/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"os"
	"path/filepath"
)

// CreateDir reports whether the directory exists or could be created
func CreateDir(path string) bool {
	return os.MkdirAll(path, 0700) == nil
}

// CreateSubDir joins dir and subDir, creates it, and returns the
// path or "" on failure
//
//goland:noinspection GoUnusedExportedFunction
func CreateSubDir(dir string, subDir string) string {
	newDir := filepath.Join(dir, subDir)
	if CreateDir(newDir) {
		return newDir
	}
	return ""
}
