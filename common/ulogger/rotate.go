/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package ulogger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// rotateLogs renames the log file to <file>-YYYYMMDD when the date changes.
// The caller holds u.mu.
func (u *ULogger) rotateLogs() error {
	if u.logfile == "" || u.fileHandle == nil {
		return nil
	}

	today := time.Now().Format("20060102")
	if u.currentLogDate == today {
		return nil
	}

	previous := u.currentLogDate
	_ = u.fileHandle.Sync()
	_ = u.fileHandle.Close()
	u.fileHandle = nil

	if err := os.Rename(u.logfile, fmt.Sprintf("%s-%s", u.logfile, previous)); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	fh, err := os.OpenFile(u.logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		u.logStdout = true
		return fmt.Errorf("failed to open new log file after rotating: %w", err)
	}
	u.fileHandle = fh
	_ = os.Chmod(u.logfile, 0644)
	u.currentLogDate = today

	if err = u.deleteOldLogs(time.Now()); err != nil {
		return fmt.Errorf("failed to delete old log files: %w", err)
	}
	return nil
}

// deleteOldLogs removes rotated files whose date suffix is older than retainDays
func (u *ULogger) deleteOldLogs(now time.Time) error {
	if u.retainDays <= 1 {
		return nil
	}

	cutoff := now.AddDate(0, 0, -u.retainDays).Format("20060102")

	matches, err := filepath.Glob(u.logfile + "-*")
	if err != nil {
		return err
	}

	for _, m := range matches {
		suffix := strings.TrimPrefix(m, u.logfile+"-")
		if len(suffix) != 8 {
			continue
		}
		if suffix < cutoff {
			if err = os.Remove(m); err != nil {
				return err
			}
		}
	}
	return nil
}
