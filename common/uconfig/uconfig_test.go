/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"path/filepath"
	"strings"
	"testing"
)

// TestFindOrCreate verifies that a missing file is created and reloaded with its values
func TestFindOrCreate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "ff.conf")

	c, err := New(WithFindOrCreate([]string{file}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	set := c.NewSet("server_config")
	set.SetConstraint("listen", 0, 0, "127.0.0.1:8080")
	set.Set("listen", "0.0.0.0:9000")
	if err = c.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	reloaded := Null()
	reloaded.NewSet("server_config").SetConstraint("listen", 0, 0, "127.0.0.1:8080")
	if err = reloaded.Load(file); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.GetSet("server_config").Get("listen").String(); got != "0.0.0.0:9000" {
		t.Errorf("expected persisted listen address, got %q", got)
	}
}

// TestDumpHidesPrivate verifies private sets never appear in a dump
func TestDumpHidesPrivate(t *testing.T) {
	c := Null()
	c.NewSet("server_config").Set("listen", "x")
	c.NewSet("server_private").Set("jwt_key", "secret")

	out, err := c.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Contains(out, "secret") {
		t.Errorf("dump leaked private set: %s", out)
	}
	if !strings.Contains(out, "listen") {
		t.Errorf("dump is missing public set: %s", out)
	}
}
