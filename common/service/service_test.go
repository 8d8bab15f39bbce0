//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FieldForms/FieldForms/common/interfaces"
	"github.com/FieldForms/FieldForms/common/null"
)

// TestRunTicksAndStops verifies tasks run on the ticker and stop runs on cancel
func TestRunTicksAndStops(t *testing.T) {
	var ticks, stops atomic.Int32

	s, err := New(
		WithLogger(null.Logger()),
		WithTaskTicker(5*time.Millisecond),
		WithTasksFunc(func(interfaces.Logger) { ticks.Add(1) }),
		WithStopFunc(func(interfaces.Logger) { stops.Add(1) }))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))

	assert.Greater(t, ticks.Load(), int32(0))
	assert.Equal(t, int32(1), stops.Load())
}

// TestRunRequiresLogger verifies the nil logger guard
func TestRunRequiresLogger(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.Error(t, s.Run(context.Background()))
}
