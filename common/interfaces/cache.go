//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package interfaces

import "time"

type Cache interface {
	TTL(time.Duration)  // Cache time to live
	Clear()             // Clear the cache
	Set(string, []byte) // Set an item in the cache
	Get(string) []byte  // Get an item from the cache, nil on miss or expiry
	Delete(string)      // Remove a single item
}
