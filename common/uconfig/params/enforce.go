/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package params

import (
	"fmt"
	"strconv"
)

// enforceAny converts value to a Value, substituting the default for
// empty strings and out of range integers
func enforceAny(value any, min int, max int, def Value) Value {
	switch v := value.(type) {
	case string:
		if v == "" {
			return def
		}
		return Value(v)
	case []byte:
		return Value(v)
	case int:
		if outOfRange(v, min, max) {
			return def
		}
		return Value(strconv.Itoa(v))
	case int64:
		if outOfRange(int(v), min, max) {
			return def
		}
		return Value(strconv.FormatInt(v, 10))
	default:
		return Value(fmt.Sprintf("%v", v))
	}
}

// enforce applies the default to an empty value and range-checks integers
func enforce(e Element) Value {
	if e.Value == "" {
		return e.Default
	}

	if i, err := strconv.Atoi(string(e.Value)); err == nil && outOfRange(i, e.Min, e.Max) {
		return e.Default
	}
	return e.Value
}

// outOfRange treats a zero bound as unset
func outOfRange(v, min, max int) bool {
	if min != 0 && v < min {
		return true
	}
	return max != 0 && v > max
}
