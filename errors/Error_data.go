package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrData holds structured detail about a rejected value.
type ErrData map[string]interface{}

// String renders the pairs sorted by key so log lines are stable.
func (d ErrData) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, d[k]))
	}

	return strings.Join(parts, " ")
}
