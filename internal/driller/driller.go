// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"
)

var segmentRE = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Drill walks rec along a dot path supporting array indexes. A segment
// without an index that lands on a one-element list unwraps it; longer lists
// are returned whole. The bool is false when any segment is missing or
// malformed.
func Drill(rec map[string]any, path string) (any, bool) {
	if rec == nil || path == "" {
		return nil, false
	}

	var current any = rec
	for _, p := range strings.Split(path, ".") {
		matches := segmentRE.FindStringSubmatch(p)
		if len(matches) == 0 {
			return nil, false
		}

		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, ok := obj[matches[1]]
		if !ok {
			return nil, false
		}

		index := -1
		if matches[3] != "" && matches[3] != "*" {
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return nil, false
			}
			index = i
		}

		if arr, isArr := val.([]any); isArr {
			switch {
			case index == -1:
				if len(arr) == 1 {
					val = arr[0]
				}
			case index < len(arr):
				val = arr[index]
			default:
				return nil, false
			}
		} else if index >= 0 {
			return nil, false
		}

		current = val
	}

	return current, true
}
