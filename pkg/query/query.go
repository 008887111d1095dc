// Copyright (c) 2026 MODON Evolutio. All rights reserved.

// Package query parses list-shaped values from query strings and
// comma-separated environment variables (e.g. the origin allow-list).
package query

import "strings"

// StringSlice splits a comma-separated value into a trimmed slice of
// strings. Empty entries are dropped; an empty input yields nil.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
