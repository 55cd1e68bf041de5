package main

import "strings"

// singleDash lists the long flags that may also be spelled with one dash,
// as in "-vectors" or "-vmax=0.5".
var singleDash = map[string]bool{
	"vectors":  true,
	"vmax":     true,
	"colorbar": true,
	"tight":    true,
	"preset":   true,
	"fps":      true,
	"palette":  true,
	"format":   true,
	"ascii":    true,
	"preview":  true,
	"config":   true,
	"out":      true,
	"manifest": true,
}

// normalizeArgs rewrites single-dash long flags to their double-dash form.
// Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	done := false
	for i, a := range args {
		out[i] = a
		if done {
			continue
		}
		if a == "--" {
			done = true
			continue
		}
		if len(a) < 3 || a[0] != '-' || a[1] == '-' {
			continue
		}
		name, _, _ := strings.Cut(a[1:], "=")
		if singleDash[name] {
			out[i] = "-" + a
		}
	}
	return out
}
