package util

import (
	"regexp"
	"strings"
)

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses every run of characters outside [a-z0-9]
// into a single underscore. The result is safe to embed in a Terraform
// resource name.
//
//	Slug("slo_Latency Performance") // "slo_latency_performance"
func Slug(s string) string {
	return nonAlphanumericRun.ReplaceAllString(strings.ToLower(s), "_")
}
