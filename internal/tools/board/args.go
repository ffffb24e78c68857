package board

import (
	"fmt"
	"strings"

	"github.com/jaakkos/prodboard/internal/domain"
)

// requireString extracts a non-empty string from args by key.
func requireString(args map[string]any, key string) (string, error) {
	v, _ := args[key].(string)
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return strings.TrimSpace(v), nil
}

// optionalString extracts a string from args by key, returning the fallback if absent or empty.
func optionalString(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// optionalFloat64 extracts a float64 from args by key, returning the fallback if not present.
func optionalFloat64(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

// filterFromArgs reads the editor and category arguments; absent means "all".
func filterFromArgs(args map[string]any) domain.Filter {
	return domain.NewFilter(optionalString(args, "editor", ""), optionalString(args, "category", ""))
}
