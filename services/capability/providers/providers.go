// Package providers holds the built-in capability providers. Each one
// degrades to curated synthetic data when its upstream integration is not
// configured, so a full pipeline run works offline.
package providers

import (
	"strings"

	"go.uber.org/zap"

	"tripflow/models"
)

type base struct {
	name string
	log  *zap.Logger
}

func newBase(name string, logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{name: name, log: logger.With(zap.String("provider", name))}
}

func (b base) Name() string { return b.name }

// success wraps data with standard provider metadata.
func (b base) success(data map[string]any, meta map[string]any) *models.ProviderResult {
	if meta == nil {
		meta = map[string]any{}
	}
	meta["agent"] = b.name
	return models.NewSuccess(data, meta)
}

// requireFields returns a validation failure naming the first missing input
// field, or nil when all are present.
func requireFields(input map[string]any, fields ...string) *models.ProviderResult {
	for _, f := range fields {
		if v, ok := input[f]; !ok || v == nil || v == "" {
			return models.ValidationFailure("missing required input field: " + f)
		}
	}
	return nil
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getInt(m map[string]any, key string, fallback int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func getFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func getMap(m map[string]any, key string) map[string]any {
	sub, _ := m[key].(map[string]any)
	return sub
}

func getSlice(m map[string]any, key string) []map[string]any {
	if s, ok := m[key].([]map[string]any); ok {
		return s
	}
	if anys, ok := m[key].([]any); ok {
		var out []map[string]any
		for _, v := range anys {
			if sub, ok := v.(map[string]any); ok {
				out = append(out, sub)
			}
		}
		return out
	}
	return nil
}
