// internal/adapters/out/firestore/decode.go
package firestore

import (
	"fmt"
	"strings"
	"time"
)

// ========================
// Decode helpers (Firestore type wobble absorption)
// ========================

func asMapAny(v any) map[string]any {
	if v == nil {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return nil
}

func mapGetStr(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func mapGetInt(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	default:
		// Firestore decode の揺れがあっても落とさず 0 に寄せる（domain が弾く）
		return 0
	}
}

func mapGetFloat(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0
	}
}

// mapGetTime accepts time.Time (native Firestore timestamp) and RFC3339
// strings; anything else collapses to the zero time.
func mapGetTime(m map[string]any, key string) time.Time {
	if m == nil {
		return time.Time{}
	}
	v, ok := m[key]
	if !ok || v == nil {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(t)); err == nil {
			return parsed.UTC()
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

func asListAny(v any) []any {
	if v == nil {
		return nil
	}
	if xs, ok := v.([]any); ok {
		return xs
	}
	if xs, ok := v.([]interface{}); ok {
		return xs
	}
	if xs, ok := v.([]map[string]any); ok {
		out := make([]any, 0, len(xs))
		for _, x := range xs {
			out = append(out, x)
		}
		return out
	}
	return nil
}
