package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxBodyBytes = 4 << 20

// decodeBody reads a JSON request body into v. Object keys may be camelCase
// or snake_case; snake_case keys are rewritten before decoding.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	normalized, err := json.Marshal(camelizeKeys(generic))
	if err != nil {
		return fmt.Errorf("normalize body: %w", err)
	}
	if err := json.Unmarshal(normalized, v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func camelizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if !strings.Contains(k, "_") {
				out[k] = camelizeKeys(val)
			}
		}
		// an explicit camelCase key wins over its snake_case twin
		for k, val := range t {
			if ck := snakeToCamel(k); ck != k {
				if _, exists := out[ck]; !exists {
					out[ck] = camelizeKeys(val)
				}
			}
		}
		return out
	case []any:
		for i := range t {
			t[i] = camelizeKeys(t[i])
		}
		return t
	default:
		return v
	}
}

func snakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
