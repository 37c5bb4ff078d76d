// Package migrate upgrades stored configuration blobs to the current schema.
//
// Every historical shape is a distinct Variant with its own recognizer.
// Exactly one step applies per blob: Detect picks the variant, Upgrade converts
// it straight to domain.CurrentVersion.
package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aalvaropc/bangs/internal/domain"
)

// Variant names a recognized stored shape.
type Variant string

const (
	VariantUnrecognized Variant = "unrecognized"
	VariantLegacyV1     Variant = "legacy-v1" // {"g": "https://... :: https://..."}
	VariantLegacyV2     Variant = "legacy-v2" // {"g": {"id": .., "url": .., "pos": ..}}
	VariantV5           Variant = "v5"
	VariantCurrent      Variant = "current"

	// VariantUnknownVersion carries a version field no step understands.
	VariantUnknownVersion Variant = "unknown-version"
)

// LegacyURLSeparator joined multiple URLs in legacy shapes.
const LegacyURLSeparator = " :: "

const v5Version = 5

type field struct {
	key   string
	value json.RawMessage
}

// Detect sniffs raw JSON and returns the single matching variant.
func Detect(raw []byte) Variant {
	fields, err := objectFields(raw)
	if err != nil || len(fields) == 0 {
		return VariantUnrecognized
	}

	for _, f := range fields {
		if f.key != "version" {
			continue
		}
		v, ok := versionOf(f.value)
		if !ok {
			// Not numeric: a legacy bang may be named "version".
			break
		}
		switch {
		case v == domain.CurrentVersion:
			return VariantCurrent
		case v == v5Version:
			return VariantV5
		default:
			return VariantUnknownVersion
		}
	}

	if all(fields, isLegacyV1Value) {
		return VariantLegacyV1
	}
	if all(fields, isLegacyV2Value) {
		return VariantLegacyV2
	}
	return VariantUnrecognized
}

func all(fields []field, pred func(json.RawMessage) bool) bool {
	for _, f := range fields {
		if !pred(f.value) {
			return false
		}
	}
	return true
}

func isLegacyV1Value(v json.RawMessage) bool {
	var s string
	return json.Unmarshal(v, &s) == nil && firstByte(v) == '"'
}

func isLegacyV2Value(v json.RawMessage) bool {
	if firstByte(v) != '{' {
		return false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(v, &m); err != nil {
		return false
	}
	for _, k := range []string{"id", "url", "pos"} {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return firstByte(m["url"]) == '"'
}

func versionOf(v json.RawMessage) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstByte(v json.RawMessage) byte {
	t := bytes.TrimSpace(v)
	if len(t) == 0 {
		return 0
	}
	return t[0]
}

// objectFields decodes a JSON object keeping document order.
func objectFields(raw []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object")
	}

	var out []field
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, field{key: key, value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}
