package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Both documents must be arrays. Individual records are not validated here;
// malformed ones are dropped while decoding.
var documentSchema = mustSchema(map[string]any{
	"type": "array",
})

func mustSchema(def map[string]any) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("dataset: invalid schema: %v", err))
	}
	return s
}

func validate(name string, schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for i, desc := range result.Errors() {
			if i == 5 {
				errs = append(errs, fmt.Sprintf("... %d more", len(result.Errors())-i))
				break
			}
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("%s failed validation: %s", name, strings.Join(errs, "; "))
	}
	return nil
}

// Decode validates and decodes the raw profile and closing-rank documents.
// Array items that are not objects are skipped and counted in
// Documents.Skipped.
func Decode(profilesJSON, closingRanksJSON []byte) (*Documents, error) {
	if err := validate("college profiles", documentSchema, profilesJSON); err != nil {
		return nil, err
	}
	if err := validate("closing ranks", documentSchema, closingRanksJSON); err != nil {
		return nil, err
	}

	var (
		docs    Documents
		skipped int
		err     error
	)
	docs.Profiles, skipped, err = decodeObjects[CollegeProfile]("college profiles", profilesJSON)
	if err != nil {
		return nil, err
	}
	docs.Skipped += skipped

	docs.ClosingRanks, skipped, err = decodeObjects[ClosingRankRow]("closing ranks", closingRanksJSON)
	if err != nil {
		return nil, err
	}
	docs.Skipped += skipped
	return &docs, nil
}

func decodeObjects[T any](name string, doc []byte) ([]T, int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(doc, &items); err != nil {
		return nil, 0, fmt.Errorf("unmarshal %s: %w", name, err)
	}

	out := make([]T, 0, len(items))
	skipped := 0
	for _, item := range items {
		if !isObject(item) {
			skipped++
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped, nil
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

// isScalar reports whether b is a JSON string, number, boolean or null.
func isScalar(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] != '{' && b[0] != '['
}
