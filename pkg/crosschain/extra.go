package crosschain

import (
	"encoding/json"
	"fmt"
)

// marshalWithExtra encodes v and then adds every extra key that v does not
// already define.
func marshalWithExtra(v any, extra Extra) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("failed to merge extra fields: %w", err)
	}
	for k, raw := range extra {
		if _, known := fields[k]; !known {
			fields[k] = raw
		}
	}
	return json.Marshal(fields)
}

// unmarshalWithExtra decodes the keys listed in known into v and returns the
// rest verbatim. Matching is exact, so a case variant such as "ID" stays in
// Extra instead of being folded into the "id" field.
func unmarshalWithExtra(data []byte, v any, known []string) (Extra, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	knownFields := make(map[string]json.RawMessage, len(known))
	for _, k := range known {
		if raw, ok := fields[k]; ok {
			knownFields[k] = raw
			delete(fields, k)
		}
	}
	b, err := json.Marshal(knownFields)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return Extra(fields), nil
}
