package v3

import "encoding/json"

// unmarshalWithExtra decodes data into known (a pointer to a struct whose
// json tags list the fields this core interprets) and returns every other
// top-level key as raw JSON, so maketurn can echo it back untouched. This
// is the Go-native replacement for the source's "dynamic hash" access
// pattern (spec.md §9, design note 1): unrecognised fields are never
// dropped, the server would otherwise reject the turn.
func unmarshalWithExtra(data []byte, known any) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	knownKeys := jsonKeysOf(known)
	for _, k := range knownKeys {
		delete(all, k)
	}
	return all, nil
}

// marshalWithExtra merges the known struct's own JSON encoding with any
// stashed Extra fields and remarshals. Go's encoding/json sorts map keys
// when marshaling, so the output key order is deterministic across runs.
func marshalWithExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// jsonKeysOf returns the json tag names of every exported field of the
// struct known points to (ignoring "-" and the Extra field itself).
func jsonKeysOf(known any) []string {
	b, err := json.Marshal(known)
	if err != nil {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
