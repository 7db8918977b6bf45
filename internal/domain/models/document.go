package models

import "encoding/json"

// document holds the members of a JSON object as they were received.
type document map[string]json.RawMessage

func decodeDocument(data []byte) (document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// merge encodes v and puts back every member of doc the encoding left out.
// The id member keeps its original form while its value is unchanged.
func (doc document) merge(v any, id ID) ([]byte, error) {
	encoded, err := json.Marshal(v)
	if err != nil || len(doc) == 0 {
		return encoded, err
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}

	for key, raw := range doc {
		if _, ok := out[key]; !ok {
			out[key] = raw
		}
	}

	if raw, ok := doc["id"]; ok && id != "" {
		var original ID
		if err := json.Unmarshal(raw, &original); err == nil && original == id {
			out["id"] = raw
		}
	}

	return json.Marshal(out)
}
