package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goto/siphon/domain"
)

// Normalize parses a JSON payload into records.
// An empty rootPath takes the whole body: an array maps element-wise, an object becomes a single record.
// A non-empty rootPath is split on "." and descended; a missing segment yields no records.
// Array elements that are not objects are wrapped as {"value": element}.
func Normalize(body []byte, rootPath string) ([]domain.Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []domain.Record{}, nil
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response body is not valid JSON", domain.ErrParse)
	}

	node := json.RawMessage(body)
	if rootPath != "" {
		for _, segment := range strings.Split(rootPath, ".") {
			var obj map[string]json.RawMessage
			if !isObject(node) {
				return []domain.Record{}, nil
			}
			if err := json.Unmarshal(node, &obj); err != nil {
				return nil, fmt.Errorf("%w: descending %q: %w", domain.ErrParse, rootPath, err)
			}
			next, ok := obj[segment]
			if !ok {
				return []domain.Record{}, nil
			}
			node = next
		}
	}

	switch firstByte(node) {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(node, &items); err != nil {
			return nil, fmt.Errorf("%w: decoding array: %w", domain.ErrParse, err)
		}
		records := make([]domain.Record, 0, len(items))
		for i, item := range items {
			r, err := toRecord(item)
			if err != nil {
				return nil, fmt.Errorf("%w: decoding element %d: %w", domain.ErrParse, i, err)
			}
			records = append(records, r)
		}
		return records, nil

	case '{':
		var r domain.Record
		if err := json.Unmarshal(node, &r); err != nil {
			return nil, fmt.Errorf("%w: decoding object: %w", domain.ErrParse, err)
		}
		return []domain.Record{r}, nil

	case 'n':
		return []domain.Record{}, nil

	default:
		if rootPath != "" {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("%w: expected a JSON array or object, got %.32s", domain.ErrParse, string(node))
	}
}

func toRecord(raw json.RawMessage) (domain.Record, error) {
	if isObject(raw) {
		var r domain.Record
		err := json.Unmarshal(raw, &r)
		return r, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return domain.Record{}, err
	}
	r := domain.NewRecord()
	r.Set("value", domain.NormalizeJSONValue(v))
	return r, nil
}

func isObject(raw json.RawMessage) bool {
	return firstByte(raw) == '{'
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
