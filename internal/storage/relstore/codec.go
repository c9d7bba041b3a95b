package relstore

import (
	"encoding/json"
	"fmt"
)

// Codec converts an entity between its structured in-memory form and the flat
// row shape stored relationally, where the configured fields hold JSON text.
// The conversion is symmetric: Decode(Encode(x)) yields x.
type Codec struct {
	structured map[string]bool
}

func NewCodec(structuredFields ...string) Codec {
	m := make(map[string]bool, len(structuredFields))
	for _, f := range structuredFields {
		m[f] = true
	}
	return Codec{structured: m}
}

// Encode flattens an entity into a row map, serializing structured fields to
// JSON text.
func (c Codec) Encode(entity any) (map[string]any, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(fields))
	for k, v := range fields {
		if c.structured[k] {
			row[k] = string(v)
		} else {
			row[k] = v
		}
	}
	return row, nil
}

// EncodeFields applies the same flattening to a partial field set, as used by
// batch updates.
func (c Codec) EncodeFields(fields map[string]any) (map[string]any, error) {
	row := make(map[string]any, len(fields))
	for k, v := range fields {
		if !c.structured[k] {
			row[k] = v
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode field %s: %w", k, err)
		}
		row[k] = string(data)
	}
	return row, nil
}

// Decode inflates a row map back into the entity, parsing structured fields
// from their JSON text form. A structured field that is null or empty text is
// treated as absent.
func (c Codec) Decode(row map[string]json.RawMessage, out any) error {
	doc := make(map[string]json.RawMessage, len(row))
	for k, v := range row {
		if !c.structured[k] {
			doc[k] = v
			continue
		}
		var text *string
		if err := json.Unmarshal(v, &text); err != nil {
			return fmt.Errorf("field %s: expected serialized text: %w", k, err)
		}
		if text == nil || *text == "" {
			continue
		}
		if !json.Valid([]byte(*text)) {
			return fmt.Errorf("field %s: invalid serialized payload", k)
		}
		doc[k] = json.RawMessage(*text)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
