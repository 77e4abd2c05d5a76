package carousel

import (
	"bytes"
	"encoding/json"
)

// Item represents one parsed carousel entry.
//
// Image is nil when the entry has no image source. Extensions is nil when the
// entry carries no extension tag; when present it holds exactly one value.
type Item struct {
	Name       string   `json:"name" yaml:"name"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Link       string   `json:"link" yaml:"link"`
	Image      *string  `json:"image" yaml:"image"`
}

// Validate returns an error if the item is missing a required field.
// The name may be empty when the carousel entry's name element is blank.
func (i *Item) Validate() error {
	if i.Link == "" {
		return Errorf(EINVALID, "item link required")
	}
	if i.Extensions != nil && len(i.Extensions) != 1 {
		return Errorf(EINVALID, "item must have exactly one extension when extensions are present, got %d", len(i.Extensions))
	}
	return nil
}

// Result is the outcome of one extraction: the resolved list name and its
// items in carousel order. It encodes as a single-key object mapping the list
// name to the item array.
type Result struct {
	ListName string
	Items    []*Item
}

// Validate returns an error if the result or any of its items is invalid.
func (r *Result) Validate() error {
	if r.ListName == "" {
		return Errorf(EINVALID, "list name required")
	}
	for i, item := range r.Items {
		if err := item.Validate(); err != nil {
			return Errorf(EINVALID, "item %d: %s", i, ErrorMessage(err))
		}
	}
	return nil
}

// MarshalJSON encodes the result as {"<list name>": [items...]}.
func (r Result) MarshalJSON() ([]byte, error) {
	key, err := marshalUnescaped(r.ListName)
	if err != nil {
		return nil, err
	}
	val, err := marshalUnescaped(r.items())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a single-key object produced by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var m map[string][]*Item
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return Errorf(EINVALID, "result must have exactly one list, got %d", len(m))
	}
	for name, items := range m {
		r.ListName = name
		r.Items = items
	}
	return nil
}

// MarshalYAML encodes the result as a single-key mapping.
func (r Result) MarshalYAML() (any, error) {
	return map[string][]*Item{r.ListName: r.items()}, nil
}

// items never returns nil so an empty list encodes as [] rather than null.
func (r Result) items() []*Item {
	if r.Items == nil {
		return []*Item{}
	}
	return r.Items
}

// marshalUnescaped is json.Marshal without HTML escaping of <, > and &.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
