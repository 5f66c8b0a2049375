package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/drew/iconembed/internal/model"
)

// Entry is one raw manifest entry. A bare name only sets Name.
type Entry struct {
	Name   *string
	Style  *string
	Filled *bool
}

// Request applies defaults and validates the entry
func (e Entry) Request() (model.IconRequest, error) {
	if e.Name == nil {
		return model.IconRequest{}, errors.New("missing required field: name")
	}
	if err := model.ValidateName(*e.Name); err != nil {
		return model.IconRequest{}, err
	}

	req := model.NewIconRequest(*e.Name)
	if e.Style != nil {
		style, err := model.ParseStyle(*e.Style)
		if err != nil {
			return model.IconRequest{}, fmt.Errorf("icon %q: %w", *e.Name, err)
		}
		req.Style = style
	}
	if e.Filled != nil {
		req.Filled = *e.Filled
	}
	return req, nil
}

// UnmarshalJSON accepts a string or an object with name, style and filled
func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty entry")
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*e = Entry{Name: &name}
		return nil
	case '{':
		var fields struct {
			Name   *string `json:"name"`
			Style  *string `json:"style"`
			Filled *bool   `json:"filled"`
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fields); err != nil {
			return err
		}
		*e = Entry{Name: fields.Name, Style: fields.Style, Filled: fields.Filled}
		return nil
	default:
		return fmt.Errorf("entry must be a string or an object, got %s", data)
	}
}

func decodeJSON(data []byte) ([]Entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			Icons *[]Entry `json:"icons"`
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, errors.New("unexpected data after manifest object")
		}
		if doc.Icons == nil {
			return nil, errors.New(`missing "icons" list`)
		}
		return *doc.Icons, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, errors.New("manifest must be a list")
	}
	return entries, nil
}

// UnmarshalYAML accepts a string scalar or a mapping with name, style and filled
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() != "!!str" {
			return fmt.Errorf("line %d: entry must be a string or a mapping", node.Line)
		}
		name := node.Value
		*e = Entry{Name: &name}
		return nil
	case yaml.MappingNode:
		var out Entry
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if val.ShortTag() == "!!null" {
				continue
			}
			switch key.Value {
			case "name":
				s, err := yamlString(val, "name")
				if err != nil {
					return err
				}
				out.Name = &s
			case "style":
				s, err := yamlString(val, "style")
				if err != nil {
					return err
				}
				out.Style = &s
			case "filled":
				var b bool
				if val.ShortTag() != "!!bool" || val.Decode(&b) != nil {
					return fmt.Errorf("line %d: field filled must be a boolean", val.Line)
				}
				out.Filled = &b
			default:
				return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
			}
		}
		*e = out
		return nil
	default:
		return fmt.Errorf("line %d: entry must be a string or a mapping", node.Line)
	}
}

func yamlString(node *yaml.Node, field string) (string, error) {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		return "", fmt.Errorf("line %d: field %s must be a string", node.Line, field)
	}
	return node.Value, nil
}

func decodeYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("manifest is empty")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var entries []Entry
		if err := root.Decode(&entries); err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []Entry{}
		}
		return entries, nil
	case yaml.MappingNode:
		var list *yaml.Node
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i]
			if key.Value != "icons" {
				return nil, fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
			}
			list = root.Content[i+1]
		}
		if list == nil || list.Kind != yaml.SequenceNode {
			return nil, errors.New(`missing "icons" list`)
		}
		entries := []Entry{}
		if err := list.Decode(&entries); err != nil {
			return nil, err
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("line %d: manifest must be a list", root.Line)
	}
}

// UnmarshalTOML accepts a string or an inline table with name, style and filled
func (e *Entry) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*e = Entry{Name: &v}
		return nil
	case map[string]any:
		var out Entry
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch k {
			case "name", "style":
				s, ok := v[k].(string)
				if !ok {
					return fmt.Errorf("field %s must be a string", k)
				}
				if k == "name" {
					out.Name = &s
				} else {
					out.Style = &s
				}
			case "filled":
				b, ok := v[k].(bool)
				if !ok {
					return errors.New("field filled must be a boolean")
				}
				out.Filled = &b
			default:
				return fmt.Errorf("unknown field %q", k)
			}
		}
		*e = out
		return nil
	default:
		return fmt.Errorf("entry must be a string or a table, got %T", value)
	}
}

func decodeTOML(data []byte) ([]Entry, error) {
	var doc struct {
		Icons []Entry `toml:"icons"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		if len(key) > 0 && key[0] == "icons" {
			continue
		}
		unknown = append(unknown, key.String())
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown fields in manifest: %s", strings.Join(unknown, ", "))
	}
	if !md.IsDefined("icons") {
		return nil, errors.New(`missing "icons" list`)
	}
	if doc.Icons == nil {
		doc.Icons = []Entry{}
	}
	return doc.Icons, nil
}
