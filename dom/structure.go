package dom

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// Attribute is a name/value pair of the structured form.
type Attribute struct {
	Name  string
	Value string
}

// Structured is the JSON-like form of an element tree. An element has a Tag,
// optional Attributes in document order and optional Children. A text child
// has only Text, trimmed and never empty. Comments and doctypes are left out.
type Structured struct {
	Tag        string
	Text       string
	Attributes []Attribute
	Children   []*Structured
}

func structureOf(n *html.Node) *Structured {
	s := &Structured{Tag: n.Data}
	for _, a := range n.Attr {
		s.Attributes = append(s.Attributes, Attribute{Name: qualifiedName(a), Value: a.Val})
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			s.Children = append(s.Children, structureOf(c))
		case html.TextNode:
			if rawTextElements[n.Data] {
				continue
			}
			if text := trimSpace(c.Data); text != "" {
				s.Children = append(s.Children, &Structured{Text: text})
			}
		}
	}
	return s
}

// IsText reports whether s represents a text node.
func (s *Structured) IsText() bool { return s.Tag == "" }

// Map converts s into plain maps and slices: {"tag", "attributes",
// "children"} for elements and {"text"} for text. Empty attribute and child
// lists are omitted.
func (s *Structured) Map() map[string]any {
	if s.IsText() {
		return map[string]any{"text": s.Text}
	}
	m := map[string]any{"tag": s.Tag}
	if len(s.Attributes) > 0 {
		attrs := make(map[string]string, len(s.Attributes))
		for _, a := range s.Attributes {
			attrs[a.Name] = a.Value
		}
		m["attributes"] = attrs
	}
	if len(s.Children) > 0 {
		children := make([]any, 0, len(s.Children))
		for _, c := range s.Children {
			children = append(children, c.Map())
		}
		m["children"] = children
	}
	return m
}

// Encode serializes s with marshal. Encoder failures are returned joined
// with ErrSerialization; no partial output is returned.
func (s *Structured) Encode(marshal func(any) ([]byte, error)) (string, error) {
	b, err := marshal(s)
	if err != nil {
		return "", errors.Join(ErrSerialization, err)
	}
	return string(b), nil
}

// JSON encodes s as JSON, indented by two spaces when pretty is set.
func (s *Structured) JSON(pretty bool) (string, error) {
	if pretty {
		return s.Encode(func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		})
	}
	return s.Encode(json.Marshal)
}

// YAML encodes s as a YAML document.
func (s *Structured) YAML() (string, error) {
	return s.Encode(yaml.Marshal)
}

// MarshalJSON keeps attributes in document order, which a Go map would not.
func (s *Structured) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if s.IsText() {
		buf.WriteString(`{"text":`)
		if err := writeJSON(&buf, s.Text); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}

	buf.WriteString(`{"tag":`)
	if err := writeJSON(&buf, s.Tag); err != nil {
		return nil, err
	}
	if len(s.Attributes) > 0 {
		buf.WriteString(`,"attributes":{`)
		for i, a := range s.Attributes {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(&buf, a.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeJSON(&buf, a.Value); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	if len(s.Children) > 0 {
		buf.WriteString(`,"children":[`)
		for i, c := range s.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := c.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// MarshalYAML emits an ordered mapping with the same keys as MarshalJSON.
func (s *Structured) MarshalYAML() (any, error) {
	return s.yamlNode(), nil
}

func (s *Structured) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	if s.IsText() {
		n.Content = append(n.Content, yamlString("text"), yamlString(s.Text))
		return n
	}
	n.Content = append(n.Content, yamlString("tag"), yamlString(s.Tag))
	if len(s.Attributes) > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode}
		for _, a := range s.Attributes {
			attrs.Content = append(attrs.Content, yamlString(a.Name), yamlString(a.Value))
		}
		n.Content = append(n.Content, yamlString("attributes"), attrs)
	}
	if len(s.Children) > 0 {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range s.Children {
			children.Content = append(children.Content, c.yamlNode())
		}
		n.Content = append(n.Content, yamlString("children"), children)
	}
	return n
}

func yamlString(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
