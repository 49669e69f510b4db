package termconf

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/glrnvim/internal/config/loader"
)

// YAMLDocument is a legacy alacritty.yml configuration. The node tree keeps
// comments and key order.
type YAMLDocument struct {
	root *yaml.Node // mapping node
}

// NewYAMLDocument returns an empty YAML document.
func NewYAMLDocument() *YAMLDocument {
	return &YAMLDocument{root: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// ParseYAML parses alacritty.yml contents. The top level must be a mapping.
func ParseYAML(path string, data []byte) (Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, loader.NewYAMLParseError(path, err)
	}

	// Empty file or comments only.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewYAMLDocument(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &loader.ParseError{
			Path:    path,
			Line:    root.Line,
			Column:  root.Column,
			Message: "top level must be a mapping",
		}
	}
	// Comments attached to the document node belong at the top of the file.
	if root.HeadComment == "" {
		root.HeadComment = doc.HeadComment
	}
	return &YAMLDocument{root: root}, nil
}

// Merge sets font.size and font.normal.family and disables Ctrl+Z through
// key_bindings.
func (d *YAMLDocument) Merge(o Overrides) {
	font := mappingValue(d.root, "font")
	existed := font != nil
	if font == nil {
		font = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}

	if o.FontSize > 0 {
		setMappingValue(font, "size", intNode(int(o.FontSize)))
	}
	if family, ok := o.Family(); ok {
		normal := mappingValue(font, "normal")
		if normal == nil {
			normal = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			setMappingValue(font, "normal", normal)
		}
		setMappingValue(normal, "family", strNode(family))
	}

	switch {
	case len(font.Content) == 0 && existed:
		deleteMappingKey(d.root, "font")
	case len(font.Content) > 0 && !existed:
		setMappingValue(d.root, "font", font)
	}

	bindings := sequenceValue(d.root, "key_bindings")
	if bindings == nil {
		bindings = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		setMappingValue(d.root, "key_bindings", bindings)
	}
	for _, b := range bindings.Content {
		if b.Kind != yaml.MappingNode {
			continue
		}
		if !isSuspendChord(scalarValue(b, "key"), scalarValue(b, "mods")) {
			continue
		}
		deleteMappingKey(b, "chars")
		deleteMappingKey(b, "command")
		setMappingValue(b, "action", strNode(suspendAction))
		return
	}
	binding := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
	setMappingValue(binding, "key", strNode(suspendKey))
	setMappingValue(binding, "mods", strNode(suspendMods))
	setMappingValue(binding, "action", strNode(suspendAction))
	bindings.Content = append(bindings.Content, binding)
}

// Encode renders the document as YAML with hexadecimal values quoted.
func (d *YAMLDocument) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	quoteHexScalars(d.root)
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return QuoteHexValues(buf.Bytes()), nil
}

// quoteHexScalars marks every plain 0x... scalar under n as a single-quoted
// string. This covers flow mappings and sequences, which keep the user's
// style through the encoder.
func quoteHexScalars(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode {
		quoted := n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0
		if !quoted && (strings.HasPrefix(n.Value, "0x") || strings.HasPrefix(n.Value, "0X")) {
			n.Tag = "!!str"
			n.Style = yaml.SingleQuotedStyle
		}
		return
	}
	for _, c := range n.Content {
		quoteHexScalars(c)
	}
}

// hexValueRe matches a block mapping entry whose plain value starts with 0x.
var hexValueRe = regexp.MustCompile(`(?m)^(\s*(?:- )?[^\s#'"-][^:#]*:[ \t]+)(0x[0-9A-Fa-f]+)([ \t]*(?:#.*)?)$`)

// QuoteHexValues single-quotes plain 0x... mapping values. Alacritty reads
// colors as strings and rejects a YAML integer such as 0x1d1f21.
func QuoteHexValues(data []byte) []byte {
	return hexValueRe.ReplaceAll(data, []byte("${1}'${2}'${3}"))
}

// lookup returns the value stored under key with aliases resolved.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			v := m.Content[i+1]
			if v.Kind == yaml.AliasNode && v.Alias != nil {
				v = v.Alias
			}
			return v
		}
	}
	return nil
}

// mappingValue returns the mapping stored under key, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if v := lookup(m, key); v != nil && v.Kind == yaml.MappingNode {
		return v
	}
	return nil
}

// scalarValue returns the scalar string stored under key, or "".
func scalarValue(m *yaml.Node, key string) string {
	if v := lookup(m, key); v != nil && v.Kind == yaml.ScalarNode {
		return v.Value
	}
	return ""
}

// sequenceValue returns the sequence stored under key, converting a null
// value into an empty sequence in place.
func sequenceValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		if v.Kind == yaml.SequenceNode {
			return v
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		m.Content[i+1] = seq
		return seq
	}
	return nil
}

func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			// Keep comments attached to the old value.
			value.LineComment = m.Content[i+1].LineComment
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, strNode(key), value)
}

func deleteMappingKey(m *yaml.Node, key string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return
		}
	}
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intNode(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
}
