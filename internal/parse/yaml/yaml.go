// Package yaml visits a gopkg.in/yaml.v3 node tree and produces a
// flatdoc.FlatDocument, the same way the JSON parser does from its own
// tokenizer. yaml.v3 handles the actual grammar (anchors, aliases, block and
// flow styles, multi-document streams); this package only re-shapes its node
// tree into flat, navigable rows and a compact pretty-printed form.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	goyaml "gopkg.in/yaml.v3"

	"github.com/trygveh/sdp/internal/errs"
	"github.com/trygveh/sdp/internal/flatdoc"
)

// Parse reads every document in a YAML stream and returns the combined flat
// document. Multiple "---"-separated documents become multiple top-level
// rows, mirroring the JSON parser's newline-delimited top-level values.
func Parse(src string) (*flatdoc.FlatDocument, error) {
	dec := goyaml.NewDecoder(strings.NewReader(src))
	p := &parser{b: flatdoc.NewBuilder()}

	count := 0
	for {
		var doc goyaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.New(errs.Parse, "yaml: %s", err)
		}
		if count > 0 {
			p.b.WriteByte('\n')
		}
		if len(doc.Content) == 0 {
			continue
		}
		if err := p.visit(doc.Content[0], nil); err != nil {
			return nil, err
		}
		count++
	}

	if count == 0 {
		return nil, errs.New(errs.Parse, "empty input")
	}
	return p.b.Build(), nil
}

type parser struct {
	b *flatdoc.Builder
}

func (p *parser) visit(n *goyaml.Node, key *flatdoc.Key) error {
	switch n.Kind {
	case goyaml.ScalarNode:
		return p.visitScalar(n, key)
	case goyaml.MappingNode:
		return p.visitMapping(n, key)
	case goyaml.SequenceNode:
		return p.visitSequence(n, key)
	case goyaml.AliasNode:
		return p.visit(n.Alias, key)
	default:
		return errs.New(errs.Parse, "unsupported yaml node kind %v", n.Kind)
	}
}

func (p *parser) visitScalar(n *goyaml.Node, key *flatdoc.Key) error {
	switch n.ShortTag() {
	case "!!null":
		start := p.b.Pos()
		p.b.WriteString("null")
		idx := p.b.Primitive(flatdoc.Null, key)
		p.b.SetValueRange(idx, p.b.Span(start))
	case "!!bool":
		b, err := strconv.ParseBool(canonicalBool(n.Value))
		if err != nil {
			return errs.New(errs.Parse, "invalid boolean %q", n.Value)
		}
		start := p.b.Pos()
		text := "false"
		if b {
			text = "true"
		}
		p.b.WriteString(text)
		idx := p.b.Primitive(flatdoc.Boolean, key)
		p.b.SetValueRange(idx, p.b.Span(start))
	case "!!int", "!!float":
		start := p.b.Pos()
		p.b.WriteString(n.Value)
		idx := p.b.Primitive(flatdoc.Number, key)
		p.b.SetValueRange(idx, p.b.Span(start))
	default:
		start := p.b.Pos()
		p.b.WriteString(quoteScalar(n.Value))
		idx := p.b.Primitive(flatdoc.String, key)
		p.b.SetValueRange(idx, p.b.Span(start))
	}
	return nil
}

// canonicalBool maps the YAML 1.1 boolean vocabulary onto what ParseBool
// accepts, since yaml.v3 preserves the source spelling in Node.Value.
func canonicalBool(s string) string {
	switch strings.ToLower(s) {
	case "y", "yes", "on":
		return "true"
	case "n", "no", "off":
		return "false"
	default:
		return s
	}
}

func quoteScalar(s string) string {
	return `"` + strings.ReplaceAll(s, "\n", "\\n") + `"`
}

func (p *parser) visitSequence(n *goyaml.Node, key *flatdoc.Key) error {
	if len(n.Content) == 0 {
		p.b.WriteString("[]")
		p.b.EmptyContainer(flatdoc.Array, key)
		return nil
	}

	p.b.WriteByte('[')
	p.b.OpenContainer(flatdoc.Array, key)
	for i, child := range n.Content {
		if i != 0 {
			p.b.WriteString(", ")
		}
		if err := p.visit(child, nil); err != nil {
			return err
		}
	}
	p.b.WriteByte(']')
	p.b.CloseContainer()
	return nil
}

func (p *parser) visitMapping(n *goyaml.Node, key *flatdoc.Key) error {
	if len(n.Content) == 0 {
		p.b.WriteString("{}")
		p.b.EmptyContainer(flatdoc.Object, key)
		return nil
	}

	p.b.WriteByte('{')
	p.b.OpenContainer(flatdoc.Object, key)
	for i := 0; i < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if i == 0 {
			p.b.WriteByte(' ')
		} else {
			p.b.WriteString(", ")
		}

		childKey, err := p.buildKey(keyNode)
		if err != nil {
			return err
		}
		p.b.WriteString(": ")

		if err := p.visit(valNode, childKey); err != nil {
			return err
		}
	}
	p.b.WriteByte(' ')
	p.b.WriteByte('}')
	p.b.CloseContainer()
	return nil
}

// buildKey renders a mapping key's text into the pretty-text arena and
// returns the flatdoc.Key describing it. String keys are used verbatim;
// any other scalar or collection key is rendered into a synthetic bracketed
// form, matching a string key quotes-and-escapes aside.
func (p *parser) buildKey(n *goyaml.Node) (*flatdoc.Key, error) {
	start := p.b.Pos()

	if n.Kind == goyaml.ScalarNode && n.ShortTag() == "!!str" {
		p.b.WriteString(quoteScalar(n.Value))
		return &flatdoc.Key{Raw: n.Value, Range: p.b.Span(start)}, nil
	}

	var sb strings.Builder
	if err := writeKeyItem(&sb, n); err != nil {
		return nil, err
	}
	p.b.WriteString("[" + sb.String() + "]")
	return &flatdoc.Key{Raw: sb.String(), Range: p.b.Span(start), Synthetic: true}, nil
}

// writeKeyItem renders an arbitrary YAML node (used as a non-string map key,
// or nested inside one) into key-literal text without emitting any rows.
func writeKeyItem(sb *strings.Builder, n *goyaml.Node) error {
	switch n.Kind {
	case goyaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			sb.WriteString("null")
		case "!!bool":
			b, err := strconv.ParseBool(canonicalBool(n.Value))
			if err != nil {
				return errs.New(errs.Parse, "invalid boolean %q", n.Value)
			}
			if b {
				sb.WriteString("true")
			} else {
				sb.WriteString("false")
			}
		case "!!int", "!!float":
			sb.WriteString(n.Value)
		default:
			sb.WriteString(quoteScalar(n.Value))
		}
	case goyaml.SequenceNode:
		if len(n.Content) == 0 {
			sb.WriteString("[]")
			return nil
		}
		sb.WriteByte('[')
		for i, child := range n.Content {
			if i != 0 {
				sb.WriteString(", ")
			}
			if err := writeKeyItem(sb, child); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case goyaml.MappingNode:
		if len(n.Content) == 0 {
			sb.WriteString("{}")
			return nil
		}
		sb.WriteString("{ ")
		for i := 0; i < len(n.Content); i += 2 {
			if i != 0 {
				sb.WriteString(", ")
			}
			if err := writeKeyItem(sb, n.Content[i]); err != nil {
				return err
			}
			sb.WriteString(": ")
			if err := writeKeyItem(sb, n.Content[i+1]); err != nil {
				return err
			}
		}
		sb.WriteString(" }")
	case goyaml.AliasNode:
		return writeKeyItem(sb, n.Alias)
	default:
		return fmt.Errorf("yaml: unsupported key node kind %v", n.Kind)
	}
	return nil
}
