// Package export serializes labeled artist graphs as GML snapshots and hands
// them to a local or S3 sink.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/layout"
)

// ErrMalformedGML is returned for GML input the reader cannot interpret
var ErrMalformedGML = errors.New("malformed GML")

var (
	gmlEscaper   = strings.NewReplacer("&", "&amp;", "\"", "&quot;")
	gmlUnescaper = strings.NewReplacer("&quot;", "\"", "&amp;", "&")
)

func quote(s string) string {
	return "\"" + gmlEscaper.Replace(s) + "\""
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteGML writes g as an undirected GML graph. Node ids are dense indices;
// the artist ID goes in label. positions may be nil.
func WriteGML(w io.Writer, g *graph.Graph, positions map[string]layout.Position) error {
	var sb strings.Builder

	sb.WriteString("graph [\n")
	sb.WriteString("  directed 0\n")

	for _, n := range g.Nodes() {
		sb.WriteString("  node [\n")
		sb.WriteString(fmt.Sprintf("    id %d\n", n.Index()))
		sb.WriteString(fmt.Sprintf("    label %s\n", quote(n.ID)))
		if n.Attributes.Gender != "" {
			sb.WriteString(fmt.Sprintf("    gender %s\n", quote(n.Attributes.Gender)))
		}
		if n.Attributes.Nationality != "" {
			sb.WriteString(fmt.Sprintf("    nationality %s\n", quote(n.Attributes.Nationality)))
		}
		sb.WriteString(fmt.Sprintf("    degree %d\n", g.DegreeAt(n.Index())))
		if n.Attributes.HasCommunity {
			sb.WriteString(fmt.Sprintf("    community %d\n", n.Attributes.Community))
		}
		if p, ok := positions[n.ID]; ok {
			sb.WriteString("    graphics [\n")
			sb.WriteString(fmt.Sprintf("      x %s\n", formatFloat(p.X)))
			sb.WriteString(fmt.Sprintf("      y %s\n", formatFloat(p.Y)))
			sb.WriteString("    ]\n")
		}
		sb.WriteString("  ]\n")
	}

	for _, e := range g.Edges() {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		sb.WriteString("  edge [\n")
		sb.WriteString(fmt.Sprintf("    source %d\n", from.Index()))
		sb.WriteString(fmt.Sprintf("    target %d\n", to.Index()))
		sb.WriteString(fmt.Sprintf("    weight %s\n", formatFloat(e.Weight)))
		sb.WriteString("  ]\n")
	}

	sb.WriteString("]\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write GML: %w", err)
	}
	return nil
}

// gmlValue is a scalar (string or number literal) or a nested list
type gmlValue struct {
	scalar string
	quoted bool
	list   []gmlPair
}

type gmlPair struct {
	key   string
	value gmlValue
}

func (v gmlValue) isList() bool {
	return v.list != nil
}

func (v gmlValue) int() (int, error) {
	return strconv.Atoi(v.scalar)
}

func (v gmlValue) float() (float64, error) {
	return strconv.ParseFloat(v.scalar, 64)
}

// lookup returns the first value stored under key
func lookup(pairs []gmlPair, key string) (gmlValue, bool) {
	for _, p := range pairs {
		if p.key == key {
			return p.value, true
		}
	}
	return gmlValue{}, false
}

type gmlTokenizer struct {
	r    *bufio.Reader
	line int
}

// next returns the next token; quoted strings come back unescaped with
// quoted=true. io.EOF marks the end of input.
func (t *gmlTokenizer) next() (tok string, quoted bool, err error) {
	for {
		c, _, err := t.r.ReadRune()
		if err != nil {
			return "", false, err
		}
		switch {
		case c == '\n':
			t.line++
		case c == ' ' || c == '\t' || c == '\r':
		case c == '#':
			// comment to end of line
			if _, err := t.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", false, err
			}
			t.line++
		case c == '[' || c == ']':
			return string(c), false, nil
		case c == '"':
			s, err := t.r.ReadString('"')
			if err != nil {
				return "", false, fmt.Errorf("%w: unterminated string on line %d", ErrMalformedGML, t.line+1)
			}
			t.line += strings.Count(s, "\n")
			return gmlUnescaper.Replace(s[:len(s)-1]), true, nil
		default:
			var sb strings.Builder
			sb.WriteRune(c)
			for {
				c, _, err := t.r.ReadRune()
				if err == io.EOF {
					return sb.String(), false, nil
				}
				if err != nil {
					return "", false, err
				}
				if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '[' || c == ']' {
					if err := t.r.UnreadRune(); err != nil {
						return "", false, err
					}
					return sb.String(), false, nil
				}
				sb.WriteRune(c)
			}
		}
	}
}

// parseList reads key/value pairs until a closing bracket (nested) or EOF (top level).
func (t *gmlTokenizer) parseList(nested bool) ([]gmlPair, error) {
	pairs := make([]gmlPair, 0)
	for {
		key, quoted, err := t.next()
		if err == io.EOF {
			if nested {
				return nil, fmt.Errorf("%w: missing ']'", ErrMalformedGML)
			}
			return pairs, nil
		}
		if err != nil {
			return nil, err
		}
		if key == "]" && !quoted {
			if !nested {
				return nil, fmt.Errorf("%w: unexpected ']' on line %d", ErrMalformedGML, t.line+1)
			}
			return pairs, nil
		}
		if quoted || key == "[" {
			return nil, fmt.Errorf("%w: expected key on line %d, got %q", ErrMalformedGML, t.line+1, key)
		}

		tok, quoted, err := t.next()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: key %q has no value", ErrMalformedGML, key)
		}
		if err != nil {
			return nil, err
		}

		var value gmlValue
		switch {
		case tok == "[" && !quoted:
			list, err := t.parseList(true)
			if err != nil {
				return nil, err
			}
			value.list = list
		case tok == "]" && !quoted:
			return nil, fmt.Errorf("%w: key %q has no value", ErrMalformedGML, key)
		default:
			value.scalar = tok
			value.quoted = quoted
		}
		pairs = append(pairs, gmlPair{key: key, value: value})
	}
}

// ReadGML parses a GML document written by WriteGML (or any GML file using
// the same keys) back into a graph and the node positions it carried.
func ReadGML(r io.Reader) (*graph.Graph, map[string]layout.Position, error) {
	t := &gmlTokenizer{r: bufio.NewReader(r)}
	top, err := t.parseList(false)
	if err != nil {
		return nil, nil, err
	}

	root, ok := lookup(top, "graph")
	if !ok || !root.isList() {
		return nil, nil, fmt.Errorf("%w: no graph block", ErrMalformedGML)
	}

	g := graph.New()
	positions := make(map[string]layout.Position)
	labels := make(map[int]string)

	for _, p := range root.list {
		if p.key != "node" {
			continue
		}
		if !p.value.isList() {
			return nil, nil, fmt.Errorf("%w: node is not a block", ErrMalformedGML)
		}
		idValue, ok := lookup(p.value.list, "id")
		if !ok {
			return nil, nil, fmt.Errorf("%w: node without id", ErrMalformedGML)
		}
		id, err := idValue.int()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: node id %q: %v", ErrMalformedGML, idValue.scalar, err)
		}
		label := strconv.Itoa(id)
		if v, ok := lookup(p.value.list, "label"); ok {
			label = v.scalar
		}

		attrs := graph.Attributes{}
		if v, ok := lookup(p.value.list, "gender"); ok {
			attrs.Gender = v.scalar
		}
		if v, ok := lookup(p.value.list, "nationality"); ok {
			attrs.Nationality = v.scalar
		}
		if v, ok := lookup(p.value.list, "community"); ok {
			c, err := v.int()
			if err != nil {
				return nil, nil, fmt.Errorf("%w: community %q: %v", ErrMalformedGML, v.scalar, err)
			}
			attrs.Community = c
			attrs.HasCommunity = true
		}
		if _, _, err := g.AddNode(label, attrs); err != nil {
			return nil, nil, fmt.Errorf("node %d: %w", id, err)
		}
		labels[id] = label

		if gfx, ok := lookup(p.value.list, "graphics"); ok && gfx.isList() {
			x, xok := lookup(gfx.list, "x")
			y, yok := lookup(gfx.list, "y")
			if xok && yok {
				px, errX := x.float()
				py, errY := y.float()
				if errX != nil || errY != nil {
					return nil, nil, fmt.Errorf("%w: bad graphics for node %d", ErrMalformedGML, id)
				}
				positions[label] = layout.Position{X: px, Y: py}
			}
		}
	}

	for _, p := range root.list {
		if p.key != "edge" {
			continue
		}
		if !p.value.isList() {
			return nil, nil, fmt.Errorf("%w: edge is not a block", ErrMalformedGML)
		}
		source, err := endpoint(p.value.list, "source", labels)
		if err != nil {
			return nil, nil, err
		}
		target, err := endpoint(p.value.list, "target", labels)
		if err != nil {
			return nil, nil, err
		}
		weight := 1.0
		if v, ok := lookup(p.value.list, "weight"); ok {
			if weight, err = v.float(); err != nil {
				return nil, nil, fmt.Errorf("%w: edge weight %q", ErrMalformedGML, v.scalar)
			}
		}
		if _, err := g.AddWeightedEdge(source, target, weight); err != nil {
			return nil, nil, fmt.Errorf("edge %s--%s: %w", source, target, err)
		}
	}

	return g, positions, nil
}

func endpoint(pairs []gmlPair, key string, labels map[int]string) (string, error) {
	v, ok := lookup(pairs, key)
	if !ok {
		return "", fmt.Errorf("%w: edge without %s", ErrMalformedGML, key)
	}
	id, err := v.int()
	if err != nil {
		return "", fmt.Errorf("%w: edge %s %q", ErrMalformedGML, key, v.scalar)
	}
	label, ok := labels[id]
	if !ok {
		return "", fmt.Errorf("%w: edge %s %d references unknown node", ErrMalformedGML, key, id)
	}
	return label, nil
}
