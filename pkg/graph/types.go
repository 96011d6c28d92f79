package graph

import (
	"fmt"
	"strings"
)

// UnknownGender is the gender recorded for artists whose records never carry one.
const UnknownGender = "Unknown"

// Attribute names a typed node attribute that can be summarized per community.
type Attribute int

const (
	// AttrGender selects Attributes.Gender
	AttrGender Attribute = iota
	// AttrNationality selects Attributes.Nationality
	AttrNationality
)

// String returns the lower-case attribute name
func (a Attribute) String() string {
	switch a {
	case AttrGender:
		return "gender"
	case AttrNationality:
		return "nationality"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Attribute) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAttribute converts a name such as "gender" or "Nationality" to an Attribute.
func ParseAttribute(s string) (Attribute, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gender":
		return AttrGender, nil
	case "nationality":
		return AttrNationality, nil
	default:
		return 0, &GraphError{Op: "parse", Entity: "attribute", ID: s, Cause: ErrUnknownAttr}
	}
}

// Attributes holds the fixed set of artist attributes carried by a node.
type Attributes struct {
	Gender       string
	Nationality  string
	Community    int
	HasCommunity bool
}

// Value returns the string value of the given attribute ("" when missing).
func (a Attributes) Value(attr Attribute) string {
	switch attr {
	case AttrGender:
		return a.Gender
	case AttrNationality:
		return a.Nationality
	default:
		return ""
	}
}

// Node represents an artist in the co-occurrence graph
type Node struct {
	ID         string
	Attributes Attributes
	index      int
}

// Index returns the dense position of the node in insertion order.
func (n *Node) Index() int {
	return n.index
}

// Edge represents an undirected co-occurrence between two artists.
// Weight counts the exhibitions the two artists share.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// String renders the edge as "from--to"
func (e Edge) String() string {
	return fmt.Sprintf("%s--%s", e.From, e.To)
}
