package node

import (
	"fmt"
	"strconv"
	"strings"
)

// Unbounded is the Max of an occurrence with maxOccurs="unbounded".
const Unbounded = -1

// Occurs holds the minOccurs/maxOccurs bounds of a particle.
type Occurs struct {
	Min int
	Max int // Unbounded for "unbounded"
	// MaxSet reports whether maxOccurs was written explicitly.
	MaxSet bool
}

// IsUnbounded reports whether the particle may repeat without limit.
func (o Occurs) IsUnbounded() bool {
	return o.Max == Unbounded
}

// Many reports whether more than one occurrence is allowed.
func (o Occurs) Many() bool {
	return o.IsUnbounded() || o.Max > 1 || o.Min > 1
}

// Optional reports whether the particle may be absent.
func (o Occurs) Optional() bool {
	return o.Min == 0
}

// Prohibited reports whether the particle may never occur.
func (o Occurs) Prohibited() bool {
	return o.Max == 0
}

// BoundsError reports inconsistent occurrence bounds.
type BoundsError struct {
	Min, Max string
	Reason   string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("invalid occurrence bounds (minOccurs=%q maxOccurs=%q): %s", e.Min, e.Max, e.Reason)
}

// Occurs returns the occurrence bounds of the node. Absent attributes
// default to 1.
func (n *Node) Occurs() (Occurs, error) {
	minAttr, maxAttr := n.Attr("minOccurs"), n.Attr("maxOccurs")
	o := Occurs{Min: 1, Max: 1, MaxSet: maxAttr != ""}
	if minAttr != "" {
		v, err := strconv.Atoi(strings.TrimSpace(minAttr))
		if err != nil || v < 0 {
			return o, &BoundsError{Min: minAttr, Max: maxAttr, Reason: "minOccurs is not a non-negative integer"}
		}
		o.Min = v
	}
	switch max := strings.TrimSpace(maxAttr); max {
	case "":
	case "unbounded":
		o.Max = Unbounded
	default:
		v, err := strconv.Atoi(max)
		if err != nil || v < 0 {
			return o, &BoundsError{Min: minAttr, Max: maxAttr, Reason: "maxOccurs is not a non-negative integer or unbounded"}
		}
		o.Max = v
	}
	switch {
	case o.Max == 0 && o.Min != 0:
		return o, &BoundsError{Min: minAttr, Max: maxAttr, Reason: "maxOccurs is zero but minOccurs is not"}
	case o.Max != Unbounded && o.Max != 0 && o.Max < o.Min:
		return o, &BoundsError{Min: minAttr, Max: maxAttr, Reason: "minOccurs is greater than maxOccurs"}
	}
	return o, nil
}
