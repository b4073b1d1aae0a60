package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// ClusterID identifies a cluster. It holds either an integer or a string.
// Integers order numerically, strings lexicographically, and integers sort
// before strings when the two kinds are mixed.
type ClusterID struct {
	num   int64
	str   string
	isNum bool
}

// IntID returns an integer cluster identifier.
func IntID(n int64) ClusterID { return ClusterID{num: n, isNum: true} }

// StringID returns a string cluster identifier.
func StringID(s string) ClusterID { return ClusterID{str: s} }

// ParseClusterID reads s as a base-10 integer when possible and falls back
// to a string identifier otherwise. Surrounding whitespace is ignored.
func ParseClusterID(s string) ClusterID {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntID(n)
	}
	return StringID(s)
}

// IsInt reports whether the identifier is numeric.
func (c ClusterID) IsInt() bool { return c.isNum }

// Int returns the numeric value; it is zero for string identifiers.
func (c ClusterID) Int() int64 { return c.num }

func (c ClusterID) String() string {
	if c.isNum {
		return strconv.FormatInt(c.num, 10)
	}
	return c.str
}

// Compare returns -1, 0 or +1 following the natural ordering of identifiers.
func (c ClusterID) Compare(o ClusterID) int {
	switch {
	case c.isNum && o.isNum:
		return cmp.Compare(c.num, o.num)
	case c.isNum:
		return -1
	case o.isNum:
		return 1
	default:
		return strings.Compare(c.str, o.str)
	}
}

// SortClusterIDs returns the distinct identifiers of ids in ascending order.
func SortClusterIDs(ids []ClusterID) []ClusterID {
	out := slices.Clone(ids)
	slices.SortFunc(out, ClusterID.Compare)
	return slices.Compact(out)
}

// UnknownLabel is the display label of clusters missing from a LabelMap.
const UnknownLabel = "Unknown"

// LabelMap maps cluster identifiers to display labels. It need not cover
// every cluster.
type LabelMap map[ClusterID]string

// Resolve returns the label of id, or UnknownLabel.
func (m LabelMap) Resolve(id ClusterID) string {
	if label, ok := m[id]; ok {
		return label
	}
	return UnknownLabel
}

// LabelsFromStrings builds a LabelMap from string keys, parsing each key
// with ParseClusterID.
func LabelsFromStrings(raw map[string]string) LabelMap {
	m := make(LabelMap, len(raw))
	for k, v := range raw {
		m[ParseClusterID(k)] = v
	}
	return m
}
