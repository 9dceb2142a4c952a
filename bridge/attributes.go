package bridge

import (
	"sort"

	"github.com/jrsteele09/go-cognito-bridge/userpool"
)

// AttributesFactory converts an attribute map into the vendor's list form, one
// entry per key. Keys are emitted in sorted order since maps carry none.
func AttributesFactory(attributes map[string]string) []userpool.AttributeType {
	if len(attributes) == 0 {
		return nil
	}
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]userpool.AttributeType, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, userpool.AttributeType{Name: name, Value: attributes[name]})
	}
	return attrs
}

// AttributesMap is the inverse of AttributesFactory. A repeated name keeps its
// last value.
func AttributesMap(attrs []userpool.AttributeType) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}
