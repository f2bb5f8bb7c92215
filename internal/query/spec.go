package query

import "strings"

// ParseKey parses a single sort key of the form "field" or "-field"
// (descending). Unknown fields are rejected.
func ParseKey(s string) (Key, bool) {
	s = strings.TrimSpace(s)
	desc := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	f := Field(s)
	if !KnownField(f) {
		return Key{}, false
	}
	return Key{Field: f, Desc: desc}, true
}

// ParseSpec parses a list of sort keys, skipping entries it cannot
// parse. Order is significant: earlier keys bind tighter.
func ParseSpec(keys []string) Spec {
	var spec Spec
	for _, k := range keys {
		if key, ok := ParseKey(k); ok {
			spec = append(spec, key)
		}
	}
	return spec
}

// ParseSpecString parses a comma-separated sort expression such as
// "severity,-description".
func ParseSpecString(s string) Spec {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return ParseSpec(strings.Split(s, ","))
}

// Strings renders the spec back into "-field"/"field" form.
func (s Spec) Strings() []string {
	out := make([]string, 0, len(s))
	for _, k := range s {
		if k.Desc {
			out = append(out, "-"+string(k.Field))
		} else {
			out = append(out, string(k.Field))
		}
	}
	return out
}
