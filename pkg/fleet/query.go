package fleet

import (
	"fmt"
	"strings"
)

// queryTerm is one parsed term of the boolean query grammar the adapter
// emits. Only the forms the adapter produces are supported; the external
// index accepts a richer language, but the offline client never sees it.
type queryTerm struct {
	negated bool
	field   string
	value   string
	// presence matches any entry carrying the field (value "*")
	presence bool
	// prefix matches values starting with value (trailing "*")
	prefix bool
}

func parseQuery(query string) ([]queryTerm, error) {
	var terms []queryTerm
	for _, raw := range strings.Split(query, " AND ") {
		term := queryTerm{}
		raw = strings.TrimSpace(raw)
		if after, ok := strings.CutPrefix(raw, "NOT "); ok {
			term.negated = true
			raw = after
		}

		field, value, err := splitTerm(raw)
		if err != nil {
			return nil, err
		}
		term.field = field

		switch {
		case value == "*":
			term.presence = true
		case strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2:
			term.value = strings.ReplaceAll(value[1:len(value)-1], `\"`, `"`)
		case strings.HasSuffix(value, "*"):
			term.prefix = true
			term.value = strings.ReplaceAll(value[:len(value)-1], `\:`, ":")
		default:
			term.value = strings.ReplaceAll(value, `\:`, ":")
		}

		terms = append(terms, term)
	}
	return terms, nil
}

// splitTerm splits field:value on the first unescaped colon.
func splitTerm(raw string) (string, string, error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == ':' && (i == 0 || raw[i-1] != '\\') {
			return raw[:i], raw[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("malformed query term: %q", raw)
}

func (t queryTerm) matches(thing *Thing) bool {
	result := t.matchesValue(thing)
	if t.negated {
		return !result
	}
	return result
}

func (t queryTerm) matchesValue(thing *Thing) bool {
	switch {
	case t.field == "thingName":
		return t.matchString(thing.ThingName, true)
	case t.field == "thingGroupNames":
		for _, group := range thing.ThingGroupNames {
			if t.matchString(group, true) {
				return true
			}
		}
		return false
	case strings.HasPrefix(t.field, "attributes."):
		value, ok := thing.Attributes[strings.TrimPrefix(t.field, "attributes.")]
		return t.matchString(value, ok)
	default:
		return false
	}
}

func (t queryTerm) matchString(value string, present bool) bool {
	if t.presence {
		return present
	}
	if !present {
		return false
	}
	if t.prefix {
		return strings.HasPrefix(value, t.value)
	}
	return value == t.value
}
