package repo

import "strings"

// CanonicalGroupName converts a user-facing group name to the canonical form
// both stores key on: lowercase with spaces replaced by hyphens, so
// "Acme Corp" becomes "acme-corp".
func CanonicalGroupName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// DisplayGroupName converts a canonical group name back to the identity
// provider's display form: "acme-corp" becomes "Acme Corp". Only Keycloak
// round-trips use this; store keys always use the canonical form.
func DisplayGroupName(name string) string {
	parts := strings.Split(name, "-")
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

func canonicalizeOpt(name *string) *string {
	if name == nil {
		return nil
	}
	canonical := CanonicalGroupName(*name)
	return &canonical
}
