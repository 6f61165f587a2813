package engine

import "strings"

// ExtractDomain returns the part of an email address after the first '@'.
// Addresses without an '@' get the empty domain and end up grouped together
// in the empty-domain bucket rather than failing.
func ExtractDomain(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}

// lessFold orders strings case-insensitively, falling back to byte order so
// strings with equal folds still sort deterministically.
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
