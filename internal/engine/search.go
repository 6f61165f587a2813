package engine

import (
	"strings"

	"pickterm/internal/model"
)

// MatchesSearch reports whether a recipient matches the search string.
// Matching is case-insensitive against both the full email and its domain.
// An empty or whitespace-only search matches everything.
func MatchesSearch(r model.Recipient, search string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}
	lower := strings.ToLower(search)
	if strings.Contains(strings.ToLower(r.Email), lower) {
		return true
	}
	return strings.Contains(strings.ToLower(ExtractDomain(r.Email)), lower)
}

// FilterGroups applies the search string to a group list. A domain-level
// match wins and keeps the whole group's member list; otherwise the group is
// reduced to its individually matching members and dropped when none remain.
// Group order is preserved; an empty search returns the input unchanged.
func FilterGroups(groups []model.RecipientGroup, search string) []model.RecipientGroup {
	if strings.TrimSpace(search) == "" {
		return groups
	}
	lower := strings.ToLower(search)

	var out []model.RecipientGroup
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Domain), lower) {
			out = append(out, g)
			continue
		}
		var kept []model.Recipient
		for _, r := range g.Recipients {
			if MatchesSearch(r, search) {
				kept = append(kept, r)
			}
		}
		if len(kept) > 0 {
			out = append(out, model.RecipientGroup{Domain: g.Domain, Recipients: kept})
		}
	}
	return out
}
