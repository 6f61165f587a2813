package engine

import (
	"strings"

	"pickterm/internal/model"
)

// AutoExpandDomains computes the domains an active search forces open:
// those with more than one recipient in the partition where at least one
// member's email contains the search substring. Counts and matches are taken
// over the unfiltered partition. Singleton domains are never forced open;
// they render outside any expandable group. An empty or whitespace-only
// search forces nothing.
func AutoExpandDomains(recipients []model.Recipient, search string) map[string]struct{} {
	if strings.TrimSpace(search) == "" {
		return nil
	}
	lower := strings.ToLower(search)

	counts := make(map[string]int)
	matched := make(map[string]bool)
	for _, r := range recipients {
		d := ExtractDomain(r.Email)
		counts[d]++
		if strings.Contains(strings.ToLower(r.Email), lower) {
			matched[d] = true
		}
	}

	out := make(map[string]struct{})
	for d := range matched {
		if counts[d] > 1 {
			out[d] = struct{}{}
		}
	}
	return out
}
