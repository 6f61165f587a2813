package engine

import (
	"sort"

	"pickterm/internal/model"
)

// GroupByDomain buckets recipients by exact domain string (case-sensitive:
// Example.COM and example.com are distinct domains here, matching the rest
// of the pipeline). Recipients keep their input order within each bucket.
// Returns one group per distinct domain, sorted ascending by domain.
func GroupByDomain(recipients []model.Recipient) []model.RecipientGroup {
	buckets := make(map[string][]model.Recipient)
	for _, r := range recipients {
		d := ExtractDomain(r.Email)
		buckets[d] = append(buckets[d], r)
	}

	groups := make([]model.RecipientGroup, 0, len(buckets))
	for d, rs := range buckets {
		groups = append(groups, model.RecipientGroup{Domain: d, Recipients: rs})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return lessFold(groups[i].Domain, groups[j].Domain)
	})
	return groups
}

// SplitGroups separates multi-recipient groups from singletons. Singletons
// are flattened into one recipient list, preserving group order, and are
// rendered without group chrome.
func SplitGroups(groups []model.RecipientGroup) (multi []model.RecipientGroup, individuals []model.Recipient) {
	for _, g := range groups {
		if len(g.Recipients) > 1 {
			multi = append(multi, g)
		} else if len(g.Recipients) == 1 {
			individuals = append(individuals, g.Recipients[0])
		}
	}
	return multi, individuals
}
