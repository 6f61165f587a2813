// Package engine implements the recipient grouping-and-filtering core: the
// membership partition between the available and selected panels, the four
// move actions, and the derived group/filter/expansion views recomputed from
// current state on every read.
package engine

import "pickterm/internal/model"

// Store is the single state container for the picker. It holds the id→record
// lookup table (read-only after ingestion), the two ordered id lists, and
// per-panel view state (search string, manual expansion set).
//
// Not safe for concurrent use: every read and write happens on the UI update
// loop, and an action's effects are fully visible to every subsequent read.
type Store struct {
	recipientsByID map[string]model.Recipient
	availableIDs   []string
	selectedIDs    []string

	search   map[model.Panel]string
	expanded map[model.Panel]map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		recipientsByID: make(map[string]model.Recipient),
		search:         make(map[model.Panel]string),
		expanded: map[model.Panel]map[string]struct{}{
			model.PanelAvailable: {},
			model.PanelSelected:  {},
		},
	}
}

func (s *Store) ids(p model.Panel) []string {
	if p == model.PanelSelected {
		return s.selectedIDs
	}
	return s.availableIDs
}

// Recipients resolves a panel's id list against the lookup table, in list
// order. Ids without a record are skipped.
func (s *Store) Recipients(p model.Panel) []model.Recipient {
	ids := s.ids(p)
	out := make([]model.Recipient, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.recipientsByID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Recipient looks up a single record by id.
func (s *Store) Recipient(id string) (model.Recipient, bool) {
	r, ok := s.recipientsByID[id]
	return r, ok
}

// Len is the number of recipients currently in a panel.
func (s *Store) Len(p model.Panel) int { return len(s.ids(p)) }

// Groups returns the panel's domain groups after applying its search filter.
func (s *Store) Groups(p model.Panel) []model.RecipientGroup {
	return FilterGroups(GroupByDomain(s.Recipients(p)), s.search[p])
}

// GroupsOnly returns the panel's groups holding two or more recipients.
func (s *Store) GroupsOnly(p model.Panel) []model.RecipientGroup {
	multi, _ := SplitGroups(s.Groups(p))
	return multi
}

// Individuals returns the panel's singleton recipients, flattened in group
// order.
func (s *Store) Individuals(p model.Panel) []model.Recipient {
	_, individuals := SplitGroups(s.Groups(p))
	return individuals
}

// Search returns the panel's current search string.
func (s *Store) Search(p model.Panel) string { return s.search[p] }

// SetSearch replaces the panel's search string. Clearing it reverts the
// displayed expansion to the manual set alone.
func (s *Store) SetSearch(p model.Panel, q string) { s.search[p] = q }

// ToggleExpand flips a domain in the panel's manual expansion set. Entries
// for groups that have since emptied are kept around; they are harmless and
// take effect again if the group comes back.
func (s *Store) ToggleExpand(p model.Panel, domain string) {
	set := s.expanded[p]
	if _, ok := set[domain]; ok {
		delete(set, domain)
	} else {
		set[domain] = struct{}{}
	}
}

// EffectiveExpansion is the manual set unioned with the domains the panel's
// active search forces open. The union is one-way: a manual toggle never
// suppresses an auto-expanded domain while the search stays active.
func (s *Store) EffectiveExpansion(p model.Panel) map[string]struct{} {
	out := make(map[string]struct{}, len(s.expanded[p]))
	for d := range s.expanded[p] {
		out[d] = struct{}{}
	}
	for d := range AutoExpandDomains(s.Recipients(p), s.search[p]) {
		out[d] = struct{}{}
	}
	return out
}

// SelectRecipient moves one recipient from available to selected, appending
// at the selected tail. Removal of an absent id is a no-op but the append
// still happens; callers only pass ids currently shown in the available
// panel.
func (s *Store) SelectRecipient(id string) {
	s.availableIDs = removeID(s.availableIDs, id)
	s.selectedIDs = append(s.selectedIDs, id)
}

// RemoveRecipient is the inverse: selected back to the available tail.
func (s *Store) RemoveRecipient(id string) {
	s.selectedIDs = removeID(s.selectedIDs, id)
	s.availableIDs = append(s.availableIDs, id)
}

// SelectDomainRecipients moves every available recipient whose domain
// matches exactly, in their current relative order, to the selected tail.
func (s *Store) SelectDomainRecipients(domain string) {
	moved, rest := s.splitByDomain(s.availableIDs, domain)
	s.availableIDs = rest
	s.selectedIDs = append(s.selectedIDs, moved...)
}

// RemoveDomainRecipients is the inverse of SelectDomainRecipients.
func (s *Store) RemoveDomainRecipients(domain string) {
	moved, rest := s.splitByDomain(s.selectedIDs, domain)
	s.selectedIDs = rest
	s.availableIDs = append(s.availableIDs, moved...)
}

func (s *Store) splitByDomain(ids []string, domain string) (moved, rest []string) {
	for _, id := range ids {
		if r, ok := s.recipientsByID[id]; ok && ExtractDomain(r.Email) == domain {
			moved = append(moved, id)
		} else {
			rest = append(rest, id)
		}
	}
	return moved, rest
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
