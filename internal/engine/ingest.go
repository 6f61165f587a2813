package engine

import (
	"sort"

	"github.com/google/uuid"

	"pickterm/internal/model"
)

// Ingest replaces all membership state with the given roster records. Each
// record gets a fresh uuid, the lookup table is rebuilt, and the ids are
// partitioned by the seed flag in input order, then each list is sorted
// ascending by email, case-insensitively. Running it again discards the
// previous roster entirely.
//
// Search strings and manual expansion sets are panel UI state, not
// membership state, and survive a re-ingest.
func (s *Store) Ingest(raw []model.RawRecipient) {
	byID := make(map[string]model.Recipient, len(raw))
	var available, selected []string
	for _, rec := range raw {
		id := uuid.NewString()
		byID[id] = model.Recipient{ID: id, Email: rec.Email}
		if rec.Selected {
			selected = append(selected, id)
		} else {
			available = append(available, id)
		}
	}

	sortByEmail := func(ids []string) {
		sort.SliceStable(ids, func(i, j int) bool {
			return lessFold(byID[ids[i]].Email, byID[ids[j]].Email)
		})
	}
	sortByEmail(available)
	sortByEmail(selected)

	s.recipientsByID = byID
	s.availableIDs = available
	s.selectedIDs = selected
}
