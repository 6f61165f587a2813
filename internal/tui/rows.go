package tui

import (
	"pickterm/internal/engine"
	"pickterm/internal/model"
)

type rowKind int

const (
	rowGroup      rowKind = iota // collapsible domain header
	rowMember                    // recipient inside an expanded group
	rowIndividual                // singleton, rendered without group chrome
)

// row is one navigable line of a panel: a group header, a member of an
// expanded group, or an individual recipient.
type row struct {
	kind      rowKind
	domain    string // header domain, or the owning domain for members
	recipient model.Recipient
	count     int // group size, headers only
}

// panelRows flattens a panel's derived views into the navigable row list:
// multi-recipient groups first (members shown when effectively expanded),
// then the individuals.
func panelRows(s *engine.Store, p model.Panel) []row {
	expanded := s.EffectiveExpansion(p)
	multi, individuals := engine.SplitGroups(s.Groups(p))

	var rows []row
	for _, g := range multi {
		rows = append(rows, row{kind: rowGroup, domain: g.Domain, count: len(g.Recipients)})
		if _, open := expanded[g.Domain]; open {
			for _, r := range g.Recipients {
				rows = append(rows, row{kind: rowMember, domain: g.Domain, recipient: r})
			}
		}
	}
	for _, r := range individuals {
		rows = append(rows, row{kind: rowIndividual, domain: engine.ExtractDomain(r.Email), recipient: r})
	}
	return rows
}
