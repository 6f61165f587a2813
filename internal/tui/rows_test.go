package tui

import (
	"testing"

	"pickterm/internal/engine"
	"pickterm/internal/model"
)

func testStore(t *testing.T) *engine.Store {
	t.Helper()
	s := engine.NewStore()
	s.Ingest([]model.RawRecipient{
		{Email: "ann@timescale.com"},
		{Email: "bob@timescale.com"},
		{Email: "jane@awesome.com"},
		{Email: "brian@qwerty.com", Selected: true},
		{Email: "kate@qwerty.com", Selected: true},
		{Email: "mike@hello.com", Selected: true},
	})
	return s
}

func kinds(rows []row) []rowKind {
	out := make([]rowKind, len(rows))
	for i, r := range rows {
		out[i] = r.kind
	}
	return out
}

func TestPanelRows_Collapsed(t *testing.T) {
	s := testStore(t)
	rows := panelRows(s, model.PanelAvailable)

	// One collapsed group header (timescale.com) plus jane as individual.
	if len(rows) != 2 {
		t.Fatalf("got %d rows: %v", len(rows), kinds(rows))
	}
	if rows[0].kind != rowGroup || rows[0].domain != "timescale.com" || rows[0].count != 2 {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].kind != rowIndividual || rows[1].recipient.Email != "jane@awesome.com" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}

func TestPanelRows_ExpandShowsMembers(t *testing.T) {
	s := testStore(t)
	s.ToggleExpand(model.PanelAvailable, "timescale.com")
	rows := panelRows(s, model.PanelAvailable)

	if len(rows) != 4 {
		t.Fatalf("got %d rows: %v", len(rows), kinds(rows))
	}
	if rows[1].kind != rowMember || rows[1].recipient.Email != "ann@timescale.com" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
	if rows[2].kind != rowMember || rows[2].recipient.Email != "bob@timescale.com" {
		t.Fatalf("row 2 = %+v", rows[2])
	}
}

func TestPanelRows_SearchAutoExpands(t *testing.T) {
	s := testStore(t)
	s.SetSearch(model.PanelAvailable, "timescale")
	rows := panelRows(s, model.PanelAvailable)

	// Domain match keeps the whole group and the matching member emails
	// force it open without any manual toggle; jane is filtered out.
	if len(rows) != 3 {
		t.Fatalf("got %d rows: %v", len(rows), kinds(rows))
	}
	if rows[0].kind != rowGroup || rows[0].domain != "timescale.com" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].kind != rowMember || rows[1].recipient.Email != "ann@timescale.com" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
	if rows[2].kind != rowMember || rows[2].recipient.Email != "bob@timescale.com" {
		t.Fatalf("row 2 = %+v", rows[2])
	}
}

func TestPanelRows_SearchReducedSingletonRendersAsIndividual(t *testing.T) {
	s := testStore(t)
	s.SetSearch(model.PanelAvailable, "ann")
	rows := panelRows(s, model.PanelAvailable)

	// The filter reduces timescale.com to one member, so ann renders as an
	// individual, without group chrome.
	if len(rows) != 1 {
		t.Fatalf("got %d rows: %v", len(rows), kinds(rows))
	}
	if rows[0].kind != rowIndividual || rows[0].recipient.Email != "ann@timescale.com" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
}

func TestPanelRows_PanelsIndependent(t *testing.T) {
	s := testStore(t)
	s.SetSearch(model.PanelAvailable, "zzz")

	if got := panelRows(s, model.PanelAvailable); len(got) != 0 {
		t.Fatalf("available rows = %v, want none", kinds(got))
	}
	// The selected panel keeps its own, unfiltered view.
	rows := panelRows(s, model.PanelSelected)
	if len(rows) != 2 {
		t.Fatalf("selected rows = %v", kinds(rows))
	}
	if rows[0].domain != "qwerty.com" || rows[1].recipient.Email != "mike@hello.com" {
		t.Fatalf("selected rows = %+v", rows)
	}
}
