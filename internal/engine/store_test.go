package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pickterm/internal/model"
)

// fixtureStore ingests the standard roster: ann and bob share timescale.com
// (available), jane is a lone available recipient, brian and kate share
// qwerty.com (selected), mike is a lone selected recipient.
func fixtureStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
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

func idOf(t *testing.T, s *Store, email string) string {
	t.Helper()
	for _, p := range []model.Panel{model.PanelAvailable, model.PanelSelected} {
		for _, r := range s.Recipients(p) {
			if r.Email == email {
				return r.ID
			}
		}
	}
	t.Fatalf("no recipient %q in store", email)
	return ""
}

func TestIngest_InitialPartition(t *testing.T) {
	s := fixtureStore(t)

	multi := s.GroupsOnly(model.PanelAvailable)
	if len(multi) != 1 || multi[0].Domain != "timescale.com" {
		t.Fatalf("available groups = %v, want [timescale.com]", groupDomains(multi))
	}
	if diff := cmp.Diff([]string{"ann@timescale.com", "bob@timescale.com"}, emails(multi[0].Recipients)); diff != "" {
		t.Fatalf("timescale members (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"jane@awesome.com"}, emails(s.Individuals(model.PanelAvailable))); diff != "" {
		t.Fatalf("available individuals (-want +got):\n%s", diff)
	}

	multi = s.GroupsOnly(model.PanelSelected)
	if len(multi) != 1 || multi[0].Domain != "qwerty.com" {
		t.Fatalf("selected groups = %v, want [qwerty.com]", groupDomains(multi))
	}
	if diff := cmp.Diff([]string{"mike@hello.com"}, emails(s.Individuals(model.PanelSelected))); diff != "" {
		t.Fatalf("selected individuals (-want +got):\n%s", diff)
	}
}

func TestIngest_SortsByEmail(t *testing.T) {
	s := NewStore()
	s.Ingest([]model.RawRecipient{
		{Email: "zed@x.com"},
		{Email: "Ann@x.com"},
		{Email: "mid@x.com"},
	})
	want := []string{"Ann@x.com", "mid@x.com", "zed@x.com"} // case-insensitive order
	if diff := cmp.Diff(want, emails(s.Recipients(model.PanelAvailable))); diff != "" {
		t.Fatalf("available order (-want +got):\n%s", diff)
	}
}

func TestIngest_ReplacesPriorState(t *testing.T) {
	s := fixtureStore(t)
	s.SelectDomainRecipients("timescale.com")

	s.Ingest([]model.RawRecipient{{Email: "only@new.com"}})
	if s.Len(model.PanelAvailable) != 1 || s.Len(model.PanelSelected) != 0 {
		t.Fatalf("re-ingest kept old state: available=%d selected=%d",
			s.Len(model.PanelAvailable), s.Len(model.PanelSelected))
	}
}

func TestIngest_EmptyAndDuplicates(t *testing.T) {
	s := NewStore()
	s.Ingest(nil)
	if s.Len(model.PanelAvailable) != 0 || s.Len(model.PanelSelected) != 0 {
		t.Fatal("empty ingest should yield an empty store")
	}

	// Duplicate emails get distinct ids and live side by side in one group.
	s.Ingest([]model.RawRecipient{
		{Email: "dup@x.com"},
		{Email: "dup@x.com"},
	})
	groups := s.GroupsOnly(model.PanelAvailable)
	if len(groups) != 1 || len(groups[0].Recipients) != 2 {
		t.Fatalf("duplicates not grouped together: %+v", groups)
	}
	if groups[0].Recipients[0].ID == groups[0].Recipients[1].ID {
		t.Fatal("duplicate emails must get distinct ids")
	}
}

func TestSelectDomainRecipients_MovesAllAndOnlyDomain(t *testing.T) {
	s := fixtureStore(t)
	s.SelectDomainRecipients("timescale.com")

	if got := s.GroupsOnly(model.PanelAvailable); len(got) != 0 {
		t.Fatalf("available groups should be empty, got %v", groupDomains(got))
	}
	if diff := cmp.Diff([]string{"jane@awesome.com"}, emails(s.Individuals(model.PanelAvailable))); diff != "" {
		t.Fatalf("jane must stay available (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"qwerty.com", "timescale.com"}, groupDomains(s.GroupsOnly(model.PanelSelected))); diff != "" {
		t.Fatalf("selected groups (-want +got):\n%s", diff)
	}

	// Nothing of the domain remains available, so a second call is a no-op.
	before := emails(s.Recipients(model.PanelSelected))
	s.SelectDomainRecipients("timescale.com")
	if diff := cmp.Diff(before, emails(s.Recipients(model.PanelSelected))); diff != "" {
		t.Fatalf("second call changed state (-want +got):\n%s", diff)
	}
}

func TestSearch_PanelIndependence(t *testing.T) {
	s := fixtureStore(t)

	// Email-only match keeps just the individual; no group survives.
	s.SetSearch(model.PanelAvailable, "jane")
	if got := s.GroupsOnly(model.PanelAvailable); len(got) != 0 {
		t.Fatalf("groups for %q = %v, want none", "jane", groupDomains(got))
	}
	if diff := cmp.Diff([]string{"jane@awesome.com"}, emails(s.Individuals(model.PanelAvailable))); diff != "" {
		t.Fatalf("individuals (-want +got):\n%s", diff)
	}

	// Domain match reveals the full group and excludes everything else.
	s.SetSearch(model.PanelAvailable, "timescale")
	groups := s.Groups(model.PanelAvailable)
	if len(groups) != 1 || groups[0].Domain != "timescale.com" || len(groups[0].Recipients) != 2 {
		t.Fatalf("groups for %q = %+v", "timescale", groups)
	}

	// The selected panel is a separate partition with its own search.
	if diff := cmp.Diff([]string{"qwerty.com"}, groupDomains(s.GroupsOnly(model.PanelSelected))); diff != "" {
		t.Fatalf("available search leaked into selected (-want +got):\n%s", diff)
	}
}

// Moving a recipient out and back restores membership as a set, not order:
// the returning id lands at the tail of the available list.
func TestMoveRoundTrip_RestoresSetNotOrder(t *testing.T) {
	s := fixtureStore(t)
	ann := idOf(t, s, "ann@timescale.com")

	before := emails(s.Recipients(model.PanelAvailable))
	s.SelectRecipient(ann)
	s.RemoveRecipient(ann)

	after := emails(s.Recipients(model.PanelAvailable))
	if len(after) != len(before) {
		t.Fatalf("round trip changed size: %v vs %v", before, after)
	}
	set := make(map[string]bool)
	for _, e := range before {
		set[e] = true
	}
	for _, e := range after {
		if !set[e] {
			t.Fatalf("unexpected member %q after round trip", e)
		}
	}
	if after[len(after)-1] != "ann@timescale.com" {
		t.Fatalf("returning id should append at the tail, got order %v", after)
	}
	// The grouped view re-sorts by domain regardless, so the display is
	// unaffected by the raw list order.
	if diff := cmp.Diff([]string{"timescale.com"}, groupDomains(s.GroupsOnly(model.PanelAvailable))); diff != "" {
		t.Fatalf("groups after round trip (-want +got):\n%s", diff)
	}
}

// Removal of an absent id is a no-op but the append still happens; the store
// leaves duplicate protection to its callers.
func TestSelectRecipient_AbsentIDStillAppends(t *testing.T) {
	s := fixtureStore(t)
	mike := idOf(t, s, "mike@hello.com") // already selected

	s.SelectRecipient(mike)
	n := 0
	for _, r := range s.Recipients(model.PanelSelected) {
		if r.ID == mike {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("expected duplicated id after misuse, found %d occurrences", n)
	}
}

func TestEffectiveExpansion(t *testing.T) {
	s := fixtureStore(t)

	// Manual toggle plumbs straight through while no search is active.
	s.ToggleExpand(model.PanelAvailable, "timescale.com")
	if _, ok := s.EffectiveExpansion(model.PanelAvailable)["timescale.com"]; !ok {
		t.Fatal("manual toggle not visible")
	}
	s.ToggleExpand(model.PanelAvailable, "timescale.com")
	if len(s.EffectiveExpansion(model.PanelAvailable)) != 0 {
		t.Fatal("second toggle should collapse")
	}

	// An active search forces the matching multi group open without a toggle.
	s.SetSearch(model.PanelAvailable, "ann")
	if _, ok := s.EffectiveExpansion(model.PanelAvailable)["timescale.com"]; !ok {
		t.Fatal("search did not auto-expand timescale.com")
	}
	// Toggling the auto-expanded domain only flips the manual set; the
	// union keeps it open while the search is active.
	s.ToggleExpand(model.PanelAvailable, "timescale.com")
	if _, ok := s.EffectiveExpansion(model.PanelAvailable)["timescale.com"]; !ok {
		t.Fatal("auto-expansion suppressed by manual toggle")
	}

	// Clearing the search reverts to the manual set alone.
	s.SetSearch(model.PanelAvailable, "")
	eff := s.EffectiveExpansion(model.PanelAvailable)
	if _, ok := eff["timescale.com"]; !ok {
		t.Fatalf("manual entry lost after clearing search: %v", eff)
	}

	// Singletons never enter the effective set via search.
	s.SetSearch(model.PanelAvailable, "jane")
	if _, ok := s.EffectiveExpansion(model.PanelAvailable)["awesome.com"]; ok {
		t.Fatal("singleton domain auto-expanded")
	}
}

// Manual expansion entries are not cleaned up when their group empties; the
// stale entry simply has nothing to show until the group returns.
func TestExpansion_SurvivesGroupEmptying(t *testing.T) {
	s := fixtureStore(t)

	s.ToggleExpand(model.PanelSelected, "qwerty.com")
	s.RemoveDomainRecipients("qwerty.com")

	if got := s.GroupsOnly(model.PanelSelected); len(got) != 0 {
		t.Fatalf("qwerty.com should have left the selected panel, got %v", groupDomains(got))
	}
	if _, ok := s.EffectiveExpansion(model.PanelSelected)["qwerty.com"]; !ok {
		t.Fatal("stale manual expansion entry should persist")
	}

	// brian and kate are back in the available partition.
	if diff := cmp.Diff([]string{"qwerty.com", "timescale.com"}, groupDomains(s.GroupsOnly(model.PanelAvailable))); diff != "" {
		t.Fatalf("available groups (-want +got):\n%s", diff)
	}
}
