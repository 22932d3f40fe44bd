package v3

import "testing"

func TestOwnerMapRoundTrip(t *testing.T) {
	m := newOwnerMap([]PlayerRef{
		{ID: 1, RaceID: 3},
		{ID: 2, RaceID: 7},
	})
	if got := m.raceOf(1); got != 3 {
		t.Errorf("raceOf(1) = %d, want 3", got)
	}
	if got := m.ownerOf(3); got != 1 {
		t.Errorf("ownerOf(3) = %d, want 1", got)
	}
}

func TestOwnerMapZeroAndUnknown(t *testing.T) {
	m := newOwnerMap([]PlayerRef{{ID: 1, RaceID: 3}})
	if got := m.raceOf(0); got != 0 {
		t.Errorf("raceOf(0) = %d, want 0", got)
	}
	if got := m.raceOf(99); got != 0 {
		t.Errorf("raceOf(unknown) = %d, want 0", got)
	}
	if got := m.ownerOf(0); got != 0 {
		t.Errorf("ownerOf(0) = %d, want 0", got)
	}
	if got := m.ownerOf(99); got != 0 {
		t.Errorf("ownerOf(unknown) = %d, want 0", got)
	}
}
