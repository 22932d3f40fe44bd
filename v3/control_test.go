package v3

import "testing"

func TestControlShipSlotBoundary(t *testing.T) {
	if got := controlShipSlot(1); got != 0 {
		t.Errorf("controlShipSlot(1) = %d, want 0", got)
	}
	if got := controlShipSlot(500); got != 499 {
		t.Errorf("controlShipSlot(500) = %d, want 499", got)
	}
	if got := controlShipSlot(501); got != 2000 {
		t.Errorf("controlShipSlot(501) = %d, want 2000", got)
	}
}

func TestBuildControlVectorChecksumConsistency(t *testing.T) {
	ships := []PackedShip{{ID: 1, Dat: []byte{1, 2, 3}}}
	planets := []PackedPlanet{{ID: 2, Dat: []byte{4, 5}}}
	bases := []PackedStarbase{{PlanetID: 3, Dat: []byte{6}}}
	vector := BuildControlVector(ships, planets, bases)

	if got := ControlChecksumAt(vector, 0); got != additiveByteSum([]byte{1, 2, 3}) {
		t.Errorf("ship slot checksum = %d, want %d", got, additiveByteSum([]byte{1, 2, 3}))
	}
	if got := ControlChecksumAt(vector, controlPlanetOffset+1); got != additiveByteSum([]byte{4, 5}) {
		t.Errorf("planet slot checksum mismatch")
	}
	if got := ControlChecksumAt(vector, controlBaseOffset+2); got != additiveByteSum([]byte{6}) {
		t.Errorf("base slot checksum mismatch")
	}
}
