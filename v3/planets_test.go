package v3

import "testing"

func TestPlanetIncludedOmitsAllZeroUnknownFcode(t *testing.T) {
	if planetIncluded(Planet{FriendlyCode: "???"}) {
		t.Error("expected all-zero ??? planet to be omitted")
	}
}

func TestPlanetIncludedBySinglePopulatedField(t *testing.T) {
	if !planetIncluded(Planet{FriendlyCode: "???", Mines: 1}) {
		t.Error("expected planet with mines>0 to be included")
	}
}

func TestPlanetTempCodeBoundaries(t *testing.T) {
	cases := map[int]int16{-1: -1, 0: 100, 100: 0}
	for temp, want := range cases {
		if got := planetTempCode(temp); got != want {
			t.Errorf("planetTempCode(%d) = %d, want %d", temp, got, want)
		}
	}
}

func TestPackPlanetDisMinesBuiltSubtraction(t *testing.T) {
	owners := newOwnerMap(nil)
	ledger := NewLedger()
	p := Planet{ID: 10, X: 500, Y: 500, Mines: 20, BuiltMines: 10, Supplies: 90, Megacredits: 170}
	dis := packPlanetDis(p, owners, ledger)

	want := packPlanetRecord(Planet{ID: 10, X: 500, Y: 500, Mines: 10, Supplies: 100, Megacredits: 210}, owners)
	if string(dis) != string(want) {
		t.Errorf("pdata.dis mismatch:\n got  % X\n want % X", dis, want)
	}
	if !ledger.IsClean() {
		t.Errorf("expected ledger to be clean, got residuals %+v", ledger.Residuals())
	}
}

func TestDecodePlanetRecordRoundTrip(t *testing.T) {
	owners := newOwnerMap([]PlayerRef{{ID: 1, RaceID: 1}})
	p := Planet{ID: 10, OwnerID: 1, FriendlyCode: "ABC", Mines: 5, Supplies: 90, Megacredits: 170, Temperature: 50, BuildingStarbase: true}
	encoded := packPlanetRecord(p, owners)
	got, err := decodePlanetRecord(encoded, owners)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID || got.OwnerID != p.OwnerID || got.FriendlyCode != p.FriendlyCode || got.Mines != p.Mines || got.Supplies != p.Supplies || got.Megacredits != p.Megacredits || got.Temperature != p.Temperature || got.BuildingStarbase != p.BuildingStarbase {
		t.Errorf("round trip = %+v, want matching fields of %+v", got, p)
	}
}

func TestDecodePlanetRecordTempCodeBoundaries(t *testing.T) {
	owners := newOwnerMap(nil)
	for _, temp := range []int{-1, 0, 100} {
		encoded := packPlanetRecord(Planet{Temperature: temp}, owners)
		got, err := decodePlanetRecord(encoded, owners)
		if err != nil {
			t.Fatal(err)
		}
		if got.Temperature != temp {
			t.Errorf("temp round trip = %d, want %d", got.Temperature, temp)
		}
	}
}

func TestPackPlanetsSkipsExcluded(t *testing.T) {
	owners := newOwnerMap(nil)
	ledger := NewLedger()
	planets := []Planet{{ID: 1, FriendlyCode: "???"}, {ID: 2, FriendlyCode: "ABC"}}
	got := PackPlanets(planets, owners, ledger)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("PackPlanets = %+v, want only planet 2", got)
	}
}
