package v3

import "testing"

func TestSynthesizeSimpleSpecFileSizeAndZeroFallback(t *testing.T) {
	var warnings []Warning
	def := simpleSpecFiles[0] // beamspec.dat
	out, err := synthesizeSimpleSpecFile(def, map[int]namedEntity{}, "", "", &warnings)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != def.NumEntries*def.EntrySize {
		t.Errorf("len = %d, want %d", len(out), def.NumEntries*def.EntrySize)
	}
	if len(warnings) != 1 || warnings[0].Kind != Template {
		t.Errorf("expected one Template warning, got %+v", warnings)
	}
	// No template, no matching entity: name should be "#1".
	first := out[0:20]
	if string(first[:2]) != "#1" {
		t.Errorf("record 1 name = %q, want prefix #1", first)
	}
}

func TestSynthesizeSimpleSpecFileOverlaysNuName(t *testing.T) {
	var warnings []Warning
	def := simpleSpecFiles[0]
	entities := map[int]namedEntity{1: {ID: 1, Name: "Blaster"}}
	out, err := synthesizeSimpleSpecFile(def, entities, "", "", &warnings)
	if err != nil {
		t.Fatal(err)
	}
	name := out[0:20]
	got := string(name[:7])
	if got != "Blaster" {
		t.Errorf("record 1 name = %q, want Blaster", got)
	}
}

func TestSynthesizeXYPlanSize(t *testing.T) {
	owners := newOwnerMap([]PlayerRef{{ID: 1, RaceID: 3}})
	out := synthesizeXYPlan([]Planet{{ID: 1, X: 1000, Y: 2000, OwnerID: 1}}, owners)
	if len(out) != 3000 {
		t.Fatalf("len = %d, want 3000", len(out))
	}
	d := newDecoder(out[0:6])
	if x := d.u16(); x != 1000 {
		t.Errorf("x = %d, want 1000", x)
	}
	if y := d.u16(); y != 2000 {
		t.Errorf("y = %d, want 2000", y)
	}
	if race := d.u16(); race != 3 {
		t.Errorf("race = %d, want 3", race)
	}
}

func TestSynthesizePlanetNamesSize(t *testing.T) {
	out := synthesizePlanetNames([]Planet{{ID: 1, Name: "Earth"}})
	if len(out) != 10000 {
		t.Fatalf("len = %d, want 10000", len(out))
	}
	if got := string(out[0:5]); got != "Earth" {
		t.Errorf("name = %q, want Earth", got)
	}
}

func TestSynthesizeRaceNamesSize(t *testing.T) {
	out := synthesizeRaceNames([]Race{{ID: 1, FullName: "The Feds", ShortName: "Feds", Adjective: "Federal"}})
	if len(out) != 682 {
		t.Fatalf("len = %d, want 682", len(out))
	}
}

func TestSynthesizeTrueHullPreservesOtherRows(t *testing.T) {
	template := make([]byte, 440)
	for i := range template {
		template[i] = byte(i % 7)
	}
	out := synthesizeTrueHull(2, []int{5, 6, 7}, template)
	if len(out) != 440 {
		t.Fatalf("len = %d, want 440", len(out))
	}
	// Row 1 (race slot 1) untouched, should equal template.
	for i := 0; i < 40; i++ {
		if out[i] != template[i] {
			t.Errorf("row1[%d] = %d, want template %d", i, out[i], template[i])
		}
	}
	d := newDecoder(out[40:42])
	if got := d.u16(); got != 5 {
		t.Errorf("row2[0] = %d, want 5", got)
	}
}

func TestSynthesizeHullFuncOnlyCloakHulls(t *testing.T) {
	hulls := []Hull{{ID: 1, CanCloak: false}, {ID: 2, CanCloak: true}, {ID: 3, CanCloak: true}}
	out := string(synthesizeHullFunc(hulls))
	if !containsLine(out, "Hull 2 Add Cloak") || !containsLine(out, "Hull 3 Add Cloak") {
		t.Errorf("hullfunc.txt = %q, missing cloak grants", out)
	}
	if containsLine(out, "Hull 1 Add Cloak") {
		t.Errorf("hull 1 should not have cloak, got %q", out)
	}
}

func containsLine(text, line string) bool {
	for _, l := range splitLines(text) {
		if l == line {
			return true
		}
	}
	return false
}
