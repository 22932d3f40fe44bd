package v3

import "testing"

func TestPackGenRSTVariantAddsExtraBytes(t *testing.T) {
	base := PackGen(GenParams{Timestamp: "01-01-202600:00:00", RaceSlot: 1, Turn: 5})
	rst := PackGen(GenParams{Timestamp: "01-01-202600:00:00", RaceSlot: 1, Turn: 5, RST: true})
	if len(rst) != len(base)+1+12 {
		t.Errorf("rst len = %d, base len = %d, want rst = base+13", len(rst), len(base))
	}
}

func TestPackGenEmbedsChecksums(t *testing.T) {
	out := PackGen(GenParams{ShipsChecksum: 0x11223344, PlanetsChecksum: 0xAABBCCDD, BasesChecksum: 0x01020304})
	d := newDecoder(out)
	d.take(18)     // timestamp
	d.take(44 * 2) // scores
	d.take(2)      // race
	d.take(20)     // password
	ships := d.u32()
	planets := d.u32()
	bases := d.u32()
	if ships != 0x11223344 || planets != 0xAABBCCDD || bases != 0x01020304 {
		t.Errorf("checksums = %X %X %X, want 11223344 AABBCCDD 01020304", ships, planets, bases)
	}
}

func TestGenScoreWordsMissingRaceIsZero(t *testing.T) {
	out := genScoreWords([]ScoreRow{{RaceID: 1, Values: [11]int32{7, 8, 9, 10}}})
	if out[0] != 7 || out[1] != 8 || out[2] != 9 || out[3] != 10 {
		t.Errorf("race 1 words = %v, want 7 8 9 10", out[:4])
	}
	if out[4] != 0 {
		t.Errorf("race 2 word 0 = %d, want 0 (missing race)", out[4])
	}
}
