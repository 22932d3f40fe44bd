package v3

// GenParams bundles the inputs to the general-state section (§4.6
// "General state (gen.dat)"): the packed section checksums it embeds
// (invariant 2, "Gen embedding"), the local race slot, turn number, and
// the already-computed timestamp string (C2's transform of
// settings.hoststart).
type GenParams struct {
	Timestamp       string // already in v3 single-byte encoding, <=18 bytes
	RaceSlot        int
	Turn            int
	ShipsChecksum   uint32
	PlanetsChecksum uint32
	BasesChecksum   uint32
	RST             bool
	Scores          []ScoreRow
}

// genScoreWords lays 11 race slots of 4 score categories each into the
// 44-word block. Missing race slots are zero; only the first four values
// of each ScoreRow feed this smaller summary (the full 11-value table
// lives in the C12 utility stream). Open Question decision, DESIGN.md.
func genScoreWords(scores []ScoreRow) []uint16 {
	byRace := make(map[int]ScoreRow, len(scores))
	for _, s := range scores {
		byRace[s.RaceID] = s
	}
	out := make([]uint16, 44)
	for slot := 1; slot <= 11; slot++ {
		row, ok := byRace[slot]
		base := (slot - 1) * 4
		if !ok {
			continue
		}
		for i := 0; i < 4; i++ {
			out[base+i] = uint16(row.Values[i])
		}
	}
	return out
}

// PackGen builds gen.dat. The rst and unpacked variants differ only in
// whether the literal '?' byte and the 12-byte filler appear (§4.6).
func PackGen(p GenParams) []byte {
	r := &record{}
	r.str([]byte(p.Timestamp), 18)
	for _, w := range genScoreWords(p.Scores) {
		r.u16(w)
	}
	r.u16(uint16(p.RaceSlot))
	r.str([]byte("NOPASSWORD"), 20)
	if p.RST {
		r.raw([]byte{'?'})
	}
	r.u32(p.ShipsChecksum)
	r.u32(p.PlanetsChecksum)
	r.u32(p.BasesChecksum)
	if p.RST {
		r.raw(append([]byte{0, 0}, []byte("          ")...))
	}
	r.u16(uint16(p.Turn))
	r.u16(uint16(additiveByteSum(encStr([]byte(p.Timestamp), 18)) & 0xFFFF))
	return r.bytes()
}
