package v3

// Utility stream record type codes (§4.12).
const (
	utilTurnMeta   = 13
	utilIonStorm   = 17
	utilMinefield  = 0
	utilAlliedBase = 11
	utilScoreTable = 51
)

func utilRecord(recordType int, body []byte) []byte {
	r := &record{}
	r.u16(uint16(recordType))
	r.u16(uint16(len(body)))
	r.raw(body)
	return r.bytes()
}

// packTurnMetaBody renders the type-13 record: turn number and timestamp,
// the minimal payload every v3 client expects first in the stream.
func packTurnMetaBody(turn int, timestamp string) []byte {
	r := &record{}
	r.u16(uint16(turn))
	r.str([]byte(timestamp), 18)
	return r.bytes()
}

func packIonStormBody(s Ionstorm) []byte {
	r := &record{}
	r.u16(uint16(s.ID)).u16(uint16(s.X)).u16(uint16(s.Y)).u16(uint16(s.Voltage)).u16(uint16(s.Radius)).u16(uint16(s.Heading)).u16(uint16(s.Speed)).boolb(s.IsGrowing)
	return r.bytes()
}

func packMinefieldBody(m Minefield, owners *ownerMap) []byte {
	r := &record{}
	r.u16(uint16(m.ID)).u16(uint16(owners.raceOf(m.OwnerID))).u16(uint16(m.X)).u16(uint16(m.Y)).u16(uint16(m.Radius)).boolb(m.IsWeb)
	return r.bytes()
}

// packScoreTable renders the type-51 score table: one 50-byte name + v
// utility id + two reserved words + eleven V scores per race slot.
// Missing races use -1 (§4.12).
func packScoreTable(scores []ScoreRow) []byte {
	byRace := make(map[int]ScoreRow, len(scores))
	for _, s := range scores {
		byRace[s.RaceID] = s
	}
	var body []byte
	for slot := 1; slot <= 11; slot++ {
		r := &record{}
		row, ok := byRace[slot]
		if !ok {
			r.str(nil, 50).u16(0).u16(0).u16(0)
			for i := 0; i < 11; i++ {
				var missing int32 = -1
				r.u32(uint32(missing))
			}
			body = append(body, r.bytes()...)
			continue
		}
		r.str([]byte(row.Name), 50)
		r.u16(uint16(row.UtilityID))
		r.u16(0)
		r.u16(0)
		for _, v := range row.Values {
			r.u32(uint32(v))
		}
		body = append(body, r.bytes()...)
	}
	return body
}

// UtilStreamParams bundles the snapshot data the utility stream rolls up.
type UtilStreamParams struct {
	Turn       int
	Timestamp  string
	Ionstorms  []Ionstorm
	Minefields []Minefield
	Scores     []ScoreRow
}

// PackUtilStream produces the §4.12 length-tagged record stream: turn
// metadata, then one record per ion storm, one per minefield, then the
// score table. Allied-base hints (type 11) have no modelled snapshot
// source and are therefore never emitted.
func PackUtilStream(p UtilStreamParams, owners *ownerMap) []byte {
	var out []byte
	out = append(out, utilRecord(utilTurnMeta, packTurnMetaBody(p.Turn, p.Timestamp))...)
	for _, s := range p.Ionstorms {
		out = append(out, utilRecord(utilIonStorm, packIonStormBody(s))...)
	}
	for _, m := range p.Minefields {
		out = append(out, utilRecord(utilMinefield, packMinefieldBody(m, owners))...)
	}
	out = append(out, utilRecord(utilScoreTable, packScoreTable(p.Scores))...)
	return out
}
