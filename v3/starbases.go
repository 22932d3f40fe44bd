package v3

import "fmt"

// Starbase stock type codes, shared with C11 stock reconciliation
// (§3 "Stock").
const (
	stockHull     = 1
	stockEngine   = 2
	stockBeam     = 3
	stockLauncher = 4
	stockTorpedo  = 5
)

// Per-fighter build cost, the Open Question decision that reproduces
// scenario S3's worked example exactly (5 fighters cost 500 MC, 15 T,
// 10 M), recorded in DESIGN.md.
const (
	fighterCashCost       = 100
	fighterTritaniumCost  = 3
	fighterMolybdenumCost = 2
)

// stockArray gathers one base's stock amounts for a given stock type into
// a fixed-size slot array, 1-indexed by stockId. Amounts for ids beyond n
// are dropped with a Semantics warning (out-of-range build order).
func stockArray(stocks []Stock, baseID, stockType, n int, warnings *[]Warning) []uint16 {
	out := make([]uint16, n)
	for _, s := range stocks {
		if s.BaseID != baseID || s.StockType != stockType {
			continue
		}
		if s.StockID < 1 || s.StockID > n {
			*warnings = append(*warnings, Warning{Kind: Semantics, Message: fmt.Sprintf("stock id %d out of range for base %d type %d", s.StockID, baseID, stockType)})
			continue
		}
		out[s.StockID-1] = uint16(s.Amount)
	}
	return out
}

func packStockRecord(r *record, amounts []uint16) {
	for _, a := range amounts {
		r.u16(a)
	}
}

// buildSlotFor resolves buildSlot: the 1-based index of buildHullID
// inside the local race's truehull row, or 0 (with a Semantics warning)
// when the player cannot build that hull (§4.6 "Starbase").
func buildSlotFor(buildHullID int, raceHulls []int, warnings *[]Warning) int {
	if buildHullID == 0 {
		return 0
	}
	for i, h := range raceHulls {
		if h == buildHullID {
			return i + 1
		}
	}
	*warnings = append(*warnings, Warning{Kind: Semantics, Message: "build order references hull not in racehulls"})
	return 0
}

func packStarbaseRecord(b Starbase, stocks []Stock, owners *ownerMap, ownerID int, raceHulls []int, warnings *[]Warning) []byte {
	r := &record{}
	r.u16(uint16(b.PlanetID))
	r.u16(uint16(owners.raceOf(ownerID)))
	r.u16(uint16(b.Defense))
	r.u16(uint16(b.Damage))
	for _, t := range b.Tech {
		r.u16(uint16(t))
	}
	packStockRecord(r, stockArray(stocks, b.PlanetID, stockEngine, 9, warnings))
	packStockRecord(r, stockArray(stocks, b.PlanetID, stockHull, 20, warnings))
	packStockRecord(r, stockArray(stocks, b.PlanetID, stockBeam, 10, warnings))
	packStockRecord(r, stockArray(stocks, b.PlanetID, stockLauncher, 10, warnings))
	packStockRecord(r, stockArray(stocks, b.PlanetID, stockTorpedo, 10, warnings))
	r.u16(uint16(b.Fighters))
	r.u16(uint16(b.TargetShipID))
	r.u16(uint16(b.ShipMission))
	r.u16(uint16(b.Mission))
	r.u16(uint16(buildSlotFor(b.BuildHullID, raceHulls, warnings)))
	r.u16(uint16(b.BuildEngine))
	r.u16(uint16(b.BuildBeam))
	r.u16(uint16(b.BuildBeamCount))
	r.u16(uint16(b.BuildTorp))
	r.u16(uint16(b.BuildTorpCount))
	r.u16(0)
	return r.bytes()
}

// packStarbaseDis reconstructs the pre-turn starbase record and feeds the
// flow ledger with this base's build costs/outputs (§4.7) so planets and
// ships at the same coordinate can reclaim them.
func packStarbaseDis(b Starbase, stocks []Stock, owners *ownerMap, ownerID int, raceHulls []int, x, y int, ledger *Ledger, warnings *[]Warning) []byte {
	ledger.Add(x, y, counterCashUsed, int64(b.FightersBuilt)*fighterCashCost)
	ledger.Add(x, y, counterTritaniumUsed, int64(b.FightersBuilt)*fighterTritaniumCost)
	ledger.Add(x, y, counterMolybdenumUsed, int64(b.FightersBuilt)*fighterMolybdenumCost)
	ledger.Add(x, y, counterFightersBuilt, int64(b.FightersBuilt))

	for _, s := range stocks {
		if s.BaseID != b.PlanetID || s.StockType != stockTorpedo {
			continue
		}
		ledger.Add(x, y, counterTorpBuilt(s.StockID), int64(s.BuiltAmount))
	}

	dis := b
	dis.Fighters -= b.FightersBuilt
	if dis.Fighters < 0 {
		dis.Fighters = 0
	}
	return packStarbaseRecord(dis, stocks, owners, ownerID, raceHulls, warnings)
}

func decodeStockRecord(d *decoder, n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = d.u16()
	}
	return out
}

// decodeStarbaseRecord is the inverse of packStarbaseRecord. It returns
// the base fields, the raw stock slot arrays (which the caller turns into
// Stock rows via C11 reconciliation, §4.9 step 1, §4.11), and the raw
// buildSlot word. buildSlot is a 1-based index into the local race's
// truehull row, not a hull id; the caller restores base.BuildHullID via
// raceHulls[buildSlot-1] (the documented inverse of buildSlotFor), since
// this decoder has no access to racehulls.
func decodeStarbaseRecord(b []byte, owners *ownerMap) (Starbase, map[int][]uint16, int, error) {
	d := newDecoder(b)
	var base Starbase
	base.PlanetID = int(d.u16())
	d.u16() // race; ownership is derived from the planet's owner by the caller
	base.Defense = int(d.u16())
	base.Damage = int(d.u16())
	for i := range base.Tech {
		base.Tech[i] = int(d.u16())
	}
	stocks := map[int][]uint16{
		stockEngine:   decodeStockRecord(d, 9),
		stockHull:     decodeStockRecord(d, 20),
		stockBeam:     decodeStockRecord(d, 10),
		stockLauncher: decodeStockRecord(d, 10),
		stockTorpedo:  decodeStockRecord(d, 10),
	}
	base.Fighters = int(d.u16())
	base.TargetShipID = int(d.u16())
	base.ShipMission = int(d.u16())
	base.Mission = int(d.u16())
	buildSlot := int(d.u16())
	base.BuildEngine = int(d.u16())
	base.BuildBeam = int(d.u16())
	base.BuildBeamCount = int(d.u16())
	base.BuildTorp = int(d.u16())
	base.BuildTorpCount = int(d.u16())
	d.u16() // trailing reserved word
	if err := d.Err(); err != nil {
		return base, nil, 0, newErr(FormatMismatch, err, "decode starbase record")
	}
	return base, stocks, buildSlot, nil
}

// PackedStarbase bundles the .dat/.dis record pair for one included base.
type PackedStarbase struct {
	PlanetID int
	Dat, Dis []byte
}

// PackStarbases builds every base whose planet's owner equals the local
// player (§4.6 "Starbase"), in the order the bases slice lists them.
func PackStarbases(bases []Starbase, stocks []Stock, planetOwner map[int]int, localOwner int, owners *ownerMap, raceHulls []int, ledger *Ledger, coordOf map[int][2]int, warnings *[]Warning) []PackedStarbase {
	var out []PackedStarbase
	for _, b := range bases {
		if planetOwner[b.PlanetID] != localOwner {
			continue
		}
		xy := coordOf[b.PlanetID]
		out = append(out, PackedStarbase{
			PlanetID: b.PlanetID,
			Dat:      packStarbaseRecord(b, stocks, owners, localOwner, raceHulls, warnings),
			Dis:      packStarbaseDis(b, stocks, owners, localOwner, raceHulls, xy[0], xy[1], ledger, warnings),
		})
	}
	return out
}
