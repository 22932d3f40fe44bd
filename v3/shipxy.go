package v3

// shipHullMass is an Open Question decision: the spec's shipxy quadruple
// needs a ship mass, but mass is not a modelled snapshot field. Lacking a
// hull mass table, mass is derived from the hull id itself (a stable,
// deterministic stand-in) rather than left zero for every ship; no
// template or snapshot field overrides it.
func shipHullMass(hullID int) int { return hullID * 10 }

// PackShipXY builds shipxy.dat: 999 quadruples (x, y, race, mass) as
// 16-bit little-endian words, indexed by ship id, zero-padded for gaps
// (§4.6 "ShipXY").
func PackShipXY(ships []Ship, owners *ownerMap) []byte {
	const n, size = 999, 8
	out := make([]byte, n*size)
	for _, s := range ships {
		if s.ID < 1 || s.ID > n {
			continue
		}
		r := &record{}
		r.u16(uint16(s.X)).u16(uint16(s.Y)).u16(uint16(owners.raceOf(s.OwnerID))).u16(uint16(shipHullMass(s.HullID)))
		copy(out[(s.ID-1)*size:s.ID*size], r.bytes())
	}
	return out
}
