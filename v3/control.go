package v3

// Control vector slot offsets (§3 "ships 1-500 at offsets 0-499"; §8
// "Boundary behaviour": "Ship id 501 maps to control slot 2000 (offset
// 1500 + 500)"). Ships 1..500 occupy slots 0..499 (id-1); planets and
// bases occupy a block of 500 slots each past that, also 0-based by id;
// ships 501..999 occupy a final block whose first entry (id 501) lands at
// 1500+(501-1)=2000.
const (
	controlSlots        = 2499
	controlShipLowMax   = 500
	controlPlanetOffset = 500
	controlBaseOffset   = 1000
	controlShipHighBase = 1500
)

func controlShipSlot(id int) int {
	if id <= controlShipLowMax {
		return id - 1
	}
	return controlShipHighBase + (id - 1)
}

// BuildControlVector computes the §8 invariant-1 checksum table: one
// additive byte-sum per packed .dat record, at the slot its owning entity
// resolves to.
func BuildControlVector(ships []PackedShip, planets []PackedPlanet, bases []PackedStarbase) []byte {
	out := make([]byte, controlSlots*4)
	set := func(slot int, sum uint32) {
		if slot < 0 || slot >= controlSlots {
			return
		}
		copy(out[slot*4:slot*4+4], encU32(sum))
	}
	for _, s := range ships {
		set(controlShipSlot(s.ID), additiveByteSum(s.Dat))
	}
	for _, p := range planets {
		set(controlPlanetOffset+(p.ID-1), additiveByteSum(p.Dat))
	}
	for _, b := range bases {
		set(controlBaseOffset+(b.PlanetID-1), additiveByteSum(b.Dat))
	}
	return out
}

// ControlChecksumAt reads back one slot's stored checksum; slots outside
// the vector read as 0.
func ControlChecksumAt(vector []byte, slot int) uint32 {
	if slot < 0 || slot >= controlSlots {
		return 0
	}
	d := newDecoder(vector[slot*4 : slot*4+4])
	return d.u32()
}
