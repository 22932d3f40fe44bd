package v3

// Mission numbers (snapshot convention, 0-based) that route their target
// into a distinct v3 slot rather than the generic mission1target field
// (§4.6 "Ship", verified against scenario S6).
const (
	missionTow       = 6
	missionIntercept = 7
)

func packCargoBlock(c CargoBlock) *record {
	r := &record{}
	if c.empty() {
		return r.zeros(14)
	}
	r.u16(c.TargetID)
	r.u16(c.Neutronium)
	r.u16(c.Tritanium)
	r.u16(c.Duranium)
	r.u16(c.Molybdenum)
	r.u16(c.Clans)
	r.u16(c.Supplies)
	return r
}

// packShipRecord builds one owned ship record, §4.6's full layout.
func packShipRecord(s Ship, owners *ownerMap) []byte {
	r := &record{}
	r.u16(uint16(s.ID))
	r.u16(uint16(owners.raceOf(s.OwnerID)))
	r.str([]byte(s.FriendlyCode), 3)
	r.u16(uint16(s.Warp))
	r.i16(int16(s.WaypointDX))
	r.i16(int16(s.WaypointDY))
	r.u16(uint16(s.X))
	r.u16(uint16(s.Y))
	r.u16(uint16(s.EngineID))
	r.u16(uint16(s.HullID))
	r.u16(uint16(s.BeamID))
	r.u16(uint16(s.Beams))
	r.u16(uint16(s.Bays))
	r.u16(uint16(s.TorpedoID))
	r.u16(uint16(s.Ammo))
	r.u16(uint16(s.Torps))
	r.u16(uint16(s.Mission + 1))
	r.u16(uint16(s.PrimaryEnemy))

	mission1, mission2 := shipMissionTargets(s)
	r.u16(uint16(mission1))
	r.u16(uint16(s.Damage))
	r.u16(uint16(s.Crew))
	r.u32(s.Clans)
	r.str([]byte(s.Name), 20)
	r.u16(uint16(s.Neutronium))
	r.u16(uint16(s.Tritanium))
	r.u16(uint16(s.Duranium))
	r.u16(uint16(s.Molybdenum))
	r.u16(uint16(s.Supplies))

	unload, transfer := shipCargoBlocks(s)
	r.raw(packCargoBlock(unload).bytes())
	r.raw(packCargoBlock(transfer).bytes())

	r.u16(uint16(mission2))
	r.u32(s.Megacredits)
	return r.bytes()
}

// shipMissionTargets implements the Tow/Intercept routing rule and its
// inverse (used by maketurn). Tow (6) carries its target in the early
// mission1target slot; Intercept (7) carries it in the late mission2target
// slot; every other mission passes both fields through unchanged.
func shipMissionTargets(s Ship) (mission1, mission2 int) {
	switch s.Mission {
	case missionTow:
		return s.Mission1Target, 0
	case missionIntercept:
		return 0, s.Mission1Target
	default:
		return s.Mission1Target, s.Mission2Target
	}
}

// shipCargoBlocks implements §4.6's transfer-routing rule: the unload
// block carries target type 1 (jettison, target forced to 0) or 3; the
// transfer block carries target type 2. The two never coexist on the
// wire (§4.9 drops the conflicting one with a warning before packing).
func shipCargoBlocks(s Ship) (unload, transfer CargoBlock) {
	switch s.TransferTargetType {
	case 1:
		u := s.Unload
		u.TargetID = 0
		return u, CargoBlock{}
	case 3:
		return s.Unload, CargoBlock{}
	case 2:
		return CargoBlock{}, s.Transfer
	default:
		return CargoBlock{}, CargoBlock{}
	}
}

// packShipTarget builds the reduced foreign-ship record for the "target"
// stream (§4.6 "Ship target").
func packShipTarget(s Ship, owners *ownerMap, heading int) []byte {
	r := &record{}
	r.u16(uint16(s.ID))
	r.u16(uint16(owners.raceOf(s.OwnerID)))
	r.u16(uint16(s.Warp))
	r.u16(uint16(s.X))
	r.u16(uint16(s.Y))
	r.u16(uint16(s.HullID))
	r.u16(uint16(heading))
	r.str([]byte(s.Name), 20)
	return r.bytes()
}

// packShipDis reconstructs the pre-turn ship record. Mineral/supply
// fields and ammo reconstruct through the flow ledger because a ship's
// cargo and ammo may have been topped up from a base sharing its
// coordinate (§4.7).
func packShipDis(s Ship, owners *ownerMap, ledger *Ledger) []byte {
	dis := s
	dis.Neutronium = uint32(ledger.Use(s.X, s.Y, counterNeutroniumUsed, int64(s.Neutronium)))
	dis.Tritanium = uint32(ledger.Use(s.X, s.Y, counterTritaniumUsed, int64(s.Tritanium)))
	dis.Duranium = uint32(ledger.Use(s.X, s.Y, counterDuraniumUsed, int64(s.Duranium)))
	dis.Molybdenum = uint32(ledger.Use(s.X, s.Y, counterMolybdenumUsed, int64(s.Molybdenum)))
	dis.Supplies = uint32(ledger.Use(s.X, s.Y, counterSuppliesUsed, int64(s.Supplies)))
	dis.Megacredits = uint32(ledger.Use(s.X, s.Y, counterCashUsed, int64(s.Megacredits)))

	if s.Bays > 0 {
		dis.Ammo = int(ledger.Consume(s.X, s.Y, counterFightersBuilt, int64(s.Ammo)))
	} else if s.Torps > 0 || s.TorpedoID > 0 {
		dis.Torps = int(ledger.Consume(s.X, s.Y, counterTorpBuilt(s.TorpedoID), int64(s.Torps)))
	}
	return packShipRecord(dis, owners)
}

// PackedShip bundles the .dat/.dis record pair for one owned ship.
type PackedShip struct {
	ID       int
	Dat, Dis []byte
}

// PackShips builds the .dat/.dis record pair for every ship owned by the
// local player, in the order the ships slice lists them.
func PackShips(ships []Ship, localOwner int, owners *ownerMap, ledger *Ledger) []PackedShip {
	var out []PackedShip
	for _, s := range ships {
		if s.OwnerID != localOwner {
			continue
		}
		out = append(out, PackedShip{
			ID:  s.ID,
			Dat: packShipRecord(s, owners),
			Dis: packShipDis(s, owners, ledger),
		})
	}
	return out
}

// decodeShipRecord is the inverse of packShipRecord, used by maketurn to
// read a client-edited ship<N>.dat record back off disk (§4.9 step 1).
// The owner is derived from the race word through owners; Maketurn then
// sets it to the local player. This decoder reports everything the wire
// record itself carries, including coordinates and both cargo blocks.
func decodeShipRecord(b []byte, owners *ownerMap) (Ship, error) {
	d := newDecoder(b)
	var s Ship
	s.ID = int(d.u16())
	race := int(d.u16())
	s.OwnerID = owners.ownerOf(race)
	s.FriendlyCode = fromV3String(string(d.str(3)))
	s.Warp = int(d.u16())
	s.WaypointDX = int(d.i16())
	s.WaypointDY = int(d.i16())
	s.X = int(d.u16())
	s.Y = int(d.u16())
	s.EngineID = int(d.u16())
	s.HullID = int(d.u16())
	s.BeamID = int(d.u16())
	s.Beams = int(d.u16())
	s.Bays = int(d.u16())
	s.TorpedoID = int(d.u16())
	s.Ammo = int(d.u16())
	s.Torps = int(d.u16())
	s.Mission = int(d.u16()) - 1
	s.PrimaryEnemy = int(d.u16())
	mission1 := int(d.u16())
	s.Damage = int(d.u16())
	s.Crew = int(d.u16())
	s.Clans = d.u32()
	s.Name = fromV3String(string(d.str(20)))
	s.Neutronium = uint32(d.u16())
	s.Tritanium = uint32(d.u16())
	s.Duranium = uint32(d.u16())
	s.Molybdenum = uint32(d.u16())
	s.Supplies = uint32(d.u16())
	unload := decodeCargoBlock(d)
	transfer := decodeCargoBlock(d)
	mission2 := int(d.u16())
	s.Megacredits = d.u32()
	if err := d.Err(); err != nil {
		return s, newErr(FormatMismatch, err, "decode ship record")
	}

	switch s.Mission {
	case missionTow:
		s.Mission1Target = mission1
	case missionIntercept:
		s.Mission1Target = mission2
	default:
		s.Mission1Target = mission1
		s.Mission2Target = mission2
	}

	switch {
	case !unload.empty():
		s.Unload = unload
		s.Transfer = transfer
		s.TransferTargetType = 1
	case !transfer.empty():
		s.Transfer = transfer
		s.TransferTargetType = 2
	}
	return s, nil
}

func decodeCargoBlock(d *decoder) CargoBlock {
	return CargoBlock{
		TargetID:   d.u16(),
		Neutronium: d.u16(),
		Tritanium:  d.u16(),
		Duranium:   d.u16(),
		Molybdenum: d.u16(),
		Clans:      d.u16(),
		Supplies:   d.u16(),
	}
}

// PackShipTargets builds the foreign-ship "target" stream for every ship
// not owned by the local player (result mode, §4.6).
func PackShipTargets(ships []Ship, localOwner int, owners *ownerMap) [][]byte {
	var out [][]byte
	for _, s := range ships {
		if s.OwnerID == localOwner {
			continue
		}
		out = append(out, packShipTarget(s, owners, 0))
	}
	return out
}
