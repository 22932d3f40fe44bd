package v3

const vcrSignature = 0x554E

func packVCRCombatant(c VCRCombatant, owners *ownerMap) []byte {
	r := &record{}
	r.str([]byte(c.Name), 20)
	r.u16(uint16(c.Damage))
	r.u16(uint16(c.Crew))
	r.u16(uint16(c.ObjectID))
	r.u16(uint16(owners.raceOf(c.OwnerID)))
	r.u16(uint16(c.Image + 1 + 256*c.HullID))
	r.u16(uint16(c.BeamID))
	r.u16(uint16(c.BeamCount))
	r.u16(uint16(c.BayCount))
	r.u16(uint16(c.TorpID))
	r.u16(uint16(c.AmmoOrTorps))
	r.u16(uint16(c.LauncherCount))
	return r.bytes()
}

// packVCRRecord builds one battle: prologue, two combatant records,
// epilogue shields (§4.6 "VCR").
func packVCRRecord(v VCR, owners *ownerMap) []byte {
	r := &record{}
	r.u16(uint16(v.Seed))
	r.u16(vcrSignature)
	r.u16(uint16(v.Temperature))
	r.u16(uint16(v.BattleType))
	r.u16(uint16(v.LeftMass))
	r.u16(uint16(v.RightMass))
	r.raw(packVCRCombatant(v.Left, owners))
	r.raw(packVCRCombatant(v.Right, owners))
	r.u16(uint16(v.LeftShield))
	r.u16(uint16(v.RightShield))
	return r.bytes()
}

// PackVCRs concatenates every battle's record in snapshot order into the
// vcr<N>.dat content (§4.6, §4.10 "VCR writer").
func PackVCRs(vcrs []VCR, owners *ownerMap) []byte {
	var out []byte
	for _, v := range vcrs {
		out = append(out, packVCRRecord(v, owners)...)
	}
	return out
}
