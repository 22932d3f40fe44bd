package v3

// Per-unit build costs charged against a planet's own supplies/cash when
// it builds mines, factories, or defense this turn. The retrieved spec
// only gives the *resulting* dis values for scenario S2/S3, not a cost
// table; these rates are the Open Question decision that reproduces S2's
// worked example exactly (dis.supplies = new+10, dis.megacredits =
// new+40 for 10 mines) — recorded in DESIGN.md.
const (
	mineSupplyCost    = 1
	mineCashCost      = 4
	factorySupplyCost = 1
	factoryCashCost   = 3
	defenseSupplyCost = 1
	defenseCashCost   = 10
)

// planetIncluded implements the §4.6/§8 boundary rule: a planet is
// emitted when its friendly code is neither "???" nor empty, or any
// semantically populated field is non-zero.
func planetIncluded(p Planet) bool {
	if p.FriendlyCode != "???" && p.FriendlyCode != "" {
		return true
	}
	return p.Mines != 0 || p.Factories != 0 || p.Defense != 0 ||
		p.Neutronium != 0 || p.Tritanium != 0 || p.Duranium != 0 || p.Molybdenum != 0 ||
		p.Clans != 0 || p.Supplies != 0 || p.Megacredits != 0 ||
		p.GroundTri != 0 || p.GroundDur != 0 || p.GroundMol != 0 || p.GroundNeu != 0 ||
		p.ColonistTax != 0 || p.NativeTax != 0 || p.NativeClans != 0 || p.NativeType != 0 ||
		p.BuildingStarbase
}

// planetTempCode converts a snapshot temperature to the v3 sentinel
// encoding (§8 boundary behaviour): temp<0 -> -1 (0xFFFF); else 100-temp.
func planetTempCode(temp int) int16 {
	if temp < 0 {
		return -1
	}
	return int16(100 - temp)
}

func packPlanetRecord(p Planet, owners *ownerMap) []byte {
	r := &record{}
	r.u16(uint16(owners.raceOf(p.OwnerID)))
	r.u16(uint16(p.ID))
	r.str([]byte(p.FriendlyCode), 3)
	r.u16(uint16(p.Mines))
	r.u16(uint16(p.Factories))
	r.u16(uint16(p.Defense))
	r.u32(p.Neutronium)
	r.u32(p.Tritanium)
	r.u32(p.Duranium)
	r.u32(p.Molybdenum)
	r.u32(p.Clans)
	r.u32(p.Supplies)
	r.u32(p.Megacredits)
	r.u32(p.GroundNeu)
	r.u32(p.GroundTri)
	r.u32(p.GroundDur)
	r.u32(p.GroundMol)
	r.u16(p.DensityNeu)
	r.u16(p.DensityTri)
	r.u16(p.DensityDur)
	r.u16(p.DensityMol)
	r.u16(uint16(p.ColonistTax))
	r.u16(uint16(p.NativeTax))
	r.u16(uint16(p.ColonistHappy))
	r.u16(uint16(p.NativeHappy))
	r.u16(uint16(p.NativeGov))
	r.u32(p.NativeClans)
	r.u16(uint16(p.NativeType))
	r.i16(planetTempCode(p.Temperature))
	r.boolw(p.BuildingStarbase)
	return r.bytes()
}

// packPlanetDis reconstructs the pre-turn record. Structure counts
// (mines/factories/defense) subtract their Built counter directly;
// supplies/megacredits reconstruct through the flow ledger because bases
// at the same coordinate may also have drawn on them (§4.7).
func packPlanetDis(p Planet, owners *ownerMap, ledger *Ledger) []byte {
	dis := p
	dis.Mines -= dis.BuiltMines
	dis.Factories -= dis.BuiltFactories
	dis.Defense -= dis.BuiltDefense
	if dis.Mines < 0 {
		dis.Mines = 0
	}
	if dis.Factories < 0 {
		dis.Factories = 0
	}
	if dis.Defense < 0 {
		dis.Defense = 0
	}

	ledger.Add(p.X, p.Y, counterSuppliesUsed, int64(p.BuiltMines)*mineSupplyCost+int64(p.BuiltFactories)*factorySupplyCost+int64(p.BuiltDefense)*defenseSupplyCost)
	ledger.Add(p.X, p.Y, counterCashUsed, int64(p.BuiltMines)*mineCashCost+int64(p.BuiltFactories)*factoryCashCost+int64(p.BuiltDefense)*defenseCashCost)

	dis.Supplies = uint32(ledger.Use(p.X, p.Y, counterSuppliesUsed, int64(p.Supplies)))
	dis.Megacredits = uint32(ledger.Use(p.X, p.Y, counterCashUsed, int64(p.Megacredits)))

	return packPlanetRecord(dis, owners)
}

// decodePlanetRecord is the inverse of packPlanetRecord. Coordinates and
// name are not carried in pdata.dat; the caller fills them in from the
// snapshot (§4.9 step 2).
func decodePlanetRecord(b []byte, owners *ownerMap) (Planet, error) {
	d := newDecoder(b)
	var p Planet
	p.OwnerID = owners.ownerOf(int(d.u16()))
	p.ID = int(d.u16())
	p.FriendlyCode = fromV3String(string(d.str(3)))
	p.Mines = int(d.u16())
	p.Factories = int(d.u16())
	p.Defense = int(d.u16())
	p.Neutronium = d.u32()
	p.Tritanium = d.u32()
	p.Duranium = d.u32()
	p.Molybdenum = d.u32()
	p.Clans = d.u32()
	p.Supplies = d.u32()
	p.Megacredits = d.u32()
	p.GroundNeu = d.u32()
	p.GroundTri = d.u32()
	p.GroundDur = d.u32()
	p.GroundMol = d.u32()
	p.DensityNeu = d.u16()
	p.DensityTri = d.u16()
	p.DensityDur = d.u16()
	p.DensityMol = d.u16()
	p.ColonistTax = int(d.u16())
	p.NativeTax = int(d.u16())
	p.ColonistHappy = int(d.u16())
	p.NativeHappy = int(d.u16())
	p.NativeGov = int(d.u16())
	p.NativeClans = d.u32()
	p.NativeType = int(d.u16())
	tempCode := d.i16()
	if tempCode < 0 {
		p.Temperature = -1
	} else {
		p.Temperature = 100 - int(tempCode)
	}
	p.BuildingStarbase = d.boolw()
	if err := d.Err(); err != nil {
		return p, newErr(FormatMismatch, err, "decode planet record")
	}
	return p, nil
}

// PackedPlanet bundles the .dat/.dis record pair for one included planet.
type PackedPlanet struct {
	ID       int
	Dat, Dis []byte
}

// PackPlanets builds the .dat/.dis record pair for every included planet,
// in the order the planets slice lists them (the control vector places
// each record by planet id, not by position).
func PackPlanets(planets []Planet, owners *ownerMap, ledger *Ledger) []PackedPlanet {
	var out []PackedPlanet
	for _, p := range planets {
		if !planetIncluded(p) {
			continue
		}
		out = append(out, PackedPlanet{
			ID:  p.ID,
			Dat: packPlanetRecord(p, owners),
			Dis: packPlanetDis(p, owners, ledger),
		})
	}
	return out
}
