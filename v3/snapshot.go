package v3

import "encoding/json"

// Snapshot is the decoded Nu turn object for one game, one player, one
// turn (spec.md §3, "Core entities"). Only the fields this core interprets
// are typed. ParseSnapshot keeps unrecognised top-level keys in Extra and
// unrecognised keys of planets, ships, starbases and stock in their own
// Extra maps so maketurn can echo them back unmodified (design note, §9).
// The Extra maps of the other sub-objects (player, settings, game, and
// the remaining arrays) are not filled, so their unrecognised keys are
// dropped.
type Snapshot struct {
	Player     Player      `json:"player"`
	Settings   Settings    `json:"settings"`
	Game       Game        `json:"game"`
	Players    []PlayerRef `json:"players"`
	Races      []Race      `json:"races"`
	Hulls      []Hull      `json:"hulls"`
	Beams      []Beam      `json:"beams"`
	Torpedos   []Torpedo   `json:"torpedos"`
	Engines    []Engine    `json:"engines"`
	Planets    []Planet    `json:"planets"`
	Ships      []Ship      `json:"ships"`
	Starbases  []Starbase  `json:"starbases"`
	Stock      []Stock     `json:"stock"`
	Minefields []Minefield `json:"minefields"`
	Ionstorms  []Ionstorm  `json:"ionstorms"`
	VCRs       []VCR       `json:"vcrs"`
	Messages   []Message   `json:"messages"`
	MyMessages []Message   `json:"mymessages"`
	Scores     []ScoreRow  `json:"scores"`
	RaceHulls  []int       `json:"racehulls"`

	// Extra holds every top-level key this core does not interpret.
	Extra map[string]json.RawMessage `json:"-"`
}

// ParseSnapshot decodes raw Nu JSON into a Snapshot, transliterating every
// string field encountered to v3 single-byte encoding as it goes (spec.md
// §9, design note "regex-driven JSON parser" / §4.3). Validation against
// the required-sub-object schema (A4) happens separately via
// ValidateSnapshot so callers can choose when to pay that cost.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	extra, err := unmarshalWithExtra(data, &s)
	if err != nil {
		return nil, newErr(InputShape, err, "decode snapshot")
	}
	s.Extra = extra
	transliterateSnapshot(&s)
	return &s, nil
}

// Player is the snapshot's "player" sub-object: the local human's seat.
type Player struct {
	OwnerID int                        `json:"ownerid"`
	RaceID  int                        `json:"raceid"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// Settings is the snapshot's "settings" sub-object.
type Settings struct {
	HostStart string                     `json:"hoststart"`
	Extra     map[string]json.RawMessage `json:"-"`
}

// Game is the snapshot's "game" sub-object.
type Game struct {
	Turn  int                        `json:"turn"`
	Extra map[string]json.RawMessage `json:"-"`
}

// PlayerRef is one entry of the snapshot's "players" array: the ownerId →
// raceSlot mapping that C5 consumes.
type PlayerRef struct {
	ID     int                        `json:"id"`
	RaceID int                        `json:"raceid"`
	Name   string                     `json:"name"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// Race is one entry of the snapshot's "races" array, feeding the race.nm
// synthesizer (§4.2).
type Race struct {
	ID        int                        `json:"id"`
	FullName  string                     `json:"racename"`
	ShortName string                     `json:"shortname"`
	Adjective string                     `json:"adjective"`
	Extra     map[string]json.RawMessage `json:"-"`
}

// Hull is one entry of the snapshot's "hulls" array, feeding hullspec.dat
// and the hullfunc.txt Cloak override (§4.2).
type Hull struct {
	ID       int                        `json:"id"`
	CanCloak bool                       `json:"cancloak"`
	Extra    map[string]json.RawMessage `json:"-"`
}

// Beam is one entry of the "beams" array (beamspec.dat, §6).
type Beam struct {
	ID    int                        `json:"id"`
	Extra map[string]json.RawMessage `json:"-"`
}

// Torpedo is one entry of the "torpedos" array (torpspec.dat, §6).
type Torpedo struct {
	ID    int                        `json:"id"`
	Extra map[string]json.RawMessage `json:"-"`
}

// Engine is one entry of the "engines" array (engspec.dat, §6).
type Engine struct {
	ID    int                        `json:"id"`
	Extra map[string]json.RawMessage `json:"-"`
}

// Planet is one entry of the snapshot's "planets" array (§4.6 "Planet").
type Planet struct {
	ID               int    `json:"id"`
	OwnerID          int    `json:"ownerid"`
	Name             string `json:"name"`
	FriendlyCode     string `json:"fcode"`
	X                int    `json:"x"`
	Y                int    `json:"y"`
	Mines            int    `json:"mines"`
	Factories        int    `json:"factories"`
	Defense          int    `json:"defense"`
	Neutronium       uint32 `json:"neutronium"`
	Tritanium        uint32 `json:"tritanium"`
	Duranium         uint32 `json:"duranium"`
	Molybdenum       uint32 `json:"molybdenum"`
	Clans            uint32 `json:"clans"`
	Supplies         uint32 `json:"supplies"`
	Megacredits      uint32 `json:"megacredits"`
	GroundTri        uint32 `json:"groundtritanium"`
	GroundDur        uint32 `json:"groundduranium"`
	GroundMol        uint32 `json:"groundmolybdenum"`
	GroundNeu        uint32 `json:"groundneutronium"`
	DensityTri       uint16 `json:"densitytritanium"`
	DensityDur       uint16 `json:"densityduranium"`
	DensityMol       uint16 `json:"densitymolybdenum"`
	DensityNeu       uint16 `json:"densityneutronium"`
	ColonistTax      int    `json:"colonisttax"`
	NativeTax        int    `json:"nativetax"`
	ColonistHappy    int    `json:"colonisthappy"`
	NativeHappy      int    `json:"nativehappy"`
	NativeGov        int    `json:"nativegovernment"`
	NativeClans      uint32 `json:"nativeclans"`
	NativeType       int    `json:"nativetype"`
	Temperature      int    `json:"temp"`
	BuildingStarbase bool   `json:"buildingstarbase"`

	// Build/production bookkeeping consumed by the flow ledger (§4.7).
	BuiltMines     int    `json:"builtmines"`
	BuiltFactories int    `json:"builtfactories"`
	BuiltDefense   int    `json:"builtdefense"`
	SuppliesSold   uint32 `json:"suppliessold"`

	Extra map[string]json.RawMessage `json:"-"`
}

// CargoBlock is the 7-word (target + 5 minerals/supplies + clans) layout
// shared by a ship's unload and ship-to-ship transfer records (§4.6's "v7
// unload; v7 transfer"). This composition is an Open Question resolution
// recorded in DESIGN.md.
type CargoBlock struct {
	TargetID   uint16 `json:"targetid"`
	Neutronium uint16 `json:"neutronium"`
	Tritanium  uint16 `json:"tritanium"`
	Duranium   uint16 `json:"duranium"`
	Molybdenum uint16 `json:"molybdenum"`
	Clans      uint16 `json:"clans"`
	Supplies   uint16 `json:"supplies"`
}

func (c CargoBlock) empty() bool {
	return c == CargoBlock{}
}

// Ship is one entry of the snapshot's "ships" array (§4.6 "Ship").
type Ship struct {
	ID             int    `json:"id"`
	OwnerID        int    `json:"ownerid"`
	FriendlyCode   string `json:"fcode"`
	Warp           int    `json:"warp"`
	WaypointDX     int    `json:"dx"`
	WaypointDY     int    `json:"dy"`
	X              int    `json:"x"`
	Y              int    `json:"y"`
	EngineID       int    `json:"engineid"`
	HullID         int    `json:"hullid"`
	BeamID         int    `json:"beamid"`
	Beams          int    `json:"beams"`
	Bays           int    `json:"bays"`
	TorpedoID      int    `json:"torpedoid"`
	Ammo           int    `json:"ammo"`
	Torps          int    `json:"torps"`
	Mission        int    `json:"mission"` // 0-based, snapshot convention
	PrimaryEnemy   int    `json:"primaryenemy"`
	Mission1Target int    `json:"mission1target"`
	Mission2Target int    `json:"mission2target"`
	Damage         int    `json:"damage"`
	Crew           int    `json:"crew"`
	Clans          uint32 `json:"clans"`
	Name           string `json:"name"`

	Neutronium  uint32 `json:"neutronium"`
	Tritanium   uint32 `json:"tritanium"`
	Duranium    uint32 `json:"duranium"`
	Molybdenum  uint32 `json:"molybdenum"`
	Supplies    uint32 `json:"supplies"`
	Megacredits uint32 `json:"megacredits"`

	// TransferTargetType distinguishes jettison (1), ship-to-ship (2), or
	// a FIXME-flagged target type (3, jettison variant), per §4.9's
	// "Transfer routing" rule and §9's open questions.
	TransferTargetType int        `json:"transfertargettype"`
	Unload             CargoBlock `json:"unload"`
	Transfer           CargoBlock `json:"transfer"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Starbase is one entry of the snapshot's "starbases" array (§4.6
// "Starbase").
type Starbase struct {
	PlanetID int    `json:"planetid"`
	Defense  int    `json:"defense"`
	Damage   int    `json:"damage"`
	Tech     [4]int `json:"tech"` // hull,engine,beam,torp tech levels

	Fighters     int `json:"fighters"`
	TargetShipID int `json:"targetshipid"`
	ShipMission  int `json:"shipmission"`
	Mission      int `json:"mission"`

	BuildHullID    int `json:"buildhullid"`
	BuildEngine    int `json:"buildengineid"`
	BuildBeam      int `json:"buildbeamid"`
	BuildBeamCount int `json:"buildbeamcount"`
	BuildTorp      int `json:"buildtorpedoid"`
	BuildTorpCount int `json:"buildtorpedocount"`

	// FightersBuilt feeds the flow ledger's fightersBuilt counter (§4.7);
	// unlike hull/engine/beam/launcher/torpedo stock it has no Stock row
	// of its own.
	FightersBuilt int `json:"fightersbuilt"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Stock is a starbase inventory record (§3 "Stock").
type Stock struct {
	ID          int `json:"id"`
	BaseID      int `json:"baseid"`
	StockType   int `json:"stocktype"` // 1=hull 2=engine 3=beam 4=launcher 5=torpedo
	StockID     int `json:"stockid"`
	Amount      int `json:"amount"`
	BuiltAmount int `json:"builtamount"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Minefield is one entry of the "minefields" array.
type Minefield struct {
	ID      int  `json:"id"`
	OwnerID int  `json:"ownerid"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Radius  int  `json:"radius"`
	IsWeb   bool `json:"isweb"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Ionstorm is one entry of the "ionstorms" array (§4.4 synthesized
// messages).
type Ionstorm struct {
	ID        int  `json:"id"`
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Voltage   int  `json:"voltage"`
	Radius    int  `json:"radius"`
	Heading   int  `json:"heading"`
	Speed     int  `json:"speed"`
	IsGrowing bool `json:"isgrowing"`

	Extra map[string]json.RawMessage `json:"-"`
}

// VCRCombatant is one side of a VCR record (§4.6 "VCR").
type VCRCombatant struct {
	Name          string `json:"name"`
	Damage        int    `json:"damage"`
	Crew          int    `json:"crew"`
	ObjectID      int    `json:"objectid"`
	OwnerID       int    `json:"ownerid"`
	Image         int    `json:"image"`
	HullID        int    `json:"hullid"`
	BeamID        int    `json:"beamid"`
	BeamCount     int    `json:"beamcount"`
	BayCount      int    `json:"baycount"`
	TorpID        int    `json:"torpedoid"`
	AmmoOrTorps   int    `json:"ammo"`
	LauncherCount int    `json:"launchercount"`
}

// VCR is one entry of the "vcrs" array.
type VCR struct {
	Seed        int          `json:"seed"`
	Temperature int          `json:"temperature"`
	BattleType  int          `json:"battletype"`
	LeftMass    int          `json:"leftmass"`
	RightMass   int          `json:"rightmass"`
	Left        VCRCombatant `json:"left"`
	Right       VCRCombatant `json:"right"`
	LeftShield  int          `json:"leftshield"`
	RightShield int          `json:"rightshield"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Message is one entry of the "messages"/"mymessages" arrays (§4.4).
type Message struct {
	ID          int    `json:"id"`
	MessageType int    `json:"messagetype"` // 0..21
	TargetID    int    `json:"targetid"`
	FromName    string `json:"fromname"`
	Body        string `json:"body"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	HasCoords   bool   `json:"hascoords"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ScoreRow is one race's row of the utility-stream score table (§4.12).
type ScoreRow struct {
	RaceID    int       `json:"raceid"`
	Name      string    `json:"name"`
	UtilityID int       `json:"utilityid"`
	Values    [11]int32 `json:"values"`

	Extra map[string]json.RawMessage `json:"-"`
}
