package v3

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// commandField is one key/value pair of a command record.
type commandField struct {
	Key   string
	Value string
}

func field(key string, value any) commandField {
	return commandField{Key: key, Value: fmt.Sprint(value)}
}

// renderCommand assembles one "Kind<id>=key:::value|||..." record (§3
// "Command record"). Extra fields are appended last, already JSON-encoded
// text, so unknown pass-through data round-trips untouched.
func renderCommand(kind string, id int, fields []commandField, extra map[string]json.RawMessage) string {
	parts := make([]string, 0, len(fields)+len(extra))
	for _, f := range fields {
		parts = append(parts, f.Key+":::"+f.Value)
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+":::"+string(extra[k]))
	}
	return fmt.Sprintf("%s%d=%s", kind, id, strings.Join(parts, "|||"))
}

// MaketurnResult is the diffed command stream plus any accumulated
// warnings (§4.9).
type MaketurnResult struct {
	Commands []string
	Warnings []Warning
	Stock    []Stock
}

// MaketurnInput bundles the client-written v3 tree.
type MaketurnInput struct {
	ShipDat  []byte
	PdataDat []byte
	BdataDat []byte
}

// primaryEnemySeat validates §4.9's "Primary enemy" rule: unknown seats
// log and fall back to 0.
func primaryEnemySeat(candidate int, players []PlayerRef, warnings *[]Warning) int {
	if candidate == 0 {
		return 0
	}
	for _, p := range players {
		if p.ID == candidate {
			return candidate
		}
	}
	*warnings = append(*warnings, Warning{Kind: Semantics, Message: fmt.Sprintf("unknown primary enemy seat %d", candidate)})
	return 0
}

// restoredShipName implements §4.9's name rule: if the truncated-to-20
// edited name equals the truncated-to-20 original, keep the (possibly
// longer) original.
func restoredShipName(edited, original string) string {
	truncate := func(s string) string {
		if len(s) > 20 {
			return s[:20]
		}
		return s
	}
	if truncate(edited) == truncate(original) {
		return original
	}
	return edited
}

// shipCommandFields lists every field a ship command carries, in the
// order the snapshot itself presents them.
func shipCommandFields(s Ship) []commandField {
	return []commandField{
		field("fcode", s.FriendlyCode),
		field("warp", s.Warp),
		field("dx", s.WaypointDX),
		field("dy", s.WaypointDY),
		field("mission", s.Mission),
		field("primaryenemy", s.PrimaryEnemy),
		field("mission1target", s.Mission1Target),
		field("mission2target", s.Mission2Target),
		field("name", s.Name),
		field("neutronium", s.Neutronium),
		field("tritanium", s.Tritanium),
		field("duranium", s.Duranium),
		field("molybdenum", s.Molybdenum),
		field("supplies", s.Supplies),
		field("megacredits", s.Megacredits),
		field("transfertargettype", s.TransferTargetType),
		field("unload", cargoBlockText(s.Unload)),
		field("transfer", cargoBlockText(s.Transfer)),
	}
}

func cargoBlockText(c CargoBlock) string {
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d,%d", c.TargetID, c.Neutronium, c.Tritanium, c.Duranium, c.Molybdenum, c.Clans, c.Supplies)
}

func planetCommandFields(p Planet) []commandField {
	return []commandField{
		field("fcode", p.FriendlyCode),
		field("mines", p.Mines),
		field("factories", p.Factories),
		field("defense", p.Defense),
		field("supplies", p.Supplies),
		field("megacredits", p.Megacredits),
		field("colonisttax", p.ColonistTax),
		field("nativetax", p.NativeTax),
		field("buildingstarbase", p.BuildingStarbase),
	}
}

func baseCommandFields(b Starbase) []commandField {
	return []commandField{
		field("defense", b.Defense),
		field("fighters", b.Fighters),
		field("mission", b.Mission),
		field("shipmission", b.ShipMission),
		field("targetshipid", b.TargetShipID),
		field("buildhullid", b.BuildHullID),
		field("buildengineid", b.BuildEngine),
		field("buildbeamid", b.BuildBeam),
		field("buildbeamcount", b.BuildBeamCount),
		field("buildtorpedoid", b.BuildTorp),
		field("buildtorpedocount", b.BuildTorpCount),
	}
}

func stockCommandFields(s Stock) []commandField {
	return []commandField{
		field("baseid", s.BaseID),
		field("stocktype", s.StockType),
		field("stockid", s.StockID),
		field("amount", s.Amount),
		field("builtamount", s.BuiltAmount),
	}
}

// Maketurn reads the client-edited v3 tree, reconciles it against the
// original snapshot, and emits the command stream (§4.9 "Maketurn
// pipeline"). The ledger argument is not read: per-location flows
// (supplies sold, torpedoes and fighters built) are not recomputed.
func Maketurn(snap *Snapshot, tree MaketurnInput, ledger *Ledger, log *zap.Logger) (*MaketurnResult, error) {
	if log == nil {
		log = nopLogger()
	}
	runID := uuid.New().String()[:8]
	log = log.With(zap.String("run", runID))
	owners := newOwnerMap(snap.Players)
	localOwner := snap.Player.OwnerID

	result := &MaketurnResult{}

	snapPlanets := make(map[int]Planet, len(snap.Planets))
	for _, p := range snap.Planets {
		snapPlanets[p.ID] = p
	}
	snapShips := make(map[int]Ship, len(snap.Ships))
	for _, s := range snap.Ships {
		snapShips[s.ID] = s
	}
	snapBases := make(map[int]Starbase, len(snap.Starbases))
	for _, b := range snap.Starbases {
		snapBases[b.PlanetID] = b
	}

	var commands []string

	// Ships.
	for cursor := newDecoder(tree.ShipDat); cursor.remaining() >= shipRecordSize; {
		rec := cursor.take(shipRecordSize)
		if rec == nil {
			break
		}
		edited, err := decodeShipRecord(rec, owners)
		if err != nil {
			return nil, err
		}
		original, ok := snapShips[edited.ID]
		if !ok {
			continue
		}
		edited.OwnerID = localOwner
		edited.Name = restoredShipName(edited.Name, original.Name)
		edited.PrimaryEnemy = primaryEnemySeat(edited.PrimaryEnemy, snap.Players, &result.Warnings)
		if edited.TransferTargetType == 1 && edited.Transfer != (CargoBlock{}) {
			result.Warnings = append(result.Warnings, Warning{Kind: Semantics, Message: "unload and transfer cannot coexist; transfer dropped"})
			edited.Transfer = CargoBlock{}
		}
		fields := shipCommandFields(edited)
		commands = append(commands, renderCommand("ship", edited.ID, fields, original.Extra))
	}

	// Planets: coordinates/name restored from the snapshot (§4.9 step 2).
	for cursor := newDecoder(tree.PdataDat); cursor.remaining() >= planetRecordSize; {
		rec := cursor.take(planetRecordSize)
		if rec == nil {
			break
		}
		edited, err := decodePlanetRecord(rec, owners)
		if err != nil {
			return nil, err
		}
		original, ok := snapPlanets[edited.ID]
		if !ok {
			continue
		}
		edited.X, edited.Y, edited.Name = original.X, original.Y, original.Name
		fields := planetCommandFields(edited)
		commands = append(commands, renderCommand("planet", edited.ID, fields, original.Extra))
	}

	// Starbases + stock reconciliation (§4.9 step 5, §4.11).
	reconciler := NewStockReconciler(snap.Stock)
	for cursor := newDecoder(tree.BdataDat); cursor.remaining() >= starbaseRecordSize; {
		rec := cursor.take(starbaseRecordSize)
		if rec == nil {
			break
		}
		edited, stockAmounts, buildSlot, err := decodeStarbaseRecord(rec, owners)
		if err != nil {
			return nil, err
		}
		original, ok := snapBases[edited.PlanetID]
		if !ok {
			continue
		}
		if buildSlot > 0 && buildSlot <= len(snap.RaceHulls) {
			edited.BuildHullID = snap.RaceHulls[buildSlot-1]
		}
		for _, stockType := range []int{stockEngine, stockHull, stockBeam, stockLauncher, stockTorpedo} {
			amounts := make(map[int]int)
			for id, amount := range stockAmounts[stockType] {
				if amount == 0 {
					continue
				}
				amounts[id+1] = int(amount)
			}
			rows := reconciler.Reconcile(snap.Stock, edited.PlanetID, stockType, amounts, &result.Warnings)
			result.Stock = append(result.Stock, rows...)
			for _, row := range rows {
				commands = append(commands, renderCommand("stock", row.ID, stockCommandFields(row), row.Extra))
			}
		}
		commands = append(commands, renderCommand("base", edited.PlanetID, baseCommandFields(edited), original.Extra))
	}

	result.Commands = commands
	log.Debug("maketurn complete", zap.Int("commands", len(commands)))
	return result, nil
}

// shipRecordSize/planetRecordSize/starbaseRecordSize are the §4.6 fixed
// record byte lengths that packShipRecord/packPlanetRecord/
// packStarbaseRecord produce, used to split the flat .dat streams maketurn
// reads back into individual records.
const (
	shipRecordSize     = 111
	planetRecordSize   = 85
	starbaseRecordSize = 156
)
