package v3

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// specFileDef describes one simple spec file's record geometry (§4.2).
// Exact sub-field layouts for beam/torpedo/engine/hull specs are not part
// of the retrieved specification (only their totals are); this core
// therefore honours the documented fallback contract literally: each
// record is template-bytes-or-zero with only the name field overlaid from
// Nu when a matching entity id exists (Open Question decision, DESIGN.md).
type specFileDef struct {
	Filename   string
	NumEntries int
	EntrySize  int
	NameOffset int
	NameLen    int
}

var simpleSpecFiles = []specFileDef{
	{Filename: "beamspec.dat", NumEntries: 10, EntrySize: 36, NameOffset: 0, NameLen: 20},
	{Filename: "torpspec.dat", NumEntries: 10, EntrySize: 38, NameOffset: 0, NameLen: 20},
	{Filename: "engspec.dat", NumEntries: 9, EntrySize: 66, NameOffset: 0, NameLen: 20},
	{Filename: "hullspec.dat", NumEntries: 105, EntrySize: 60, NameOffset: 0, NameLen: 30},
}

// namedEntity is the minimal interface the simple-spec-file synthesizer
// needs from a Nu collection entry.
type namedEntity struct {
	ID   int
	Name string
}

func namedBeams(beams []Beam) map[int]namedEntity {
	out := make(map[int]namedEntity, len(beams))
	for _, b := range beams {
		out[b.ID] = namedEntity{ID: b.ID}
	}
	return out
}

func namedTorpedos(torps []Torpedo) map[int]namedEntity {
	out := make(map[int]namedEntity, len(torps))
	for _, t := range torps {
		out[t.ID] = namedEntity{ID: t.ID}
	}
	return out
}

func namedEngines(engines []Engine) map[int]namedEntity {
	out := make(map[int]namedEntity, len(engines))
	for _, e := range engines {
		out[e.ID] = namedEntity{ID: e.ID}
	}
	return out
}

func namedHulls(hulls []Hull) map[int]namedEntity {
	out := make(map[int]namedEntity, len(hulls))
	for _, h := range hulls {
		out[h.ID] = namedEntity{ID: h.ID}
	}
	return out
}

// findTemplate locates a template file of the given name first in
// workingDir, then templateRoot (§4.2). Returns nil, nil if neither
// exists — a Template warning, not an error.
func findTemplate(workingDir, templateRoot, name string) ([]byte, error) {
	for _, dir := range []string{workingDir, templateRoot} {
		if dir == "" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if !os.IsNotExist(err) {
			return nil, newErr(IO, err, "read template %s", name)
		}
	}
	return nil, nil
}

// synthesizeSimpleSpecFile builds one beamspec/torpspec/engspec/hullspec
// blob per §4.2's contract.
func synthesizeSimpleSpecFile(def specFileDef, entities map[int]namedEntity, workingDir, templateRoot string, warnings *[]Warning) ([]byte, error) {
	template, err := findTemplate(workingDir, templateRoot, def.Filename)
	if err != nil {
		return nil, err
	}
	if template == nil {
		*warnings = append(*warnings, Warning{Kind: Template, Message: "no template for " + def.Filename})
	}

	out := make([]byte, def.NumEntries*def.EntrySize)
	for k := 1; k <= def.NumEntries; k++ {
		start := (k - 1) * def.EntrySize
		rec := make([]byte, def.EntrySize)
		if template != nil && start+def.EntrySize <= len(template) {
			copy(rec, template[start:start+def.EntrySize])
		}
		if ent, ok := entities[k]; ok {
			name := ent.Name
			if name == "" {
				name = fmt.Sprintf("#%d", k)
			}
			copy(rec[def.NameOffset:def.NameOffset+def.NameLen], encStr([]byte(name), def.NameLen))
		} else if template == nil {
			copy(rec[def.NameOffset:def.NameOffset+def.NameLen], encStr([]byte(fmt.Sprintf("#%d", k)), def.NameLen))
		}
		copy(out[start:start+def.EntrySize], rec)
	}
	return out, nil
}

// synthesizeXYPlan builds xyplan.dat: 500 entries of (x, y, raceSlot) as
// three little-endian 16-bit words (3000 bytes total).
func synthesizeXYPlan(planets []Planet, owners *ownerMap) []byte {
	const n, size = 500, 6
	out := make([]byte, n*size)
	for _, p := range planets {
		if p.ID < 1 || p.ID > n {
			continue
		}
		r := &record{}
		r.u16(uint16(p.X)).u16(uint16(p.Y)).u16(uint16(owners.raceOf(p.OwnerID)))
		copy(out[(p.ID-1)*size:p.ID*size], r.bytes())
	}
	return out
}

// synthesizePlanetNames builds planet.nm: 500 entries of A20 planet name.
func synthesizePlanetNames(planets []Planet) []byte {
	const n, size = 500, 20
	out := make([]byte, n*size)
	for i := range out {
		out[i] = ' '
	}
	for _, p := range planets {
		if p.ID < 1 || p.ID > n {
			continue
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", p.ID)
		}
		copy(out[(p.ID-1)*size:p.ID*size], encStr([]byte(name), size))
	}
	return out
}

// synthesizeRaceNames builds race.nm: 11 back-to-back triples (A30, A20,
// A12) of full name, short name, adjective (§4.2).
func synthesizeRaceNames(races []Race) []byte {
	const n = 11
	const size = 30 + 20 + 12
	out := make([]byte, n*size)
	byID := make(map[int]Race, len(races))
	for _, r := range races {
		byID[r.ID] = r
	}
	for id := 1; id <= n; id++ {
		r := byID[id]
		rec := &record{}
		rec.str([]byte(r.FullName), 30).str([]byte(r.ShortName), 20).str([]byte(r.Adjective), 12)
		copy(out[(id-1)*size:id*size], rec.bytes())
	}
	return out
}

// synthesizeTrueHull builds truehull.dat: an 11x20 matrix of hull ids
// (16-bit LE). Only the local player's row is rewritten from racehulls;
// other rows are preserved from the template (§4.2).
func synthesizeTrueHull(raceSlot int, raceHulls []int, template []byte) []byte {
	const rows, cols = 11, 20
	out := make([]byte, rows*cols*2)
	if len(template) == len(out) {
		copy(out, template)
	}
	if raceSlot < 1 || raceSlot > rows {
		return out
	}
	rowStart := (raceSlot - 1) * cols * 2
	for i := 0; i < cols; i++ {
		hull := 0
		if i < len(raceHulls) {
			hull = raceHulls[i]
		}
		b := encU16(uint16(hull))
		copy(out[rowStart+i*2:rowStart+i*2+2], b)
	}
	return out
}

// synthesizeHullFunc renders hullfunc.txt: every hull defaults to its
// built-in function set; hulls with cancloak=true get an explicit Cloak
// grant line (§4.2). Other hull functions are not reflected.
func synthesizeHullFunc(hulls []Hull) []byte {
	ids := make([]int, 0, len(hulls))
	cloak := make(map[int]bool, len(hulls))
	for _, h := range hulls {
		if h.CanCloak {
			ids = append(ids, h.ID)
			cloak[h.ID] = true
		}
	}
	sort.Ints(ids)
	var out []byte
	for _, id := range ids {
		if cloak[id] {
			out = append(out, []byte(fmt.Sprintf("Hull %d Add Cloak\n", id))...)
		}
	}
	return out
}
