package v3

import (
	"fmt"
	"sort"
	"strings"
)

// Flow ledger counter names (§3 "Flow ledger"). Kept as a dynamic string
// keyspace — like the source's "bag of named counters" — rather than one
// struct field per counter, because the set legitimately varies (ten
// distinct torpedo-type Built counters) and every consumer only ever
// references counters by name.
const (
	counterTritaniumUsed  = "tritaniumUsed"
	counterDuraniumUsed   = "duraniumUsed"
	counterMolybdenumUsed = "molybdenumUsed"
	counterNeutroniumUsed = "neutroniumUsed"
	counterSuppliesUsed   = "suppliesUsed"
	counterCashUsed       = "cashUsed"
	counterCashMade       = "cashMade"
	counterFightersBuilt  = "fightersBuilt"
)

func counterTorpBuilt(torpedoID int) string {
	return fmt.Sprintf("torp%dBuilt", torpedoID)
}

// coordKey is the ledger's "x,y" coordinate key (§3).
type coordKey struct{ x, y int }

func (k coordKey) String() string { return fmt.Sprintf("%d,%d", k.x, k.y) }

// flowBag is the per-coordinate bag of named counters.
type flowBag struct {
	counters map[string]int64
}

func newFlowBag() *flowBag { return &flowBag{counters: make(map[string]int64)} }

func (b *flowBag) add(key string, n int64) { b.counters[key] += n }

// use recovers the pre-build total: take the counter, add it to the new
// value, zero the counter. If the counter is zero the value is unchanged
// (§4.7).
func (b *flowBag) use(key string, newValue int64) int64 {
	c := b.counters[key]
	if c == 0 {
		return newValue
	}
	old := newValue + c
	b.counters[key] = 0
	return old
}

// consume greedily attributes as much of a shared Built counter as
// possible to one consumer without driving its pre-turn value negative,
// carrying any unattributed remainder forward for the next consumer at
// the same coordinate (§4.7's ammo-consumer rule).
func (b *flowBag) consume(key string, newValue int64) int64 {
	c := b.counters[key]
	if c >= newValue {
		b.counters[key] = c - newValue
		return 0
	}
	old := newValue - c
	b.counters[key] = 0
	return old
}

func (b *flowBag) residuals() map[string]int64 {
	out := make(map[string]int64)
	for k, v := range b.counters {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// Ledger is the flow ledger: created empty at pack start, written to
// during pack, and (optionally) emitted as a diagnostic file if residuals
// remain (§3 "Lifecycles").
type Ledger struct {
	bags map[coordKey]*flowBag
}

// NewLedger creates an empty flow ledger.
func NewLedger() *Ledger {
	return &Ledger{bags: make(map[coordKey]*flowBag)}
}

func (l *Ledger) bag(x, y int) *flowBag {
	k := coordKey{x, y}
	b, ok := l.bags[k]
	if !ok {
		b = newFlowBag()
		l.bags[k] = b
	}
	return b
}

// Add accumulates a build cost (*Used) or build output (*Built) at a
// coordinate.
func (l *Ledger) Add(x, y int, key string, amount int64) {
	l.bag(x, y).add(key, amount)
}

// Use recovers a resource holder's pre-turn value for a given counter at
// a coordinate.
func (l *Ledger) Use(x, y int, key string, newValue int64) int64 {
	return l.bag(x, y).use(key, newValue)
}

// Consume attributes ammo production to one consumer at a coordinate.
func (l *Ledger) Consume(x, y int, key string, newValue int64) int64 {
	return l.bag(x, y).consume(key, newValue)
}

// ResidualEntry is one non-zero counter left over after a pack run.
type ResidualEntry struct {
	X, Y  int
	Key   string
	Value int64
}

// Residuals lists every non-zero counter across every coordinate, sorted
// for deterministic diagnostic output.
func (l *Ledger) Residuals() []ResidualEntry {
	var out []ResidualEntry
	for coord, bag := range l.bags {
		for key, val := range bag.residuals() {
			out = append(out, ResidualEntry{X: coord.x, Y: coord.y, Key: key, Value: val})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// IsClean reports whether every counter across the ledger is zero.
func (l *Ledger) IsClean() bool { return len(l.Residuals()) == 0 }

// DiagnosticText renders the c2flow.txt human-readable residual report
// (§6 "Outputs", §4.7 "After all entities are packed...").
func (l *Ledger) DiagnosticText() string {
	residuals := l.Residuals()
	if len(residuals) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("flow ledger residuals (undo information partially lost):\n")
	for _, r := range residuals {
		fmt.Fprintf(&b, "  (%d,%d) %s = %d\n", r.X, r.Y, r.Key, r.Value)
	}
	return b.String()
}
