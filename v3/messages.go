package v3

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// messageTypeInfo is one row of §4.4's messagetype → (letter, title) table.
type messageTypeInfo struct {
	Letter byte
	Title  string
}

var messageTypeTable = map[int]messageTypeInfo{
	0:  {'r', "Outbound"},
	1:  {'h', "System"},
	2:  {'s', "Terraforming"},
	3:  {'l', "Minelaying"},
	4:  {'m', "Minesweeping"},
	5:  {'p', "Colony"},
	6:  {'f', "Combat"},
	7:  {'f', "Fleet"},
	8:  {'s', "Ship"},
	9:  {'n', "EnemyDistress"},
	10: {'x', "Explosion"},
	11: {'d', "Starbase"},
	12: {'w', "WebMines"},
	13: {'y', "Meteors"},
	14: {'z', "SensorSweep"},
	15: {'z', "BioScan"},
	16: {'e', "DistressCall"},
	17: {'r', "Player"},
	18: {'h', "Diplomacy"},
	19: {'m', "MineScan"},
	20: {'9', "DarkSense"},
	21: {'9', "Hiss"},
}

// playerToPlayerTypes get a one-hex-digit-of-target + "000" NNNN, per §4.4.
var playerToPlayerTypes = map[int]bool{0: true, 17: true}

func messageNNNN(msgType, targetID int) string {
	if playerToPlayerTypes[msgType] {
		return fmt.Sprintf("%X000", targetID&0xF)
	}
	return fmt.Sprintf("%04d", targetID)
}

func messageHeader(msgType, targetID int) string {
	info, ok := messageTypeTable[msgType]
	if !ok {
		info = messageTypeInfo{Letter: '?', Title: "Unknown"}
	}
	return fmt.Sprintf("(-%c%s)<<< %s >>>", info.Letter, messageNNNN(msgType, targetID), info.Title)
}

var coordNormalizeRE = regexp.MustCompile(`\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)`)

func normalizeCoords(text string) string {
	return coordNormalizeRE.ReplaceAllString(text, "($1, $2)")
}

func hasLocation(text string, x, y int) bool {
	return strings.Contains(normalizeCoords(text), fmt.Sprintf("(%d, %d)", x, y))
}

// renderMessage assembles one message's full text block (header, headline,
// body, optional Location line) and returns it already run through the
// §4.3 cipher, ready for the mdataN.dat / result-mode message section.
// HTML is stripped from the body only, so the "<<< title >>>" header
// survives; the whole block is then word-wrapped and ciphered.
func renderMessage(m Message) []byte {
	var lines []string
	lines = append(lines, messageHeader(m.MessageType, m.TargetID))
	if m.FromName != "" {
		lines = append(lines, "From: "+m.FromName)
	}
	body := normalizeCoords(stripHTML(m.Body))
	lines = append(lines, body)
	if m.HasCoords && !hasLocation(body, m.X, m.Y) {
		lines = append(lines, fmt.Sprintf("Location: (%d, %d)", m.X, m.Y))
	}
	text := strings.Join(lines, "\n")
	return cipherEncode(wordWrap(text, 40))
}

func ionStormVoltageCategory(voltage int) string {
	switch {
	case voltage <= 50:
		return "harmless"
	case voltage <= 100:
		return "moderate"
	case voltage <= 150:
		return "strong"
	case voltage <= 200:
		return "dangerous"
	default:
		return "very dangerous"
	}
}

// synthesizeIonStormMessages produces one System message per active storm
// (§4.4).
func synthesizeIonStormMessages(storms []Ionstorm) []Message {
	out := make([]Message, 0, len(storms))
	for _, s := range storms {
		trend := "weakening"
		if s.IsGrowing {
			trend = "growing"
		}
		body := fmt.Sprintf("Ion storm #%d is %s and %s.", s.ID, ionStormVoltageCategory(s.Voltage), trend)
		out = append(out, Message{
			ID:          -1000 - s.ID,
			MessageType: 1,
			TargetID:    s.ID,
			Body:        body,
			X:           s.X,
			Y:           s.Y,
			HasCoords:   true,
		})
	}
	return out
}

// synthesizeMinefieldMessages produces one advisory message per visible
// minefield (§4.4).
func synthesizeMinefieldMessages(fields []Minefield) []Message {
	out := make([]Message, 0, len(fields))
	for _, m := range fields {
		kind := "normal"
		if m.IsWeb {
			kind = "web"
		}
		body := fmt.Sprintf("Minefield #%d (%s) detected, radius %d.", m.ID, kind, m.Radius)
		out = append(out, Message{
			ID:          -2000 - m.ID,
			MessageType: 1,
			TargetID:    m.ID,
			Body:        body,
			X:           m.X,
			Y:           m.Y,
			HasCoords:   true,
		})
	}
	return out
}

// synthesizeConfigDigest renders a sorted key=value dump of a raw-JSON
// field set into one System message, grounding the "three configuration
// summaries" of §4.4 (settings, host-config scalars, host-config arrays).
func synthesizeConfigDigest(id int, title string, fields map[string]json.RawMessage) Message {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, string(fields[k]))
	}
	return Message{ID: id, MessageType: 1, Body: b.String()}
}

// RenderMessages produces the full mdataN.dat content: game messages
// sorted by id descending (newest-first, the v3 convention), followed by
// the synthesized block (§4.4 "Ordering").
func RenderMessages(snap *Snapshot) []byte {
	game := append([]Message(nil), snap.MyMessages...)
	sort.Slice(game, func(i, j int) bool { return game[i].ID > game[j].ID })

	var synthesized []Message
	synthesized = append(synthesized, synthesizeIonStormMessages(snap.Ionstorms)...)
	synthesized = append(synthesized, synthesizeMinefieldMessages(snap.Minefields)...)
	synthesized = append(synthesized,
		synthesizeConfigDigest(-1, "settings", snap.Settings.Extra),
		synthesizeConfigDigest(-2, "host-config scalars", snap.Game.Extra),
		synthesizeConfigDigest(-3, "host-config arrays", snap.Extra),
	)

	var out []byte
	for _, m := range append(game, synthesized...) {
		out = append(out, lengthTaggedMessage(renderMessage(m))...)
	}
	return out
}

// lengthTaggedMessage prefixes a rendered, ciphered message with its
// 16-bit little-endian length, the v3 convention for variable-length
// message records inside mdataN.dat / result mode section 5.
func lengthTaggedMessage(body []byte) []byte {
	out := make([]byte, 0, 2+len(body))
	out = append(out, encU16(uint16(len(body)))...)
	out = append(out, body...)
	return out
}
