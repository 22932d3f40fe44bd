package v3

import "encoding/json"

// The four entity kinds maketurn re-serializes into command records (§4.9
// step 4) get full per-element pass-through capture: every JSON key the
// core does not interpret survives in .Extra and is echoed back unchanged
// when a command is built (§9 design note, "dynamic hashes").

func decodeWithExtra[T any](data []byte, dst *T) (map[string]json.RawMessage, error) {
	return unmarshalWithExtra(data, dst)
}

func (p *Planet) UnmarshalJSON(data []byte) error {
	type alias Planet
	var a alias
	extra, err := decodeWithExtra(data, &a)
	if err != nil {
		return err
	}
	*p = Planet(a)
	p.Extra = extra
	return nil
}

func (s *Ship) UnmarshalJSON(data []byte) error {
	type alias Ship
	var a alias
	extra, err := decodeWithExtra(data, &a)
	if err != nil {
		return err
	}
	*s = Ship(a)
	s.Extra = extra
	return nil
}

func (b *Starbase) UnmarshalJSON(data []byte) error {
	type alias Starbase
	var a alias
	extra, err := decodeWithExtra(data, &a)
	if err != nil {
		return err
	}
	*b = Starbase(a)
	b.Extra = extra
	return nil
}

func (s *Stock) UnmarshalJSON(data []byte) error {
	type alias Stock
	var a alias
	extra, err := decodeWithExtra(data, &a)
	if err != nil {
		return err
	}
	*s = Stock(a)
	s.Extra = extra
	return nil
}
