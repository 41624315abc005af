package models

import "encoding/json"

// Optional carries a value together with a presence flag, so that "not
// provided" (Set == false) differs from "provided as zero or null".
//
// When used as a JSON field, the presence of the key alone sets Set, even when
// the value is null.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a provided Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = v
	o.Set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
