package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// UnmarshalJSON reads questions written by Save as well as by older tools that
// store the flags as 0/1 and integral ids as floats (1.0).
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	aux := struct {
		*plain
		ID           json.RawMessage `json:"id"`
		AskedByFAANG json.RawMessage `json:"asked_by_faang"`
		IsPremium    json.RawMessage `json:"is_premium"`
	}{plain: (*plain)(q)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	q.ID = id

	if q.AskedByFAANG, err = decodeFlag("asked_by_faang", aux.AskedByFAANG); err != nil {
		return err
	}
	if q.IsPremium, err = decodeFlag("is_premium", aux.IsPremium); err != nil {
		return err
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeID(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("id: invalid value %s", raw)
	}
	return int(f), nil
}

// decodeFlag accepts true/false, numbers (nonzero is true) and null (false).
func decodeFlag(name string, raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return false, fmt.Errorf("%s: invalid flag %s", name, raw)
	}
	return f != 0, nil
}
