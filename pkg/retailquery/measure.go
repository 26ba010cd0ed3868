package retailquery

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Measure is a measurement or count that clients send either as a JSON
// number (90) or as a string ("90"). It renders verbatim in queries.
type Measure string

func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Measure(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Measure(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (m Measure) String() string {
	return string(m)
}
