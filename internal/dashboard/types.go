package dashboard

import (
	"bytes"
	"encoding/json"

	"hopskip/internal/domain/widgets"
)

// Block is one dashboard counter. ThisWeek and LastMonth are the literal
// "<count>%" strings the existing consumers render; they are not
// period-over-period ratios.
type Block struct {
	Count     int64  `json:"count"`
	ThisWeek  string `json:"thisWeek"`
	LastMonth string `json:"lastMonth"`
}

type NamedBlock struct {
	Key string
	Block
}

// Blocks marshals as a JSON object whose key order follows the slice, so an
// admin's widget ordering survives serialisation.
type Blocks []NamedBlock

func (bs Blocks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, nb := range bs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(nb.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(nb.Block)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// defaultOrder is the block order for admins with no widget configuration.
var defaultOrder = []string{
	widgets.KeyTotalStudents,
	widgets.KeyTrialsBooked,
	widgets.KeyClassCapacity,
	widgets.KeyCancellations,
}
