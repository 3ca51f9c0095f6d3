package credits

import (
	"fmt"
	"strings"
	"time"

	hashids "github.com/speps/go-hashids/v2"
)

// ReferenceGenerator produces the short code printed on a credit note.
// Encoding the booking id together with the issue timestamp keeps the code
// opaque while staying reproducible for support lookups.
type ReferenceGenerator struct {
	h *hashids.HashID
}

func NewReferenceGenerator(salt string) (*ReferenceGenerator, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 8
	data.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("credit reference generator: %w", err)
	}
	return &ReferenceGenerator{h: h}, nil
}

func (g *ReferenceGenerator) Generate(bookingID int64, issuedAt time.Time) (string, error) {
	id := bookingID
	if id < 0 {
		id = 0
	}
	code, err := g.h.EncodeInt64([]int64{id, issuedAt.Unix()})
	if err != nil {
		return "", fmt.Errorf("encode credit reference: %w", err)
	}
	return "CR-" + strings.ToUpper(code), nil
}
