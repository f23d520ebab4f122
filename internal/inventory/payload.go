package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
)

// PayloadFormat is the schema version written into every payload.
const PayloadFormat = 1

type payload struct {
	Format  int     `json:"format"`
	Drawers Drawers `json:"drawers"`
}

// Marshal serialises the store into the plaintext payload.
func Marshal(s *Store) ([]byte, error) {
	data, err := json.Marshal(payload{Format: PayloadFormat, Drawers: s.drawers})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}

// Parse rebuilds a store from a payload produced by Marshal. Anything that
// does not match the schema exactly is reported as ErrMalformedPayload.
func Parse(data []byte) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedPayload, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after document", kerrors.ErrMalformedPayload)
	}
	if p.Format != PayloadFormat {
		return nil, fmt.Errorf("%w: unsupported payload format %d", kerrors.ErrMalformedPayload, p.Format)
	}
	if p.Drawers == nil {
		return nil, fmt.Errorf("%w: missing drawers", kerrors.ErrMalformedPayload)
	}

	s := New()
	if err := s.WriteAll(p.Drawers); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedPayload, err)
	}
	return s, nil
}
