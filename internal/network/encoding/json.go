package encoding

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var (
	ErrDecodeJSON = errors.New("failed to decode JSON")
	ErrEncodeJSON = errors.New("failed to encode JSON")
)

func UnmarshalJSON[T any](reader io.Reader) (T, error) {
	var value T
	if err := json.NewDecoder(reader).Decode(&value); err != nil {
		return value, errors.Join(err, ErrDecodeJSON)
	}

	return value, nil
}

// MarshalJSON encodes a request body.
func MarshalJSON(value any) (io.Reader, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(value); err != nil {
		return nil, errors.Join(err, ErrEncodeJSON)
	}

	return &buf, nil
}
