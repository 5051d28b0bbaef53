package json

import (
	"errors"
	"io"

	"github.com/bytedance/sonic"
)

var (
	ErrDecodeJSON = errors.New("failed to decode JSON")
	ErrEncodeJSON = errors.New("failed to encode JSON")
)

// Decode is a generic version of the stdlib json decoder.
func Decode[T any](reader io.Reader) (T, error) {
	var value T
	if err := sonic.ConfigStd.NewDecoder(reader).Decode(&value); err != nil {
		return value, errors.Join(err, ErrDecodeJSON)
	}

	return value, nil
}

// Encode marshals value using stdlib compatible rules (sorted map keys, html escaping).
func Encode(value any) ([]byte, error) {
	body, err := sonic.ConfigStd.Marshal(value)
	if err != nil {
		return nil, errors.Join(err, ErrEncodeJSON)
	}

	return body, nil
}
