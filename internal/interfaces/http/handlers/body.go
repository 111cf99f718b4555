package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// maxBodySize bounds inbound request bodies (1MB)
const maxBodySize = 1 << 20

var errBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", maxBodySize)

// readJSONBody reads r and decodes it as a single JSON value with numbers kept
// as json.Number. An empty body decodes to nil.
func readJSONBody(r io.Reader) ([]byte, any, error) {
	if r == nil {
		return nil, nil, nil
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxBodySize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(raw) > maxBodySize {
		return nil, nil, errBodyTooLarge
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return raw, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw, nil, fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return raw, nil, fmt.Errorf("invalid json: trailing data")
	}
	return raw, v, nil
}
