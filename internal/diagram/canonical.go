package diagram

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// MarshalCanonical encodes the diagram as canonical CBOR: deterministic
// field ordering and shortest-form integers, so equal diagrams always
// produce identical bytes.
func (d *Diagram) MarshalCanonical() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("canonical cbor mode: %w", err)
	}
	out, err := encMode.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode diagram: %w", err)
	}
	return out, nil
}

// Hash returns the BLAKE2b-256 digest of the canonical encoding. Hosts use
// it to skip redundant redraws: identical geometry hashes identically
// regardless of when it was computed.
func (d *Diagram) Hash() ([32]byte, error) {
	data, err := d.MarshalCanonical()
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}
