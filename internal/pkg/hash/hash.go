// Package hash provides hashing utilities.
package hash

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// BLAKE3 computes the BLAKE3-256 hash of data and returns it as a hex string.
func BLAKE3(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Short returns the first n characters of a hex digest.
func Short(digest string, n int) string {
	if n > len(digest) || n < 0 {
		return digest
	}
	return digest[:n]
}

// Fingerprint accumulates named blobs into a single digest. Callers must
// add entries in a deterministic order; the digest depends on it.
type Fingerprint struct {
	h *blake3.Hasher
	n int
}

// NewFingerprint creates an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{h: blake3.New()}
}

// Add mixes a named blob into the fingerprint. Names and contents are
// NUL-terminated so ("ab","c") and ("a","bc") hash differently.
func (f *Fingerprint) Add(name string, content []byte) {
	_, _ = f.h.Write([]byte(name))
	_, _ = f.h.Write([]byte{0})
	_, _ = f.h.Write(content)
	_, _ = f.h.Write([]byte{0})
	f.n++
}

// Len returns the number of entries added.
func (f *Fingerprint) Len() int {
	return f.n
}

// Sum returns the hex digest of everything added so far.
func (f *Fingerprint) Sum() string {
	return hex.EncodeToString(f.h.Sum(nil))
}
