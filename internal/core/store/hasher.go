package store

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

const (
	HasherXxhash  = "xxhash"
	HasherMurmur3 = "murmur3"
)

// Xxhasher hashes keys with the xxhash algorithm.
type Xxhasher struct{}

func (h Xxhasher) Sum64(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Murmur3Hasher hashes keys with 64-bit murmur3.
type Murmur3Hasher struct{}

func (h Murmur3Hasher) Sum64(b []byte) uint64 {
	return murmur3.Sum64(b)
}

// NewHasher resolves a hasher by its config name. Empty name means xxhash.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", HasherXxhash:
		return Xxhasher{}, nil
	case HasherMurmur3:
		return Murmur3Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown hasher: %q", name)
	}
}
