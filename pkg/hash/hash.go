// Package hash provides the key hashing capability used by the trace
// generator. Every hasher in this package is stable across processes,
// platforms and runs; none of them are seeded at random, so a bucket
// index computed as Sum(key) % size is reproducible.
package hash

import (
	"errors"
	"sort"
	"unicode/utf8"
)

var ErrUnknownHash = errors.New("hash: unknown hash function")

// Hasher maps a key to a non-negative integer
type Hasher[K any] interface {
	Sum(key K) uint64
}

// HasherFunc adapts an ordinary function to the Hasher interface
type HasherFunc[K any] func(key K) uint64

func (fn HasherFunc[K]) Sum(key K) uint64 {
	return fn(key)
}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// FNV1a is the 64-bit FNV-1a hash of the key's bytes. It is the default
var FNV1a Hasher[string] = HasherFunc[string](func(key string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime64
	}
	return h
})

// XXHash32 is xxHash32 over the key's bytes using a fixed seed
var XXHash32 Hasher[string] = HasherFunc[string](func(key string) uint64 {
	return uint64(Checksum32([]byte(key), DefaultSeed))
})

// Polynomial is the classic h = h*31 + b string hash, wrapping at 64 bits
var Polynomial Hasher[string] = HasherFunc[string](func(key string) uint64 {
	var h uint64
	for i := 0; i < len(key); i++ {
		h = h*31 + uint64(key[i])
	}
	return h
})

// FirstChar returns the code point of the first rune in the key, or
// zero for the empty key. It collides on purpose and is mostly useful
// for building predictable probe sequences.
var FirstChar Hasher[string] = HasherFunc[string](func(key string) uint64 {
	if key == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(key)
	return uint64(r)
})

// Int is the identity hash for integer keys
var Int Hasher[int] = HasherFunc[int](func(key int) uint64 {
	return uint64(key)
})

var byName = map[string]Hasher[string]{
	"fnv1a":     FNV1a,
	"xxhash32":  XXHash32,
	"poly":      Polynomial,
	"firstchar": FirstChar,
}

// ByName returns the string hasher registered under name
func ByName(name string) (Hasher[string], error) {
	h, ok := byName[name]
	if !ok {
		return nil, ErrUnknownHash
	}
	return h, nil
}

// Names returns the registered hasher names in sorted order
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
