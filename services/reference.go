package services

import (
	"crypto/rand"
)

const (
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// ReferenceLength is the length of the human-readable booking code.
	ReferenceLength = 8
)

// ReferenceSource generates booking reference codes. Pluggable so collision
// and retry behavior can be driven deterministically in tests; uniqueness is
// ultimately enforced by the store's unique index.
type ReferenceSource interface {
	Generate() string
}

type randomReferenceSource struct{}

// NewReferenceSource returns the default crypto/rand-backed source.
func NewReferenceSource() ReferenceSource {
	return randomReferenceSource{}
}

func (randomReferenceSource) Generate() string {
	buf := make([]byte, ReferenceLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; an empty code would
		// collide immediately and be retried against the unique index.
		return ""
	}
	out := make([]byte, ReferenceLength)
	for i, b := range buf {
		out[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return string(out)
}
