package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ShortIDAlphabet keeps ids easy to read aloud and type in chat.
const ShortIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// NanoGenerator produces fixed-length ids over ShortIDAlphabet.
type NanoGenerator struct {
	length int
}

func NewNanoGenerator(length int) *NanoGenerator {
	if length <= 0 {
		length = 8
	}
	return &NanoGenerator{length: length}
}

func (g *NanoGenerator) NewID() (string, error) {
	out, err := gonanoid.Generate(ShortIDAlphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("generate short id: %w", err)
	}
	return out, nil
}
