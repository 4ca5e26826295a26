package generator

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultSize is the amount of random bytes used for a token, 256 bits
const DefaultSize = 32

// MinSize is the smallest accepted amount of random bytes, 128 bits
const MinSize = 16

var ErrInsufficientEntropy = errors.New("token size below 128 bits of entropy")

// RandomTokenGenerator creates url safe tokens from a cryptographic secure source
type RandomTokenGenerator struct {
	size   int
	source io.Reader
}

// thanks for the gotrue authors for this (https://github.com/netlify/gotrue/blob/master/crypto/crypto.go)

// CreateSecureToken returns a url safe base64 token with the configured amount of random bytes
func (g *RandomTokenGenerator) CreateSecureToken() (string, error) {
	return g.create(g.size)
}

// CreateSecureTokenWithSize returns a url safe base64 token of size random bytes
func (g *RandomTokenGenerator) CreateSecureTokenWithSize(size int) (string, error) {
	if size < MinSize {
		return "", ErrInsufficientEntropy
	}
	return g.create(size)
}

func (g *RandomTokenGenerator) create(size int) (string, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(g.source, b); err != nil {
		return "", fmt.Errorf("reading random source: %w", err)
	}
	return removePadding(base64.URLEncoding.EncodeToString(b)), nil
}

func removePadding(token string) string {
	return strings.TrimRight(token, "=")
}

// New returns a generator producing DefaultSize byte tokens
func New() *RandomTokenGenerator {
	return &RandomTokenGenerator{size: DefaultSize, source: rand.Reader}
}

// NewWithSize returns a generator producing tokens of size random bytes
func NewWithSize(size int) (*RandomTokenGenerator, error) {
	if size < MinSize {
		return nil, ErrInsufficientEntropy
	}
	return &RandomTokenGenerator{size: size, source: rand.Reader}, nil
}

// NewFromSource allows a different entropy source, mostly for tests
func NewFromSource(size int, source io.Reader) (*RandomTokenGenerator, error) {
	if size < MinSize {
		return nil, ErrInsufficientEntropy
	}
	return &RandomTokenGenerator{size: size, source: source}, nil
}
