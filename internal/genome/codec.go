package genome

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/vovakirdan/jumpman/internal/core"
)

// Packed sample layout: bits 0-1 hold the horizontal intent, bit 2 the jump flag.
const (
	horizontalMask byte = 0b011
	jumpBit        byte = 0b100
)

// ErrInvalidSample is returned when a byte does not decode to a valid sample.
var ErrInvalidSample = errors.New("genome: invalid sample byte")

// EncodeSample packs one sample into a byte.
func EncodeSample(s core.InputSample) byte {
	b := byte(s.Horizontal) & horizontalMask
	if s.Jump {
		b |= jumpBit
	}
	return b
}

// DecodeSample unpacks one byte. Bytes with bits above bit 2 set, or with
// both horizontal bits set, are rejected.
func DecodeSample(b byte) (core.InputSample, error) {
	if b&^(horizontalMask|jumpBit) != 0 {
		return core.InputSample{}, fmt.Errorf("%w: 0x%02x", ErrInvalidSample, b)
	}
	h := core.Horizontal(b & horizontalMask)
	if !h.Valid() {
		return core.InputSample{}, fmt.Errorf("%w: 0x%02x", ErrInvalidSample, b)
	}
	return core.InputSample{Horizontal: h, Jump: b&jumpBit != 0}, nil
}

// Marshal packs a genome into one byte per sample.
func Marshal(g Genome) []byte {
	out := make([]byte, len(g))
	for i, s := range g {
		out[i] = EncodeSample(s)
	}
	return out
}

// Unmarshal reverses Marshal.
func Unmarshal(data []byte) (Genome, error) {
	g := make(Genome, len(data))
	for i, b := range data {
		s, err := DecodeSample(b)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		g[i] = s
	}
	return g, nil
}

// EncodeString returns the base64 text form used by snapshot files.
func EncodeString(g Genome) string {
	return base64.StdEncoding.EncodeToString(Marshal(g))
}

// DecodeString parses the base64 text form.
func DecodeString(s string) (Genome, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("genome: decoding base64: %w", err)
	}
	return Unmarshal(data)
}
