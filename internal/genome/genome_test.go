package genome

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/jumpman/internal/core"
)

func TestRandomSampleDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[core.InputSample]int)
	for i := 0; i < 6000; i++ {
		s := RandomSample(rng)
		if !s.Horizontal.Valid() {
			t.Fatalf("RandomSample() produced invalid horizontal %d", s.Horizontal)
		}
		seen[s]++
	}
	if len(seen) != 6 {
		t.Errorf("RandomSample() produced %d distinct samples, expected 6", len(seen))
	}
	for s, n := range seen {
		if n < 800 || n > 1200 {
			t.Errorf("sample %v drawn %d times, expected about 1000", s, n)
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewSource(9)), 64)
	b := Random(rand.New(rand.NewSource(9)), 64)
	if !a.Equal(b) {
		t.Error("Random() with the same seed should produce the same genome")
	}
	if len(a) != 64 {
		t.Errorf("len = %d, expected 64", len(a))
	}
}

func TestExtendAndClone(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g := Random(rng, 10)

	longer := g.Extend(rng, 5)
	if len(longer) != 15 {
		t.Fatalf("Extend() len = %d, expected 15", len(longer))
	}
	if !longer[:10].Equal(g) {
		t.Error("Extend() should keep the original prefix")
	}

	c := g.Clone()
	c[0] = core.Sample(core.HorizontalLeft, true)
	g[0] = core.Sample(core.HorizontalRight, false)
	if c[0] == g[0] {
		t.Error("Clone() should not share storage")
	}
	if Genome(nil).Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestEqual(t *testing.T) {
	a := Genome{core.Sample(core.HorizontalRight, false), core.Sample(core.HorizontalNone, true)}
	tests := []struct {
		name     string
		other    Genome
		expected bool
	}{
		{"same", Genome{core.Sample(core.HorizontalRight, false), core.Sample(core.HorizontalNone, true)}, true},
		{"shorter", a[:1], false},
		{"different sample", Genome{core.Sample(core.HorizontalRight, false), core.Sample(core.HorizontalNone, false)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Equal(tc.other); got != tc.expected {
				t.Errorf("Equal() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	g := Genome{
		core.Sample(core.HorizontalRight, false),
		core.Sample(core.HorizontalLeft, true),
		core.Sample(core.HorizontalNone, false),
	}
	if got := g.String(); got != "R L+J -" {
		t.Errorf("String() = %q, expected %q", got, "R L+J -")
	}
}

func TestEncodeSample(t *testing.T) {
	tests := []struct {
		sample   core.InputSample
		expected byte
	}{
		{core.Sample(core.HorizontalNone, false), 0b000},
		{core.Sample(core.HorizontalLeft, false), 0b001},
		{core.Sample(core.HorizontalRight, false), 0b010},
		{core.Sample(core.HorizontalNone, true), 0b100},
		{core.Sample(core.HorizontalLeft, true), 0b101},
		{core.Sample(core.HorizontalRight, true), 0b110},
	}
	for _, tc := range tests {
		t.Run(tc.sample.String(), func(t *testing.T) {
			if got := EncodeSample(tc.sample); got != tc.expected {
				t.Errorf("EncodeSample() = %03b, expected %03b", got, tc.expected)
			}
			back, err := DecodeSample(tc.expected)
			if err != nil {
				t.Fatalf("DecodeSample() failed: %v", err)
			}
			if back != tc.sample {
				t.Errorf("DecodeSample() = %v, expected %v", back, tc.sample)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, b := range []byte{0b011, 0b111, 0b1000, 0xff} {
		if _, err := DecodeSample(b); !errors.Is(err, ErrInvalidSample) {
			t.Errorf("DecodeSample(%08b) error = %v, expected ErrInvalidSample", b, err)
		}
	}
	if _, err := Unmarshal([]byte{0, 1, 3}); !errors.Is(err, ErrInvalidSample) {
		t.Errorf("Unmarshal() error = %v, expected ErrInvalidSample", err)
	}
	if _, err := DecodeString("not base64!"); err == nil {
		t.Error("DecodeString() should reject malformed text")
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		g := Random(rng, rng.Intn(300))
		back, err := DecodeString(EncodeString(g))
		if err != nil {
			t.Fatalf("DecodeString() failed: %v", err)
		}
		if !back.Equal(g) {
			t.Fatalf("round trip changed genome of length %d", len(g))
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots", "bestGeneration.txt")
	g := Random(rand.New(rand.NewSource(5)), 120)

	if err := WriteFile(path, g); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	// Trailing newlines from hand-edited files are tolerated.
	data, _ := os.ReadFile(path)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		t.Fatal(err)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !back.Equal(g) {
		t.Error("ReadFile() returned a different genome")
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ReadFile() of a missing file should fail")
	}
}
