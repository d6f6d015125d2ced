package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF32(t *testing.T) {
	tests := []struct {
		val, min, max, expected float32
	}{
		{0.1, -0.26, 0.26, 0.1},
		{0.3, -0.26, 0.26, 0.26},
		{-0.3, -0.26, 0.26, -0.26},
	}

	for _, tc := range tests {
		result := ClampF32(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF32(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestFloorCeil(t *testing.T) {
	tests := []struct {
		name        string
		val         float32
		floor, ceil int
	}{
		{"positive fraction", 10.025, 10, 11},
		{"integer", 10, 10, 10},
		{"negative fraction", -0.5, -1, 0},
		{"just below integer", 4.999, 4, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FloorInt(tc.val); got != tc.floor {
				t.Errorf("FloorInt(%f) = %d, expected %d", tc.val, got, tc.floor)
			}
			if got := CeilInt(tc.val); got != tc.ceil {
				t.Errorf("CeilInt(%f) = %d, expected %d", tc.val, got, tc.ceil)
			}
			if got := Floor(tc.val); got != float32(tc.floor) {
				t.Errorf("Floor(%f) = %f, expected %d", tc.val, got, tc.floor)
			}
		})
	}
}

func TestMinMaxF32(t *testing.T) {
	if MinF32(1, 2) != 1 {
		t.Error("MinF32(1, 2) should be 1")
	}
	if MaxF32(1, 2) != 2 {
		t.Error("MaxF32(1, 2) should be 2")
	}
}

func TestInputSampleString(t *testing.T) {
	tests := []struct {
		sample   InputSample
		expected string
	}{
		{Sample(HorizontalNone, false), "-"},
		{Sample(HorizontalLeft, false), "L"},
		{Sample(HorizontalRight, true), "R+J"},
		{Sample(HorizontalNone, true), "-+J"},
	}

	for _, tc := range tests {
		if got := tc.sample.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}

func TestHorizontalValid(t *testing.T) {
	for _, h := range []Horizontal{HorizontalNone, HorizontalLeft, HorizontalRight} {
		if !h.Valid() {
			t.Errorf("%v should be valid", h)
		}
	}
	if Horizontal(0b11).Valid() {
		t.Error("Left|Right should not be valid")
	}
}

func TestNewGameState(t *testing.T) {
	s := NewGameState(Vec2{X: 5, Y: 10}, 16)
	if !s.IsAlive {
		t.Error("new state should be alive")
	}
	if s.Character.IsGrounded {
		t.Error("new state should be airborne")
	}
	if s.Character.Velocity != (Vec2{}) {
		t.Errorf("velocity = %v, expected zero", s.Character.Velocity)
	}
	if s.Position() != (Vec2{X: 5, Y: 10}) {
		t.Errorf("Position() = %v, expected (5, 10)", s.Position())
	}
}
