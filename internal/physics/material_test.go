package physics

import (
	"math"
	"testing"
)

func TestMaterialAlpha(t *testing.T) {
	tests := []struct {
		mat      Material
		expected float64
	}{
		{Copper, 389.0 / (8940.0 * 380.0)},
		{Iron, 80.2 / (7874.0 * 440.0)},
		{Glass, 1.2 / (2530.0 * 840.0)},
		{Polystyrene, 0.1 / (1040.0 * 1200.0)},
	}

	for _, tt := range tests {
		if got := tt.mat.Alpha(); math.Abs(got-tt.expected) > 1e-18 {
			t.Errorf("%s: Alpha() = %g, want %g", tt.mat.Name, got, tt.expected)
		}
	}
}

func TestMaterialValidate(t *testing.T) {
	tests := []struct {
		name  string
		mat   Material
		valid bool
	}{
		{"copper", Copper, true},
		{"zero lambda", Material{Name: "x", Lambda: 0, Rho: 1, C: 1}, false},
		{"negative rho", Material{Name: "x", Lambda: 1, Rho: -1, C: 1}, false},
		{"zero c", Material{Name: "x", Lambda: 1, Rho: 1, C: 0}, false},
		{"nan c", Material{Name: "x", Lambda: 1, Rho: 1, C: math.NaN()}, false},
		{"inf rho", Material{Name: "x", Lambda: 1, Rho: math.Inf(1), C: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mat.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"copper", "Copper", " IRON ", "glass", "polystyrene"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) failed: %v", name, err)
		}
	}

	if _, err := Lookup("unobtainium"); err == nil {
		t.Error("expected error for unknown material")
	}
}

func TestNamesOrder(t *testing.T) {
	names := Names()
	expected := []string{"copper", "iron", "glass", "polystyrene"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], expected[i])
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Lambda = 0
	if Copper.Lambda != 389.0 || All()[0].Lambda != 389.0 {
		t.Error("All() exposed the internal table")
	}
}
