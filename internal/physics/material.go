package physics

import (
	"fmt"
	"math"
	"strings"
)

// Material holds the constant physical properties of a conducting medium.
type Material struct {
	Name   string  `yaml:"name" json:"name"`
	Lambda float64 `yaml:"lambda" json:"lambda"` // thermal conductivity W/(m·K)
	Rho    float64 `yaml:"rho" json:"rho"`       // density kg/m³
	C      float64 `yaml:"c" json:"c"`           // specific heat J/(kg·K)
}

// Alpha returns the thermal diffusivity in m²/s.
func (m Material) Alpha() float64 {
	return m.Lambda / (m.Rho * m.C)
}

// HeatCapacity returns the volumetric heat capacity rho*c in J/(m³·K).
func (m Material) HeatCapacity() float64 {
	return m.Rho * m.C
}

// Validate reports whether every property is a finite positive number.
func (m Material) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"lambda", m.Lambda},
		{"rho", m.Rho},
		{"c", m.C},
	} {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) || p.value <= 0 {
			return fmt.Errorf("material %q: %s must be positive, got %v", m.Name, p.name, p.value)
		}
	}
	return nil
}

func (m Material) String() string {
	return fmt.Sprintf("%s (lambda=%g, rho=%g, c=%g)", m.Name, m.Lambda, m.Rho, m.C)
}

var (
	Copper      = Material{Name: "Copper", Lambda: 389.0, Rho: 8940.0, C: 380.0}
	Iron        = Material{Name: "Iron", Lambda: 80.2, Rho: 7874.0, C: 440.0}
	Glass       = Material{Name: "Glass", Lambda: 1.2, Rho: 2530.0, C: 840.0}
	Polystyrene = Material{Name: "Polystyrene", Lambda: 0.1, Rho: 1040.0, C: 1200.0}
)

// table keeps display order; lookups go through the lower-cased name.
var table = []Material{Copper, Iron, Glass, Polystyrene}

// All returns the built-in materials in display order.
func All() []Material {
	out := make([]Material, len(table))
	copy(out, table)
	return out
}

// Names returns the lookup keys of the built-in materials in display order.
func Names() []string {
	names := make([]string, len(table))
	for i, m := range table {
		names[i] = strings.ToLower(m.Name)
	}
	return names
}

// Lookup finds a built-in material by name, ignoring case.
func Lookup(name string) (Material, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range table {
		if strings.ToLower(m.Name) == key {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("unknown material: %s (available: %v)", name, Names())
}
