package config

import "sort"

var Presets = map[string]map[string]*Config{
	GeometryBar: {
		"default": {
			Geometry: GeometryBar, Material: "copper", Length: 1.0, TMax: 16.0, U0: 13.0, F: 80.0,
			N: DefaultBarPoints, SampleEvery: DefaultSampleEvery,
		},
		"coarse": {
			Geometry: GeometryBar, Material: "copper", Length: 1.0, TMax: 16.0, U0: 13.0, F: 80.0,
			N: 11, SampleEvery: 50,
		},
		"insulator": {
			Geometry: GeometryBar, Material: "polystyrene", Length: 0.1, TMax: 600.0, U0: 20.0, F: 5.0,
			N: 201, SampleEvery: DefaultSampleEvery,
		},
		"long": {
			Geometry: GeometryBar, Material: "iron", Length: 2.0, TMax: 120.0, U0: 13.0, F: 40.0,
			N: 2001, SampleEvery: DefaultSampleEvery,
		},
	},
	GeometryPlate: {
		"default": {
			Geometry: GeometryPlate, Material: "copper", Length: 1.0, TMax: 16.0, U0: 13.0, F: 80.0,
			N: DefaultPlatePoints, SampleEvery: DefaultSampleEvery,
			Relaxation: RelaxationConfig{MaxSweeps: 100, Tolerance: 1e-6},
		},
		"coarse": {
			Geometry: GeometryPlate, Material: "copper", Length: 1.0, TMax: 16.0, U0: 13.0, F: 80.0,
			N: 31, SampleEvery: 50,
			Relaxation: RelaxationConfig{MaxSweeps: 100, Tolerance: 1e-6},
		},
		"precise": {
			Geometry: GeometryPlate, Material: "iron", Length: 1.0, TMax: 16.0, U0: 13.0, F: 80.0,
			N: DefaultPlatePoints, SampleEvery: DefaultSampleEvery,
			Relaxation: RelaxationConfig{MaxSweeps: 1000, Tolerance: 1e-10},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(geometry, preset string) *Config {
	geometryPresets, ok := Presets[geometry]
	if !ok {
		return nil
	}
	cfg, ok := geometryPresets[preset]
	if !ok {
		return nil
	}
	cp := cfg.Clone()
	if cp.Relaxation.MaxSweeps == 0 {
		cp.Relaxation = DefaultConfig().Relaxation
	}
	return cp
}

func ListPresets(geometry string) []string {
	geometryPresets, ok := Presets[geometry]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(geometryPresets))
	for name := range geometryPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
