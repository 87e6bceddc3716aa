package config

import "sort"

// Preset overrides the physical settings of DefaultConfig.
type Preset struct {
	Distance, Attraction, Friction float64
}

var Presets = map[string]Preset{
	"classic": {Distance: 0.2, Attraction: 0.1, Friction: 0.1},
	"close":   {Distance: 0.1, Attraction: 0.1, Friction: 0.1},
	"strong":  {Distance: 0.2, Attraction: 1.0, Friction: 0.5},
	"sticky":  {Distance: 0.1, Attraction: 1.0, Friction: 0.5},
}

// GetPreset returns a fresh default config with the named preset applied,
// or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Distance = p.Distance
	cfg.Attraction = p.Attraction
	cfg.Friction = p.Friction
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
