package scrambler

// Mode names a predefined scramble configuration.
type Mode string

const (
	Mode2x2 Mode = "2x2"
	Mode3x3 Mode = "3x3"
)

// DefaultMode is used by Preset for any mode it does not recognise.
const DefaultMode = Mode3x3

// Standard movesets.
var (
	// Three faces suffice on a 2x2: the other three are equivalent up to rotation.
	Moveset2x2 = []string{"U", "R", "F"}
	Moveset3x3 = []string{"U", "D", "R", "L", "F", "B"}
)

// presets is populated once and never modified.
var presets = map[Mode]Config{
	Mode2x2: MustConfig(9, Moveset2x2, StandardModifiers),
	Mode3x3: MustConfig(20, Moveset3x3, StandardModifiers),
}

var presetOrder = []Mode{Mode2x2, Mode3x3}

// Preset returns the configuration for mode. Unknown modes fall back to the
// DefaultMode preset; use LookupPreset to detect them.
func Preset(mode Mode) Config {
	if c, ok := presets[mode]; ok {
		return c
	}
	return presets[DefaultMode]
}

// LookupPreset returns the configuration for mode and whether it is registered.
func LookupPreset(mode Mode) (Config, bool) {
	c, ok := presets[mode]
	return c, ok
}

// Modes returns the registered modes in display order.
func Modes() []Mode {
	return append([]Mode(nil), presetOrder...)
}
