package scrambler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfigInvalid(t *testing.T) {
	cases := []struct {
		name      string
		length    int
		moveset   []string
		modifiers []Modifier
	}{
		{"zero length", 0, Moveset3x3, StandardModifiers},
		{"negative length", -1, Moveset3x3, StandardModifiers},
		{"empty moveset", 5, nil, StandardModifiers},
		{"empty modifiers", 5, Moveset3x3, nil},
		{"empty symbol", 5, []string{"U", ""}, StandardModifiers},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.length, tc.moveset, tc.modifiers)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigIsCopied(t *testing.T) {
	moves := []string{"U", "R", "F"}
	cfg, err := NewConfig(3, moves, StandardModifiers)
	require.NoError(t, err)

	moves[0] = "X"
	require.Equal(t, []string{"U", "R", "F"}, cfg.Moveset())

	got := cfg.Moveset()
	got[1] = "Y"
	require.Equal(t, []string{"U", "R", "F"}, cfg.Moveset())
}

func TestDistinctMoves(t *testing.T) {
	cfg := MustConfig(1, []string{"U", "U", "R"}, StandardModifiers)
	require.Equal(t, 2, cfg.DistinctMoves())
}

func TestPresets(t *testing.T) {
	c2 := Preset(Mode2x2)
	require.Equal(t, 9, c2.Length())
	require.Equal(t, []string{"U", "R", "F"}, c2.Moveset())
	require.Equal(t, []Modifier{Blank, Prime, Double}, c2.Modifiers())

	c3 := Preset(Mode3x3)
	require.Equal(t, 20, c3.Length())
	require.Equal(t, []string{"U", "D", "R", "L", "F", "B"}, c3.Moveset())
	require.Equal(t, []Modifier{Blank, Prime, Double}, c3.Modifiers())

	for _, m := range Modes() {
		require.NoError(t, Preset(m).Validate(), "preset %s", m)
	}
}

func TestPresetFallback(t *testing.T) {
	require.Equal(t, Preset(DefaultMode), Preset("4x4"))
	require.Equal(t, Preset(DefaultMode), Preset(""))

	_, ok := LookupPreset("4x4")
	require.False(t, ok)

	c, ok := LookupPreset(Mode2x2)
	require.True(t, ok)
	require.Equal(t, 9, c.Length())
}

func TestParseMoveset(t *testing.T) {
	require.Equal(t, []string{"U", "R", "F"}, ParseMoveset("URF"))
	require.Equal(t, []string{"U", "Rw", "F"}, ParseMoveset("U, Rw, F"))
	require.Equal(t, []string{"U", "D"}, ParseMoveset(" U D "))
	require.Nil(t, ParseMoveset("   "))
}

func TestParseModifiers(t *testing.T) {
	require.Equal(t, []Modifier{Blank, Prime, Double}, ParseModifiers(" '2"))
	require.Empty(t, ParseModifiers(""))
}

func TestConfigString(t *testing.T) {
	require.Equal(t, "len=9 moves=[U R F] mods=[_ ' 2]", Preset(Mode2x2).String())
}
