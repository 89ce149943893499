package presetfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/scrambler"
)

const sample = `
presets:
  - name: 4x4
    length: 40
    moveset: [U, D, R, L, F, B, Uw, Rw, Fw]
    modifiers: ["", "'", "2"]
  - name: pyraminx
    length: 11
    moveset: URLB
    modifiers: " '"
`

func TestParse(t *testing.T) {
	presets, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, presets, 2)

	big := presets[0]
	require.Equal(t, scrambler.Mode("4x4"), big.Mode)
	require.Equal(t, 40, big.Config.Length())
	require.Len(t, big.Config.Moveset(), 9)
	require.Equal(t, scrambler.StandardModifiers, big.Config.Modifiers())

	pyra := presets[1]
	require.Equal(t, []string{"U", "R", "L", "B"}, pyra.Config.Moveset())
	require.Equal(t, []scrambler.Modifier{scrambler.Blank, scrambler.Prime}, pyra.Config.Modifiers())
}

func TestParseEmpty(t *testing.T) {
	presets, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, presets)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		is   error
	}{
		{"zero length", "presets:\n  - name: a\n    length: 0\n    moveset: URF\n    modifiers: \" '\"\n", scrambler.ErrInvalidConfig},
		{"unsatisfiable", "presets:\n  - name: a\n    length: 5\n    moveset: UR\n    modifiers: \" '\"\n", scrambler.ErrUnsatisfiableConstraint},
		{"duplicate", "presets:\n  - name: a\n    length: 2\n    moveset: UR\n    modifiers: \" \"\n  - name: a\n    length: 2\n    moveset: UR\n    modifiers: \" \"\n", ErrDuplicatePreset},
		{"missing name", "presets:\n  - length: 2\n    moveset: UR\n    modifiers: \" \"\n", nil},
		{"unknown field", "presets:\n  - name: a\n    size: 2\n", nil},
		{"bad moveset kind", "presets:\n  - name: a\n    length: 2\n    moveset: {x: 1}\n    modifiers: \" \"\n", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			require.Error(t, err)
			if tc.is != nil {
				require.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	presets, err := Load(path)
	require.NoError(t, err)
	require.Len(t, presets, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	presets, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	custom2x2 := Preset{Mode: scrambler.Mode2x2, Config: scrambler.MustConfig(5, []string{"U", "R", "F"}, scrambler.StandardModifiers)}
	reg := NewRegistry(append(presets, custom2x2)...)

	require.Equal(t, []scrambler.Mode{"2x2", "3x3", "4x4", "pyraminx"}, reg.Modes())

	c, ok := reg.Lookup("4x4")
	require.True(t, ok)
	require.Equal(t, 40, c.Length())

	c, ok = reg.Lookup(scrambler.Mode2x2)
	require.True(t, ok)
	require.Equal(t, 5, c.Length(), "file preset shadows built-in")
	require.True(t, reg.IsCustom(scrambler.Mode2x2))
	require.False(t, reg.IsCustom(scrambler.Mode3x3))

	_, ok = reg.Lookup("megaminx")
	require.False(t, ok)
	require.Equal(t, scrambler.Preset(scrambler.DefaultMode), reg.Resolve("megaminx"))
}
