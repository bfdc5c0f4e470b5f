package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/termfixture/internal/ir"
)

func TestOverridesApply(t *testing.T) {
	defaults := RenderOptions{Width: 40, ColorSystem: ColorTrueColor, ForceTerminal: On}

	d := Descriptor{RenderOptions: ir.IRObject{
		"width":          ir.IRInt(60),
		"color_system":   ir.IRString("auto"),
		"force_terminal": ir.IRNull{},
	}}
	ov, err := d.Overrides()
	require.NoError(t, err)

	got := defaults.Apply(ov)
	assert.Equal(t, RenderOptions{Width: 60, ColorSystem: ColorAuto, ForceTerminal: Unset}, got)
}

func TestOverridesPartial(t *testing.T) {
	defaults := RenderOptions{Width: 40, ColorSystem: ColorTrueColor, ForceTerminal: On}

	d := Descriptor{RenderOptions: ir.IRObject{"force_terminal": ir.IRBool(false)}}
	ov, err := d.Overrides()
	require.NoError(t, err)
	assert.Nil(t, ov.Width)
	assert.Nil(t, ov.ColorSystem)

	got := defaults.Apply(ov)
	assert.Equal(t, RenderOptions{Width: 40, ColorSystem: ColorTrueColor, ForceTerminal: Off}, got)

	none, err := Descriptor{}.Overrides()
	require.NoError(t, err)
	assert.Equal(t, defaults, defaults.Apply(none))
}

func TestOverridesRejectUnknown(t *testing.T) {
	d := Descriptor{RenderOptions: ir.IRObject{"height": ir.IRInt(3)}}
	_, err := d.Overrides()
	assert.Error(t, err)
}

func TestTristate(t *testing.T) {
	assert.Nil(t, Unset.Bool())
	require.NotNil(t, On.Bool())
	assert.True(t, *On.Bool())
	require.NotNil(t, Off.Bool())
	assert.False(t, *Off.Bool())

	yes, no := true, false
	assert.Equal(t, On, TristateOf(&yes))
	assert.Equal(t, Off, TristateOf(&no))
	assert.Equal(t, Unset, TristateOf(nil))
}

func TestDescriptorIRFieldOrder(t *testing.T) {
	notes := "n"
	d := Descriptor{
		ID:          "rule/basic",
		Kind:        KindRule,
		CompareANSI: true,
		Input:       ir.IRObject{"title": ir.IRString("")},
		Notes:       &notes,
	}
	rec := d.IR()

	keys := make([]string, len(rec))
	for i, f := range rec {
		keys[i] = f.Key
	}
	assert.Equal(t, []string{"id", "kind", "compare_ansi", "render_options", "env", "theme", "input", "notes"}, keys)

	v, ok := rec.Get("render_options")
	require.True(t, ok)
	assert.Equal(t, ir.IRNull{}, v)
	v, _ = rec.Get("notes")
	assert.Equal(t, ir.IRString("n"), v)
}

func TestRenderOptionsIR(t *testing.T) {
	rec := RenderOptions{Width: 40, ColorSystem: ColorAuto, ForceTerminal: Unset}.IR()
	out, err := ir.MarshalCompact(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"width":40,"color_system":"auto","force_terminal":null}`, string(out))
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 18)
	for _, k := range kinds {
		assert.True(t, k.Valid())
	}
	assert.False(t, Kind("sparkline").Valid())

	kinds[0] = "mutated"
	assert.Equal(t, KindText, Kinds()[0], "Kinds returns a copy")
}
