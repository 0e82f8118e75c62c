package commands

import (
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-demo/internal/engineconfig"
	"scene-demo/internal/frame"
	"scene-demo/internal/params"
	"scene-demo/internal/world"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd set speed 0.05")
	assert.True(t, ok)
	assert.Equal(t, []string{"set", "speed", "0.05"}, args)

	args, ok = Parse("cmd   ")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("hello there")
	assert.False(t, ok)
	_, ok = Parse("CMD grid")
	assert.False(t, ok)
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	fs := flag.NewFlagSet("echo", flag.ContinueOnError)
	upper := fs.Bool("upper", false, "")
	var got string
	r.Register("echo", "cmd echo [-upper] text", fs, func() error {
		got = strings.Join(fs.Args(), " ")
		if *upper {
			got = strings.ToUpper(got)
		}
		return nil
	})

	require.NoError(t, r.Execute([]string{"echo", "-upper", "hi", "there"}))
	assert.Equal(t, "HI THERE", got)

	assert.ErrorContains(t, r.Execute(nil), "missing subcommand")
	assert.ErrorContains(t, r.Execute([]string{"nope"}), "unknown command")
	assert.ErrorContains(t, r.Execute([]string{"echo", "-bogus"}), "usage: cmd echo")

	handled, err := r.ExecuteLine("not a command")
	assert.False(t, handled)
	assert.NoError(t, err)
}

type harness struct {
	reg     *Registry
	store   *params.Store
	prefs   *engineconfig.EnginePrefs
	scene   *world.Scene
	out     []string
	stopped int
	saved   []engineconfig.EnginePrefs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := params.New([]params.Def{
		{Name: "speed", Kind: params.KindRange, Min: 0, Max: 0.1, Default: params.Value{Number: 0.01}, Folder: "Sphere"},
		{Name: "wireframe", Kind: params.KindBool, Folder: "Sphere"},
		{Name: "angle", Kind: params.KindRange, Min: 0, Max: 1, Default: params.Value{Number: 0.2}, Folder: "Spot Light"},
	})
	require.NoError(t, err)
	prefs := engineconfig.Default()
	h := &harness{reg: NewRegistry(), store: store, prefs: &prefs, scene: world.NewScene()}
	h.scene.Grid.Visible = true
	RegisterBuiltins(h.reg, Deps{
		Params: store,
		Prefs:  h.prefs,
		Scene:  h.scene,
		State:  func() frame.State { return frame.State{Frames: 7, Step: 0.07} },
		Stop:   func() { h.stopped++ },
		SavePrefs: func(p engineconfig.EnginePrefs) error {
			h.saved = append(h.saved, p)
			return nil
		},
		Print: func(s string) { h.out = append(h.out, s) },
	})
	return h
}

func (h *harness) run(t *testing.T, line string) error {
	t.Helper()
	handled, err := h.reg.ExecuteLine(line)
	require.True(t, handled)
	return err
}

func TestSetGet(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "cmd set speed 0.05"))
	v, _ := h.store.Float("speed")
	assert.InDelta(t, 0.05, v, 1e-6)

	require.NoError(t, h.run(t, "cmd set wireframe on"))
	require.NoError(t, h.run(t, "cmd get wireframe"))
	assert.Equal(t, "wireframe = true", h.out[len(h.out)-1])

	assert.ErrorIs(t, h.run(t, "cmd set ghost 1"), params.ErrUnknown)
	assert.ErrorIs(t, h.run(t, "cmd set speed fast"), params.ErrKind)
	assert.ErrorIs(t, h.run(t, "cmd set speed NaN"), params.ErrKind)
	assert.Error(t, h.run(t, "cmd set speed"))
	assert.ErrorIs(t, h.run(t, "cmd get ghost"), params.ErrUnknown)
}

func TestParamsListing(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "cmd params"))
	require.Len(t, h.out, 3)
	assert.Equal(t, "Sphere/speed (range) = 0.01 [0..0.1]", h.out[0])

	h.out = nil
	require.NoError(t, h.run(t, "cmd params -folder spot light"))
	assert.Empty(t, h.out, "folder flag takes one token")

	h.out = nil
	require.NoError(t, h.run(t, "cmd params -folder Sphere"))
	assert.Len(t, h.out, 2)

	h.out = nil
	require.NoError(t, h.run(t, "cmd params"))
	assert.Len(t, h.out, 3, "folder filter does not stick")
}

func TestToggles(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "cmd grid"))
	assert.False(t, h.prefs.GridVisible)
	assert.False(t, h.scene.Grid.Visible)

	require.NoError(t, h.run(t, "cmd grid on"))
	assert.True(t, h.scene.Grid.Visible)

	require.NoError(t, h.run(t, "cmd fps -save on"))
	assert.True(t, h.prefs.ShowFPS)
	require.Len(t, h.saved, 1)
	assert.True(t, h.saved[0].ShowFPS)

	require.NoError(t, h.run(t, "cmd memalloc off"))
	assert.False(t, h.prefs.ShowMemAlloc)
	assert.Len(t, h.saved, 1, "-save does not stick")

	assert.Error(t, h.run(t, "cmd loop sideways"))
}

func TestStopStateHelp(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "cmd stop"))
	assert.Equal(t, 1, h.stopped)

	require.NoError(t, h.run(t, "cmd state"))
	assert.Contains(t, h.out[len(h.out)-1], "frame 7")

	h.out = nil
	require.NoError(t, h.run(t, "cmd help"))
	assert.Len(t, h.out, len(h.reg.Names()))
	assert.Contains(t, h.reg.Names(), "memalloc")
}

func TestSaveErrorSurfaces(t *testing.T) {
	prefs := engineconfig.Default()
	r := NewRegistry()
	RegisterBuiltins(r, Deps{
		Prefs:     &prefs,
		SavePrefs: func(engineconfig.EnginePrefs) error { return errors.New("disk full") },
	})
	assert.ErrorContains(t, r.Execute([]string{"panel", "-save"}), "disk full")
	_, ok := r.Usage("set")
	assert.False(t, ok, "no store, no set command")
}
