package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"scene-demo/internal/engineconfig"
	"scene-demo/internal/frame"
	"scene-demo/internal/params"
	"scene-demo/internal/world"
)

// Deps are what the built-in commands act on. Commands whose dependency is
// nil are not registered.
type Deps struct {
	Params *params.Store
	Prefs  *engineconfig.EnginePrefs
	Scene  *world.Scene
	State  func() frame.State
	Stop   func()
	// SavePrefs persists Prefs when a toggle is run with -save.
	SavePrefs func(engineconfig.EnginePrefs) error
	// Print receives command output, usually the logger.
	Print func(string)
}

// RegisterBuiltins adds set, get, params, grid, fps, memalloc, loop, panel,
// state, stop and help to r.
func RegisterBuiltins(r *Registry, d Deps) {
	out := d.Print
	if out == nil {
		out = func(string) {}
	}

	if d.Params != nil {
		registerParams(r, d.Params, out)
	}
	if d.Prefs != nil {
		registerToggle(r, "grid", d, out, &d.Prefs.GridVisible, func(v bool) {
			if d.Scene != nil {
				d.Scene.Grid.Visible = v
			}
		})
		registerToggle(r, "fps", d, out, &d.Prefs.ShowFPS, nil)
		registerToggle(r, "memalloc", d, out, &d.Prefs.ShowMemAlloc, nil)
		registerToggle(r, "loop", d, out, &d.Prefs.ShowLoop, nil)
		registerToggle(r, "panel", d, out, &d.Prefs.ShowPanel, nil)
	}
	if d.State != nil {
		fs := flag.NewFlagSet("state", flag.ContinueOnError)
		r.Register("state", "cmd state", fs, func() error {
			out(FormatState(d.State()))
			return nil
		})
	}
	if d.Stop != nil {
		fs := flag.NewFlagSet("stop", flag.ContinueOnError)
		r.Register("stop", "cmd stop", fs, func() error {
			d.Stop()
			out("animation loop stopped")
			return nil
		})
	}

	fs := flag.NewFlagSet("help", flag.ContinueOnError)
	r.Register("help", "cmd help", fs, func() error {
		for _, n := range r.Names() {
			u, _ := r.Usage(n)
			out(u)
		}
		return nil
	})
}

func registerParams(r *Registry, store *params.Store, out func(string)) {
	setFS := flag.NewFlagSet("set", flag.ContinueOnError)
	r.Register("set", "cmd set <name> <value>", setFS, func() error {
		args := setFS.Args()
		if len(args) < 2 {
			return errors.New("set: want <name> <value>")
		}
		name, raw := args[0], strings.Join(args[1:], " ")
		if err := store.SetString(name, raw); err != nil {
			return fmt.Errorf("set: %w", err)
		}
		v, _ := store.Get(name)
		out(fmt.Sprintf("%s = %s", name, v))
		return nil
	})

	getFS := flag.NewFlagSet("get", flag.ContinueOnError)
	r.Register("get", "cmd get <name>", getFS, func() error {
		if getFS.NArg() != 1 {
			return errors.New("get: want <name>")
		}
		name := getFS.Arg(0)
		v, ok := store.Get(name)
		if !ok {
			return fmt.Errorf("get: %w: %q", params.ErrUnknown, name)
		}
		out(fmt.Sprintf("%s = %s", name, v))
		return nil
	})

	listFS := flag.NewFlagSet("params", flag.ContinueOnError)
	folder := listFS.String("folder", "", "only list parameters in this folder")
	r.Register("params", "cmd params [-folder name]", listFS, func() error {
		defer func() { *folder = "" }()
		for _, d := range store.Defs() {
			if *folder != "" && !strings.EqualFold(d.Folder, *folder) {
				continue
			}
			v, _ := store.Get(d.Name)
			line := fmt.Sprintf("%s/%s (%s) = %s", d.Folder, d.Name, d.Kind, v)
			if d.Kind == params.KindRange && (d.Min != 0 || d.Max != 0) {
				line += fmt.Sprintf(" [%g..%g]", d.Min, d.Max)
			}
			out(line)
		}
		return nil
	})
}

// registerToggle adds "cmd <name> [-save] [on|off]". Without an argument the
// setting is flipped. apply, when set, mirrors the new value elsewhere.
func registerToggle(r *Registry, name string, d Deps, out func(string), dst *bool, apply func(bool)) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	save := fs.Bool("save", false, "persist the setting to the config file")
	r.Register(name, fmt.Sprintf("cmd %s [-save] [on|off]", name), fs, func() error {
		defer func() { *save = false }()
		switch arg := strings.ToLower(fs.Arg(0)); arg {
		case "":
			*dst = !*dst
		case "on", "true", "1":
			*dst = true
		case "off", "false", "0":
			*dst = false
		default:
			return fmt.Errorf("%s: want on or off, got %q", name, arg)
		}
		if apply != nil {
			apply(*dst)
		}
		state := "off"
		if *dst {
			state = "on"
		}
		out(fmt.Sprintf("%s %s", name, state))
		if *save && d.SavePrefs != nil {
			if err := d.SavePrefs(*d.Prefs); err != nil {
				return fmt.Errorf("%s: save: %w", name, err)
			}
		}
		return nil
	})
}

// FormatState renders loop state for the terminal and the overlay.
func FormatState(s frame.State) string {
	return fmt.Sprintf("frame %d  step %.3f  sphere.y %.3f  hover %t  highlights %d",
		s.Frames, s.Step, s.SphereY, s.Hovered, s.Highlights)
}
