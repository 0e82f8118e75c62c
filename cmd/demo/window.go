package main

import (
	"context"

	"scene-demo/internal/assets"
	"scene-demo/internal/commands"
	"scene-demo/internal/debug"
	"scene-demo/internal/engineconfig"
	"scene-demo/internal/fonts"
	"scene-demo/internal/frame"
	"scene-demo/internal/graphics"
	"scene-demo/internal/logger"
	"scene-demo/internal/panel"
	"scene-demo/internal/params"
	"scene-demo/internal/pointer"
	"scene-demo/internal/render"
	"scene-demo/internal/scenedef"
	"scene-demo/internal/terminal"
	"scene-demo/internal/ui"
)

const hintText = "ESC terminal   right-drag orbit   wheel zoom"

// runWindow wires the loop to a raylib window, the renderer, the control
// panel, the terminal and the overlays.
func runWindow(ctx context.Context, prefs *engineconfig.EnginePrefs, configPath string, built *scenedef.Built, store *params.Store, log *logger.Logger) error {
	resolver := assets.NewResolver(prefs.AssetDirs, prefs.CacheDir)
	rend := render.New(ctx, resolver, log)
	ptr := pointer.New(prefs.Width, prefs.Height)

	loop, err := frame.New(frame.Context{
		Scene:     built.Scene,
		Camera:    built.Camera,
		Params:    store,
		Pointer:   ptr,
		Picker:    rend,
		Renderer:  rend,
		Log:       log,
		Cube:      built.Cube,
		Sphere:    built.Sphere,
		Spot:      built.Spot,
		Helper:    built.Scene.SpotHelper,
		Target:    built.Target,
		Highlight: built.Highlight,
		Amplitude: built.Amplitude,
		Strict:    prefs.StrictParams,
	})
	if err != nil {
		return err
	}

	win := graphics.New(graphics.Options{
		Width:      prefs.Width,
		Height:     prefs.Height,
		Title:      prefs.Title,
		Fullscreen: prefs.Fullscreen,
		TargetFPS:  prefs.TargetFPS,
	})
	if err := loop.Start(win); err != nil {
		return err
	}

	reg := commands.NewRegistry()
	commands.RegisterBuiltins(reg, commands.Deps{
		Params:    store,
		Prefs:     prefs,
		Scene:     built.Scene,
		State:     loop.State,
		Stop:      loop.Stop,
		SavePrefs: func(p engineconfig.EnginePrefs) error { return engineconfig.SaveTo(configPath, p) },
		Print:     log.Log,
	})
	term := terminal.New(log, reg)

	pnl := panel.New(store, panel.Layout{})
	uiEngine := ui.New()
	if prefs.StylePath != "" {
		if err := uiEngine.LoadCSS(prefs.StylePath); err != nil {
			log.Log(err.Error())
		}
	}
	inspector := ui.NewInspector()
	hint := ui.NewNode("", "hint", hintText)
	dbg := debug.New()
	dbg.State = loop.State

	input := &graphics.Input{
		Pointer: ptr,
		Camera:  built.Camera,
		Panel:   pnl,
		Blocked: term.IsOpen,
		OnError: func(err error) { log.Log(err.Error()) },
	}

	fontLoaded := false
	var nodes []*ui.Node
	hooks := graphics.Hooks{
		Resize: func(w, h int) {
			ptr.Resize(w, h)
			built.Camera.SetAspect(w, h)
		},
		Update: func() {
			if !fontLoaded {
				fontLoaded = true
				loadFont(prefs, uiEngine, term, dbg, log)
			}
			term.Update()
			pnl.Visible = prefs.ShowPanel
			dbg.ShowFPS, dbg.ShowMemAlloc, dbg.ShowLoop = prefs.ShowFPS, prefs.ShowMemAlloc, prefs.ShowLoop
			input.Poll()
		},
		Overlay: func() {
			uiEngine.DrawPanel(pnl)
			nodes = append(nodes[:0], hint)
			nodes = inspector.AppendNodes(nodes, !term.IsOpen(), selection(built, loop.State()))
			uiEngine.SetNodes(nodes)
			uiEngine.Draw()
			dbg.Draw()
			term.Draw()
		},
		Close: func() {
			loop.Stop()
			uiEngine.Unload()
		},
	}

	log.Logf("scene ready: %d objects, %d parameters", built.Scene.Len(), len(store.Defs()))
	return win.Run(ctx, hooks)
}

// loadFont finds prefs.Font under the asset font dirs and shares it across
// the overlays. It runs once the window exists.
func loadFont(prefs *engineconfig.EnginePrefs, e *ui.Engine, term *terminal.Terminal, dbg *debug.Debug, log *logger.Logger) {
	if prefs.Font == "" {
		return
	}
	dirs := prefs.AssetDirs
	if len(dirs) == 0 {
		dirs = assets.DefaultBaseDirs
	}
	path, err := fonts.FindFont(fonts.BaseDirs(dirs), prefs.Font)
	if err != nil {
		log.Logf("font %q: %v", prefs.Font, err)
		return
	}
	if err := e.LoadFont(path); err != nil {
		log.Logf("font %s: %v", path, err)
		return
	}
	term.SetFont(e.Font())
	dbg.SetFont(e.Font())
}

func selection(b *scenedef.Built, s frame.State) ui.Selection {
	o, ok := b.Scene.ByID(b.Target)
	if !ok {
		return ui.Selection{}
	}
	return ui.Selection{
		Name:     o.Name,
		Position: [3]float32{o.Position.X(), o.Position.Y(), o.Position.Z()},
		Color:    o.Material.Color.Hex(),
		Hovered:  s.Hovered,
		Present:  true,
	}
}
