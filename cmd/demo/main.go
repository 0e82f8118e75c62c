// Command demo shows the interactive 3D scene: a spinning cube, a bouncing
// sphere that turns red under the pointer, a spot light and a control panel.
// With -headless it runs the frame loop without a window and prints the state.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"scene-demo/internal/commands"
	"scene-demo/internal/engineconfig"
	"scene-demo/internal/env"
	"scene-demo/internal/headless"
	"scene-demo/internal/logger"
	"scene-demo/internal/params"
	"scene-demo/internal/scenedef"
)

func main() {
	var (
		headlessMode = flag.Bool("headless", false, "run the frame loop without a window")
		frames       = flag.Int("frames", 100, "frames to run with -headless")
		pointerArg   = flag.String("pointer", "", "fixed pointer for -headless in NDC, e.g. 0.1,-0.2")
		scenePath    = flag.String("scene", "", "scene definition YAML (default: built-in scene)")
		configPath   = flag.String("config", engineconfig.EngineConfigPath, "preferences file")
	)
	flag.Parse()

	if err := run(*configPath, *scenePath, *headlessMode, *frames, *pointerArg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, scenePath string, headlessMode bool, frames int, pointerArg string) error {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	prefs, err := engineconfig.LoadFrom(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := prefs.ApplyEnv(os.LookupEnv); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if scenePath != "" {
		prefs.ScenePath = scenePath
	}

	log := logger.NewFile(prefs.LogPath)

	def := scenedef.Default()
	if prefs.ScenePath != "" {
		if def, err = scenedef.Load(prefs.ScenePath); err != nil {
			return err
		}
	}
	built, err := def.Build()
	if err != nil {
		return err
	}
	store, err := params.New(built.Params)
	if err != nil {
		return err
	}
	if err := built.Bind(store); err != nil {
		return err
	}
	built.Scene.Grid.Visible = built.Scene.Grid.Visible && prefs.GridVisible

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if headlessMode {
		ptr, err := headless.ParsePointer(pointerArg)
		if err != nil {
			return err
		}
		res, err := headless.Run(ctx, built, store, headless.Options{
			Frames:  frames,
			Pointer: ptr,
			Width:   prefs.Width,
			Height:  prefs.Height,
			Strict:  prefs.StrictParams,
			Log:     log,
		})
		if err != nil {
			return err
		}
		fmt.Println(commands.FormatState(res.State))
		if o, ok := built.Scene.ByID(built.Target); ok {
			fmt.Printf("%s color %s\n", o.Name, o.Material.Color.Hex())
		}
		return nil
	}
	return runWindow(ctx, &prefs, configPath, built, store, log)
}
