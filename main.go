package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"glyphray/assets"
	"glyphray/internal/config"
	"glyphray/internal/game"
	"glyphray/internal/graphics"
	"glyphray/internal/netroster"
	"glyphray/internal/present/headless"
	"glyphray/internal/present/terminal"
	"glyphray/internal/present/window"
	"glyphray/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "configuration file")
	presenter := flag.String("presenter", "", "terminal, window or headless (overrides display.presenter)")
	level := flag.String("level", "", "start level (overrides assets.level)")
	connect := flag.String("connect", "", "roster server websocket URL")
	frames := flag.Int("frames", 0, "headless: ticks to render before printing the last frame")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *presenter != "" {
		cfg.Display.Presenter = *presenter
	}
	if *level != "" {
		cfg.Assets.Level = *level
	}
	if *connect != "" {
		cfg.Network.URL = *connect
		cfg.Network.Enabled = true
	}
	if *frames > 0 && *presenter == "" {
		cfg.Display.Presenter = "headless"
	}

	atlas, levels, err := loadAssets(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var feed game.RosterFeed
	if cfg.Network.Enabled {
		client, err := netroster.Dial(ctx, cfg.Network.URL, cfg.Network.PlayerName, cfg.Network.SendBuffer)
		if err != nil {
			log.Printf("Warning: playing offline: %v", err)
		} else {
			defer client.Close()
			feed = client
		}
	}

	startLevel := cfg.Assets.Level
	if startLevel == "" {
		startLevel = assets.DefaultLevel
	}
	g, err := game.NewGame(cfg, world.NewWorldManager(levels), atlas, startLevel, feed)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	if err := run(ctx, cfg, g, *frames); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file, falling back to the built-in defaults
// when the default file is absent
func loadConfig(path string) *config.Config {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && path == "config.yaml" {
		log.Printf("Warning: %s not found, using defaults", path)
		config.GlobalConfig = config.Default()
		return config.GlobalConfig
	}
	return config.MustLoadConfig(path)
}

// loadAssets reads the atlas and level directory named in the config, or
// the embedded defaults
func loadAssets(cfg *config.Config) (*graphics.Atlas, fs.FS, error) {
	var atlas *graphics.Atlas
	var err error
	if cfg.Assets.Textures != "" {
		atlas, err = graphics.LoadAtlas(os.DirFS(filepath.Dir(cfg.Assets.Textures)), filepath.Base(cfg.Assets.Textures))
	} else {
		atlas, err = graphics.LoadAtlas(assets.Files, assets.TexturesFile)
	}
	if err != nil {
		return nil, nil, err
	}

	levels := assets.Levels()
	if cfg.Assets.Levels != "" {
		levels = os.DirFS(cfg.Assets.Levels)
	}
	return atlas, levels, nil
}

func run(ctx context.Context, cfg *config.Config, g *game.Game, frames int) error {
	switch cfg.Display.Presenter {
	case "window":
		w, err := window.New(cfg)
		if err != nil {
			return err
		}
		w.Attach(game.NewGameLoop(g, w))
		return w.Run()

	case "headless":
		if frames <= 0 {
			frames = 1
		}
		p := headless.New(frames)
		if err := game.NewGameLoop(g, p).Run(ctx); err != nil {
			return err
		}
		fmt.Println(p.String())
		return nil

	case "terminal", "":
		p, err := terminal.Open()
		if err != nil {
			return err
		}
		defer p.Close()
		return game.NewGameLoop(g, p).Run(ctx)
	}
	return fmt.Errorf("unknown presenter %q", cfg.Display.Presenter)
}
