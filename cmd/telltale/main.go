package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/telltale/board"
	"github.com/theoremus-urban-solutions/telltale/config"
	"github.com/theoremus-urban-solutions/telltale/display"
	"github.com/theoremus-urban-solutions/telltale/feed"
	"github.com/theoremus-urban-solutions/telltale/internal"
	"github.com/theoremus-urban-solutions/telltale/network"
	"github.com/theoremus-urban-solutions/telltale/presenter"
)

func main() {
	configPath := flag.String("config", "", "config file (default: first of config.yml, config.toml, /etc/telltale/config.yml)")
	sim := flag.Bool("sim", false, "simulate the board: assume network, keyboard buttons")
	terminal := flag.Bool("terminal", false, "draw the display in the terminal")
	mirror := flag.Bool("mirror", false, "serve the display over HTTP")
	snapshot := flag.String("snapshot", "", "fetch once, write the frame as PNG to this path and exit")
	flag.Parse()

	internal.InitLogging(nil)
	cfg := loadConfig(*configPath)

	preview := *terminal || cfg.Display.Terminal
	if preview && *snapshot == "" {
		internal.InitLogging(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	acquireNetwork(ctx, cfg, *sim)

	source, err := newSource(cfg)
	if err != nil {
		log.Fatalf("feed: %v", err)
	}
	cache := feed.NewCache(source, cfg.Feed.Interval(), cfg.Feed.Timeout(), cfg.Station.Lines)
	scene := display.NewScene(cfg.Display.Width, cfg.Display.Height)
	opts := presenter.Options{
		Title:  cfg.Station.Name,
		Assets: cfg.Display.Assets,
		Tick:   cfg.Display.Tick(),
	}

	if *snapshot != "" {
		loop := presenter.NewLoop(scene, cache, nil, nil, opts)
		if err := loop.Tick(ctx, time.Now()); err != nil {
			log.Fatalf("render: %v", err)
		}
		if err := writeSnapshot(*snapshot, scene); err != nil {
			log.Fatalf("snapshot: %v", err)
		}
		log.Printf("wrote %s", *snapshot)
		return
	}

	if preview {
		scene.Attach(display.NewTerminal(os.Stdout, true))
	}
	var m *display.Mirror
	if *mirror || cfg.Mirror.Enabled {
		m = display.NewMirror(nil)
		scene.Attach(m)
		m.Start(cfg.Mirror.Port)
	}

	a, b, closeButtons := openButtons(cfg, *sim || cfg.Buttons.Keyboard, stop)

	if config.ConfigPath != "" {
		reloads := make(chan config.AppConfig, 1)
		opts.Reloads = reloads
		go func() {
			if err := config.Watch(ctx, config.ConfigPath, reloads); err != nil {
				log.Printf("config watcher stopped: %v", err)
			}
		}()
	}

	loop := presenter.NewLoop(scene, cache, a, b, opts)
	log.Printf("showing %s (%s), lines %v", cfg.Station.Name, cfg.Station.ID, cfg.Station.Lines)
	runErr := loop.Run(ctx)

	closeButtons()
	if m != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = m.Shutdown(shutdownCtx)
		cancel()
	}
	if runErr != nil {
		log.Printf("%v", runErr)
		os.Exit(1)
	}
	log.Printf("stopped")
}

func loadConfig(path string) config.AppConfig {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			log.Fatalf("config %s: %v", path, err)
		}
		config.Config, config.ConfigPath = cfg, path
		return cfg
	}
	if err := config.LoadAppConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("config: %v", err)
		}
		log.Printf("no config file found, using defaults")
		config.ApplyDefaults(&config.Config)
	}
	return config.Config
}

func acquireNetwork(ctx context.Context, cfg config.AppConfig, sim bool) {
	var radio network.Radio = network.NewNMCLIRadio(cfg.WiFi.Device)
	if sim {
		radio = network.OnlineRadio{}
	}
	candidates := make([]network.Candidate, 0, len(cfg.WiFi.Networks))
	for _, n := range cfg.WiFi.Networks {
		candidates = append(candidates, network.Candidate{SSID: n.SSID, Password: n.Password})
	}
	report, err := network.NewAcquirer(radio, cfg.WiFi.ScanTimeout()).Acquire(ctx, candidates)
	if err != nil {
		log.Fatalf("no known network found: %v", err)
	}
	if !report.AlreadyConnected {
		log.Printf("connected to %s", report.SSID)
	}
}

func newSource(cfg config.AppConfig) (feed.Source, error) {
	client := &http.Client{Timeout: cfg.Feed.Timeout()}
	switch cfg.Feed.Kind {
	case "gtfsrt":
		var urls []string
		for _, u := range strings.Split(cfg.Feed.URL, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) == 0 {
			return nil, errors.New("gtfsrt feed needs at least one url")
		}
		return feed.NewGTFSRTClient(client, cfg.Station.ID, urls...), nil
	default:
		return feed.NewAPIClient(client, cfg.Feed.URL, cfg.Station.ID, cfg.Feed.Limit), nil
	}
}

// openButtons returns the Manhattan and Queens buttons. Missing buttons are
// logged; the display still runs without them.
func openButtons(cfg config.AppConfig, keyboard bool, interrupt func()) (presenter.Button, presenter.Button, func()) {
	if keyboard {
		k, err := board.OpenKeyboard(interrupt)
		if err != nil {
			log.Printf("keyboard buttons unavailable: %v", err)
			return nil, nil, func() {}
		}
		log.Printf("keys 1/m select Manhattan, 2/q select Queens, Ctrl-C quits")
		return k.A(), k.B(), func() { _ = k.Close() }
	}
	buttons, err := board.OpenGPIO(cfg.Buttons.A, cfg.Buttons.B)
	if err != nil {
		log.Printf("gpio buttons unavailable: %v", err)
		return nil, nil, func() {}
	}
	return buttons[0], buttons[1], func() {}
}
