// Package main provides the player entry point.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/KenLustre/Harmonia/internal/app/notify"
	"github.com/KenLustre/Harmonia/internal/app/playback"
	"github.com/KenLustre/Harmonia/internal/domain/track"
	"github.com/KenLustre/Harmonia/internal/infra/audio"
	"github.com/KenLustre/Harmonia/internal/infra/config"
	"github.com/KenLustre/Harmonia/internal/infra/library"
	"github.com/KenLustre/Harmonia/internal/infra/logger"
	"github.com/KenLustre/Harmonia/internal/infra/store"
)

var (
	app        = kingpin.New("harmonia", "Harmonia local playback engine")
	configPath = app.Flag("config", "Path to config file").Default("config/player.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// scan command
	scanCmd = app.Command("scan", "List the library and exit")

	// playlists command
	playlistsCmd = app.Command("playlists", "List stored playlists and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the interactive player (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Initialize logger. Logs go to stderr so they don't interleave
	// with the interactive prompt.
	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Load config
	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	switch command {
	case scanCmd.FullCommand():
		if err := printLibrary(cfg); err != nil {
			zlog.Fatal().Msgf("Scan failed: %v", err)
		}
	case playlistsCmd.FullCommand():
		if err := printPlaylists(cfg); err != nil {
			zlog.Fatal().Msgf("Failed to list playlists: %v", err)
		}
	default:
		if err := run(cfg); err != nil {
			zlog.Error().Msgf("Player error: %v", err)
			os.Exit(1)
		}
	}
}

// run executes the interactive player. Using a separate function
// ensures defer statements are executed even when returning with an
// error.
func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracks, err := library.Scan(cfg.Library.Dir)
	if err != nil {
		return err
	}
	zlog.Info().Msgf("Library loaded: %d tracks", len(tracks))

	backend, err := audio.NewFromConfig(cfg.Audio.Backend.Type, cfg.Audio.Backend.Settings)
	if err != nil {
		return err
	}
	defer backend.Close()

	ctrl := playback.NewController(backend)
	defer ctrl.Close()
	ctrl.SetView(tracks)

	// Broadcast playback events; the console is the one subscriber.
	mgr := notify.NewManager()
	defer mgr.Close()
	mgr.Subscribe(consoleStream{})
	go mgr.Pump(ctx, ctrl.Events())

	// End-of-track detection and progress updates.
	stopTicker := playback.StartTicker(ctx, ctrl, cfg.Player.TickInterval())
	defer stopTicker()

	// Rescan when library files change.
	if cfg.Library.Watch {
		err := library.Watch(ctx, cfg.Library.Dir, func() {
			rescanned, err := library.Scan(cfg.Library.Dir)
			if err != nil {
				zlog.Warn().Msgf("Library rescan failed: %v", err)
				return
			}
			ctrl.SetView(rescanned)
			zlog.Info().Msgf("Library rescanned: %d tracks", len(rescanned))
		})
		if err != nil {
			zlog.Warn().Msgf("Library watcher unavailable: %v", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	fmt.Println("harmonia ready; type 'help' for commands")
	for {
		fmt.Print("> ")
		select {
		case <-sigCh:
			fmt.Println()
			zlog.Info().Msg("Received shutdown signal")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := handleCommand(ctrl, line); quit {
				return nil
			}
		}
	}
}

// handleCommand dispatches one prompt line. Returns true to quit.
func handleCommand(ctrl *playback.Controller, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "p":
		if err := ctrl.TogglePlay(); err != nil {
			fmt.Printf("nothing to play: %v\n", err)
		}
	case "n":
		if err := ctrl.Next(); err != nil {
			fmt.Printf("cannot advance: %v\n", err)
		}
	case "b":
		if err := ctrl.Previous(); err != nil {
			fmt.Printf("cannot go back: %v\n", err)
		}
	case "ls":
		printTracks(ctrl.View(), "")
	case "q":
		var currentID string
		if t, ok := ctrl.NowPlaying(); ok {
			currentID = t.ResourceID
		}
		printTracks(ctrl.QueueTracks(), currentID)
	case "hist":
		for i, l := range ctrl.History() {
			fmt.Printf("%3d  %s\n", i, string(l))
		}
	case "find":
		if len(fields) < 2 {
			fmt.Println("usage: find <text>")
			return false
		}
		printTracks(ctrl.Search(strings.Join(fields[1:], " ")), "")
	case "play":
		idx, err := argIndex(fields)
		if err != nil {
			fmt.Println(err)
			return false
		}
		view := ctrl.View()
		if idx < 0 || idx >= len(view) {
			fmt.Println("no such track")
			return false
		}
		if err := ctrl.PlayTrack(view[idx], view); err != nil {
			fmt.Printf("cannot play: %v\n", err)
		}
	case "add":
		idx, err := argIndex(fields)
		if err != nil {
			fmt.Println(err)
			return false
		}
		view := ctrl.View()
		if idx < 0 || idx >= len(view) {
			fmt.Println("no such track")
			return false
		}
		ctrl.Enqueue(view[idx])
		fmt.Printf("queued: %s\n", view[idx])
	case "rm":
		idx, err := argIndex(fields)
		if err != nil {
			fmt.Println(err)
			return false
		}
		if err := ctrl.RemoveAt(idx); err != nil {
			fmt.Printf("cannot remove: %v\n", err)
		}
	case "seek":
		if len(fields) < 2 {
			fmt.Println("usage: seek <0..1>")
			return false
		}
		ratio, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			fmt.Println("usage: seek <0..1>")
			return false
		}
		ctrl.Seek(ratio)
		if err := ctrl.ReleaseSeek(); err != nil {
			fmt.Printf("seek failed: %v\n", err)
		}
	case "sh":
		fmt.Printf("shuffle: %v\n", ctrl.ToggleShuffle())
	case "lp":
		fmt.Printf("loop: %v\n", ctrl.ToggleLoop())
	case "st":
		printStatus(ctrl)
	case "help":
		fmt.Println("p play/pause | n next | b previous | play <i> | add <i> | rm <i>")
		fmt.Println("ls view | q queue | hist history | find <text> | seek <0..1>")
		fmt.Println("sh shuffle | lp loop | st status | exit")
	case "exit", "quit":
		return true
	default:
		fmt.Println("unknown command; type 'help'")
	}
	return false
}

func argIndex(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("usage: %s <index>", fields[0])
	}
	idx, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("usage: %s <index>", fields[0])
	}
	return idx, nil
}

func printTracks(tracks []track.Track, currentID string) {
	for i, t := range tracks {
		marker := " "
		if currentID != "" && t.ResourceID == currentID {
			marker = "▶"
		}
		fmt.Printf("%s %3d  %-40s %s\n", marker, i, t.Title, t.Artist)
	}
}

func printStatus(ctrl *playback.Controller) {
	now, ok := ctrl.NowPlaying()
	if !ok {
		fmt.Println("nothing selected")
		return
	}
	fmt.Printf("%s [%s] %s / %s  shuffle=%v loop=%v\n",
		now, ctrl.State(),
		formatTime(ctrl.Elapsed()), formatTime(ctrl.Total()),
		ctrl.IsShuffled(), ctrl.IsLooping())
}

// formatTime renders a duration as m:ss.
func formatTime(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// consoleStream prints playback notifications to the terminal.
type consoleStream struct{}

func (consoleStream) Send(n notify.Notification) error {
	e := n.Event
	switch e.Type {
	case playback.EventTrackStarted:
		if e.Track != nil {
			fmt.Printf("\n♪ %s\n", *e.Track)
		}
	case playback.EventQueueEnded:
		fmt.Println("\nend of queue")
	}
	return nil
}

// printLibrary lists the scanned library.
func printLibrary(cfg *config.Config) error {
	tracks, err := library.Scan(cfg.Library.Dir)
	if err != nil {
		return err
	}
	printTracks(tracks, "")
	fmt.Printf("%d tracks\n", len(tracks))
	return nil
}

// printPlaylists lists the stored playlists resolved against the
// library.
func printPlaylists(cfg *config.Config) error {
	tracks, err := library.Scan(cfg.Library.Dir)
	if err != nil {
		return err
	}
	lists, err := store.New(cfg.Playlists.File).Load(tracks)
	if err != nil {
		return err
	}
	for _, pl := range lists {
		fmt.Printf("%s (%d tracks)\n", pl.Name, len(pl.Tracks))
		for _, t := range pl.Tracks {
			fmt.Printf("    %s\n", t)
		}
	}
	fmt.Printf("%d playlists\n", len(lists))
	return nil
}
