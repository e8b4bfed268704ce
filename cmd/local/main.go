package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/Sesamexx/PacmanLocalForked/internal/config"
	"github.com/Sesamexx/PacmanLocalForked/internal/judger"
	"github.com/Sesamexx/PacmanLocalForked/internal/replay"
	"github.com/Sesamexx/PacmanLocalForked/internal/sim"
	"github.com/Sesamexx/PacmanLocalForked/internal/spectator"
	"github.com/Sesamexx/PacmanLocalForked/internal/transport"
	"github.com/Sesamexx/PacmanLocalForked/internal/version"
	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

func init() {
	logger.Init()
}

// Офлайн-вариант: агенты живут в процессе судьи, бюджеты времени
// контролирует локальный канал. Роли назначаются порядком мест:
// место 0 — пакман, место 1 — призраки.
func main() {
	var seed int64
	var replayPath string
	var spectate bool
	flag.Int64Var(&seed, "seed", 0, "Environment seed (0 for random)")
	flag.StringVar(&replayPath, "replay", "", "Path to recorded replay to stream instead of playing")
	flag.BoolVar(&spectate, "spectate", false, "Serve live frames to websocket spectators")
	flag.Parse()

	logger.Log.Infof("Starting local pacman judger (%s)", version.String())

	cfg := config.Load()

	var hub *spectator.Hub
	if spectate || replayPath != "" {
		hub = spectator.NewHub()
		srv := spectator.NewServer(hub, cfg.SpectatorPort)
		go func() {
			if err := srv.Run(); err != nil {
				logger.Log.Fatalf("spectator server: %v", err)
			}
		}()
	}

	// РЕЖИМ ПЛЕЕРА: не играем, а стримим записанный реплей зрителям.
	if replayPath != "" {
		if err := streamReplay(replayPath, hub); err != nil {
			logger.Log.Fatalf("replay playback: %v", err)
		}
		return
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Log.Infof("Using random seed: %d", seed)
	}

	var broadcast func(string)
	if hub != nil {
		broadcast = hub.Broadcast
	}
	channel := transport.NewLocalChannel(
		newPacmanAgent(seed),
		newGhostsAgent(seed),
		broadcast,
	)

	outPath := filepath.Join(cfg.ReplayDir, fmt.Sprintf("replay_%s.json", uuid.NewString()))
	sink, err := replay.Create(outPath)
	if err != nil {
		logger.Log.Fatalf("opening replay sink %q: %v", outPath, err)
	}
	logger.Log.Infof("Recording replay to %s", outPath)

	reporter := judger.NewReporter(sink, channel, judger.GraceDelay)
	defer func() {
		if r := recover(); r != nil {
			reporter.Crash(fmt.Sprintf("panic: %v\n%s", r, debug.Stack()))
		}
	}()

	env := sim.New(seed)
	session := judger.NewSession(cfg, env, channel, sink,
		[2]judger.PlayerType{judger.TypeAI, judger.TypeAI})

	term, err := session.Run()
	if err != nil {
		reporter.Crash(err.Error() + "\n")
		return
	}

	reporter.Finalize(term, session.Players())
}

// streamReplay проигрывает записанную партию кадр за кадром.
func streamReplay(path string, hub *spectator.Hub) error {
	frames, err := replay.Load(path)
	if err != nil {
		return err
	}
	logger.Log.Infof("Loaded %d frames from %s", len(frames), path)

	// Даем зрителям время подключиться до первого кадра.
	time.Sleep(2 * time.Second)

	for i, frame := range frames {
		hub.Broadcast(frameJSON(frame) + "\n")
		logger.Log.Debugf("frame %d/%d", i+1, len(frames))
		time.Sleep(200 * time.Millisecond)
	}
	return nil
}
