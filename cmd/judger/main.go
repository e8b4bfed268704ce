package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/Sesamexx/PacmanLocalForked/internal/config"
	"github.com/Sesamexx/PacmanLocalForked/internal/judger"
	"github.com/Sesamexx/PacmanLocalForked/internal/replay"
	"github.com/Sesamexx/PacmanLocalForked/internal/sim"
	"github.com/Sesamexx/PacmanLocalForked/internal/transport"
	"github.com/Sesamexx/PacmanLocalForked/internal/version"
	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

func init() {
	logger.Init()
}

// Вариант под внешний harness: протокол идет через stdin/stdout,
// бюджеты времени контролирует harness. Процесс завершается со статусом 0
// на всех определенных путях; единственное исключение — невозможность
// открыть файл реплея до старта партии.
func main() {
	logger.Log.Infof("Starting pacman judger (%s)", version.String())

	cfg := config.Load()
	channel := transport.NewHarnessChannel(os.Stdin, os.Stdout)

	initInfo, err := channel.ReceiveInit()
	if err != nil {
		logger.Log.Fatalf("init info: %v", err)
	}

	sink, err := replay.Create(initInfo.ReplayPath)
	if err != nil {
		logger.Log.Fatalf("opening replay sink %q: %v", initInfo.ReplayPath, err)
	}

	reporter := judger.NewReporter(sink, channel, judger.GraceDelay)

	// Верхний страж: любое неожиданное исключение записывается в реплей,
	// приемник закрывается, harness получает аварийное уведомление.
	defer func() {
		if r := recover(); r != nil {
			reporter.Crash(fmt.Sprintf("panic: %v\n%s", r, debug.Stack()))
		}
	}()

	seed := time.Now().UnixNano() ^ rand.Int63()
	if initInfo.Config.RandomSeed != nil {
		seed = *initInfo.Config.RandomSeed
	}
	env := sim.New(seed)

	types := [2]judger.PlayerType{
		judger.PlayerType(initInfo.PlayerList[0]),
		judger.PlayerType(initInfo.PlayerList[1]),
	}

	session := judger.NewSession(cfg, env, channel, sink, types)

	term, err := session.Run()
	if err != nil {
		// Сбой транспорта или самого судьи: Termination не существует,
		// идем по аварийному пути.
		reporter.Crash(err.Error() + "\n")
		return
	}

	reporter.Finalize(term, session.Players())
}
