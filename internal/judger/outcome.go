package judger

import (
	"sync"
	"time"

	"github.com/Sesamexx/PacmanLocalForked/internal/replay"
	"github.com/Sesamexx/PacmanLocalForked/internal/transport"
	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

// Termination — единственная авторитетная запись о конце сессии.
// Создается ровно один раз и после создания не меняется.
type Termination struct {
	Snapshot   api.Snapshot
	StopReason string
	Status     [2]Status
	Scores     map[string]float64
}

// Reporter выполняет последовательность завершения: финальный кадр
// в реплей, рассылка наружу, закрытие приемника, пауза на дослив
// асинхронных отправок. Защищен sync.Once — второй вызов Finalize
// недостижим из кода сессии, но и случайно ничего не сломает.
type Reporter struct {
	sink    *replay.Sink
	channel transport.AgentChannel
	grace   time.Duration

	once sync.Once
}

func NewReporter(sink *replay.Sink, channel transport.AgentChannel, grace time.Duration) *Reporter {
	return &Reporter{sink: sink, channel: channel, grace: grace}
}

// Finalize публикует запись о завершении. players нужны, чтобы понять,
// каким местам слать полный финальный кадр (только интерактивным:
// AI-агенту после конца партии сообщать нечего).
func (r *Reporter) Finalize(t *Termination, players [2]*Player) {
	r.once.Do(func() {
		frame := t.Snapshot.Clone()
		frame["StopReason"] = t.StopReason
		line := api.MustJSON(frame)

		r.sink.AppendLine(line)
		r.channel.SendSpectatorFrame(line + "\n")

		for _, p := range players {
			if p != nil && p.Type == TypePlayer {
				r.channel.SendToAgent([]byte(line), p.ID)
			}
		}

		r.channel.SendFinalResult(api.MustJSON(t.Scores), api.MustJSON(t.Status))
		r.sink.Close()

		logger.Log.WithField("reason", t.StopReason).Info("session finalized")
		time.Sleep(r.grace)
	})
}

// Crash — путь неожиданного сбоя: трейс в реплей, закрытие приемника,
// аварийное уведомление транспорту. Тоже проходит через once — если
// сбой случился после штатной финализации, дублей не будет.
func (r *Reporter) Crash(trace string) {
	r.once.Do(func() {
		r.sink.AppendRaw(trace)
		r.sink.Close()
		r.channel.Abort(trace)
	})
}
