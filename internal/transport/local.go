package transport

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

// AgentFunc — агент, живущий в процессе судьи. Получает последнее
// состояние, отправленное ему судьей, и возвращает сырой ответ
// (тот же JSON, что писал бы внешний агент).
type AgentFunc func(state []byte) ([]byte, error)

// LocalChannel — офлайн-реализация AgentChannel: вместо harness агенты
// вызываются напрямую, бюджеты времени и лимит вывода контролирует сам
// канал. Кадры зрителей опционально уходят в переданный broadcast.
type LocalChannel struct {
	agents [2]AgentFunc

	mu     sync.Mutex
	inbox  [2][]byte // последние данные, отправленные каждому месту
	budget time.Duration
	maxLen int

	broadcast func(line string) // nil, если зрителей нет
}

func NewLocalChannel(pacmanSeat, ghostsSeat AgentFunc, broadcast func(string)) *LocalChannel {
	return &LocalChannel{
		agents:    [2]AgentFunc{pacmanSeat, ghostsSeat},
		budget:    time.Second,
		maxLen:    1 << 21,
		broadcast: broadcast,
	}
}

// Receive вызывает агента expected с текущим бюджетом времени.
// Паника агента, его ошибка, превышение бюджета или лимита вывода
// превращаются в те же сигналы аварий, что шлет harness.
func (c *LocalChannel) Receive(expected int) (*Reply, *Fault, error) {
	c.mu.Lock()
	agent := c.agents[expected]
	state := c.inbox[expected]
	budget := c.budget
	maxLen := c.maxLen
	c.mu.Unlock()

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithField("player", expected).Warnf("agent panicked: %v", r)
				done <- result{err: errAgentPanic}
			}
		}()
		data, err := agent(state)
		done <- result{data: data, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, &Fault{Player: expected, Kind: FaultRE}, nil
		}
		if len(r.data) > maxLen {
			return nil, &Fault{Player: expected, Kind: FaultOLE}, nil
		}
		return &Reply{Player: expected, Content: r.data}, nil, nil
	case <-time.After(budget):
		return nil, &Fault{Player: expected, Kind: FaultTLE}, nil
	}
}

func (c *LocalChannel) SendToAgent(data []byte, player int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inbox[player] = data
}

func (c *LocalChannel) SendSpectatorFrame(line string) {
	if c.broadcast != nil {
		c.broadcast(line)
	}
}

func (c *LocalChannel) AnnounceRound(state int, awaiting []int, notified []int, payloads []string) {
	logger.Log.WithFields(logrus.Fields{
		"state":    state,
		"awaiting": awaiting,
		"notified": notified,
	}).Debug("round announced")
}

func (c *LocalChannel) AnnounceBudget(timeLimit time.Duration, lengthLimit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.budget = timeLimit
	c.maxLen = lengthLimit
}

func (c *LocalChannel) SendFinalResult(scoreJSON, statusJSON string) {
	logger.Log.WithFields(logrus.Fields{
		"score":  scoreJSON,
		"status": statusJSON,
	}).Info("game finished")
}

func (c *LocalChannel) Abort(reason string) {
	logger.Log.Errorf("judger aborted: %s", reason)
}
