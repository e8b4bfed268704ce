package transport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

// HarnessChannel — канал к внешнему harness через пару потоков
// (в бою это stdin/stdout процесса судьи). Каждый кадр — одна JSON-строка.
//
// Входящие кадры — api.AgentMessage; player == -1 означает аварию,
// тогда content содержит api.Fault.
type HarnessChannel struct {
	r *bufio.Reader

	mu sync.Mutex // защищает w: пишут и цикл раундов, и финализация
	w  *bufio.Writer
}

func NewHarnessChannel(r io.Reader, w io.Writer) *HarnessChannel {
	return &HarnessChannel{
		r: bufio.NewReaderSize(r, 1<<20),
		w: bufio.NewWriter(w),
	}
}

// ReceiveInit читает стартовое сообщение harness. Вызывается один раз,
// до создания сессии.
func (c *HarnessChannel) ReceiveInit() (api.InitInfo, error) {
	var info api.InitInfo
	line, err := c.r.ReadBytes('\n')
	if err != nil {
		return info, fmt.Errorf("reading init info: %w", err)
	}
	if err := json.Unmarshal(line, &info); err != nil {
		return info, fmt.Errorf("decoding init info: %w", err)
	}
	return info, nil
}

// Receive читает кадры, пока не придет ответ нужного игрока либо авария.
// Кадры чужого игрока пропускаются — harness мог прислать их с опозданием.
func (c *HarnessChannel) Receive(expected int) (*Reply, *Fault, error) {
	for {
		line, err := c.r.ReadBytes('\n')
		if err != nil {
			return nil, nil, fmt.Errorf("reading agent message: %w", err)
		}

		var msg api.AgentMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, nil, fmt.Errorf("decoding agent message: %w", err)
		}

		if msg.Player == -1 {
			var f api.Fault
			if err := json.Unmarshal([]byte(msg.Content), &f); err != nil {
				return nil, nil, fmt.Errorf("decoding fault content: %w", err)
			}
			return nil, &Fault{Player: f.Player, Kind: FaultKind(f.Error)}, nil
		}

		if msg.Player != expected {
			logger.Log.Debugf("skipping stale message from player %d (awaiting %d)", msg.Player, expected)
			continue
		}

		return &Reply{Player: msg.Player, Content: []byte(msg.Content)}, nil, nil
	}
}

func (c *HarnessChannel) SendToAgent(data []byte, player int) {
	c.emit(map[string]interface{}{
		"player":  player,
		"content": string(data),
	})
}

func (c *HarnessChannel) SendSpectatorFrame(line string) {
	c.emit(map[string]interface{}{
		"watch": line,
	})
}

func (c *HarnessChannel) AnnounceRound(state int, awaiting []int, notified []int, payloads []string) {
	if awaiting == nil {
		awaiting = []int{}
	}
	if notified == nil {
		notified = []int{}
	}
	if payloads == nil {
		payloads = []string{}
	}
	c.emit(map[string]interface{}{
		"state":   state,
		"listen":  awaiting,
		"player":  notified,
		"content": payloads,
	})
}

func (c *HarnessChannel) AnnounceBudget(timeLimit time.Duration, lengthLimit int) {
	c.emit(map[string]interface{}{
		"time":   timeLimit.Seconds(),
		"length": lengthLimit,
	})
}

func (c *HarnessChannel) SendFinalResult(scoreJSON, statusJSON string) {
	c.emit(map[string]interface{}{
		"state":     -1,
		"end_info":  scoreJSON,
		"end_state": statusJSON,
	})
}

func (c *HarnessChannel) Abort(reason string) {
	c.emit(map[string]interface{}{
		"state": -1,
		"error": reason,
	})
}

// emit пишет один исходящий кадр. Ошибка записи здесь не возвращается
// наверх: если harness закрыл пайп, партия уже ничем не спасается,
// судья дорабатывает свой путь завершения.
func (c *HarnessChannel) emit(frame map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(frame)
	if err != nil {
		logger.Log.Errorf("marshaling outbound frame: %v", err)
		return
	}
	if _, err := c.w.Write(append(data, '\n')); err != nil {
		logger.Log.Warnf("writing to harness: %v", err)
		return
	}
	if err := c.w.Flush(); err != nil {
		logger.Log.Warnf("flushing to harness: %v", err)
	}
}
