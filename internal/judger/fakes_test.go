package judger

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sesamexx/PacmanLocalForked/internal/transport"
	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
)

var errEngineBoom = errors.New("segfault in step")

// fakeEnv — подставной движок: результаты шагов задаются сценарием.
type fakeEnv struct {
	level   int
	pacman  float64
	ghosts  float64
	results []StepResult
	stepErr error

	resets int
	steps  int
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{level: 1}
}

func (e *fakeEnv) Reset() api.Snapshot {
	e.resets++
	return e.Render()
}

func (e *fakeEnv) Step(pacmanAction int, ghostActions []int) (StepResult, error) {
	e.steps++
	if e.stepErr != nil {
		return StepResult{}, e.stepErr
	}
	if len(e.results) == 0 {
		return StepResult{Info: e.Render()}, nil
	}
	res := e.results[0]
	e.results = e.results[1:]
	res.Info = e.Render()
	return res, nil
}

func (e *fakeEnv) Render() api.Snapshot {
	return api.Snapshot{"env": "fake", "level": e.level, "steps": e.steps}
}

func (e *fakeEnv) Level() int           { return e.level }
func (e *fakeEnv) PacmanScore() float64 { return e.pacman }
func (e *fakeEnv) GhostsScore() float64 { return e.ghosts }

// fakeChannel проигрывает заранее заданный сценарий ответов и
// запоминает все, что судья отправляет наружу.
type scriptItem struct {
	reply *transport.Reply
	fault *transport.Fault
	err   error
}

type fakeChannel struct {
	script []scriptItem
	pos    int

	sent       map[int][]string
	spectator  []string
	states     []int
	budgets    []time.Duration
	finalScore string
	finalState string
	finalCalls int
	aborted    []string
}

func newFakeChannel(script ...scriptItem) *fakeChannel {
	return &fakeChannel{script: script, sent: make(map[int][]string)}
}

// agentReply — валидный JSON-ответ агента для сценария.
func agentReply(player, role int, action string) scriptItem {
	content := fmt.Sprintf(`{"role":%d,"action":"%s"}`, role, action)
	return scriptItem{reply: &transport.Reply{Player: player, Content: []byte(content)}}
}

func agentFault(player int, kind transport.FaultKind) scriptItem {
	return scriptItem{fault: &transport.Fault{Player: player, Kind: kind}}
}

func rawReply(player int, content string) scriptItem {
	return scriptItem{reply: &transport.Reply{Player: player, Content: []byte(content)}}
}

func (c *fakeChannel) Receive(expected int) (*transport.Reply, *transport.Fault, error) {
	if c.pos >= len(c.script) {
		return nil, nil, fmt.Errorf("script exhausted at receive #%d", c.pos)
	}
	item := c.script[c.pos]
	c.pos++
	return item.reply, item.fault, item.err
}

func (c *fakeChannel) SendToAgent(data []byte, player int) {
	c.sent[player] = append(c.sent[player], string(data))
}

func (c *fakeChannel) SendSpectatorFrame(line string) {
	c.spectator = append(c.spectator, line)
}

func (c *fakeChannel) AnnounceRound(state int, awaiting []int, notified []int, payloads []string) {
	c.states = append(c.states, state)
}

func (c *fakeChannel) AnnounceBudget(timeLimit time.Duration, lengthLimit int) {
	c.budgets = append(c.budgets, timeLimit)
}

func (c *fakeChannel) SendFinalResult(scoreJSON, statusJSON string) {
	c.finalCalls++
	c.finalScore = scoreJSON
	c.finalState = statusJSON
}

func (c *fakeChannel) Abort(reason string) {
	c.aborted = append(c.aborted, reason)
}
