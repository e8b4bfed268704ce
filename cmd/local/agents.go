package main

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/Sesamexx/PacmanLocalForked/internal/transport"
	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
)

// Встроенные агенты для офлайн-запусков. Ходят псевдослучайно, но
// детерминированно от сида — одна команда воспроизводит одну партию.

func newPacmanAgent(seed int64) transport.AgentFunc {
	rng := rand.New(rand.NewSource(seed))
	return func(state []byte) ([]byte, error) {
		reply := api.AgentReply{
			Role:   0,
			Action: fmt.Sprintf("%d", rng.Intn(5)),
		}
		return json.Marshal(reply)
	}
}

func newGhostsAgent(seed int64) transport.AgentFunc {
	// Смещаем сид, чтобы призраки не повторяли бросок пакмана.
	rng := rand.New(rand.NewSource(seed + 1))
	return func(state []byte) ([]byte, error) {
		reply := api.AgentReply{
			Role:   1,
			Action: fmt.Sprintf("%d %d %d", rng.Intn(5), rng.Intn(5), rng.Intn(5)),
		}
		return json.Marshal(reply)
	}
}

// frameJSON сериализует кадр обратно в строку реплея.
func frameJSON(frame api.Snapshot) string {
	return api.MustJSON(frame)
}
