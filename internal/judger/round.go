package judger

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Sesamexx/PacmanLocalForked/internal/transport"
	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

// collectAction проводит один обмен "запросить действие" для игрока p.
// Возвращает либо (роль, действие), либо запись о завершении, если
// транспорт сообщил об аварии или ответ не прошел валидацию. Ошибка
// возвращается только при сбое самого транспорта — это путь
// неожиданного завершения, его обрабатывает верхний уровень.
//
// До успешного ответа обоих игроков раунда ничего в состояние сессии
// не коммитится.
func (s *Session) collectAction(p *Player) (Role, []int, *Termination, error) {
	reply, fault, err := s.channel.Receive(p.ID)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("receiving reply of player %d: %w", p.ID, err)
	}

	// Авария может касаться и другого игрока: harness мультиплексирует
	// оба места. Виновника называет сам сигнал.
	if fault != nil {
		logger.Log.WithFields(logrus.Fields{
			"player": fault.Player,
			"kind":   fault.Kind.String(),
		}).Warn("transport reported agent fault")
		return 0, nil, s.faultTermination(fault), nil
	}

	role, action, decodeErr := DecodeReply(reply.Content)
	if decodeErr == nil {
		decodeErr = Validate(role, action)
	}
	if decodeErr != nil {
		logger.Log.WithField("player", p.ID).Warnf("invalid action: %v", decodeErr)
		return 0, nil, s.invalidActionTermination(p.ID, decodeErr), nil
	}

	return role, action, nil, nil
}

// --- Сборка записей о завершении ---
// Все пути отказа сходятся к одной и той же форме: снапшот, причина,
// пара статусов по ID, счет по ID. Потребителям (реплей, harness,
// табло) не нужно различать источник отказа.

// scoresByID снимает текущие очки движка и раскладывает их по ID мест
// согласно действующему назначению ролей.
func (s *Session) scoresByID() map[string]float64 {
	pacman := s.env.PacmanScore()
	ghosts := s.env.GhostsScore()
	if s.players[0].Role == RolePacman {
		return map[string]float64{"0": pacman, "1": ghosts}
	}
	return map[string]float64{"0": ghosts, "1": pacman}
}

func (s *Session) faultTermination(f *transport.Fault) *Termination {
	status := [2]Status{StatusOK, StatusOK}
	// ID игрока приходит из harness; не доверяем ему слепо.
	if f.Player >= 0 && f.Player < len(status) {
		status[f.Player] = statusForFault(f.Kind)
	}
	return &Termination{
		Snapshot: s.env.Render(),
		StopReason: fmt.Sprintf(
			"Unexpected behavior of player %d, judger returned error type %s.",
			f.Player, f.Kind,
		),
		Status: status,
		Scores: s.scoresByID(),
	}
}

func (s *Session) invalidActionTermination(playerID int, cause error) *Termination {
	status := [2]Status{StatusOK, StatusOK}
	status[playerID] = StatusIA
	return &Termination{
		Snapshot:   s.env.Render(),
		StopReason: cause.Error(),
		Status:     status,
		Scores:     s.scoresByID(),
	}
}

func (s *Session) roleErrorTermination(playerID int) *Termination {
	status := [2]Status{StatusOK, StatusOK}
	status[playerID] = StatusIA
	return &Termination{
		Snapshot:   s.env.Render(),
		StopReason: "Role error.",
		Status:     status,
		Scores:     s.scoresByID(),
	}
}

// engineErrorTermination — отказ совместного шага. Авария на границе
// движка не атрибутируется ни одному из агентов, поэтому IA у обоих.
func (s *Session) engineErrorTermination(cause error) *Termination {
	return &Termination{
		Snapshot: s.env.Render(),
		StopReason: fmt.Sprintf(
			"Error in executing actions from players, error: %v", cause,
		),
		Status: [2]Status{StatusIA, StatusIA},
		Scores: s.scoresByID(),
	}
}

func (s *Session) startupTermination() *Termination {
	status := [2]Status{StatusOK, StatusOK}
	for i, p := range s.players {
		if p.Type == TypeAbnormal {
			status[i] = StatusRE
		}
	}
	return &Termination{
		Snapshot:   s.env.Render(),
		StopReason: "player quit unexpectedly",
		Status:     status,
		// До первого хода очков нет по определению.
		Scores: map[string]float64{"0": 0, "1": 0},
	}
}

func (s *Session) normalTermination() *Termination {
	reason := "time is up"
	if s.eatAllBeans {
		reason = "Pacman ate all the beans!!!"
	}
	return &Termination{
		Snapshot:   s.env.Render(),
		StopReason: reason,
		Status:     [2]Status{StatusOK, StatusOK},
		Scores:     s.scoresByID(),
	}
}
