package judger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Sesamexx/PacmanLocalForked/internal/config"
	"github.com/Sesamexx/PacmanLocalForked/internal/replay"
	"github.com/Sesamexx/PacmanLocalForked/internal/transport"
	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

// Session — одна партия. Владеет единственным экземпляром окружения
// (все изменения игрового состояния идут только через него), двумя
// местами игроков и протокольным счетчиком раундов.
//
// Машина состояний: SEATING -> FIRST_ACTIONS -> ROUND_LOOP ->
// (LEVEL_RESET)* -> TERMINAL. Каждый путь отказа возвращает Termination
// наверх; сам процесс никогда не завершается внутри сессии — это делает
// единственный верхний драйвер через Reporter.
type Session struct {
	cfg     config.Config
	env     Environment
	channel transport.AgentChannel
	sink    *replay.Sink

	players [2]*Player

	// state — монотонный счетчик протокольных раундов. Нужен только для
	// сверки с транспортным слоем, растет строго, включая смены уровней.
	state int

	// Флаги последнего шага движка. Читаются в начале следующей итерации.
	levelChange bool
	eatAllBeans bool

	matchID uuid.UUID
	log     *logrus.Entry
}

func NewSession(cfg config.Config, env Environment, channel transport.AgentChannel, sink *replay.Sink, types [2]PlayerType) *Session {
	matchID := uuid.New()
	return &Session{
		cfg:     cfg,
		env:     env,
		channel: channel,
		sink:    sink,
		players: [2]*Player{
			NewPlayer(0, types[0]),
			NewPlayer(1, types[1]),
		},
		matchID: matchID,
		log:     logger.Log.WithField("match", matchID.String()),
	}
}

// Players возвращает места сессии (для Reporter в драйвере).
func (s *Session) Players() [2]*Player {
	return s.players
}

// Run прокручивает партию до конца и возвращает единственную запись
// о завершении. Ошибка означает сбой самого судьи или транспорта;
// этот путь не порождает Termination, а уходит в Reporter.Crash.
func (s *Session) Run() (*Termination, error) {
	// SEATING: кто-то из агентов не запустился — партия не начинается,
	// окружение не трогаем сверх финального снимка.
	if s.players[0].Type == TypeAbnormal || s.players[1].Type == TypeAbnormal {
		s.log.Warn("a player did not start, aborting before first round")
		return s.startupTermination(), nil
	}

	// Первый раунд — объявление мест: каждому его номер.
	s.state = 1
	s.channel.AnnounceRound(s.state, nil, []int{0, 1}, []string{"0\n", "1\n"})

	s.appendResetFrame(s.env.Reset())

	// FIRST_ACTIONS: по одному обмену на игрока с расширенным бюджетом —
	// SDK агента инициализируется. Роль здесь агент сообщает сам, и это
	// назначение авторитетно до конца уровня (и не пересматривается
	// при сбросах уровня).
	for i := 0; i < 2; i++ {
		p := s.players[i]
		s.state++
		s.announceReceive(p, true)

		role, action, term, err := s.collectAction(p)
		if err != nil {
			return nil, err
		}
		if term != nil {
			return term, nil
		}

		p.Role = role
		p.Action = action
		s.channel.SendToAgent([]byte(fmt.Sprintf("player %d send info\n", i)), 1-i)

		s.log.WithFields(logrus.Fields{
			"player": p.ID,
			"role":   p.Role.String(),
		}).Info("role assigned")
	}

	// ROUND_LOOP. Каждая итерация: (смена уровня?) -> действия обоих
	// игроков в порядке ID -> атомарный совместный шаг. Первая итерация
	// пропускает сбор действий — они уже получены в FIRST_ACTIONS.
	firstRound := true
	for {
		if !firstRound {
			if s.levelChange {
				if s.env.Level() >= s.cfg.MaxLevel {
					// Максимальный уровень пройден: нормальное завершение,
					// нового reset-кадра не будет.
					s.log.WithField("level", s.env.Level()).Info("max level reached")
					break
				}
				s.appendResetFrame(s.env.Reset())
				s.levelChange = false
			}

			for i := 0; i < 2; i++ {
				p := s.players[i]
				s.state++
				s.announceReceive(p, false)

				role, action, term, err := s.collectAction(p)
				if err != nil {
					return nil, err
				}
				if term != nil {
					return term, nil
				}

				// Проверяется после успешной валидации: корректное действие
				// с чужой ролью — все равно нарушение протокола.
				if role != p.Role {
					s.log.WithFields(logrus.Fields{
						"player":   p.ID,
						"assigned": p.Role.String(),
						"reported": role.String(),
					}).Warn("role mismatch")
					return s.roleErrorTermination(p.ID), nil
				}

				p.Action = action
				s.channel.SendToAgent([]byte(fmt.Sprintf("player %d send info\n", i)), 1-i)
			}
		} else {
			firstRound = false
		}

		term, err := s.applyStep()
		if err != nil {
			return nil, err
		}
		if term != nil {
			return term, nil
		}

		if s.eatAllBeans {
			break
		}
	}

	return s.normalTermination(), nil
}

// applyStep применяет действия обеих сторон одним вызовом движка,
// пишет пост-шаговый кадр и рассылает каждому месту его сообщение.
func (s *Session) applyStep() (*Termination, error) {
	pacman, ghosts := s.seats()

	s.state++
	s.channel.AnnounceBudget(s.cfg.RoundBudget, s.cfg.MaxOutputLength)

	res, err := s.env.Step(pacman.Action[0], ghosts.Action)
	if err != nil {
		s.log.Errorf("engine step failed: %v", err)
		return s.engineErrorTermination(err), nil
	}

	snap := s.env.Render()
	line := api.MustJSON(snap)
	s.sink.AppendLine(line)
	s.channel.SendSpectatorFrame(line + "\n")

	// AI получает компактное эхо действий, интерактивный игрок — полный
	// снапшот: ему нечем реконструировать состояние по эху.
	echo := api.MustJSON(api.ActionEcho{
		PacmanAction:  pacman.Action[0],
		GhostsActions: ghosts.Action,
	})
	infoPacman := echo
	if pacman.Type == TypePlayer {
		infoPacman = line
	}
	infoGhosts := echo
	if ghosts.Type == TypePlayer {
		infoGhosts = line
	}

	s.channel.AnnounceRound(
		s.state,
		nil,
		[]int{pacman.ID, ghosts.ID},
		[]string{infoPacman + "\n", infoGhosts + "\n"},
	)

	s.levelChange = res.LevelChange
	s.eatAllBeans = res.EatAllBeans
	return nil, nil
}

// seats возвращает места в порядке (пакман, призраки) по текущему
// назначению ролей — движку аргументы нужны именно в этом порядке.
func (s *Session) seats() (pacman, ghosts *Player) {
	if s.players[0].Role == RolePacman {
		return s.players[0], s.players[1]
	}
	return s.players[1], s.players[0]
}

// announceReceive объявляет бюджет и раунд приема для одного игрока.
func (s *Session) announceReceive(p *Player, first bool) {
	budget := s.cfg.RoundBudget
	switch {
	case p.Type == TypePlayer:
		budget = s.cfg.PlayerBudget
	case first:
		budget = s.cfg.FirstRoundBudget
	}
	s.channel.AnnounceBudget(budget, s.cfg.MaxOutputLength)
	s.channel.AnnounceRound(s.state, []int{p.ID}, nil, nil)
}

// appendResetFrame пишет стартовый кадр уровня в реплей и рассылает его
// зрителям и обоим агентам.
func (s *Session) appendResetFrame(snap api.Snapshot) {
	line := api.MustJSON(snap)
	s.sink.AppendLine(line)
	s.channel.SendSpectatorFrame(line + "\n")
	s.channel.SendToAgent([]byte(line+"\n"), 0)
	s.channel.SendToAgent([]byte(line+"\n"), 1)
}

// GraceDelay — пауза перед выходом процесса, чтобы асинхронные отправки
// транспорта успели уйти.
const GraceDelay = 500 * time.Millisecond
