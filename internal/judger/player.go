package judger

import "github.com/Sesamexx/PacmanLocalForked/internal/transport"

// Role — сторона, за которую играет агент. Значения совпадают
// с протокольными: 0 — пакман, 1 — призраки.
type Role int

const (
	RolePacman Role = iota
	RoleGhosts
)

func (r Role) String() string {
	if r == RolePacman {
		return "PACMAN"
	}
	return "GHOSTS"
}

// PlayerType — как подключен игрок. 0 — не запустился,
// 1 — локальный AI, 2 — интерактивный игрок (веб-плеер).
type PlayerType int

const (
	TypeAbnormal PlayerType = iota
	TypeAI
	TypePlayer
)

// Status — итоговый код игрока в записи о завершении.
type Status string

const (
	StatusOK  Status = "OK"
	StatusRE  Status = "RE"
	StatusTLE Status = "TLE"
	StatusOLE Status = "OLE"
	StatusIA  Status = "IA"
)

// statusForFault переводит аварию транспорта в итоговый код.
func statusForFault(k transport.FaultKind) Status {
	switch k {
	case transport.FaultTLE:
		return StatusTLE
	case transport.FaultOLE:
		return StatusOLE
	default:
		return StatusRE
	}
}

// Player — одно место за столом. ID стабилен всю сессию,
// Role назначается первым обменом уровня и дальше не меняется,
// Action — последнее провалидированное действие.
type Player struct {
	ID     int
	Type   PlayerType
	Role   Role
	Action []int
}

func NewPlayer(id int, typ PlayerType) *Player {
	return &Player{ID: id, Type: typ, Role: RolePacman}
}
