package judger

import "github.com/Sesamexx/PacmanLocalForked/pkg/api"

// StepResult — результат одного совместного шага движка.
type StepResult struct {
	Info         api.Snapshot
	PacmanReward float64
	GhostsReward float64
	LevelChange  bool
	EatAllBeans  bool
}

// Environment — контракт игрового движка. Движок единолично владеет
// правилами: геометрией лабиринта, разрешением ходов, очками, таймерами
// навыков. Судья правила не знает — только вызывает.
//
// У окружения ровно один писатель (сессия); движок не обязан быть
// потокобезопасным.
type Environment interface {
	// Reset инициализирует текущий уровень и возвращает стартовый снапшот.
	Reset() api.Snapshot

	// Step атомарно применяет действия обеих сторон.
	Step(pacmanAction int, ghostActions []int) (StepResult, error)

	// Render возвращает полный внешний снимок состояния.
	Render() api.Snapshot

	// Level — номер текущего уровня.
	Level() int

	PacmanScore() float64
	GhostsScore() float64
}
