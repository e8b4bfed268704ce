// Package sim — минимальное детерминированное окружение, реализующее
// контракт движка для офлайн-запусков и тестов. Это заглушка на месте
// настоящего движка: геометрия и правила здесь нарочно примитивны,
// судья от их деталей не зависит.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/Sesamexx/PacmanLocalForked/internal/judger"
	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
)

// Дискретные ходы: 0 — стоять, 1 — вверх, 2 — влево, 3 — вниз, 4 — вправо.
var moveDelta = [5][2]int{{0, 0}, {-1, 0}, {0, -1}, {1, 0}, {0, 1}}

const (
	tileFloor = 0
	tileWall  = 1
	tileBean  = 2

	ghostCount = 3

	// Очки заглушки: боб — пакману, поимка — призракам.
	beanScore  = 1.0
	catchScore = 10.0
)

// Env — состояние одного уровня. Размер поля растет с уровнем,
// раскладка детерминирована сидом.
type Env struct {
	rng   *rand.Rand
	level int

	size        int
	board       [][]int
	beansLeft   int
	pacman      [2]int
	pacmanStart [2]int
	ghosts      [ghostCount][2]int
	portal      [2]int

	pacmanScore float64
	ghostsScore float64
}

var _ judger.Environment = (*Env)(nil)

// New создает окружение первого уровня. Reset обязателен до первого Step.
func New(seed int64) *Env {
	return &Env{
		rng:   rand.New(rand.NewSource(seed)),
		level: 1,
	}
}

func (e *Env) Reset() api.Snapshot {
	e.size = 9 + 2*e.level

	e.board = make([][]int, e.size)
	e.beansLeft = 0
	for y := range e.board {
		e.board[y] = make([]int, e.size)
		for x := range e.board[y] {
			switch {
			case y == 0 || x == 0 || y == e.size-1 || x == e.size-1:
				e.board[y][x] = tileWall
			case e.rng.Intn(10) == 0:
				e.board[y][x] = tileWall
			default:
				e.board[y][x] = tileBean
				e.beansLeft++
			}
		}
	}

	mid := e.size / 2
	e.board[mid][mid] = tileFloor
	e.pacman = [2]int{mid, mid}
	e.pacmanStart = e.pacman

	corners := [ghostCount][2]int{{1, 1}, {1, e.size - 2}, {e.size - 2, 1}}
	for i, c := range corners {
		e.board[c[0]][c[1]] = tileFloor
		e.ghosts[i] = c
	}

	e.portal = [2]int{e.size - 2, e.size - 2}
	e.board[e.portal[0]][e.portal[1]] = tileFloor

	return e.Render()
}

func (e *Env) Step(pacmanAction int, ghostActions []int) (judger.StepResult, error) {
	if pacmanAction < 0 || pacmanAction >= len(moveDelta) {
		return judger.StepResult{}, fmt.Errorf("pacman action %d out of range", pacmanAction)
	}
	if len(ghostActions) != ghostCount {
		return judger.StepResult{}, fmt.Errorf("expected %d ghost actions, got %d", ghostCount, len(ghostActions))
	}

	res := judger.StepResult{}

	// Ход пакмана: стены останавливают, боб съедается.
	next := e.move(e.pacman, pacmanAction)
	e.pacman = next
	if e.board[next[0]][next[1]] == tileBean {
		e.board[next[0]][next[1]] = tileFloor
		e.beansLeft--
		e.pacmanScore += beanScore
		res.PacmanReward += beanScore
	}

	// Ходы призраков, затем проверка поимки.
	for i, a := range ghostActions {
		if a < 0 || a >= len(moveDelta) {
			return judger.StepResult{}, fmt.Errorf("ghost %d action %d out of range", i, a)
		}
		e.ghosts[i] = e.move(e.ghosts[i], a)
		if e.ghosts[i] == e.pacman {
			e.ghostsScore += catchScore
			res.GhostsReward += catchScore
			e.pacman = e.pacmanStart
		}
	}

	if e.beansLeft == 0 {
		res.EatAllBeans = true
	}
	if e.pacman == e.portal {
		e.level++
		res.LevelChange = true
	}

	res.Info = e.Render()
	return res, nil
}

// move возвращает новую позицию либо старую, если впереди стена.
func (e *Env) move(pos [2]int, action int) [2]int {
	d := moveDelta[action]
	ny, nx := pos[0]+d[0], pos[1]+d[1]
	if ny < 0 || nx < 0 || ny >= e.size || nx >= e.size || e.board[ny][nx] == tileWall {
		return pos
	}
	return [2]int{ny, nx}
}

func (e *Env) Render() api.Snapshot {
	board := make([][]int, len(e.board))
	for y, row := range e.board {
		board[y] = append([]int(nil), row...)
	}
	ghosts := make([][]int, ghostCount)
	for i, g := range e.ghosts {
		ghosts[i] = []int{g[0], g[1]}
	}
	return api.Snapshot{
		"level":               e.level,
		"board":               board,
		"pacman_coord":        []int{e.pacman[0], e.pacman[1]},
		"ghosts_coord":        ghosts,
		"portal_coord":        []int{e.portal[0], e.portal[1]},
		"pacman_skill_status": []int{0, 0, 0},
		"pacman_score":        e.pacmanScore,
		"ghosts_score":        e.ghostsScore,
		"beans_left":          e.beansLeft,
	}
}

func (e *Env) Level() int { return e.level }

func (e *Env) PacmanScore() float64 { return e.pacmanScore }

func (e *Env) GhostsScore() float64 { return e.ghostsScore }
