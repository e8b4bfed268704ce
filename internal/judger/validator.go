package judger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
)

// Тексты ошибок валидации стабильны: они попадают в StopReason записи
// о завершении и их читают и люди, и табло.
var (
	errPacmanAction    = errors.New("Invalid action for PACMAN.")
	errGhostCountWrong = errors.New("Invalid action count for ghost.")
)

// Количество дискретных ходов: 4 направления + остаться на месте.
const moveCount = 5

// ghostCount — призраками управляют тремя фигурами, по ходу на каждую.
const ghostCount = 3

// DecodeReply разбирает сырой ответ агента в (роль, действие).
// Ответ — JSON {"role": R, "action": "a b c"}; действия — целые через
// пробел. Любая ошибка разбора трактуется как невалидное действие.
func DecodeReply(content []byte) (Role, []int, error) {
	var reply api.AgentReply
	if err := json.Unmarshal(content, &reply); err != nil {
		return 0, nil, fmt.Errorf("malformed agent reply: %w", err)
	}

	fields := strings.Fields(reply.Action)
	action := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, nil, fmt.Errorf("malformed action token %q: %w", f, err)
		}
		action = append(action, n)
	}

	return Role(reply.Role), action, nil
}

// Validate проверяет форму и диапазон действия для роли. Чистая функция.
func Validate(role Role, action []int) error {
	if role == RolePacman {
		if len(action) != 1 || action[0] < 0 || action[0] >= moveCount {
			return errPacmanAction
		}
		return nil
	}

	if len(action) != ghostCount {
		return errGhostCountWrong
	}
	for i, a := range action {
		if a < 0 || a >= moveCount {
			return fmt.Errorf("Invalid action for ghost at index %d.", i)
		}
	}
	return nil
}
