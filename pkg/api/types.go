package api

import "encoding/json"

// --- HARNESS -> СУДЬЯ ---

// InitInfo — стартовое сообщение от harness: путь к файлу реплея,
// конфигурация партии и типы обоих игроков (по местам 0 и 1).
type InitInfo struct {
	ReplayPath string     `json:"replay"`
	Config     InitConfig `json:"config"`
	PlayerList [2]int     `json:"player_list"`
}

// InitConfig — часть init-сообщения. RandomSeed может отсутствовать,
// тогда судья генерирует сид сам.
type InitConfig struct {
	RandomSeed *int64 `json:"random_seed,omitempty"`
}

// AgentMessage — один кадр от harness в сторону судьи.
// Player == -1 означает, что это не ответ агента, а сигнал об аварии:
// Content тогда содержит сериализованный Fault.
type AgentMessage struct {
	Player  int    `json:"player"`
	Content string `json:"content"`
}

// Fault — авария, которую harness зафиксировал для одного из игроков.
// Error — индекс в таблице {0: RE, 1: TLE, 2: OLE}.
type Fault struct {
	Player int `json:"player"`
	Error  int `json:"error"`
}

// --- АГЕНТ -> СУДЬЯ ---

// AgentReply — содержимое ответа агента. Role агент сообщает сам,
// Action — строка чисел через пробел ("2" для пакмана, "0 1 4" для призраков).
type AgentReply struct {
	Role   int    `json:"role"`
	Action string `json:"action"`
}

// --- СУДЬЯ -> АГЕНТ ---

// ActionEcho — компактное сообщение AI-агенту после каждого шага:
// что сходили обе стороны. Интерактивный игрок вместо этого получает
// полный снапшот.
type ActionEcho struct {
	PacmanAction  int   `json:"pacman_action"`
	GhostsActions []int `json:"ghosts_action"`
}

// Snapshot — полное внешнее состояние игры, каким его отдает движок.
// Структура намеренно свободная: судья ее не интерпретирует, только
// сериализует в реплей и рассылает. Гарантируется как минимум
// board / pacman_coord / ghosts_coord / portal_coord / pacman_skill_status.
type Snapshot map[string]interface{}

// Clone возвращает неглубокую копию снапшота. Нужна там, где судья
// дописывает служебные поля (StopReason), не трогая оригинал движка.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// MustJSON сериализует значение в JSON-строку.
// Снапшоты состоят только из plain-типов, ошибка здесь — баг программиста.
func MustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic("api: unserializable value: " + err.Error())
	}
	return string(data)
}
