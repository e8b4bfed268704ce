package transport

import "time"

// FaultKind — вид аварии агента, зафиксированной транспортным слоем.
// Индексы совпадают с таблицей ошибок harness: 0 RE, 1 TLE, 2 OLE.
type FaultKind int

const (
	FaultRE FaultKind = iota
	FaultTLE
	FaultOLE
)

var faultNames = [...]string{"RE", "TLE", "OLE"}

func (k FaultKind) String() string {
	if k < 0 || int(k) >= len(faultNames) {
		return "RE"
	}
	return faultNames[k]
}

// Reply — нормальный ответ агента: чей он и сырое содержимое.
type Reply struct {
	Player  int
	Content []byte
}

// Fault — авария, замеченная транспортом. Может относиться не к тому
// игроку, которого сейчас ждут: harness мультиплексирует оба места.
type Fault struct {
	Player int
	Kind   FaultKind
}

// AgentChannel — способность общаться с агентами и зрителями.
// Ядро судьи написано один раз поверх этого интерфейса; реализации две:
// межпроцессная (harness) и локальная (вызовы функций в том же процессе).
type AgentChannel interface {
	// Receive блокируется до ответа игрока expected или до аварии.
	// Бюджет времени контролирует транспорт, не ядро.
	Receive(expected int) (*Reply, *Fault, error)

	// SendToAgent доставляет сырые байты конкретному месту.
	SendToAgent(data []byte, player int)

	// SendSpectatorFrame транслирует кадр зрителям.
	SendSpectatorFrame(line string)

	// AnnounceRound объявляет протокольный раунд: кто должен ответить,
	// кому что разослано.
	AnnounceRound(state int, awaiting []int, notified []int, payloads []string)

	// AnnounceBudget объявляет бюджет следующего обмена.
	AnnounceBudget(timeLimit time.Duration, lengthLimit int)

	// SendFinalResult передает наружу итоговые счет и статусы.
	SendFinalResult(scoreJSON, statusJSON string)

	// Abort — аварийное уведомление при неожиданном сбое судьи.
	Abort(reason string)
}
