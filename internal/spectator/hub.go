package spectator

import (
	"sync"
)

// Hub занимается только рассылкой кадров реплея подписчикам-зрителям.
// Зрители пассивны: канал строго односторонний, от судьи к ним.
type Hub struct {
	mu sync.RWMutex
	// Мапа: ID подписки -> личный канал кадров
	subscribers map[string]chan string
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan string),
	}
}

// Register создает личный канал для зрителя.
func (h *Hub) Register(id string) chan string {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Повторная регистрация того же ID закрывает старый канал.
	if old, ok := h.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan string, 100)
	h.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// Broadcast отправляет кадр всем. Медленный зритель кадр теряет —
// судья никогда не блокируется на зрителях.
func (h *Hub) Broadcast(frame string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- frame:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных зрителей.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
