package spectator

import "testing"

func TestHub_RegisterBroadcast(t *testing.T) {
	h := NewHub()

	a := h.Register("a")
	b := h.Register("b")
	if h.SubscriberCount() != 2 {
		t.Fatalf("SubscriberCount = %d, want 2", h.SubscriberCount())
	}

	h.Broadcast(`{"level":1}`)

	for name, ch := range map[string]chan string{"a": a, "b": b} {
		select {
		case frame := <-ch:
			if frame != `{"level":1}` {
				t.Errorf("subscriber %s got %q", name, frame)
			}
		default:
			t.Errorf("subscriber %s got no frame", name)
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	h := NewHub()
	ch := h.Register("a")
	h.Unregister("a")

	if h.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount = %d, want 0", h.SubscriberCount())
	}
	if _, ok := <-ch; ok {
		t.Error("channel not closed on unregister")
	}
}

// Медленный зритель теряет кадры, но не блокирует рассылку.
func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	h.Register("slow") // канал никто не читает

	for i := 0; i < 500; i++ {
		h.Broadcast(`{"frame":true}`)
	}
	// Дошли сюда — значит Broadcast не заблокировался.
}

func TestHub_ReRegisterClosesOld(t *testing.T) {
	h := NewHub()
	old := h.Register("a")
	_ = h.Register("a")

	if _, ok := <-old; ok {
		t.Error("old channel left open after re-register")
	}
	if h.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount = %d, want 1", h.SubscriberCount())
	}
}
