package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
)

func TestSink_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match", "replay.json")

	s, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.AppendLine(api.MustJSON(api.Snapshot{"level": 1}))
	s.AppendLine(api.MustJSON(api.Snapshot{"level": 1, "step": 1}))
	s.AppendLine(api.MustJSON(api.Snapshot{"level": 1, "StopReason": "time is up"}))
	s.Close()

	frames, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}
	if frames[2]["StopReason"] != "time is up" {
		t.Errorf("last frame StopReason = %v", frames[2]["StopReason"])
	}
}

func TestSink_CreatesMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "replay.json")
	s, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("replay file not created: %v", err)
	}
}

func TestSink_CloseIdempotent(t *testing.T) {
	s, err := Create(filepath.Join(t.TempDir(), "replay.json"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.AppendLine(`{"level":1}`)
	s.Close()
	s.Close() // повторное закрытие безопасно

	frames, err := Load(s.Path())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(frames) != 1 {
		t.Errorf("frames = %d, want 1", len(frames))
	}
}

// Трейс аварии после финального кадра не ломает уже записанные кадры.
func TestLoad_TrailingCrashTrace(t *testing.T) {
	s, err := Create(filepath.Join(t.TempDir(), "replay.json"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.AppendLine(`{"level":1}`)
	s.AppendRaw("panic: boom\ngoroutine 1 [running]\n")
	s.Close()

	frames, err := Load(s.Path())
	if err == nil {
		t.Fatal("expected error for trailing trace")
	}
	if len(frames) != 1 {
		t.Errorf("frames before trace = %d, want 1", len(frames))
	}
}
