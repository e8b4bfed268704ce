package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sesamexx/PacmanLocalForked/pkg/api"
)

// Load читает записанный реплей целиком: по снапшоту на строку.
// Последний кадр несет поле StopReason.
func Load(path string) ([]api.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var frames []api.Snapshot

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<24)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var frame api.Snapshot
		if err := json.Unmarshal(line, &frame); err != nil {
			// Хвост после финального кадра может быть трейсом аварии,
			// он не ломает загрузку уже прочитанных кадров.
			return frames, fmt.Errorf("frame %d is not valid JSON: %w", len(frames), err)
		}
		frames = append(frames, frame)
	}
	if err := sc.Err(); err != nil {
		return frames, err
	}

	return frames, nil
}
