package replay

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

// Sink — append-only приемник кадров реплея. Формат файла:
// по одной JSON-строке на игровое событие (reset уровня, шаг, финал).
// Файл никогда не переписывается, только дописывается.
type Sink struct {
	path string

	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer

	closeOnce sync.Once
}

// Create открывает файл реплея, создавая каталог при необходимости.
func Create(path string) (*Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &Sink{
		path: path,
		f:    f,
		w:    bufio.NewWriter(f),
	}, nil
}

// AppendLine дописывает один кадр. Перевод строки добавляется здесь.
// Ошибка записи логируется, но не прерывает партию: реплей — побочный
// артефакт, а не условие корректности игры.
func (s *Sink) AppendLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.WriteString(line); err != nil {
		logger.Log.WithField("replay", s.path).Warnf("appending frame: %v", err)
		return
	}
	if err := s.w.WriteByte('\n'); err != nil {
		logger.Log.WithField("replay", s.path).Warnf("appending frame: %v", err)
	}
}

// AppendRaw дописывает произвольный текст без оформления в кадр.
// Используется единственным путем — записью трейса при неожиданном сбое.
func (s *Sink) AppendRaw(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.WriteString(text); err != nil {
		logger.Log.WithField("replay", s.path).Warnf("appending raw text: %v", err)
	}
}

// Close сбрасывает буфер и закрывает файл. Повторные вызовы безопасны
// и ничего не делают: закрытие реплея обязано случиться ровно один раз,
// на каком бы пути ни завершилась сессия.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.w.Flush(); err != nil {
			logger.Log.WithField("replay", s.path).Warnf("flushing replay: %v", err)
		}
		if err := s.f.Close(); err != nil {
			logger.Log.WithField("replay", s.path).Warnf("closing replay: %v", err)
		}
	})
}

// Path возвращает путь файла реплея.
func (s *Sink) Path() string {
	return s.path
}
