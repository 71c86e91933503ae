package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultFilePrefix = "sysprompt"

// JSONLSink appends records to one file per day and removes files older
// than the retention window.
type JSONLSink struct {
	Dir           string
	Prefix        string
	RetentionDays int

	mu sync.Mutex
}

// NewJSONLSink returns a sink writing prefix-YYYY-MM-DD.jsonl files in dir.
func NewJSONLSink(dir, prefix string, retentionDays int) *JSONLSink {
	return &JSONLSink{Dir: dir, Prefix: prefix, RetentionDays: retentionDays}
}

func (s *JSONLSink) prefix() string {
	if p := strings.TrimSpace(s.Prefix); p != "" {
		return p
	}
	return defaultFilePrefix
}

// FilePath is the file a record stamped at t lands in.
func (s *JSONLSink) FilePath(t time.Time) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s-%s.jsonl", s.prefix(), t.Format("2006-01-02")))
}

func (s *JSONLSink) Write(_ context.Context, rec Record) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := appendJSONL(s.FilePath(rec.Timestamp), line); err != nil {
		return err
	}
	return s.cleanup(rec.Timestamp)
}

func appendJSONL(filePath string, line []byte) error {
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write audit file: %w", err)
	}
	return nil
}

// Cleanup removes audit files past the retention window.
func (s *JSONLSink) Cleanup(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanup(now)
}

func (s *JSONLSink) cleanup(now time.Time) error {
	if s.RetentionDays <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("list audit dir: %w", err)
	}

	prefix := s.prefix()
	cutoff := now.AddDate(0, 0, -s.RetentionDays)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix+"-") || !strings.HasSuffix(name, ".jsonl") {
			continue
		}

		filePath := filepath.Join(s.Dir, name)
		expired := false
		if fileDate, ok := parseFileDate(name, prefix); ok {
			expired = fileDate.Before(startOfDay(cutoff))
		} else {
			info, err := entry.Info()
			if err != nil {
				return fmt.Errorf("stat audit file %s: %w", filePath, err)
			}
			expired = info.ModTime().Before(cutoff)
		}
		if !expired {
			continue
		}
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove old audit file %s: %w", filePath, err)
		}
	}
	return nil
}

// ReadFile returns the records stored in one JSONL file.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audit file: %w", err)
	}
	var records []Record
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parse audit file %s line %d: %w", path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseFileDate(filename, prefix string) (time.Time, bool) {
	raw := strings.TrimSuffix(filename, ".jsonl")
	raw = strings.TrimPrefix(raw, prefix+"-")
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
