package audit

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/kayz/sysprompt/internal/config"
	"github.com/kayz/sysprompt/internal/logger"
)

// Recorder writes each record to every configured sink.
type Recorder struct {
	sinks  []Sink
	sqlite *SQLiteSink
}

// NewRecorder builds the sinks named by cfg. Relative paths resolve against
// root. A disabled config yields a recorder with no sinks.
func NewRecorder(cfg config.AuditConfig, root string) (*Recorder, error) {
	r := &Recorder{}
	if !cfg.Enabled {
		return r, nil
	}

	if dir := strings.TrimSpace(cfg.Dir); dir != "" {
		r.sinks = append(r.sinks, NewJSONLSink(resolvePath(root, dir), cfg.FilePrefix, cfg.RetentionDays))
	}
	if dbPath := strings.TrimSpace(cfg.SQLitePath); dbPath != "" {
		store, err := OpenSQLite(resolvePath(root, dbPath))
		if err != nil {
			return nil, err
		}
		r.sqlite = store
		r.sinks = append(r.sinks, store)
	}
	return r, nil
}

// NewRecorderWithSinks wraps explicit sinks.
func NewRecorderWithSinks(sinks ...Sink) *Recorder {
	return &Recorder{sinks: sinks}
}

// Enabled reports whether any sink is configured.
func (r *Recorder) Enabled() bool {
	return len(r.sinks) > 0
}

// SQLite returns the SQLite sink, if one is configured.
func (r *Recorder) SQLite() (*SQLiteSink, bool) {
	return r.sqlite, r.sqlite != nil
}

// Record writes rec to every sink. Every sink is attempted; their errors
// are joined.
func (r *Recorder) Record(ctx context.Context, rec Record) error {
	var errs []error
	for _, sink := range r.sinks {
		if err := sink.Write(ctx, rec); err != nil {
			logger.WithField("record", rec.ID).Warnf("Audit sink %T failed: %v", sink, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases sink resources.
func (r *Recorder) Close() error {
	if r.sqlite != nil {
		return r.sqlite.Close()
	}
	return nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) || root == "" {
		return p
	}
	return filepath.Join(root, p)
}
