// Package sessionlog is the append-only result store: one JSON
// session record per line, UTF-8, never rewritten. Lookups scan the
// whole log and the most recent matching line wins; all history is
// retained.
package sessionlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/everinsight/discprofile/internal/model"
	"github.com/everinsight/discprofile/internal/scorer"
)

// ErrNotFound is returned when no record matches the respondent key.
var ErrNotFound = errors.New("no session record for key")

// maxLine bounds a single log line; a full 25-choice record is a few
// kilobytes at most.
const maxLine = 1 << 20

// Log is a file-backed append-only session store. Appends are safe
// for concurrent use: each record is written with a single write call
// on an O_APPEND descriptor, so readers never observe a partial line.
type Log struct {
	path string

	mu sync.Mutex
	f  *os.File
}

// Open creates or opens the session log at path.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	return &Log{path: path, f: f}, nil
}

// Close releases the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// Append writes one record as a single JSON line. Records are
// immutable once written; there is no update or delete.
func (l *Log) Append(rec model.SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	line := append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.Write(line); err != nil {
		return fmt.Errorf("append session record: %w", err)
	}
	return nil
}

// FindLatestByKey returns the most recently appended record whose
// user field matches the key (case-insensitive, whitespace-trimmed).
// Returns ErrNotFound when nothing matches.
func (l *Log) FindLatestByKey(key string) (model.SessionRecord, error) {
	key = model.NormalizeKey(key)
	if key == "" {
		return model.SessionRecord{}, ErrNotFound
	}

	var found bool
	var latest model.SessionRecord
	err := l.scan(func(rec model.SessionRecord) {
		if model.NormalizeKey(rec.User) == key {
			latest = rec
			found = true
		}
	})
	if err != nil {
		return model.SessionRecord{}, err
	}
	if !found {
		return model.SessionRecord{}, ErrNotFound
	}
	return latest, nil
}

// All returns every valid record in append order.
func (l *Log) All() ([]model.SessionRecord, error) {
	var recs []model.SessionRecord
	err := l.scan(func(rec model.SessionRecord) {
		recs = append(recs, rec)
	})
	return recs, err
}

// scan reads the log line by line. Malformed or oversized lines are
// skipped individually: one corrupt line never aborts the rest of the
// scan.
func (l *Log) scan(visit func(model.SessionRecord)) error {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open session log for read: %w", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 64*1024)
	lineNo := 0
	for {
		line, tooLong, err := readLine(r)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("scan session log: %w", err)
		}
		atEOF := errors.Is(err, io.EOF)

		lineNo++
		switch {
		case tooLong:
			slog.Warn("skipping oversized session log line", "line", lineNo)
		case len(line) > 0:
			if rec, ok := decodeLine(line, lineNo); ok {
				visit(rec)
			}
		}
		if atEOF {
			return nil
		}
	}
}

// readLine reads one newline-terminated line. A line longer than
// maxLine is consumed to its end and reported as too long so the
// caller can skip it and keep scanning.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		frag, ferr := r.ReadSlice('\n')
		if !tooLong {
			line = append(line, frag...)
			if len(line) > maxLine {
				line = nil
				tooLong = true
			}
		}
		switch ferr {
		case bufio.ErrBufferFull:
			continue
		case nil:
			return bytes.TrimSuffix(line, []byte("\n")), tooLong, nil
		default:
			return line, tooLong, ferr
		}
	}
}

// decodeLine parses one log line, migrating legacy records that
// predate the versioned schema and skipping records written by a
// newer version than this binary understands.
func decodeLine(line []byte, lineNo int) (model.SessionRecord, bool) {
	var rec model.SessionRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		slog.Warn("skipping malformed session log line", "line", lineNo, "error", err)
		return model.SessionRecord{}, false
	}
	switch {
	case rec.Version > model.RecordVersion:
		slog.Warn("skipping session record from a newer schema", "line", lineNo, "version", rec.Version)
		return model.SessionRecord{}, false
	case rec.Version < model.RecordVersion:
		migrateLegacy(&rec)
	}
	if rec.User == "" {
		slog.Warn("skipping session record without a respondent key", "line", lineNo)
		return model.SessionRecord{}, false
	}
	return rec, true
}

// migrateLegacy fills the fields the unversioned shape could omit:
// style and top_dims are recomputed from the score vector.
func migrateLegacy(rec *model.SessionRecord) {
	ranking := scorer.Rank(rec.Scores)
	if rec.TopDims[0] == "" || rec.TopDims[1] == "" {
		rec.TopDims = ranking.TopTwo()
	}
	if rec.Style == "" {
		rec.Style = string(rec.TopDims[0]) + string(rec.TopDims[1])
	}
	rec.User = model.NormalizeKey(rec.User)
	rec.Version = model.RecordVersion
}
