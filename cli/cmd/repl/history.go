package repl

import (
	"encoding/binary"
	"log/slog"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	baseHistory   = "history.db"
	bucketHistory = "history"
)

// History is the list of evaluated lines, oldest first. Lines are stored in
// a bolt database keyed by sequence number so they survive restarts.
//
// A History without a database keeps lines in memory only.
type History struct {
	db      *bolt.DB
	entries []string
}

// OpenHistory opens or creates the history database at path and loads its
// lines.
func OpenHistory(path string) (*History, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, ErrHistory.Wrap(err).With(slog.String("path", path))
	}

	h := &History{db: db}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		if err != nil {
			return err
		}

		return b.ForEach(func(_, v []byte) error {
			h.entries = append(h.entries, string(v))

			return nil
		})
	})
	if err != nil {
		_ = db.Close()

		return nil, ErrHistory.Wrap(err).With(slog.String("path", path))
	}

	return h, nil
}

// Add appends line unless it is blank or repeats the newest entry.
func (h *History) Add(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return nil
	}

	h.entries = append(h.entries, line)

	if h.db == nil {
		return nil
	}

	err := h.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		return b.Put(marshalSeq(seq), []byte(line))
	})
	if err != nil {
		return ErrHistory.Wrap(err)
	}

	return nil
}

// At returns the entry at index i, where 0 is the oldest.
func (h *History) At(i int) (string, error) {
	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds.With(slog.Int("index", i))
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Close closes the database.
func (h *History) Close() error {
	if h.db == nil {
		return nil
	}

	return h.db.Close()
}

func marshalSeq(seq uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, seq)
}
