package klog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

const (
	entryPrefix = "klog:entry:"
	sequenceKey = "klogseq"
	// Number of sequence numbers leased from badger at once.
	sequenceBandwidth = 128
)

type Level string

const (
	LevelInfo Level = "INFO"
	LevelErr  Level = "ERR"
)

func (l Level) slogLevel() slog.Level {
	if l == LevelErr {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Entry is one line of the kernel log.
type Entry struct {
	Seq   uint64 `cbor:"1,keyasint"`
	At    int64  `cbor:"2,keyasint"`
	Level Level  `cbor:"3,keyasint"`
	Text  string `cbor:"4,keyasint"`
}

func (e Entry) Time() time.Time {
	return time.Unix(0, e.At).UTC()
}

// Printer is what the kernel side needs from the log.
type Printer interface {
	Printk(level Level, format string, args ...any) error
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("klog: CBOR encoder initialization failed: " + err.Error())
	}
}

// Journal is the kernel ring buffer persisted in BadgerDB. Lines are never
// deduplicated: two identical Printk calls produce two entries.
type Journal struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

func NewJournal(db *badger.DB, log *slog.Logger) (*Journal, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("klog sequence: %w", err)
	}
	return &Journal{db: db, seq: seq, log: log}, nil
}

// Printk formats and appends a line, and mirrors it to the process logger.
func (j *Journal) Printk(level Level, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	n, err := j.seq.Next()
	if err != nil {
		return fmt.Errorf("klog sequence: %w", err)
	}
	entry := Entry{Seq: n, At: time.Now().UTC().UnixNano(), Level: level, Text: text}
	b, err := encMode.Marshal(entry)
	if err != nil {
		return err
	}
	if err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(n), b)
	}); err != nil {
		return err
	}
	j.log.Log(context.Background(), level.slogLevel(), text, "seq", n)
	return nil
}

// Entries returns every line in sequence order.
func (j *Journal) Entries() ([]Entry, error) {
	return j.scan(func(Entry) bool { return true })
}

// Grep returns the lines containing substr.
func (j *Journal) Grep(substr string) ([]Entry, error) {
	return j.scan(func(e Entry) bool { return strings.Contains(e.Text, substr) })
}

// Count returns how many lines contain substr.
func (j *Journal) Count(substr string) (int, error) {
	entries, err := j.Grep(substr)
	return len(entries), err
}

// Close releases the leased sequence range. The database stays open.
func (j *Journal) Close() error {
	return j.seq.Release()
}

func (j *Journal) scan(keep func(Entry) bool) ([]Entry, error) {
	var entries []Entry
	err := j.db.View(func(txn *badger.Txn) error {
		return ReadEntries(txn, func(e Entry) error {
			if keep(e) {
				entries = append(entries, e)
			}
			return nil
		})
	})
	return entries, err
}

// ReadEntries walks the journal inside an existing transaction. Used by
// tools that open the database read-only.
func ReadEntries(txn *badger.Txn, fn func(Entry) error) error {
	prefix := []byte(entryPrefix)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var entry Entry
		if err := it.Item().Value(func(val []byte) error {
			return cbor.Unmarshal(val, &entry)
		}); err != nil {
			return err
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return nil
}

// DecodeEntry decodes a raw journal value.
func DecodeEntry(val []byte) (Entry, error) {
	var entry Entry
	err := cbor.Unmarshal(val, &entry)
	return entry, err
}

func entryKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", entryPrefix, seq))
}
