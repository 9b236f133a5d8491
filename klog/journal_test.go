package klog

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newJournal(t *testing.T) *Journal {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	journal, err := NewJournal(db, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = journal.Close()
		_ = db.Close()
	})
	return journal
}

func TestJournal_Printk_Keeps_Order(t *testing.T) {
	req := require.New(t)
	journal := newJournal(t)

	// When three lines are printed
	req.NoError(journal.Printk(LevelInfo, "first"))
	req.NoError(journal.Printk(LevelErr, "second %d", 2))
	req.NoError(journal.Printk(LevelInfo, "third"))

	// Then they come back in sequence order
	entries, err := journal.Entries()
	req.NoError(err)
	req.Len(entries, 3)
	req.Equal("first", entries[0].Text)
	req.Equal("second 2", entries[1].Text)
	req.Equal(LevelErr, entries[1].Level)
	req.Equal("third", entries[2].Text)
	req.Less(entries[0].Seq, entries[1].Seq)
	req.False(entries[0].Time().IsZero())
}

func TestJournal_Same_Line_Twice_Is_Two_Entries(t *testing.T) {
	req := require.New(t)
	journal := newJournal(t)

	req.NoError(journal.Printk(LevelInfo, "hello_world received: %s", "hi"))
	req.NoError(journal.Printk(LevelInfo, "hello_world received: %s", "hi"))

	entries, err := journal.Grep("received: hi")
	req.NoError(err)
	req.Len(entries, 2)
}

func TestJournal_Concurrent_Printk(t *testing.T) {
	req := require.New(t)
	journal := newJournal(t)
	n := 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = journal.Printk(LevelInfo, "line-%03d", i)
		}(i)
	}
	wg.Wait()

	entries, err := journal.Entries()
	req.NoError(err)
	req.Len(entries, n)
	for i := 0; i < n; i++ {
		found, err := journal.Grep(fmt.Sprintf("line-%03d", i))
		req.NoError(err)
		req.Len(found, 1)
	}
}

func TestJournal_Count_Matching_Lines(t *testing.T) {
	req := require.New(t)
	journal := newJournal(t)

	req.NoError(journal.Printk(LevelInfo, "hello_world received: %s", "Hello"))
	req.NoError(journal.Printk(LevelInfo, "hello_world received: %s", "Hello"))
	req.NoError(journal.Printk(LevelInfo, "hello_world received: %s", "Bye"))

	count, err := journal.Count("received: Hello")
	req.NoError(err)
	req.Equal(2, count)
}
