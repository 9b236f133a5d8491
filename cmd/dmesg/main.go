// Command dmesg prints the kernel log kept by hellokmod. The database is
// opened read-only so it can run next to the daemon.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"helloworld/klog"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
)

type filter struct {
	grep  string
	level string
}

func (f filter) keep(e klog.Entry) bool {
	if f.level != "" && !strings.EqualFold(string(e.Level), f.level) {
		return false
	}
	return strings.Contains(e.Text, f.grep)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "dmesg: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var dbPath string
	var f filter
	flagSet := pflag.NewFlagSet("dmesg", pflag.ContinueOnError)
	flagSet.StringVar(&dbPath, "db", database.DefaultPath, "path to the kernel log database")
	flagSet.StringVarP(&f.grep, "grep", "g", "", "only lines containing this text")
	flagSet.StringVarP(&f.level, "level", "l", "", "only lines of this level (INFO, ERR)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	db, err := openDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	table := newTable(stdout)
	err = db.View(func(txn *badger.Txn) error {
		return klog.ReadEntries(txn, func(e klog.Entry) error {
			if f.keep(e) {
				table.Append(row(e))
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Seq", "Time", "Level", "Message"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func row(e klog.Entry) []string {
	return []string{
		fmt.Sprintf("%d", e.Seq),
		e.Time().Format(time.StampMicro),
		string(e.Level),
		e.Text,
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
