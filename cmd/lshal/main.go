// Command lshal lists the services registered with servicemanager, with
// the live state of the process behind each of them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"helloworld/servicemanager"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/shirou/gopsutil/process"
	"github.com/spf13/pflag"
)

const unknownStatus = "?"

// statusFunc reports the state of a registrant process.
type statusFunc func(pid int32) string

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "lshal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	address := os.Getenv("SERVICEMANAGER_ADDR")
	if address == "" {
		address = "127.0.0.1:7040"
	}
	var callerDomain string
	var timeout time.Duration
	flagSet := pflag.NewFlagSet("lshal", pflag.ContinueOnError)
	flagSet.StringVar(&address, "servicemanager", address, "servicemanager address")
	flagSet.StringVar(&callerDomain, "domain", "shell", "caller security domain")
	flagSet.DurationVar(&timeout, "timeout", 5*time.Second, "deadline of the listing")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	directory, err := servicemanager.Dial(address, callerDomain)
	if err != nil {
		return err
	}
	defer func() { _ = directory.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	infos, err := directory.ListServices(ctx)
	if err != nil {
		return err
	}
	render(stdout, infos, processStatus)
	return nil
}

func processStatus(pid int32) string {
	if pid <= 0 {
		return unknownStatus
	}
	p, err := process.NewProcess(pid)
	if err != nil {
		return "DEAD"
	}
	status, err := p.Status()
	if err != nil {
		return unknownStatus
	}
	return strings.ToUpper(status)
}

func render(w io.Writer, infos []servicemanager.ServiceInfo, status statusFunc) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Interface", "Address", "PID", "Process", "Declared", "Registered"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk(lo.Map(infos, func(info servicemanager.ServiceInfo, _ int) []string {
		return []string{
			info.Name,
			info.Address,
			fmt.Sprintf("%d", info.PID),
			status(info.PID),
			lo.Ternary(info.Declared, "Y", "N"),
			info.RegisteredAt.Local().Format(time.DateTime),
		}
	}))
	table.Render()
}
