// Command hello is the app side of the bridge: it resolves the
// helloworld service and sends one message to the kernel log.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"helloworld/client"
	"helloworld/domain"
	"helloworld/servicemanager"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/pflag"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type options struct {
	Config
	Count          int
	CheckInterface bool
}

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hello: %v\n", err)
	}
	os.Exit(code)
}

func parseFlags(args []string, defaults Config) (options, error) {
	opts := options{Config: defaults, Count: 1}
	flagSet := pflag.NewFlagSet("hello", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.Message, "message", "m", opts.Message, "text written to the kernel log")
	flagSet.StringVar(&opts.ServiceManagerAddr, "servicemanager", opts.ServiceManagerAddr, "servicemanager address")
	flagSet.StringVar(&opts.Domain, "domain", opts.Domain, "caller security domain")
	flagSet.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "deadline of the whole call")
	flagSet.IntVarP(&opts.Count, "count", "n", opts.Count, "number of concurrent sayHello calls")
	flagSet.BoolVar(&opts.CheckInterface, "check-interface", false, "compare the remote interface version and hash first")
	flagSet.BoolVar(&opts.Colours, "colours", opts.Colours, "colour the outcome")
	flagSet.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level")
	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if flagSet.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}
	if opts.Count < 1 {
		return opts, fmt.Errorf("--count must be at least 1, got %d", opts.Count)
	}
	return opts, nil
}

func run(args []string, stdout io.Writer) (int, error) {
	defaults, err := LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	opts, err := parseFlags(args, defaults)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK, nil
	}
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(opts.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	directory, err := servicemanager.Dial(opts.ServiceManagerAddr, opts.Domain)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = directory.Close() }()
	stub := client.NewHelloWorld(logger, directory, client.DefaultDialer)

	if opts.CheckInterface {
		if err := stub.CheckInterface(ctx); err != nil {
			report(stdout, opts.Colours, err)
			return exitRuntime, err
		}
	}

	results := make([]<-chan client.Result, 0, opts.Count)
	for range opts.Count {
		results = append(results, stub.SayHelloAsync(ctx, domain.NewMessage(opts.Message)))
	}
	var failed error
	for _, ch := range results {
		result := <-ch
		report(stdout, opts.Colours, result.Err)
		if result.Err != nil && failed == nil {
			failed = result.Err
		}
	}
	if failed != nil {
		return exitRuntime, failed
	}
	return exitOK, nil
}

func report(w io.Writer, colours bool, err error) {
	line := "sent"
	style := color.New(color.FgGreen)
	if err != nil {
		line = "error: " + err.Error()
		style = color.New(color.FgRed, color.OpBold)
	}
	if colours {
		line = style.Render(line)
	}
	fmt.Fprintln(w, line)
}
