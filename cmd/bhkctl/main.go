// Command bhkctl is an interactive console for Kepco BHK power supplies.
//
// Usage:
//
//	bhkctl [flags]
//
// Flags:
//
//	-resource string   Instrument resource (e.g. TCPIP0::10.0.0.42::5025::SOCKET)
//	-config string     Configuration file path (YAML)
//	-trace string      Write a CBOR wire trace to this file
//	-timeout duration  Connect/read/write timeout (default 5s)
//	-verbose           Log the wire conversation to the console
//
// Examples:
//
//	# Discover LXI instruments on the local network
//	bhkctl
//	bhk> discover
//
//	# Open a supply and ramp the current up
//	bhkctl -resource TCPIP0::10.0.0.42::5025::SOCKET
//	bhk> enable
//	bhk> ramp 0.5
//
//	# Run with a config file and a wire trace
//	bhkctl -config supply.yaml -trace session.strc
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scpi-drivers/kepco-go/pkg/bhk"
	"github.com/scpi-drivers/kepco-go/pkg/trace"
)

func main() {
	var (
		resourceFlag = flag.String("resource", "", "Instrument resource string")
		configFlag   = flag.String("config", "", "Configuration file path (YAML)")
		traceFlag    = flag.String("trace", "", "Write a CBOR wire trace to this file")
		timeoutFlag  = flag.Duration("timeout", 5*time.Second, "Connect/read/write timeout")
		verboseFlag  = flag.Bool("verbose", false, "Log the wire conversation to the console")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configFlag != "" {
		var err error
		cfg, err = loadConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bhkctl: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags override the config file.
	if *resourceFlag != "" {
		cfg.Resource = *resourceFlag
	}
	if *traceFlag != "" {
		cfg.TraceFile = *traceFlag
	}
	if *timeoutFlag != 5*time.Second {
		cfg.ConnectTimeout = *timeoutFlag
		cfg.ReadTimeout = *timeoutFlag
		cfg.WriteTimeout = *timeoutFlag
	}

	logger, closeLogger, err := buildLogger(cfg, *verboseFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bhkctl: %v\n", err)
		os.Exit(1)
	}
	defer closeLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	console, err := newConsole(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bhkctl: %v\n", err)
		os.Exit(1)
	}
	defer console.Close()

	// Open immediately when a resource is configured; otherwise the user
	// runs discover/open from the prompt.
	if cfg.Resource != "" {
		if err := console.open(ctx, cfg.Resource); err != nil {
			fmt.Fprintf(os.Stderr, "bhkctl: %v\n", err)
			os.Exit(1)
		}
	}

	console.Run(ctx)
}

// buildLogger assembles the trace logger from the config and flags.
func buildLogger(cfg Config, verbose bool) (trace.Logger, func(), error) {
	var loggers []trace.Logger
	closeFn := func() {}

	if verbose {
		loggers = append(loggers, trace.NewSlogAdapter(slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)))
	}
	if cfg.TraceFile != "" {
		fl, err := trace.NewFileLogger(cfg.TraceFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open trace file: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() { _ = fl.Close() }
	}

	switch len(loggers) {
	case 0:
		return trace.NoopLogger{}, closeFn, nil
	case 1:
		return loggers[0], closeFn, nil
	default:
		return trace.NewMultiLogger(loggers...), closeFn, nil
	}
}

// applyLimits writes the configured soft limits to a freshly opened supply.
func applyLimits(ctx context.Context, supply *bhk.BHK, limits Limits) error {
	if limits.MaxVoltage != nil {
		if err := supply.SetMaxVoltage(ctx, *limits.MaxVoltage); err != nil {
			return err
		}
	}
	if limits.MaxCurrent != nil {
		if err := supply.SetMaxCurrent(ctx, *limits.MaxCurrent); err != nil {
			return err
		}
	}
	return nil
}
