package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/scpi-drivers/kepco-go/pkg/bhk"
	"github.com/scpi-drivers/kepco-go/pkg/discovery"
	"github.com/scpi-drivers/kepco-go/pkg/trace"
)

// console is the interactive command loop.
type console struct {
	config Config
	logger trace.Logger
	rl     *readline.Instance

	supply   *bhk.BHK
	resource string
}

// newConsole creates the readline-backed console.
func newConsole(cfg Config, logger trace.Logger) (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bhk> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{config: cfg, logger: logger, rl: rl}, nil
}

// Close releases the prompt and the open connection, if any.
func (c *console) Close() error {
	if c.supply != nil {
		_ = c.supply.Close()
	}
	return c.rl.Close()
}

// Run starts the interactive command loop.
func (c *console) Run(ctx context.Context) {
	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "discover":
			c.cmdDiscover(ctx)

		case "open":
			c.cmdOpen(ctx, args)

		case "id":
			c.cmdID(ctx)

		case "channels":
			c.cmdChannels()

		case "read", "r":
			c.cmdRead(ctx, args)

		case "write", "w":
			c.cmdWrite(ctx, args)

		case "enable":
			c.withSupply(func(s *bhk.BHK) error { return s.Enable(ctx) })

		case "disable":
			c.withSupply(func(s *bhk.BHK) error { return s.Disable(ctx) })

		case "ramp":
			c.cmdRamp(ctx, args)

		case "rampzero":
			c.cmdRampZero(ctx, args)

		case "shutdown":
			c.withSupply(func(s *bhk.BHK) error { return s.Shutdown(ctx) })

		case "status":
			c.cmdStatus(ctx)

		case "quit", "exit", "q":
			return

		default:
			fmt.Printf("unknown command %q, try help\n", cmd)
		}
	}
}

func (c *console) printHelp() {
	fmt.Print(`Commands:
  discover                  find LXI/SCPI instruments via mDNS
  open <resource>           connect to a supply
  id                        read the identification string
  channels                  list driver channels
  read <channel>            read a channel
  write <channel> <value>   write a channel
  enable | disable          switch the output
  ramp <amps> [step]        ramp the current setpoint (default step 0.1)
  rampzero [step]           ramp the current setpoint to 0 A
  shutdown                  disable the output (current left untouched)
  status                    setpoints, measurements and mode
  quit
`)
}

// withSupply runs fn against the open supply, reporting errors uniformly.
func (c *console) withSupply(fn func(*bhk.BHK) error) {
	if c.supply == nil {
		fmt.Println("no supply open, use open <resource>")
		return
	}
	if err := fn(c.supply); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func (c *console) open(ctx context.Context, resource string) error {
	if c.supply != nil {
		_ = c.supply.Close()
		c.supply = nil
	}

	supply, err := bhk.Open(ctx, resource,
		bhk.WithLogger(c.logger),
		bhk.WithTimeouts(c.config.ConnectTimeout, c.config.ReadTimeout, c.config.WriteTimeout),
	)
	if err != nil {
		return err
	}

	if err := applyLimits(ctx, supply, c.config.Limits); err != nil {
		_ = supply.Close()
		return fmt.Errorf("apply limits: %w", err)
	}

	c.supply = supply
	c.resource = resource
	fmt.Printf("connected to %s (%s)\n", resource, supply.Name())
	return nil
}

func (c *console) cmdOpen(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: open <resource>")
		return
	}
	if err := c.open(ctx, args[0]); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func (c *console) cmdDiscover(ctx context.Context) {
	browseCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	browser := discovery.NewBrowser(discovery.DefaultBrowserConfig())
	found, err := browser.Browse(browseCtx, discovery.ServiceSCPIRaw)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	n := 0
	for inst := range found {
		n++
		fmt.Printf("  %-30s %s\n", inst.Name, inst.Resource())
	}
	if n == 0 {
		fmt.Println("no instruments found")
	}
}

func (c *console) cmdID(ctx context.Context) {
	c.withSupply(func(s *bhk.BHK) error {
		id, err := s.ID(ctx)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	})
}

func (c *console) cmdChannels() {
	c.withSupply(func(s *bhk.BHK) error {
		for _, name := range s.Channels() {
			fmt.Println("  " + name)
		}
		return nil
	})
}

func (c *console) cmdRead(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: read <channel>")
		return
	}
	c.withSupply(func(s *bhk.BHK) error {
		v, err := s.Get(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%v\n", v)
		return nil
	})
}

func (c *console) cmdWrite(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: write <channel> <value>")
		return
	}
	c.withSupply(func(s *bhk.BHK) error {
		return s.Set(ctx, args[0], parseValue(args[1]))
	})
}

func (c *console) cmdRamp(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Println("usage: ramp <amps> [step]")
		return
	}
	target, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Printf("bad target %q\n", args[0])
		return
	}
	step := bhk.DefaultRampStep
	if len(args) == 2 {
		step, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Printf("bad step %q\n", args[1])
			return
		}
	}
	c.withSupply(func(s *bhk.BHK) error {
		return s.RampToCurrent(ctx, target, step)
	})
}

func (c *console) cmdRampZero(ctx context.Context, args []string) {
	step := bhk.DefaultRampStep
	if len(args) == 1 {
		var err error
		step, err = strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Printf("bad step %q\n", args[0])
			return
		}
	}
	c.withSupply(func(s *bhk.BHK) error {
		return s.RampToZero(ctx, step)
	})
}

func (c *console) cmdStatus(ctx context.Context) {
	c.withSupply(func(s *bhk.BHK) error {
		out, err := s.Output(ctx)
		if err != nil {
			return err
		}
		volt, err := s.Voltage(ctx)
		if err != nil {
			return err
		}
		curr, err := s.Current(ctx)
		if err != nil {
			return err
		}
		mv, mi, err := s.MeasureVI(ctx)
		if err != nil {
			return err
		}
		mode, err := s.Mode(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			// A supply with the output off may not report a mode; show
			// what we have.
			mode = bhk.ModeUnknown
		}

		state := "off"
		if out {
			state = "on"
		}
		fmt.Printf("output   %s\n", state)
		fmt.Printf("setpoint %g V, %g A\n", volt, curr)
		fmt.Printf("measured %g V, %g A\n", mv, mi)
		fmt.Printf("mode     %s\n", mode)
		return nil
	})
}

// parseValue interprets a command-line token as bool, float or string,
// in that order. Channel validators do the real checking.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
