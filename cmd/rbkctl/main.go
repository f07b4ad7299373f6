package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/rbkctl/internal/client"
	"github.com/danmuck/rbkctl/internal/logging"
	"github.com/danmuck/rbkctl/internal/protocol"
)

type options struct {
	host    string
	timeout time.Duration
	config  string
}

func main() {
	opts, args := parseFlags()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logging.ConfigureRuntime()

	cfg := client.DefaultConfig()
	if opts.config != "" {
		loaded, err := loadClientConfig(opts.config)
		if err != nil {
			fatalf("%v", err)
		}
		cfg = loaded
	}
	if opts.host != "" {
		cfg.Host = opts.host
	}
	if opts.timeout > 0 {
		cfg.RequestTimeout = opts.timeout
	}

	c := client.New(cfg)
	defer c.Close()

	if err := dispatch(context.Background(), c, args); err != nil {
		fatalf("%v", err)
	}
}

func parseFlags() (options, []string) {
	var opts options
	flag.StringVar(&opts.host, "host", "", "robot host (overrides config file)")
	flag.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (overrides config file)")
	flag.StringVar(&opts.config, "config", "", "rbkctl config.toml path")
	flag.Usage = usage
	flag.Parse()
	return opts, flag.Args()
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: rbkctl [flags] <command> [args]

commands:
  info                     robot identity
  battery                  battery status
  pose                     current pose
  status                   navigation task status
  move <waypoint> [task]   navigate to a named waypoint
  pause                    pause the running task
  resume                   resume a paused task
  cancel                   cancel the running task
  stop                     stop motion immediately
  raw <api> [json]         send an arbitrary API request

flags:
`)
	flag.PrintDefaults()
}

func dispatch(ctx context.Context, c *client.Client, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "info":
		info, err := c.RobotInfo(ctx)
		if err != nil {
			return err
		}
		return printJSON(info)
	case "battery":
		battery, err := c.BatteryStatus(ctx)
		if err != nil {
			return err
		}
		return printJSON(battery)
	case "pose":
		pose, err := c.Pose(ctx)
		if err != nil {
			return err
		}
		return printJSON(pose)
	case "status":
		nav, err := c.NavStatus(ctx)
		if err != nil {
			return err
		}
		return printJSON(nav)
	case "move":
		if len(rest) < 1 {
			return fmt.Errorf("usage: rbkctl move <waypoint> [task]")
		}
		target := protocol.MoveTarget{
			ID:     rest[0],
			TaskID: fmt.Sprintf("cli_%d", time.Now().UnixMilli()),
		}
		if len(rest) > 1 {
			target.TaskID = rest[1]
		}
		return printAck(c.MoveToTarget(ctx, target))
	case "pause":
		return printAck(c.PauseTask(ctx))
	case "resume":
		return printAck(c.ResumeTask(ctx))
	case "cancel":
		return printAck(c.CancelTask(ctx))
	case "stop":
		return printAck(c.Stop(ctx))
	case "raw":
		return rawCommand(ctx, c, rest)
	default:
		return fmt.Errorf("unknown command %q (run rbkctl with no arguments for usage)", cmd)
	}
}

func rawCommand(ctx context.Context, c *client.Client, rest []string) error {
	if len(rest) < 1 {
		return fmt.Errorf("usage: rbkctl raw <api> [json]")
	}
	api, err := strconv.ParseUint(rest[0], 10, 16)
	if err != nil {
		return fmt.Errorf("bad api number %q: %w", rest[0], err)
	}
	var body []byte
	if len(rest) > 1 {
		body = []byte(strings.Join(rest[1:], " "))
		if !json.Valid(body) {
			return fmt.Errorf("request body is not valid JSON")
		}
	}
	resp, err := c.CallRaw(ctx, uint16(api), body, 0)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, resp, "", "  "); err != nil {
		fmt.Println(string(resp))
		return nil
	}
	fmt.Println(buf.String())
	return nil
}

// printAck reports a command outcome in the wire's ack shape.
func printAck(err error) error {
	if err != nil {
		return err
	}
	return printJSON(protocol.Status{})
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "rbkctl: "+format+"\n", args...)
	os.Exit(1)
}
