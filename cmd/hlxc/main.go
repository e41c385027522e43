// Command hlxc is a thin CLI client for an HLX controller: dial it,
// run one subcommand, print the result, exit. It is not a shell or a
// REPL; each invocation is a single connect/refresh/act/disconnect
// cycle, the way a shell script would call it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/openhlxgo/hlx/internal/client"
	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
	"github.com/openhlxgo/hlx/internal/transport"
)

func main() {
	var (
		addr    = flag.String("addr", "127.0.0.1:23", "controller host:port")
		timeout = flag.Duration("timeout", 5*time.Second, "connect/refresh timeout")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: hlxc [flags] <zones|groups|sources|set-volume|set-mute> [args...]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	bus := notify.NewBus()
	tr := transport.NewTCPClient(*addr)
	ctrl := client.New(tr, model.DefaultLimits(), bus)
	if err := ctrl.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer ctrl.Close()

	if err := ctrl.Refresh(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "refresh: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "zones":
		printZones(ctrl.State())
	case "groups":
		printGroups(ctrl.State())
	case "sources":
		printSources(ctrl.State())
	case "set-volume":
		err = runSetVolume(ctx, ctrl, args[1:])
	case "set-mute":
		err = runSetMute(ctx, ctrl, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", args[0])
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSetVolume(ctx context.Context, ctrl *client.Controller, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set-volume <zone> <level>")
	}
	zone, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("zone: %w", err)
	}
	level, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}
	return ctrl.SetZoneVolume(ctx, model.Identifier(zone), level)
}

func runSetMute(ctx context.Context, ctrl *client.Controller, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set-mute <zone> <on|off>")
	}
	zone, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("zone: %w", err)
	}
	switch args[1] {
	case "on":
		return ctrl.SetZoneMute(ctx, model.Identifier(zone), true)
	case "off":
		return ctrl.SetZoneMute(ctx, model.Identifier(zone), false)
	default:
		return fmt.Errorf("mute state must be on or off, got %q", args[1])
	}
}

func printZones(st model.State) {
	t := tablewriter.NewWriter(os.Stdout)
	t.SetHeader([]string{"Zone", "Name", "Source", "Volume", "Mute"})
	for _, z := range st.Zones {
		name, _ := z.Name()
		source, _ := z.SourceID()
		level, _ := z.Volume.Level()
		mute, _ := z.Volume.Mute()
		t.Append([]string{
			strconv.Itoa(int(z.ID())),
			name,
			identifierOrDash(source),
			strconv.Itoa(level),
			strconv.FormatBool(mute),
		})
	}
	t.Render()
}

func printGroups(st model.State) {
	t := tablewriter.NewWriter(os.Stdout)
	t.SetHeader([]string{"Group", "Name", "Members", "Volume", "Mute"})
	for _, g := range st.Groups {
		name, _ := g.Name()
		d := g.Derived()
		vol := "-"
		mute := "-"
		if d.Defined {
			vol = strconv.Itoa(d.Volume)
			mute = strconv.FormatBool(d.Mute)
		}
		t.Append([]string{
			strconv.Itoa(int(g.ID())),
			name,
			strconv.Itoa(len(g.Members())),
			vol,
			mute,
		})
	}
	t.Render()
}

func printSources(st model.State) {
	t := tablewriter.NewWriter(os.Stdout)
	t.SetHeader([]string{"Source", "Name"})
	for _, s := range st.Sources {
		name, _ := s.Name()
		t.Append([]string{strconv.Itoa(int(s.ID())), name})
	}
	t.Render()
}

func identifierOrDash(id model.Identifier) string {
	if id == model.InvalidIdentifier {
		return "-"
	}
	return strconv.Itoa(int(id))
}
