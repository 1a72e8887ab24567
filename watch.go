package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/kahatra/tribe-widget/client"
	"github.com/kahatra/tribe-widget/models"
	"github.com/kahatra/tribe-widget/syncloop"
)

var (
	watchServer   string
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <plan|request> <slug>",
	Short: "Follow a plan or request as it changes",
	Long: `Poll a running server and print the shared view whenever it is
refreshed. Stops when interrupted or when the plan or request is gone.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"plan", "request"},
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(os.Stderr, slog.LevelWarn)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := client.New(watchServer)
		out := cmd.OutOrStdout()
		useServerInterval := !cmd.Flags().Changed("interval")
		opts := func(name string, advertised int64) []syncloop.Option {
			interval := watchInterval
			if useServerInterval && advertised > 0 {
				interval = time.Duration(advertised) * time.Millisecond
			}
			return []syncloop.Option{
				syncloop.WithName(name),
				syncloop.WithInterval(interval),
				syncloop.WithErrorHandler(func(err error) {
					fmt.Fprintf(cmd.ErrOrStderr(), "refresh failed, keeping last view: %v\n", err)
				}),
			}
		}

		// A first read learns the server's cadence. Any other failure falls
		// back to --interval and is retried by the loop.
		kind, slug := args[0], args[1]
		switch kind {
		case "plan":
			first, err := c.GetPlanSnapshot(ctx, slug)
			if models.IsNotFound(err) {
				return err
			}
			loop := syncloop.New(func(ctx context.Context) (models.PlanSnapshot, error) {
				return c.GetPlanSnapshot(ctx, slug)
			}, func(s models.PlanSnapshot) { printPlan(out, s) }, opts("watch_plan", first.PollIntervalMS)...)
			return loop.Run(ctx)
		case "request":
			first, err := c.GetRequestSnapshot(ctx, slug)
			if models.IsNotFound(err) {
				return err
			}
			loop := syncloop.New(func(ctx context.Context) (models.RequestSnapshot, error) {
				return c.GetRequestSnapshot(ctx, slug)
			}, func(s models.RequestSnapshot) { printRequest(out, s) }, opts("watch_request", first.PollIntervalMS)...)
			return loop.Run(ctx)
		}
		return fmt.Errorf("unknown kind %q: want plan or request", kind)
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchServer, "server", "s", "http://localhost:3318", "API server URL")
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", syncloop.DefaultInterval, "refresh interval (default: the server's advertised interval)")
}

func printPlan(w io.Writer, s models.PlanSnapshot) {
	p := s.Plan
	fmt.Fprintf(w, "\n%s (%s) %s, %s\n", p.Title, p.Category, humanize.Time(p.Start),
		strings.TrimSpace(humanize.RelTime(p.Start, p.End, "", "")))
	if p.Location != nil {
		fmt.Fprintf(w, "  at %s\n", *p.Location)
	}
	fmt.Fprintf(w, "  in: %d  maybe: %d  out: %d\n", s.Tally.In, s.Tally.Maybe, s.Tally.Out)
	for _, r := range s.Responses {
		line := fmt.Sprintf("  - %s: %s", r.DisplayName, r.Status)
		if r.Arrival != nil {
			line += " (" + strings.ReplaceAll(*r.Arrival, "_", " ") + ")"
		}
		fmt.Fprintln(w, line)
	}
	if len(s.Claims) > 0 {
		fmt.Fprintln(w, "  bring:")
		for _, c := range s.Claims {
			who := "open"
			if c.ClaimedBy != nil {
				who = *c.ClaimedBy
			}
			fmt.Fprintf(w, "    %s: %s\n", c.Item, who)
		}
	}
	fmt.Fprintf(w, "  updated %s\n", humanize.Time(s.FetchedAt))
}

func printRequest(w io.Writer, s models.RequestSnapshot) {
	fmt.Fprintf(w, "\n%s (%s): %s from %d windows\n", s.Request.Title, s.Request.Category,
		english.Plural(len(s.Candidates), "candidate", ""), len(s.Windows))
	for _, c := range s.Candidates {
		fmt.Fprintf(w, "  %s  %s  %s\n", c.Start.Local().Format("Mon Jan 2 15:04"), c.Label, strings.Join(c.Participants, ", "))
	}
	fmt.Fprintf(w, "  updated %s\n", humanize.Time(s.FetchedAt))
}
