// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/poiesic/georemind"
	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/geofence"
	"github.com/poiesic/georemind/notification"
	"github.com/poiesic/georemind/reminderslist"
	"github.com/poiesic/georemind/savereminder"
	"github.com/poiesic/georemind/transition"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "georemind",
		Usage:  "Location-based reminders triggered by geofences",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "save",
				Usage:  "Validate a reminder, register its geofence and store it",
				Action: saveCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "id",
						Usage: "Reminder ID (generated when empty)",
					},
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Reminder title",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Reminder description",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Name of the selected place",
					},
					&cli.Float64Flag{
						Name:  "lat",
						Usage: "Latitude of the selected place",
					},
					&cli.Float64Flag{
						Name:  "lon",
						Usage: "Longitude of the selected place",
					},
					&cli.Float64Flag{
						Name:  "radius",
						Usage: "Geofence radius in meters",
						Value: geofence.DefaultRadiusMeters,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List all reminders in insertion order",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "show",
				Usage:  "Show one reminder",
				Action: showCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Reminder ID",
						Required: true,
					},
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete one reminder",
				Action: deleteCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Reminder ID",
						Required: true,
					},
				},
			},
			{
				Name:   "clear",
				Usage:  "Delete all reminders",
				Action: clearCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "simulate",
				Usage:  "Replay device routes from scenario files through the geofences",
				Action: simulateCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringSliceFlag{
						Name:     "scenario",
						Aliases:  []string{"s"},
						Usage:    "YAML scenario file (repeatable)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent transition tasks",
						Value: 2,
					},
				},
			},
		},
	}
}

// openDatabase opens the on-disk database with notifications rendered on the
// app's writer.
func openDatabase(c *cli.Context, opts ...georemind.ConfigOption) (*georemind.Database, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	notifier, err := notification.NewWriterNotifier(c.App.Writer)
	if err != nil {
		return nil, err
	}

	opts = append([]georemind.ConfigOption{
		georemind.WithDatabasePath(dbPath),
		georemind.WithNotifier(notifier),
		georemind.WithLogger(slog.Default()),
	}, opts...)

	db, err := georemind.Open(georemind.NewConfig(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func saveCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c, georemind.WithGeofenceRadius(c.Float64("radius")))
	if err != nil {
		return err
	}
	defer db.Close()

	recorder := &savereminder.Recorder{}
	flow, err := db.NewSaveFlow(savereminder.WithMonitor(recorder))
	if err != nil {
		return err
	}

	if c.IsSet("lat") && c.IsSet("lon") {
		poi := &core.PointOfInterest{
			Name:      c.String("location"),
			Latitude:  c.Float64("lat"),
			Longitude: c.Float64("lon"),
		}
		if err := flow.SelectLocation(poi); err != nil {
			return err
		}
	}

	item := flow.NewItem(c.String("title"), c.String("description"))
	if id := c.String("id"); id != "" {
		item.ID = id
	}

	saveErr := flow.Save(ctx, item)
	printSignals(c.App.Writer, recorder)
	if saveErr != nil {
		return saveErr
	}
	fmt.Fprintf(c.App.Writer, "%s\n", item.ID)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	monitor := &listMonitor{out: c.App.Writer}
	list, err := db.NewRemindersList(reminderslist.WithMonitor(monitor))
	if err != nil {
		return err
	}
	list.LoadReminders(ctx)
	if monitor.failed {
		return fmt.Errorf("failed to load reminders")
	}

	if list.ShowNoData() {
		fmt.Fprintln(c.App.Writer, "No Data")
		return nil
	}
	for _, item := range list.Items() {
		writeItem(c.App.Writer, item)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	result := db.Repository().GetReminder(ctx, c.String("id"))
	var showErr error
	result.Match(
		func(r *core.Reminder) {
			writeItem(c.App.Writer, core.DataItemFromReminder(r))
		},
		func(message string) {
			showErr = fmt.Errorf("%s", message)
		},
	)
	return showErr
}

func deleteCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.DeleteReminder(context.Background(), c.String("id"))
}

func clearCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.DeleteAllReminders(context.Background())
}

func simulateCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scenarios, err := loadScenarios(ctx, c.StringSlice("scenario"))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	db, err := openDatabase(c,
		georemind.WithWorkerPoolSize(c.Int("workers")),
		georemind.WithMetricsRegisterer(reg),
	)
	if err != nil {
		return err
	}

	// Regions do not survive restarts of the local service
	restored, err := db.RestoreGeofences(ctx)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to restore geofences: %w", err)
	}
	slog.Debug("restored geofences", "count", restored)

	runErr := runScenarios(ctx, c.App.Writer, db, scenarios)

	// Close drains queued transition events before reporting
	if err := db.Close(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	counts, err := outcomeCounts(reg)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "---")
	for _, outcome := range []transition.Outcome{
		transition.OutcomeNotified,
		transition.OutcomeStale,
		transition.OutcomeIgnored,
		transition.OutcomeEventError,
		transition.OutcomeNotifyFailed,
	} {
		fmt.Fprintf(c.App.Writer, "%s: %d\n", outcome, int(counts[string(outcome)]))
	}
	return nil
}

// outcomeCounts reads the transition event counters from reg.
func outcomeCounts(reg *prometheus.Registry) (map[string]float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != "georemind_transition_events_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "outcome" {
					counts[label.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}
	return counts, nil
}

// listMonitor prints load failures.
type listMonitor struct {
	out    io.Writer
	failed bool
}

func (m *listMonitor) LoadingChanged(_ bool) {}

func (m *listMonitor) SnackBar(message string) {
	m.failed = true
	fmt.Fprintf(m.out, "! %s\n", message)
}

func printSignals(out io.Writer, recorder *savereminder.Recorder) {
	for _, key := range recorder.SnackBars() {
		fmt.Fprintf(out, "! %s\n", key)
	}
	for _, message := range recorder.Errors() {
		fmt.Fprintf(out, "! %s\n", message)
	}
	for _, toast := range recorder.Toasts() {
		fmt.Fprintf(out, "%s\n", toast)
	}
}

func writeItem(out io.Writer, item core.ReminderDataItem) {
	coords := "-"
	if item.Latitude != nil && item.Longitude != nil {
		coords = fmt.Sprintf("%.6f,%.6f", *item.Latitude, *item.Longitude)
	}
	fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Title, item.Location, coords, item.Description)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
