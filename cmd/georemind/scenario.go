package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/poiesic/georemind"
	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/savereminder"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// scenario is one simulation file: reminders to place and a device route.
type scenario struct {
	Name      string             `yaml:"name"`
	Interval  time.Duration      `yaml:"interval"`
	Reminders []scenarioReminder `yaml:"reminders"`
	Route     []scenarioFix      `yaml:"route"`
}

type scenarioReminder struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Location    string  `yaml:"location"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
}

type scenarioFix struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// id returns the configured ID, or one derived from the reminder content so
// replaying a scenario updates instead of duplicating.
func (r scenarioReminder) id() string {
	if r.ID != "" {
		return r.ID
	}
	return core.IDFromContent(fmt.Sprintf("%s|%s|%f|%f", r.Title, r.Location, r.Latitude, r.Longitude))
}

func parseScenario(data []byte) (*scenario, error) {
	var s scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	for i, fix := range s.Route {
		if !core.IsValidCoordinate(fix.Latitude, fix.Longitude) {
			return nil, fmt.Errorf("route point %d: coordinates out of range", i)
		}
	}
	if s.Interval < 0 {
		return nil, fmt.Errorf("interval must not be negative")
	}
	return &s, nil
}

// loadScenarios reads and parses the files concurrently, keeping their order.
func loadScenarios(ctx context.Context, paths []string) ([]*scenario, error) {
	scenarios := make([]*scenario, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read scenario: %w", err)
			}
			s, err := parseScenario(data)
			if err != nil {
				return fmt.Errorf("invalid scenario %s: %w", path, err)
			}
			if s.Name == "" {
				s.Name = path
			}
			scenarios[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scenarios, nil
}

// runScenarios saves each scenario's reminders through the save flow, then
// replays its route against the local geofencing service.
func runScenarios(ctx context.Context, out io.Writer, db *georemind.Database, scenarios []*scenario) error {
	svc := db.LocalService()
	if svc == nil {
		return fmt.Errorf("simulation needs the local geofencing service")
	}

	recorder := &savereminder.Recorder{}
	flow, err := db.NewSaveFlow(savereminder.WithMonitor(recorder))
	if err != nil {
		return err
	}

	for _, s := range scenarios {
		fmt.Fprintf(out, "# %s\n", s.Name)
		for _, r := range s.Reminders {
			recorder.Reset()
			item := core.NewReminderDataItem(r.Title, r.Description, r.Location,
				core.Float(r.Latitude), core.Float(r.Longitude))
			item.ID = r.id()
			err := flow.Save(ctx, item)
			printSignals(out, recorder)
			if err != nil {
				return fmt.Errorf("failed to save reminder %q: %w", r.Title, err)
			}
		}

		for _, fix := range s.Route {
			if err := svc.UpdateLocation(ctx, fix.Latitude, fix.Longitude); err != nil {
				return err
			}
			if s.Interval > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(s.Interval):
				}
			}
		}
	}
	return nil
}
