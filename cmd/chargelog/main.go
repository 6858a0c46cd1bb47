// Package main is the entry point for the chargelog CLI.
// Its sole responsibility is wiring dependencies together and dispatching
// subcommands. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jsteiner/chargelog/internal/config"
	"github.com/jsteiner/chargelog/internal/dates"
	"github.com/jsteiner/chargelog/internal/domain"
	"github.com/jsteiner/chargelog/internal/repo"
	"github.com/jsteiner/chargelog/internal/service"
	"github.com/jsteiner/chargelog/internal/store"
)

// app bundles the wired services and config for subcommand handlers.
type app struct {
	cfg      config.Config
	events   *service.TravelEventService
	sessions *service.ChargingSessionService
	export   *service.ExportService
}

func main() {
	if err := run(); err != nil {
		// Repo/store failures carry their cause; validation and guard errors
		// are already user-readable.
		var blocked *domain.DeleteBlockedError
		switch {
		case errors.Is(err, domain.ErrValidation), errors.As(err, &blocked):
			fmt.Fprintln(os.Stderr, err)
		default:
			slog.Error("command failed", "error", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	eventRepo := repo.NewTravelEventRepo(db)
	sessionRepo := repo.NewChargingSessionRepo(db)

	a := &app{
		cfg:      cfg,
		events:   service.NewTravelEventService(eventRepo, sessionRepo),
		sessions: service.NewChargingSessionService(sessionRepo),
		export:   service.NewExportService(eventRepo, sessionRepo),
	}

	if len(os.Args) < 2 {
		usage()
		return errors.New("missing command")
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "add-event":
		return a.addEvent(ctx, args)
	case "list-events":
		return a.listEvents(ctx, args)
	case "delete-event":
		return a.deleteEvent(ctx, args)
	case "add-session":
		return a.addSession(ctx, args)
	case "list-sessions":
		return a.listSessions(ctx, args)
	case "suggest-card":
		return a.suggestCard(ctx, args)
	case "export":
		return a.exportCSV(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: chargelog <command> [flags]

commands:
  add-event      record a travel event
  list-events    list travel events (paginated)
  delete-event   delete a travel event without linked sessions
  add-session    record a charging session
  list-sessions  list charging sessions (paginated)
  suggest-card   suggest a charge card provider from history
  export         write a CSV export (sessions or events)`)
}

func (a *app) addEvent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-event", flag.ExitOnError)
	name := fs.String("name", "", "event name (required)")
	desc := fs.String("description", "", "free-text description")
	start := fs.String("start", dates.Format(time.Now()), "start date (dd.MM.yyyy)")
	costs := fs.Float64("initial-costs", 0, "initial costs")
	fs.Parse(args)

	startDate, err := dates.Parse(*start)
	if err != nil {
		return err
	}

	event, err := a.events.Create(ctx, domain.TravelEvent{
		Name:         *name,
		Description:  *desc,
		StartDate:    startDate,
		InitialCosts: *costs,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created travel event %s\n", event.ID)
	return nil
}

func (a *app) listEvents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list-events", flag.ExitOnError)
	page := fs.Int("page", 0, "zero-based page index")
	all := fs.Bool("all", false, "list every event, ignoring pagination")
	fs.Parse(args)

	var (
		events  []domain.TravelEvent
		hasNext bool
		err     error
	)
	if *all {
		events, err = a.events.List(ctx)
	} else {
		events, hasNext, err = a.events.ListPage(ctx, domain.NewPageParams(*page, a.cfg.PageSize))
	}
	if err != nil {
		return err
	}

	for _, e := range events {
		totalCost, err := a.sessions.TotalCostByTravelEvent(ctx, e.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  %s  initial %.2f  charging %.2f\n",
			e.ID, dates.Format(e.StartDate), e.Name, e.InitialCosts, totalCost)
	}
	if hasNext {
		fmt.Printf("more: chargelog list-events -page %d\n", *page+1)
	}
	return nil
}

func (a *app) deleteEvent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-event", flag.ExitOnError)
	id := fs.String("id", "", "travel event id (required)")
	fs.Parse(args)

	eventID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid event id: %w", err)
	}
	if err := a.events.Delete(ctx, eventID); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

func (a *app) addSession(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-session", flag.ExitOnError)
	date := fs.String("date", dates.Format(time.Now()), "session date (dd.MM.yyyy)")
	provider := fs.String("provider", "", "station provider (required)")
	location := fs.String("location", "", "location (required)")
	energy := fs.Float64("energy", 0, "energy charged in kWh")
	cost := fs.Float64("cost", 0, "total cost")
	card := fs.String("card", "", "charge card provider")
	eventID := fs.String("event", "", "travel event id to link (optional)")
	fs.Parse(args)

	sessionDate, err := dates.Parse(*date)
	if err != nil {
		return err
	}

	session := domain.ChargingSession{
		Date:               sessionDate,
		StationProvider:    *provider,
		Location:           *location,
		EnergyCharged:      *energy,
		TotalCost:          *cost,
		ChargeCardProvider: *card,
	}
	if *eventID != "" {
		id, err := uuid.Parse(*eventID)
		if err != nil {
			return fmt.Errorf("invalid event id: %w", err)
		}
		session.TravelEventID = &id
	}

	created, err := a.sessions.Create(ctx, session)
	if err != nil {
		return err
	}
	fmt.Printf("created charging session %s\n", created.ID)
	return nil
}

func (a *app) listSessions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list-sessions", flag.ExitOnError)
	page := fs.Int("page", 0, "zero-based page index")
	eventID := fs.String("event", "", "only sessions linked to this travel event")
	fs.Parse(args)

	params := domain.NewPageParams(*page, a.cfg.PageSize)

	var (
		sessions []domain.ChargingSession
		hasNext  bool
		err      error
	)
	if *eventID != "" {
		id, parseErr := uuid.Parse(*eventID)
		if parseErr != nil {
			return fmt.Errorf("invalid event id: %w", parseErr)
		}
		sessions, hasNext, err = a.sessions.ListPageByTravelEvent(ctx, id, params)
	} else {
		sessions, hasNext, err = a.sessions.ListPage(ctx, params)
	}
	if err != nil {
		return err
	}

	for _, row := range service.BuildSessionRows(sessions) {
		fmt.Printf("%s  %s  %s  %g kWh  %g  (%g/kWh)\n",
			row.Date, row.StationProvider, row.Location, row.EnergyKwh, row.Cost, row.CostPerKwh)
	}
	if hasNext {
		fmt.Printf("more: chargelog list-sessions -page %d\n", *page+1)
	}
	return nil
}

func (a *app) suggestCard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("suggest-card", flag.ExitOnError)
	input := fs.String("input", "", "partial charge card provider name")
	fs.Parse(args)

	match, ok, err := a.sessions.SuggestChargeCard(ctx, *input)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no match")
		return nil
	}
	fmt.Println(match)
	return nil
}

// exportCSV writes the chosen export to a timestamped file in the configured
// export directory and prints its path. Handing the file to a share target
// is outside this program.
func (a *app) exportCSV(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	kind := fs.String("kind", "sessions", `what to export: "sessions" or "events"`)
	fs.Parse(args)

	var (
		data []byte
		name string
		err  error
	)
	switch *kind {
	case "sessions":
		rows, rowsErr := a.export.SessionRows(ctx)
		if rowsErr != nil {
			return rowsErr
		}
		data, err = service.SessionRowsCSV(rows)
		name = fmt.Sprintf("charging_sessions_%d.csv", time.Now().UnixMilli())
	case "events":
		rows, rowsErr := a.export.EventRows(ctx)
		if rowsErr != nil {
			return rowsErr
		}
		data, err = service.EventRowsCSV(rows)
		name = fmt.Sprintf("travel_events_%d.csv", time.Now().UnixMilli())
	default:
		return fmt.Errorf("unknown export kind %q", *kind)
	}
	if err != nil {
		return err
	}

	path := filepath.Join(a.cfg.ExportDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	slog.Info("export written", "path", path, "bytes", len(data))
	fmt.Println(path)
	return nil
}
