// Command carctl is a terminal client for the car-control
// vehicle-maintenance service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/marufujisaki/car-control-cli/internal/api"
	"github.com/marufujisaki/car-control-cli/internal/config"
	"github.com/marufujisaki/car-control-cli/internal/errs"
	"github.com/marufujisaki/car-control-cli/internal/idp"
	"github.com/marufujisaki/car-control-cli/internal/model"
	"github.com/marufujisaki/car-control-cli/internal/session"
	"github.com/marufujisaki/car-control-cli/internal/view"
)

func usage() {
	fmt.Fprintf(os.Stderr, `carctl
Usage:
  carctl [-config file] [-server URL] <cmd> [args]

Commands:
  version
  login                                        (browser sign-in, saves session)
  logout
  whoami
  vehicles                                     (list your vehicles)
  vehicle-add  -make M -model M -year N [-color C] [-plate P] [-category TAG]
  vehicle-edit -id ID -make M -model M -year N [-color C] [-plate P] [-category TAG]
  vehicle-rm   -id ID [-yes]
  jobs         [-vehicle UUID]                 (job table; defaults to all your jobs)
  job-add      -vehicle UUID -name N -date D -labor COST [-obs TEXT] -part SPEC [-part SPEC ...]
  job-edit     -vehicle UUID -id ID [-name N] [-date D] [-labor COST] [-obs TEXT] [-part SPEC ...]
  job-rm       -id ID [-yes]

A part SPEC is "name|type|cost|observations"; type is one of
repair, maintenance, replacement, inspection.
`)
	os.Exit(2)
}

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads config and session, then dispatches subcommands.
func main() {
	cfgPath := flag.String("config", "", "config file (defaults to the user config dir)")
	server := flag.String("server", "", "backend base URL (overrides config)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	if cmd == "version" {
		fmt.Printf("carctl %s (%s)\n", version, buildDate)
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}
	if *server != "" {
		cfg.ServerURL = *server
	}

	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	store := session.New(config.Dir(), logger)
	client := api.New(cfg.ServerURL, logger)
	client.SetToken(store.Token())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {

	case "login":
		// interactive; the short timeout above doesn't apply
		lctx, lcancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer lcancel()
		if err := store.Login(lctx, tokenSource(cfg, logger), client); err != nil {
			fail(err)
		}
		fmt.Printf("logged in as %s <%s>\n", store.User().Name, store.User().Email)

	case "logout":
		store.Logout()
		fmt.Println("ok")

	case "whoami":
		u := requireUser(store)
		fmt.Printf("%s <%s> (id %s)\n", u.Name, u.Email, u.ID)

	case "vehicles":
		u := requireUser(store)
		view.RenderVehicles(os.Stdout, client.ListVehicles(ctx, u.ID))

	case "vehicle-add":
		u := requireUser(store)
		p, err := parseVehicleFlags(flag.Args()[1:], nil)
		if err != nil {
			fail(err)
		}
		p.UserID = u.ID
		if err := client.CreateVehicle(ctx, *p); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "vehicle-edit":
		u := requireUser(store)
		var id string
		p, err := parseVehicleFlags(flag.Args()[1:], &id)
		if err != nil {
			fail(err)
		}
		p.UserID = u.ID
		if err := client.UpdateVehicle(ctx, id, *p); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "vehicle-rm":
		requireUser(store)
		fs := flag.NewFlagSet("vehicle-rm", flag.ExitOnError)
		id := fs.String("id", "", "vehicle id")
		yes := fs.Bool("yes", false, "skip confirmation")
		_ = fs.Parse(flag.Args()[1:])
		if *id == "" {
			fail(fmt.Errorf("%w: need -id", errs.ErrValidation))
		}
		if !*yes && !confirm(fmt.Sprintf("Delete vehicle %s? This cannot be undone.", *id)) {
			return
		}
		if err := client.DeleteVehicle(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "jobs":
		u := requireUser(store)
		fs := flag.NewFlagSet("jobs", flag.ExitOnError)
		veh := fs.String("vehicle", "", "vehicle uuid (defaults to all your jobs)")
		_ = fs.Parse(flag.Args()[1:])
		var jobs []model.Job
		if *veh != "" {
			jobs = client.ListVehicleJobs(ctx, *veh)
		} else {
			jobs = client.ListUserJobs(ctx, u.ID)
		}
		view.RenderJobTable(os.Stdout, jobs)

	case "job-add":
		requireUser(store)
		cmdJobAdd(ctx, client, flag.Args()[1:], logger)

	case "job-edit":
		requireUser(store)
		cmdJobEdit(ctx, client, flag.Args()[1:], logger)

	case "job-rm":
		requireUser(store)
		fs := flag.NewFlagSet("job-rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "job id")
		yes := fs.Bool("yes", false, "skip confirmation")
		_ = fs.Parse(flag.Args()[1:])
		if *id == 0 {
			fail(fmt.Errorf("%w: need -id", errs.ErrValidation))
		}
		if !*yes && !confirm(fmt.Sprintf("Delete job %d? This cannot be undone.", *id)) {
			return
		}
		if err := client.DeleteJob(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	default:
		usage()
	}
}

// ---- helpers ----

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}

// tokenSource picks the identity provider: a token file when configured,
// otherwise the interactive browser flow.
func tokenSource(cfg config.Config, logger *zap.Logger) session.TokenSource {
	if cfg.IDTokenFile != "" {
		return idp.FileToken{Path: cfg.IDTokenFile}
	}
	return &idp.Loopback{SignInURL: cfg.SignInURL, Addr: cfg.CallbackAddr, Log: logger}
}

// requireUser is the auth gate: commands touching resources insist on a
// signed-in user and point at the login command otherwise.
func requireUser(store *session.Store) *model.User {
	if u := store.User(); u != nil {
		return u
	}
	fail(errs.ErrNoSession)
	return nil
}

// parseVehicleFlags parses the shared vehicle-add/vehicle-edit flag set.
// id is non-nil for edits, which additionally require -id.
func parseVehicleFlags(args []string, id *string) (*model.VehiclePayload, error) {
	name := "vehicle-add"
	if id != nil {
		name = "vehicle-edit"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	if id != nil {
		fs.StringVar(id, "id", "", "vehicle id")
	}
	mk := fs.String("make", "", "make")
	mdl := fs.String("model", "", "model")
	year := fs.Int("year", 0, "year")
	color := fs.String("color", "", "color")
	plate := fs.String("plate", "", "license plate")
	category := fs.String("category", string(model.CategoryBlue), "card color tag")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if id != nil && *id == "" {
		return nil, fmt.Errorf("%w: need -id", errs.ErrValidation)
	}
	if *mk == "" || *mdl == "" || *year == 0 {
		return nil, fmt.Errorf("%w: need -make, -model and -year", errs.ErrValidation)
	}
	tag := model.CategoryTag(*category)
	if !tag.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", errs.ErrValidation, *category)
	}
	return &model.VehiclePayload{
		Make:         *mk,
		Model:        *mdl,
		Year:         *year,
		Color:        *color,
		LicensePlate: *plate,
		Category:     tag,
	}, nil
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	var answer string
	_, _ = fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
