// cmd/carctl/jobs.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/marufujisaki/car-control-cli/internal/api"
	"github.com/marufujisaki/car-control-cli/internal/dates"
	"github.com/marufujisaki/car-control-cli/internal/errs"
	"github.com/marufujisaki/car-control-cli/internal/jobform"
	"github.com/marufujisaki/car-control-cli/internal/model"
)

// partSpecs collects repeated -part flags.
type partSpecs []string

func (p *partSpecs) String() string     { return strings.Join(*p, "; ") }
func (p *partSpecs) Set(v string) error { *p = append(*p, v); return nil }

// cost inputs are masked to digits, mirroring the form's input filter
var reDigits = regexp.MustCompile(`^\d*$`)

// parseCostText applies the digits-only mask before the form's own
// empty-means-zero coercion.
func parseCostText(v string) (string, error) {
	if !reDigits.MatchString(v) {
		return "", fmt.Errorf("%w: cost %q: digits only", errs.ErrValidation, v)
	}
	return v, nil
}

// applyPartSpec fills part row i of the form from "name|type|cost|observations".
func applyPartSpec(f *jobform.Form, i int, spec string) error {
	fields := strings.SplitN(spec, "|", 4)
	if len(fields) < 3 {
		return fmt.Errorf("%w: part %q: want name|type|cost[|observations]", errs.ErrValidation, spec)
	}
	name, typ := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
	if name == "" {
		return fmt.Errorf("%w: part %q: empty name", errs.ErrValidation, spec)
	}
	if !model.PartType(typ).Valid() {
		return fmt.Errorf("%w: part %q: unknown type %q", errs.ErrValidation, spec, typ)
	}
	cost, err := parseCostText(strings.TrimSpace(fields[2]))
	if err != nil {
		return err
	}
	if err := f.UpdatePart(i, "name", name); err != nil {
		return err
	}
	if err := f.UpdatePart(i, "type", typ); err != nil {
		return err
	}
	if err := f.UpdatePart(i, "cost", cost); err != nil {
		return err
	}
	if len(fields) == 4 {
		return f.UpdatePart(i, "observations", strings.TrimSpace(fields[3]))
	}
	return nil
}

// setParts replaces the form's part list with the given specs. The form
// keeps its one-blank-part initial state when specs is empty.
func setParts(f *jobform.Form, specs []string) error {
	if len(specs) == 0 {
		return nil
	}
	f.Parts = f.Parts[:0]
	f.Parts = append(f.Parts, model.Part{})
	for i, spec := range specs {
		if i > 0 {
			f.AddPart()
		}
		if err := applyPartSpec(f, i, spec); err != nil {
			return err
		}
	}
	return nil
}

func setLabor(f *jobform.Form, v string) error {
	text, err := parseCostText(v)
	if err != nil {
		return err
	}
	if text == "" {
		f.LaborCost = 0
		return nil
	}
	cost, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return err
	}
	f.LaborCost = cost
	return nil
}

func setDate(f *jobform.Form, v string) error {
	if v == "" {
		f.ClearDate()
		return nil
	}
	t, err := dates.Parse(v)
	if err != nil {
		return fmt.Errorf("%w: date %q", err, v)
	}
	f.SelectDate(t)
	return nil
}

func cmdJobAdd(ctx context.Context, client *api.Client, args []string, log *zap.Logger) {
	fs := flag.NewFlagSet("job-add", flag.ExitOnError)
	veh := fs.String("vehicle", "", "vehicle uuid")
	name := fs.String("name", "", "job name")
	date := fs.String("date", "", "date (DD/MM/YYYY or YYYY-MM-DD)")
	labor := fs.String("labor", "", "labor cost")
	obs := fs.String("obs", "", "general observations")
	var parts partSpecs
	fs.Var(&parts, "part", "part spec name|type|cost|observations (repeatable)")
	_ = fs.Parse(args)

	if *veh == "" || *name == "" || len(parts) == 0 {
		fail(fmt.Errorf("%w: need -vehicle, -name and at least one -part", errs.ErrValidation))
	}

	form := jobform.New(log)
	form.Name = *name
	form.GeneralObservations = *obs
	if err := setDate(form, *date); err != nil {
		fail(err)
	}
	if err := setLabor(form, *labor); err != nil {
		fail(err)
	}
	if err := setParts(form, parts); err != nil {
		fail(err)
	}

	if err := form.Submit(ctx, *veh, client); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func cmdJobEdit(ctx context.Context, client *api.Client, args []string, log *zap.Logger) {
	fs := flag.NewFlagSet("job-edit", flag.ExitOnError)
	veh := fs.String("vehicle", "", "vehicle uuid")
	id := fs.Int64("id", 0, "job id")
	name := fs.String("name", "", "job name")
	date := fs.String("date", "", "date (DD/MM/YYYY or YYYY-MM-DD)")
	labor := fs.String("labor", "", "labor cost")
	obs := fs.String("obs", "", "general observations")
	var parts partSpecs
	fs.Var(&parts, "part", "part spec name|type|cost|observations (replaces all parts)")
	_ = fs.Parse(args)

	if *veh == "" || *id == 0 {
		fail(fmt.Errorf("%w: need -vehicle and -id", errs.ErrValidation))
	}

	jobs := client.ListVehicleJobs(ctx, *veh)
	if jobs == nil {
		fail(errors.New("could not load jobs for vehicle"))
	}
	form := jobform.New(log)
	found := false
	for _, j := range jobs {
		if j.ID != nil && *j.ID == *id {
			form.LoadJob(j)
			found = true
			break
		}
	}
	if !found {
		fail(fmt.Errorf("job %d: %w", *id, errs.ErrNotFound))
	}

	// only flags the user actually passed override the loaded state
	var flagErr error
	fs.Visit(func(fl *flag.Flag) {
		if flagErr != nil {
			return
		}
		switch fl.Name {
		case "name":
			form.Name = *name
		case "obs":
			form.GeneralObservations = *obs
		case "date":
			flagErr = setDate(form, *date)
		case "labor":
			flagErr = setLabor(form, *labor)
		case "part":
			flagErr = setParts(form, parts)
		}
	})
	if flagErr != nil {
		fail(flagErr)
	}

	if err := form.Submit(ctx, *veh, client); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}
