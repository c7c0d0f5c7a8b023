package main

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/marufujisaki/car-control-cli/internal/errs"
	"github.com/marufujisaki/car-control-cli/internal/jobform"
	"github.com/marufujisaki/car-control-cli/internal/model"
)

func Test_parseVehicleFlags_Add(t *testing.T) {
	p, err := parseVehicleFlags([]string{
		"-make", "Toyota", "-model", "Hilux", "-year", "2019",
		"-color", "red", "-plate", "ABC-123", "-category", "green",
	}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Make != "Toyota" || p.Year != 2019 || p.Category != model.CategoryGreen {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func Test_parseVehicleFlags_Validation(t *testing.T) {
	if _, err := parseVehicleFlags([]string{"-make", "Toyota"}, nil); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if _, err := parseVehicleFlags([]string{
		"-make", "T", "-model", "H", "-year", "2019", "-category", "mauve",
	}, nil); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error for bad category, got %v", err)
	}
	var id string
	if _, err := parseVehicleFlags([]string{
		"-make", "T", "-model", "H", "-year", "2019",
	}, &id); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("edit without -id should fail, got %v", err)
	}
}

func Test_parseCostText(t *testing.T) {
	if _, err := parseCostText("12.50"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("decimal point must be rejected by the mask")
	}
	if _, err := parseCostText("12a"); err == nil {
		t.Fatalf("letters must be rejected")
	}
	if v, err := parseCostText(""); err != nil || v != "" {
		t.Fatalf("empty passes the mask: v=%q err=%v", v, err)
	}
	if v, err := parseCostText("120"); err != nil || v != "120" {
		t.Fatalf("digits pass the mask: v=%q err=%v", v, err)
	}
}

func Test_applyPartSpec(t *testing.T) {
	f := jobform.New(zap.NewNop())
	if err := applyPartSpec(f, 0, "Oil filter|replacement|35|full swap"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	p := f.Parts[0]
	if p.Name != "Oil filter" || p.Type != "replacement" || p.Cost != 35 || p.Observations != "full swap" {
		t.Fatalf("unexpected part: %+v", p)
	}

	// observations are optional, empty cost coerces to zero
	if err := applyPartSpec(f, 0, "Battery|inspection|"); err != nil {
		t.Fatalf("apply without obs: %v", err)
	}
	if f.Parts[0].Cost != 0 {
		t.Fatalf("empty cost should be zero, got %v", f.Parts[0].Cost)
	}

	for _, bad := range []string{
		"only-name",
		"name|badtype|10",
		"|repair|10",
		"name|repair|ten",
	} {
		if err := applyPartSpec(f, 0, bad); err == nil {
			t.Fatalf("spec %q should fail", bad)
		}
	}
}

func Test_setParts_ReplacesList(t *testing.T) {
	f := jobform.New(zap.NewNop())
	f.AddPart()
	f.AddPart()

	err := setParts(f, []string{"Pads|replacement|150", "Discs|replacement|90|partial"})
	if err != nil {
		t.Fatalf("setParts: %v", err)
	}
	if len(f.Parts) != 2 {
		t.Fatalf("want 2 parts, got %d", len(f.Parts))
	}
	if f.Parts[0].Name != "Pads" || f.Parts[1].Name != "Discs" {
		t.Fatalf("order lost: %+v", f.Parts)
	}

	// empty specs leave the form untouched
	if err := setParts(f, nil); err != nil || len(f.Parts) != 2 {
		t.Fatalf("no-op expected: err=%v parts=%d", err, len(f.Parts))
	}
}

func Test_setDate(t *testing.T) {
	f := jobform.New(zap.NewNop())
	if err := setDate(f, "24/03/2025"); err != nil {
		t.Fatalf("setDate: %v", err)
	}
	if f.Date != "2025-03-24" {
		t.Fatalf("date not normalized: %q", f.Date)
	}
	if err := setDate(f, "someday"); err == nil {
		t.Fatalf("bad date should fail")
	}
	if err := setDate(f, ""); err != nil || f.Date != "" {
		t.Fatalf("empty clears: err=%v date=%q", err, f.Date)
	}
}

func Test_setLabor(t *testing.T) {
	f := jobform.New(zap.NewNop())
	if err := setLabor(f, "350"); err != nil || f.LaborCost != 350 {
		t.Fatalf("labor: err=%v cost=%v", err, f.LaborCost)
	}
	if err := setLabor(f, ""); err != nil || f.LaborCost != 0 {
		t.Fatalf("empty labor coerces to zero: err=%v cost=%v", err, f.LaborCost)
	}
	if err := setLabor(f, "12.5"); err == nil {
		t.Fatalf("mask should reject decimals")
	}
}
