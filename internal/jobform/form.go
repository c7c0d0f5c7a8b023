// Package jobform manages the editable state of one maintenance job: the
// scalar fields, the ordered part list, and the create-versus-edit mode
// distinguished by the presence of a job identifier.
package jobform

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/marufujisaki/car-control-cli/internal/dates"
	"github.com/marufujisaki/car-control-cli/internal/errs"
	"github.com/marufujisaki/car-control-cli/internal/model"
)

// Submitter performs the network call the form delegates to on submission.
// *api.Client satisfies it.
type Submitter interface {
	CreateJob(ctx context.Context, req model.JobCreateRequest) error
	UpdateJob(ctx context.Context, id int64, req model.JobUpdateRequest) error
}

// Form is the job form state. Scalar fields are assigned directly; the part
// list is mutated through AddPart/RemovePart/UpdatePart so ordering and
// coercion rules stay in one place.
type Form struct {
	Name                string
	Date                string // canonical YYYY-MM-DD text for submission
	LaborCost           float64
	GeneralObservations string
	Parts               []model.Part

	selected   *time.Time // date-picker state, kept alongside the text form
	editingID  *int64
	submitting bool

	log *zap.Logger
}

// New returns a form in its initial state: one blank part, create mode.
func New(log *zap.Logger) *Form {
	return &Form{Parts: []model.Part{{}}, log: log}
}

// EditingID returns the job identifier being edited, or nil in create mode.
func (f *Form) EditingID() *int64 { return f.editingID }

// SelectedDate returns the picked calendar day, or nil when none is set.
func (f *Form) SelectedDate() *time.Time { return f.selected }

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool { return f.submitting }

// AddPart appends one blank part row.
func (f *Form) AddPart() {
	f.Parts = append(f.Parts, model.Part{})
}

// RemovePart deletes the part at index i, preserving the order of the rest.
// Out-of-range indices are ignored. The one-part floor is a presentation
// guard; the form itself does not enforce it.
func (f *Form) RemovePart(i int) {
	if i < 0 || i >= len(f.Parts) {
		return
	}
	f.Parts = append(f.Parts[:i], f.Parts[i+1:]...)
}

// UpdatePart sets one field of the part at index i. The cost field is
// coerced from text (empty string means zero); every other field is stored
// as-is.
func (f *Form) UpdatePart(i int, field, value string) error {
	if i < 0 || i >= len(f.Parts) {
		return fmt.Errorf("%w: part index %d out of range", errs.ErrValidation, i)
	}
	p := &f.Parts[i]
	switch field {
	case "name":
		p.Name = value
	case "type":
		p.Type = value
	case "cost":
		if value == "" {
			p.Cost = 0
			return nil
		}
		cost, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: cost %q: %v", errs.ErrValidation, value, err)
		}
		p.Cost = cost
	case "observations":
		p.Observations = value
	default:
		return fmt.Errorf("%w: unknown part field %q", errs.ErrValidation, field)
	}
	return nil
}

// SelectDate picks a calendar day and normalizes the submission text.
func (f *Form) SelectDate(d time.Time) {
	day := d
	f.selected = &day
	f.Date = d.Format(dates.Wire)
}

// ClearDate unsets the picked day and the submission text.
func (f *Form) ClearDate() {
	f.selected = nil
	f.Date = ""
}

// LoadJob copies a persisted job into the form and switches to edit mode.
// An unparseable stored date is logged; the picker stays unset while the
// text field keeps the original string.
func (f *Form) LoadJob(job model.Job) {
	f.Name = job.Name
	f.Date = job.Date
	f.LaborCost = job.LaborCost
	f.GeneralObservations = job.GeneralObservations
	f.Parts = append([]model.Part(nil), job.Parts...)

	f.selected = nil
	if job.Date != "" {
		if t, err := dates.Parse(job.Date); err == nil {
			f.selected = &t
		} else {
			f.log.Error("invalid job date", zap.String("date", job.Date), zap.Error(err))
		}
	}
	f.editingID = job.ID
}

// Reset restores the initial empty state: one blank part, no editing
// identifier, no selected date.
func (f *Form) Reset() {
	f.Name = ""
	f.Date = ""
	f.LaborCost = 0
	f.GeneralObservations = ""
	f.Parts = []model.Part{{}}
	f.selected = nil
	f.editingID = nil
}

// Submit validates the form, builds the create or update payload and
// delegates to s. On success the form resets; on failure it stays populated
// so the user can fix and retry. The in-flight flag clears either way.
func (f *Form) Submit(ctx context.Context, ownerID string, s Submitter) error {
	if f.Date == "" {
		return fmt.Errorf("%w: please select a date", errs.ErrValidation)
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	var err error
	if f.editingID != nil {
		req := model.JobUpdateRequest{
			ID:                  *f.editingID,
			Name:                f.Name,
			Date:                f.Date,
			UserID:              ownerID,
			LaborCost:           f.LaborCost,
			GeneralObservations: f.GeneralObservations,
			Parts:               f.payloadParts(true),
		}
		err = s.UpdateJob(ctx, req.ID, req)
	} else {
		req := model.JobCreateRequest{
			Name:                f.Name,
			Date:                f.Date,
			UserID:              ownerID,
			LaborCost:           f.LaborCost,
			GeneralObservations: f.GeneralObservations,
			Parts:               f.payloadParts(false),
		}
		err = s.CreateJob(ctx, req)
	}
	if err != nil {
		f.log.Error("submit job", zap.Error(err))
		return err
	}

	f.Reset()
	return nil
}

// payloadParts maps form parts to wire parts. Identifiers ride along only
// on updates, so the backend can tell part updates from insertions.
func (f *Form) payloadParts(keepIDs bool) []model.PartPayload {
	out := make([]model.PartPayload, 0, len(f.Parts))
	for _, p := range f.Parts {
		pp := model.PartPayload{
			Name:         p.Name,
			Type:         p.Type,
			Cost:         p.Cost,
			Observations: p.Observations,
		}
		if keepIDs {
			pp.ID = p.ID
		}
		out = append(out, pp)
	}
	return out
}
