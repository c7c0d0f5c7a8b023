// Package view renders collections for the terminal: the per-vehicle job
// table with its summary rows and grand total, and the vehicle card list.
package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/marufujisaki/car-control-cli/internal/dates"
	"github.com/marufujisaki/car-control-cli/internal/model"
)

// FormatCurrency renders an amount as a dollar-prefixed integer. Fractional
// cents are truncated, not rounded; a missing amount renders as a dash.
func FormatCurrency(amount *float64) string {
	if amount == nil {
		return "-"
	}
	return fmt.Sprintf("$%d", int64(*amount))
}

// FormatDate normalizes a stored date string for display, leaving it as-is
// when it matches no known layout.
func FormatDate(s string) string { return dates.Normalize(s) }

// Badge renders the zero-padded sequence badge shown on a job's summary row.
func Badge(id *int64) string {
	if id == nil {
		return "W000"
	}
	return fmt.Sprintf("W%03d", *id)
}

// SortJobsByDate orders jobs ascending by parsed date, in place and stably;
// undated or unparseable entries sort first.
func SortJobsByDate(jobs []model.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return parseOrZero(jobs[i].Date).Before(parseOrZero(jobs[j].Date))
	})
}

func parseOrZero(s string) time.Time {
	t, err := dates.Parse(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// GrandTotal sums the server-computed total cost of every job, treating a
// missing total as zero.
func GrandTotal(jobs []model.Job) float64 {
	var sum float64
	for _, j := range jobs {
		if j.TotalCost != nil {
			sum += *j.TotalCost
		}
	}
	return sum
}

// RenderJobTable writes the job table: per job, one row per part with the
// unit cost, then a summary row carrying the labor cost and total, then a
// blank spacer; a footer holds the grand total across jobs.
func RenderJobTable(w io.Writer, jobs []model.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs recorded. Create one with \"carctl job-add\".")
		return
	}

	sorted := append([]model.Job(nil), jobs...)
	SortJobsByDate(sorted)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Part", "Work Type", "Unit Cost", "Job Cost", "Observations"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, job := range sorted {
		for _, part := range job.Parts {
			cost := part.Cost
			table.Append([]string{
				FormatDate(job.Date),
				part.Name,
				part.Type,
				FormatCurrency(&cost),
				"-",
				part.Observations,
			})
		}

		labor := job.LaborCost
		var total float64
		if job.TotalCost != nil {
			total = *job.TotalCost
		}
		table.Append([]string{
			FormatDate(job.Date),
			Badge(job.ID) + " Job complete",
			job.Name,
			"-",
			FormatCurrency(&labor),
			"Total cost: " + FormatCurrency(&total),
		})

		// spacer between jobs
		table.Append([]string{"", "", "", "", "", ""})
	}

	grand := GrandTotal(sorted)
	table.SetFooter([]string{"", "", "", "Total of all jobs", FormatCurrency(&grand), ""})
	table.Render()
}
