package view

import (
	"fmt"
	"io"

	"github.com/marufujisaki/car-control-cli/internal/model"
)

// RenderVehicles writes one card per vehicle: header line with the category
// tag, then year/color/plate, then the last-update line.
func RenderVehicles(w io.Writer, vehicles []model.Vehicle) {
	if len(vehicles) == 0 {
		fmt.Fprintln(w, "No vehicles found. Add one with \"carctl vehicle-add\".")
		return
	}
	for _, v := range vehicles {
		fmt.Fprintf(w, "[%s] %s %s (id %s)\n", v.Category, v.Make, v.Model, v.ID)
		fmt.Fprintf(w, "    %d %s · %s\n", v.Year, v.Color, v.LicensePlate)
		last := v.LastUpdate
		if last == "" {
			last = "not yet"
		}
		fmt.Fprintf(w, "    last update: %s\n", last)
	}
}
