package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/marufujisaki/car-control-cli/internal/model"
)

// ListVehicles returns the vehicles owned by the user, or nil when the read
// failed (already logged).
func (c *Client) ListVehicles(ctx context.Context, userID string) []model.Vehicle {
	var out []model.Vehicle
	if !c.getList(ctx, "/vehicles/"+url.PathEscape(userID), &out) {
		return nil
	}
	return out
}

// CreateVehicle registers a new vehicle.
func (c *Client) CreateVehicle(ctx context.Context, p model.VehiclePayload) error {
	return c.doJSON(ctx, http.MethodPost, "/vehicles", p, nil)
}

// UpdateVehicle replaces the vehicle's fields in place.
func (c *Client) UpdateVehicle(ctx context.Context, id string, p model.VehiclePayload) error {
	return c.doJSON(ctx, http.MethodPut, "/vehicles/"+url.PathEscape(id), p, nil)
}

// DeleteVehicle removes the vehicle by identifier. Dependent jobs are a
// backend concern; no cascading happens client-side.
func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/vehicles/"+url.PathEscape(id), nil, nil)
}
