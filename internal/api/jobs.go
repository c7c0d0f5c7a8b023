package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/marufujisaki/car-control-cli/internal/model"
)

// The backend overloads GET /jobs/{id}: the path segment is either a user id
// or a vehicle uuid depending on the view. Both wrappers are kept so call
// sites say what they mean.

// ListUserJobs returns every job recorded for the user, or nil when the
// read failed (already logged).
func (c *Client) ListUserJobs(ctx context.Context, userID string) []model.Job {
	var out []model.Job
	if !c.getList(ctx, "/jobs/"+url.PathEscape(userID), &out) {
		return nil
	}
	return out
}

// ListVehicleJobs returns the jobs recorded for one vehicle, or nil when
// the read failed (already logged).
func (c *Client) ListVehicleJobs(ctx context.Context, vehicleUUID string) []model.Job {
	var out []model.Job
	if !c.getList(ctx, "/jobs/"+url.PathEscape(vehicleUUID), &out) {
		return nil
	}
	return out
}

// CreateJob records a new maintenance job with its parts.
func (c *Client) CreateJob(ctx context.Context, req model.JobCreateRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/jobs", req, nil)
}

// UpdateJob replaces the job; parts carrying ids are updated, parts without
// ids are inserted by the backend.
func (c *Client) UpdateJob(ctx context.Context, id int64, req model.JobUpdateRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/jobs/"+strconv.FormatInt(id, 10), req, nil)
}

// DeleteJob removes the job and its parts.
func (c *Client) DeleteJob(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/jobs/"+strconv.FormatInt(id, 10), nil, nil)
}
