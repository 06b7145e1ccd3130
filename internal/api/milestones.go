package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetMilestones fetches milestones matching the given options.
func (c *Client) GetMilestones(ctx context.Context, opts GetMilestonesOptions) (*MilestonesResponse, error) {
	query := url.Values{}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	if opts.RelatedEventTicker != "" {
		query.Set("related_event_ticker", opts.RelatedEventTicker)
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var resp MilestonesResponse
	if err := c.get(ctx, "/milestones", query, &resp); err != nil {
		return nil, fmt.Errorf("get milestones: %w", err)
	}

	return &resp, nil
}

// GetMilestone fetches a single milestone by id.
func (c *Client) GetMilestone(ctx context.Context, id string) (*APIMilestone, error) {
	var resp SingleMilestoneResponse
	if err := c.get(ctx, "/milestones/"+id, nil, &resp); err != nil {
		return nil, fmt.Errorf("get milestone %s: %w", id, err)
	}
	return &resp.Milestone, nil
}

// GetLiveData fetches the live-data payload for a milestone.
func (c *Client) GetLiveData(ctx context.Context, liveType, milestoneID string) (*LiveDataResponse, error) {
	var resp LiveDataResponse
	path := "/live_data/" + liveType + "/milestone/" + milestoneID
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get live data %s/%s: %w", liveType, milestoneID, err)
	}
	return &resp, nil
}
