// Package vcs is the client side of the version-control server's REST
// surface: querying a workspace's pending conflicts, submitting resolutions
// and downloading versioned item content.
package vcs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resolvo/internal/model"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

type Client interface {
	QueryConflicts(ctx context.Context, workspace, owner string) ([]model.Conflict, error)
	Resolve(ctx context.Context, workspace, owner string, req model.ResolveRequest) (model.ResolveResponse, error)

	// GetContent returns "" without error when the item has no content at
	// that version.
	GetContent(ctx context.Context, itemID int64, version int) (string, error)
}

type RestClient struct {
	http *resty.Client
}

// NewRestClient builds a client for one server. A nil token means anonymous
// requests; otherwise every call carries the bearer token.
func NewRestClient(serverURL string, token *oauth2.Token) *RestClient {
	base := http.DefaultClient
	if token != nil {
		base = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(token))
	}

	cli := resty.NewWithClient(base).
		SetBaseURL(strings.TrimRight(serverURL, "/")).
		SetTimeout(30 * time.Second)

	return &RestClient{http: cli}
}

func (c *RestClient) QueryConflicts(ctx context.Context, workspace, owner string) ([]model.Conflict, error) {
	var conflicts []model.Conflict
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("owner", owner).
		SetResult(&conflicts).
		Get("/api/workspaces/" + url.PathEscape(workspace) + "/conflicts")
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to query conflicts: server returned %s", resp.Status())
	}

	return conflicts, nil
}

func (c *RestClient) Resolve(ctx context.Context, workspace, owner string, req model.ResolveRequest) (model.ResolveResponse, error) {
	var out model.ResolveResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("owner", owner).
		SetBody(req).
		SetResult(&out).
		Post("/api/workspaces/" + url.PathEscape(workspace) + "/resolve")
	if err != nil {
		return model.ResolveResponse{}, fmt.Errorf("failed to submit resolution: %w", err)
	}
	if resp.IsError() {
		return model.ResolveResponse{}, fmt.Errorf("failed to submit resolution: server returned %s", resp.Status())
	}

	return out, nil
}

func (c *RestClient) GetContent(ctx context.Context, itemID int64, version int) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/items/%d/versions/%d/content", itemID, version))
	if err != nil {
		return "", fmt.Errorf("failed to download content: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNoContent,
		resp.StatusCode() == http.StatusNotFound:
		return "", nil
	case resp.IsError():
		return "", fmt.Errorf("failed to download content: server returned %s", resp.Status())
	}

	return string(resp.Body()), nil
}
