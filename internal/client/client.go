// Package client calls the portfolio REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aTrapDeer/portfolio/internal/models"
	"github.com/aTrapDeer/portfolio/internal/schema"
)

// Client calls the portfolio API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
	Errors  []schema.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type envelope[T any] struct {
	Success bool                `json:"success"`
	Data    T                   `json:"data"`
	Message string              `json:"message"`
	Errors  []schema.FieldError `json:"errors"`
}

// New constructs a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Page is everything the portfolio page shows.
type Page struct {
	Skills     []models.Skill
	Projects   []models.Project
	Milestones []models.Milestone
}

// FetchPage loads skills, projects and milestones concurrently.
func (c *Client) FetchPage(ctx context.Context) (Page, error) {
	var p Page
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p.Skills, err = c.ListSkills(gctx)
		return err
	})
	g.Go(func() (err error) {
		p.Projects, err = c.ListProjects(gctx)
		return err
	})
	g.Go(func() (err error) {
		p.Milestones, err = c.ListMilestones(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Page{}, err
	}
	return p, nil
}

func (c *Client) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return get[[]models.Skill](ctx, c, "/api/skills")
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	return get[[]models.Project](ctx, c, "/api/projects")
}

func (c *Client) ListProjectsByCategory(ctx context.Context, category string) ([]models.Project, error) {
	return get[[]models.Project](ctx, c, "/api/projects/category/"+url.PathEscape(category))
}

func (c *Client) ListMilestones(ctx context.Context) ([]models.Milestone, error) {
	return get[[]models.Milestone](ctx, c, "/api/milestones")
}

// SubmitContact posts the contact form.
func (c *Client) SubmitContact(ctx context.Context, msg models.NewContactMessage) (models.ContactMessage, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return models.ContactMessage{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/contact", bytes.NewReader(body))
	if err != nil {
		return models.ContactMessage{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return do[models.ContactMessage](c, req)
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return do[T](c, req)
}

func do[T any](c *Client, req *http.Request) (T, error) {
	var env envelope[T]
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return env.Data, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		_ = json.NewDecoder(resp.Body).Decode(&env)
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		var zero T
		return zero, &APIError{Status: resp.StatusCode, Message: msg, Errors: env.Errors}
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return env.Data, fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return env.Data, nil
}
