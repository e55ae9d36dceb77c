package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aTrapDeer/portfolio/internal/models"
	"github.com/aTrapDeer/portfolio/internal/server"
	"github.com/aTrapDeer/portfolio/internal/store"
)

func newAPI(t *testing.T) (*Client, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	ts := httptest.NewServer(server.New(server.Config{Store: st}).Router())
	t.Cleanup(ts.Close)
	return New(ts.URL + "/"), st
}

func TestFetchPage(t *testing.T) {
	ctx := context.Background()
	c, st := newAPI(t)
	if _, err := st.CreateSkill(ctx, models.NewSkill{Name: "Go", Percentage: 90, ColorClass: "c"}); err != nil {
		t.Fatalf("create skill: %v", err)
	}
	if _, err := st.CreateProject(ctx, models.NewProject{Title: "Shop", Description: "d", Category: "web", ImageURL: "u", BgColorClass: "b", Technologies: []string{"Go"}}); err != nil {
		t.Fatalf("create project: %v", err)
	}

	page, err := c.FetchPage(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(page.Skills) != 1 || len(page.Projects) != 1 || page.Milestones == nil || len(page.Milestones) != 0 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Projects[0].Technologies[0] != "Go" {
		t.Fatalf("technologies lost: %+v", page.Projects[0])
	}

	web, err := c.ListProjectsByCategory(ctx, "web")
	if err != nil || len(web) != 1 {
		t.Fatalf("by category = %+v, %v", web, err)
	}
}

func TestSubmitContact(t *testing.T) {
	c, st := newAPI(t)
	msg, err := c.SubmitContact(context.Background(), models.NewContactMessage{
		Name: "Jo", Email: "jo@example.com", Subject: "Hi", Message: "Hello there, friend",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
	if _, ok, _ := st.GetContactMessage(context.Background(), msg.ID); !ok {
		t.Fatalf("message not stored")
	}
}

func TestSubmitContactValidationError(t *testing.T) {
	c, _ := newAPI(t)
	_, err := c.SubmitContact(context.Background(), models.NewContactMessage{
		Name: "Jo", Email: "not-an-email", Subject: "Hi", Message: "Hello there, friend",
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || len(apiErr.Errors) != 1 || apiErr.Errors[0].Field != "email" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestFetchPageFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/projects" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"An error occurred"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).FetchPage(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 APIError, got %v", err)
	}
}
