package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"launchboard/internal/domain/idea"
	"launchboard/internal/domain/profile"
	"launchboard/internal/pkg/token"

	"github.com/google/uuid"
)

func storedIdea(owner string, status idea.Status, age time.Duration) idea.Idea {
	return idea.Idea{
		ID:        uuid.New(),
		OwnerID:   owner,
		Title:     "Idea by " + owner,
		Status:    status,
		CreatedAt: time.Now().UTC().Add(-age),
	}
}

func TestListIdeas_ActiveOnlyNewestFirst(t *testing.T) {
	repo := newFakeIdeaRepo()
	owner := profile.Public{ID: "user_1", DisplayName: "Ann", Role: profile.RoleFounder}
	newer := storedIdea("user_1", idea.StatusActive, time.Hour)
	older := storedIdea("user_1", idea.StatusActive, 3*time.Hour)
	repo.put(newer, owner)
	repo.put(older, owner)
	repo.put(storedIdea("user_1", idea.StatusArchived, 2*time.Hour), owner)

	app := newTestApp(t, repo, newFakeProfileRepo(), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ideas", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Data []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Owner  struct {
				DisplayName string `json:"display_name"`
			} `json:"owner"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("expected exactly the 2 active ideas, got %d", len(body.Data))
	}
	if body.Data[0].ID != newer.ID.String() || body.Data[1].ID != older.ID.String() {
		t.Fatalf("not newest first: %v", body.Data)
	}
	for _, item := range body.Data {
		if item.Status != "active" {
			t.Fatalf("non-active idea in listing: %s", item.Status)
		}
		if item.Owner.DisplayName != "Ann" {
			t.Fatalf("owner fields not populated: %+v", item)
		}
	}
}

func TestListIdeas_EmptyStore(t *testing.T) {
	app := newTestApp(t, newFakeIdeaRepo(), newFakeProfileRepo(), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ideas", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var body struct {
		Data *[]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data == nil {
		t.Fatalf("data must be an empty list, not null")
	}
	if len(*body.Data) != 0 {
		t.Fatalf("expected empty list, got %v", *body.Data)
	}
}

func TestCreateIdea_RequiresSession(t *testing.T) {
	app := newTestApp(t, newFakeIdeaRepo(), newFakeProfileRepo(), nil)

	req := httptest.NewRequest(http.MethodPost, "/ideas", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCreateIdea_IgnoresClientSuppliedOwner(t *testing.T) {
	repo := newFakeIdeaRepo()
	app := newTestApp(t, repo, newFakeProfileRepo(), nil)

	// The payload claims another owner; the verified identity must win.
	payload := `{"title":"Mine","owner_id":"user_victim","user_clerk_id":"user_victim"}`
	req := httptest.NewRequest(http.MethodPost, "/ideas", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, token.Identity{ID: "user_real"}))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		OwnerID string `json:"owner_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.OwnerID != "user_real" {
		t.Fatalf("owner taken from client payload: %s", body.OwnerID)
	}
}

func TestDeleteIdea_Lifecycle(t *testing.T) {
	repo := newFakeIdeaRepo()
	target := storedIdea("user_owner", idea.StatusActive, time.Hour)
	repo.put(target, profile.Public{ID: "user_owner"})
	app := newTestApp(t, repo, newFakeProfileRepo(), nil)

	path := "/ideas/" + target.ID.String()

	// No session.
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	// Authenticated non-owner.
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, token.Identity{ID: "user_intruder"}))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if repo.byID[target.ID].Status != idea.StatusActive {
		t.Fatalf("forbidden delete mutated the row")
	}

	// Owner.
	req = httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, token.Identity{ID: "user_owner"}))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if repo.byID[target.ID].Status != idea.StatusDeleted {
		t.Fatalf("row not soft deleted")
	}

	// Repeat delete conflicts.
	req = httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, token.Identity{ID: "user_owner"}))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on repeat delete, got %d", resp.StatusCode)
	}
}

func TestDeleteIdea_AllowListedAdmin(t *testing.T) {
	repo := newFakeIdeaRepo()
	target := storedIdea("user_owner", idea.StatusActive, time.Hour)
	repo.put(target, profile.Public{ID: "user_owner"})
	app := newTestApp(t, repo, newFakeProfileRepo(), map[string]struct{}{"user_admin": {}})

	req := httptest.NewRequest(http.MethodDelete, "/ideas/"+target.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, token.Identity{ID: "user_admin"}))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if repo.byID[target.ID].Status != idea.StatusDeleted {
		t.Fatalf("admin delete did not apply")
	}
}

func TestGetIdea_DeletedIsNotFound(t *testing.T) {
	repo := newFakeIdeaRepo()
	target := storedIdea("user_owner", idea.StatusDeleted, time.Hour)
	repo.put(target, profile.Public{ID: "user_owner"})
	app := newTestApp(t, repo, newFakeProfileRepo(), nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ideas/"+target.ID.String(), nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestExpiredSessionResolvesAnonymous(t *testing.T) {
	app := newTestApp(t, newFakeIdeaRepo(), newFakeProfileRepo(), nil)

	req := httptest.NewRequest(http.MethodPost, "/ideas", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	// Bad credential downgrades to anonymous, which the gate rejects.
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
