package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSafeReturnPath(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"/app", "/app"},
		{"%2Fapp%2Fadmin", "/app/admin"},
		{"/en/app/shipments?page=2", "/en/app/shipments?page=2"},
		{"//evil.example", "/app"},
		{"https://evil.example/", "/app"},
		{"", "/app"},
		{"%zz", "/app"},
	}

	for _, tc := range cases {
		if got := safeReturnPath(tc.raw); got != tc.want {
			t.Errorf("safeReturnPath(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestEnsureUser(t *testing.T) {
	var status int
	var gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ensure-user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	f := &Flow{apiBase: srv.URL, client: srv.Client()}

	status = http.StatusOK
	if err := f.ensureUser(context.Background(), "at-1", "Emil Ivanov", "emil@logipack.dev"); err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if gotAuth != "Bearer at-1" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["name"] != "Emil Ivanov" || gotBody["email"] != "emil@logipack.dev" {
		t.Errorf("unexpected body: %v", gotBody)
	}

	status = http.StatusConflict
	if err := f.ensureUser(context.Background(), "at", "n", "e"); !errors.Is(err, ErrAccountConflict) {
		t.Errorf("expected ErrAccountConflict, got %v", err)
	}

	status = http.StatusBadRequest
	if err := f.ensureUser(context.Background(), "at", "n", "e"); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}

	status = http.StatusInternalServerError
	if err := f.ensureUser(context.Background(), "at", "n", "e"); err == nil {
		t.Error("expected error on 500")
	}
}

func TestFetchRole(t *testing.T) {
	var status int
	var role string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(map[string]string{"role": role})
		}
	}))
	defer srv.Close()

	f := &Flow{apiBase: srv.URL, client: srv.Client()}

	status, role = http.StatusOK, "admin"
	got, err := f.fetchRole(context.Background(), "at-1")
	if err != nil || got != "admin" {
		t.Errorf("fetchRole = %q, %v; want admin, nil", got, err)
	}

	// Not yet provisioned: no role, no error.
	status = http.StatusNotFound
	got, err = f.fetchRole(context.Background(), "at-1")
	if err != nil || got != "" {
		t.Errorf("fetchRole on 404 = %q, %v; want empty, nil", got, err)
	}

	status = http.StatusBadGateway
	if _, err = f.fetchRole(context.Background(), "at-1"); err == nil {
		t.Error("expected error on 502")
	}
}
