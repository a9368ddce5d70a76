// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package baxus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestClient_UserBottles(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bar/user/carriebaxus" {
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "product": {"id": 100, "name": "Buffalo Trace", "brand": "Buffalo Trace", "spirit": "Bourbon", "proof": 90, "average_msrp": 30}},
			{"id": 2, "product": null}
		]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())

	bottles, err := c.UserBottles(context.Background(), "carriebaxus")
	if err != nil {
		t.Fatalf("UserBottles() error = %v", err)
	}
	if len(bottles) != 2 {
		t.Fatalf("UserBottles() returned %d bottles, want 2", len(bottles))
	}

	p := bottles[0].Product
	if p == nil || p.Name != "Buffalo Trace" || p.Spirit != "Bourbon" {
		t.Errorf("first product = %+v", p)
	}
	if p.Proof == nil || *p.Proof != 90 {
		t.Errorf("first product proof = %v, want 90", p.Proof)
	}
	if bottles[1].Product != nil {
		t.Errorf("second product = %+v, want nil", bottles[1].Product)
	}
}

func TestClient_UserBottles_EmptyUsername(t *testing.T) {
	t.Parallel()

	c := NewClient(DefaultConfig(), zerolog.Nop())
	if _, err := c.UserBottles(context.Background(), ""); err == nil {
		t.Error("UserBottles(\"\") = nil error, want error")
	}
}

func TestClient_UserBottles_NotFoundYieldsEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())

	bottles, err := c.UserBottles(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("UserBottles() error = %v", err)
	}
	if bottles != nil {
		t.Errorf("UserBottles() = %v, want nil for a missing profile", bottles)
	}
}

func TestClient_UserBottles_MalformedPayloadYieldsEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())

	bottles, err := c.UserBottles(context.Background(), "someone")
	if err != nil {
		t.Fatalf("UserBottles() error = %v", err)
	}
	if bottles != nil {
		t.Errorf("UserBottles() = %v, want nil for a malformed payload", bottles)
	}
}

func TestClient_UserBottles_EscapesUsername(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	if _, err := c.UserBottles(context.Background(), "a/b"); err != nil {
		t.Fatalf("UserBottles() error = %v", err)
	}
	if gotPath != "/api/bar/user/a%2Fb" {
		t.Errorf("request path = %q, want escaped username", gotPath)
	}
}
