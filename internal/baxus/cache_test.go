// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package baxus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/BAXUSNFT/bob/internal/models"
)

// countingFetcher records calls and serves a scripted response.
type countingFetcher struct {
	calls   int
	bottles []models.OwnedBottle
	err     error
}

func (f *countingFetcher) UserBottles(_ context.Context, _ string) ([]models.OwnedBottle, error) {
	f.calls++
	return f.bottles, f.err
}

func TestCachedClient_CachesByUsername(t *testing.T) {
	t.Parallel()

	fetcher := &countingFetcher{bottles: []models.OwnedBottle{{ID: 1}}}
	c := NewCachedClient(fetcher, 8, time.Minute, zerolog.Nop())

	for i := 0; i < 3; i++ {
		bottles, err := c.UserBottles(context.Background(), "CarrieBaxus")
		if err != nil {
			t.Fatalf("UserBottles() error = %v", err)
		}
		if len(bottles) != 1 {
			t.Fatalf("UserBottles() returned %d bottles, want 1", len(bottles))
		}
	}

	if fetcher.calls != 1 {
		t.Errorf("upstream called %d times, want 1", fetcher.calls)
	}

	// Same user, different casing and whitespace, still one upstream call.
	if _, err := c.UserBottles(context.Background(), "  carriebaxus "); err != nil {
		t.Fatalf("UserBottles() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("upstream called %d times after normalized lookup, want 1", fetcher.calls)
	}
}

func TestCachedClient_CachesEmptyCollections(t *testing.T) {
	t.Parallel()

	fetcher := &countingFetcher{}
	c := NewCachedClient(fetcher, 8, time.Minute, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := c.UserBottles(context.Background(), "newuser"); err != nil {
			t.Fatalf("UserBottles() error = %v", err)
		}
	}

	if fetcher.calls != 1 {
		t.Errorf("upstream called %d times for an empty collection, want 1", fetcher.calls)
	}
}

func TestCachedClient_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	fetcher := &countingFetcher{err: errors.New("boom")}
	c := NewCachedClient(fetcher, 8, time.Minute, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := c.UserBottles(context.Background(), "flaky"); err == nil {
			t.Fatal("UserBottles() error = nil, want error")
		}
	}

	if fetcher.calls != 2 {
		t.Errorf("upstream called %d times, want 2 (errors must not be cached)", fetcher.calls)
	}
}

func TestCachedClient_EmptyUsernamePassesThrough(t *testing.T) {
	t.Parallel()

	fetcher := &countingFetcher{err: errors.New("username is required")}
	c := NewCachedClient(fetcher, 8, time.Minute, zerolog.Nop())

	if _, err := c.UserBottles(context.Background(), "  "); err == nil {
		t.Error("UserBottles(blank) = nil error, want upstream error")
	}
	if fetcher.calls != 1 {
		t.Errorf("upstream called %d times, want 1", fetcher.calls)
	}
}

func TestCachedClient_Invalidate(t *testing.T) {
	t.Parallel()

	fetcher := &countingFetcher{bottles: []models.OwnedBottle{{ID: 1}}}
	c := NewCachedClient(fetcher, 8, time.Minute, zerolog.Nop())

	if _, err := c.UserBottles(context.Background(), "someone"); err != nil {
		t.Fatal(err)
	}
	c.Invalidate("Someone")
	if _, err := c.UserBottles(context.Background(), "someone"); err != nil {
		t.Fatal(err)
	}

	if fetcher.calls != 2 {
		t.Errorf("upstream called %d times after invalidation, want 2", fetcher.calls)
	}
}
