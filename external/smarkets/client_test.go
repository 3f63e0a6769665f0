package smarkets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matchscreener/matchscreener/internal/usecase"
)

func TestFetchEventsNormalizesNamesAndURLs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/events/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "football_match" {
			t.Errorf("type param = %q, want football_match", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events":[
			{"id":"100","name":"Arsenal vs Chelsea","start_datetime":"2026-08-30T15:00:00Z","state":"upcoming","full_slug":"/sport/football/leagues/england-premier-league/arsenal-vs-chelsea"},
			{"id":"101","name":"TBD","state":"new"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	events, err := client.FetchEvents(context.Background(), "2026-08-30", 0)
	if err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	first := events[0]
	if first.Home != "Arsenal" || first.Away != "Chelsea" {
		t.Fatalf("name split = %q / %q", first.Home, first.Away)
	}
	if want := "https://smarkets.com/event/100/sport/football/leagues/england-premier-league/arsenal-vs-chelsea"; first.EventURL != want {
		t.Fatalf("event url = %q, want %q", first.EventURL, want)
	}

	second := events[1]
	if second.Home != "" || second.Away != "" {
		t.Fatalf("unsplittable name produced teams %q / %q", second.Home, second.Away)
	}
	if second.EventURL != "" {
		t.Fatalf("event without slug has url %q", second.EventURL)
	}
}

func TestEnrichCompetitorsOverlaysNames(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/competitors/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"competitors":[
			{"id":"1","event_id":"100","type":"home","name":"Arsenal FC"},
			{"id":"2","event_id":"100","type":"away","name":"Chelsea FC"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	events := client.EnrichCompetitors(context.Background(), []usecase.MarketEvent{
		{ID: "100", Home: "Arsenal", Away: "Chelsea"},
		{ID: "101", Home: "Lyon", Away: "Nice"},
	})

	if events[0].Home != "Arsenal FC" || events[0].Away != "Chelsea FC" {
		t.Fatalf("enriched teams = %q / %q", events[0].Home, events[0].Away)
	}
	if events[1].Home != "Lyon" || events[1].Away != "Nice" {
		t.Fatalf("unmatched event was altered: %q / %q", events[1].Home, events[1].Away)
	}
}

func TestEnrichCompetitorsKeepsEventsOnFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	events := client.EnrichCompetitors(context.Background(), []usecase.MarketEvent{{ID: "100", Home: "Arsenal", Away: "Chelsea"}})
	if events[0].Home != "Arsenal" || events[0].Away != "Chelsea" {
		t.Fatalf("failed enrichment altered teams: %q / %q", events[0].Home, events[0].Away)
	}
}

func TestFetchEventDetailWrappedAndFlatShapes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(r.URL.Path, "/events/100/") {
			_, _ = w.Write([]byte(`{"event":{"id":"100","name":"Arsenal vs Chelsea","full_slug":"/sport/football/leagues/england-premier-league/x"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"101","name":"Lyon vs Nice"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	wrapped, err := client.FetchEventDetail(context.Background(), "100")
	if err != nil {
		t.Fatalf("FetchEventDetail wrapped: %v", err)
	}
	if wrapped.Home != "Arsenal" {
		t.Fatalf("wrapped home = %q", wrapped.Home)
	}

	flat, err := client.FetchEventDetail(context.Background(), "101")
	if err != nil {
		t.Fatalf("FetchEventDetail flat: %v", err)
	}
	if flat.Away != "Nice" {
		t.Fatalf("flat away = %q", flat.Away)
	}
}
