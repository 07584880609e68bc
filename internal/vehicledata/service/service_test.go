package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"autotradespot_backend/internal/vehicledata/client"
	"autotradespot_backend/internal/vehicledata/transport"
	"autotradespot_backend/platform/logger"
)

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-App-Token") != "token" {
			t.Errorf("missing app token header")
		}
		if r.URL.Query().Get("kenteken") != "AB123C" {
			t.Errorf("unexpected kenteken %q", r.URL.Query().Get("kenteken"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newService(token string, endpoints ...string) *Service {
	return New(client.New(token, 100*time.Millisecond), token, endpoints, logger.New("test"))
}

func TestLookupMergesRecordsWithLaterEndpointWinning(t *testing.T) {
	a := jsonServer(t, http.StatusOK, `[{"kenteken":"AB123C","merk":"VW"}]`)
	b := jsonServer(t, http.StatusOK, `[{"kenteken":"AB123C","voertuigsoort":"Personenauto"}]`)

	result := newService("token", a.URL, b.URL).Lookup(context.Background(), "AB123C")
	if !result.OK {
		t.Fatalf("expected success, got %+v", result)
	}
	for _, key := range []string{"kenteken", "merk", "voertuigsoort"} {
		if _, ok := result.Data[key]; !ok {
			t.Fatalf("expected merged key %q in %v", key, result.Data)
		}
	}

	c := jsonServer(t, http.StatusOK, `[{"merk":"Audi"}]`)
	result = newService("token", a.URL, c.URL).Lookup(context.Background(), "AB123C")
	if result.Data["merk"] != "Audi" {
		t.Fatalf("expected second source to win, got %v", result.Data["merk"])
	}
}

func TestLookupWithoutTokenFailsWithoutCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	result := newService("", srv.URL).Lookup(context.Background(), "AB123C")
	if result.OK || result.Failure != transport.FailureMissingCredentials {
		t.Fatalf("expected missing credentials, got %+v", result)
	}
	if called {
		t.Fatalf("expected no outbound call without a token")
	}
	if !strings.Contains(result.Message, "temporarily unavailable") {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestLookupClassifiesFailures(t *testing.T) {
	ok := jsonServer(t, http.StatusOK, `[{"merk":"VW"}]`)

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer slow.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	cases := []struct {
		name      string
		endpoints []string
		want      transport.FailureKind
		message   string
	}{
		{"timeout", []string{slow.URL}, transport.FailureTimeout, "taking too long"},
		{"connection", []string{closedURL}, transport.FailureConnection, "Could not connect"},
		{"http status", []string{ok.URL, jsonServer(t, http.StatusInternalServerError, `oops`).URL}, transport.FailureHTTPStatus, "returned an error"},
		{"invalid json", []string{jsonServer(t, http.StatusOK, `{not json`).URL}, transport.FailureInvalidJSON, "invalid data"},
		{"no data", []string{ok.URL, jsonServer(t, http.StatusOK, `[]`).URL}, transport.FailureNoData, "No data found for license plate 'AB123C'"},
		{"bad endpoint", []string{"://bad"}, transport.FailureUnexpected, "unexpected error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := newService("token", tc.endpoints...).Lookup(context.Background(), "AB123C")
			if result.OK {
				t.Fatalf("expected failure")
			}
			if result.Failure != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, result.Failure)
			}
			if !strings.Contains(result.Message, tc.message) {
				t.Fatalf("expected message containing %q, got %q", tc.message, result.Message)
			}
		})
	}
}

type errFetcher struct{}

func (errFetcher) Fetch(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestLookupUntypedErrorIsUnexpected(t *testing.T) {
	svc := New(errFetcher{}, "token", []string{"http://example.invalid"}, logger.New("test"))
	result := svc.Lookup(context.Background(), "AB123C")
	if result.Failure != transport.FailureUnexpected {
		t.Fatalf("expected unexpected failure, got %+v", result)
	}
}

func TestMapRelevantNormalisesRegistryValues(t *testing.T) {
	data := map[string]any{
		"merk":                   "VOLKSWAGEN",
		"handelsbenaming":        "GOLF",
		"eerste_kleur":           "GRIJS",
		"aantal_deuren":          "5",
		"aantal_zitplaatsen":     "5",
		"datum_eerste_toelating": "20150312",
		"brandstof_omschrijving": "Benzine",
		"inrichting":             "hatchback",
		"voertuigsoort":          "Personenauto",
	}

	got := MapRelevant("AB123C", data)
	want := map[string]string{
		"licence":          "AB123C",
		"make":             "Volkswagen",
		"model":            "Golf",
		"color":            "Grijs",
		"num_doors":        "5",
		"num_seats":        "5",
		"manufacture_year": "2015",
		"fuel_type":        "B",
		"body_type":        "C",
	}
	for key, value := range want {
		if got[key] != value {
			t.Fatalf("%s: expected %q, got %q", key, value, got[key])
		}
	}
	if _, ok := got["voertuigsoort"]; ok {
		t.Fatalf("expected irrelevant fields to be dropped")
	}
}

func TestMapRelevantUnknownFuelIsOther(t *testing.T) {
	got := MapRelevant("AB123C", map[string]any{"brandstof_omschrijving": "Kernfusie"})
	if got["fuel_type"] != "O" {
		t.Fatalf("expected O, got %q", got["fuel_type"])
	}
}
