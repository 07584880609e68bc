// Package service provides the licence plate lookup against RDW open data.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"autotradespot_backend/internal/vehicledata/client"
	"autotradespot_backend/internal/vehicledata/transport"
	"autotradespot_backend/platform/logger"
)

const serviceName = "rdw"

var failureMessages = map[transport.FailureKind]string{
	transport.FailureMissingCredentials: "The license plate lookup service is temporarily unavailable. " +
		"Please try again later or enter the car details manually.",
	transport.FailureTimeout: "The license plate lookup service is taking too long. " +
		"Please try again later or enter the car details manually.",
	transport.FailureConnection: "Could not connect to the license plate lookup service. " +
		"Please try again later or enter the car details manually.",
	transport.FailureHTTPStatus: "The license plate lookup service returned an error. " +
		"Please try again later or enter the car details manually.",
	transport.FailureInvalidJSON: "The license plate lookup service returned invalid data. " +
		"Please try again later or enter the car details manually.",
	transport.FailureUnexpected: "An unexpected error occurred while looking up the license plate. " +
		"Please try again later or enter the car details manually.",
}

// Fetcher is the raw endpoint access the service needs.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint, plate string) ([]byte, error)
}

// Service queries every configured endpoint once, in order, and merges the
// first record of each response. Later endpoints win on key conflicts.
type Service struct {
	fetcher   Fetcher
	appToken  string
	endpoints []string
	log       *logger.Logger
}

// New creates a lookup service.
func New(fetcher Fetcher, appToken string, endpoints []string, log *logger.Logger) *Service {
	return &Service{
		fetcher:   fetcher,
		appToken:  appToken,
		endpoints: endpoints,
		log:       log,
	}
}

// Lookup fetches and merges vehicle data for a cleaned plate.
func (s *Service) Lookup(ctx context.Context, plate string) (result transport.LookupResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("vehicle lookup panicked", slog.String("plate", plate), slog.Any("panic", r))
			result = failure(transport.FailureUnexpected)
		}
	}()

	if s.appToken == "" {
		s.log.Warn("CARDATA_API_APP_TOKEN not configured")
		return failure(transport.FailureMissingCredentials)
	}
	if len(s.endpoints) == 0 {
		s.log.Error("no vehicle data endpoints configured")
		return failure(transport.FailureUnexpected)
	}

	bodies := make([][]byte, 0, len(s.endpoints))
	for _, endpoint := range s.endpoints {
		body, err := s.fetcher.Fetch(ctx, endpoint, plate)
		if err != nil {
			kind := transport.FailureUnexpected
			var fetchErr *client.FetchError
			if errors.As(err, &fetchErr) {
				kind = fetchErr.Kind
			}
			s.log.WithContext(ctx).ExternalCallFailed(serviceName, endpoint, string(kind), err)
			return failure(kind)
		}
		bodies = append(bodies, body)
	}

	records := make([][]map[string]any, 0, len(bodies))
	for i, body := range bodies {
		var rows []map[string]any
		if err := json.Unmarshal(body, &rows); err != nil {
			s.log.WithContext(ctx).ExternalCallFailed(serviceName, s.endpoints[i], string(transport.FailureInvalidJSON), err)
			return failure(transport.FailureInvalidJSON)
		}
		records = append(records, rows)
	}

	for _, rows := range records {
		if len(rows) == 0 {
			s.log.Info("no vehicle data found", slog.String("plate", plate))
			return transport.LookupResult{
				Failure: transport.FailureNoData,
				Message: fmt.Sprintf("No data found for license plate '%s'. Please make sure the license plate is correct.", plate),
			}
		}
	}

	merged := make(map[string]any)
	for _, rows := range records {
		for key, value := range rows[0] {
			merged[key] = value
		}
	}
	return transport.LookupResult{OK: true, Data: merged}
}

func failure(kind transport.FailureKind) transport.LookupResult {
	return transport.LookupResult{Failure: kind, Message: failureMessages[kind]}
}
