package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dan9191/stripe-report/internal/models"
	"github.com/sirupsen/logrus"
)

// Validation errors returned by Aggregate before any external call is made.
var (
	ErrNoAccounts      = errors.New("at least one account id is required")
	ErrInvalidDate     = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidRange    = errors.New("start date cannot be after end date")
	ErrInvalidTimezone = errors.New("unknown timezone")
)

const dayFormat = "2006-01-02"

// PaymentsAPI is the contract the engine requires from the payments API
// collaborator. ListEvents may return partial data alongside an error when a
// page request fails mid-listing.
type PaymentsAPI interface {
	GetAccount(ctx context.Context, accountID string) (*models.AccountInfo, error)
	ListAccounts(ctx context.Context) ([]models.AccountInfo, error)
	ListEvents(ctx context.Context, eventType models.EventType, accountID string, from, to int64) ([]models.RawEvent, error)
}

// Service builds multi-account daily transaction reports
type Service struct {
	api     PaymentsAPI
	log     *logrus.Logger
	workers int
}

// NewService initializes a new report service. workers bounds how many
// accounts are processed concurrently; 1 means strictly sequential.
func NewService(api PaymentsAPI, log *logrus.Logger, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{api: api, log: log, workers: workers}
}

// ListAccounts returns metadata for every connected account visible to the
// credential the service was built with.
func (s *Service) ListAccounts(ctx context.Context) ([]models.AccountInfo, error) {
	return s.api.ListAccounts(ctx)
}

// Aggregate builds the daily summary report for the given accounts over the
// inclusive calendar date range, bucketing events by day in the given IANA
// timezone.
//
// Inaccessible accounts and truncated event listings do not fail the report;
// they are skipped and recorded in the returned Failures list. A report with
// empty Rows and non-empty Failures indicates upstream trouble rather than a
// quiet period.
func (s *Service) Aggregate(ctx context.Context, accountIDs []string, startDate, endDate, timezone string) (*models.MultiAccountReport, error) {
	start, end, loc, err := validateRequest(accountIDs, startDate, endDate, timezone)
	if err != nil {
		return nil, err
	}

	results := make([]accountResult, len(accountIDs))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, accountID := range accountIDs {
		wg.Add(1)
		go func(i int, accountID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = s.buildAccount(ctx, accountID, start, end, loc)
		}(i, accountID)
	}
	wg.Wait()

	report := &models.MultiAccountReport{
		Rows:     []models.DailySummary{},
		Accounts: []models.AccountInfo{},
	}
	for _, res := range results {
		if res.info != nil {
			report.Accounts = append(report.Accounts, *res.info)
		}
		report.Rows = append(report.Rows, res.rows...)
		report.Failures = append(report.Failures, res.failures...)
	}

	// Deterministic final pass: date descending. YYYY-MM-DD strings compare
	// chronologically; row order within one date is not guaranteed to callers.
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Date > report.Rows[j].Date
	})

	s.log.Infof("Aggregated %d rows for %d/%d accounts (%s..%s %s)",
		len(report.Rows), len(report.Accounts), len(accountIDs), startDate, endDate, timezone)
	return report, nil
}

// validateRequest checks all request parameters up front and resolves the
// calendar boundaries in the requested timezone.
func validateRequest(accountIDs []string, startDate, endDate, timezone string) (time.Time, time.Time, *time.Location, error) {
	if len(accountIDs) == 0 {
		return time.Time{}, time.Time{}, nil, ErrNoAccounts
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, timezone)
	}
	start, err := time.ParseInLocation(dayFormat, startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: %s", ErrInvalidDate, startDate)
	}
	end, err := time.ParseInLocation(dayFormat, endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: %s", ErrInvalidDate, endDate)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, nil, ErrInvalidRange
	}
	return start, end, loc, nil
}
