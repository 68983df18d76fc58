// Package analyzer fetches Wikipedia pageview rankings and cleans them into tables.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/log"

	"github.com/thesavant42/wikitop/internal/api"
	"github.com/thesavant42/wikitop/internal/models"
)

// TopSource is the remote ranking-data source
type TopSource interface {
	Top(ctx context.Context, project, access string, date civil.Date) (*models.TopResponse, error)
}

// RangePolicy decides what a range fetch does with a day that has no table
type RangePolicy int

const (
	// FailFast aborts the whole range on the first absent day
	FailFast RangePolicy = iota
	// SkipAbsent logs absent days and keeps going
	SkipAbsent
)

// String returns the policy name
func (p RangePolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case SkipAbsent:
		return "skip-absent"
	default:
		return "unknown"
	}
}

// AbsentDayError reports the day a fail-fast range fetch stopped at
type AbsentDayError struct {
	Date   civil.Date
	Reason models.AbsentReason
	Err    error
}

func (e *AbsentDayError) Error() string {
	return fmt.Sprintf("%s: %s: %v", models.FormatDate(e.Date), e.Reason, e.Err)
}

func (e *AbsentDayError) Unwrap() error {
	return e.Err
}

// Analyzer fetches rankings for the single supported locale
type Analyzer struct {
	locale models.Locale
	source TopSource
	logger *log.Logger
	policy RangePolicy
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithRangePolicy sets how FetchRange treats absent days
func WithRangePolicy(p RangePolicy) Option {
	return func(a *Analyzer) {
		a.policy = p
	}
}

// New creates an Analyzer. An unsupported language is logged and replaced
// with the supported one. logger may be nil.
func New(language string, source TopSource, logger *log.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	locale, overridden := models.ResolveLocale(language)
	if overridden {
		logger.Error("Only portuguese available, setting up to portuguese",
			"requested", language, "locale", locale.Code)
	}

	a := &Analyzer{
		locale: locale,
		source: source,
		logger: logger,
		policy: FailFast,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Locale returns the effective locale
func (a *Analyzer) Locale() models.Locale {
	return a.locale
}

// Policy returns the range policy in effect
func (a *Analyzer) Policy() RangePolicy {
	return a.policy
}

// FetchDate fetches and cleans the ranking for one day.
//
// When the source has no data for the day or throttles the request, the
// returned DayResult is absent with the matching reason and err is nil.
// Any other failure is returned as is.
func (a *Analyzer) FetchDate(ctx context.Context, date civil.Date, maxResults int) (models.DayResult, error) {
	maxResults = models.ClampLimit(maxResults)
	result := models.DayResult{Date: date}

	resp, err := a.source.Top(ctx, a.locale.Project, models.AccessAll, date)
	switch {
	case errors.Is(err, api.ErrDataNotLoaded):
		a.logger.Error("No data, or data not filled yet", "date", models.FormatDate(date), "error", err)
		result.Absent = models.AbsentNotLoaded
		return result, nil
	case errors.Is(err, api.ErrThrottled):
		a.logger.Error("Too many requests", "date", models.FormatDate(date), "error", err)
		result.Absent = models.AbsentThrottled
		return result, nil
	case err != nil:
		return result, err
	}

	raw, err := api.FirstItemArticles(resp)
	if err != nil {
		return result, fmt.Errorf("%s: %w", models.FormatDate(date), err)
	}

	cleaned, err := Clean(a.locale, models.RowsFromTop(raw, date))
	if err != nil {
		return result, err
	}

	if len(cleaned) > maxResults {
		cleaned = cleaned[:maxResults]
	}
	result.Table = cleaned
	return result, nil
}

// FetchRange fetches every day in order and concatenates the cleaned tables.
// Ranks stay per day. Absent days are handled according to the range policy.
func (a *Analyzer) FetchRange(ctx context.Context, dates []civil.Date, maxResultsPerDay int) (models.Table, error) {
	a.logger.Info("Started getting historical data", "days", len(dates), "policy", a.policy)

	out := make(models.Table, 0)
	for _, date := range dates {
		result, err := a.FetchDate(ctx, date, maxResultsPerDay)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", models.FormatDate(date), err)
		}

		if !result.OK() && a.policy == SkipAbsent {
			a.logger.Warn("Skipping day without data", "date", models.FormatDate(date), "reason", result.Absent)
			continue
		}

		cleaned, err := Clean(a.locale, result.Table)
		if err != nil {
			return nil, &AbsentDayError{Date: date, Reason: result.Absent, Err: err}
		}
		out = append(out, cleaned...)
	}

	a.logger.Info("Finished getting historical data", "days", len(dates), "rows", len(out))
	return out, nil
}
