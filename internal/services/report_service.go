package services

import (
	"context"
	"time"

	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/storage"
)

// reportService builds read-only income/expense summaries.
type reportService struct {
	gw storage.Gateway
}

// NewReportService creates a new ReportServicer.
func NewReportService(gw storage.Gateway) ReportServicer {
	return &reportService{gw: gw}
}

// MonthlyReport summarizes the given calendar month
func (s *reportService) MonthlyReport(ctx context.Context, userID string, year, month int) (*MonthlyReport, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidReportDate
	}

	start, end := models.MonthBounds(year, time.Month(month))
	totals, err := s.totals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return &MonthlyReport{Month: month, Year: year, Totals: totals}, nil
}

// YearlyReport summarizes January 1st through December 31st of year
func (s *reportService) YearlyReport(ctx context.Context, userID string, year int) (*YearlyReport, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	start, end := models.YearBounds(year)
	totals, err := s.totals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return &YearlyReport{Year: year, Totals: totals}, nil
}

func (s *reportService) totals(ctx context.Context, userID string, start, end time.Time) (Totals, error) {
	txns, err := s.gw.Transactions().FindByUserIDAndDateRange(ctx, userID, start, end)
	if err != nil {
		return Totals{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summarize(txns), nil
}

func validateYear(year int) error {
	if year < 1 || year > 9999 {
		return apperrors.WithMessage(apperrors.ErrInvalidReportDate, "Year must be between 1 and 9999")
	}
	return nil
}
