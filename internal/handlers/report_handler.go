package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "finance/internal/errors"
	"finance/internal/services"
)

// ReportHandler serves monthly and yearly reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetMonthlyReport returns the report for one month
// @Summary     Monthly report
// @Description Income and expenses per category for one calendar month
// @Tags        reports
// @Produce     json
// @Security    SessionCookie
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} services.MonthlyReport "Report"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/monthly/{year}/{month} [get]
func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parsePathInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parsePathInt(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if month < 1 || month > 12 {
		respondWithError(c, apperrors.ErrInvalidReportDate)
		return
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetYearlyReport returns the report for one year
// @Summary     Yearly report
// @Description Income and expenses per category for one calendar year
// @Tags        reports
// @Produce     json
// @Security    SessionCookie
// @Param       year path int true "Year"
// @Success     200 {object} services.YearlyReport "Report"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/yearly/{year} [get]
func (h *ReportHandler) GetYearlyReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parsePathInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.YearlyReport(c.Request.Context(), userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func parsePathInt(c *gin.Context, param string) (int, error) {
	n, err := strconv.Atoi(c.Param(param))
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return n, nil
}
