package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finance/internal/models"
	"finance/internal/pagination"
	"finance/internal/patch"
	"finance/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required,gte=0.01" swaggertype:"string" example:"25.50"`
	Date         string          `json:"date" binding:"required,iso_date,past_or_present_date" example:"2024-03-01"`
	CategoryName string          `json:"category_name" binding:"required,max=100"`
	Description  string          `json:"description" binding:"max=500"`
}

// UpdateTransactionRequest represents a partial update. Omitted and null
// fields are left unchanged; the date cannot be changed.
type UpdateTransactionRequest struct {
	Amount       patch.Field[decimal.Decimal] `json:"amount" swaggertype:"string"`
	CategoryName patch.Field[string]          `json:"category_name" swaggertype:"string"`
	Description  patch.Field[string]          `json:"description" swaggertype:"string"`
}

// TransactionListQuery holds the optional filters of GET /transactions.
type TransactionListQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,iso_date"`
	EndDate   string `form:"end_date" binding:"omitempty,iso_date"`
	Category  string `form:"category"`
	pagination.PageRequest
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense; the type follows the category
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} services.TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req.Amount, date, req.CategoryName, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionCreate, "TRANSACTION", txn.ID, c.ClientIP(),
		map[string]any{"amount": txn.Amount.String(), "category_name": txn.CategoryName, "date": txn.Date})

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// GetTransactions lists the user's transactions
// @Summary     List transactions
// @Description List transactions newest first, optionally filtered by date range and category. Passing page or page_size returns a paginated envelope.
// @Tags        transactions
// @Produce     json
// @Security    SessionCookie
// @Param       start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       category   query string false "Category name"
// @Param       page       query int    false "Page number"
// @Param       page_size  query int    false "Items per page (max 100)"
// @Success     200 {object} map[string][]services.TransactionResponse "Transactions, or a pagination envelope when paging"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query TransactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter := services.TransactionFilter{}
	if filter.StartDate, err = parseQueryDate(c, "start_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.EndDate, err = parseQueryDate(c, "end_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if name := strings.TrimSpace(query.Category); name != "" {
		filter.CategoryName = &name
	}

	if !query.Requested() {
		txns, err := h.transactionService.ListTransactions(c.Request.Context(), userID, filter)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": txns})
		return
	}

	page, err := h.transactionService.ListTransactionsPage(c.Request.Context(), userID, filter, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetTransaction returns a single transaction
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Security    SessionCookie
// @Param       id path string true "Transaction ID"
// @Success     200 {object} services.TransactionResponse "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// UpdateTransaction applies a partial update
// @Summary     Update transaction
// @Description Change amount, category or description. A blank category name is ignored.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} services.TransactionResponse "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Transaction or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, id, services.TransactionPatch{
		Amount:       req.Amount,
		CategoryName: req.CategoryName,
		Description:  req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionUpdate, "TRANSACTION", txn.ID, c.ClientIP(),
		map[string]any{"amount": txn.Amount.String(), "category_name": txn.CategoryName, "description": txn.Description})

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// DeleteTransaction deletes a transaction
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    SessionCookie
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Owned by another user"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionDelete, "TRANSACTION", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
