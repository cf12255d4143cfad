package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/pagination"
	"finance/internal/storage"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	gw  storage.Gateway
	now func() time.Time
}

// NewTransactionService creates a new TransactionServicer. now decides which
// calendar day counts as today.
func NewTransactionService(gw storage.Gateway, now func() time.Time) TransactionServicer {
	return &transactionService{gw: gw, now: now}
}

// CreateTransaction records an income or expense against a category
func (s *transactionService) CreateTransaction(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
	date time.Time,
	categoryName string,
	description string,
) (*TransactionResponse, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	day := models.DateOf(date)
	if day.After(models.DateOf(s.now())) {
		return nil, apperrors.ErrFutureDate
	}

	txn := &models.Transaction{
		UserID:      userID,
		Amount:      amount,
		Date:        day,
		Description: description,
	}

	err := s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		category, err := findCategoryByName(ctx, tx, userID, categoryName)
		if err != nil {
			return err
		}
		txn.BindCategory(category)

		if err := tx.Transactions().Save(ctx, txn); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := newTransactionResponse(txn)
	return &resp, nil
}

// ListTransactions returns the user's transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]TransactionResponse, error) {
	query, err := s.buildQuery(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	txns, err := s.gw.Transactions().FindByFilters(ctx, userID, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return toTransactionResponses(txns), nil
}

// ListTransactionsPage is ListTransactions with offset pagination.
func (s *transactionService) ListTransactionsPage(ctx context.Context, userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[TransactionResponse], error) {
	page.Defaults()

	query, err := s.buildQuery(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	totalItems, err := s.gw.Transactions().CountByFilters(ctx, userID, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	query.Page = &page
	txns, err := s.gw.Transactions().FindByFilters(ctx, userID, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(toTransactionResponses(txns), page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *transactionService) buildQuery(ctx context.Context, userID string, filter TransactionFilter) (storage.TransactionQuery, error) {
	var query storage.TransactionQuery
	if filter.StartDate != nil {
		start := models.DateOf(*filter.StartDate)
		query.StartDate = &start
	}
	if filter.EndDate != nil {
		end := models.DateOf(*filter.EndDate)
		query.EndDate = &end
	}
	if filter.CategoryName != nil {
		category, err := findCategoryByName(ctx, s.gw, userID, *filter.CategoryName)
		if err != nil {
			return query, err
		}
		query.CategoryID = &category.ID
	}
	return query, nil
}

// GetTransactionByID returns a single transaction owned by the user.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, id string) (*TransactionResponse, error) {
	txn, err := findOwnedTransaction(ctx, s.gw, userID, id)
	if err != nil {
		return nil, err
	}
	resp := newTransactionResponse(txn)
	return &resp, nil
}

// UpdateTransaction applies the fields present in changes. A new category
// re-derives the transaction's type and category name.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, id string, changes TransactionPatch) (*TransactionResponse, error) {
	if amount, ok := changes.Amount.Get(); ok {
		if err := validateAmount(amount); err != nil {
			return nil, err
		}
	}

	var txn *models.Transaction
	err := s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		var err error
		txn, err = findOwnedTransaction(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		if amount, ok := changes.Amount.Get(); ok {
			txn.Amount = amount
		}
		if name, ok := changes.CategoryName.Get(); ok && strings.TrimSpace(name) != "" {
			category, err := findCategoryByName(ctx, tx, userID, name)
			if err != nil {
				return err
			}
			txn.BindCategory(category)
		}
		if description, ok := changes.Description.Get(); ok {
			txn.Description = description
		}

		if err := tx.Transactions().Save(ctx, txn); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := newTransactionResponse(txn)
	return &resp, nil
}

// DeleteTransaction removes a transaction owned by the user.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		txn, err := findOwnedTransaction(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Transactions().Delete(ctx, txn); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "Amount must have at most 2 decimal places")
	}
	return nil
}

func findCategoryByName(ctx context.Context, gw storage.Gateway, userID, name string) (*models.Category, error) {
	category, err := gw.Categories().FindByNameAndUserID(ctx, name, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.WithMessagef(apperrors.ErrCategoryNotFound, "Category not found with name: %s", name)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// findOwnedTransaction distinguishes a missing transaction from one that
// belongs to somebody else.
func findOwnedTransaction(ctx context.Context, gw storage.Gateway, userID, id string) (*models.Transaction, error) {
	txn, err := gw.Transactions().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.WithMessagef(apperrors.ErrTransactionNotFound, "Transaction not found with id: %s", id)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrTransactionForbidden
	}
	return txn, nil
}

func toTransactionResponses(txns []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, newTransactionResponse(&txns[i]))
	}
	return out
}
