package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Amount travels as a float for client convenience; it is
// rounded to two decimal places and stored as a fixed-point value.
type CreateTransactionRequest struct {
	Description string                 `json:"description" binding:"required,min=1,max=200"`
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Kind        models.TransactionKind `json:"kind" binding:"required,transaction_kind"`
	Category    string                 `json:"category" binding:"max=100"`
	OccurredOn  string                 `json:"occurred_on" binding:"required"`
	Note        string                 `json:"note" binding:"max=1000"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a new income or expense entry for the authenticated user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
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
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	occurredOn, err := parseDate(req.OccurredOn)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid occurred_on format, use YYYY-MM-DD or RFC3339"))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID,
		req.Description,
		decimal.NewFromFloat(req.Amount).Round(2),
		req.Kind,
		req.Category,
		occurredOn,
		req.Note,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// ListTransactions handles the retrieval of the user's transactions
// @Summary     List transactions
// @Description Get a bounded, paginated list of the authenticated user's transactions with optional filters
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       limit      query int    false "Page size (default 50, max 200)"
// @Param       offset     query int    false "Rows to skip (default 0)"
// @Param       start_date query string false "Include only dates on or after (YYYY-MM-DD or RFC3339)"
// @Param       end_date   query string false "Include only dates on or before (YYYY-MM-DD or RFC3339)"
// @Param       kind       query string false "Filter by kind (income, expense)"
// @Param       category   query string false "Filter by exact category"
// @Param       q          query string false "Case-insensitive search in description or note"
// @Param       min_amount query number false "Inclusive lower bound on amount; zero means no bound"
// @Param       max_amount query number false "Inclusive upper bound on amount; zero means no bound"
// @Success     200 {object} pagination.ListResponse[models.Transaction] "Matching transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use YYYY-MM-DD or RFC3339")
		}
		filter.StartDate = &t
	}

	if v := c.Query("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use YYYY-MM-DD or RFC3339")
		}
		filter.EndDate = &t
	}

	if v := c.Query("kind"); v != "" {
		kind := models.TransactionKind(v)
		if !kind.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid kind, must be income or expense")
		}
		filter.Kind = &kind
	}

	if v := c.Query("category"); v != "" {
		category := v
		filter.Category = &category
	}

	if v := c.Query("q"); v != "" {
		search := v
		filter.Search = &search
	}

	minAmount, err := parseAmountBound(c, "min_amount")
	if err != nil {
		return filter, err
	}
	filter.MinAmount = minAmount

	maxAmount, err := parseAmountBound(c, "max_amount")
	if err != nil {
		return filter, err
	}
	filter.MaxAmount = maxAmount

	return filter, nil
}

// parseAmountBound reads an inclusive amount bound from the query string. A
// value of zero means the bound is absent, so rows cannot be filtered on
// "amount >= 0" explicitly.
func parseAmountBound(c *gin.Context, param string) (*decimal.Decimal, error) {
	v := c.Query(param)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+param)
	}
	if f == 0 {
		return nil, nil
	}
	bound := decimal.NewFromFloat(f).Round(2)
	return &bound, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get one of the authenticated user's transactions by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransactionRequest represents the request payload for a partial
// update. Only fields present in the request body are applied.
type UpdateTransactionRequest struct {
	Description *string                 `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *float64                `json:"amount" binding:"omitempty,gt=0"`
	Kind        *models.TransactionKind `json:"kind" binding:"omitempty,transaction_kind"`
	Category    *string                 `json:"category" binding:"omitempty,max=100"`
	OccurredOn  *string                 `json:"occurred_on"`
	Note        *string                 `json:"note" binding:"omitempty,max=1000"`
}

// UpdateTransaction handles updating an existing transaction
// @Summary     Update transaction
// @Description Apply a partial update to one of the authenticated user's transactions
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	changes := services.TransactionChanges{
		Description: req.Description,
		Kind:        req.Kind,
		Category:    req.Category,
		Note:        req.Note,
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount).Round(2)
		changes.Amount = &amount
	}

	if req.OccurredOn != nil {
		occurredOn, parseErr := parseDate(*req.OccurredOn)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid occurred_on format, use YYYY-MM-DD or RFC3339"))
			return
		}
		changes.OccurredOn = &occurredOn
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, changes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Description Permanently delete one of the authenticated user's transactions
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
