package scoring

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mbd888/fraudscore/internal/refdata"
	"github.com/mbd888/fraudscore/internal/validation"
)

// Handler provides HTTP endpoints for transaction scoring
type Handler struct {
	service *Service
	tables  *refdata.Tables
}

// NewHandler creates a new scoring handler
func NewHandler(service *Service, tables *refdata.Tables) *Handler {
	return &Handler{service: service, tables: tables}
}

// RegisterRoutes sets up scoring routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/transactions/score", h.Score)
	r.GET("/transactions", h.List)
	r.GET("/reference", h.Reference)
}

// Score handles POST /v1/transactions/score
func (h *Handler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	resp, err := h.service.Score(c.Request.Context(), &req)
	if err != nil {
		var verr *refdata.ValidationError
		var ferrs validation.FieldErrors

		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"field":   verr.Field,
				"message": verr.Error(),
			})
		case errors.As(err, &ferrs):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"field":   ferrs[0].Field,
				"message": ferrs.Error(),
			})
		case errors.Is(err, ErrClassifier):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "classifier_error",
				"message": "Fraud classifier is unavailable or returned malformed output",
			})
		case errors.Is(err, ErrPersistence):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "persistence_error",
				"message": "Transaction was scored but the result could not be stored",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "scoring_error",
				"message": "Failed to score transaction",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List handles GET /v1/transactions
func (h *Handler) List(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	txs, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "store_error",
			"message": "Failed to retrieve scored transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
		"count":        len(txs),
	})
}

// Reference handles GET /v1/reference — the banks, merchants, and
// per-merchant states a request may carry.
func (h *Handler) Reference(c *gin.Context) {
	merchants := h.tables.Merchants()
	states := make(map[string][]string, len(merchants))
	for _, m := range merchants {
		states[m] = h.tables.States(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"banks":           h.tables.Banks(),
		"merchants":       merchants,
		"merchant_states": states,
	})
}
