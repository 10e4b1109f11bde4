package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/services"
	"github.com/probata/estateledger-backend/internal/types"
)

type LiabilityHandler struct {
	log              *logger.Logger
	liabilityService services.LiabilityService
}

func NewLiabilityHandler(log *logger.Logger, liabilityService services.LiabilityService) *LiabilityHandler {
	return &LiabilityHandler{
		log:              log.With("handler", "LiabilityHandler"),
		liabilityService: liabilityService,
	}
}

type CreateLiabilityRequest struct {
	LiabilityName        string          `json:"liability_name" binding:"required"`
	LiabilityCategory    string          `json:"liability_category" binding:"required"`
	Amount               decimal.Decimal `json:"amount"`
	FinancialInstitution *string         `json:"financial_institution"`
	DueDate              *time.Time      `json:"due_date"`
	Notes                *string         `json:"notes"`
}

// POST /api/liabilities
func (h *LiabilityHandler) CreateLiability(c *gin.Context) {
	var req CreateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	category, err := types.ParseLiabilityCategory(req.LiabilityCategory)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_category", err)
		return
	}
	liability, err := h.liabilityService.CreateLiability(c.Request.Context(), nil, services.LiabilityAttrs{
		LiabilityName:        req.LiabilityName,
		LiabilityCategory:    category,
		Amount:               req.Amount,
		FinancialInstitution: req.FinancialInstitution,
		DueDate:              req.DueDate,
		Notes:                req.Notes,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, liability)
}

// GET /api/liabilities
func (h *LiabilityHandler) ListLiabilities(c *gin.Context) {
	liabilities, err := h.liabilityService.ListLiabilities(c.Request.Context())
	if err != nil {
		h.log.Error("ListLiabilities failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"liabilities": liabilities})
}

// DELETE /api/liabilities/:id
func (h *LiabilityHandler) DeleteLiability(c *gin.Context) {
	liabilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_liability_id", err)
		return
	}
	if err := h.liabilityService.DeleteLiability(c.Request.Context(), liabilityID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": liabilityID})
}
