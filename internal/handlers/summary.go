package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/services"
)

type SummaryHandler struct {
	log            *logger.Logger
	summaryService services.SummaryService
}

func NewSummaryHandler(log *logger.Logger, summaryService services.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		log:            log.With("handler", "SummaryHandler"),
		summaryService: summaryService,
	}
}

// GET /api/summary/categories
func (h *SummaryHandler) Categories(c *gin.Context) {
	sums, err := h.summaryService.CategoryRollup(c.Request.Context())
	if err != nil {
		h.log.Error("CategoryRollup failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"categories": sums})
}

// GET /api/summary/estate
func (h *SummaryHandler) Estate(c *gin.Context) {
	totals, err := h.summaryService.EstateTotals(c.Request.Context())
	if err != nil {
		h.log.Error("EstateTotals failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, totals)
}

// GET /api/summary/heirs
func (h *SummaryHandler) Heirs(c *gin.Context) {
	totals, err := h.summaryService.HeirTotals(c.Request.Context())
	if err != nil {
		h.log.Error("HeirTotals failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"heirs": totals})
}
