package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/services"
)

type HeirHandler struct {
	log         *logger.Logger
	heirService services.HeirService
}

func NewHeirHandler(log *logger.Logger, heirService services.HeirService) *HeirHandler {
	return &HeirHandler{
		log:         log.With("handler", "HeirHandler"),
		heirService: heirService,
	}
}

type HeirRequest struct {
	FirstName        string          `json:"first_name" binding:"required"`
	MiddleInitial    *string         `json:"middle_initial"`
	LastName         string          `json:"last_name" binding:"required"`
	Suffix           *string         `json:"suffix"`
	Relation         string          `json:"relation"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	StreetAddress1   string          `json:"street_address_1"`
	StreetAddress2   *string         `json:"street_address_2"`
	City             string          `json:"city"`
	State            string          `json:"state"`
	ZipCode          string          `json:"zip_code"`
	TargetPercentage decimal.Decimal `json:"target_percentage"`
}

func (r HeirRequest) attrs() services.HeirAttrs {
	return services.HeirAttrs{
		FirstName:        r.FirstName,
		MiddleInitial:    r.MiddleInitial,
		LastName:         r.LastName,
		Suffix:           r.Suffix,
		Relation:         r.Relation,
		Email:            r.Email,
		Phone:            r.Phone,
		StreetAddress1:   r.StreetAddress1,
		StreetAddress2:   r.StreetAddress2,
		City:             r.City,
		State:            r.State,
		ZipCode:          r.ZipCode,
		TargetPercentage: r.TargetPercentage,
	}
}

// POST /api/heirs
func (h *HeirHandler) CreateHeir(c *gin.Context) {
	var req HeirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	heir, err := h.heirService.CreateHeir(c.Request.Context(), nil, req.attrs())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, heir)
}

// GET /api/heirs
func (h *HeirHandler) ListHeirs(c *gin.Context) {
	heirs, err := h.heirService.ListHeirs(c.Request.Context())
	if err != nil {
		h.log.Error("ListHeirs failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"heirs": heirs})
}

// PUT /api/heirs/:id
func (h *HeirHandler) UpdateHeir(c *gin.Context) {
	heirID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_heir_id", err)
		return
	}
	var req HeirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	heir, err := h.heirService.UpdateHeir(c.Request.Context(), heirID, req.attrs())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, heir)
}

// DELETE /api/heirs/:id
func (h *HeirHandler) DeleteHeir(c *gin.Context) {
	heirID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_heir_id", err)
		return
	}
	if err := h.heirService.DeleteHeir(c.Request.Context(), heirID); err != nil {
		h.log.Warn("DeleteHeir rejected", "error", err, "heir_id", heirID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": heirID})
}
