package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/probata/estateledger-backend/internal/allocation"
	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/services"
	"github.com/probata/estateledger-backend/internal/types"
)

type AssetHandler struct {
	log          *logger.Logger
	assetService services.AssetService
}

func NewAssetHandler(log *logger.Logger, assetService services.AssetService) *AssetHandler {
	return &AssetHandler{
		log:          log.With("handler", "AssetHandler"),
		assetService: assetService,
	}
}

type ShareRequest struct {
	HeirID              uuid.UUID       `json:"heir_id" binding:"required"`
	ShareOfDistribution decimal.Decimal `json:"share_of_distribution"`
	DistributionType    string          `json:"distribution_type"`
}

type CreateAssetRequest struct {
	AssetName            string           `json:"asset_name" binding:"required"`
	AssetCategory        string           `json:"asset_category" binding:"required"`
	AccountNumber        *string          `json:"account_number"`
	FinancialInstitution *string          `json:"financial_institution"`
	AccountOwner         *string          `json:"account_owner"`
	CurrentValue         decimal.Decimal  `json:"current_value"`
	CostBasis            *decimal.Decimal `json:"cost_basis"`
	AcquisitionDate      *time.Time       `json:"acquisition_date"`
	IsProbate            bool             `json:"is_probate"`
	AssetLocation        *string          `json:"asset_location"`
	AssetContactName     *string          `json:"asset_contact_name"`
	AssetContactNumber   *string          `json:"asset_contact_number"`
	AssetContactEmail    *string          `json:"asset_contact_email"`
	Notes                *string          `json:"notes"`
	AccountStatus        string           `json:"account_status"`
	AccountPlan          string           `json:"account_plan"`
	TaskID               *uuid.UUID       `json:"task_id"`
	Metadata             json.RawMessage  `json:"metadata"`
	RequiresDistribution bool             `json:"requires_distribution"`
	Distributions        []ShareRequest   `json:"distributions"`
}

type ReplaceSharesRequest struct {
	Distributions []ShareRequest `json:"distributions"`
}

func toShareInputs(reqs []ShareRequest) []allocation.ShareInput {
	shares := make([]allocation.ShareInput, len(reqs))
	for i, r := range reqs {
		shares[i] = allocation.ShareInput{
			HeirID:              r.HeirID,
			ShareOfDistribution: r.ShareOfDistribution,
			DistributionType:    r.DistributionType,
		}
	}
	return shares
}

// POST /api/assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	category, err := types.ParseAssetCategory(req.AssetCategory)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_category", err)
		return
	}
	status := types.AccountStatusOpen
	if req.AccountStatus != "" {
		if status, err = types.ParseAccountStatus(req.AccountStatus); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_status", err)
			return
		}
	}
	plan := types.AccountPlanIndividual
	if req.AccountPlan != "" {
		if plan, err = types.ParseAccountPlan(req.AccountPlan); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_plan", err)
			return
		}
	}

	attrs := services.AssetAttrs{
		AssetName:            req.AssetName,
		AssetCategory:        category,
		AccountNumber:        req.AccountNumber,
		FinancialInstitution: req.FinancialInstitution,
		AccountOwner:         req.AccountOwner,
		CurrentValue:         req.CurrentValue,
		CostBasis:            req.CostBasis,
		AcquisitionDate:      req.AcquisitionDate,
		IsProbate:            req.IsProbate,
		AssetLocation:        req.AssetLocation,
		AssetContactName:     req.AssetContactName,
		AssetContactNumber:   req.AssetContactNumber,
		AssetContactEmail:    req.AssetContactEmail,
		Notes:                req.Notes,
		AccountStatus:        status,
		AccountPlan:          plan,
		TaskID:               req.TaskID,
		Metadata:             datatypes.JSON(req.Metadata),
		RequiresDistribution: req.RequiresDistribution,
	}

	view, err := h.assetService.CreateAsset(c.Request.Context(), nil, attrs, toShareInputs(req.Distributions))
	if err != nil {
		h.log.Warn("CreateAsset rejected", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, view)
}

// GET /api/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	views, err := h.assetService.ListAssets(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListAssets failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assets": views})
}

// GET /api/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	view, err := h.assetService.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

// PUT /api/assets/:id/distributions
func (h *AssetHandler) ReplaceShares(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	var req ReplaceSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.assetService.ReplaceShares(c.Request.Context(), nil, assetID, toShareInputs(req.Distributions)); err != nil {
		h.log.Warn("ReplaceShares rejected", "error", err, "asset_id", assetID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset_id": assetID})
}

// GET /api/assets/:id/distributions
func (h *AssetHandler) GetDistributions(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	dists, err := h.assetService.GetDistributions(c.Request.Context(), assetID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"distributions": dists})
}

type UpdateValueRequest struct {
	CurrentValue decimal.Decimal `json:"current_value"`
}

// PATCH /api/assets/:id/value
func (h *AssetHandler) UpdateValue(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	var req UpdateValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	asset, err := h.assetService.UpdateValue(c.Request.Context(), assetID, req.CurrentValue)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, asset)
}

type ChangeStatusRequest struct {
	AccountStatus string `json:"account_status" binding:"required"`
}

// PATCH /api/assets/:id/status
func (h *AssetHandler) ChangeStatus(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	status, err := types.ParseAccountStatus(req.AccountStatus)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_status", err)
		return
	}
	asset, err := h.assetService.ChangeStatus(c.Request.Context(), assetID, status)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, asset)
}

// DELETE /api/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	if err := h.assetService.DeleteAsset(c.Request.Context(), assetID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": assetID})
}
