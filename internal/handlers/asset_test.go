package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/probata/estateledger-backend/internal/allocation"
	"github.com/probata/estateledger-backend/internal/apierr"
	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/services"
	"github.com/probata/estateledger-backend/internal/types"
)

type fakeAssetService struct {
	createErr  error
	replaceErr error
	lastShares []allocation.ShareInput
}

func (f *fakeAssetService) CreateAsset(ctx context.Context, tx *gorm.DB, attrs services.AssetAttrs, shares []allocation.ShareInput) (*services.AssetView, error) {
	f.lastShares = shares
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &services.AssetView{
		Asset: &types.Asset{
			ID:            uuid.New(),
			AssetName:     attrs.AssetName,
			AssetCategory: attrs.AssetCategory,
			CurrentValue:  attrs.CurrentValue,
		},
		Distributions: []services.DistributionView{},
	}, nil
}

func (f *fakeAssetService) ReplaceShares(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, shares []allocation.ShareInput) error {
	f.lastShares = shares
	return f.replaceErr
}

func (f *fakeAssetService) UpdateValue(ctx context.Context, assetID uuid.UUID, value decimal.Decimal) (*types.Asset, error) {
	return nil, apierr.NotFound("asset_not_found", fmt.Errorf("asset %s not found", assetID))
}

func (f *fakeAssetService) ChangeStatus(ctx context.Context, assetID uuid.UUID, status types.AccountStatus) (*types.Asset, error) {
	return nil, apierr.NotFound("asset_not_found", fmt.Errorf("asset %s not found", assetID))
}

func (f *fakeAssetService) DeleteAsset(ctx context.Context, assetID uuid.UUID) error { return nil }

func (f *fakeAssetService) ListAssets(ctx context.Context, tx *gorm.DB) ([]*services.AssetView, error) {
	return []*services.AssetView{}, nil
}

func (f *fakeAssetService) GetAsset(ctx context.Context, assetID uuid.UUID) (*services.AssetView, error) {
	return nil, apierr.NotFound("asset_not_found", fmt.Errorf("asset %s not found", assetID))
}

func (f *fakeAssetService) GetDistributions(ctx context.Context, assetID uuid.UUID) ([]services.DistributionView, error) {
	return []services.DistributionView{}, nil
}

func newAssetRouter(t *testing.T, svc services.AssetService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewAssetHandler(log, svc)
	router := gin.New()
	router.POST("/api/assets", h.CreateAsset)
	router.GET("/api/assets/:id", h.GetAsset)
	router.PUT("/api/assets/:id/distributions", h.ReplaceShares)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

func TestCreateAssetHandlerStatusCodes(t *testing.T) {
	heirID := uuid.New()
	valid := fmt.Sprintf(`{
		"asset_name": "Vanguard",
		"asset_category": "BROKERAGE_ACCOUNT",
		"current_value": "1000",
		"distributions": [{"heir_id": %q, "share_of_distribution": "100"}]
	}`, heirID)

	t.Run("created", func(t *testing.T) {
		svc := &fakeAssetService{}
		router := newAssetRouter(t, svc)
		w := doJSON(t, router, http.MethodPost, "/api/assets", valid)
		if w.Code != http.StatusCreated {
			t.Fatalf("status %d, want 201 (body %s)", w.Code, w.Body.String())
		}
		if len(svc.lastShares) != 1 || svc.lastShares[0].HeirID != heirID {
			t.Fatalf("shares not forwarded: %+v", svc.lastShares)
		}
	})

	t.Run("bad category", func(t *testing.T) {
		router := newAssetRouter(t, &fakeAssetService{})
		w := doJSON(t, router, http.MethodPost, "/api/assets", `{"asset_name": "X", "asset_category": "NOT_A_CATEGORY"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", w.Code)
		}
		if env := decodeEnvelope(t, w); env.Error.Code != "invalid_category" {
			t.Fatalf("code %q", env.Error.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newAssetRouter(t, &fakeAssetService{})
		w := doJSON(t, router, http.MethodPost, "/api/assets", `{"asset_name":`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", w.Code)
		}
	})

	t.Run("validation error surfaces as 400", func(t *testing.T) {
		svc := &fakeAssetService{createErr: apierr.Validation("share_sum_mismatch", fmt.Errorf("shares sum to 90"))}
		router := newAssetRouter(t, svc)
		w := doJSON(t, router, http.MethodPost, "/api/assets", valid)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", w.Code)
		}
		if env := decodeEnvelope(t, w); env.Error.Code != "share_sum_mismatch" {
			t.Fatalf("code %q", env.Error.Code)
		}
	})

	t.Run("store outage surfaces as 503", func(t *testing.T) {
		svc := &fakeAssetService{createErr: apierr.Unavailable(fmt.Errorf("connection refused"))}
		router := newAssetRouter(t, svc)
		w := doJSON(t, router, http.MethodPost, "/api/assets", valid)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status %d, want 503", w.Code)
		}
	})
}

func TestReplaceSharesHandlerStatusCodes(t *testing.T) {
	t.Run("bad asset id", func(t *testing.T) {
		router := newAssetRouter(t, &fakeAssetService{})
		w := doJSON(t, router, http.MethodPut, "/api/assets/not-a-uuid/distributions", `{"distributions": []}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", w.Code)
		}
		if env := decodeEnvelope(t, w); env.Error.Code != "invalid_asset_id" {
			t.Fatalf("code %q", env.Error.Code)
		}
	})

	t.Run("missing asset", func(t *testing.T) {
		svc := &fakeAssetService{replaceErr: apierr.NotFound("asset_not_found", fmt.Errorf("no such asset"))}
		router := newAssetRouter(t, svc)
		w := doJSON(t, router, http.MethodPut, "/api/assets/"+uuid.NewString()+"/distributions", `{"distributions": []}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status %d, want 404", w.Code)
		}
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeAssetService{replaceErr: apierr.Conflict("constraint_violation", fmt.Errorf("fk violated"))}
		router := newAssetRouter(t, svc)
		w := doJSON(t, router, http.MethodPut, "/api/assets/"+uuid.NewString()+"/distributions", `{"distributions": []}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("status %d, want 409", w.Code)
		}
	})

	t.Run("get missing asset", func(t *testing.T) {
		router := newAssetRouter(t, &fakeAssetService{})
		w := doJSON(t, router, http.MethodGet, "/api/assets/"+uuid.NewString(), "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status %d, want 404", w.Code)
		}
	})
}
