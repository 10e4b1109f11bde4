package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/probata/estateledger-backend/internal/allocation"
	"github.com/probata/estateledger-backend/internal/apierr"
	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/repos"
	"github.com/probata/estateledger-backend/internal/types"
)

func mustCreateHeir(t *testing.T, env *testEnv, firstName string) *types.Heir {
	t.Helper()
	heir, err := env.heirs.CreateHeir(context.Background(), nil, HeirAttrs{
		FirstName: firstName,
		LastName:  "Alvarez",
		Relation:  "child",
	})
	if err != nil {
		t.Fatalf("CreateHeir(%s): %v", firstName, err)
	}
	return heir
}

func share(heirID uuid.UUID, pct string) allocation.ShareInput {
	return allocation.ShareInput{
		HeirID:              heirID,
		ShareOfDistribution: decimal.RequireFromString(pct),
	}
}

func brokerageAttrs(name string) AssetAttrs {
	return AssetAttrs{
		AssetName:     name,
		AssetCategory: types.CategoryBrokerageAccount,
		CurrentValue:  decimal.NewFromInt(1000),
		AccountStatus: types.AccountStatusOpen,
		AccountPlan:   types.AccountPlanIndividual,
	}
}

func assertServiceError(t *testing.T, err error, wantStatus int, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %d/%s, got nil", wantStatus, wantCode)
	}
	status, code := apierr.StatusOf(err)
	if status != wantStatus || code != wantCode {
		t.Fatalf("got %d/%s, want %d/%s (err: %v)", status, code, wantStatus, wantCode, err)
	}
}

func TestCreateAssetPersistsAssetAndShares(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")
	ben := mustCreateHeir(t, env, "Ben")

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard Brokerage"), []allocation.ShareInput{
		share(ana.ID, "60"),
		share(ben.ID, "40"),
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if len(view.Distributions) != 2 {
		t.Fatalf("got %d distributions, want 2", len(view.Distributions))
	}

	got, err := env.assets.GetAsset(ctx, view.Asset.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if got.AssetName != "Vanguard Brokerage" {
		t.Fatalf("asset name %q", got.AssetName)
	}
	if len(got.Distributions) != 2 {
		t.Fatalf("got %d persisted distributions, want 2", len(got.Distributions))
	}
	byHeir := map[uuid.UUID]DistributionView{}
	for _, d := range got.Distributions {
		byHeir[d.HeirID] = d
	}
	if !byHeir[ana.ID].ShareOfDistribution.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("ana share %s", byHeir[ana.ID].ShareOfDistribution)
	}
	if byHeir[ana.ID].ShareBps != 6000 {
		t.Fatalf("ana bps %d, want 6000", byHeir[ana.ID].ShareBps)
	}
	if byHeir[ben.ID].ShareBps != 4000 {
		t.Fatalf("ben bps %d, want 4000", byHeir[ben.ID].ShareBps)
	}
	if byHeir[ana.ID].Heir == nil || byHeir[ana.ID].Heir.FirstName != "Ana" {
		t.Fatalf("heir not preloaded: %+v", byHeir[ana.ID].Heir)
	}
}

func TestCreateAssetWithoutSharesIsAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Checking"), nil)
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if len(view.Distributions) != 0 {
		t.Fatalf("got %d distributions, want 0", len(view.Distributions))
	}
}

func TestCreateAssetRequiresDistributionRejectsEmpty(t *testing.T) {
	env := newTestEnv(t)
	attrs := brokerageAttrs("Checking")
	attrs.RequiresDistribution = true

	_, err := env.assets.CreateAsset(context.Background(), nil, attrs, nil)
	assertServiceError(t, err, http.StatusBadRequest, "empty_share_set")
}

func TestCreateAssetInvalidSumWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")
	ben := mustCreateHeir(t, env, "Ben")

	_, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "60"),
		share(ben.ID, "30"),
	})
	assertServiceError(t, err, http.StatusBadRequest, "share_sum_mismatch")

	views, err := env.assets.ListAssets(ctx, nil)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("rejected create left %d assets behind", len(views))
	}
}

func TestCreateAssetUnknownHeirRejected(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.assets.CreateAsset(context.Background(), nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(uuid.New(), "100"),
	})
	assertServiceError(t, err, http.StatusBadRequest, "unknown_heir")
}

func TestCreateAssetDuplicateHeirRejected(t *testing.T) {
	env := newTestEnv(t)
	ana := mustCreateHeir(t, env, "Ana")
	_, err := env.assets.CreateAsset(context.Background(), nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "50"),
		share(ana.ID, "50"),
	})
	assertServiceError(t, err, http.StatusBadRequest, "duplicate_heir_in_shares")
}

func TestReplaceSharesSwapsWholeSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")
	ben := mustCreateHeir(t, env, "Ben")
	cora := mustCreateHeir(t, env, "Cora")

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "60"),
		share(ben.ID, "40"),
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	newSet := []allocation.ShareInput{
		share(ana.ID, "33.333333"),
		share(ben.ID, "33.333333"),
		share(cora.ID, "33.333334"),
	}
	if err := env.assets.ReplaceShares(ctx, nil, view.Asset.ID, newSet); err != nil {
		t.Fatalf("ReplaceShares: %v", err)
	}

	dists, err := env.assets.GetDistributions(ctx, view.Asset.ID)
	if err != nil {
		t.Fatalf("GetDistributions: %v", err)
	}
	if len(dists) != 3 {
		t.Fatalf("got %d shares after replace, want 3", len(dists))
	}

	// Replaying the same set is a no-op in effect.
	if err := env.assets.ReplaceShares(ctx, nil, view.Asset.ID, newSet); err != nil {
		t.Fatalf("ReplaceShares replay: %v", err)
	}
	dists, err = env.assets.GetDistributions(ctx, view.Asset.ID)
	if err != nil {
		t.Fatalf("GetDistributions: %v", err)
	}
	if len(dists) != 3 {
		t.Fatalf("got %d shares after replay, want 3", len(dists))
	}
}

func TestReplaceSharesEmptyClears(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "100"),
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if err := env.assets.ReplaceShares(ctx, nil, view.Asset.ID, nil); err != nil {
		t.Fatalf("ReplaceShares: %v", err)
	}
	dists, err := env.assets.GetDistributions(ctx, view.Asset.ID)
	if err != nil {
		t.Fatalf("GetDistributions: %v", err)
	}
	if len(dists) != 0 {
		t.Fatalf("got %d shares after clear, want 0", len(dists))
	}
}

func TestReplaceSharesInvalidSumKeepsOldSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")
	ben := mustCreateHeir(t, env, "Ben")

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "100"),
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	err = env.assets.ReplaceShares(ctx, nil, view.Asset.ID, []allocation.ShareInput{
		share(ana.ID, "50"),
		share(ben.ID, "49"),
	})
	assertServiceError(t, err, http.StatusBadRequest, "share_sum_mismatch")

	dists, err := env.assets.GetDistributions(ctx, view.Asset.ID)
	if err != nil {
		t.Fatalf("GetDistributions: %v", err)
	}
	if len(dists) != 1 || !dists[0].ShareOfDistribution.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("old set not preserved: %+v", dists)
	}
}

func TestReplaceSharesUnknownAsset(t *testing.T) {
	env := newTestEnv(t)
	err := env.assets.ReplaceShares(context.Background(), nil, uuid.New(), nil)
	assertServiceError(t, err, http.StatusNotFound, "asset_not_found")
}

func TestDeleteAssetCascadesShares(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "100"),
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if err := env.assets.DeleteAsset(ctx, view.Asset.ID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	views, err := env.assets.ListAssets(ctx, nil)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("asset still listed after delete")
	}
	var count int64
	if err := env.db.Model(&types.DistributionShare{}).Count(&count).Error; err != nil {
		t.Fatalf("count shares: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d orphan shares after asset delete", count)
	}

	// The heir is free again once nothing references it.
	if err := env.heirs.DeleteHeir(ctx, ana.ID); err != nil {
		t.Fatalf("DeleteHeir after cascade: %v", err)
	}
}

func TestDeleteHeirReferencedBySharesRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")

	if _, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "100"),
	}); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	err := env.heirs.DeleteHeir(ctx, ana.ID)
	assertServiceError(t, err, http.StatusConflict, "heir_referenced")
}

func TestUpdateValueAndChangeStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), nil)
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	asset, err := env.assets.UpdateValue(ctx, view.Asset.ID, decimal.RequireFromString("2500.50"))
	if err != nil {
		t.Fatalf("UpdateValue: %v", err)
	}
	if !asset.CurrentValue.Equal(decimal.RequireFromString("2500.50")) {
		t.Fatalf("value %s", asset.CurrentValue)
	}

	_, err = env.assets.UpdateValue(ctx, view.Asset.ID, decimal.NewFromInt(-1))
	assertServiceError(t, err, http.StatusBadRequest, "negative_value")

	asset, err = env.assets.ChangeStatus(ctx, view.Asset.ID, types.AccountStatusClosed)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if asset.AccountStatus != types.AccountStatusClosed {
		t.Fatalf("status %s", asset.AccountStatus)
	}

	got, err := env.assets.GetAsset(ctx, view.Asset.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if !got.CurrentValue.Equal(decimal.RequireFromString("2500.50")) || got.AccountStatus != types.AccountStatusClosed {
		t.Fatalf("persisted asset %s/%s", got.CurrentValue, got.AccountStatus)
	}
}

// staleHeirRepo answers reads from a snapshot taken before a concurrent
// deletion, standing in for the gap between pre-write validation and the
// write transaction.
type staleHeirRepo struct {
	repos.HeirRepo
	snapshot []*types.Heir
}

func (r *staleHeirRepo) GetByIDs(ctx context.Context, tx *gorm.DB, heirIDs []uuid.UUID) ([]*types.Heir, error) {
	return r.snapshot, nil
}

// A share set validated against a heir that a concurrent deletion removed
// in the meantime must not commit: soft deletes never trip the heir FK, so
// the writer's own in-transaction liveness check is what has to catch it.
func TestShareWriteRejectsHeirDeletedAfterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	stale := &staleHeirRepo{HeirRepo: repos.NewHeirRepo(env.db, log), snapshot: []*types.Heir{ana}}
	writer := NewAssetService(env.db, log,
		repos.NewAssetRepo(env.db, log),
		repos.NewDistributionShareRepo(env.db, log),
		stale, nil)

	existing, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Checking"), nil)
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	if err := env.heirs.DeleteHeir(ctx, ana.ID); err != nil {
		t.Fatalf("DeleteHeir: %v", err)
	}

	_, err = writer.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "100"),
	})
	assertServiceError(t, err, http.StatusConflict, "heir_deleted")

	err = writer.ReplaceShares(ctx, nil, existing.Asset.ID, []allocation.ShareInput{
		share(ana.ID, "100"),
	})
	assertServiceError(t, err, http.StatusConflict, "heir_deleted")

	views, err := env.assets.ListAssets(ctx, nil)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(views) != 1 || views[0].Asset.ID != existing.Asset.ID {
		t.Fatalf("rejected create left assets behind: %+v", views)
	}
	var count int64
	if err := env.db.Model(&types.DistributionShare{}).Count(&count).Error; err != nil {
		t.Fatalf("count shares: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d shares reference a deleted heir", count)
	}
}

// Two writers race full-set replaces against one asset. Whatever order the
// store picks, the surviving set must be one writer's complete set, never a
// blend.
func TestConcurrentReplaceSharesConverges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")
	ben := mustCreateHeir(t, env, "Ben")

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Vanguard"), []allocation.ShareInput{
		share(ana.ID, "100"),
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	sets := map[string][]allocation.ShareInput{
		"writer-a": {
			{HeirID: ana.ID, ShareOfDistribution: decimal.NewFromInt(70), DistributionType: "writer-a"},
			{HeirID: ben.ID, ShareOfDistribution: decimal.NewFromInt(30), DistributionType: "writer-a"},
		},
		"writer-b": {
			{HeirID: ana.ID, ShareOfDistribution: decimal.NewFromInt(20), DistributionType: "writer-b"},
			{HeirID: ben.ID, ShareOfDistribution: decimal.NewFromInt(80), DistributionType: "writer-b"},
		},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(sets))
	for name, set := range sets {
		wg.Add(1)
		go func(name string, set []allocation.ShareInput) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				var lastErr error
				for attempt := 0; attempt < 50; attempt++ {
					lastErr = env.assets.ReplaceShares(ctx, nil, view.Asset.ID, set)
					if lastErr == nil {
						break
					}
				}
				if lastErr != nil {
					errs <- fmt.Errorf("%s: %w", name, lastErr)
					return
				}
			}
		}(name, set)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("writer failed: %v", err)
	}

	dists, err := env.assets.GetDistributions(ctx, view.Asset.ID)
	if err != nil {
		t.Fatalf("GetDistributions: %v", err)
	}
	if len(dists) != 2 {
		t.Fatalf("got %d shares, want 2", len(dists))
	}
	winner := dists[0].DistributionType
	sum := decimal.Zero
	for _, d := range dists {
		if d.DistributionType != winner {
			t.Fatalf("blended share set: %s and %s", winner, d.DistributionType)
		}
		sum = sum.Add(d.ShareOfDistribution)
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("share sum %s after races", sum)
	}
}
