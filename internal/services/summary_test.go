package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/probata/estateledger-backend/internal/allocation"
	"github.com/probata/estateledger-backend/internal/types"
)

func TestCategoryRollupAcrossServices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mk := func(name string, category types.AssetCategory, value string) {
		t.Helper()
		attrs := brokerageAttrs(name)
		attrs.AssetCategory = category
		attrs.CurrentValue = decimal.RequireFromString(value)
		if _, err := env.assets.CreateAsset(ctx, nil, attrs, nil); err != nil {
			t.Fatalf("CreateAsset(%s): %v", name, err)
		}
	}
	mk("Schwab", types.CategoryBrokerageAccount, "1000")
	mk("Fidelity", types.CategoryBrokerageAccount, "500")
	mk("House", types.CategoryRealEstate, "250000")

	sums, err := env.summary.CategoryRollup(ctx)
	if err != nil {
		t.Fatalf("CategoryRollup: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("got %d categories, want 2: %+v", len(sums), sums)
	}
	// Sorted by category name: BROKERAGE_ACCOUNT before REAL_ESTATE.
	if sums[0].Category != types.CategoryBrokerageAccount || !sums[0].Sum.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("brokerage rollup %s = %s", sums[0].Category, sums[0].Sum)
	}
	if sums[1].Category != types.CategoryRealEstate || !sums[1].Sum.Equal(decimal.NewFromInt(250000)) {
		t.Fatalf("real estate rollup %s = %s", sums[1].Category, sums[1].Sum)
	}
}

func TestCategoryRollupExcludesDeletedAssets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view, err := env.assets.CreateAsset(ctx, nil, brokerageAttrs("Schwab"), nil)
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if err := env.assets.DeleteAsset(ctx, view.Asset.ID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	sums, err := env.summary.CategoryRollup(ctx)
	if err != nil {
		t.Fatalf("CategoryRollup: %v", err)
	}
	if len(sums) != 0 {
		t.Fatalf("deleted asset still rolled up: %+v", sums)
	}
}

func TestEstateTotalsAcrossServices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	attrs := brokerageAttrs("Schwab")
	attrs.CurrentValue = decimal.NewFromInt(1500)
	if _, err := env.assets.CreateAsset(ctx, nil, attrs, nil); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if _, err := env.liability.CreateLiability(ctx, nil, LiabilityAttrs{
		LiabilityName:     "Mortgage",
		LiabilityCategory: types.LiabilityMortgage,
		Amount:            decimal.NewFromInt(300),
	}); err != nil {
		t.Fatalf("CreateLiability: %v", err)
	}
	if _, err := env.liability.CreateLiability(ctx, nil, LiabilityAttrs{
		LiabilityName:     "Estate taxes",
		LiabilityCategory: types.LiabilityTaxes,
		Amount:            decimal.NewFromInt(120),
	}); err != nil {
		t.Fatalf("CreateLiability: %v", err)
	}

	totals, err := env.summary.EstateTotals(ctx)
	if err != nil {
		t.Fatalf("EstateTotals: %v", err)
	}
	if !totals.TotalAssets.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("total assets %s", totals.TotalAssets)
	}
	if !totals.TotalLiabilities.Equal(decimal.NewFromInt(420)) {
		t.Fatalf("total liabilities %s", totals.TotalLiabilities)
	}
	if !totals.TotalTaxes.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("total taxes %s", totals.TotalTaxes)
	}
	if !totals.NetEstate.Equal(decimal.NewFromInt(1080)) {
		t.Fatalf("net estate %s", totals.NetEstate)
	}
}

func TestHeirTotalsAcrossServices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := mustCreateHeir(t, env, "Ana")
	ben := mustCreateHeir(t, env, "Ben")

	attrs := brokerageAttrs("Schwab")
	attrs.CurrentValue = decimal.NewFromInt(1000)
	if _, err := env.assets.CreateAsset(ctx, nil, attrs, []allocation.ShareInput{
		share(ana.ID, "60"),
		share(ben.ID, "40"),
	}); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	attrs = brokerageAttrs("House")
	attrs.AssetCategory = types.CategoryRealEstate
	attrs.CurrentValue = decimal.NewFromInt(500)
	if _, err := env.assets.CreateAsset(ctx, nil, attrs, []allocation.ShareInput{
		share(ana.ID, "100"),
	}); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	totals, err := env.summary.HeirTotals(ctx)
	if err != nil {
		t.Fatalf("HeirTotals: %v", err)
	}
	byHeir := map[string]decimal.Decimal{}
	for _, ht := range totals {
		byHeir[ht.HeirID.String()] = ht.TotalValue
	}
	if !byHeir[ana.ID.String()].Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("ana total %s, want 1100", byHeir[ana.ID.String()])
	}
	if !byHeir[ben.ID.String()].Equal(decimal.NewFromInt(400)) {
		t.Fatalf("ben total %s, want 400", byHeir[ben.ID.String()])
	}
}
