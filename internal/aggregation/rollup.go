package aggregation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/probata/estateledger-backend/internal/types"
)

// Pure rollups over a snapshot of the record store. Nothing here caches or
// mutates; callers pass the rows they just read and get sums back. Empty
// input yields empty maps and zero totals, never an error.

var hundred = decimal.NewFromInt(100)

// CategoryRollup sums current_value per asset category. Categories with no
// assets are absent from the map, not zero-valued.
func CategoryRollup(assets []*types.Asset) map[types.AssetCategory]decimal.Decimal {
	out := make(map[types.AssetCategory]decimal.Decimal)
	for _, a := range assets {
		if a == nil {
			continue
		}
		sum, ok := out[a.AssetCategory]
		if !ok {
			sum = decimal.Zero
		}
		out[a.AssetCategory] = sum.Add(a.CurrentValue)
	}
	return out
}

type EstateTotalsResult struct {
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalTaxes       decimal.Decimal `json:"total_taxes"`
	NetEstate        decimal.Decimal `json:"net_estate"`
}

// EstateTotals sums asset values and liability amounts across the estate.
// TAXES-category liabilities are counted in the liability total and broken
// out separately.
func EstateTotals(assets []*types.Asset, liabilities []*types.Liability) EstateTotalsResult {
	res := EstateTotalsResult{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalTaxes:       decimal.Zero,
	}
	for _, a := range assets {
		if a == nil {
			continue
		}
		res.TotalAssets = res.TotalAssets.Add(a.CurrentValue)
	}
	for _, l := range liabilities {
		if l == nil {
			continue
		}
		res.TotalLiabilities = res.TotalLiabilities.Add(l.Amount)
		if l.LiabilityCategory == types.LiabilityTaxes {
			res.TotalTaxes = res.TotalTaxes.Add(l.Amount)
		}
	}
	res.NetEstate = res.TotalAssets.Sub(res.TotalLiabilities)
	return res
}

// HeirTotals derives each heir's total allocated value:
// value * share / 100 per share, accumulated exactly in decimal and rounded
// to cents only at output so per-asset rounding cannot drift across assets.
func HeirTotals(assets []*types.Asset, shares []*types.DistributionShare) map[uuid.UUID]decimal.Decimal {
	values := make(map[uuid.UUID]decimal.Decimal, len(assets))
	for _, a := range assets {
		if a == nil {
			continue
		}
		values[a.ID] = a.CurrentValue
	}
	acc := make(map[uuid.UUID]decimal.Decimal)
	for _, s := range shares {
		if s == nil {
			continue
		}
		value, ok := values[s.AssetID]
		if !ok {
			// Share for an asset outside the snapshot; the writer never
			// produces this, so skip rather than invent a value.
			continue
		}
		part := value.Mul(s.ShareOfDistribution).Div(hundred)
		sum, ok := acc[s.HeirID]
		if !ok {
			sum = decimal.Zero
		}
		acc[s.HeirID] = sum.Add(part)
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(acc))
	for heirID, sum := range acc {
		out[heirID] = sum.Round(2)
	}
	return out
}
