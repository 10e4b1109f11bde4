package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/probata/estateledger-backend/internal/aggregation"
	"github.com/probata/estateledger-backend/internal/apierr"
	"github.com/probata/estateledger-backend/internal/cache"
	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/repos"
	"github.com/probata/estateledger-backend/internal/types"
)

// SummaryService recomputes every rollup from a fresh snapshot read; the
// optional cache only short-circuits the category rollup and is invalidated
// by the writer, so a hit can never be staler than the last committed write.
type SummaryService interface {
	CategoryRollup(ctx context.Context) ([]CategorySum, error)
	EstateTotals(ctx context.Context) (aggregation.EstateTotalsResult, error)
	HeirTotals(ctx context.Context) ([]HeirTotal, error)
}

type CategorySum struct {
	Category types.AssetCategory `json:"category"`
	Sum      decimal.Decimal     `json:"sum"`
}

type HeirTotal struct {
	HeirID     uuid.UUID       `json:"heir_id"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type summaryService struct {
	db            *gorm.DB
	log           *logger.Logger
	assetRepo     repos.AssetRepo
	shareRepo     repos.DistributionShareRepo
	liabilityRepo repos.LiabilityRepo
	rollupCache   *cache.RollupCache
}

func NewSummaryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	assetRepo repos.AssetRepo,
	shareRepo repos.DistributionShareRepo,
	liabilityRepo repos.LiabilityRepo,
	rollupCache *cache.RollupCache,
) SummaryService {
	return &summaryService{
		db:            db,
		log:           baseLog.With("service", "SummaryService"),
		assetRepo:     assetRepo,
		shareRepo:     shareRepo,
		liabilityRepo: liabilityRepo,
		rollupCache:   rollupCache,
	}
}

func (s *summaryService) CategoryRollup(ctx context.Context) ([]CategorySum, error) {
	if cached, ok := s.rollupCache.Get(ctx); ok {
		sums, err := decodeCachedRollup(cached)
		if err == nil {
			return sums, nil
		}
		s.log.Warn("cached rollup unreadable, recomputing", "error", err)
	}

	assets, err := s.assetRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, apierr.Unavailable(err)
	}
	rollup := aggregation.CategoryRollup(assets)

	sums := make([]CategorySum, 0, len(rollup))
	for category, sum := range rollup {
		sums = append(sums, CategorySum{Category: category, Sum: sum})
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].Category < sums[j].Category })

	cacheable := make([]cache.CategorySum, len(sums))
	for i, cs := range sums {
		cacheable[i] = cache.CategorySum{Category: string(cs.Category), Sum: cs.Sum.String()}
	}
	s.rollupCache.Set(ctx, cacheable)

	return sums, nil
}

func (s *summaryService) EstateTotals(ctx context.Context) (aggregation.EstateTotalsResult, error) {
	var (
		assets      []*types.Asset
		liabilities []*types.Liability
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.assetRepo.GetAll(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		liabilities, err = s.liabilityRepo.GetAll(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return aggregation.EstateTotalsResult{}, apierr.Unavailable(err)
	}
	return aggregation.EstateTotals(assets, liabilities), nil
}

func (s *summaryService) HeirTotals(ctx context.Context) ([]HeirTotal, error) {
	var (
		assets []*types.Asset
		shares []*types.DistributionShare
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.assetRepo.GetAll(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		shares, err = s.shareRepo.GetAll(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Unavailable(err)
	}
	totals := aggregation.HeirTotals(assets, shares)
	out := make([]HeirTotal, 0, len(totals))
	for heirID, total := range totals {
		out = append(out, HeirTotal{HeirID: heirID, TotalValue: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HeirID.String() < out[j].HeirID.String() })
	return out, nil
}

func decodeCachedRollup(cached []cache.CategorySum) ([]CategorySum, error) {
	sums := make([]CategorySum, len(cached))
	for i, cs := range cached {
		sum, err := decimal.NewFromString(cs.Sum)
		if err != nil {
			return nil, err
		}
		sums[i] = CategorySum{Category: types.AssetCategory(cs.Category), Sum: sum}
	}
	return sums, nil
}
