package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DistributionShare apportions one asset's value to one heir. Rows are only
// ever written as a complete per-asset set so the shares of any asset that
// has them sum to 100%. No soft delete: a replaced set is gone, and the
// (asset_id, heir_id) uniqueness must not collide with tombstones.
type DistributionShare struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssetID             uuid.UUID       `gorm:"type:uuid;column:asset_id;not null;uniqueIndex:idx_share_asset_heir,priority:1" json:"asset_id"`
	Asset               *Asset          `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	HeirID              uuid.UUID       `gorm:"type:uuid;column:heir_id;not null;uniqueIndex:idx_share_asset_heir,priority:2" json:"heir_id"`
	Heir                *Heir           `gorm:"constraint:OnDelete:RESTRICT;foreignKey:HeirID;references:ID" json:"heir,omitempty"`
	ShareOfDistribution decimal.Decimal `gorm:"column:share_of_distribution;type:numeric(10,6);not null" json:"share_of_distribution"`
	DistributionType    string          `gorm:"column:distribution_type;not null;default:default" json:"distribution_type"`
	CreatedAt           time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (DistributionShare) TableName() string { return "distribution_share" }
