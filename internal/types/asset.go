package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Asset struct {
	ID                   uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssetName            string          `gorm:"column:asset_name;not null" json:"asset_name"`
	AssetCategory        AssetCategory   `gorm:"column:asset_category;not null;index" json:"asset_category"`
	AccountNumber        *string         `gorm:"column:account_number" json:"account_number,omitempty"`
	FinancialInstitution *string         `gorm:"column:financial_institution" json:"financial_institution,omitempty"`
	AccountOwner         *string         `gorm:"column:account_owner" json:"account_owner,omitempty"`
	CurrentValue         decimal.Decimal `gorm:"column:current_value;type:numeric(18,2);not null;default:0" json:"current_value"`
	CostBasis            *decimal.Decimal `gorm:"column:cost_basis;type:numeric(18,2)" json:"cost_basis,omitempty"`
	AcquisitionDate      *time.Time      `gorm:"column:acquisition_date" json:"acquisition_date,omitempty"`
	IsProbate            bool            `gorm:"column:is_probate;not null;default:false" json:"is_probate"`
	Sold                 bool            `gorm:"column:sold;not null;default:false" json:"sold"`
	AssetLocation        *string         `gorm:"column:asset_location" json:"asset_location,omitempty"`
	AssetContactName     *string         `gorm:"column:asset_contact_name" json:"asset_contact_name,omitempty"`
	AssetContactNumber   *string         `gorm:"column:asset_contact_number" json:"asset_contact_number,omitempty"`
	AssetContactEmail    *string         `gorm:"column:asset_contact_email" json:"asset_contact_email,omitempty"`
	Notes                *string         `gorm:"column:notes" json:"notes,omitempty"`
	AccountStatus        AccountStatus   `gorm:"column:account_status;not null;default:OPEN" json:"account_status"`
	AccountPlan          AccountPlan     `gorm:"column:account_plan;not null;default:INDIVIDUAL" json:"account_plan"`
	TaskID               *uuid.UUID      `gorm:"type:uuid;column:task_id;index" json:"task_id,omitempty"`
	Metadata             datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt            time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Asset) TableName() string { return "asset_information" }
