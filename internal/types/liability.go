package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Liability struct {
	ID                   uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LiabilityName        string            `gorm:"column:liability_name;not null" json:"liability_name"`
	LiabilityCategory    LiabilityCategory `gorm:"column:liability_category;not null;index" json:"liability_category"`
	Amount               decimal.Decimal   `gorm:"column:amount;type:numeric(18,2);not null;default:0" json:"amount"`
	FinancialInstitution *string           `gorm:"column:financial_institution" json:"financial_institution,omitempty"`
	DueDate              *time.Time        `gorm:"column:due_date" json:"due_date,omitempty"`
	Notes                *string           `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt            time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Liability) TableName() string { return "liability" }
