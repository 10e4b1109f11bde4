package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Heir struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName      string          `gorm:"column:first_name;not null" json:"first_name"`
	MiddleInitial  *string         `gorm:"column:middle_initial" json:"middle_initial,omitempty"`
	LastName       string          `gorm:"column:last_name;not null" json:"last_name"`
	Suffix         *string         `gorm:"column:suffix" json:"suffix,omitempty"`
	Relation       string          `gorm:"column:relation" json:"relation"`
	Email          string          `gorm:"column:email" json:"email"`
	Phone          string          `gorm:"column:phone" json:"phone"`
	StreetAddress1 string          `gorm:"column:street_address_1" json:"street_address_1"`
	StreetAddress2 *string         `gorm:"column:street_address_2" json:"street_address_2,omitempty"`
	City           string          `gorm:"column:city" json:"city"`
	State          string          `gorm:"column:state" json:"state"`
	ZipCode        string          `gorm:"column:zip_code" json:"zip_code"`
	// Intended share of the overall estate. Informational only; not summed
	// or enforced across heirs.
	TargetPercentage decimal.Decimal `gorm:"column:target_percentage;type:numeric(7,4);not null;default:0" json:"target_percentage"`
	CreatedAt        time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Heir) TableName() string { return "heir" }
