package types

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is an opaque reference to a file stored elsewhere. Ownership is
// polymorphic: a row belongs to a task or an asset.
type Attachment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	OwnerType string    `gorm:"column:owner_type;not null;index:idx_attachment_owner,priority:1" json:"owner_type"` // task|asset
	OwnerID   uuid.UUID `gorm:"type:uuid;column:owner_id;not null;index:idx_attachment_owner,priority:2" json:"owner_id"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Attachment) TableName() string { return "attachment" }
