package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title     string         `gorm:"column:title;not null" json:"title"`
	Owner     string         `gorm:"column:owner;not null" json:"owner"`
	Deadline  time.Time      `gorm:"column:deadline;not null;index" json:"deadline"`
	Status    TaskStatus     `gorm:"column:status;not null;default:NOT_STARTED" json:"status"`
	Priority  TaskPriority   `gorm:"column:priority;not null;default:MEDIUM" json:"priority"`
	ProjectID *uuid.UUID     `gorm:"type:uuid;column:project_id;index" json:"project_id,omitempty"`
	Project   *Project       `gorm:"constraint:OnDelete:SET NULL;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	// Asset whose handling this task represents, when there is one.
	AssetID   *uuid.UUID     `gorm:"type:uuid;column:asset_id;index" json:"asset_id,omitempty"`
	Notes     *string        `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Task) TableName() string { return "task" }
