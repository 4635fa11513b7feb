package model

import (
	// 外部依赖
	"time"

	datatypes "gorm.io/datatypes"
)

type MovementOutcome string

const (
	MovementAssigned MovementOutcome = "assigned"
	MovementMoved    MovementOutcome = "moved"
	MovementDisposed MovementOutcome = "disposed"
)

// 移动流水表，只追加。Previous/New 存位置引用的 JSONB 快照，
// 层级节点后续被改名或删除也不影响历史展示。
type StorageMovement struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SampleItemID int64           `gorm:"type:bigint;not null;index:idx_movement_sample" json:"sample_item_id"`
	PreviousRef  datatypes.JSON  `gorm:"type:jsonb" json:"previous_ref"`
	NewRef       datatypes.JSON  `gorm:"type:jsonb" json:"new_ref"`
	Reason       *string         `gorm:"type:text" json:"reason"`
	Actor        string          `gorm:"type:varchar(120);not null" json:"actor"`
	Outcome      MovementOutcome `gorm:"type:varchar(20);not null" json:"outcome"`
	MovedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"moved_at"`
}

func (*StorageMovement) TableName() string {
	return "storage_movement"
}
