package model

import (
	// 外部依赖
	"time"
)

type SampleStatus string

const (
	SampleActive   SampleStatus = "active"
	SampleDisposed SampleStatus = "disposed"
)

// 样品条目表
type SampleItem struct {
	BaseModel
	ExternalID string       `gorm:"type:varchar(120);not null;uniqueIndex:idx_sampleitem_external" json:"external_id"`
	Type       string       `gorm:"type:varchar(50);not null" json:"type"`
	Status     SampleStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_sampleitem_status" json:"status"`
}

func (*SampleItem) TableName() string {
	return "sample_item"
}

// 占位表：样品与格架坐标的当前绑定。
// 两条唯一索引共同保证「一个坐标至多一个样品、一个样品至多一个坐标」，
// 是并发 assign 竞争时的数据库兜底。
type StorageAssignment struct {
	BaseModel
	SampleItemID int64     `gorm:"type:bigint;not null;uniqueIndex:idx_assignment_sample" json:"sample_item_id"`
	RackID       int64     `gorm:"type:bigint;not null;uniqueIndex:idx_assignment_rack_coord,priority:1;index:idx_assignment_rack" json:"rack_id"`
	Coordinate   string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_assignment_rack_coord,priority:2" json:"coordinate"`
	AssignedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"assigned_at"`
	Notes        *string   `gorm:"type:text" json:"notes"`
}

func (*StorageAssignment) TableName() string {
	return "storage_assignment"
}
