package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/coldstack/samplestore/pkg/model"
)

// MovementQuery 移动流水过滤条件
type MovementQuery struct {
	SampleItemID int64
	Offset       int
	Limit        int
}

// 流水只追加，不提供更新和删除
type MovementRepo interface {
	IDOrUUIDTranslate

	CreateMovement(ctx context.Context, m *model.StorageMovement) error
	ListMovements(ctx context.Context, q MovementQuery) ([]*model.StorageMovement, int64, error)
}
