package movement

import (
	// 外部依赖
	"context"

	// 内部引用
	code "github.com/coldstack/samplestore/pkg/common/code"
	logger "github.com/coldstack/samplestore/pkg/middleware/logger"
	model "github.com/coldstack/samplestore/pkg/model"
	repo "github.com/coldstack/samplestore/pkg/repo"
)

type movementImpl struct {
	repo.IDOrUUIDTranslate
}

func NewMovementRepo() repo.MovementRepo {
	return &movementImpl{IDOrUUIDTranslate: repo.NewBaseDB()}
}

func (m *movementImpl) CreateMovement(ctx context.Context, rec *model.StorageMovement) error {
	if err := m.DBWithContext(ctx).Create(rec).Error; err != nil {
		logger.Errorf(ctx, "CreateMovement err: %v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (m *movementImpl) ListMovements(ctx context.Context, q repo.MovementQuery) ([]*model.StorageMovement, int64, error) {
	db := m.DBWithContext(ctx).Model(&model.StorageMovement{}).
		Where("sample_item_id = ?", q.SampleItemID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
	list := make([]*model.StorageMovement, 0, q.Limit)
	// 审计历史从旧到新
	if err := db.Order("moved_at asc, id asc").Offset(q.Offset).Limit(q.Limit).Find(&list).Error; err != nil {
		logger.Errorf(ctx, "ListMovements err: %v", err)
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}
