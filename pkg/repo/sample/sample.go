package sample

import (
	// 外部依赖
	"context"
	"errors"

	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/coldstack/samplestore/pkg/common/code"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	logger "github.com/coldstack/samplestore/pkg/middleware/logger"
	model "github.com/coldstack/samplestore/pkg/model"
	repo "github.com/coldstack/samplestore/pkg/repo"
)

type sampleImpl struct {
	repo.IDOrUUIDTranslate
}

func NewSampleRepo() repo.SampleRepo {
	return &sampleImpl{IDOrUUIDTranslate: repo.NewBaseDB()}
}

func (s *sampleImpl) CreateSample(ctx context.Context, item *model.SampleItem) error {
	if err := s.DBWithContext(ctx).Create(item).Error; err != nil {
		logger.Errorf(ctx, "CreateSample err: %v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (s *sampleImpl) GetSampleByUUID(ctx context.Context, u uuid.UUID) (*model.SampleItem, error) {
	item := &model.SampleItem{}
	if err := s.DBWithContext(ctx).Where("uuid = ?", u).Take(item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.SampleNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return item, nil
}

func (s *sampleImpl) GetSampleByExternalID(ctx context.Context, externalID string) (*model.SampleItem, error) {
	item := &model.SampleItem{}
	if err := s.DBWithContext(ctx).Where("external_id = ?", externalID).Take(item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.SampleNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return item, nil
}

func (s *sampleImpl) ListSamples(ctx context.Context, q repo.SampleQuery) ([]*model.SampleItem, int64, error) {
	db := s.DBWithContext(ctx).Model(&model.SampleItem{})
	if q.ExternalIDLike != nil && *q.ExternalIDLike != "" {
		db = db.Where("external_id ILIKE ?", "%"+*q.ExternalIDLike+"%")
	}
	if q.Type != nil && *q.Type != "" {
		db = db.Where("type = ?", *q.Type)
	}
	if q.Status != nil {
		db = db.Where("status = ?", *q.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	list := make([]*model.SampleItem, 0, q.Limit)
	if err := db.Order("id desc").Offset(q.Offset).Limit(q.Limit).Find(&list).Error; err != nil {
		logger.Errorf(ctx, "ListSamples err: %v", err)
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

func (s *sampleImpl) UpdateSampleByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error {
	res := s.DBWithContext(ctx).Model(&model.SampleItem{}).Where("uuid = ?", u).Updates(data)
	if res.Error != nil {
		logger.Errorf(ctx, "UpdateSampleByUUID err: %v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.SampleNotFound
	}
	return nil
}

func (s *sampleImpl) CountSamplesByStatus(ctx context.Context) (map[model.SampleStatus]int64, error) {
	type statusCount struct {
		Status model.SampleStatus
		N      int64
	}
	counts := make([]statusCount, 0, 2)
	if err := s.DBWithContext(ctx).Model(&model.SampleItem{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	ret := make(map[model.SampleStatus]int64, len(counts))
	for _, c := range counts {
		ret[c.Status] = c.N
	}
	return ret, nil
}

// ---------- 占位 ----------

func (s *sampleImpl) GetAssignmentBySample(ctx context.Context, sampleItemID int64) (*model.StorageAssignment, error) {
	a := &model.StorageAssignment{}
	if err := s.DBWithContext(ctx).Where("sample_item_id = ?", sampleItemID).Take(a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.RecordNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return a, nil
}

func (s *sampleImpl) GetAssignmentAt(ctx context.Context, rackID int64, coordinate string) (*model.StorageAssignment, error) {
	a := &model.StorageAssignment{}
	if err := s.DBWithContext(ctx).
		Where("rack_id = ? AND coordinate = ?", rackID, coordinate).
		Take(a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.RecordNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return a, nil
}

func (s *sampleImpl) CreateAssignment(ctx context.Context, a *model.StorageAssignment) error {
	if err := s.DBWithContext(ctx).Create(a).Error; err != nil {
		logger.Errorf(ctx, "CreateAssignment err: %v", err)
		// 唯一索引冲突意味着并发占位竞争失败
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return code.OccupiedPosition.WithErr(err)
		}
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (s *sampleImpl) MoveAssignment(ctx context.Context, assignmentID int64, rackID int64, coordinate string) error {
	res := s.DBWithContext(ctx).Model(&model.StorageAssignment{}).
		Where("id = ?", assignmentID).
		Updates(map[string]any{"rack_id": rackID, "coordinate": coordinate})
	if res.Error != nil {
		logger.Errorf(ctx, "MoveAssignment err: %v", res.Error)
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return code.OccupiedPosition.WithErr(res.Error)
		}
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (s *sampleImpl) DeleteAssignment(ctx context.Context, assignmentID int64) error {
	if err := s.DBWithContext(ctx).Delete(&model.StorageAssignment{}, assignmentID).Error; err != nil {
		logger.Errorf(ctx, "DeleteAssignment err: %v", err)
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

func (s *sampleImpl) CountAssignments(ctx context.Context) (int64, error) {
	var n int64
	if err := s.DBWithContext(ctx).Model(&model.StorageAssignment{}).Count(&n).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return n, nil
}
