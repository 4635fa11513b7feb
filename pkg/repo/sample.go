package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	model "github.com/coldstack/samplestore/pkg/model"
)

// SampleQuery 样品列表过滤条件
type SampleQuery struct {
	ExternalIDLike *string
	Type           *string
	Status         *model.SampleStatus
	Offset         int
	Limit          int
}

type SampleRepo interface {
	IDOrUUIDTranslate

	CreateSample(ctx context.Context, item *model.SampleItem) error
	GetSampleByUUID(ctx context.Context, u uuid.UUID) (*model.SampleItem, error)
	GetSampleByExternalID(ctx context.Context, externalID string) (*model.SampleItem, error)
	ListSamples(ctx context.Context, q SampleQuery) ([]*model.SampleItem, int64, error)
	UpdateSampleByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error
	CountSamplesByStatus(ctx context.Context) (map[model.SampleStatus]int64, error)

	// 占位：当前绑定的读写
	GetAssignmentBySample(ctx context.Context, sampleItemID int64) (*model.StorageAssignment, error)
	GetAssignmentAt(ctx context.Context, rackID int64, coordinate string) (*model.StorageAssignment, error)
	CreateAssignment(ctx context.Context, a *model.StorageAssignment) error
	MoveAssignment(ctx context.Context, assignmentID int64, rackID int64, coordinate string) error
	DeleteAssignment(ctx context.Context, assignmentID int64) error
	CountAssignments(ctx context.Context) (int64, error)
}
