package sample

import (
	// 外部依赖
	"context"
	"errors"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
	code "github.com/coldstack/samplestore/pkg/common/code"
	core "github.com/coldstack/samplestore/pkg/core/sample"
	coreLocation "github.com/coldstack/samplestore/pkg/core/location"
	implLocation "github.com/coldstack/samplestore/pkg/core/location/location"
	auth "github.com/coldstack/samplestore/pkg/middleware/auth"
	redis "github.com/coldstack/samplestore/pkg/middleware/redis"
	model "github.com/coldstack/samplestore/pkg/model"
	repo "github.com/coldstack/samplestore/pkg/repo"
	repoLocation "github.com/coldstack/samplestore/pkg/repo/location"
	repoMovement "github.com/coldstack/samplestore/pkg/repo/movement"
	repoSample "github.com/coldstack/samplestore/pkg/repo/sample"
)

type sampleImpl struct {
	sampleStore   repo.SampleRepo
	movementStore repo.MovementRepo
	locStore      repo.LocationRepo
	locSvc        coreLocation.Service
	plans         planStore
}

func New() core.Service {
	locStore := repoLocation.NewLocationRepo()
	sampleStore := repoSample.NewSampleRepo()
	return &sampleImpl{
		sampleStore:   sampleStore,
		movementStore: repoMovement.NewMovementRepo(),
		locStore:      locStore,
		locSvc:        implLocation.NewWithStores(locStore, sampleStore),
		plans:         newRedisPlanStore(redis.GetClient()),
	}
}

// NewWithDeps 供单测注入假仓储与假方案暂存
func NewWithDeps(sampleStore repo.SampleRepo, movementStore repo.MovementRepo,
	locStore repo.LocationRepo, locSvc coreLocation.Service, plans planStore) core.Service {
	return &sampleImpl{
		sampleStore:   sampleStore,
		movementStore: movementStore,
		locStore:      locStore,
		locSvc:        locSvc,
		plans:         plans,
	}
}

func actorID(ctx context.Context) string {
	if actor := auth.GetCurrentActor(ctx); actor != nil {
		return actor.ID
	}
	return "system"
}

// Register 登记样品，不涉及占位
func (s *sampleImpl) Register(ctx context.Context, req *core.RegisterReq) (*core.SampleResp, error) {
	item := &model.SampleItem{
		ExternalID: req.ExternalID,
		Type:       req.Type,
		Status:     model.SampleActive,
	}
	if err := s.sampleStore.CreateSample(ctx, item); err != nil {
		return nil, err
	}
	return s.sampleResp(ctx, item), nil
}

func (s *sampleImpl) Query(ctx context.Context, req *core.QueryReq) (*common.PageResp[[]*core.SampleResp], error) {
	req.Normalize()
	q := repo.SampleQuery{
		ExternalIDLike: req.ExternalID,
		Type:           req.Type,
		Offset:         req.Offset(),
		Limit:          req.PageSize,
	}
	if req.Status != nil && *req.Status != "" {
		status := model.SampleStatus(*req.Status)
		if status != model.SampleActive && status != model.SampleDisposed {
			return nil, code.ParamErr.WithMsgf("unknown sample status %q", *req.Status)
		}
		q.Status = &status
	}

	items, total, err := s.sampleStore.ListSamples(ctx, q)
	if err != nil {
		return nil, err
	}
	list := make([]*core.SampleResp, 0, len(items))
	for _, item := range items {
		list = append(list, s.sampleResp(ctx, item))
	}
	return &common.PageResp[[]*core.SampleResp]{
		Data:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *sampleImpl) Get(ctx context.Context, req *core.SampleReq) (*core.SampleResp, error) {
	item, err := s.sampleStore.GetSampleByUUID(ctx, req.UUID)
	if err != nil {
		return nil, err
	}
	return s.sampleResp(ctx, item), nil
}

func (s *sampleImpl) Metrics(ctx context.Context) (*core.MetricsResp, error) {
	counts, err := s.sampleStore.CountSamplesByStatus(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.sampleStore.CountAssignments(ctx)
	if err != nil {
		return nil, err
	}
	return &core.MetricsResp{
		TotalSampleItems: counts[model.SampleActive] + counts[model.SampleDisposed],
		Active:           counts[model.SampleActive],
		Disposed:         counts[model.SampleDisposed],
		StorageLocations: assignments,
	}, nil
}

// sampleResp 样品 DTO，带当前位置（如有）
func (s *sampleImpl) sampleResp(ctx context.Context, item *model.SampleItem) *core.SampleResp {
	resp := &core.SampleResp{
		UUID:       item.UUID,
		ExternalID: item.ExternalID,
		Type:       item.Type,
		Status:     item.Status,
	}
	assignment, err := s.sampleStore.GetAssignmentBySample(ctx, item.ID)
	if err != nil {
		return resp
	}
	resp.AssignedAt = &assignment.AssignedAt
	if ref, refErr := s.referenceForAssignment(ctx, assignment); refErr == nil {
		resp.Location = ref
	}
	return resp
}

func (s *sampleImpl) referenceForAssignment(ctx context.Context, a *model.StorageAssignment) (*coreLocation.LocationReference, error) {
	rackUUID, err := s.locStore.GetUUIDByID(ctx, &model.StorageRack{}, a.RackID)
	if err != nil {
		return nil, err
	}
	target, err := s.locSvc.ResolveRackPosition(ctx, &coreLocation.RackPositionReq{
		RackUUID:      rackUUID,
		Coordinate:    a.Coordinate,
		AllowInactive: true, // 历史占位在层级被停用后仍需可显示
	})
	if err != nil {
		return nil, err
	}
	return target.Reference, nil
}

func (s *sampleImpl) currentAssignment(ctx context.Context, itemID int64) (*model.StorageAssignment, error) {
	assignment, err := s.sampleStore.GetAssignmentBySample(ctx, itemID)
	if err != nil {
		if errors.Is(err, code.RecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return assignment, nil
}
