package sample

import (
	// 外部依赖
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	// 内部引用
	config "github.com/coldstack/samplestore/internal/config"
	code "github.com/coldstack/samplestore/pkg/common/code"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	core "github.com/coldstack/samplestore/pkg/core/sample"
	coreLocation "github.com/coldstack/samplestore/pkg/core/location"
	logger "github.com/coldstack/samplestore/pkg/middleware/logger"
	model "github.com/coldstack/samplestore/pkg/model"
	utils "github.com/coldstack/samplestore/pkg/utils"
)

// planStore 方案暂存，生产实现落 Redis
type planStore interface {
	Save(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type redisPlanStore struct {
	client *goredis.Client
}

func newRedisPlanStore(client *goredis.Client) planStore {
	return &redisPlanStore{client: client}
}

func (r *redisPlanStore) Save(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, payload, ttl).Err()
}

func (r *redisPlanStore) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, code.PlanNotFound
	}
	return b, err
}

func (r *redisPlanStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// stagedPlan redis 里的方案载荷
type stagedPlan struct {
	PlanUUID  uuid.UUID         `json:"plan_uuid"`
	RackUUID  uuid.UUID         `json:"rack_uuid"`
	Entries   []*core.PlanEntry `json:"entries"`
	Actor     string            `json:"actor"`
	ExpiresAt time.Time         `json:"expires_at"`
}

func planTTL() time.Duration {
	minutes := config.Global().Storage.PlanTTLMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// PlanBulkMove 行优先首次适配：从 A1 起逐行扫描，跳过已占坐标，
// 先补空洞再往后排。方案只是提议，提交时还会重新校验。
func (s *sampleImpl) PlanBulkMove(ctx context.Context, req *core.PlanReq) (*core.PlanResp, error) {
	rack, err := s.locStore.GetRackByUUID(ctx, req.RackUUID)
	if err != nil {
		return nil, err
	}
	if _, err := s.locSvc.ResolveRackPosition(ctx, &coreLocation.RackPositionReq{
		RackUUID:   req.RackUUID,
		Coordinate: coreLocation.FormatCoordinate(0, 0),
	}); err != nil {
		// 祖先链停用或格架本身停用时不给方案
		return nil, err
	}

	assignments, err := s.locStore.ListAssignmentsByRack(ctx, rack.ID)
	if err != nil {
		return nil, err
	}
	occupied := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		occupied[a.Coordinate] = struct{}{}
	}

	free := make([]string, 0, rack.Capacity()-len(assignments))
	for row := 0; row < rack.RowCount; row++ {
		for col := 0; col < rack.ColCount; col++ {
			coordinate := coreLocation.FormatCoordinate(row, col)
			if _, taken := occupied[coordinate]; !taken {
				free = append(free, coordinate)
			}
		}
	}
	if len(free) < len(req.SampleUUIDs) {
		return nil, code.RackFull.WithDetail(map[string]any{
			"free":  len(free),
			"items": len(req.SampleUUIDs),
		})
	}

	entries := make([]*core.PlanEntry, 0, len(req.SampleUUIDs))
	for i, sampleUUID := range req.SampleUUIDs {
		item, err := s.sampleStore.GetSampleByUUID(ctx, sampleUUID)
		if err != nil {
			return nil, err
		}
		if item.Status == model.SampleDisposed {
			return nil, code.AlreadyDisposed.WithMsgf("sample %s is disposed and cannot be placed", item.ExternalID)
		}
		entries = append(entries, &core.PlanEntry{SampleUUID: sampleUUID, Coordinate: free[i]})
	}

	planUUID := uuid.NewV4()
	plan := &stagedPlan{
		PlanUUID:  planUUID,
		RackUUID:  req.RackUUID,
		Entries:   entries,
		Actor:     actorID(ctx),
		ExpiresAt: time.Now().Add(planTTL()),
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		return nil, code.CreateDataErr.WithErr(err)
	}
	if err := s.plans.Save(ctx, utils.PlanKey(planUUID), payload, planTTL()); err != nil {
		logger.Errorf(ctx, "stage bulk move plan err: %+v", err)
		return nil, code.CreateDataErr.WithErr(err)
	}

	return &core.PlanResp{
		PlanUUID:  planUUID,
		RackUUID:  req.RackUUID,
		Entries:   entries,
		ExpiresAt: plan.ExpiresAt,
	}, nil
}

func (s *sampleImpl) loadPlan(ctx context.Context, planUUID uuid.UUID) (*stagedPlan, error) {
	payload, err := s.plans.Load(ctx, utils.PlanKey(planUUID))
	if err != nil {
		if errors.Is(err, code.PlanNotFound) {
			return nil, err
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	plan := &stagedPlan{}
	if err := json.Unmarshal(payload, plan); err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return plan, nil
}

func (s *sampleImpl) GetPlan(ctx context.Context, req *core.PlanIDReq) (*core.PlanResp, error) {
	plan, err := s.loadPlan(ctx, req.PlanUUID)
	if err != nil {
		return nil, err
	}
	return &core.PlanResp{
		PlanUUID:  plan.PlanUUID,
		RackUUID:  plan.RackUUID,
		Entries:   plan.Entries,
		ExpiresAt: plan.ExpiresAt,
	}, nil
}

// CommitPlan 逐项提交：未入位的走 Assign，已入位的走 Move，
// 每项各自成败，方案过期或坐标被抢只影响对应条目。
func (s *sampleImpl) CommitPlan(ctx context.Context, req *core.CommitReq) (*core.CommitResp, error) {
	plan, err := s.loadPlan(ctx, req.PlanUUID)
	if err != nil {
		return nil, err
	}

	entries := plan.Entries
	if len(req.Entries) > 0 {
		entries = req.Entries
	}

	resp := &core.CommitResp{
		PlanUUID: plan.PlanUUID,
		Results:  make([]*core.ItemOutcome, 0, len(entries)),
	}
	for _, entry := range entries {
		outcome := &core.ItemOutcome{SampleUUID: entry.SampleUUID, Coordinate: entry.Coordinate}
		if err := s.commitEntry(ctx, plan.RackUUID, entry, req.Reason); err != nil {
			outcome.Error = err.Error()
			resp.Failed++
		} else {
			outcome.Success = true
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, outcome)
	}

	if err := s.plans.Delete(ctx, utils.PlanKey(plan.PlanUUID)); err != nil {
		logger.Warnf(ctx, "delete committed plan %s err: %+v", plan.PlanUUID, err)
	}
	logger.Infof(ctx, "bulk move plan %s committed: %d ok, %d failed",
		plan.PlanUUID, resp.Succeeded, resp.Failed)
	return resp, nil
}

func (s *sampleImpl) commitEntry(ctx context.Context, rackUUID uuid.UUID, entry *core.PlanEntry, reason *string) error {
	item, err := s.sampleStore.GetSampleByUUID(ctx, entry.SampleUUID)
	if err != nil {
		return err
	}
	existing, err := s.currentAssignment(ctx, item.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		_, err = s.Assign(ctx, &core.AssignReq{
			SampleUUID: entry.SampleUUID,
			RackUUID:   rackUUID,
			Coordinate: entry.Coordinate,
		})
		return err
	}
	_, err = s.Move(ctx, &core.MoveReq{
		SampleUUID: entry.SampleUUID,
		RackUUID:   rackUUID,
		Coordinate: entry.Coordinate,
		Reason:     reason,
	})
	return err
}
