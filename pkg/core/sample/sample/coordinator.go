package sample

import (
	// 外部依赖
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	datatypes "gorm.io/datatypes"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
	code "github.com/coldstack/samplestore/pkg/common/code"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	core "github.com/coldstack/samplestore/pkg/core/sample"
	coreLocation "github.com/coldstack/samplestore/pkg/core/location"
	implLocation "github.com/coldstack/samplestore/pkg/core/location/location"
	logger "github.com/coldstack/samplestore/pkg/middleware/logger"
	model "github.com/coldstack/samplestore/pkg/model"
	repo "github.com/coldstack/samplestore/pkg/repo"
)

func snapshot(ref *coreLocation.LocationReference) datatypes.JSON {
	if ref == nil {
		return nil
	}
	b, err := json.Marshal(ref)
	if err != nil {
		return nil
	}
	return b
}

func referenceFromSnapshot(raw datatypes.JSON) *coreLocation.LocationReference {
	if len(raw) == 0 {
		return nil
	}
	ref := &coreLocation.LocationReference{}
	if err := json.Unmarshal(raw, ref); err != nil {
		return nil
	}
	return ref
}

// Assign 首次入位。查-占序列跑在可串行化事务里：
// 两个调用方抢同一空位时恰好一个成功，另一个拿 OccupiedPosition。
func (s *sampleImpl) Assign(ctx context.Context, req *core.AssignReq) (*core.MutationResp, error) {
	item, err := s.sampleStore.GetSampleByUUID(ctx, req.SampleUUID)
	if err != nil {
		return nil, err
	}
	if item.Status == model.SampleDisposed {
		return nil, code.AlreadyDisposed
	}

	target, err := s.locSvc.ResolveRackPosition(ctx, &coreLocation.RackPositionReq{
		RackUUID:   req.RackUUID,
		Coordinate: req.Coordinate,
	})
	if err != nil {
		return nil, err
	}

	err = s.sampleStore.ExecSerializableTx(ctx, func(txCtx context.Context) error {
		existing, txErr := s.currentAssignment(txCtx, item.ID)
		if txErr != nil {
			return txErr
		}
		if existing != nil {
			return code.AlreadyAssigned
		}

		if occupant, txErr := s.sampleStore.GetAssignmentAt(txCtx, target.RackID, target.Coordinate); txErr == nil {
			return code.OccupiedPosition.WithDetail(map[string]any{
				"coordinate":     target.Coordinate,
				"sample_item_id": occupant.SampleItemID,
			})
		} else if !errors.Is(txErr, code.RecordNotFound) {
			return txErr
		}

		if txErr := s.sampleStore.CreateAssignment(txCtx, &model.StorageAssignment{
			SampleItemID: item.ID,
			RackID:       target.RackID,
			Coordinate:   target.Coordinate,
			AssignedAt:   time.Now(),
			Notes:        req.Notes,
		}); txErr != nil {
			return txErr
		}

		return s.movementStore.CreateMovement(txCtx, &model.StorageMovement{
			SampleItemID: item.ID,
			PreviousRef:  nil,
			NewRef:       snapshot(target.Reference),
			Actor:        actorID(ctx),
			Outcome:      model.MovementAssigned,
			MovedAt:      time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "sample %s assigned to %s", item.ExternalID, target.Reference.HierarchicalPath)
	return s.mutationResp(ctx, req.SampleUUID, target.RackID)
}

// Move 移位：释放旧位与占用新位是同一个原子步骤，
// 新位占用失败时旧位保持不动。
func (s *sampleImpl) Move(ctx context.Context, req *core.MoveReq) (*core.MutationResp, error) {
	item, err := s.sampleStore.GetSampleByUUID(ctx, req.SampleUUID)
	if err != nil {
		return nil, err
	}
	if item.Status == model.SampleDisposed {
		return nil, code.AlreadyDisposed
	}

	target, err := s.locSvc.ResolveRackPosition(ctx, &coreLocation.RackPositionReq{
		RackUUID:   req.RackUUID,
		Coordinate: req.Coordinate,
	})
	if err != nil {
		return nil, err
	}

	err = s.sampleStore.ExecSerializableTx(ctx, func(txCtx context.Context) error {
		existing, txErr := s.currentAssignment(txCtx, item.ID)
		if txErr != nil {
			return txErr
		}
		if existing == nil {
			return code.NotAssigned
		}
		if existing.RackID == target.RackID && existing.Coordinate == target.Coordinate {
			return code.NoOpMove
		}

		if occupant, txErr := s.sampleStore.GetAssignmentAt(txCtx, target.RackID, target.Coordinate); txErr == nil {
			return code.OccupiedPosition.WithDetail(map[string]any{
				"coordinate":     target.Coordinate,
				"sample_item_id": occupant.SampleItemID,
			})
		} else if !errors.Is(txErr, code.RecordNotFound) {
			return txErr
		}

		previous, txErr := s.referenceForAssignment(txCtx, existing)
		if txErr != nil {
			return txErr
		}

		if txErr := s.sampleStore.MoveAssignment(txCtx, existing.ID, target.RackID, target.Coordinate); txErr != nil {
			return txErr
		}

		return s.movementStore.CreateMovement(txCtx, &model.StorageMovement{
			SampleItemID: item.ID,
			PreviousRef:  snapshot(previous),
			NewRef:       snapshot(target.Reference),
			Reason:       req.Reason,
			Actor:        actorID(ctx),
			Outcome:      model.MovementMoved,
			MovedAt:      time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "sample %s moved to %s", item.ExternalID, target.Reference.HierarchicalPath)
	return s.mutationResp(ctx, req.SampleUUID, target.RackID)
}

// Dispose 报废：受控词表 + 显式确认，位置释放，状态终结
func (s *sampleImpl) Dispose(ctx context.Context, req *core.DisposeReq) (*core.MutationResp, error) {
	if !req.Confirmed {
		return nil, code.NotConfirmed
	}
	if !slices.Contains(core.DisposalReasons, req.Reason) || !slices.Contains(core.DisposalMethods, req.Method) {
		return nil, code.DisposalVocab.WithDetail(map[string]any{
			"reasons": core.DisposalReasons,
			"methods": core.DisposalMethods,
		})
	}

	item, err := s.sampleStore.GetSampleByUUID(ctx, req.SampleUUID)
	if err != nil {
		return nil, err
	}
	if item.Status == model.SampleDisposed {
		return nil, code.AlreadyDisposed
	}

	err = s.sampleStore.ExecSerializableTx(ctx, func(txCtx context.Context) error {
		existing, txErr := s.currentAssignment(txCtx, item.ID)
		if txErr != nil {
			return txErr
		}
		if existing == nil {
			return code.NotAssigned
		}

		previous, txErr := s.referenceForAssignment(txCtx, existing)
		if txErr != nil {
			return txErr
		}

		if txErr := s.sampleStore.DeleteAssignment(txCtx, existing.ID); txErr != nil {
			return txErr
		}
		if txErr := s.sampleStore.UpdateSampleByUUID(txCtx, item.UUID, map[string]any{
			"status": model.SampleDisposed,
		}); txErr != nil {
			return txErr
		}

		reason := req.Reason + " / " + req.Method
		if req.Notes != nil && *req.Notes != "" {
			reason += ": " + *req.Notes
		}
		return s.movementStore.CreateMovement(txCtx, &model.StorageMovement{
			SampleItemID: item.ID,
			PreviousRef:  snapshot(previous),
			NewRef:       nil,
			Reason:       &reason,
			Actor:        actorID(ctx),
			Outcome:      model.MovementDisposed,
			MovedAt:      time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "sample %s disposed (%s / %s)", item.ExternalID, req.Reason, req.Method)
	resp, err := s.Get(ctx, &core.SampleReq{UUID: req.SampleUUID})
	if err != nil {
		return nil, err
	}
	return &core.MutationResp{Sample: resp}, nil
}

// mutationResp assign/move 的统一返回：最新样品状态 + 目标格架容量提示
func (s *sampleImpl) mutationResp(ctx context.Context, sampleUUID uuid.UUID, rackID int64) (*core.MutationResp, error) {
	resp, err := s.Get(ctx, &core.SampleReq{UUID: sampleUUID})
	if err != nil {
		return nil, err
	}

	var warning *string
	rack, rackErr := s.rackByID(ctx, rackID)
	if rackErr == nil {
		if occupied, countErr := s.locStore.CountAssignmentsInRack(ctx, rackID); countErr == nil {
			warning = implLocation.CapacityWarning(int(occupied), rack.Capacity())
		}
	}
	return &core.MutationResp{Sample: resp, CapacityWarning: warning}, nil
}

func (s *sampleImpl) rackByID(ctx context.Context, id int64) (*model.StorageRack, error) {
	u, err := s.locStore.GetUUIDByID(ctx, &model.StorageRack{}, id)
	if err != nil {
		return nil, err
	}
	return s.locStore.GetRackByUUID(ctx, u)
}

// Movements 样品移动历史，从旧到新
func (s *sampleImpl) Movements(ctx context.Context, req *core.MovementsReq) (*common.PageResp[[]*core.MovementResp], error) {
	item, err := s.sampleStore.GetSampleByUUID(ctx, req.SampleUUID)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	records, total, err := s.movementStore.ListMovements(ctx, repo.MovementQuery{
		SampleItemID: item.ID,
		Offset:       req.Offset(),
		Limit:        req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*core.MovementResp, 0, len(records))
	for _, rec := range records {
		list = append(list, &core.MovementResp{
			ID:       rec.ID,
			Previous: referenceFromSnapshot(rec.PreviousRef),
			New:      referenceFromSnapshot(rec.NewRef),
			Reason:   rec.Reason,
			Actor:    rec.Actor,
			Outcome:  rec.Outcome,
			MovedAt:  rec.MovedAt,
		})
	}
	return &common.PageResp[[]*core.MovementResp]{
		Data:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}
