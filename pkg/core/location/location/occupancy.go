package location

import (
	// 外部依赖
	"context"
	"errors"
	"fmt"

	// 内部引用
	config "github.com/coldstack/samplestore/internal/config"
	code "github.com/coldstack/samplestore/pkg/common/code"
	core "github.com/coldstack/samplestore/pkg/core/location"
	model "github.com/coldstack/samplestore/pkg/model"
)

// CapacityWarning 占用率达阈值时的提示文案，未达阈值返回 nil
func CapacityWarning(occupied int, capacity int) *string {
	if capacity <= 0 {
		return nil
	}
	threshold := config.Global().Storage.CapacityWarnThreshold
	ratio := float64(occupied) / float64(capacity)
	if ratio < threshold {
		return nil
	}
	var msg string
	switch {
	case occupied >= capacity:
		msg = fmt.Sprintf("Rack is full: %d/%d positions occupied.", occupied, capacity)
	case ratio >= 0.9:
		msg = fmt.Sprintf("Rack is nearly full: %d/%d positions occupied.", occupied, capacity)
	default:
		msg = fmt.Sprintf("Rack capacity warning: %d/%d positions occupied.", occupied, capacity)
	}
	return &msg
}

// Occupancy 整架占用快照：坐标按行优先列出，占用位带样品 UUID
func (l *locationImpl) Occupancy(ctx context.Context, req *core.OccupancyReq) (*core.OccupancyResp, error) {
	rack, err := l.locStore.GetRackByUUID(ctx, req.RackUUID)
	if err != nil {
		return nil, err
	}

	assignments, err := l.locStore.ListAssignmentsByRack(ctx, rack.ID)
	if err != nil {
		return nil, err
	}
	occupants := make(map[string]int64, len(assignments))
	for _, a := range assignments {
		occupants[a.Coordinate] = a.SampleItemID
	}

	capacity := rack.Capacity()
	positions := make([]*core.PositionState, 0, capacity)
	for row := 0; row < rack.RowCount; row++ {
		for col := 0; col < rack.ColCount; col++ {
			coordinate := core.FormatCoordinate(row, col)
			state := &core.PositionState{Coordinate: coordinate}
			if sampleID, ok := occupants[coordinate]; ok {
				state.Occupied = true
				if u, uErr := l.sampleStore.GetUUIDByID(ctx, &model.SampleItem{}, sampleID); uErr == nil {
					state.SampleItemUUID = &u
				}
			}
			positions = append(positions, state)
		}
	}

	occupied := len(assignments)
	ratio := 0.0
	if capacity > 0 {
		ratio = float64(occupied) / float64(capacity)
	}
	return &core.OccupancyResp{
		RackUUID:      rack.UUID,
		OccupiedCount: occupied,
		TotalCapacity: capacity,
		Ratio:         ratio,
		Warning:       CapacityWarning(occupied, capacity),
		Positions:     positions,
	}, nil
}

// IsOccupied 单坐标查询
func (l *locationImpl) IsOccupied(ctx context.Context, req *core.RackPositionReq) (*core.PositionState, error) {
	rack, err := l.locStore.GetRackByUUID(ctx, req.RackUUID)
	if err != nil {
		return nil, err
	}
	coordinate, err := core.NormalizeCoordinate(req.Coordinate, rack.RowCount, rack.ColCount)
	if err != nil {
		return nil, err
	}

	assignment, err := l.sampleStore.GetAssignmentAt(ctx, rack.ID, coordinate)
	if err != nil {
		if errors.Is(err, code.RecordNotFound) {
			return &core.PositionState{Coordinate: coordinate}, nil
		}
		return nil, err
	}
	u, err := l.sampleStore.GetUUIDByID(ctx, &model.SampleItem{}, assignment.SampleItemID)
	if err != nil {
		return nil, err
	}
	return &core.PositionState{Coordinate: coordinate, Occupied: true, SampleItemUUID: &u}, nil
}
