package location

import (
	// 外部依赖
	"context"
	"fmt"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
	code "github.com/coldstack/samplestore/pkg/common/code"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	core "github.com/coldstack/samplestore/pkg/core/location"
	logger "github.com/coldstack/samplestore/pkg/middleware/logger"
	model "github.com/coldstack/samplestore/pkg/model"
	repo "github.com/coldstack/samplestore/pkg/repo"
)

// CreateNode 按层级落表。code/label 在各自父节点下唯一，
// 行列数只在创建时设定。
func (l *locationImpl) CreateNode(ctx context.Context, req *core.CreateNodeReq) (*core.NodeResp, error) {
	switch req.Level {
	case core.LevelRoom:
		return l.createRoom(ctx, req)
	case core.LevelDevice:
		return l.createDevice(ctx, req)
	case core.LevelShelf:
		return l.createShelf(ctx, req)
	case core.LevelRack:
		return l.createRack(ctx, req)
	default:
		return nil, code.ParamErr.WithMsgf("unknown storage level %q", req.Level)
	}
}

func (l *locationImpl) createRoom(ctx context.Context, req *core.CreateNodeReq) (*core.NodeResp, error) {
	if req.Name == "" {
		return nil, code.ParamErr.WithMsg("room name is required")
	}
	room := &model.StorageRoom{
		Code:        req.Code,
		Name:        req.Name,
		Active:      true,
		Description: req.Description,
	}
	if err := l.locStore.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return roomResp(room), nil
}

func (l *locationImpl) createDevice(ctx context.Context, req *core.CreateNodeReq) (*core.NodeResp, error) {
	if req.Name == "" {
		return nil, code.ParamErr.WithMsg("device name is required")
	}
	if req.ParentUUID == nil {
		return nil, code.ParentNotFound.WithMsg("device requires a parent room")
	}
	room, err := l.locStore.GetRoomByUUID(ctx, *req.ParentUUID)
	if err != nil {
		return nil, code.ParentNotFound.WithErr(err)
	}

	deviceType := model.DeviceFreezer
	if req.Type != nil {
		deviceType = model.DeviceType(*req.Type)
	}
	device := &model.StorageDevice{
		RoomID:        room.ID,
		Code:          req.Code,
		Name:          req.Name,
		Type:          deviceType,
		CapacityLimit: req.CapacityLimit,
		Active:        true,
		Description:   req.Description,
	}
	if err := l.locStore.CreateDevice(ctx, device); err != nil {
		return nil, err
	}
	return deviceResp(device), nil
}

func (l *locationImpl) createShelf(ctx context.Context, req *core.CreateNodeReq) (*core.NodeResp, error) {
	if req.ParentUUID == nil {
		return nil, code.ParentNotFound.WithMsg("shelf requires a parent device")
	}
	device, err := l.locStore.GetDeviceByUUID(ctx, *req.ParentUUID)
	if err != nil {
		return nil, code.ParentNotFound.WithErr(err)
	}
	shelf := &model.StorageShelf{
		DeviceID:      device.ID,
		Label:         req.Code,
		CapacityLimit: req.CapacityLimit,
		Active:        true,
	}
	if err := l.locStore.CreateShelf(ctx, shelf); err != nil {
		return nil, err
	}
	return shelfResp(shelf), nil
}

func (l *locationImpl) createRack(ctx context.Context, req *core.CreateNodeReq) (*core.NodeResp, error) {
	if req.ParentUUID == nil {
		return nil, code.ParentNotFound.WithMsg("rack requires a parent shelf")
	}
	if req.RowCount < 1 || req.ColCount < 1 {
		return nil, code.ParamErr.WithMsg("rack requires positive row_count and col_count")
	}
	shelf, err := l.locStore.GetShelfByUUID(ctx, *req.ParentUUID)
	if err != nil {
		return nil, code.ParentNotFound.WithErr(err)
	}
	rack := &model.StorageRack{
		ShelfID:  shelf.ID,
		Label:    req.Code,
		RowCount: req.RowCount,
		ColCount: req.ColCount,
		Active:   true,
	}
	if err := l.locStore.CreateRack(ctx, rack); err != nil {
		return nil, err
	}
	return rackResp(rack), nil
}

// UpdateNode 只动可变字段。code/label 与格架行列数不可变，
// 带了就整个请求拒绝。
func (l *locationImpl) UpdateNode(ctx context.Context, req *core.UpdateNodeReq) error {
	if req.Code != nil {
		return code.ImmutableField.WithMsg("code cannot change after creation")
	}
	if req.RowCount != nil || req.ColCount != nil {
		return code.ImmutableField.WithMsg("rack grid dimensions cannot change after creation")
	}

	data := map[string]any{}
	if req.Name != nil {
		data["name"] = *req.Name
	}
	if req.Description != nil {
		data["description"] = *req.Description
	}
	if req.CapacityLimit != nil {
		data["capacity_limit"] = *req.CapacityLimit
	}
	if req.Active != nil {
		data["active"] = *req.Active
	}
	if req.Type != nil {
		data["type"] = *req.Type
	}
	if len(data) == 0 {
		return code.ParamErr.WithMsg("nothing to update")
	}

	switch req.Level {
	case core.LevelRoom:
		delete(data, "capacity_limit")
		delete(data, "type")
		return l.locStore.UpdateRoomByUUID(ctx, req.UUID, data)
	case core.LevelDevice:
		return l.locStore.UpdateDeviceByUUID(ctx, req.UUID, data)
	case core.LevelShelf:
		delete(data, "name")
		delete(data, "description")
		delete(data, "type")
		if len(data) == 0 {
			return code.ParamErr.WithMsg("nothing to update")
		}
		return l.locStore.UpdateShelfByUUID(ctx, req.UUID, data)
	case core.LevelRack:
		delete(data, "name")
		delete(data, "description")
		delete(data, "capacity_limit")
		delete(data, "type")
		if len(data) == 0 {
			return code.ParamErr.WithMsg("nothing to update")
		}
		return l.locStore.UpdateRackByUUID(ctx, req.UUID, data)
	default:
		return code.ParamErr.WithMsgf("unknown storage level %q", req.Level)
	}
}

func (l *locationImpl) GetNode(ctx context.Context, req *core.NodeReq) (*core.NodeResp, error) {
	switch req.Level {
	case core.LevelRoom:
		room, err := l.locStore.GetRoomByUUID(ctx, req.UUID)
		if err != nil {
			return nil, err
		}
		resp := roomResp(room)
		resp.HierarchicalPath = room.Name
		return resp, nil
	case core.LevelDevice:
		device, err := l.locStore.GetDeviceByUUID(ctx, req.UUID)
		if err != nil {
			return nil, err
		}
		resp := deviceResp(device)
		if room, roomErr := l.roomByID(ctx, device.RoomID); roomErr == nil {
			resp.HierarchicalPath = joinPath(room.Name, device.Name)
		}
		return resp, nil
	case core.LevelShelf:
		shelf, err := l.locStore.GetShelfByUUID(ctx, req.UUID)
		if err != nil {
			return nil, err
		}
		resp := shelfResp(shelf)
		if room, device, ancErr := l.locStore.GetShelfAncestors(ctx, shelf); ancErr == nil {
			resp.HierarchicalPath = joinPath(room.Name, device.Name, shelf.Label)
		}
		return resp, nil
	case core.LevelRack:
		rack, err := l.locStore.GetRackByUUID(ctx, req.UUID)
		if err != nil {
			return nil, err
		}
		resp := rackResp(rack)
		if ref, refErr := l.rackReference(ctx, rack, nil); refErr == nil {
			resp.HierarchicalPath = ref.HierarchicalPath
		}
		return resp, nil
	default:
		return nil, code.ParamErr.WithMsgf("unknown storage level %q", req.Level)
	}
}

func (l *locationImpl) ListChildren(ctx context.Context, req *core.ListChildrenReq) (*common.PageResp[[]*core.NodeResp], error) {
	req.Normalize()
	q := repo.NodeQuery{
		IncludeInactive: req.IncludeInactive,
		Offset:          req.Offset(),
		Limit:           req.PageSize,
	}

	var (
		nodes []*core.NodeResp
		total int64
		err   error
	)
	switch req.Level {
	case core.LevelRoom:
		var rooms []*model.StorageRoom
		rooms, total, err = l.locStore.ListRooms(ctx, q)
		if err != nil {
			return nil, err
		}
		nodes = make([]*core.NodeResp, 0, len(rooms))
		for _, room := range rooms {
			nodes = append(nodes, roomResp(room))
		}
	case core.LevelDevice:
		if q.ParentID, err = l.parentID(ctx, &model.StorageRoom{}, req.ParentUUID); err != nil {
			return nil, err
		}
		var devices []*model.StorageDevice
		devices, total, err = l.locStore.ListDevices(ctx, q)
		if err != nil {
			return nil, err
		}
		nodes = make([]*core.NodeResp, 0, len(devices))
		for _, device := range devices {
			nodes = append(nodes, deviceResp(device))
		}
	case core.LevelShelf:
		if q.ParentID, err = l.parentID(ctx, &model.StorageDevice{}, req.ParentUUID); err != nil {
			return nil, err
		}
		var shelves []*model.StorageShelf
		shelves, total, err = l.locStore.ListShelves(ctx, q)
		if err != nil {
			return nil, err
		}
		nodes = make([]*core.NodeResp, 0, len(shelves))
		for _, shelf := range shelves {
			nodes = append(nodes, shelfResp(shelf))
		}
	case core.LevelRack:
		if q.ParentID, err = l.parentID(ctx, &model.StorageShelf{}, req.ParentUUID); err != nil {
			return nil, err
		}
		var racks []*model.StorageRack
		racks, total, err = l.locStore.ListRacks(ctx, q)
		if err != nil {
			return nil, err
		}
		nodes = make([]*core.NodeResp, 0, len(racks))
		for _, rack := range racks {
			nodes = append(nodes, rackResp(rack))
		}
	default:
		return nil, code.ParamErr.WithMsgf("unknown storage level %q", req.Level)
	}

	return &common.PageResp[[]*core.NodeResp]{
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
		Data:     nodes,
	}, nil
}

func (l *locationImpl) parentID(ctx context.Context, parent model.BaseDBModel, parentUUID *uuid.UUID) (int64, error) {
	if parentUUID == nil {
		return 0, code.ParentNotFound.WithMsg("parent reference is required at this level")
	}
	id, err := l.locStore.GetIDByUUID(ctx, parent, *parentUUID)
	if err != nil {
		return 0, code.ParentNotFound.WithErr(err)
	}
	return id, nil
}

func (l *locationImpl) roomByID(ctx context.Context, id int64) (*model.StorageRoom, error) {
	u, err := l.locStore.GetUUIDByID(ctx, &model.StorageRoom{}, id)
	if err != nil {
		return nil, err
	}
	return l.locStore.GetRoomByUUID(ctx, u)
}

// CanDelete 零活动子节点且下方无占位才可硬删，
// 否则返回指明阻塞子级与数量的原因。
func (l *locationImpl) CanDelete(ctx context.Context, req *core.NodeReq) (*core.CanDeleteResp, error) {
	return l.canDelete(ctx, req)
}

func (l *locationImpl) canDelete(ctx context.Context, req *core.NodeReq) (*core.CanDeleteResp, error) {
	blocked := func(nodeLevel, nodeName, childLevel string, n int64) *core.CanDeleteResp {
		unit := childLevel
		return &core.CanDeleteResp{
			CanDelete:     false,
			Reason:        fmt.Sprintf("Cannot delete %s '%s' because it contains %d %s(s)", nodeLevel, nodeName, n, unit),
			BlockingLevel: childLevel,
			BlockingCount: n,
		}
	}

	switch req.Level {
	case core.LevelRoom:
		room, err := l.locStore.GetRoomByUUID(ctx, req.UUID)
		if err != nil {
			return nil, err
		}
		n, err := l.locStore.CountDevicesInRoom(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return blocked("Room", room.Name, "device", n), nil
		}
	case core.LevelDevice:
		device, err := l.locStore.GetDeviceByUUID(ctx, req.UUID)
		if err != nil {
			return nil, err
		}
		n, err := l.locStore.CountShelvesInDevice(ctx, device.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return blocked("Device", device.Name, "shelf", n), nil
		}
	case core.LevelShelf:
		shelf, err := l.locStore.GetShelfByUUID(ctx, req.UUID)
		if err != nil {
			return nil, err
		}
		n, err := l.locStore.CountRacksInShelf(ctx, shelf.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return blocked("Shelf", shelf.Label, "rack", n), nil
		}
	case core.LevelRack:
		rack, err := l.locStore.GetRackByUUID(ctx, req.UUID)
		if err != nil {
			return nil, err
		}
		n, err := l.locStore.CountAssignmentsInRack(ctx, rack.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return blocked("Rack", rack.Label, "assignment", n), nil
		}
	default:
		return nil, code.ParamErr.WithMsgf("unknown storage level %q", req.Level)
	}
	return &core.CanDeleteResp{CanDelete: true}, nil
}

// DeleteNode 检查与删除在同一事务内完成，堵住检查后新增子节点的竞态
func (l *locationImpl) DeleteNode(ctx context.Context, req *core.NodeReq) error {
	return l.locStore.ExecTx(ctx, func(txCtx context.Context) error {
		check, err := l.canDelete(txCtx, req)
		if err != nil {
			return err
		}
		if !check.CanDelete {
			return code.DeleteConstraint.WithMsg(check.Reason).WithDetail(check)
		}

		id, err := l.nodeID(txCtx, req)
		if err != nil {
			return err
		}
		switch req.Level {
		case core.LevelRoom:
			err = l.locStore.DeleteRoomByID(txCtx, id)
		case core.LevelDevice:
			err = l.locStore.DeleteDeviceByID(txCtx, id)
		case core.LevelShelf:
			err = l.locStore.DeleteShelfByID(txCtx, id)
		case core.LevelRack:
			err = l.locStore.DeleteRackByID(txCtx, id)
		}
		if err != nil {
			logger.Errorf(txCtx, "DeleteNode level=%s uuid=%s err: %+v", req.Level, req.UUID, err)
			return err
		}
		return nil
	})
}

func (l *locationImpl) nodeID(ctx context.Context, req *core.NodeReq) (int64, error) {
	var m model.BaseDBModel
	switch req.Level {
	case core.LevelRoom:
		m = &model.StorageRoom{}
	case core.LevelDevice:
		m = &model.StorageDevice{}
	case core.LevelShelf:
		m = &model.StorageShelf{}
	case core.LevelRack:
		m = &model.StorageRack{}
	default:
		return 0, code.ParamErr.WithMsgf("unknown storage level %q", req.Level)
	}
	id, err := l.locStore.GetIDByUUID(ctx, m, req.UUID)
	if err != nil {
		return 0, code.NodeNotFound.WithErr(err)
	}
	return id, nil
}

// ---- DTO 装配 ----

func roomResp(room *model.StorageRoom) *core.NodeResp {
	return &core.NodeResp{
		Level:       core.LevelRoom,
		UUID:        room.UUID,
		Code:        room.Code,
		Name:        room.Name,
		Active:      room.Active,
		Description: room.Description,
	}
}

func deviceResp(device *model.StorageDevice) *core.NodeResp {
	deviceType := string(device.Type)
	return &core.NodeResp{
		Level:         core.LevelDevice,
		UUID:          device.UUID,
		Code:          device.Code,
		Name:          device.Name,
		Active:        device.Active,
		Description:   device.Description,
		Type:          &deviceType,
		CapacityLimit: device.CapacityLimit,
	}
}

func shelfResp(shelf *model.StorageShelf) *core.NodeResp {
	return &core.NodeResp{
		Level:         core.LevelShelf,
		UUID:          shelf.UUID,
		Code:          shelf.Label,
		Name:          shelf.Label,
		Active:        shelf.Active,
		CapacityLimit: shelf.CapacityLimit,
	}
}

func rackResp(rack *model.StorageRack) *core.NodeResp {
	return &core.NodeResp{
		Level:    core.LevelRack,
		UUID:     rack.UUID,
		Code:     rack.Label,
		Name:     rack.Label,
		Active:   rack.Active,
		RowCount: rack.RowCount,
		ColCount: rack.ColCount,
	}
}
