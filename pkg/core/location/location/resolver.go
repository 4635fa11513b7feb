package location

import (
	// 外部依赖
	"context"
	"sort"
	"strings"

	// 内部引用
	code "github.com/coldstack/samplestore/pkg/common/code"
	core "github.com/coldstack/samplestore/pkg/core/location"
	model "github.com/coldstack/samplestore/pkg/model"
	repo "github.com/coldstack/samplestore/pkg/repo"
)

// optionsFor 级联选择：返回 parent 在指定层级的子节点。
// 选中某级后下级全部由调用方重取，这里不缓存。
func (l *locationImpl) optionsFor(ctx context.Context, req *core.CascadeStep) ([]*core.NodeOption, error) {
	q := repo.NodeQuery{IncludeInactive: req.AllowInactive, Limit: 500}

	switch req.Level {
	case core.LevelRoom:
		rooms, _, err := l.locStore.ListRooms(ctx, q)
		if err != nil {
			return nil, err
		}
		options := make([]*core.NodeOption, 0, len(rooms))
		for _, room := range rooms {
			options = append(options, &core.NodeOption{UUID: room.UUID, Code: room.Code, Name: room.Name, Active: room.Active})
		}
		return options, nil
	case core.LevelDevice:
		parentID, err := l.parentID(ctx, &model.StorageRoom{}, req.ParentUUID)
		if err != nil {
			return nil, err
		}
		q.ParentID = parentID
		devices, _, err := l.locStore.ListDevices(ctx, q)
		if err != nil {
			return nil, err
		}
		options := make([]*core.NodeOption, 0, len(devices))
		for _, device := range devices {
			options = append(options, &core.NodeOption{UUID: device.UUID, Code: device.Code, Name: device.Name, Active: device.Active})
		}
		return options, nil
	case core.LevelShelf:
		parentID, err := l.parentID(ctx, &model.StorageDevice{}, req.ParentUUID)
		if err != nil {
			return nil, err
		}
		q.ParentID = parentID
		shelves, _, err := l.locStore.ListShelves(ctx, q)
		if err != nil {
			return nil, err
		}
		options := make([]*core.NodeOption, 0, len(shelves))
		for _, shelf := range shelves {
			options = append(options, &core.NodeOption{UUID: shelf.UUID, Code: shelf.Label, Name: shelf.Label, Active: shelf.Active})
		}
		return options, nil
	case core.LevelRack:
		parentID, err := l.parentID(ctx, &model.StorageShelf{}, req.ParentUUID)
		if err != nil {
			return nil, err
		}
		q.ParentID = parentID
		racks, _, err := l.locStore.ListRacks(ctx, q)
		if err != nil {
			return nil, err
		}
		options := make([]*core.NodeOption, 0, len(racks))
		for _, rack := range racks {
			options = append(options, &core.NodeOption{UUID: rack.UUID, Code: rack.Label, Name: rack.Label, Active: rack.Active})
		}
		return options, nil
	default:
		return nil, code.ParamErr.WithMsgf("unknown storage level %q", req.Level)
	}
}

// search 自由文本检索：任意层级（不含坐标）按名称命中，
// 结果排序：命中越靠前越优先，同分按路径字典序。
func (l *locationImpl) search(ctx context.Context, req *core.TextQuery) ([]*core.SearchHit, error) {
	term := strings.TrimSpace(req.Query)
	if len(term) < 2 {
		return nil, code.SearchTermTooShort
	}

	rows, err := l.locStore.SearchLocations(ctx, term, req.Limit)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(term)
	rank := func(row *repo.SearchRow) int {
		idx := strings.Index(strings.ToLower(row.Name), lower)
		if idx < 0 {
			// 命中出现在路径其他段
			return len(row.Name) + 1
		}
		return idx
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rank(rows[i]), rank(rows[j])
		if ri != rj {
			return ri < rj
		}
		return rows[i].Path < rows[j].Path
	})

	hits := make([]*core.SearchHit, 0, len(rows))
	for _, row := range rows {
		hit, err := l.hitFromRow(ctx, row)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// hitFromRow 每条命中携带可直接使用的规范引用，选中后无需再级联
func (l *locationImpl) hitFromRow(ctx context.Context, row *repo.SearchRow) (*core.SearchHit, error) {
	level := core.Level(row.Level)
	ref := &core.LocationReference{HierarchicalPath: row.Path}

	switch level {
	case core.LevelRoom:
		room, err := l.locStore.GetRoomByUUID(ctx, row.UUID)
		if err != nil {
			return nil, err
		}
		ref.Room = roomRef(room)
	case core.LevelDevice:
		device, err := l.locStore.GetDeviceByUUID(ctx, row.UUID)
		if err != nil {
			return nil, err
		}
		room, err := l.roomByID(ctx, device.RoomID)
		if err != nil {
			return nil, err
		}
		ref.Room = roomRef(room)
		ref.Device = deviceRef(device)
	case core.LevelShelf:
		shelf, err := l.locStore.GetShelfByUUID(ctx, row.UUID)
		if err != nil {
			return nil, err
		}
		room, device, err := l.locStore.GetShelfAncestors(ctx, shelf)
		if err != nil {
			return nil, err
		}
		ref.Room = roomRef(room)
		ref.Device = deviceRef(device)
		ref.Shelf = shelfRef(shelf)
	case core.LevelRack:
		rack, err := l.locStore.GetRackByUUID(ctx, row.UUID)
		if err != nil {
			return nil, err
		}
		full, err := l.rackReference(ctx, rack, nil)
		if err != nil {
			return nil, err
		}
		full.HierarchicalPath = row.Path
		return &core.SearchHit{Level: level, Reference: full}, nil
	}
	return &core.SearchHit{Level: level, Reference: ref}, nil
}
