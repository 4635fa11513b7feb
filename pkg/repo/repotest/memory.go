// Package repotest 提供内存版仓储假件，单测专用。
// 行为对齐 gorm 实现：错误码一致，(rack,coordinate) 与 sample 两条
// 唯一约束在这里同样生效，ExecSerializableTx 用互斥锁串行化。
package repotest

import (
	// 外部依赖
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/coldstack/samplestore/pkg/common/code"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	model "github.com/coldstack/samplestore/pkg/model"
	repo "github.com/coldstack/samplestore/pkg/repo"
)

// Mem 同时实现 LocationRepo、SampleRepo、MovementRepo
type Mem struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	nextID int64

	Rooms       map[int64]*model.StorageRoom
	Devices     map[int64]*model.StorageDevice
	Shelves     map[int64]*model.StorageShelf
	Racks       map[int64]*model.StorageRack
	Samples     map[int64]*model.SampleItem
	Assignments map[int64]*model.StorageAssignment
	Movements   []*model.StorageMovement
}

func NewMem() *Mem {
	return &Mem{
		Rooms:       map[int64]*model.StorageRoom{},
		Devices:     map[int64]*model.StorageDevice{},
		Shelves:     map[int64]*model.StorageShelf{},
		Racks:       map[int64]*model.StorageRack{},
		Samples:     map[int64]*model.SampleItem{},
		Assignments: map[int64]*model.StorageAssignment{},
	}
}

func (m *Mem) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *Mem) DBWithContext(context.Context) *gorm.DB { return nil }

func (m *Mem) ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// ExecSerializableTx 以互斥锁模拟可串行化：同一时刻只有一个查-占序列在跑
func (m *Mem) ExecSerializableTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx)
}

func (m *Mem) GetIDByUUID(_ context.Context, target model.BaseDBModel, u uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch target.(type) {
	case *model.StorageRoom:
		for _, room := range m.Rooms {
			if room.UUID == u {
				return room.ID, nil
			}
		}
	case *model.StorageDevice:
		for _, device := range m.Devices {
			if device.UUID == u {
				return device.ID, nil
			}
		}
	case *model.StorageShelf:
		for _, shelf := range m.Shelves {
			if shelf.UUID == u {
				return shelf.ID, nil
			}
		}
	case *model.StorageRack:
		for _, rack := range m.Racks {
			if rack.UUID == u {
				return rack.ID, nil
			}
		}
	case *model.SampleItem:
		for _, item := range m.Samples {
			if item.UUID == u {
				return item.ID, nil
			}
		}
	}
	return 0, code.RecordNotFound
}

func (m *Mem) GetUUIDByID(_ context.Context, target model.BaseDBModel, id int64) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch target.(type) {
	case *model.StorageRoom:
		if room, ok := m.Rooms[id]; ok {
			return room.UUID, nil
		}
	case *model.StorageDevice:
		if device, ok := m.Devices[id]; ok {
			return device.UUID, nil
		}
	case *model.StorageShelf:
		if shelf, ok := m.Shelves[id]; ok {
			return shelf.UUID, nil
		}
	case *model.StorageRack:
		if rack, ok := m.Racks[id]; ok {
			return rack.UUID, nil
		}
	case *model.SampleItem:
		if item, ok := m.Samples[id]; ok {
			return item.UUID, nil
		}
	}
	return uuid.Nil, code.RecordNotFound
}

// ---------- 房间 ----------

func (m *Mem) CreateRoom(_ context.Context, room *model.StorageRoom) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	room.ID = m.id()
	room.UUID = uuid.NewV4()
	m.Rooms[room.ID] = room
	return nil
}

func (m *Mem) GetRoomByUUID(_ context.Context, u uuid.UUID) (*model.StorageRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range m.Rooms {
		if room.UUID == u {
			cp := *room
			return &cp, nil
		}
	}
	return nil, code.NodeNotFound
}

func (m *Mem) GetRoomByCode(_ context.Context, roomCode string) (*model.StorageRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range m.Rooms {
		if room.Code == roomCode {
			cp := *room
			return &cp, nil
		}
	}
	return nil, code.NodeNotFound
}

func (m *Mem) ListRooms(_ context.Context, q repo.NodeQuery) ([]*model.StorageRoom, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.StorageRoom, 0, len(m.Rooms))
	for _, room := range m.Rooms {
		if !q.IncludeInactive && !room.Active {
			continue
		}
		cp := *room
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, int64(len(list)), nil
}

func (m *Mem) UpdateRoomByUUID(_ context.Context, u uuid.UUID, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, room := range m.Rooms {
		if room.UUID == u {
			if v, ok := data["name"]; ok {
				room.Name = v.(string)
			}
			if v, ok := data["description"]; ok {
				s := v.(string)
				room.Description = &s
			}
			if v, ok := data["active"]; ok {
				room.Active = v.(bool)
			}
			return nil
		}
	}
	return code.NodeNotFound
}

func (m *Mem) DeleteRoomByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Rooms, id)
	return nil
}

func (m *Mem) CountDevicesInRoom(_ context.Context, roomID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, device := range m.Devices {
		if device.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

// ---------- 设备 ----------

func (m *Mem) CreateDevice(_ context.Context, device *model.StorageDevice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	device.ID = m.id()
	device.UUID = uuid.NewV4()
	m.Devices[device.ID] = device
	return nil
}

func (m *Mem) GetDeviceByUUID(_ context.Context, u uuid.UUID) (*model.StorageDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, device := range m.Devices {
		if device.UUID == u {
			cp := *device
			return &cp, nil
		}
	}
	return nil, code.NodeNotFound
}

func (m *Mem) GetDeviceByCode(_ context.Context, roomID int64, deviceCode string) (*model.StorageDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, device := range m.Devices {
		if device.RoomID == roomID && device.Code == deviceCode {
			cp := *device
			return &cp, nil
		}
	}
	return nil, code.NodeNotFound
}

func (m *Mem) ListDevices(_ context.Context, q repo.NodeQuery) ([]*model.StorageDevice, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.StorageDevice, 0, len(m.Devices))
	for _, device := range m.Devices {
		if device.RoomID != q.ParentID {
			continue
		}
		if !q.IncludeInactive && !device.Active {
			continue
		}
		cp := *device
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, int64(len(list)), nil
}

func (m *Mem) UpdateDeviceByUUID(_ context.Context, u uuid.UUID, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, device := range m.Devices {
		if device.UUID == u {
			if v, ok := data["name"]; ok {
				device.Name = v.(string)
			}
			if v, ok := data["active"]; ok {
				device.Active = v.(bool)
			}
			if v, ok := data["capacity_limit"]; ok {
				n := v.(int)
				device.CapacityLimit = &n
			}
			if v, ok := data["type"]; ok {
				device.Type = model.DeviceType(v.(string))
			}
			return nil
		}
	}
	return code.NodeNotFound
}

func (m *Mem) DeleteDeviceByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Devices, id)
	return nil
}

func (m *Mem) CountShelvesInDevice(_ context.Context, deviceID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, shelf := range m.Shelves {
		if shelf.DeviceID == deviceID {
			n++
		}
	}
	return n, nil
}

// ---------- 层架 ----------

func (m *Mem) CreateShelf(_ context.Context, shelf *model.StorageShelf) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	shelf.ID = m.id()
	shelf.UUID = uuid.NewV4()
	m.Shelves[shelf.ID] = shelf
	return nil
}

func (m *Mem) GetShelfByUUID(_ context.Context, u uuid.UUID) (*model.StorageShelf, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, shelf := range m.Shelves {
		if shelf.UUID == u {
			cp := *shelf
			return &cp, nil
		}
	}
	return nil, code.NodeNotFound
}

func (m *Mem) GetShelfByLabel(_ context.Context, deviceID int64, label string) (*model.StorageShelf, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, shelf := range m.Shelves {
		if shelf.DeviceID == deviceID && shelf.Label == label {
			cp := *shelf
			return &cp, nil
		}
	}
	return nil, code.NodeNotFound
}

func (m *Mem) ListShelves(_ context.Context, q repo.NodeQuery) ([]*model.StorageShelf, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.StorageShelf, 0, len(m.Shelves))
	for _, shelf := range m.Shelves {
		if shelf.DeviceID != q.ParentID {
			continue
		}
		if !q.IncludeInactive && !shelf.Active {
			continue
		}
		cp := *shelf
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Label < list[j].Label })
	return list, int64(len(list)), nil
}

func (m *Mem) UpdateShelfByUUID(_ context.Context, u uuid.UUID, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, shelf := range m.Shelves {
		if shelf.UUID == u {
			if v, ok := data["active"]; ok {
				shelf.Active = v.(bool)
			}
			if v, ok := data["capacity_limit"]; ok {
				n := v.(int)
				shelf.CapacityLimit = &n
			}
			return nil
		}
	}
	return code.NodeNotFound
}

func (m *Mem) DeleteShelfByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Shelves, id)
	return nil
}

func (m *Mem) CountRacksInShelf(_ context.Context, shelfID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, rack := range m.Racks {
		if rack.ShelfID == shelfID {
			n++
		}
	}
	return n, nil
}

// ---------- 格架 ----------

func (m *Mem) CreateRack(_ context.Context, rack *model.StorageRack) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rack.ID = m.id()
	rack.UUID = uuid.NewV4()
	m.Racks[rack.ID] = rack
	return nil
}

func (m *Mem) GetRackByUUID(_ context.Context, u uuid.UUID) (*model.StorageRack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rack := range m.Racks {
		if rack.UUID == u {
			cp := *rack
			return &cp, nil
		}
	}
	return nil, code.NodeNotFound
}

func (m *Mem) GetRackByLabel(_ context.Context, shelfID int64, label string) (*model.StorageRack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rack := range m.Racks {
		if rack.ShelfID == shelfID && rack.Label == label {
			cp := *rack
			return &cp, nil
		}
	}
	return nil, code.NodeNotFound
}

func (m *Mem) ListRacks(_ context.Context, q repo.NodeQuery) ([]*model.StorageRack, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.StorageRack, 0, len(m.Racks))
	for _, rack := range m.Racks {
		if rack.ShelfID != q.ParentID {
			continue
		}
		if !q.IncludeInactive && !rack.Active {
			continue
		}
		cp := *rack
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Label < list[j].Label })
	return list, int64(len(list)), nil
}

func (m *Mem) UpdateRackByUUID(_ context.Context, u uuid.UUID, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rack := range m.Racks {
		if rack.UUID == u {
			if v, ok := data["active"]; ok {
				rack.Active = v.(bool)
			}
			return nil
		}
	}
	return code.NodeNotFound
}

func (m *Mem) DeleteRackByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Racks, id)
	return nil
}

func (m *Mem) CountAssignmentsInRack(_ context.Context, rackID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.Assignments {
		if a.RackID == rackID {
			n++
		}
	}
	return n, nil
}

// ---------- 祖先链 ----------

func (m *Mem) GetShelfAncestors(_ context.Context, shelf *model.StorageShelf) (*model.StorageRoom, *model.StorageDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	device, ok := m.Devices[shelf.DeviceID]
	if !ok {
		return nil, nil, code.NodeNotFound
	}
	room, ok := m.Rooms[device.RoomID]
	if !ok {
		return nil, nil, code.NodeNotFound
	}
	roomCp, deviceCp := *room, *device
	return &roomCp, &deviceCp, nil
}

func (m *Mem) GetRackAncestors(ctx context.Context, rack *model.StorageRack) (*model.StorageRoom, *model.StorageDevice, *model.StorageShelf, error) {
	m.mu.Lock()
	shelf, ok := m.Shelves[rack.ShelfID]
	if !ok {
		m.mu.Unlock()
		return nil, nil, nil, code.NodeNotFound
	}
	shelfCp := *shelf
	m.mu.Unlock()

	room, device, err := m.GetShelfAncestors(ctx, &shelfCp)
	if err != nil {
		return nil, nil, nil, err
	}
	return room, device, &shelfCp, nil
}

// ---------- 检索 ----------

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (m *Mem) SearchLocations(ctx context.Context, term string, limit int) ([]*repo.SearchRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 20
	}
	rows := make([]*repo.SearchRow, 0, limit)

	for _, room := range m.Rooms {
		if room.Active && containsFold(room.Name, term) {
			rows = append(rows, &repo.SearchRow{Level: "room", ID: room.ID, UUID: room.UUID, Name: room.Name, Path: room.Name})
		}
	}
	for _, device := range m.Devices {
		room, ok := m.Rooms[device.RoomID]
		if !ok || !room.Active || !device.Active || !containsFold(device.Name, term) {
			continue
		}
		rows = append(rows, &repo.SearchRow{
			Level: "device", ID: device.ID, UUID: device.UUID, Name: device.Name,
			Path: room.Name + " > " + device.Name,
		})
	}
	for _, shelf := range m.Shelves {
		device, ok := m.Devices[shelf.DeviceID]
		if !ok || !device.Active || !shelf.Active || !containsFold(shelf.Label, term) {
			continue
		}
		room, ok := m.Rooms[device.RoomID]
		if !ok || !room.Active {
			continue
		}
		rows = append(rows, &repo.SearchRow{
			Level: "shelf", ID: shelf.ID, UUID: shelf.UUID, Name: shelf.Label,
			Path: room.Name + " > " + device.Name + " > " + shelf.Label,
		})
	}
	for _, rack := range m.Racks {
		shelf, ok := m.Shelves[rack.ShelfID]
		if !ok || !shelf.Active || !rack.Active || !containsFold(rack.Label, term) {
			continue
		}
		device, ok := m.Devices[shelf.DeviceID]
		if !ok || !device.Active {
			continue
		}
		room, ok := m.Rooms[device.RoomID]
		if !ok || !room.Active {
			continue
		}
		rows = append(rows, &repo.SearchRow{
			Level: "rack", ID: rack.ID, UUID: rack.UUID, Name: rack.Label,
			Path: room.Name + " > " + device.Name + " > " + shelf.Label + " > " + rack.Label,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *Mem) ListAssignmentsByRack(_ context.Context, rackID int64) ([]*model.StorageAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.StorageAssignment, 0, 8)
	for _, a := range m.Assignments {
		if a.RackID == rackID {
			cp := *a
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Coordinate < list[j].Coordinate })
	return list, nil
}

func (m *Mem) CountAssignmentsByRacks(_ context.Context, rackIDs []int64) (map[int64]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := make(map[int64]int64, len(rackIDs))
	for _, id := range rackIDs {
		for _, a := range m.Assignments {
			if a.RackID == id {
				ret[id]++
			}
		}
	}
	return ret, nil
}

// ---------- 样品 ----------

func (m *Mem) CreateSample(_ context.Context, item *model.SampleItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Samples {
		if existing.ExternalID == item.ExternalID {
			return code.CreateDataErr
		}
	}
	item.ID = m.id()
	item.UUID = uuid.NewV4()
	m.Samples[item.ID] = item
	return nil
}

func (m *Mem) GetSampleByUUID(_ context.Context, u uuid.UUID) (*model.SampleItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.Samples {
		if item.UUID == u {
			cp := *item
			return &cp, nil
		}
	}
	return nil, code.SampleNotFound
}

func (m *Mem) GetSampleByExternalID(_ context.Context, externalID string) (*model.SampleItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.Samples {
		if item.ExternalID == externalID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, code.SampleNotFound
}

func (m *Mem) ListSamples(_ context.Context, q repo.SampleQuery) ([]*model.SampleItem, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.SampleItem, 0, len(m.Samples))
	for _, item := range m.Samples {
		if q.ExternalIDLike != nil && !containsFold(item.ExternalID, *q.ExternalIDLike) {
			continue
		}
		if q.Type != nil && item.Type != *q.Type {
			continue
		}
		if q.Status != nil && item.Status != *q.Status {
			continue
		}
		cp := *item
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, int64(len(list)), nil
}

func (m *Mem) UpdateSampleByUUID(_ context.Context, u uuid.UUID, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.Samples {
		if item.UUID == u {
			if v, ok := data["status"]; ok {
				item.Status = v.(model.SampleStatus)
			}
			return nil
		}
	}
	return code.SampleNotFound
}

func (m *Mem) CountSamplesByStatus(_ context.Context) (map[model.SampleStatus]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := map[model.SampleStatus]int64{}
	for _, item := range m.Samples {
		ret[item.Status]++
	}
	return ret, nil
}

// ---------- 占位 ----------

func (m *Mem) GetAssignmentBySample(_ context.Context, sampleItemID int64) (*model.StorageAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Assignments {
		if a.SampleItemID == sampleItemID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, code.RecordNotFound
}

func (m *Mem) GetAssignmentAt(_ context.Context, rackID int64, coordinate string) (*model.StorageAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Assignments {
		if a.RackID == rackID && a.Coordinate == coordinate {
			cp := *a
			return &cp, nil
		}
	}
	return nil, code.RecordNotFound
}

func (m *Mem) CreateAssignment(_ context.Context, a *model.StorageAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Assignments {
		if existing.RackID == a.RackID && existing.Coordinate == a.Coordinate {
			return code.OccupiedPosition
		}
		if existing.SampleItemID == a.SampleItemID {
			return code.CreateDataErr
		}
	}
	a.ID = m.id()
	a.UUID = uuid.NewV4()
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	m.Assignments[a.ID] = a
	return nil
}

func (m *Mem) MoveAssignment(_ context.Context, assignmentID int64, rackID int64, coordinate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.Assignments[assignmentID]
	if !ok {
		return code.RecordNotFound
	}
	for id, existing := range m.Assignments {
		if id != assignmentID && existing.RackID == rackID && existing.Coordinate == coordinate {
			return code.OccupiedPosition
		}
	}
	target.RackID = rackID
	target.Coordinate = coordinate
	return nil
}

func (m *Mem) DeleteAssignment(_ context.Context, assignmentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Assignments, assignmentID)
	return nil
}

func (m *Mem) CountAssignments(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Assignments)), nil
}

// ---------- 流水 ----------

func (m *Mem) CreateMovement(_ context.Context, rec *model.StorageMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.id()
	if rec.MovedAt.IsZero() {
		rec.MovedAt = time.Now()
	}
	m.Movements = append(m.Movements, rec)
	return nil
}

func (m *Mem) ListMovements(_ context.Context, q repo.MovementQuery) ([]*model.StorageMovement, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*model.StorageMovement, 0, 8)
	for _, rec := range m.Movements {
		if rec.SampleItemID == q.SampleItemID {
			cp := *rec
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, int64(len(list)), nil
}

var (
	_ repo.LocationRepo = (*Mem)(nil)
	_ repo.SampleRepo   = (*Mem)(nil)
	_ repo.MovementRepo = (*Mem)(nil)
)
