package location

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

type locationImpl struct {
	repo.IDOrUUIDTranslate
}

func NewLocationRepo() repo.LocationRepo {
	return &locationImpl{IDOrUUIDTranslate: repo.NewBaseDB()}
}

// activeScope 过滤掉停用节点
func activeScope(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

func applyNodeQuery(db *gorm.DB, q repo.NodeQuery, parentCol string) *gorm.DB {
	if parentCol != "" {
		db = db.Where(parentCol+" = ?", q.ParentID)
	}
	if !q.IncludeInactive {
		db = db.Scopes(activeScope)
	}
	return db
}

func listNodes[T any](ctx context.Context, db *gorm.DB, q repo.NodeQuery, order string) ([]*T, int64, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
	list := make([]*T, 0, q.Limit)
	if err := db.Order(order).Offset(q.Offset).Limit(q.Limit).Find(&list).Error; err != nil {
		logger.Errorf(ctx, "list storage nodes err: %v", err)
		return nil, 0, code.QueryRecordErr.WithErr(err)
	}
	return list, total, nil
}

// ---------- 房间 ----------

func (l *locationImpl) CreateRoom(ctx context.Context, room *model.StorageRoom) error {
	if err := l.DBWithContext(ctx).Create(room).Error; err != nil {
		logger.Errorf(ctx, "CreateRoom err: %v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (l *locationImpl) GetRoomByUUID(ctx context.Context, u uuid.UUID) (*model.StorageRoom, error) {
	room := &model.StorageRoom{}
	if err := l.DBWithContext(ctx).Where("uuid = ?", u).Take(room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NodeNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return room, nil
}

func (l *locationImpl) GetRoomByCode(ctx context.Context, roomCode string) (*model.StorageRoom, error) {
	room := &model.StorageRoom{}
	if err := l.DBWithContext(ctx).Where("code = ?", roomCode).Take(room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NodeNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return room, nil
}

func (l *locationImpl) ListRooms(ctx context.Context, q repo.NodeQuery) ([]*model.StorageRoom, int64, error) {
	db := applyNodeQuery(l.DBWithContext(ctx).Model(&model.StorageRoom{}), q, "")
	return listNodes[model.StorageRoom](ctx, db, q, "code asc")
}

func (l *locationImpl) UpdateRoomByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error {
	res := l.DBWithContext(ctx).Model(&model.StorageRoom{}).Where("uuid = ?", u).Updates(data)
	if res.Error != nil {
		logger.Errorf(ctx, "UpdateRoomByUUID err: %v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.NodeNotFound
	}
	return nil
}

func (l *locationImpl) DeleteRoomByID(ctx context.Context, id int64) error {
	if err := l.DBWithContext(ctx).Delete(&model.StorageRoom{}, id).Error; err != nil {
		logger.Errorf(ctx, "DeleteRoomByID err: %v", err)
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

func (l *locationImpl) CountDevicesInRoom(ctx context.Context, roomID int64) (int64, error) {
	var n int64
	if err := l.DBWithContext(ctx).Model(&model.StorageDevice{}).
		Where("room_id = ?", roomID).Count(&n).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return n, nil
}

// ---------- 设备 ----------

func (l *locationImpl) CreateDevice(ctx context.Context, device *model.StorageDevice) error {
	if err := l.DBWithContext(ctx).Create(device).Error; err != nil {
		logger.Errorf(ctx, "CreateDevice err: %v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (l *locationImpl) GetDeviceByUUID(ctx context.Context, u uuid.UUID) (*model.StorageDevice, error) {
	device := &model.StorageDevice{}
	if err := l.DBWithContext(ctx).Where("uuid = ?", u).Take(device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NodeNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return device, nil
}

func (l *locationImpl) GetDeviceByCode(ctx context.Context, roomID int64, deviceCode string) (*model.StorageDevice, error) {
	device := &model.StorageDevice{}
	if err := l.DBWithContext(ctx).
		Where("room_id = ? AND code = ?", roomID, deviceCode).
		Take(device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NodeNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return device, nil
}

func (l *locationImpl) ListDevices(ctx context.Context, q repo.NodeQuery) ([]*model.StorageDevice, int64, error) {
	db := applyNodeQuery(l.DBWithContext(ctx).Model(&model.StorageDevice{}), q, "room_id")
	return listNodes[model.StorageDevice](ctx, db, q, "code asc")
}

func (l *locationImpl) UpdateDeviceByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error {
	res := l.DBWithContext(ctx).Model(&model.StorageDevice{}).Where("uuid = ?", u).Updates(data)
	if res.Error != nil {
		logger.Errorf(ctx, "UpdateDeviceByUUID err: %v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.NodeNotFound
	}
	return nil
}

func (l *locationImpl) DeleteDeviceByID(ctx context.Context, id int64) error {
	if err := l.DBWithContext(ctx).Delete(&model.StorageDevice{}, id).Error; err != nil {
		logger.Errorf(ctx, "DeleteDeviceByID err: %v", err)
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

func (l *locationImpl) CountShelvesInDevice(ctx context.Context, deviceID int64) (int64, error) {
	var n int64
	if err := l.DBWithContext(ctx).Model(&model.StorageShelf{}).
		Where("device_id = ?", deviceID).Count(&n).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return n, nil
}

// ---------- 层架 ----------

func (l *locationImpl) CreateShelf(ctx context.Context, shelf *model.StorageShelf) error {
	if err := l.DBWithContext(ctx).Create(shelf).Error; err != nil {
		logger.Errorf(ctx, "CreateShelf err: %v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (l *locationImpl) GetShelfByUUID(ctx context.Context, u uuid.UUID) (*model.StorageShelf, error) {
	shelf := &model.StorageShelf{}
	if err := l.DBWithContext(ctx).Where("uuid = ?", u).Take(shelf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NodeNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return shelf, nil
}

func (l *locationImpl) GetShelfByLabel(ctx context.Context, deviceID int64, label string) (*model.StorageShelf, error) {
	shelf := &model.StorageShelf{}
	if err := l.DBWithContext(ctx).
		Where("device_id = ? AND label = ?", deviceID, label).
		Take(shelf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NodeNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return shelf, nil
}

func (l *locationImpl) ListShelves(ctx context.Context, q repo.NodeQuery) ([]*model.StorageShelf, int64, error) {
	db := applyNodeQuery(l.DBWithContext(ctx).Model(&model.StorageShelf{}), q, "device_id")
	return listNodes[model.StorageShelf](ctx, db, q, "label asc")
}

func (l *locationImpl) UpdateShelfByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error {
	res := l.DBWithContext(ctx).Model(&model.StorageShelf{}).Where("uuid = ?", u).Updates(data)
	if res.Error != nil {
		logger.Errorf(ctx, "UpdateShelfByUUID err: %v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.NodeNotFound
	}
	return nil
}

func (l *locationImpl) DeleteShelfByID(ctx context.Context, id int64) error {
	if err := l.DBWithContext(ctx).Delete(&model.StorageShelf{}, id).Error; err != nil {
		logger.Errorf(ctx, "DeleteShelfByID err: %v", err)
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

func (l *locationImpl) CountRacksInShelf(ctx context.Context, shelfID int64) (int64, error) {
	var n int64
	if err := l.DBWithContext(ctx).Model(&model.StorageRack{}).
		Where("shelf_id = ?", shelfID).Count(&n).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return n, nil
}

// ---------- 格架 ----------

func (l *locationImpl) CreateRack(ctx context.Context, rack *model.StorageRack) error {
	if err := l.DBWithContext(ctx).Create(rack).Error; err != nil {
		logger.Errorf(ctx, "CreateRack err: %v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (l *locationImpl) GetRackByUUID(ctx context.Context, u uuid.UUID) (*model.StorageRack, error) {
	rack := &model.StorageRack{}
	if err := l.DBWithContext(ctx).Where("uuid = ?", u).Take(rack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NodeNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return rack, nil
}

func (l *locationImpl) GetRackByLabel(ctx context.Context, shelfID int64, label string) (*model.StorageRack, error) {
	rack := &model.StorageRack{}
	if err := l.DBWithContext(ctx).
		Where("shelf_id = ? AND label = ?", shelfID, label).
		Take(rack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NodeNotFound
		}
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return rack, nil
}

func (l *locationImpl) ListRacks(ctx context.Context, q repo.NodeQuery) ([]*model.StorageRack, int64, error) {
	db := applyNodeQuery(l.DBWithContext(ctx).Model(&model.StorageRack{}), q, "shelf_id")
	return listNodes[model.StorageRack](ctx, db, q, "label asc")
}

func (l *locationImpl) UpdateRackByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error {
	res := l.DBWithContext(ctx).Model(&model.StorageRack{}).Where("uuid = ?", u).Updates(data)
	if res.Error != nil {
		logger.Errorf(ctx, "UpdateRackByUUID err: %v", res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.NodeNotFound
	}
	return nil
}

func (l *locationImpl) DeleteRackByID(ctx context.Context, id int64) error {
	if err := l.DBWithContext(ctx).Delete(&model.StorageRack{}, id).Error; err != nil {
		logger.Errorf(ctx, "DeleteRackByID err: %v", err)
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

func (l *locationImpl) CountAssignmentsInRack(ctx context.Context, rackID int64) (int64, error) {
	var n int64
	if err := l.DBWithContext(ctx).Model(&model.StorageAssignment{}).
		Where("rack_id = ?", rackID).Count(&n).Error; err != nil {
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return n, nil
}

// ---------- 祖先链 ----------

func (l *locationImpl) GetShelfAncestors(ctx context.Context, shelf *model.StorageShelf) (*model.StorageRoom, *model.StorageDevice, error) {
	device := &model.StorageDevice{}
	if err := l.DBWithContext(ctx).Take(device, shelf.DeviceID).Error; err != nil {
		return nil, nil, code.QueryRecordErr.WithErr(err)
	}
	room := &model.StorageRoom{}
	if err := l.DBWithContext(ctx).Take(room, device.RoomID).Error; err != nil {
		return nil, nil, code.QueryRecordErr.WithErr(err)
	}
	return room, device, nil
}

func (l *locationImpl) GetRackAncestors(ctx context.Context, rack *model.StorageRack) (*model.StorageRoom, *model.StorageDevice, *model.StorageShelf, error) {
	shelf := &model.StorageShelf{}
	if err := l.DBWithContext(ctx).Take(shelf, rack.ShelfID).Error; err != nil {
		return nil, nil, nil, code.QueryRecordErr.WithErr(err)
	}
	room, device, err := l.GetShelfAncestors(ctx, shelf)
	if err != nil {
		return nil, nil, nil, err
	}
	return room, device, shelf, nil
}

// ---------- 检索 ----------

// SearchLocations 四个层级分别按名称 ILIKE 命中，Path 在 SQL 里拼好，
// 格式固定为 Room > Device > Shelf > Rack 的前缀。
func (l *locationImpl) SearchLocations(ctx context.Context, term string, limit int) ([]*repo.SearchRow, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + term + "%"
	rows := make([]*repo.SearchRow, 0, limit*4)

	roomRows := make([]*repo.SearchRow, 0, limit)
	if err := l.DBWithContext(ctx).Model(&model.StorageRoom{}).
		Select(`'room' AS level, id, uuid, name, name AS path`).
		Where("active = ? AND name ILIKE ?", true, pattern).
		Order("name asc").Limit(limit).
		Scan(&roomRows).Error; err != nil {
		logger.Errorf(ctx, "SearchLocations rooms err: %v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	rows = append(rows, roomRows...)

	deviceRows := make([]*repo.SearchRow, 0, limit)
	if err := l.DBWithContext(ctx).Model(&model.StorageDevice{}).
		Select(`'device' AS level, storage_device.id, storage_device.uuid, storage_device.name,
			storage_room.name || ' > ' || storage_device.name AS path`).
		Joins("JOIN storage_room ON storage_room.id = storage_device.room_id").
		Where("storage_device.active = ? AND storage_room.active = ? AND storage_device.name ILIKE ?", true, true, pattern).
		Order("path asc").Limit(limit).
		Scan(&deviceRows).Error; err != nil {
		logger.Errorf(ctx, "SearchLocations devices err: %v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	rows = append(rows, deviceRows...)

	shelfRows := make([]*repo.SearchRow, 0, limit)
	if err := l.DBWithContext(ctx).Model(&model.StorageShelf{}).
		Select(`'shelf' AS level, storage_shelf.id, storage_shelf.uuid, storage_shelf.label AS name,
			storage_room.name || ' > ' || storage_device.name || ' > ' || storage_shelf.label AS path`).
		Joins("JOIN storage_device ON storage_device.id = storage_shelf.device_id").
		Joins("JOIN storage_room ON storage_room.id = storage_device.room_id").
		Where("storage_shelf.active = ? AND storage_device.active = ? AND storage_room.active = ? AND storage_shelf.label ILIKE ?",
			true, true, true, pattern).
		Order("path asc").Limit(limit).
		Scan(&shelfRows).Error; err != nil {
		logger.Errorf(ctx, "SearchLocations shelves err: %v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	rows = append(rows, shelfRows...)

	rackRows := make([]*repo.SearchRow, 0, limit)
	if err := l.DBWithContext(ctx).Model(&model.StorageRack{}).
		Select(`'rack' AS level, storage_rack.id, storage_rack.uuid, storage_rack.label AS name,
			storage_room.name || ' > ' || storage_device.name || ' > ' || storage_shelf.label || ' > ' || storage_rack.label AS path`).
		Joins("JOIN storage_shelf ON storage_shelf.id = storage_rack.shelf_id").
		Joins("JOIN storage_device ON storage_device.id = storage_shelf.device_id").
		Joins("JOIN storage_room ON storage_room.id = storage_device.room_id").
		Where("storage_rack.active = ? AND storage_shelf.active = ? AND storage_device.active = ? AND storage_room.active = ? AND storage_rack.label ILIKE ?",
			true, true, true, true, pattern).
		Order("path asc").Limit(limit).
		Scan(&rackRows).Error; err != nil {
		logger.Errorf(ctx, "SearchLocations racks err: %v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	rows = append(rows, rackRows...)

	return rows, nil
}

// ---------- 占用 ----------

func (l *locationImpl) ListAssignmentsByRack(ctx context.Context, rackID int64) ([]*model.StorageAssignment, error) {
	list := make([]*model.StorageAssignment, 0, 16)
	if err := l.DBWithContext(ctx).
		Where("rack_id = ?", rackID).
		Order("coordinate asc").
		Find(&list).Error; err != nil {
		logger.Errorf(ctx, "ListAssignmentsByRack err: %v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (l *locationImpl) CountAssignmentsByRacks(ctx context.Context, rackIDs []int64) (map[int64]int64, error) {
	type rackCount struct {
		RackID int64
		N      int64
	}
	counts := make([]rackCount, 0, len(rackIDs))
	if len(rackIDs) == 0 {
		return map[int64]int64{}, nil
	}
	if err := l.DBWithContext(ctx).Model(&model.StorageAssignment{}).
		Select("rack_id, COUNT(*) AS n").
		Where("rack_id IN ?", rackIDs).
		Group("rack_id").
		Scan(&counts).Error; err != nil {
		logger.Errorf(ctx, "CountAssignmentsByRacks err: %v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	ret := make(map[int64]int64, len(counts))
	for _, c := range counts {
		ret[c.RackID] = c.N
	}
	return ret, nil
}
