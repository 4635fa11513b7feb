package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	model "github.com/coldstack/samplestore/pkg/model"
)

// NodeQuery 层级节点列表过滤条件
type NodeQuery struct {
	ParentID        int64 // 0 表示顶层（房间）
	IncludeInactive bool
	Offset          int
	Limit           int
}

// SearchRow 检索命中行，Path 为数据库侧拼好的层级路径
type SearchRow struct {
	Level string
	ID    int64
	UUID  uuid.UUID
	Name  string
	Path  string
}

type LocationRepo interface {
	IDOrUUIDTranslate

	// 房间
	CreateRoom(ctx context.Context, room *model.StorageRoom) error
	GetRoomByUUID(ctx context.Context, u uuid.UUID) (*model.StorageRoom, error)
	GetRoomByCode(ctx context.Context, code string) (*model.StorageRoom, error)
	ListRooms(ctx context.Context, q NodeQuery) ([]*model.StorageRoom, int64, error)
	UpdateRoomByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error
	DeleteRoomByID(ctx context.Context, id int64) error
	CountDevicesInRoom(ctx context.Context, roomID int64) (int64, error)

	// 设备
	CreateDevice(ctx context.Context, device *model.StorageDevice) error
	GetDeviceByUUID(ctx context.Context, u uuid.UUID) (*model.StorageDevice, error)
	GetDeviceByCode(ctx context.Context, roomID int64, code string) (*model.StorageDevice, error)
	ListDevices(ctx context.Context, q NodeQuery) ([]*model.StorageDevice, int64, error)
	UpdateDeviceByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error
	DeleteDeviceByID(ctx context.Context, id int64) error
	CountShelvesInDevice(ctx context.Context, deviceID int64) (int64, error)

	// 层架
	CreateShelf(ctx context.Context, shelf *model.StorageShelf) error
	GetShelfByUUID(ctx context.Context, u uuid.UUID) (*model.StorageShelf, error)
	GetShelfByLabel(ctx context.Context, deviceID int64, label string) (*model.StorageShelf, error)
	ListShelves(ctx context.Context, q NodeQuery) ([]*model.StorageShelf, int64, error)
	UpdateShelfByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error
	DeleteShelfByID(ctx context.Context, id int64) error
	CountRacksInShelf(ctx context.Context, shelfID int64) (int64, error)

	// 格架
	CreateRack(ctx context.Context, rack *model.StorageRack) error
	GetRackByUUID(ctx context.Context, u uuid.UUID) (*model.StorageRack, error)
	GetRackByLabel(ctx context.Context, shelfID int64, label string) (*model.StorageRack, error)
	ListRacks(ctx context.Context, q NodeQuery) ([]*model.StorageRack, int64, error)
	UpdateRackByUUID(ctx context.Context, u uuid.UUID, data map[string]any) error
	DeleteRackByID(ctx context.Context, id int64) error
	CountAssignmentsInRack(ctx context.Context, rackID int64) (int64, error)

	// 祖先链，用于拼层级路径与激活性校验
	GetShelfAncestors(ctx context.Context, shelf *model.StorageShelf) (*model.StorageRoom, *model.StorageDevice, error)
	GetRackAncestors(ctx context.Context, rack *model.StorageRack) (*model.StorageRoom, *model.StorageDevice, *model.StorageShelf, error)

	// 名称检索，四个层级各取前 limit 条
	SearchLocations(ctx context.Context, term string, limit int) ([]*SearchRow, error)

	// 占用
	ListAssignmentsByRack(ctx context.Context, rackID int64) ([]*model.StorageAssignment, error)
	CountAssignmentsByRacks(ctx context.Context, rackIDs []int64) (map[int64]int64, error)
}
