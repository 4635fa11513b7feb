package model

// 存储层级：Room → Device → Shelf → Rack → Position。
// Position 不落表，由 Rack 的行列网格推导，占用状态见 storage_assignment。

type DeviceType string

const (
	DeviceFreezer      DeviceType = "freezer"
	DeviceRefrigerator DeviceType = "refrigerator"
	DeviceCabinet      DeviceType = "cabinet"
	DeviceAmbientRack  DeviceType = "ambient_rack"
)

// 存储房间表
type StorageRoom struct {
	BaseModel
	Code        string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_storageroom_code" json:"code"`
	Name        string  `gorm:"type:varchar(120);not null" json:"name"`
	Active      bool    `gorm:"not null;default:true;index:idx_storageroom_active" json:"active"`
	Description *string `gorm:"type:text" json:"description"`
}

func (*StorageRoom) TableName() string {
	return "storage_room"
}

// 存储设备表（冰箱/冷柜等）
type StorageDevice struct {
	BaseModel
	RoomID        int64      `gorm:"type:bigint;not null;uniqueIndex:idx_storagedevice_room_code,priority:1;index:idx_storagedevice_room" json:"room_id"`
	Code          string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_storagedevice_room_code,priority:2" json:"code"`
	Name          string     `gorm:"type:varchar(120);not null" json:"name"`
	Type          DeviceType `gorm:"type:varchar(30);not null;default:'freezer'" json:"type"`
	CapacityLimit *int       `gorm:"type:int" json:"capacity_limit"`
	Active        bool       `gorm:"not null;default:true" json:"active"`
	Description   *string    `gorm:"type:text" json:"description"`
}

func (*StorageDevice) TableName() string {
	return "storage_device"
}

// 存储层架表
type StorageShelf struct {
	BaseModel
	DeviceID      int64  `gorm:"type:bigint;not null;uniqueIndex:idx_storageshelf_device_label,priority:1;index:idx_storageshelf_device" json:"device_id"`
	Label         string `gorm:"type:varchar(50);not null;uniqueIndex:idx_storageshelf_device_label,priority:2" json:"label"`
	CapacityLimit *int   `gorm:"type:int" json:"capacity_limit"`
	Active        bool   `gorm:"not null;default:true" json:"active"`
}

func (*StorageShelf) TableName() string {
	return "storage_shelf"
}

// 存储格架表，RowCount×ColCount 定义坐标网格
type StorageRack struct {
	BaseModel
	ShelfID  int64  `gorm:"type:bigint;not null;uniqueIndex:idx_storagerack_shelf_label,priority:1;index:idx_storagerack_shelf" json:"shelf_id"`
	Label    string `gorm:"type:varchar(50);not null;uniqueIndex:idx_storagerack_shelf_label,priority:2" json:"label"`
	RowCount int    `gorm:"type:int;not null" json:"row_count"`
	ColCount int    `gorm:"type:int;not null" json:"col_count"`
	Active   bool   `gorm:"not null;default:true" json:"active"`
}

func (*StorageRack) TableName() string {
	return "storage_rack"
}

// Capacity 格架总容量
func (r *StorageRack) Capacity() int {
	return r.RowCount * r.ColCount
}
