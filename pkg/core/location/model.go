package location

import (
	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
)

// Level 层级名，自上而下
type Level string

const (
	LevelRoom     Level = "room"
	LevelDevice   Level = "device"
	LevelShelf    Level = "shelf"
	LevelRack     Level = "rack"
	LevelPosition Level = "position"
)

// Next 返回下一层级，position 为最底层
func (l Level) Next() (Level, bool) {
	switch l {
	case LevelRoom:
		return LevelDevice, true
	case LevelDevice:
		return LevelShelf, true
	case LevelShelf:
		return LevelRack, true
	case LevelRack:
		return LevelPosition, true
	default:
		return "", false
	}
}

// NodeRef 层级节点的对外引用
type NodeRef struct {
	UUID uuid.UUID `json:"uuid"`
	Code string    `json:"code"` // shelf/rack 为 label
	Name string    `json:"name"`
}

// LocationReference 规范位置引用，可为层级前缀（非完整）。
// HierarchicalPath 形如 "Main Laboratory > Freezer 1 > Shelf A > Rack 1"。
type LocationReference struct {
	Room             *NodeRef `json:"room,omitempty"`
	Device           *NodeRef `json:"device,omitempty"`
	Shelf            *NodeRef `json:"shelf,omitempty"`
	Rack             *NodeRef `json:"rack,omitempty"`
	Position         *string  `json:"position,omitempty"`
	HierarchicalPath string   `json:"hierarchical_path"`
}

// Complete 是否精确到 格架+坐标，只有完整引用可用于占位
func (r *LocationReference) Complete() bool {
	return r != nil && r.Rack != nil && r.Position != nil && *r.Position != ""
}

// ---- 层级管理 ----

type CreateNodeReq struct {
	Level      Level      `json:"level" binding:"required,oneof=room device shelf rack"`
	ParentUUID *uuid.UUID `json:"parent_uuid"` // room 为空，其余层级必填

	Code        string  `json:"code" binding:"required"` // shelf/rack 传 label
	Name        string  `json:"name"`                    // room/device 必填，业务层校验
	Description *string `json:"description"`

	Type          *string `json:"type"`           // device 专用
	CapacityLimit *int    `json:"capacity_limit"` // device/shelf 可选

	RowCount int `json:"row_count"` // rack 必填
	ColCount int `json:"col_count"` // rack 必填
}

type UpdateNodeReq struct {
	Level Level     `json:"level" binding:"required,oneof=room device shelf rack"`
	UUID  uuid.UUID `json:"uuid" binding:"required"`

	Name          *string `json:"name"`
	Description   *string `json:"description"`
	CapacityLimit *int    `json:"capacity_limit"`
	Active        *bool   `json:"active"`
	Type          *string `json:"type"`

	// 以下字段创建后不可变，出现即拒绝
	Code     *string `json:"code"`
	RowCount *int    `json:"row_count"`
	ColCount *int    `json:"col_count"`
}

type NodeReq struct {
	Level Level     `json:"level" form:"level" binding:"required,oneof=room device shelf rack"`
	UUID  uuid.UUID `json:"uuid" form:"uuid" binding:"required"`
}

type NodeResp struct {
	Level            Level     `json:"level"`
	UUID             uuid.UUID `json:"uuid"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Active           bool      `json:"active"`
	Description      *string   `json:"description,omitempty"`
	Type             *string   `json:"type,omitempty"`
	CapacityLimit    *int      `json:"capacity_limit,omitempty"`
	RowCount         int       `json:"row_count,omitempty"`
	ColCount         int       `json:"col_count,omitempty"`
	HierarchicalPath string    `json:"hierarchical_path,omitempty"`
}

type ListChildrenReq struct {
	common.PageReq

	Level           Level      `json:"level" form:"level" binding:"required,oneof=room device shelf rack"`
	ParentUUID      *uuid.UUID `json:"parent_uuid" form:"parent_uuid"`
	IncludeInactive bool       `json:"include_inactive" form:"include_inactive"`
}

type CanDeleteResp struct {
	CanDelete     bool   `json:"can_delete"`
	Reason        string `json:"reason,omitempty"`
	BlockingLevel string `json:"blocking_level,omitempty"`
	BlockingCount int64  `json:"blocking_count,omitempty"`
}

// ---- 解析 ----

// CascadeStep 级联选择：取 parent 的下一层激活子节点
type CascadeStep struct {
	Level         Level      `json:"level" binding:"required,oneof=room device shelf rack"`
	ParentUUID    *uuid.UUID `json:"parent_uuid"`
	AllowInactive bool       `json:"allow_inactive"`
}

// TextQuery 自由文本层级检索，至少 2 个字符
type TextQuery struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// BarcodeQuery 条码解析
type BarcodeQuery struct {
	Raw           string `json:"raw" binding:"required"`
	AllowInactive bool   `json:"allow_inactive"`
}

// ResolveReq 三选一，多填或全空按参数错误处理
type ResolveReq struct {
	Cascade *CascadeStep  `json:"cascade,omitempty"`
	Text    *TextQuery    `json:"text,omitempty"`
	Barcode *BarcodeQuery `json:"barcode,omitempty"`
}

type NodeOption struct {
	UUID   uuid.UUID `json:"uuid"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

type SearchHit struct {
	Level     Level              `json:"level"`
	Reference *LocationReference `json:"reference"`
}

// BarcodeType 扫码串分类
type BarcodeType string

const (
	BarcodeLocation BarcodeType = "location"
	BarcodeSample   BarcodeType = "sample"
	BarcodeUnknown  BarcodeType = "unknown"
)

// 条码校验失败环节
const (
	StepFormatValidation    = "FORMAT_VALIDATION"
	StepLocationExistence   = "LOCATION_EXISTENCE"
	StepHierarchyValidation = "HIERARCHY_VALIDATION"
	StepActivityCheck       = "ACTIVITY_CHECK"
)

// BarcodeResult 渐进式解析结果：失败时 ValidComponents 保留
// 已解析前缀，FirstMissingLevel 指向首个失败段。
type BarcodeResult struct {
	Valid             bool               `json:"valid"`
	BarcodeType       BarcodeType        `json:"barcode_type"`
	Reference         *LocationReference `json:"reference,omitempty"`
	ValidComponents   *LocationReference `json:"valid_components"`
	FirstMissingLevel *Level             `json:"first_missing_level,omitempty"`
	FailedStep        string             `json:"failed_step,omitempty"`
	ErrorMessage      string             `json:"error_message,omitempty"`
}

type ResolveResp struct {
	Options []*NodeOption  `json:"options,omitempty"`
	Matches []*SearchHit   `json:"matches,omitempty"`
	Barcode *BarcodeResult `json:"barcode,omitempty"`
}

// ---- 完整位置 ----

type RackPositionReq struct {
	RackUUID      uuid.UUID `json:"rack_uuid" form:"rack_uuid" binding:"required"`
	Coordinate    string    `json:"coordinate" form:"coordinate" binding:"required"`
	AllowInactive bool      `json:"allow_inactive" form:"allow_inactive"`
}

// ResolvedTarget 校验通过的完整位置。RackID 仅供进程内协作方使用。
type ResolvedTarget struct {
	RackID     int64              `json:"-"`
	Coordinate string             `json:"coordinate"`
	Reference  *LocationReference `json:"reference"`
}

// ---- 占用 ----

type OccupancyReq struct {
	RackUUID uuid.UUID `json:"rack_uuid" form:"rack_uuid" binding:"required"`
}

type PositionState struct {
	Coordinate     string     `json:"coordinate"`
	Occupied       bool       `json:"occupied"`
	SampleItemUUID *uuid.UUID `json:"sample_item_uuid,omitempty"`
}

type OccupancyResp struct {
	RackUUID      uuid.UUID        `json:"rack_uuid"`
	OccupiedCount int              `json:"occupied_count"`
	TotalCapacity int              `json:"total_capacity"`
	Ratio         float64          `json:"ratio"`
	Warning       *string          `json:"warning,omitempty"`
	Positions     []*PositionState `json:"positions"`
}
