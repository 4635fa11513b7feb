package sample

import (
	// 外部依赖
	"time"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	location "github.com/coldstack/samplestore/pkg/core/location"
	model "github.com/coldstack/samplestore/pkg/model"
)

// 报废受控词表
var (
	DisposalReasons = []string{"expired", "contaminated", "consumed", "qc_failed", "other"}
	DisposalMethods = []string{"autoclave", "incineration", "chemical", "sharps_container", "biohazard_bag"}
)

// ---- 登记与查询 ----

type RegisterReq struct {
	ExternalID string `json:"external_id" binding:"required"`
	Type       string `json:"type" binding:"required"`
}

type SampleResp struct {
	UUID       uuid.UUID          `json:"uuid"`
	ExternalID string             `json:"external_id"`
	Type       string             `json:"type"`
	Status     model.SampleStatus `json:"status"`

	// 当前占位，未入位为空
	Location   *location.LocationReference `json:"location,omitempty"`
	AssignedAt *time.Time                  `json:"assigned_at,omitempty"`
}

type QueryReq struct {
	common.PageReq

	ExternalID *string `json:"external_id" form:"external_id"`
	Type       *string `json:"type" form:"type"`
	Status     *string `json:"status" form:"status"`
}

type SampleReq struct {
	UUID uuid.UUID `json:"uuid" form:"uuid" binding:"required"`
}

type MetricsResp struct {
	TotalSampleItems int64 `json:"total_sample_items"`
	Active           int64 `json:"active"`
	Disposed         int64 `json:"disposed"`
	StorageLocations int64 `json:"storage_locations"`
}

// ---- 占位状态机 ----

type AssignReq struct {
	SampleUUID uuid.UUID `json:"sample_uuid" binding:"required"`
	RackUUID   uuid.UUID `json:"rack_uuid" binding:"required"`
	Coordinate string    `json:"coordinate" binding:"required"`
	Notes      *string   `json:"notes"`
}

type MoveReq struct {
	SampleUUID uuid.UUID `json:"sample_uuid" binding:"required"`
	RackUUID   uuid.UUID `json:"rack_uuid" binding:"required"`
	Coordinate string    `json:"coordinate" binding:"required"`
	Reason     *string   `json:"reason"`
}

type DisposeReq struct {
	SampleUUID uuid.UUID `json:"sample_uuid" binding:"required"`
	Reason     string    `json:"reason" binding:"required"`
	Method     string    `json:"method" binding:"required"`
	Notes      *string   `json:"notes"`
	// 报废不可逆，必须显式确认
	Confirmed bool `json:"confirmed"`
}

// MutationResp 状态机操作统一返回：最新样品状态 + 容量提示
type MutationResp struct {
	Sample *SampleResp `json:"sample"`
	// 目标格架占用率达阈值时的提示
	CapacityWarning *string `json:"capacity_warning,omitempty"`
}

// ---- 审计 ----

type MovementsReq struct {
	common.PageReq

	SampleUUID uuid.UUID `json:"sample_uuid" form:"sample_uuid" binding:"required"`
}

type MovementResp struct {
	ID       int64                       `json:"id"`
	Previous *location.LocationReference `json:"previous,omitempty"`
	New      *location.LocationReference `json:"new,omitempty"`
	Reason   *string                     `json:"reason,omitempty"`
	Actor    string                      `json:"actor"`
	Outcome  model.MovementOutcome       `json:"outcome"`
	MovedAt  time.Time                   `json:"moved_at"`
}

// ---- 批量迁移 ----

type PlanReq struct {
	RackUUID    uuid.UUID   `json:"rack_uuid" binding:"required"`
	SampleUUIDs []uuid.UUID `json:"sample_uuids" binding:"required,min=1"`
}

type PlanEntry struct {
	SampleUUID uuid.UUID `json:"sample_uuid"`
	Coordinate string    `json:"coordinate"`
}

type PlanResp struct {
	PlanUUID  uuid.UUID    `json:"plan_uuid"`
	RackUUID  uuid.UUID    `json:"rack_uuid"`
	Entries   []*PlanEntry `json:"entries"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type PlanIDReq struct {
	PlanUUID uuid.UUID `json:"plan_uuid" form:"plan_uuid" binding:"required"`
}

type CommitReq struct {
	PlanUUID uuid.UUID `json:"plan_uuid" binding:"required"`
	// 编辑后的条目；为空则按暂存方案提交
	Entries []*PlanEntry `json:"entries"`
	Reason  *string      `json:"reason"`
}

// ItemOutcome 批量提交的单项结果，冲突不拖垮整批
type ItemOutcome struct {
	SampleUUID uuid.UUID `json:"sample_uuid"`
	Coordinate string    `json:"coordinate"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

type CommitResp struct {
	PlanUUID  uuid.UUID      `json:"plan_uuid"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []*ItemOutcome `json:"results"`
}
