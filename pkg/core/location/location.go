package location

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
)

// Service 定义存储层级与位置解析业务接口。
//
// 所有方法均接受 context.Context，web 层可直接传入 *gin.Context，
// 实现内部据此获取操作者、日志、DB 会话等。
type Service interface {
	// ---- 层级管理 ----

	// CreateNode 在指定层级下新建节点
	CreateNode(ctx context.Context, req *CreateNodeReq) (*NodeResp, error)
	// UpdateNode 更新可变字段，code/label 及格架行列数创建后不可变
	UpdateNode(ctx context.Context, req *UpdateNodeReq) error
	// GetNode 取单个节点及其层级路径
	GetNode(ctx context.Context, req *NodeReq) (*NodeResp, error)
	// ListChildren 分页列出某节点的下级
	ListChildren(ctx context.Context, req *ListChildrenReq) (*common.PageResp[[]*NodeResp], error)
	// CanDelete 判断节点是否可硬删，不可删时返回阻塞原因
	CanDelete(ctx context.Context, req *NodeReq) (*CanDeleteResp, error)
	// DeleteNode 硬删节点，删除前在同一事务内重新校验 CanDelete
	DeleteNode(ctx context.Context, req *NodeReq) error

	// ---- 位置解析（单一入口，三种请求变体） ----

	// Resolve 三种输入模态的统一入口：级联选项、文本检索、条码。
	// 请求体内恰好填一个变体。
	Resolve(ctx context.Context, req *ResolveReq) (*ResolveResp, error)

	// ResolveRackPosition 校验 格架+坐标 是否为合法完整位置，
	// 返回规范引用。assign/move 前置校验用。
	ResolveRackPosition(ctx context.Context, req *RackPositionReq) (*ResolvedTarget, error)

	// FormatBarcode 把完整位置引用序列化回条码串，
	// 与条码解析互为逆运算。
	FormatBarcode(ctx context.Context, req *RackPositionReq) (string, error)

	// ---- 占用 ----

	// Occupancy 格架占用快照：各坐标占用状态、占用率与容量告警
	Occupancy(ctx context.Context, req *OccupancyReq) (*OccupancyResp, error)
	// IsOccupied 单坐标占用查询
	IsOccupied(ctx context.Context, req *RackPositionReq) (*PositionState, error)
}
