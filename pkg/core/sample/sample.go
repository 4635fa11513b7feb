package sample

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
)

// Service 定义样品登记、占位状态机、审计与批量迁移业务接口。
type Service interface {
	// ---- 登记与查询 ----

	// Register 登记样品条目，登记时不占位
	Register(ctx context.Context, req *RegisterReq) (*SampleResp, error)
	// Query 分页列出样品及其当前位置
	Query(ctx context.Context, req *QueryReq) (*common.PageResp[[]*SampleResp], error)
	// Get 单个样品及其当前位置与层级路径
	Get(ctx context.Context, req *SampleReq) (*SampleResp, error)
	// Metrics 样品与占位计数
	Metrics(ctx context.Context) (*MetricsResp, error)

	// ---- 占位状态机 ----

	// Assign 首次入位，要求样品当前无占位
	Assign(ctx context.Context, req *AssignReq) (*MutationResp, error)
	// Move 移位，旧位释放与新位占用同事务完成
	Move(ctx context.Context, req *MoveReq) (*MutationResp, error)
	// Dispose 报废，终态，位置释放且不可再占位
	Dispose(ctx context.Context, req *DisposeReq) (*MutationResp, error)

	// ---- 审计 ----

	// Movements 样品移动历史，从旧到新
	Movements(ctx context.Context, req *MovementsReq) (*common.PageResp[[]*MovementResp], error)

	// ---- 批量迁移 ----

	// PlanBulkMove 对目标格架按行优先首次适配生成迁移方案并暂存
	PlanBulkMove(ctx context.Context, req *PlanReq) (*PlanResp, error)
	// GetPlan 取暂存方案
	GetPlan(ctx context.Context, req *PlanIDReq) (*PlanResp, error)
	// CommitPlan 提交（可能被编辑过的）方案，逐项落位并收集各自结果
	CommitPlan(ctx context.Context, req *CommitReq) (*CommitResp, error)
}
