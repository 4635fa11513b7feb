package sample

import (
	// 外部依赖
	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
	code "github.com/coldstack/samplestore/pkg/common/code"
	coreSample "github.com/coldstack/samplestore/pkg/core/sample"
	sampleImpl "github.com/coldstack/samplestore/pkg/core/sample/sample"
)

type Handle struct{ svc coreSample.Service }

func NewHandle() *Handle { return &Handle{svc: sampleImpl.New()} }

// Register 登记样品
// @Router /api/v1/storage/samples [post]
func (h *Handle) Register(ctx *gin.Context) {
	in := &coreSample.RegisterReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Register(ctx, in)
	common.Reply(ctx, err, resp)
}

// Query 样品列表
// @Router /api/v1/storage/samples [get]
func (h *Handle) Query(ctx *gin.Context) {
	in := &coreSample.QueryReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Query(ctx, in)
	common.Reply(ctx, err, resp)
}

// Get 样品详情与当前位置
// @Router /api/v1/storage/samples/item [get]
func (h *Handle) Get(ctx *gin.Context) {
	in := &coreSample.SampleReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Get(ctx, in)
	common.Reply(ctx, err, resp)
}

// Metrics 样品与占位计数
// @Router /api/v1/storage/samples/metrics [get]
func (h *Handle) Metrics(ctx *gin.Context) {
	resp, err := h.svc.Metrics(ctx)
	common.Reply(ctx, err, resp)
}

// Assign 首次入位
// @Router /api/v1/storage/samples/assign [post]
func (h *Handle) Assign(ctx *gin.Context) {
	in := &coreSample.AssignReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Assign(ctx, in)
	common.Reply(ctx, err, resp)
}

// Move 移位
// @Router /api/v1/storage/samples/move [post]
func (h *Handle) Move(ctx *gin.Context) {
	in := &coreSample.MoveReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Move(ctx, in)
	common.Reply(ctx, err, resp)
}

// Dispose 报废
// @Router /api/v1/storage/samples/dispose [post]
func (h *Handle) Dispose(ctx *gin.Context) {
	in := &coreSample.DisposeReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Dispose(ctx, in)
	common.Reply(ctx, err, resp)
}

// Movements 移动历史（从旧到新）
// @Router /api/v1/storage/samples/movements [get]
func (h *Handle) Movements(ctx *gin.Context) {
	in := &coreSample.MovementsReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Movements(ctx, in)
	common.Reply(ctx, err, resp)
}

// PlanBulkMove 生成批量迁移方案
// @Router /api/v1/storage/plans [post]
func (h *Handle) PlanBulkMove(ctx *gin.Context) {
	in := &coreSample.PlanReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.PlanBulkMove(ctx, in)
	common.Reply(ctx, err, resp)
}

// GetPlan 取暂存方案
// @Router /api/v1/storage/plans [get]
func (h *Handle) GetPlan(ctx *gin.Context) {
	in := &coreSample.PlanIDReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.GetPlan(ctx, in)
	common.Reply(ctx, err, resp)
}

// CommitPlan 提交方案，逐项收集结果
// @Router /api/v1/storage/plans/commit [post]
func (h *Handle) CommitPlan(ctx *gin.Context) {
	in := &coreSample.CommitReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.CommitPlan(ctx, in)
	common.Reply(ctx, err, resp)
}
