package location

import (
	// 外部依赖
	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
	code "github.com/coldstack/samplestore/pkg/common/code"
	coreLocation "github.com/coldstack/samplestore/pkg/core/location"
	locationImpl "github.com/coldstack/samplestore/pkg/core/location/location"
)

type Handle struct{ svc coreLocation.Service }

func NewHandle() *Handle { return &Handle{svc: locationImpl.New()} }

// CreateNode 新建层级节点
// @Router /api/v1/storage/nodes [post]
func (h *Handle) CreateNode(ctx *gin.Context) {
	in := &coreLocation.CreateNodeReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.CreateNode(ctx, in)
	common.Reply(ctx, err, resp)
}

// UpdateNode 更新节点可变字段
// @Router /api/v1/storage/nodes [put]
func (h *Handle) UpdateNode(ctx *gin.Context) {
	in := &coreLocation.UpdateNodeReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	common.Reply(ctx, h.svc.UpdateNode(ctx, in))
}

// GetNode 取节点详情
// @Router /api/v1/storage/nodes [get]
func (h *Handle) GetNode(ctx *gin.Context) {
	in := &coreLocation.NodeReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.GetNode(ctx, in)
	common.Reply(ctx, err, resp)
}

// ListChildren 列下级节点
// @Router /api/v1/storage/nodes/children [get]
func (h *Handle) ListChildren(ctx *gin.Context) {
	in := &coreLocation.ListChildrenReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.ListChildren(ctx, in)
	common.Reply(ctx, err, resp)
}

// CanDelete 删除预检
// @Router /api/v1/storage/nodes/can-delete [get]
func (h *Handle) CanDelete(ctx *gin.Context) {
	in := &coreLocation.NodeReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.CanDelete(ctx, in)
	common.Reply(ctx, err, resp)
}

// DeleteNode 硬删节点
// @Router /api/v1/storage/nodes [delete]
func (h *Handle) DeleteNode(ctx *gin.Context) {
	in := &coreLocation.NodeReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	common.Reply(ctx, h.svc.DeleteNode(ctx, in))
}

// Resolve 三模态位置解析统一入口
// @Router /api/v1/storage/resolve [post]
func (h *Handle) Resolve(ctx *gin.Context) {
	in := &coreLocation.ResolveReq{}
	if err := ctx.ShouldBindJSON(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Resolve(ctx, in)
	common.Reply(ctx, err, resp)
}

// FormatBarcode 完整位置 → 条码串
// @Router /api/v1/storage/barcode [get]
func (h *Handle) FormatBarcode(ctx *gin.Context) {
	in := &coreLocation.RackPositionReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	barcode, err := h.svc.FormatBarcode(ctx, in)
	common.Reply(ctx, err, gin.H{"barcode": barcode})
}

// BarcodeType 扫码串分类
// @Router /api/v1/storage/barcode/type [get]
func (h *Handle) BarcodeType(ctx *gin.Context) {
	raw := ctx.Query("raw")
	if raw == "" {
		common.ReplyErr(ctx, code.ParamErr.WithMsg("raw is required"))
		return
	}
	common.ReplyOk(ctx, gin.H{"barcode_type": locationImpl.DetectBarcodeType(raw)})
}

// Occupancy 格架占用快照
// @Router /api/v1/storage/occupancy [get]
func (h *Handle) Occupancy(ctx *gin.Context) {
	in := &coreLocation.OccupancyReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.Occupancy(ctx, in)
	common.Reply(ctx, err, resp)
}

// IsOccupied 单坐标占用查询
// @Router /api/v1/storage/occupancy/position [get]
func (h *Handle) IsOccupied(ctx *gin.Context) {
	in := &coreLocation.RackPositionReq{}
	if err := ctx.ShouldBindQuery(in); err != nil {
		common.ReplyErr(ctx, code.ParamErr.WithMsg(err.Error()))
		return
	}
	resp, err := h.svc.IsOccupied(ctx, in)
	common.Reply(ctx, err, resp)
}
