package code

import (
	// 外部依赖
	"fmt"
	"net/http"
)

// Code 业务错误码，实现 error 接口
type Code struct {
	Num        int    `json:"code"`
	HTTPStatus int    `json:"-"`
	Msg        string `json:"msg"`
	Detail     any    `json:"detail,omitempty"`

	cause error
}

func New(num int, httpStatus int, msg string) *Code {
	return &Code{Num: num, HTTPStatus: httpStatus, Msg: msg}
}

func (c *Code) Error() string {
	if c.cause != nil {
		return fmt.Sprintf("code=%d msg=%s cause=%v", c.Num, c.Msg, c.cause)
	}
	return fmt.Sprintf("code=%d msg=%s", c.Num, c.Msg)
}

func (c *Code) Unwrap() error {
	return c.cause
}

// WithMsg 返回替换提示语的副本，不修改全局码
func (c *Code) WithMsg(msg string) *Code {
	n := *c
	n.Msg = msg
	return &n
}

func (c *Code) WithMsgf(format string, args ...any) *Code {
	return c.WithMsg(fmt.Sprintf(format, args...))
}

func (c *Code) WithErr(err error) *Code {
	n := *c
	n.cause = err
	return &n
}

// WithDetail 附带结构化明细，调用方用于渲染可操作的错误提示
func (c *Code) WithDetail(detail any) *Code {
	n := *c
	n.Detail = detail
	return &n
}

// Is 支持 errors.Is 按错误码匹配
func (c *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.Num == c.Num
}

var (
	Success  = New(0, http.StatusOK, "success")
	ParamErr = New(10001, http.StatusBadRequest, "invalid request parameter")

	// 通用存储层错误
	CreateDataErr  = New(10101, http.StatusInternalServerError, "create record failed")
	UpdateDataErr  = New(10102, http.StatusInternalServerError, "update record failed")
	QueryRecordErr = New(10103, http.StatusInternalServerError, "query record failed")
	DeleteDataErr  = New(10104, http.StatusInternalServerError, "delete record failed")
	RecordNotFound = New(10105, http.StatusNotFound, "record not found")

	// 位置层级
	NodeNotFound     = New(20001, http.StatusNotFound, "storage node not found")
	ParentNotFound   = New(20002, http.StatusNotFound, "parent storage node not found")
	InactiveNode     = New(20003, http.StatusConflict, "storage node is inactive")
	DeleteConstraint = New(20004, http.StatusConflict, "storage node has blocking children")
	ImmutableField   = New(20005, http.StatusBadRequest, "field is immutable after creation")

	// 位置解析
	SearchTermTooShort = New(21001, http.StatusBadRequest, "search term requires at least 2 characters")
	BadCoordinate      = New(21002, http.StatusBadRequest, "coordinate outside rack bounds")
	IncompleteLocation = New(21003, http.StatusBadRequest, "location reference must resolve to rack and position")

	// 样品与占位
	SampleNotFound   = New(22001, http.StatusNotFound, "sample item not found")
	OccupiedPosition = New(22002, http.StatusConflict, "target position is already occupied")
	AlreadyAssigned  = New(22003, http.StatusConflict, "sample item already has an active assignment")
	NotAssigned      = New(22004, http.StatusConflict, "sample item has no active assignment")
	NoOpMove         = New(22005, http.StatusConflict, "target position equals current position")
	AlreadyDisposed  = New(22006, http.StatusConflict, "sample item is disposed")
	DisposalVocab    = New(22007, http.StatusBadRequest, "disposal reason or method outside controlled vocabulary")
	NotConfirmed     = New(22008, http.StatusBadRequest, "disposal requires explicit confirmation")

	// 批量迁移
	PlanNotFound = New(23001, http.StatusNotFound, "bulk move plan not found or expired")
	RackFull     = New(23002, http.StatusConflict, "rack has fewer free positions than items to place")
)
