package common

import (
	// 外部依赖
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	// 内部引用
	code "github.com/coldstack/samplestore/pkg/common/code"
)

type Resp struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

// Reply 统一出口：err 为空时返回成功与数据，否则返回错误码
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	if len(data) > 0 {
		ReplyOk(ctx, data[0])
		return
	}
	ReplyOk(ctx)
}

func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success.Num, Msg: code.Success.Msg}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

func ReplyErr(ctx *gin.Context, err error, msg ...string) {
	c := &code.Code{}
	if !errors.As(err, &c) {
		c = code.QueryRecordErr.WithErr(err)
	}
	resp := &Resp{Code: c.Num, Msg: c.Msg, Detail: c.Detail}
	if len(msg) > 0 && msg[0] != "" {
		resp.Msg = msg[0]
	}
	ctx.JSON(c.HTTPStatus, resp)
}
