package auth

import (
	// 外部依赖
	"context"
	"strings"

	gin "github.com/gin-gonic/gin"

	// 内部引用
	common "github.com/coldstack/samplestore/pkg/common"
	code "github.com/coldstack/samplestore/pkg/common/code"
)

// 认证鉴权由上游网关完成，这里只接收网关注入的操作者标识，
// 用于审计记录的 actor 字段。
const (
	ActorHeader = "X-Actor"
	ACTORKEY    = "AUTH_ACTOR_KEY"
)

type Actor struct {
	ID string
}

// RequireActor 要求请求携带操作者标识
func RequireActor() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor := strings.TrimSpace(ctx.GetHeader(ActorHeader))
		if actor == "" {
			common.ReplyErr(ctx, code.ParamErr.WithMsg("missing "+ActorHeader+" header"))
			ctx.Abort()
			return
		}
		ctx.Set(ACTORKEY, &Actor{ID: actor})
		ctx.Next()
	}
}

// GetCurrentActor 从上下文中获取当前操作者
func GetCurrentActor(ctx context.Context) *Actor {
	gCtx, ok := ctx.(*gin.Context)
	if !ok {
		return nil
	}

	actor, exists := gCtx.Get(ACTORKEY)
	if !exists {
		return nil
	}
	return actor.(*Actor)
}
