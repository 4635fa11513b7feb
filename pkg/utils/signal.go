package utils

import (
	// 外部依赖
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalContext 返回随 SIGINT/SIGTERM 取消的根上下文
func SetupSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
		<-ch
		os.Exit(1) // 第二次信号直接退出
	}()

	return ctx
}
