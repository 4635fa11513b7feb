package db

import (
	// 外部依赖
	"context"
	"database/sql"
	"fmt"
	"time"

	postgres "gorm.io/driver/postgres"
	gorm "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	tracing "gorm.io/plugin/opentelemetry/tracing"

	// 内部引用
	logger "github.com/coldstack/samplestore/pkg/middleware/logger"
)

type LogConf struct {
	Level string
}

type Config struct {
	Host   string
	Port   int
	User   string
	PW     string
	DBName string
	LogConf
}

type Datastore struct {
	db *gorm.DB
}

type txKey struct{}

var global *Datastore

func InitPostgres(ctx context.Context, conf *Config) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		conf.Host, conf.Port, conf.User, conf.PW, conf.DBName)

	level := gormlogger.Warn
	if conf.Level == "debug" {
		level = gormlogger.Info
	}

	ins, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true, // 唯一索引冲突要能识别成 ErrDuplicatedKey
	})
	if err != nil {
		logger.Fatalf(ctx, "open postgres err: %+v", err)
	}

	if err := ins.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		logger.Fatalf(ctx, "install gorm tracing plugin err: %+v", err)
	}

	sqlDB, err := ins.DB()
	if err != nil {
		logger.Fatalf(ctx, "get sql db err: %+v", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	global = &Datastore{db: ins}
}

func ClosePostgres(ctx context.Context) {
	if global == nil {
		return
	}
	if sqlDB, err := global.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warnf(ctx, "close postgres err: %+v", err)
		}
	}
}

func DB() *Datastore {
	return global
}

// NewDatastore 以现成 gorm 实例构造，供单测注入
func NewDatastore(ins *gorm.DB) *Datastore {
	return &Datastore{db: ins}
}

func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}

// DBWithContext 事务内取事务句柄，否则取全局连接
func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// ExecTx 在单个事务内执行 fn，事务句柄通过 context 下传
func (d *Datastore) ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// ExecSerializableTx 占位检查竞争的唯一入口：assign/move 的查-占序列必须在
// 可串行化隔离级别下执行，冲突方快速失败
func (d *Datastore) ExecSerializableTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
