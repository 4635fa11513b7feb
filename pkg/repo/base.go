package repo

import (
	// 外部依赖
	"context"

	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/coldstack/samplestore/pkg/common/code"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	db "github.com/coldstack/samplestore/pkg/middleware/db"
	model "github.com/coldstack/samplestore/pkg/model"
)

type IDOrUUIDTranslate interface {
	DBWithContext(ctx context.Context) *gorm.DB
	ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error
	// ExecSerializableTx 查-占序列专用，隔离级别为可串行化
	ExecSerializableTx(ctx context.Context, fn func(txCtx context.Context) error) error
	GetIDByUUID(ctx context.Context, m model.BaseDBModel, u uuid.UUID) (int64, error)
	GetUUIDByID(ctx context.Context, m model.BaseDBModel, id int64) (uuid.UUID, error)
}

type baseDB struct{}

func NewBaseDB() IDOrUUIDTranslate {
	return &baseDB{}
}

// DBWithContext 事务上下文内返回事务句柄，否则返回全局连接
func (b *baseDB) DBWithContext(ctx context.Context) *gorm.DB {
	return db.DB().DBWithContext(ctx)
}

func (b *baseDB) ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return db.DB().ExecTx(ctx, fn)
}

func (b *baseDB) ExecSerializableTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return db.DB().ExecSerializableTx(ctx, fn)
}

func (b *baseDB) GetIDByUUID(ctx context.Context, m model.BaseDBModel, u uuid.UUID) (int64, error) {
	var id int64
	if err := b.DBWithContext(ctx).Model(m).
		Where("uuid = ?", u).
		Select("id").
		Take(&id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, code.RecordNotFound
		}
		return 0, code.QueryRecordErr.WithErr(err)
	}
	return id, nil
}

func (b *baseDB) GetUUIDByID(ctx context.Context, m model.BaseDBModel, id int64) (uuid.UUID, error) {
	var u uuid.UUID
	if err := b.DBWithContext(ctx).Model(m).
		Where("id = ?", id).
		Select("uuid").
		Take(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return uuid.Nil, code.RecordNotFound
		}
		return uuid.Nil, code.QueryRecordErr.WithErr(err)
	}
	return u, nil
}
