package migrate

import (
	// 外部依赖
	"context"

	// 内部引用
	db "github.com/coldstack/samplestore/pkg/middleware/db"
	model "github.com/coldstack/samplestore/pkg/model"
	utils "github.com/coldstack/samplestore/pkg/utils"
)

func Table(_ context.Context) error {
	return utils.IfErrReturn(func() error {
		return db.DB().DBIns().AutoMigrate(
			&model.StorageRoom{},       // 房间
			&model.StorageDevice{},     // 设备
			&model.StorageShelf{},      // 层架
			&model.StorageRack{},       // 格架
			&model.SampleItem{},        // 样品
			&model.StorageAssignment{}, // 占位
			&model.StorageMovement{},   // 移动流水
		)
	}, func() error {
		// 路径检索走 ILIKE，加 trigram 索引
		return db.DB().DBIns().Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm;`).Error
	}, func() error {
		return db.DB().DBIns().Exec(`CREATE INDEX IF NOT EXISTS idx_storage_room_name_trgm ON storage_room USING gin(name gin_trgm_ops);`).Error
	})
}
