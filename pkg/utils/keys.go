package utils

import (
	// 内部引用
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
)

// PlanKey 批量移动暂存方案的 redis key
func PlanKey(planUUID uuid.UUID) string {
	return "samplestore:plan:" + planUUID.String()
}
