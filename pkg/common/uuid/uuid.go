package uuid

import (
	// 外部依赖
	guuid "github.com/gofrs/uuid/v5"
)

// UUID 统一对外暴露的 UUID 类型
type UUID = guuid.UUID

var Nil = guuid.Nil

func NewV4() UUID {
	return guuid.Must(guuid.NewV4())
}

func FromString(s string) (UUID, error) {
	return guuid.FromString(s)
}

func MustFromString(s string) UUID {
	return guuid.Must(guuid.FromString(s))
}
