// Package identity выдаёт глобально уникальные идентификаторы сущностей.
package identity

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator возвращает новый идентификатор при каждом вызове
type Generator func() string

// New возвращает случайный UUIDv4
func New() string {
	return uuid.NewString()
}

// Sequence возвращает детерминированный генератор вида prefix-1, prefix-2, ...
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}
