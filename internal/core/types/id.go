package types

import (
	"fmt"
	"strconv"
)

// EntityID — 64-битный идентификатор сущности.
//
// Формат битов (от старших к младшим):
//
//	[ Type (8) | Index (56) ]
//
// Index выдаётся реестром строго по возрастанию и никогда не переиспользуется,
// поэтому сортировка по Index совпадает с порядком создания сущностей.
type EntityID uint64

// NilEntityID — нулевой идентификатор, аналог nil.
const NilEntityID EntityID = 0

const (
	bitsIndex = 56
	bitsType  = 8

	shiftType = bitsIndex

	maskIndex = (1 << bitsIndex) - 1
	maskType  = (1 << bitsType) - 1
)

// PackEntityID собирает EntityID из типа и индекса.
// Лишние старшие биты индекса отбрасываются.
func PackEntityID(typeID uint8, index uint64) EntityID {
	return EntityID(uint64(typeID)<<shiftType | (index & maskIndex))
}

// Index возвращает порядковый номер сущности в реестре.
func (id EntityID) Index() uint64 {
	return uint64(id) & maskIndex
}

// Type возвращает тип сущности (см. enums.EntityType).
func (id EntityID) Type() uint8 {
	return uint8((uint64(id) >> shiftType) & maskType)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// Less сравнивает идентификаторы по порядку создания.
func (id EntityID) Less(other EntityID) bool {
	return id.Index() < other.Index()
}

// String возвращает представление для логов.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[type=%d idx=%d]", id.Type(), id.Index())
}

// MarshalJSON сериализует EntityID как строку, чтобы JS-клиенты не теряли точность.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строковое, так и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseEntityID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseEntityID разбирает десятичное представление идентификатора.
// Пустая строка даёт NilEntityID.
func ParseEntityID(s string) (EntityID, error) {
	if s == "" {
		return NilEntityID, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NilEntityID, fmt.Errorf("invalid entity id %q: %w", s, err)
	}
	return EntityID(v), nil
}
