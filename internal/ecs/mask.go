package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

// Kind — номер вида компонента. Каждому виду соответствует ровно одно хранилище.
type Kind uint8

// MaxKinds — сколько видов помещается в Mask.
const MaxKinds = 64

// Mask — битовое множество видов компонентов, которыми владеет сущность.
type Mask uint64

func MaskOf(kinds ...Kind) Mask {
	var m Mask
	for _, k := range kinds {
		m |= 1 << k
	}
	return m
}

func (m Mask) Has(k Kind) bool {
	return m&(1<<k) != 0
}

// All — содержит ли m все биты other.
func (m Mask) All(other Mask) bool {
	return m&other == other
}

// Any — есть ли хотя бы один общий бит. Пустой other не совпадает ни с чем.
func (m Mask) Any(other Mask) bool {
	return m&other != 0
}

func (m Mask) With(k Kind) Mask {
	return m | 1<<k
}

func (m Mask) Without(k Kind) Mask {
	return m &^ (1 << k)
}

// Kinds перечисляет виды по возрастанию номера.
func (m Mask) Kinds() []Kind {
	out := make([]Kind, 0, bits.OnesCount64(uint64(m)))
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		out = append(out, Kind(bits.TrailingZeros64(rest)))
	}
	return out
}

func (m Mask) String() string {
	kinds := m.Kinds()
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = strconv.Itoa(int(k))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
