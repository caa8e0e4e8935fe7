package domain

import (
	"fmt"
	"strings"
)

// AmenityKind вид общего объекта (зал, бассейн, парковка и т.д.)
type AmenityKind string

const (
	AmenityGym      AmenityKind = "GYM"
	AmenityTennis   AmenityKind = "TENNIS"
	AmenitySwimming AmenityKind = "SWIMMING"
	AmenityParking  AmenityKind = "PARKING"
	AmenityHall     AmenityKind = "HALL"
	AmenityBBQ      AmenityKind = "BBQ"
)

// AdmissionMode определяет, чем измеряется вместимость объекта
type AdmissionMode int

const (
	// ModeSlotBased вместимость считается на (дата, окно времени)
	ModeSlotBased AdmissionMode = iota + 1
	// ModeDayBased одно бронирование занимает весь календарный день
	ModeDayBased
)

func (m AdmissionMode) String() string {
	switch m {
	case ModeSlotBased:
		return "slot_based"
	case ModeDayBased:
		return "day_based"
	default:
		return "unknown"
	}
}

// AmenityRules правила допуска для вида объекта
type AmenityRules struct {
	Kind        AmenityKind
	Mode        AdmissionMode
	Capacity    int    // Максимум одновременных бронирований на ключ вместимости
	DisplayName string // Используется в сообщениях об отказе
}

// IsSlotBased возвращает true, если для объекта обязательно окно времени
func (r AmenityRules) IsSlotBased() bool {
	return r.Mode == ModeSlotBased
}

// amenityRules единая таблица правил, других мест с проверками по видам быть не должно
var amenityRules = map[AmenityKind]AmenityRules{
	AmenityGym:      {Kind: AmenityGym, Mode: ModeSlotBased, Capacity: 10, DisplayName: "Gym"},
	AmenitySwimming: {Kind: AmenitySwimming, Mode: ModeSlotBased, Capacity: 10, DisplayName: "Swimming Pool"},
	AmenityParking:  {Kind: AmenityParking, Mode: ModeSlotBased, Capacity: 10, DisplayName: "Guest Car Parking"},
	AmenityTennis:   {Kind: AmenityTennis, Mode: ModeSlotBased, Capacity: 2, DisplayName: "Tennis Court"},
	AmenityHall:     {Kind: AmenityHall, Mode: ModeDayBased, Capacity: 1, DisplayName: "Community Hall"},
	AmenityBBQ:      {Kind: AmenityBBQ, Mode: ModeDayBased, Capacity: 4, DisplayName: "BBQ Area"},
}

// amenityOrder стабильный порядок перечисления
var amenityOrder = []AmenityKind{
	AmenityGym,
	AmenityTennis,
	AmenitySwimming,
	AmenityParking,
	AmenityHall,
	AmenityBBQ,
}

// RulesFor возвращает правила допуска для вида объекта
func RulesFor(kind AmenityKind) (AmenityRules, error) {
	rules, ok := amenityRules[kind]
	if !ok {
		return AmenityRules{}, fmt.Errorf("%w: %q", ErrUnknownAmenityKind, string(kind))
	}
	return rules, nil
}

// ParseAmenityKind разбирает строковое представление вида объекта (регистр не важен)
func ParseAmenityKind(s string) (AmenityKind, error) {
	kind := AmenityKind(strings.ToUpper(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAmenityKind, s)
	}
	return kind, nil
}

// IsValid проверяет, что вид входит в закрытое перечисление
func (k AmenityKind) IsValid() bool {
	_, ok := amenityRules[k]
	return ok
}

// AmenityKinds возвращает все известные виды объектов
func AmenityKinds() []AmenityKind {
	out := make([]AmenityKind, len(amenityOrder))
	copy(out, amenityOrder)
	return out
}
