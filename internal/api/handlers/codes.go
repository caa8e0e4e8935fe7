package handlers

// Стабильные коды отказов, клиенты опираются на них, а не на текст ошибки
const (
	CodePastDate           = "PAST_DATE"
	CodePastWindow         = "PAST_WINDOW"
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeCapacityExceeded   = "CAPACITY_EXCEEDED"
	CodeSlotAlreadyTaken   = "SLOT_ALREADY_TAKEN"
	CodeNotFound           = "NOT_FOUND"
	CodeNotOwner           = "NOT_OWNER"
	CodeUnknownAmenityKind = "UNKNOWN_AMENITY_KIND"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInternal           = "INTERNAL"
)
