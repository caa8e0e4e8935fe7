package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Кандидатные окна для отображения доступности: почасовые с 09:00 до 17:00
const (
	CandidateFirstHour = 9
	CandidateLastHour  = 17
)

// DayBasedSlotKey ключ окна для объектов с посуточным допуском
const DayBasedSlotKey = ""
