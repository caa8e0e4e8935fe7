package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var windowPattern = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

// TimeWindow окно времени внутри дня, конец строго позже начала.
// Создаётся только через ParseTimeWindow или HourlyWindow.
type TimeWindow struct {
	startHour   int
	startMinute int
	endHour     int
	endMinute   int
}

// ParseTimeWindow разбирает строку вида "HH:MM-HH:MM" (пробелы по краям допускаются)
func ParseTimeWindow(text string) (TimeWindow, error) {
	m := windowPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return TimeWindow{}, fmt.Errorf("%w: %q, expected HH:MM-HH:MM", ErrInvalidWindowFormat, text)
	}

	// Шаблон гарантирует по две цифры в каждом поле, Atoi не может вернуть ошибку
	sh, _ := strconv.Atoi(m[1])
	sm, _ := strconv.Atoi(m[2])
	eh, _ := strconv.Atoi(m[3])
	em, _ := strconv.Atoi(m[4])

	if sh > 23 || eh > 23 || sm > 59 || em > 59 {
		return TimeWindow{}, fmt.Errorf("%w: %q, time out of range", ErrInvalidWindowFormat, text)
	}

	w := TimeWindow{startHour: sh, startMinute: sm, endHour: eh, endMinute: em}
	if w.EndMinutes() <= w.StartMinutes() {
		return TimeWindow{}, fmt.Errorf("%w: %q, end must be after start", ErrInvalidWindowFormat, text)
	}

	return w, nil
}

// HourlyWindow возвращает окно [hour:00, hour+1:00)
func HourlyWindow(hour int) (TimeWindow, error) {
	if hour < 0 || hour > 22 {
		return TimeWindow{}, fmt.Errorf("%w: hour %d", ErrInvalidWindowFormat, hour)
	}
	return TimeWindow{startHour: hour, endHour: hour + 1}, nil
}

// CandidateWindows список почасовых окон, показываемых в отчёте о доступности
func CandidateWindows() []TimeWindow {
	windows := make([]TimeWindow, 0, CandidateLastHour-CandidateFirstHour)
	for h := CandidateFirstHour; h < CandidateLastHour; h++ {
		windows = append(windows, TimeWindow{startHour: h, endHour: h + 1})
	}
	return windows
}

// StartHour час начала окна
func (w TimeWindow) StartHour() int { return w.startHour }

// StartMinute минута начала окна
func (w TimeWindow) StartMinute() int { return w.startMinute }

// EndHour час окончания окна
func (w TimeWindow) EndHour() int { return w.endHour }

// EndMinute минута окончания окна
func (w TimeWindow) EndMinute() int { return w.endMinute }

// StartMinutes минуты от полуночи до начала
func (w TimeWindow) StartMinutes() int { return w.startHour*60 + w.startMinute }

// EndMinutes минуты от полуночи до конца
func (w TimeWindow) EndMinutes() int { return w.endHour*60 + w.endMinute }

// StartLabel время начала в формате HH:MM
func (w TimeWindow) StartLabel() string {
	return fmt.Sprintf("%02d:%02d", w.startHour, w.startMinute)
}

// String каноническая форма "HH:MM-HH:MM", она же ключ подсчёта вместимости
func (w TimeWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.startHour, w.startMinute, w.endHour, w.endMinute)
}

// On возвращает абсолютные моменты начала и конца окна для даты в указанной зоне
func (w TimeWindow) On(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, w.startHour, w.startMinute, 0, 0, loc)
	end := time.Date(y, m, d, w.endHour, w.endMinute, 0, 0, loc)
	return start, end
}
