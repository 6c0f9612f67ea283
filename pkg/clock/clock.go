package clock

import "time"

// Clock источник текущего времени в часовом поясе кампуса
type Clock struct {
	loc *time.Location
}

// New создает часы для указанного часового пояса (nil - UTC)
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed часы, всегда возвращающие одно и то же время
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

// DateIn возвращает полночь календарной даты date в часовом поясе loc
// Год, месяц и день берутся из date как есть, без пересчета пояса
func DateIn(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfDay полночь дня, в который попадает t, в поясе t
func StartOfDay(t time.Time) time.Time {
	return DateIn(t, t.Location())
}
