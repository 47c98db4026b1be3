package appointments

import (
	"sort"
	"strings"
	"time"

	"pet-adoption/internal/platform/apperr"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Policy son las reglas de agenda: días hábiles, horarios fijos y horizonte máximo.
type Policy struct {
	Location    *time.Location
	Times       []string // HH:MM, horarios de atención
	HorizonDays int
}

func DefaultPolicy() Policy {
	return Policy{
		Location:    time.UTC,
		Times:       []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"},
		HorizonDays: 30,
	}
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// ValidateDate valida el día (formato, hábil, no pasado, dentro del horizonte).
func (p Policy) ValidateDate(date string, now time.Time) (time.Time, error) {
	loc := p.loc()
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, apperr.Validation("date must be YYYY-MM-DD")
	}

	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return time.Time{}, apperr.Validation("appointments are only available on weekdays")
	}

	n := now.In(loc)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		return time.Time{}, apperr.Validation("date is in the past")
	}
	if day.After(today.AddDate(0, 0, p.HorizonDays)) {
		return time.Time{}, apperr.Validationf("date is more than %d days ahead", p.HorizonDays)
	}
	return day, nil
}

// Validate valida el slot completo y devuelve su inicio en la zona del refugio.
func (p Policy) Validate(date, clock string, now time.Time) (time.Time, error) {
	day, err := p.ValidateDate(date, now)
	if err != nil {
		return time.Time{}, err
	}

	clock = strings.TrimSpace(clock)
	if !p.isBusinessTime(clock) {
		return time.Time{}, apperr.Validationf("time must be one of %s", strings.Join(p.Times, ", "))
	}

	start, err := p.slotStart(day, clock)
	if err != nil {
		return time.Time{}, apperr.Validation("time must be HH:MM")
	}
	if !start.After(now) {
		return time.Time{}, apperr.Validation("slot is in the past")
	}
	return start, nil
}

// Free devuelve los horarios del día que no están ocupados ni pasaron.
func (p Policy) Free(date string, taken []Appointment, now time.Time) ([]string, error) {
	day, err := p.ValidateDate(date, now)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(taken))
	for _, a := range taken {
		if a.Status != StatusCancelled && a.Date == date {
			used[a.Time] = true
		}
	}

	out := make([]string, 0, len(p.Times))
	for _, t := range p.Times {
		if used[t] {
			continue
		}
		start, err := p.slotStart(day, t)
		if err != nil || !start.After(now) {
			continue
		}
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func (p Policy) isBusinessTime(clock string) bool {
	for _, t := range p.Times {
		if t == clock {
			return true
		}
	}
	return false
}

func (p Policy) slotStart(day time.Time, clock string) (time.Time, error) {
	hm, err := time.Parse(timeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, p.loc()), nil
}
