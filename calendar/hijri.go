// Package calendar converts Gregorian dates to the Hijri calendar and formats
// the short date label printed in report headers.
//
// Dates between 1937-03-14 and 2077-11-16 use the Umm al-Qura calendar of
// Saudi Arabia. Outside that range the tabular Islamic calendar (a fixed
// 30-year cycle of 11 leap years) is used, which can differ by a day or two.
package calendar

import (
	"fmt"
	"time"

	hijri "github.com/hablullah/go-hijri"
)

// epoch is the Julian day number of 1 Muharram 1 AH in the tabular calendar.
const epoch = 1948440

// Date is a day in the Hijri calendar.
type Date struct {
	Year, Month, Day int
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Short formats d as DD-MM-YY H, the label used in report headers.
func (d Date) Short() string {
	return fmt.Sprintf("%02d-%02d-%02d H", d.Day, d.Month, d.Year%100)
}

// FromTime returns the Hijri date of t's calendar day in t's location,
// Umm al-Qura where it is defined and tabular elsewhere.
func FromTime(t time.Time) Date {
	if d, err := UmmAlQura(t); err == nil {
		return d
	}
	return Tabular(t)
}

// UmmAlQura returns the Umm al-Qura date of t's calendar day. It fails for
// days outside the published Umm al-Qura tables.
func UmmAlQura(t time.Time) (Date, error) {
	y, m, d := t.Date()
	// go-hijri works on the UTC day, so pin the local day at noon UTC.
	uq, err := hijri.CreateUmmAlQuraDate(time.Date(y, m, d, 12, 0, 0, 0, time.UTC))
	if err != nil {
		return Date{}, fmt.Errorf("calendar: %s: %w", t.Format(time.DateOnly), err)
	}
	return Date{Year: int(uq.Year), Month: int(uq.Month), Day: int(uq.Day)}, nil
}

// Tabular returns the tabular Islamic date of t's calendar day.
func Tabular(t time.Time) Date {
	y, m, d := t.Date()
	return FromJulianDay(julianDay(y, int(m), d))
}

// ShortLabel is FromTime(t).Short(). It has the signature report renderers
// accept as a date label function.
func ShortLabel(t time.Time) string {
	return FromTime(t).Short()
}

// FromJulianDay converts a Julian day number with the tabular calendar.
func FromJulianDay(jd int) Date {
	l := jd - epoch + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	m := 24 * l / 709
	d := l - 709*m/24
	y := 30*n + j - 30
	return Date{Year: y, Month: m, Day: d}
}

// JulianDay returns the Julian day number of d read as a tabular date.
func (d Date) JulianDay() int {
	return (11*d.Year+3)/30 + 354*d.Year + 30*d.Month - (d.Month-1)/2 + d.Day + epoch - 385
}

// Time returns midnight UTC of the Gregorian day matching d. It is the
// inverse of FromTime.
func (d Date) Time() time.Time {
	if g, ok := d.ummAlQuraTime(); ok {
		return g
	}
	y, m, day := gregorian(d.JulianDay())
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

// ummAlQuraTime converts d through the Umm al-Qura tables and reports
// whether the result maps back to d.
func (d Date) ummAlQuraTime() (g time.Time, ok bool) {
	if d.Year < 1356 || d.Year > 1500 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 30 {
		return time.Time{}, false
	}
	defer func() {
		if recover() != nil {
			g, ok = time.Time{}, false
		}
	}()
	uq := hijri.UmmAlQuraDate{Year: int64(d.Year), Month: int64(d.Month), Day: int64(d.Day)}
	y, m, day := uq.ToGregorian().Date()
	g = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	back, err := UmmAlQura(g)
	return g, err == nil && back == d
}

func julianDay(y, m, d int) int {
	a := (14 - m) / 12
	yy := y + 4800 - a
	mm := m + 12*a - 3
	return d + (153*mm+2)/5 + 365*yy + yy/4 - yy/100 + yy/400 - 32045
}

func gregorian(jd int) (y, m, d int) {
	a := jd + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	dd := (4*c + 3) / 1461
	e := c - 1461*dd/4
	mm := (5*e + 2) / 153
	d = e - (153*mm+2)/5 + 1
	m = mm + 3 - 12*(mm/10)
	y = 100*b + dd - 4800 + mm/10
	return y, m, d
}
