// Package calendar converts order timestamps to the Jalali calendar
// used for document display and output path partitioning.
package calendar

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// orderDateLayout matches the date prefix of WooCommerce timestamps
// ("2023-10-25T14:30:00").
const orderDateLayout = "2006-01-02"

// Date is a localized calendar date with zero-padded components.
type Date struct {
	year  int
	month int
	day   int
}

// FromOrderDate parses the YYYY-MM-DD prefix of an order creation
// timestamp and converts it to the Jalali calendar. Missing or
// malformed input falls back to today; a bad timestamp must never
// abort document generation.
func FromOrderDate(s string) Date {
	if len(s) >= len(orderDateLayout) {
		if g, err := time.Parse(orderDateLayout, s[:len(orderDateLayout)]); err == nil {
			return fromTime(ptime.New(g))
		}
	}
	return Today()
}

// Today returns the current date in the Jalali calendar.
func Today() Date {
	return fromTime(ptime.Now())
}

func fromTime(t ptime.Time) Date {
	return Date{year: t.Year(), month: int(t.Month()), day: t.Day()}
}

// Year returns the zero-padded four-digit year, e.g. "1402".
func (d Date) Year() string { return fmt.Sprintf("%04d", d.year) }

// Month returns the zero-padded month, e.g. "08".
func (d Date) Month() string { return fmt.Sprintf("%02d", d.month) }

// Day returns the zero-padded day, e.g. "03".
func (d Date) Day() string { return fmt.Sprintf("%02d", d.day) }

// Display returns the date in YYYY/MM/DD form for document headers.
func (d Date) Display() string {
	return d.Year() + "/" + d.Month() + "/" + d.Day()
}
