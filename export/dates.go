// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"
	"time"

	"github.com/fangel123/proyek-gereja/models"
)

var hari = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// LongDate formats t the way Indonesian documents write dates,
// e.g. "Minggu, 10 Maret 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", hari[t.Weekday()], t.Day(), bulan[t.Month()-1], t.Year())
}

// LongDateString is LongDate for a YYYY-MM-DD value. Unparseable input is
// returned unchanged.
func LongDateString(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return LongDate(t)
}
