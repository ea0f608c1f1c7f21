// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validation checks request payloads and query filters against the
rules declared in their validate struct tags.

	if res := validation.Struct(req); res != nil {
		middleware.WriteError(w, r, res.AppError())
		return
	}

Every failing field is reported, not just the first. Field paths use JSON
names, so a bad count in the third attendance item is reported as
"kehadiran[2].jumlah_hadir". Messages are in Indonesian.

Custom rules:

  - strongpassword: at least 8 characters with an upper-case letter, a digit
    and a symbol
  - posint: a string holding a positive integer, used for query parameters
  - daterange: on AnalyticsQuery, startDate must not be after endDate
*/
package validation
