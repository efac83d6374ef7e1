package helpers

import (
	"math"
	"strconv"
)

// ParseID parses a positive integer path parameter that fits a SERIAL column.
func ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 || id > math.MaxInt32 {
		return 0, false
	}
	return id, true
}

// SafeRedirect keeps redirects on this site.
func SafeRedirect(target, fallback string) string {
	if len(target) < 1 || target[0] != '/' || (len(target) > 1 && (target[1] == '/' || target[1] == '\\')) {
		return fallback
	}
	return target
}
