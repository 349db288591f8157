package sidereal

import "math"

// DMS converts a decimal-degree value into degrees/minutes/seconds for
// presentation, following the legacy convert_decimal_to_dms convention:
// only the integer part carries sign; minutes and seconds are derived from
// the fractional remainder's absolute value.
func DMS(decimal float64) (degree, minute, second int) {
	degree = int(decimal)
	minute = int(math.Abs((decimal - float64(degree)) * 60))
	second = int((math.Abs((decimal-float64(degree))*60) - math.Floor(math.Abs((decimal-float64(degree))*60))) * 60)
	return degree, minute, second
}
