// internal/ranking/value_parse.go
// Parsing of operator-entered measurement strings like "12.5s" or "11 pts".

package ranking

import (
	"regexp"
	"strconv"
)

var numericToken = regexp.MustCompile(`-?\d+(\.\d+)?`)

// ParseMeasuredValue extracts the first numeric token (optional leading
// minus, digits, optional decimal point) from a raw measurement string.
// Unparseable input returns ok=false and the caller skips that (user, round)
// pair rather than failing the whole aggregation.
func ParseMeasuredValue(raw string) (value float64, ok bool) {
	token := numericToken.FindString(raw)
	if token == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
