package parser

import (
	"errors"
	"strconv"
)

var errOverflow = errors.New("numeral does not fit")

// parseInt rejects values outside int64 range instead of silently
// wrapping, turning that into a NumberOverflow diagnostic at the call
// site.
func parseInt(lexeme string) (int64, error) {
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return 0, errOverflow
	}
	return n, nil
}

func parseFloat(lexeme string) (float64, error) {
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0, errOverflow
	}
	return f, nil
}
