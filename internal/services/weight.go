package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"fitlog/internal/validation"
)

const msgInvalidNumber = "A valid number is required."

var decimalString = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Weight is a training weight. It decodes from a JSON number or a numeric
// string such as "60.50".
type Weight float64

// UnmarshalJSON reports anything that is not a finite number as a field error on weight.
func (w *Weight) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		s, err := strconv.Unquote(raw)
		if err != nil || !decimalString.MatchString(strings.TrimSpace(s)) {
			return invalidWeight()
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidWeight()
	}
	*w = Weight(v)
	return nil
}

func invalidWeight() error {
	errs := validation.Errors{}
	errs.Add("weight", msgInvalidNumber)
	return errs
}
