package contracts

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	json "github.com/bytedance/sonic"
)

// EvaluationErrorMarker is rendered when arithmetic evaluation fails
const EvaluationErrorMarker = "#ERROR"

// FormulaErrorMarker is rendered for every other formula failure
const FormulaErrorMarker = "#ERR"

type ValueKind uint8

const (
	ValueEmpty ValueKind = iota
	ValueNumber
	ValueText
	ValueError
)

// ComputedValue is the derived result of a cell: empty, a number, a text or an error marker
type ComputedValue struct {
	Kind   ValueKind
	Number float64
	Text   string
}

var decimalLiteralRegex = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?\s*$`)

func EmptyValue() ComputedValue {
	return ComputedValue{Kind: ValueEmpty}
}

func NumberValue(number float64) ComputedValue {
	return ComputedValue{Kind: ValueNumber, Number: number}
}

func TextValue(text string) ComputedValue {
	return ComputedValue{Kind: ValueText, Text: text}
}

func ErrorValue(marker string) ComputedValue {
	return ComputedValue{Kind: ValueError, Text: marker}
}

// ParseNumber accepts plain decimal literals only ("42", "-0.5", "1e3"); hex, inf and nan are text
func ParseNumber(text string) (float64, bool) {
	if !decimalLiteralRegex.MatchString(text) {
		return 0, false
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsInf(number, 0) || math.IsNaN(number) {
		return 0, false
	}
	return number, true
}

func (v ComputedValue) IsEmpty() bool {
	return v.Kind == ValueEmpty
}

func (v ComputedValue) IsError() bool {
	return v.Kind == ValueError
}

// Float returns the numeric reading of the value; false when it has none
func (v ComputedValue) Float() (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		return v.Number, true
	case ValueText:
		return ParseNumber(v.Text)
	default:
		return 0, false
	}
}

func (v ComputedValue) String() string {
	switch v.Kind {
	case ValueNumber:
		return FormatNumber(v.Number)
	case ValueText, ValueError:
		return v.Text
	default:
		return ""
	}
}

func (v ComputedValue) Equal(other ComputedValue) bool {
	return v.Kind == other.Kind && v.Number == other.Number && v.Text == other.Text
}

func (v ComputedValue) MarshalJSON() ([]byte, error) {
	if v.Kind == ValueNumber {
		return []byte(FormatNumber(v.Number)), nil
	}
	return json.Marshal(v.String())
}

func (v *ComputedValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch typed := raw.(type) {
	case nil:
		*v = EmptyValue()
	case float64:
		*v = NumberValue(typed)
	case string:
		switch typed {
		case "":
			*v = EmptyValue()
		case EvaluationErrorMarker, FormulaErrorMarker:
			*v = ErrorValue(typed)
		default:
			*v = TextValue(typed)
		}
	default:
		return fmt.Errorf("computed value: unsupported json %s", string(data))
	}
	return nil
}

// FormatNumber renders a number without exponent so it stays a valid arithmetic operand
func FormatNumber(number float64) string {
	return strconv.FormatFloat(number, 'f', -1, 64)
}
