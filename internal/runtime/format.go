package runtime

import (
	"math"
	"strings"
	"time"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	dateLayout     = "1/2/2006"
	dateTimeLayout = "1/2/2006, 3:04:05 PM"
)

// Layouts accepted for date and datetime values, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const dateOnlyLayout = "2006-01-02"

// Formatter renders raw cell values as display strings according to the
// column data type. It is safe for concurrent use.
type Formatter struct {
	loc     *time.Location
	printer *message.Printer
}

// NewFormatter creates a formatter that renders datetimes in loc (UTC when nil)
// and numbers with US-English grouping.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{
		loc:     loc,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// Format converts value to its display string. It never fails: values that
// cannot be interpreted for their type are shown as their plain string form.
func (f *Formatter) Format(value any, col domain.ColumnDescriptor) string {
	if value == nil {
		return ""
	}

	switch col.DataType {
	case domain.DataTypeBoolean:
		if f.truthy(value) {
			return "Yes"
		}
		return "No"
	case domain.DataTypeCurrency:
		return f.currency(value)
	case domain.DataTypePercent:
		return stringify(value) + "%"
	case domain.DataTypeDate:
		if t, dateOnly, ok := f.parseTime(value); ok {
			if !dateOnly {
				t = t.In(f.loc)
			}
			return t.Format(dateLayout)
		}
		return stringify(value)
	case domain.DataTypeDateTime:
		if t, _, ok := f.parseTime(value); ok {
			return t.In(f.loc).Format(dateTimeLayout)
		}
		return stringify(value)
	case domain.DataTypePicklist:
		s := stringify(value)
		if label, ok := col.ChoiceLabel(s); ok {
			return label
		}
		return s
	case domain.DataTypeMultiPicklist:
		tokens := strings.Split(stringify(value), ";")
		for i, tok := range tokens {
			if label, ok := col.ChoiceLabel(tok); ok {
				tokens[i] = label
			}
		}
		return strings.Join(tokens, "; ")
	default:
		return stringify(value)
	}
}

func (f *Formatter) truthy(v any) bool {
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	// Anything else non-empty counts as set.
	return !isBlank(v)
}

func (f *Formatter) currency(v any) string {
	n, ok := toNumber(v)
	if !ok {
		return stringify(v)
	}
	n = math.Round(n*100) / 100
	sign := ""
	if n < 0 {
		sign = "-"
	}
	n = math.Abs(n)
	amount := f.printer.Sprintf("%v", number.Decimal(n, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	return sign + "$" + amount
}

// parseTime accepts time.Time, epoch milliseconds and ISO-8601 strings.
// dateOnly is true for plain YYYY-MM-DD input, which carries no zone.
func (f *Formatter) parseTime(v any) (t time.Time, dateOnly bool, ok bool) {
	switch x := v.(type) {
	case time.Time:
		return x, false, true
	case string:
		s := strings.TrimSpace(x)
		if parsed, err := time.Parse(dateOnlyLayout, s); err == nil {
			return parsed, true, true
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, false, true
			}
		}
		return time.Time{}, false, false
	case bool:
		return time.Time{}, false, false
	}
	if n, isNum := toNumber(v); isNum {
		return time.UnixMilli(int64(n)).UTC(), false, true
	}
	return time.Time{}, false, false
}
