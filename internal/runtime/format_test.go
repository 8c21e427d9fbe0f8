package runtime

import (
	"testing"
	"time"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format(t *testing.T) {
	status := domain.ColumnDescriptor{
		DataType: domain.DataTypePicklist,
		ChoiceValues: []domain.ChoiceValue{
			{Value: "open", Label: "Open"},
			{Value: "closed", Label: "Closed Won"},
		},
	}
	tags := domain.ColumnDescriptor{
		DataType: domain.DataTypeMultiPicklist,
		ChoiceValues: []domain.ChoiceValue{
			{Value: "A", Label: "Alpha"},
			{Value: "B", Label: "Beta"},
		},
	}
	col := func(dt domain.DataType) domain.ColumnDescriptor {
		return domain.ColumnDescriptor{DataType: dt}
	}

	tests := []struct {
		name  string
		value any
		col   domain.ColumnDescriptor
		want  string
	}{
		{"Null", nil, col(domain.DataTypeCurrency), ""},
		{"Boolean True", true, col(domain.DataTypeBoolean), "Yes"},
		{"Boolean False", false, col(domain.DataTypeBoolean), "No"},
		{"Boolean String", "false", col(domain.DataTypeBoolean), "No"},
		{"Currency", 1234.5, col(domain.DataTypeCurrency), "$1,234.50"},
		{"Currency Integer", 100, col(domain.DataTypeCurrency), "$100.00"},
		{"Currency Negative", -5, col(domain.DataTypeCurrency), "-$5.00"},
		{"Currency Negative Rounds To Zero", -0.001, col(domain.DataTypeCurrency), "$0.00"},
		{"Currency Negative Rounds Up", -0.006, col(domain.DataTypeCurrency), "-$0.01"},
		{"Currency Unparsable", "n/a", col(domain.DataTypeCurrency), "n/a"},
		{"Percent", 12.5, col(domain.DataTypePercent), "12.5%"},
		{"Date", "2024-01-15", col(domain.DataTypeDate), "1/15/2024"},
		{"Date From Timestamp", "2024-01-15T10:30:00.000+0000", col(domain.DataTypeDate), "1/15/2024"},
		{"Date Malformed", "not a date", col(domain.DataTypeDate), "not a date"},
		{"DateTime", "2024-01-15T13:45:00Z", col(domain.DataTypeDateTime), "1/15/2024, 1:45:00 PM"},
		{"DateTime Malformed", "yesterday", col(domain.DataTypeDateTime), "yesterday"},
		{"Picklist Label", "closed", status, "Closed Won"},
		{"Picklist Unknown", "lost", status, "lost"},
		{"MultiPicklist", "A;B;C", tags, "Alpha; Beta; C"},
		{"Integer", 42, col(domain.DataTypeInteger), "42"},
		{"Whole Float", 3.0, col(domain.DataTypeDouble), "3"},
		{"String", "Acme", col(domain.DataTypeString), "Acme"},
	}

	f := NewFormatter(time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.value, tt.col))
		})
	}
}

func TestFormatter_DateTimeUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	f := NewFormatter(loc)
	col := domain.ColumnDescriptor{DataType: domain.DataTypeDateTime}

	assert.Equal(t, "1/15/2024, 10:45:00 AM", f.Format("2024-01-15T13:45:00Z", col))

	// A plain date carries no zone and must not shift to the previous day.
	date := domain.ColumnDescriptor{DataType: domain.DataTypeDate}
	assert.Equal(t, "1/15/2024", f.Format("2024-01-15", date))
}

func TestFormatter_Deterministic(t *testing.T) {
	f := NewFormatter(nil)
	rec := domain.Record{"Id": "1", "Owner": map[string]any{"Amount": 99.95}}
	col := domain.ColumnDescriptor{DataType: domain.DataTypeCurrency}

	first := f.Format(Resolve(rec, "Owner.Amount"), col)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, f.Format(Resolve(rec, "Owner.Amount"), col))
	}
}

func TestResolve(t *testing.T) {
	rec := domain.Record{
		"Id":      "1",
		"Name":    "Acme",
		"Account": map[string]any{"Name": "Parent", "Owner": map[string]any{"Name": "Jane"}},
		"Contact": nil,
		"Plain":   "text",
	}

	tests := []struct {
		path string
		want any
	}{
		{"Name", "Acme"},
		{"Account.Name", "Parent"},
		{"Account.Owner.Name", "Jane"},
		{"Contact.Name", nil},
		{"Missing", nil},
		{"Missing.Name", nil},
		{"Plain.Length", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(rec, tt.path))
		})
	}
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"Same String", "Open", "Open", true},
		{"Different String", "Open", "Closed", false},
		{"Null And Empty", nil, "", true},
		{"Null And Value", nil, "x", false},
		{"Empty And Zero", "", 0, false},
		{"Numeric String", "100", 100, true},
		{"Float And Int", 100.0, 100, true},
		{"Different Numbers", 1, 2, false},
		{"Bool And String", true, "true", true},
		{"Case Sensitive", "open", "Open", false},
		{"Leading Zeros Text", "007", "7", false},
		{"Decimal Text", "1.0", "1", false},
		{"Infinity Text", "inf", "Infinity", false},
		{"NaN Text", "Nan", "Nan", true},
		{"NaN Text And Number", "nan", 0, false},
		{"Leading Zeros Number", "007", 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValuesEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, ValuesEqual(tt.b, tt.a), "equality must be symmetric")
		})
	}
}
