package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeease/homeease/internal/common"
)

func TestParse(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   string
		want    string
	}{
		{
			name:  "plain integer",
			input: "5000",
			want:  "5000",
		},
		{
			name:  "grouped thousands",
			input: "5,000",
			want:  "5000",
		},
		{
			name:  "grouped thousands with fraction",
			input: "5,000.00",
			want:  "5000",
		},
		{
			name:  "large grouped value",
			input: "1,234,567.89",
			want:  "1234567.89",
		},
		{
			name:  "currency symbol stripped",
			input: "$1,500.25",
			want:  "1500.25",
		},
		{
			name:  "surrounding whitespace",
			input: "  42.50  ",
			want:  "42.5",
		},
		{
			name:    "negative value",
			input:   "-5",
			wantErr: common.ErrNegativeAmount,
		},
		{
			name:    "comma used as decimal separator",
			input:   "45,7",
			wantErr: common.ErrCommaAsDecimal,
		},
		{
			name:    "scattered commas",
			input:   "5,0,0",
			wantErr: common.ErrMalformedNumber,
		},
		{
			name:    "short group before fraction",
			input:   "5,00.00",
			wantErr: common.ErrMalformedNumber,
		},
		{
			name:    "zero",
			input:   "0",
			wantErr: common.ErrNonPositiveAmount,
		},
		{
			name:    "zero with fraction",
			input:   "0.00",
			wantErr: common.ErrNonPositiveAmount,
		},
		{
			name:    "no digits at all",
			input:   "lunch",
			wantErr: common.ErrNotANumber,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: common.ErrNotANumber,
		},
		{
			name:    "multiple dots",
			input:   "1.2.3",
			wantErr: common.ErrNotANumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestParseEquivalentForms(t *testing.T) {
	// All spellings of five thousand parse to the same value.
	want := decimal.NewFromInt(5000)
	for _, input := range []string{"5000", "5,000", "5,000.00", "5000.00"} {
		got, err := Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.True(t, got.Equal(want), "input %q parsed to %s", input, got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "small value", input: "5", want: "5.00"},
		{name: "thousands", input: "5000", want: "5,000.00"},
		{name: "fraction preserved", input: "1234.56", want: "1,234.56"},
		{name: "single fraction digit padded", input: "150.5", want: "150.50"},
		{name: "millions", input: "1234567.89", want: "1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// parse(format(x)) == x for positive values with <= 2 fraction digits.
	for _, raw := range []string{"0.01", "1", "99.99", "150.50", "1234.56", "5000", "1234567.89"} {
		want := decimal.RequireFromString(raw)
		got, err := Parse(Format(want))
		require.NoError(t, err, "value %s", raw)
		assert.True(t, got.Equal(want), "round trip of %s produced %s", raw, got)
	}
}
