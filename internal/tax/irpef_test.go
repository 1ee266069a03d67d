package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTax(t *testing.T) {
	testCases := []struct {
		name           string
		age            float64
		payroll        float64
		expectedRate   int
		expectedAmount float64
	}{
		{name: "Young squad", age: 20.5, payroll: 100000, expectedRate: 0, expectedAmount: 0},
		{name: "Exactly 22", age: 22.0, payroll: 100000, expectedRate: 0, expectedAmount: 0},
		{name: "Just above 22", age: 22.1, payroll: 100000, expectedRate: 5, expectedAmount: 5000},
		{name: "Exactly 23", age: 23.0, payroll: 100000, expectedRate: 5, expectedAmount: 5000},
		{name: "23.1", age: 23.1, payroll: 100000, expectedRate: 10, expectedAmount: 10000},
		{name: "24.5", age: 24.5, payroll: 100000, expectedRate: 15, expectedAmount: 15000},
		{name: "Exactly 26", age: 26.0, payroll: 100000, expectedRate: 20, expectedAmount: 20000},
		{name: "26.5", age: 26.5, payroll: 100000, expectedRate: 25, expectedAmount: 25000},
		{name: "Veterans", age: 31, payroll: 2000000, expectedRate: 25, expectedAmount: 500000},
		{name: "No payroll", age: 30, payroll: 0, expectedRate: 25, expectedAmount: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate, amount := EstimateTax(tc.age, tc.payroll)
			assert.Equal(t, tc.expectedRate, rate)
			assert.InDelta(t, tc.expectedAmount, amount, 0.001)
		})
	}
}

func TestParsePayroll(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{input: "", expected: 0},
		{input: "100000", expected: 100000},
		{input: "100.000", expected: 100000},
		{input: "1,250,000", expected: 1250000},
		{input: " € 2.500.000 ", expected: 2500000},
		{input: "abc", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "1e300", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "Inf", wantErr: true},
		{input: "1.000.000.000.000", expected: MaxPayroll},
		{input: "1.000.000.000.001", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			v, err := ParsePayroll(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidPayroll)
				assert.Zero(t, v)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestParseAge(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{input: "", expected: 0},
		{input: "26.5", expected: 26.5},
		{input: " 24,3 ", expected: 24.3},
		{input: "NaN", wantErr: true},
		{input: "Inf", wantErr: true},
		{input: "-Inf", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "1e9", wantErr: true},
		{input: "vecchi", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			v, err := ParseAge(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidAge)
				assert.Zero(t, v)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, v, 1e-9)
		})
	}
}

func TestFormatEuroAtPayrollCap(t *testing.T) {
	_, amount := EstimateTax(30, MaxPayroll)
	assert.Equal(t, "250.000.000.000", FormatEuro(amount))
	assert.Equal(t, "1.000.000.000.000", FormatEuro(MaxPayroll))
}

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "25.000", FormatEuro(25000))
	assert.Equal(t, "0", FormatEuro(0))
	assert.Equal(t, "1.250.000", FormatEuro(1249999.6))
}
