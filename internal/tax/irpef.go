package tax

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrInvalidPayroll = errors.New("invalid payroll")
	ErrInvalidAge     = errors.New("invalid average age")
)

// Inputs beyond these bounds are typos, not squads.
const (
	MaxPayroll    = 1e12
	MaxAverageAge = 100
)

// Upper age bound (inclusive) of each bracket and its rate in percent.
// Anything above the last bound pays maxRate.
var brackets = []struct {
	maxAge float64
	rate   int
}{
	{22, 0},
	{23, 5},
	{24, 10},
	{25, 15},
	{26, 20},
}

const maxRate = 25

var printer = message.NewPrinter(language.Italian)

// EstimateTax returns the rate in percent and the amount owed on payroll
// for a squad of the given average age.
func EstimateTax(averageAge, payroll float64) (int, float64) {
	rate := maxRate
	for _, b := range brackets {
		if averageAge <= b.maxAge {
			rate = b.rate
			break
		}
	}
	return rate, float64(rate) / 100 * payroll
}

// ParsePayroll accepts amounts typed with '.' or ',' as thousands
// separators. Empty input is zero.
func ParsePayroll(input string) (float64, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.TrimPrefix(cleaned, "€")
	cleaned = strings.NewReplacer(".", "", ",", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > MaxPayroll {
		return 0, ErrInvalidPayroll
	}
	return v, nil
}

// ParseAge reads the squad's average age, accepting ',' as decimal
// separator. Empty input is zero.
func ParseAge(input string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(input, ",", "."))
	if cleaned == "" {
		return 0, nil
	}

	age, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(age) || age < 0 || age > MaxAverageAge {
		return 0, ErrInvalidAge
	}
	return age, nil
}

// FormatEuro renders a whole euro amount the Italian way, e.g. 25.000.
// Amounts are expected within MaxPayroll.
func FormatEuro(amount float64) string {
	return printer.Sprintf("%d", int64(math.Round(amount)))
}
