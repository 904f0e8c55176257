package job

import (
	"strconv"
	"strings"

	"github.com/Abraxas-365/hirely/pkg/kernel"
)

// FormatRupiah renders an amount with Indonesian thousands separators: Rp7.000.000
func FormatRupiah(amount kernel.Rupiah) string {
	n := int64(amount)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + "Rp" + b.String()
}

// FormatSalaryRange renders a salary band. Zero means not set.
func FormatSalaryRange(min, max kernel.Rupiah) string {
	switch {
	case min > 0 && max > 0:
		return FormatRupiah(min) + " - " + FormatRupiah(max)
	case min > 0:
		return "Mulai dari " + FormatRupiah(min)
	case max > 0:
		return "Hingga " + FormatRupiah(max)
	default:
		return "Gaji tidak ditampilkan"
	}
}

// ParseCurrency reads "7.000.000", "Rp 7,000,000" or "7000000". Anything
// without digits parses as 0.
func ParseCurrency(s string) kernel.Rupiah {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return kernel.Rupiah(n)
}
