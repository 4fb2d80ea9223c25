package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// пробелы-разделители разрядов: обычный, NBSP, узкий NBSP, thin space, таб
var spaceRepl = strings.NewReplacer(" ", "", "\u00A0", "", "\u202F", "", "\u2009", "", "\t", "")

var rxNumeric = regexp.MustCompile(`^[+\-]?[\d.,]+(?:[eE][+\-]?\d+)?$`)

// CleanNumber приводит "1 234,50", "1.234.567,5", "1,234.5", "(12)" к виду,
// который понимают strconv и decimal. Всё, что не похоже на число, — false.
//
// Одиночная запятая считается десятичным разделителем ("12,5" → "12.5").
func CleanNumber(s string) (string, bool) {
	s = spaceRepl.Replace(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	if !rxNumeric.MatchString(s) {
		return "", false
	}
	s = strings.TrimPrefix(s, "+")

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		// последний разделитель — десятичный
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	if neg {
		if strings.HasPrefix(s, "-") {
			return "", false
		}
		s = "-" + s
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", false
	}
	return s, true
}

// ParseFloat — то же, что CleanNumber, но сразу в float64.
func ParseFloat(s string) (float64, bool) {
	c, ok := CleanNumber(s)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(c, 64)
	return f, err == nil
}
