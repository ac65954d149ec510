package extract

import (
	"fmt"
	"strings"
)

// NormalizePhone formats US numbers as "+1 (AAA) EEE-NNNN". Anything it is not
// confident about (wrong length, bad area code, extensions, foreign numbers)
// reports false so the caller can omit the phone instead of sending it raw.
func NormalizePhone(raw string) (string, bool) {
	digits := digitsOnly(raw)

	switch {
	case len(digits) == 11 && digits[0] == '1':
		return formatUS(digits[1:]), true
	case len(digits) == 10 && validAreaCode(digits[:3]):
		return formatUS(digits), true
	default:
		return "", false
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validAreaCode(code string) bool {
	if code[0] == '0' || code[0] == '1' {
		return false
	}
	return code >= "200" && code <= "999"
}

func formatUS(ten string) string {
	return fmt.Sprintf("+1 (%s) %s-%s", ten[:3], ten[3:6], ten[6:])
}
