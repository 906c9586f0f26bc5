package server

import (
	"regexp"
	"strings"

	"github.com/cyclopcam/www"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 8

// Form validation mirrors the dashboard dialogs: the first failing rule
// aborts with a single inline message, and nothing reaches the upstream API.

func validateRequired(fields ...string) {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			www.PanicBadRequestf("All fields are required")
		}
	}
}

func validateEmail(email string) {
	if !emailRegex.MatchString(email) {
		www.PanicBadRequestf("Email is not valid")
	}
}

func validateNewPassword(password, confirmation string) {
	if password != confirmation {
		www.PanicBadRequestf("Password and Confirm Password do not match")
	}
	if len(password) < minPasswordLength {
		www.PanicBadRequestf("Password must be at least %v characters long", minPasswordLength)
	}
}

// convertPhoneNumberSpacing formats a phone number for display:
// "0123456789" becomes "012 345 6789", other lengths get groups of three.
func convertPhoneNumberSpacing(phone string) string {
	digits := strings.Builder{}
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 10 {
		return d[:3] + " " + d[3:6] + " " + d[6:]
	}
	out := strings.Builder{}
	for i, r := range d {
		if i > 0 && i%3 == 0 {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}
