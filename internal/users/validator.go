package users

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,63}$`)

// ValidateProfile runs the format-only checks on a registration request.
// Uniqueness is checked separately, against the directory.
func ValidateProfile(p Profile) []string {
	var errs []string
	if strings.TrimSpace(p.FirstName) == "" {
		errs = append(errs, "First Name can not be missing or empty.")
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs = append(errs, "Last Name can not be missing or empty.")
	}
	if strings.TrimSpace(p.Username) == "" {
		errs = append(errs, "Username can not be missing or empty.")
	}
	if !validEmail(p.Email) {
		errs = append(errs, "Invalid email format.")
	}
	if !validPhoneNumber(p.PhoneNumber) {
		errs = append(errs, "Invalid phone number format.")
	}
	return errs
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validPhoneNumber accepts internationally formatted numbers (leading +).
func validPhoneNumber(number string) bool {
	num, err := phonenumbers.Parse(number, "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
