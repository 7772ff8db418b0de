package apollo

import "strings"

// VerifiedEmail returns the first email on the person whose status and
// type the policy accepts, or "" when none qualifies. Absence is a
// normal outcome, never an error.
func (p VerificationPolicy) VerifiedEmail(person *Person) string {
	if person == nil {
		return ""
	}
	for _, e := range person.Emails {
		if contains(p.EmailStatuses, e.Status) && contains(p.EmailTypes, e.Type) {
			return e.Email
		}
	}
	return ""
}

// VerifiedMobile returns the first phone number on the person whose
// label and status the policy accepts, preferring the provider's
// sanitized form over the raw one. Masked placeholder numbers are
// treated as absent.
func (p VerificationPolicy) VerifiedMobile(person *Person) string {
	if person == nil {
		return ""
	}
	for _, ph := range person.PhoneNumbers {
		if !contains(p.PhoneLabels, ph.Label) || !contains(p.PhoneStatuses, ph.Status) {
			continue
		}
		number := ph.SanitizedNumber
		if number == "" {
			number = ph.Number
		}
		if number == "" || isMasked(number) {
			continue
		}
		return number
	}
	return ""
}

// isMasked reports whether a number is a provider obfuscation placeholder
// ("+1 415-XXX-XXXX" style) rather than a dialable value.
func isMasked(number string) bool {
	return strings.ContainsAny(number, "X*")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
