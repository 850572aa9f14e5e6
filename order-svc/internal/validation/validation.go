// Package validation checks shipping and payment form input.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"fastgrab/order-svc/internal/domain"
)

// Errors maps a form field to the reason it was rejected.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var (
	phonePattern      = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	phoneSeparators   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cardNumberPattern = regexp.MustCompile(`^(\d{4} ?){3,4}\d{1,4}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])\/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	codePattern       = regexp.MustCompile(`^\d{6}$`)
	mastercardPrefix  = regexp.MustCompile(`^(5[1-5]|222[1-9]|22[3-9]|2[3-6]|27[01]|2720)`)
)

func ValidateUserDetails(d domain.UserDetails) error {
	errs := Errors{}
	if utf8.RuneCountInString(strings.TrimSpace(d.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters."
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Address)) < 5 {
		errs["address"] = "Address must be at least 5 characters."
	}
	if !phonePattern.MatchString(phoneSeparators.Replace(strings.TrimSpace(d.Phone))) {
		errs["phone"] = "Invalid phone number format."
	}
	if !emailPattern.MatchString(strings.TrimSpace(d.Email)) {
		errs["email"] = "Invalid email address."
	}
	return errs.orNil()
}

func ValidatePaymentDetails(p domain.PaymentDetails) error {
	errs := Errors{}
	if utf8.RuneCountInString(strings.TrimSpace(p.CardName)) < 2 {
		errs["cardName"] = "Name on card is required."
	}
	switch n := len(p.CardNumber); {
	case n < 15:
		errs["cardNumber"] = "Card number must be at least 15 digits."
	case n > 19:
		errs["cardNumber"] = "Card number too long."
	case !cardNumberPattern.MatchString(p.CardNumber):
		errs["cardNumber"] = "Invalid card number format."
	}
	if !expiryPattern.MatchString(p.ExpiryDate) {
		errs["expiryDate"] = "Invalid expiry date format (MM/YY)."
	}
	if !cvvPattern.MatchString(p.CVV) {
		errs["cvv"] = "CVV must be 3 or 4 digits."
	}
	return errs.orNil()
}

// ValidCode reports whether code is a six digit verification code.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

func NormalizeCardNumber(number string) string {
	return strings.ReplaceAll(number, " ", "")
}

func DetectCardType(number string) domain.CardType {
	digits := NormalizeCardNumber(number)
	switch {
	case strings.HasPrefix(digits, "4"):
		return domain.CardVisa
	case mastercardPrefix.MatchString(digits):
		return domain.CardMastercard
	default:
		return domain.CardUnknown
	}
}

// MaskCardNumber keeps only the last four digits.
func MaskCardNumber(number string) string {
	digits := NormalizeCardNumber(number)
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// MaskPhone keeps only the last three digits.
func MaskPhone(phone string) string {
	digits := phoneSeparators.Replace(phone)
	if len(digits) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(digits)-3) + digits[len(digits)-3:]
}
