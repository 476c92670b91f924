package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyPhone indicates phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")

	// ErrInvalidFormat indicates phone number contains invalid characters
	ErrInvalidFormat = errors.New("phone number can only contain digits, spaces, dashes, dots, parentheses and a leading +")

	// ErrInvalidLength indicates the number is outside the E.164 length range
	ErrInvalidLength = errors.New("phone number must have between 7 and 15 digits")

	// ErrUnknownCountryCode indicates a "+" prefix that matches no calling code
	ErrUnknownCountryCode = errors.New("unknown country calling code")
)

const (
	minDigits         = 7
	maxDigits         = 15
	minNationalDigits = 4
	maxDialCodeDigits = 3
)

// digitsRegex matches an optional leading + followed by digits
var digitsRegex = regexp.MustCompile(`^\+?\d+$`)

// Phone is a number split into its calling code and national part
type Phone struct {
	CountryCode    string // digits only, e.g. "1", "44"
	NationalNumber string // digits only
}

// IsZero reports whether no number was entered
func (p Phone) IsZero() bool {
	return p.NationalNumber == ""
}

// String formats the number for the wire: "+1 5551234567"
func (p Phone) String() string {
	if p.IsZero() {
		return ""
	}
	if p.CountryCode == "" {
		return p.NationalNumber
	}
	return "+" + p.CountryCode + " " + p.NationalNumber
}

// E164 formats the number without separators: "+15551234567"
func (p Phone) E164() string {
	if p.IsZero() {
		return ""
	}
	return "+" + p.CountryCode + p.NationalNumber
}

// PhoneValidator handles international phone number validation
type PhoneValidator struct {
	defaultCountry Country
}

// NewPhoneValidator creates a validator that assumes the default country
// for numbers entered without a "+" prefix
func NewPhoneValidator() *PhoneValidator {
	c, _ := LookupCountry(DefaultCountryISO)
	return &PhoneValidator{defaultCountry: c}
}

// Sanitize removes separators, keeping a leading "+" if present.
// A leading "00" international prefix is rewritten to "+".
func (v *PhoneValidator) Sanitize(phone string) string {
	phone = strings.TrimSpace(phone)
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "", "\t", "")
	phone = replacer.Replace(phone)
	if strings.HasPrefix(phone, "00") {
		phone = "+" + phone[2:]
	}
	return phone
}

// Validate checks an international phone number and returns its
// sanitized form ("+" kept when given)
func (v *PhoneValidator) Validate(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", ErrEmptyPhone
	}

	sanitized := v.Sanitize(phone)
	if !digitsRegex.MatchString(sanitized) {
		return "", ErrInvalidFormat
	}

	digits := strings.TrimPrefix(sanitized, "+")
	if len(digits) < minDigits || len(digits) > maxDigits {
		return "", ErrInvalidLength
	}

	return sanitized, nil
}

// Parse splits a number into calling code and national number. Numbers
// without "+" are attributed to the default country.
func (v *PhoneValidator) Parse(phone string) (Phone, error) {
	sanitized, err := v.Validate(phone)
	if err != nil {
		return Phone{}, err
	}

	if !strings.HasPrefix(sanitized, "+") {
		return Phone{CountryCode: v.defaultCountry.DialCode, NationalNumber: sanitized}, nil
	}

	digits := sanitized[1:]
	// Calling codes are prefix-free, so the first hit is the only hit
	for n := 1; n <= maxDialCodeDigits && n < len(digits); n++ {
		if _, ok := countryForDialCode(digits[:n]); ok {
			national := digits[n:]
			if len(national) < minNationalDigits {
				return Phone{}, ErrInvalidLength
			}
			return Phone{CountryCode: digits[:n], NationalNumber: national}, nil
		}
	}
	return Phone{}, ErrUnknownCountryCode
}

// Country returns the country a parsed number belongs to
func (v *PhoneValidator) Country(p Phone) (Country, bool) {
	return countryForDialCode(p.CountryCode)
}

// Format returns the wire form "+<code> <national>"
func (v *PhoneValidator) Format(phone string) (string, error) {
	p, err := v.Parse(phone)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// IsValid is a convenience method that returns true if phone is valid
func (v *PhoneValidator) IsValid(phone string) bool {
	_, err := v.Validate(phone)
	return err == nil
}

// MustParse parses and panics if invalid (use for testing only)
func (v *PhoneValidator) MustParse(phone string) Phone {
	p, err := v.Parse(phone)
	if err != nil {
		panic(fmt.Sprintf("invalid phone number %s: %v", phone, err))
	}
	return p
}
