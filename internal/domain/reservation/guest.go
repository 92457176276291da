package reservation

import (
	"net/mail"
	"strings"

	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/pkg/phone"
)

// GuestContact identifies a customer without an account: a name plus at
// least one of phone or email. Phones are stored in E.164.
type GuestContact struct {
	name  string
	phone *string
	email *string
}

func NewGuestContact(name string, rawPhone, rawEmail *string, phoneRegion string) (GuestContact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return GuestContact{}, errs.Validation("guest name is required")
	}

	var g GuestContact
	g.name = name

	if rawPhone != nil && strings.TrimSpace(*rawPhone) != "" {
		normalized, err := phone.Normalize(*rawPhone, phoneRegion)
		if err != nil {
			return GuestContact{}, errs.Validationf("guest phone %q is not a valid phone number", *rawPhone)
		}
		g.phone = &normalized
	}

	if rawEmail != nil && strings.TrimSpace(*rawEmail) != "" {
		addr, err := mail.ParseAddress(strings.TrimSpace(*rawEmail))
		if err != nil {
			return GuestContact{}, errs.Validationf("guest email %q is not a valid address", *rawEmail)
		}
		email := strings.ToLower(addr.Address)
		g.email = &email
	}

	if g.phone == nil && g.email == nil {
		return GuestContact{}, errs.Validation("guest phone or email is required")
	}
	return g, nil
}

// ReconstructGuestContact trusts stored values.
func ReconstructGuestContact(name string, phone, email *string) GuestContact {
	return GuestContact{name: name, phone: phone, email: email}
}

func (g GuestContact) Name() string   { return g.name }
func (g GuestContact) Phone() *string { return g.phone }
func (g GuestContact) Email() *string { return g.email }

func (g GuestContact) IsZero() bool { return g.name == "" }

// Matches reports whether two contacts share a phone or an email.
func (g GuestContact) Matches(other GuestContact) bool {
	if g.phone != nil && other.phone != nil && *g.phone == *other.phone {
		return true
	}
	if g.email != nil && other.email != nil && *g.email == *other.email {
		return true
	}
	return false
}

// Key is a stable identifier for audit stamps and idempotency scoping.
func (g GuestContact) Key() string {
	if g.phone != nil {
		return *g.phone
	}
	if g.email != nil {
		return *g.email
	}
	return g.name
}
