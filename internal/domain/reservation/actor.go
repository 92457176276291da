package reservation

import (
	"github.com/google/uuid"
)

type ActorKind string

const (
	ActorAdmin     ActorKind = "admin"
	ActorShopOwner ActorKind = "shop_owner"
	ActorCustomer  ActorKind = "customer"
	ActorGuest     ActorKind = "guest"
)

// Actor is the authenticated caller. Only the fields relevant to its kind
// are populated; build one with the constructors below.
type Actor struct {
	kind   ActorKind
	userID uuid.UUID
	shopID uuid.UUID
	guest  GuestContact
}

func Admin(userID uuid.UUID) Actor {
	return Actor{kind: ActorAdmin, userID: userID}
}

func ShopOwner(userID, shopID uuid.UUID) Actor {
	return Actor{kind: ActorShopOwner, userID: userID, shopID: shopID}
}

func Customer(userID uuid.UUID) Actor {
	return Actor{kind: ActorCustomer, userID: userID}
}

func Guest(contact GuestContact) Actor {
	return Actor{kind: ActorGuest, guest: contact}
}

func (a Actor) Kind() ActorKind       { return a.kind }
func (a Actor) UserID() uuid.UUID     { return a.userID }
func (a Actor) ShopID() uuid.UUID     { return a.shopID }
func (a Actor) Contact() GuestContact { return a.guest }

// IsShopAdmin is true for platform admins and for the owner of shopID.
func (a Actor) IsShopAdmin(shopID uuid.UUID) bool {
	switch a.kind {
	case ActorAdmin:
		return true
	case ActorShopOwner:
		return a.shopID == shopID
	default:
		return false
	}
}

// Owns reports whether the actor is the customer the reservation was made for.
func (a Actor) Owns(r *Reservation) bool {
	switch a.kind {
	case ActorCustomer:
		return r.AppUserID() != nil && *r.AppUserID() == a.userID
	case ActorGuest:
		g := r.Guest()
		return g != nil && a.guest.Matches(*g)
	default:
		return false
	}
}

// CanAccess is IsShopAdmin for the reservation's shop, or ownership.
func (a Actor) CanAccess(r *Reservation) bool {
	return a.IsShopAdmin(r.ShopID()) || a.Owns(r)
}

// Ref is written into confirmed_by / cancelled_by / no_show_by.
func (a Actor) Ref() string {
	if a.kind == ActorGuest {
		return string(a.kind) + ":" + a.guest.Key()
	}
	return string(a.kind) + ":" + a.userID.String()
}
