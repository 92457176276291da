package usecase

import (
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the Actor the usecases act for.
type TokenValidator interface {
	ValidateToken(tokenString string) (reservation.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (reservation.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return reservation.Actor{}, err
	}

	switch claims.Role {
	case jwt.RoleAdmin:
		return reservation.Admin(claims.UserID), nil
	case jwt.RoleShopOwner:
		return reservation.ShopOwner(claims.UserID, *claims.ShopID), nil
	default:
		return reservation.Customer(claims.UserID), nil
	}
}
