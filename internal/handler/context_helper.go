package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/service"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) (service.Actor, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		return service.Actor{}, false
	}
	return service.Actor{UserID: claims.UserID, Role: claims.Role, Name: claims.FullName}, true
}

// ownsBarber is true for admins and for the barber whose agenda is addressed.
func ownsBarber(claims *models.JWTClaims, barberID string) bool {
	if claims == nil {
		return false
	}
	return claims.Role == models.RoleAdmin || (claims.Role == models.RoleBarber && claims.UserID == barberID)
}

// slotPolicy greys out unavailable slots for the owner of the agenda; everybody
// else only sees what they can book.
func slotPolicy(claims *models.JWTClaims, barberID string) availability.Policy {
	if ownsBarber(claims, barberID) {
		return availability.ShowGreyedOut
	}
	return availability.HideUnavailable
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
