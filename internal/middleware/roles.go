package middleware

import (
	"net/http"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Capability identifies a protected operation class. The capability table
// below is the single place mapping operations to allowed roles.
type Capability string

const (
	CapPatientRead       Capability = "patient:read"
	CapPatientWrite      Capability = "patient:write"
	CapPatientDelete     Capability = "patient:delete"
	CapAppointmentRead   Capability = "appointment:read"
	CapAppointmentWrite  Capability = "appointment:write"
	CapAppointmentDelete Capability = "appointment:delete"
	CapLinkRead          Capability = "link:read"
	CapLinkWrite         Capability = "link:write"
	CapLinkDelete        Capability = "link:delete"
)

var allStaff = []models.Role{models.RoleAdmin, models.RoleDoctor, models.RoleNurse}

var capabilityRoles = map[Capability][]models.Role{
	CapPatientRead:       allStaff,
	CapPatientWrite:      allStaff,
	CapPatientDelete:     {models.RoleAdmin},
	CapAppointmentRead:   allStaff,
	CapAppointmentWrite:  allStaff,
	CapAppointmentDelete: {models.RoleAdmin},
	CapLinkRead:          allStaff,
	CapLinkWrite:         allStaff,
	CapLinkDelete:        {models.RoleAdmin},
}

// RequireCapability checks that the authenticated user's role is allowed the
// given capability. Must run after AuthMiddleware.
func RequireCapability(capability Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		role := models.Role(roleValue.(string))
		for _, allowed := range capabilityRoles[capability] {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Your role is not permitted to perform this action")
		c.Abort()
	}
}
