package accesscontrol

import "github.com/google/uuid"

type RoleChangeRequest struct {
	Role        Role      `json:"role" binding:"required"`
	PrincipalID uuid.UUID `json:"principal_id" binding:"required"`
}
