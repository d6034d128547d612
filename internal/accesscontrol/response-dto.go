package accesscontrol

import (
	"time"

	"github.com/google/uuid"
)

type RoleGrantResponse struct {
	Role        Role      `json:"role"`
	PrincipalID uuid.UUID `json:"principal_id"`
	GrantedBy   uuid.UUID `json:"granted_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type RoleCheckResponse struct {
	Role        Role      `json:"role"`
	PrincipalID uuid.UUID `json:"principal_id"`
	HasRole     bool      `json:"has_role"`
}

type RoleChangeResponse struct {
	Role        Role      `json:"role"`
	PrincipalID uuid.UUID `json:"principal_id"`
	Changed     bool      `json:"changed"`
}

func ToRoleGrantResponse(grant *RoleGrant) RoleGrantResponse {
	return RoleGrantResponse{
		Role:        grant.Role,
		PrincipalID: grant.PrincipalID,
		GrantedBy:   grant.GrantedBy,
		CreatedAt:   grant.CreatedAt,
	}
}

func ToRoleGrantResponses(grants []RoleGrant) []RoleGrantResponse {
	responses := make([]RoleGrantResponse, len(grants))
	for i, grant := range grants {
		responses[i] = ToRoleGrantResponse(&grant)
	}
	return responses
}
