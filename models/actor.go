// models/actor.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the portal-wide actor role. The backend never authenticates an
// actor itself; middleware resolves JWT claims into an Actor and every
// workflow operation receives it explicitly.
type Role string

const (
	RoleClient  Role = "CLIENT"
	RoleQuality Role = "QUALITY"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the three portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleQuality, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor identifies who is performing a workflow operation.
// OrganizationID is zero for QUALITY and ADMIN staff accounts.
type Actor struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Role           Role               `json:"role"`
	OrganizationID primitive.ObjectID `json:"organizationId,omitempty"`
}
