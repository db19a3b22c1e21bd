// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a portal account. CLIENT users belong to an organization;
// QUALITY and ADMIN users are mill staff with no organization.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"passwordHash" json:"-"`
	Role           Role               `bson:"role" json:"role"`
	OrganizationID primitive.ObjectID `bson:"organizationId,omitempty" json:"organizationId,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// FullName joins first and last names for display and audit attribution.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Actor converts the stored account into the workflow actor identity.
func (u *User) Actor() Actor {
	return Actor{
		ID:             u.ID,
		Name:           u.FullName(),
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
	}
}
