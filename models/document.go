// models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentStatus is the compliance status of a certificate document.
// Folders carry no status.
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "PENDING"
	StatusApproved DocumentStatus = "APPROVED"
	StatusRejected DocumentStatus = "REJECTED"
	StatusToDelete DocumentStatus = "TO_DELETE"
)

// Valid reports whether s is a known document status.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusToDelete:
		return true
	default:
		return false
	}
}

// ChemicalComposition holds the ladle analysis attached at upload.
// Values are mass percentages. Immutable once set.
type ChemicalComposition struct {
	Carbon     float64 `bson:"carbon" json:"carbon"`
	Manganese  float64 `bson:"manganese" json:"manganese"`
	Silicon    float64 `bson:"silicon" json:"silicon"`
	Phosphorus float64 `bson:"phosphorus" json:"phosphorus"`
	Sulfur     float64 `bson:"sulfur" json:"sulfur"`
	Chromium   float64 `bson:"chromium" json:"chromium"`
	Nickel     float64 `bson:"nickel" json:"nickel"`
	Molybdenum float64 `bson:"molybdenum" json:"molybdenum"`
	Copper     float64 `bson:"copper" json:"copper"`
}

// MechanicalProperties holds the test-certificate mechanicals attached at
// upload. Immutable once set.
type MechanicalProperties struct {
	YieldStrengthMPa   float64 `bson:"yieldStrengthMpa" json:"yieldStrengthMpa"`
	TensileStrengthMPa float64 `bson:"tensileStrengthMpa" json:"tensileStrengthMpa"`
	ElongationPct      float64 `bson:"elongationPct" json:"elongationPct"`
	HardnessHB         float64 `bson:"hardnessHb" json:"hardnessHb"`
}

// Inspection is the quality team's technical verdict on a document.
// Set only by a QUALITY actor.
type Inspection struct {
	InspectedAt     time.Time          `bson:"inspectedAt" json:"inspectedAt"`
	InspectedBy     primitive.ObjectID `bson:"inspectedBy" json:"inspectedBy"`
	InspectorName   string             `bson:"inspectorName,omitempty" json:"inspectorName,omitempty"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

// ClientFeedback is the owning organization's review of a document.
// Set only by a CLIENT actor of the owning organization.
type ClientFeedback struct {
	Observations      string             `bson:"observations,omitempty" json:"observations,omitempty"`
	Flags             []string           `bson:"flags,omitempty" json:"flags,omitempty"`
	LastInteractionAt time.Time          `bson:"lastInteractionAt" json:"lastInteractionAt"`
	LastInteractionBy primitive.ObjectID `bson:"lastInteractionBy" json:"lastInteractionBy"`
}

// QualityDocument is a mill certificate (or folder) published to a client
// organization. The Status field is a cache of the current compliance state;
// the audit trail is the authoritative history.
type QualityDocument struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ParentFolderID *primitive.ObjectID `bson:"parentFolderId,omitempty" json:"parentFolderId,omitempty"`
	OwnerOrgID     primitive.ObjectID  `bson:"ownerOrgId" json:"ownerOrgId"`
	Name           string              `bson:"name" json:"name"`
	IsFolder       bool                `bson:"isFolder" json:"isFolder"`
	Status         DocumentStatus      `bson:"status,omitempty" json:"status,omitempty"`

	ChemicalComposition  *ChemicalComposition  `bson:"chemicalComposition,omitempty" json:"chemicalComposition,omitempty"`
	MechanicalProperties *MechanicalProperties `bson:"mechanicalProperties,omitempty" json:"mechanicalProperties,omitempty"`

	Inspection     *Inspection     `bson:"inspection,omitempty" json:"inspection,omitempty"`
	ClientFeedback *ClientFeedback `bson:"clientFeedback,omitempty" json:"clientFeedback,omitempty"`

	ViewedAt *time.Time         `bson:"viewedAt,omitempty" json:"viewedAt,omitempty"`
	ViewedBy primitive.ObjectID `bson:"viewedBy,omitempty" json:"viewedBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsRootFolder reports whether the document is a top-level folder.
// Root folders are never individually destructible.
func (d *QualityDocument) IsRootFolder() bool {
	return d.IsFolder && d.ParentFolderID == nil
}
