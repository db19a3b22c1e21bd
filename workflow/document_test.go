package workflow

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

func clientActor(orgID primitive.ObjectID) models.Actor {
	return models.Actor{ID: primitive.NewObjectID(), Name: "Client Reviewer", Role: models.RoleClient, OrganizationID: orgID}
}

func qualityActor() models.Actor {
	return models.Actor{ID: primitive.NewObjectID(), Name: "Quality Inspector", Role: models.RoleQuality}
}

func adminActor() models.Actor {
	return models.Actor{ID: primitive.NewObjectID(), Name: "Portal Admin", Role: models.RoleAdmin}
}

func testDocument(orgID primitive.ObjectID, status models.DocumentStatus) *models.QualityDocument {
	return &models.QualityDocument{
		ID:         primitive.NewObjectID(),
		OwnerOrgID: orgID,
		Name:       "heat-4521-plate-cert.pdf",
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestApplyClientFeedbackTransitions(t *testing.T) {
	orgID := primitive.NewObjectID()

	testCases := []struct {
		name         string
		from         models.DocumentStatus
		decision     models.DocumentStatus
		observations string
		wantErr      string // "", "forbidden", "validation", "transition"
	}{
		{name: "pending approved", from: models.StatusPending, decision: models.StatusApproved},
		{name: "pending rejected with observations", from: models.StatusPending, decision: models.StatusRejected, observations: "thickness out of tolerance"},
		{name: "pending marked for deletion", from: models.StatusPending, decision: models.StatusToDelete, observations: "duplicate upload"},
		{name: "approved contested", from: models.StatusApproved, decision: models.StatusRejected, observations: "dimension mismatch on delivery"},
		{name: "approved to delete", from: models.StatusApproved, decision: models.StatusToDelete, observations: "wrong heat number"},
		{name: "approved re-approved is illegal", from: models.StatusApproved, decision: models.StatusApproved, wantErr: "transition"},
		{name: "rejected is terminal for clients", from: models.StatusRejected, decision: models.StatusApproved, wantErr: "transition"},
		{name: "to_delete is terminal for clients", from: models.StatusToDelete, decision: models.StatusApproved, wantErr: "transition"},
		{name: "rejection without observations", from: models.StatusPending, decision: models.StatusRejected, wantErr: "validation"},
		{name: "deletion without observations", from: models.StatusPending, decision: models.StatusToDelete, wantErr: "validation"},
		{name: "pending back to pending is illegal", from: models.StatusPending, decision: models.StatusPending, wantErr: "validation"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			doc := testDocument(orgID, testCase.from)
			err := ApplyClientFeedback(clientActor(orgID), doc, testCase.decision, testCase.observations, nil)

			switch testCase.wantErr {
			case "":
				if err != nil {
					t.Fatalf("ApplyClientFeedback() = %v, want nil", err)
				}
				if doc.Status != testCase.decision {
					t.Fatalf("status = %s, want %s", doc.Status, testCase.decision)
				}
				if doc.ClientFeedback == nil {
					t.Fatal("clientFeedback not recorded")
				}
			case "validation":
				var validation *ValidationError
				if !errors.As(err, &validation) {
					t.Fatalf("ApplyClientFeedback() = %v, want ValidationError", err)
				}
			case "transition":
				var transition *InvalidTransitionError
				if !errors.As(err, &transition) {
					t.Fatalf("ApplyClientFeedback() = %v, want InvalidTransitionError", err)
				}
				if doc.Status != testCase.from {
					t.Fatalf("status changed to %s on failed transition", doc.Status)
				}
			}
		})
	}
}

func TestApplyClientFeedbackPermissions(t *testing.T) {
	orgID := primitive.NewObjectID()

	t.Run("wrong organization", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusPending)
		err := ApplyClientFeedback(clientActor(primitive.NewObjectID()), doc, models.StatusApproved, "", nil)
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("ApplyClientFeedback() = %v, want ForbiddenError", err)
		}
	})

	t.Run("quality role cannot submit client feedback", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusPending)
		err := ApplyClientFeedback(qualityActor(), doc, models.StatusApproved, "", nil)
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("ApplyClientFeedback() = %v, want ForbiddenError", err)
		}
	})

	t.Run("folders carry no status", func(t *testing.T) {
		doc := testDocument(orgID, "")
		doc.IsFolder = true
		err := ApplyClientFeedback(clientActor(orgID), doc, models.StatusApproved, "", nil)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("ApplyClientFeedback() = %v, want ValidationError", err)
		}
	})
}

func TestApplyTechnicalVerdict(t *testing.T) {
	orgID := primitive.NewObjectID()

	testCases := []struct {
		name     string
		from     models.DocumentStatus
		decision models.DocumentStatus
		reason   string
		wantErr  string
	}{
		{name: "pending approved", from: models.StatusPending, decision: models.StatusApproved},
		{name: "pending rejected with reason", from: models.StatusPending, decision: models.StatusRejected, reason: "carbon content above spec"},
		{name: "rejected re-approved", from: models.StatusRejected, decision: models.StatusApproved},
		{name: "rejected re-rejected", from: models.StatusRejected, decision: models.StatusRejected, reason: "defect persists"},
		{name: "to_delete restored", from: models.StatusToDelete, decision: models.StatusApproved},
		{name: "approved is not inspectable", from: models.StatusApproved, decision: models.StatusRejected, reason: "late finding", wantErr: "transition"},
		{name: "rejection without reason", from: models.StatusPending, decision: models.StatusRejected, wantErr: "validation"},
		{name: "to_delete is not a verdict", from: models.StatusPending, decision: models.StatusToDelete, wantErr: "validation"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			doc := testDocument(orgID, testCase.from)
			actor := qualityActor()
			err := ApplyTechnicalVerdict(actor, doc, testCase.decision, testCase.reason)

			switch testCase.wantErr {
			case "":
				if err != nil {
					t.Fatalf("ApplyTechnicalVerdict() = %v, want nil", err)
				}
				if doc.Status != testCase.decision {
					t.Fatalf("status = %s, want %s", doc.Status, testCase.decision)
				}
				if doc.Inspection == nil || doc.Inspection.InspectedBy != actor.ID {
					t.Fatal("inspection not recorded")
				}
				if testCase.decision == models.StatusRejected && doc.Inspection.RejectionReason == "" {
					t.Fatal("rejection reason missing on rejected verdict")
				}
			case "validation":
				var validation *ValidationError
				if !errors.As(err, &validation) {
					t.Fatalf("ApplyTechnicalVerdict() = %v, want ValidationError", err)
				}
			case "transition":
				var transition *InvalidTransitionError
				if !errors.As(err, &transition) {
					t.Fatalf("ApplyTechnicalVerdict() = %v, want InvalidTransitionError", err)
				}
			}
		})
	}

	t.Run("client role cannot issue verdicts", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusPending)
		err := ApplyTechnicalVerdict(clientActor(orgID), doc, models.StatusApproved, "")
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("ApplyTechnicalVerdict() = %v, want ForbiddenError", err)
		}
	})

	t.Run("re-approval clears contestation markers", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusRejected)
		doc.ClientFeedback = &models.ClientFeedback{
			Observations:      "dimension mismatch",
			Flags:             []string{"dimension-mismatch"},
			LastInteractionAt: time.Now().UTC(),
		}

		if err := ApplyTechnicalVerdict(qualityActor(), doc, models.StatusApproved, ""); err != nil {
			t.Fatalf("ApplyTechnicalVerdict() = %v, want nil", err)
		}
		if doc.ClientFeedback.Flags != nil || doc.ClientFeedback.Observations != "" {
			t.Fatal("contestation markers not cleared on re-approval")
		}
	})

	t.Run("re-rejection keeps contestation markers", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusRejected)
		doc.ClientFeedback = &models.ClientFeedback{Observations: "dimension mismatch"}

		if err := ApplyTechnicalVerdict(qualityActor(), doc, models.StatusRejected, "confirmed defect"); err != nil {
			t.Fatalf("ApplyTechnicalVerdict() = %v, want nil", err)
		}
		if doc.ClientFeedback.Observations != "dimension mismatch" {
			t.Fatal("client observations dropped on re-rejection")
		}
	})
}

func TestApplyFirstView(t *testing.T) {
	orgID := primitive.NewObjectID()

	t.Run("first view on approved document", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusApproved)
		actor := clientActor(orgID)

		changed, err := ApplyFirstView(actor, doc)
		if err != nil || !changed {
			t.Fatalf("ApplyFirstView() = (%v, %v), want (true, nil)", changed, err)
		}
		if doc.ViewedAt == nil || doc.ViewedBy != actor.ID {
			t.Fatal("view marker not set")
		}
	})

	t.Run("second view is an idempotent no-op", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusApproved)
		actor := clientActor(orgID)

		if _, err := ApplyFirstView(actor, doc); err != nil {
			t.Fatalf("first ApplyFirstView() = %v, want nil", err)
		}
		firstViewedAt := *doc.ViewedAt

		changed, err := ApplyFirstView(clientActor(orgID), doc)
		if err != nil || changed {
			t.Fatalf("second ApplyFirstView() = (%v, %v), want (false, nil)", changed, err)
		}
		if !doc.ViewedAt.Equal(firstViewedAt) || doc.ViewedBy != actor.ID {
			t.Fatal("view marker rewritten by second call")
		}
	})

	t.Run("pending document is not viewable", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusPending)
		_, err := ApplyFirstView(clientActor(orgID), doc)
		var transition *InvalidTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("ApplyFirstView() = %v, want InvalidTransitionError", err)
		}
	})

	t.Run("quality role does not record views", func(t *testing.T) {
		doc := testDocument(orgID, models.StatusApproved)
		_, err := ApplyFirstView(qualityActor(), doc)
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("ApplyFirstView() = %v, want ForbiddenError", err)
		}
	})
}

func TestCanDelete(t *testing.T) {
	orgID := primitive.NewObjectID()
	parentID := primitive.NewObjectID()

	rootFolder := &models.QualityDocument{ID: primitive.NewObjectID(), OwnerOrgID: orgID, IsFolder: true}
	subFolder := &models.QualityDocument{ID: primitive.NewObjectID(), OwnerOrgID: orgID, IsFolder: true, ParentFolderID: &parentID}
	certificate := testDocument(orgID, models.StatusPending)

	testCases := []struct {
		name  string
		actor models.Actor
		doc   *models.QualityDocument
		want  bool
	}{
		{name: "root folder admin", actor: adminActor(), doc: rootFolder, want: false},
		{name: "root folder quality", actor: qualityActor(), doc: rootFolder, want: false},
		{name: "root folder client", actor: clientActor(orgID), doc: rootFolder, want: false},
		{name: "sub folder quality", actor: qualityActor(), doc: subFolder, want: true},
		{name: "sub folder admin", actor: adminActor(), doc: subFolder, want: true},
		{name: "sub folder client", actor: clientActor(orgID), doc: subFolder, want: false},
		{name: "certificate client", actor: clientActor(orgID), doc: certificate, want: false},
		{name: "certificate quality", actor: qualityActor(), doc: certificate, want: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := CanDelete(testCase.actor, testCase.doc); got != testCase.want {
				t.Fatalf("CanDelete() = %v, want %v", got, testCase.want)
			}
		})
	}
}
