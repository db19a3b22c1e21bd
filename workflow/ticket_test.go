package workflow

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

func testTicket(orgID primitive.ObjectID, status models.TicketStatus, flow models.TicketFlow) *models.SupportTicket {
	return &models.SupportTicket{
		ID:          primitive.NewObjectID(),
		Subject:     "Certificate values unreadable",
		Description: "The mechanical section of cert 4521 renders blank.",
		Priority:    models.PriorityNormal,
		Status:      status,
		Flow:        flow,
		OrgID:       orgID,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestNewTicket(t *testing.T) {
	orgID := primitive.NewObjectID()

	t.Run("client ticket defaults", func(t *testing.T) {
		actor := clientActor(orgID)
		ticket, err := NewTicket(actor, TicketInput{Subject: "Wrong units", Description: "Yield strength shown in ksi instead of MPa"})
		if err != nil {
			t.Fatalf("NewTicket() = %v, want nil", err)
		}
		if ticket.Status != models.TicketOpen {
			t.Fatalf("status = %s, want OPEN", ticket.Status)
		}
		if ticket.Flow != models.FlowClientToQuality {
			t.Fatalf("flow = %s, want CLIENT_TO_QUALITY", ticket.Flow)
		}
		if ticket.Priority != models.PriorityNormal {
			t.Fatalf("priority = %s, want NORMAL", ticket.Priority)
		}
		if ticket.RaisedByID != actor.ID || ticket.OrgID != orgID {
			t.Fatal("raisedBy/org not recorded")
		}
	})

	t.Run("quality ticket defaults to admin channel", func(t *testing.T) {
		ticket, err := NewTicket(qualityActor(), TicketInput{Subject: "Repeated contest", Description: "Org keeps contesting heat 4521"})
		if err != nil {
			t.Fatalf("NewTicket() = %v, want nil", err)
		}
		if ticket.Flow != models.FlowQualityToAdmin {
			t.Fatalf("flow = %s, want QUALITY_TO_ADMIN", ticket.Flow)
		}
	})

	t.Run("client cannot open admin channel ticket", func(t *testing.T) {
		_, err := NewTicket(clientActor(orgID), TicketInput{Subject: "s", Description: "d", Flow: models.FlowQualityToAdmin})
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("NewTicket() = %v, want ForbiddenError", err)
		}
	})

	t.Run("admin does not raise tickets", func(t *testing.T) {
		_, err := NewTicket(adminActor(), TicketInput{Subject: "s", Description: "d"})
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("NewTicket() = %v, want ForbiddenError", err)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := NewTicket(clientActor(orgID), TicketInput{Description: "d"})
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("NewTicket() = %v, want ValidationError", err)
		}
	})

	t.Run("missing description", func(t *testing.T) {
		_, err := NewTicket(clientActor(orgID), TicketInput{Subject: "s"})
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("NewTicket() = %v, want ValidationError", err)
		}
	})

	t.Run("unknown priority", func(t *testing.T) {
		_, err := NewTicket(clientActor(orgID), TicketInput{Subject: "s", Description: "d", Priority: "URGENT"})
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("NewTicket() = %v, want ValidationError", err)
		}
	})
}

func TestApplyTicketStatus(t *testing.T) {
	orgID := primitive.NewObjectID()

	testCases := []struct {
		name    string
		from    models.TicketStatus
		to      models.TicketStatus
		note    string
		wantErr string
	}{
		{name: "open to in_progress", from: models.TicketOpen, to: models.TicketInProgress},
		{name: "open directly resolved", from: models.TicketOpen, to: models.TicketResolved, note: "Fixed the measurement unit"},
		{name: "in_progress resolved", from: models.TicketInProgress, to: models.TicketResolved, note: "Regenerated the certificate"},
		{name: "resolving without a note", from: models.TicketInProgress, to: models.TicketResolved, wantErr: "validation"},
		{name: "resolving with a blank note", from: models.TicketOpen, to: models.TicketResolved, note: "   ", wantErr: "validation"},
		{name: "resolved is terminal", from: models.TicketResolved, to: models.TicketOpen, wantErr: "transition"},
		{name: "no regression to open", from: models.TicketInProgress, to: models.TicketOpen, wantErr: "transition"},
		{name: "unknown status", from: models.TicketOpen, to: "ARCHIVED", wantErr: "validation"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ticket := testTicket(orgID, testCase.from, models.FlowClientToQuality)
			err := ApplyTicketStatus(qualityActor(), ticket, testCase.to, testCase.note)

			switch testCase.wantErr {
			case "":
				if err != nil {
					t.Fatalf("ApplyTicketStatus() = %v, want nil", err)
				}
				if ticket.Status != testCase.to {
					t.Fatalf("status = %s, want %s", ticket.Status, testCase.to)
				}
				if testCase.to == models.TicketResolved && ticket.ResolutionNote == "" {
					t.Fatal("resolution note missing on resolved ticket")
				}
			case "validation":
				var validation *ValidationError
				if !errors.As(err, &validation) {
					t.Fatalf("ApplyTicketStatus() = %v, want ValidationError", err)
				}
				if ticket.Status != testCase.from {
					t.Fatalf("status changed to %s on failed update", ticket.Status)
				}
			case "transition":
				var transition *InvalidTransitionError
				if !errors.As(err, &transition) {
					t.Fatalf("ApplyTicketStatus() = %v, want InvalidTransitionError", err)
				}
				if ticket.Status != testCase.from {
					t.Fatalf("status changed to %s on failed update", ticket.Status)
				}
			}
		})
	}

	t.Run("client cannot update ticket status", func(t *testing.T) {
		ticket := testTicket(orgID, models.TicketOpen, models.FlowClientToQuality)
		err := ApplyTicketStatus(clientActor(orgID), ticket, models.TicketInProgress, "")
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("ApplyTicketStatus() = %v, want ForbiddenError", err)
		}
	})

	t.Run("admin may update ticket status", func(t *testing.T) {
		ticket := testTicket(orgID, models.TicketOpen, models.FlowQualityToAdmin)
		if err := ApplyTicketStatus(adminActor(), ticket, models.TicketInProgress, ""); err != nil {
			t.Fatalf("ApplyTicketStatus() = %v, want nil", err)
		}
	})
}

func TestApplyEscalation(t *testing.T) {
	orgID := primitive.NewObjectID()

	t.Run("quality escalates a client ticket", func(t *testing.T) {
		ticket := testTicket(orgID, models.TicketOpen, models.FlowClientToQuality)
		actor := qualityActor()

		if err := ApplyEscalation(actor, ticket, "needs commercial decision"); err != nil {
			t.Fatalf("ApplyEscalation() = %v, want nil", err)
		}
		if ticket.Flow != models.FlowQualityToAdmin {
			t.Fatalf("flow = %s, want QUALITY_TO_ADMIN", ticket.Flow)
		}
		if ticket.Escalation == nil || ticket.Escalation.EscalatedBy != actor.ID {
			t.Fatal("escalation block not recorded")
		}
	})

	t.Run("already escalated ticket", func(t *testing.T) {
		ticket := testTicket(orgID, models.TicketOpen, models.FlowQualityToAdmin)
		err := ApplyEscalation(qualityActor(), ticket, "again")
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("ApplyEscalation() = %v, want ForbiddenError", err)
		}
		if ticket.Flow != models.FlowQualityToAdmin || ticket.Escalation != nil {
			t.Fatal("ticket mutated by denied escalation")
		}
	})

	t.Run("client cannot escalate", func(t *testing.T) {
		ticket := testTicket(orgID, models.TicketOpen, models.FlowClientToQuality)
		err := ApplyEscalation(clientActor(orgID), ticket, "please")
		var forbidden *ForbiddenError
		if !errors.As(err, &forbidden) {
			t.Fatalf("ApplyEscalation() = %v, want ForbiddenError", err)
		}
		if ticket.Flow != models.FlowClientToQuality {
			t.Fatalf("flow changed to %s on denied escalation", ticket.Flow)
		}
	})

	t.Run("empty reason", func(t *testing.T) {
		ticket := testTicket(orgID, models.TicketOpen, models.FlowClientToQuality)
		err := ApplyEscalation(qualityActor(), ticket, "  ")
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("ApplyEscalation() = %v, want ValidationError", err)
		}
	})

	t.Run("resolved ticket cannot be escalated", func(t *testing.T) {
		ticket := testTicket(orgID, models.TicketResolved, models.FlowClientToQuality)
		err := ApplyEscalation(qualityActor(), ticket, "late escalation")
		var transition *InvalidTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("ApplyEscalation() = %v, want InvalidTransitionError", err)
		}
	})
}

func TestEscalationDecision(t *testing.T) {
	testCases := []struct {
		name        string
		role        models.Role
		currentFlow models.TicketFlow
		targetFlow  models.TicketFlow
		wantAllowed bool
	}{
		{name: "quality on client channel", role: models.RoleQuality, currentFlow: models.FlowClientToQuality, targetFlow: models.FlowQualityToAdmin, wantAllowed: true},
		{name: "client denied", role: models.RoleClient, currentFlow: models.FlowClientToQuality, targetFlow: models.FlowQualityToAdmin},
		{name: "admin denied", role: models.RoleAdmin, currentFlow: models.FlowClientToQuality, targetFlow: models.FlowQualityToAdmin},
		{name: "already on admin channel", role: models.RoleQuality, currentFlow: models.FlowQualityToAdmin, targetFlow: models.FlowQualityToAdmin},
		{name: "downgrade target denied", role: models.RoleQuality, currentFlow: models.FlowQualityToAdmin, targetFlow: models.FlowClientToQuality},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			decision := EscalationDecision(testCase.role, testCase.currentFlow, testCase.targetFlow)
			if decision.Allowed != testCase.wantAllowed {
				t.Fatalf("EscalationDecision().Allowed = %v, want %v", decision.Allowed, testCase.wantAllowed)
			}
			if decision.Allowed && len(decision.RequiredFields) == 0 {
				t.Fatal("allowed decision names no required evidence fields")
			}
			if !decision.Allowed && decision.Reason == "" {
				t.Fatal("denied decision carries no reason")
			}
		})
	}
}
