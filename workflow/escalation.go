// workflow/escalation.go
package workflow

import (
	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

// Decision is the outcome of an escalation policy check.
type Decision struct {
	Allowed        bool
	RequiredFields []string
	Reason         string // set when denied
}

// EscalationDecision is the single source of the "who may escalate to whom"
// rule, shared by the ticket workflow and structurally available to the
// document machine. It is a pure function of the actor role and channels.
func EscalationDecision(role models.Role, currentFlow, targetFlow models.TicketFlow) Decision {
	if targetFlow != models.FlowQualityToAdmin {
		return Decision{Reason: "escalation target must be the quality-admin channel"}
	}
	if currentFlow != models.FlowClientToQuality {
		return Decision{Reason: "only client-quality tickets can be escalated"}
	}
	if role != models.RoleQuality {
		return Decision{Reason: "only quality staff may escalate tickets"}
	}
	return Decision{Allowed: true, RequiredFields: []string{"reason"}}
}
