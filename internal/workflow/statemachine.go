// Package workflow implements the application status state machine and the
// operations that move applications through it.
package workflow

import (
	"github.com/google/uuid"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
)

// Actor identifies who is requesting a transition.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// companyTransitions lists the targets a company representative may move an
// application to from each status. Terminal statuses have no entry.
var companyTransitions = map[string][]string{
	model.ApplicationStatusPending:   {model.ApplicationStatusReviewed, model.ApplicationStatusRejected},
	model.ApplicationStatusReviewed:  {model.ApplicationStatusInterview, model.ApplicationStatusRejected},
	model.ApplicationStatusInterview: {model.ApplicationStatusOffer, model.ApplicationStatusRejected},
	model.ApplicationStatusOffer:     {model.ApplicationStatusAccepted, model.ApplicationStatusRejected},
}

// withdrawableFrom lists the statuses a talent may still withdraw from.
var withdrawableFrom = []string{
	model.ApplicationStatusPending,
	model.ApplicationStatusReviewed,
	model.ApplicationStatusInterview,
}

// IsTerminal reports whether status has no outgoing transitions.
func IsTerminal(status string) bool {
	switch status {
	case model.ApplicationStatusAccepted, model.ApplicationStatusRejected, model.ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// AllowedTargets returns the company-initiated targets reachable from status.
func AllowedTargets(status string) []string {
	return companyTransitions[status]
}

// CanTransition reports whether a company actor may move from one status to another.
func CanTransition(from, to string) bool {
	return contains(companyTransitions[from], to)
}

// ValidateTransition decides whether actor may move app to target.
// It returns nil for a legal transition and ErrInvalidTransition otherwise.
// Requesting the current status is legal (the caller treats it as a no-op).
func ValidateTransition(app *model.Application, target string, actor Actor) error {
	if target == app.Status {
		return nil
	}

	if target == model.ApplicationStatusWithdrawn {
		// Withdraw is talent-initiated only, and only by the applying talent.
		if actor.Role != model.RoleTalent || actor.ID != app.TalentID {
			return ErrInvalidTransition
		}
		if !contains(withdrawableFrom, app.Status) {
			return ErrInvalidTransition
		}
		return nil
	}

	// Every other transition belongs to the company owning the job.
	if actor.Role != model.RoleCompany || actor.ID != app.Job.CompanyID {
		return ErrInvalidTransition
	}
	if !CanTransition(app.Status, target) {
		return ErrInvalidTransition
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
