package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
)

func sampleApplication(status string, talentID, companyID uuid.UUID) *model.Application {
	return &model.Application{
		ID:       uuid.New(),
		Status:   status,
		TalentID: talentID,
		Job: model.JobPost{
			ID:        uuid.New(),
			CompanyID: companyID,
		},
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	talentID := uuid.New()
	companyID := uuid.New()
	company := Actor{ID: companyID, Role: model.RoleCompany}
	talent := Actor{ID: talentID, Role: model.RoleTalent}

	terminals := []string{
		model.ApplicationStatusAccepted,
		model.ApplicationStatusRejected,
		model.ApplicationStatusWithdrawn,
	}
	targets := []string{
		model.ApplicationStatusPending,
		model.ApplicationStatusReviewed,
		model.ApplicationStatusInterview,
		model.ApplicationStatusOffer,
		model.ApplicationStatusAccepted,
		model.ApplicationStatusRejected,
		model.ApplicationStatusWithdrawn,
	}

	for _, from := range terminals {
		assert.True(t, IsTerminal(from))
		assert.Empty(t, AllowedTargets(from))
		for _, to := range targets {
			if to == from {
				continue
			}
			app := sampleApplication(from, talentID, companyID)
			assert.Error(t, ValidateTransition(app, to, company), "%s -> %s by company", from, to)
			assert.Error(t, ValidateTransition(app, to, talent), "%s -> %s by talent", from, to)
		}
	}
}

func TestCompanyTransitionTable(t *testing.T) {
	talentID := uuid.New()
	companyID := uuid.New()
	company := Actor{ID: companyID, Role: model.RoleCompany}

	legal := map[string][]string{
		model.ApplicationStatusPending:   {model.ApplicationStatusReviewed, model.ApplicationStatusRejected},
		model.ApplicationStatusReviewed:  {model.ApplicationStatusInterview, model.ApplicationStatusRejected},
		model.ApplicationStatusInterview: {model.ApplicationStatusOffer, model.ApplicationStatusRejected},
		model.ApplicationStatusOffer:     {model.ApplicationStatusAccepted, model.ApplicationStatusRejected},
	}

	for from, targets := range legal {
		for _, to := range targets {
			app := sampleApplication(from, talentID, companyID)
			assert.NoError(t, ValidateTransition(app, to, company), "%s -> %s", from, to)
		}
	}

	// Skipping steps is not allowed.
	app := sampleApplication(model.ApplicationStatusPending, talentID, companyID)
	assert.ErrorIs(t, ValidateTransition(app, model.ApplicationStatusOffer, company), ErrInvalidTransition)
	assert.ErrorIs(t, ValidateTransition(app, model.ApplicationStatusAccepted, company), ErrInvalidTransition)
}

func TestSameStatusIsLegal(t *testing.T) {
	talentID := uuid.New()
	companyID := uuid.New()
	app := sampleApplication(model.ApplicationStatusReviewed, talentID, companyID)

	// Even an unrelated actor may request the current status; the caller
	// treats it as a no-op before any authorization applies.
	stranger := Actor{ID: uuid.New(), Role: model.RoleTalent}
	assert.NoError(t, ValidateTransition(app, model.ApplicationStatusReviewed, stranger))
}

func TestWithdrawAuthorization(t *testing.T) {
	talentID := uuid.New()
	companyID := uuid.New()

	owner := Actor{ID: talentID, Role: model.RoleTalent}
	otherTalent := Actor{ID: uuid.New(), Role: model.RoleTalent}
	company := Actor{ID: companyID, Role: model.RoleCompany}

	for _, from := range []string{
		model.ApplicationStatusPending,
		model.ApplicationStatusReviewed,
		model.ApplicationStatusInterview,
	} {
		app := sampleApplication(from, talentID, companyID)
		assert.NoError(t, ValidateTransition(app, model.ApplicationStatusWithdrawn, owner), "withdraw from %s", from)
		assert.ErrorIs(t, ValidateTransition(app, model.ApplicationStatusWithdrawn, otherTalent), ErrInvalidTransition)
		assert.ErrorIs(t, ValidateTransition(app, model.ApplicationStatusWithdrawn, company), ErrInvalidTransition)
	}

	// Offer stage is past the point of withdrawal.
	app := sampleApplication(model.ApplicationStatusOffer, talentID, companyID)
	assert.ErrorIs(t, ValidateTransition(app, model.ApplicationStatusWithdrawn, owner), ErrInvalidTransition)
}

func TestCompanyOwnershipRequired(t *testing.T) {
	talentID := uuid.New()
	companyID := uuid.New()
	app := sampleApplication(model.ApplicationStatusPending, talentID, companyID)

	otherCompany := Actor{ID: uuid.New(), Role: model.RoleCompany}
	assert.ErrorIs(t, ValidateTransition(app, model.ApplicationStatusReviewed, otherCompany), ErrInvalidTransition)

	talent := Actor{ID: talentID, Role: model.RoleTalent}
	assert.ErrorIs(t, ValidateTransition(app, model.ApplicationStatusReviewed, talent), ErrInvalidTransition)
}
