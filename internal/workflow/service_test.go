package workflow

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/notify"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

type recordingSink struct {
	delivered []notify.Message
}

func (s *recordingSink) Deliver(msg notify.Message) error {
	s.delivered = append(s.delivered, msg)
	return nil
}

// newTestService returns a service without debounce so every notification is
// observable, plus the sink recording them.
func newTestService(t *testing.T) (*Service, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	notifier := notify.New(sink, notify.WithWindow(0))
	return NewService(testDB, notifier, nil), sink
}

// newJobPost creates an active post owned by TestCompany1 so each test gets
// its own (job, talent) pair.
func newJobPost(t *testing.T, title string) model.JobPost {
	t.Helper()
	post := model.JobPost{
		CompanyID: database.TestCompany1.UserID,
		Status:    model.JobStatusActive,
		EditableJobPostInfo: model.EditableJobPostInfo{
			Title: title,
			Type:  "Full-time",
		},
	}
	require.NoError(t, testDB.Create(&post).Error)
	return post
}

func companyActor() Actor {
	return Actor{ID: database.TestCompany1.UserID, Role: model.RoleCompany}
}

func talentActor() Actor {
	return Actor{ID: database.TestTalent1.UserID, Role: model.RoleTalent}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	s, sink := newTestService(t)
	post := newJobPost(t, "Apply Creates Pending")

	app, err := s.Apply(context.Background(), database.TestTalent1.UserID, post.ID, "cover", "")
	require.NoError(t, err)

	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	assert.False(t, app.AppliedAt.IsZero())
	assert.Nil(t, app.ReviewedAt)
	assert.Equal(t, app.AppliedAt, app.UpdatedAt)

	require.Len(t, sink.delivered, 1)
	assert.Equal(t, notify.CategorySuccess, sink.delivered[0].Category)
}

func TestApplyTwiceFailsWithDuplicate(t *testing.T) {
	s, sink := newTestService(t)
	post := newJobPost(t, "Apply Twice")

	_, err := s.Apply(context.Background(), database.TestTalent1.UserID, post.ID, "", "")
	require.NoError(t, err)

	_, err = s.Apply(context.Background(), database.TestTalent1.UserID, post.ID, "", "")
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	// One success notification, then one error notification.
	require.Len(t, sink.delivered, 2)
	assert.Equal(t, notify.CategoryError, sink.delivered[1].Category)
}

func TestReviewedStampsReviewedAtExactlyOnce(t *testing.T) {
	s, _ := newTestService(t)
	post := newJobPost(t, "Reviewed Stamp")

	app, err := s.Apply(context.Background(), database.TestTalent1.UserID, post.ID, "", "")
	require.NoError(t, err)

	reviewedTime := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return reviewedTime }

	updated, err := s.RequestTransition(context.Background(), app.ID, model.ApplicationStatusReviewed, companyActor())
	require.NoError(t, err)

	require.NotNil(t, updated.ReviewedAt)
	assert.WithinDuration(t, reviewedTime, *updated.ReviewedAt, time.Second)
	assert.WithinDuration(t, reviewedTime, updated.UpdatedAt, time.Second)

	// Later transitions leave the review stamp alone.
	laterTime := reviewedTime.Add(time.Hour)
	s.now = func() time.Time { return laterTime }

	updated, err = s.RequestTransition(context.Background(), app.ID, model.ApplicationStatusInterview, companyActor())
	require.NoError(t, err)
	require.NotNil(t, updated.ReviewedAt)
	assert.WithinDuration(t, reviewedTime, *updated.ReviewedAt, time.Second)
	assert.WithinDuration(t, laterTime, updated.UpdatedAt, time.Second)
}

func TestRejectFromPendingLeavesReviewedAtEmpty(t *testing.T) {
	s, _ := newTestService(t)
	post := newJobPost(t, "Reject From Pending")

	app, err := s.Apply(context.Background(), database.TestTalent2.UserID, post.ID, "", "")
	require.NoError(t, err)

	updated, err := s.RequestTransition(context.Background(), app.ID, model.ApplicationStatusRejected, companyActor())
	require.NoError(t, err)

	assert.Equal(t, model.ApplicationStatusRejected, updated.Status)
	assert.Nil(t, updated.ReviewedAt)
	assert.True(t, updated.UpdatedAt.After(updated.AppliedAt) || updated.UpdatedAt.Equal(updated.AppliedAt))
}

func TestSameStatusRequestIsNoOp(t *testing.T) {
	s, sink := newTestService(t)
	post := newJobPost(t, "Same Status NoOp")

	app, err := s.Apply(context.Background(), database.TestTalent1.UserID, post.ID, "", "")
	require.NoError(t, err)
	deliveredBefore := len(sink.delivered)

	got, err := s.RequestTransition(context.Background(), app.ID, model.ApplicationStatusPending, companyActor())
	require.NoError(t, err)

	assert.WithinDuration(t, app.UpdatedAt, got.UpdatedAt, time.Millisecond, "no-op must not touch timestamps")
	assert.Len(t, sink.delivered, deliveredBefore, "no-op must not notify")
}

func TestFullHappyPath(t *testing.T) {
	s, _ := newTestService(t)
	post := newJobPost(t, "Happy Path")

	app, err := s.Apply(context.Background(), database.TestTalent1.UserID, post.ID, "", "")
	require.NoError(t, err)

	for _, target := range []string{
		model.ApplicationStatusReviewed,
		model.ApplicationStatusInterview,
		model.ApplicationStatusOffer,
		model.ApplicationStatusAccepted,
	} {
		updated, err := s.RequestTransition(context.Background(), app.ID, target, companyActor())
		require.NoError(t, err, "transition to %s", target)
		assert.Equal(t, target, updated.Status)
	}

	// Accepted is terminal.
	_, err = s.RequestTransition(context.Background(), app.ID, model.ApplicationStatusRejected, companyActor())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWithdrawByTalentOnly(t *testing.T) {
	s, _ := newTestService(t)
	post := newJobPost(t, "Withdraw Auth")

	app, err := s.Apply(context.Background(), database.TestTalent1.UserID, post.ID, "", "")
	require.NoError(t, err)

	_, err = s.Withdraw(context.Background(), app.ID, companyActor())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	otherTalent := Actor{ID: database.TestTalent2.UserID, Role: model.RoleTalent}
	_, err = s.Withdraw(context.Background(), app.ID, otherTalent)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := s.Withdraw(context.Background(), app.ID, talentActor())
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusWithdrawn, updated.Status)

	// Withdrawn is terminal; nothing moves it again.
	_, err = s.RequestTransition(context.Background(), app.ID, model.ApplicationStatusReviewed, companyActor())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStaleStatusUpdateConflicts(t *testing.T) {
	s, sink := newTestService(t)
	post := newJobPost(t, "Stale Conflict")

	app, err := s.Apply(context.Background(), database.TestTalent2.UserID, post.ID, "", "")
	require.NoError(t, err)

	// Another actor moves the application between our read and our
	// conditional update. The clock hook runs exactly in that gap.
	interfered := false
	s.now = func() time.Time {
		if !interfered {
			interfered = true
			res := testDB.Model(&model.Application{}).
				Where("id = ?", app.ID).
				Update("status", model.ApplicationStatusRejected)
			require.NoError(t, res.Error)
			require.Equal(t, int64(1), res.RowsAffected)
		}
		return time.Now()
	}

	_, err = s.RequestTransition(context.Background(), app.ID, model.ApplicationStatusReviewed, companyActor())
	assert.ErrorIs(t, err, ErrStaleReadConflict)

	require.NotEmpty(t, sink.delivered)
	last := sink.delivered[len(sink.delivered)-1]
	assert.Equal(t, notify.CategoryError, last.Category)
	assert.Contains(t, last.Body, "reload and retry")

	// The competing write won; the row kept its value.
	reloaded, err := s.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusRejected, reloaded.Status)
}

func TestDeleteAuthorization(t *testing.T) {
	s, _ := newTestService(t)
	post := newJobPost(t, "Delete Auth")

	app, err := s.Apply(context.Background(), database.TestTalent1.UserID, post.ID, "", "")
	require.NoError(t, err)

	stranger := Actor{ID: uuid.New(), Role: model.RoleTalent}
	assert.ErrorIs(t, s.Delete(context.Background(), app.ID, stranger), ErrInvalidTransition)

	assert.NoError(t, s.Delete(context.Background(), app.ID, talentActor()))

	_, err = s.Get(context.Background(), app.ID)
	assert.Error(t, err)
}
