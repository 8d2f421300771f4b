package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
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

func newTestClient(baseURL string) *Client {
	return &Client{
		BaseURL:   baseURL,
		HTTP:      &http.Client{},
		DB:        testDB.DB,
		retries:   2,
		baseDelay: time.Millisecond,
		maxDelay:  time.Millisecond,
		sleep:     func(time.Duration) {},
	}
}

func TestTalentJobMatchesStoresFreshResults(t *testing.T) {
	talentID := database.TestTalent1.UserID

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, fmt.Sprintf("/api/matching/talent/%s/jobs", talentID), r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		_ = json.NewEncoder(w).Encode([]JobMatch{
			{
				JobID:           database.TestJobPost1.ID,
				Score:           87,
				SkillScore:      90,
				ExperienceScore: 80,
				LocationScore:   85,
				MatchedSkills:   []string{"Go", "PostgreSQL"},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	rows, err := c.TalentJobMatches(context.Background(), talentID, 5)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 87, rows[0].Score)

	// The stored copy must be replaced with the fresh rows.
	var stored []model.Match
	assert.NoError(t, testDB.Where("talent_id = ?", talentID).Find(&stored).Error)
	assert.Len(t, stored, 1)
	assert.Equal(t, database.TestJobPost1.ID, stored[0].JobID)
}

func TestTalentJobMatchesFallsBackToStoredRows(t *testing.T) {
	talentID := database.TestTalent2.UserID

	seeded := model.Match{
		TalentID:      talentID,
		JobID:         database.TestJobPost3.ID,
		Score:         70,
		MatchedSkills: []string{"SQL"},
	}
	if err := testDB.Create(&seeded).Error; err != nil {
		t.Fatalf("failed to seed stored match: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "matching engine offline", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	rows, err := c.TalentJobMatches(context.Background(), talentID, 10)
	assert.NoError(t, err, "transport failures degrade to stored rows, never a visible error")
	assert.Len(t, rows, 1)
	assert.Equal(t, database.TestJobPost3.ID, rows[0].JobID)
	assert.Equal(t, 70, rows[0].Score)
}

func TestTalentJobMatchesRetriesBeforeFallingBack(t *testing.T) {
	talentID := database.TestTalent2.UserID
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "busy", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.retries = 3

	_, err := c.TalentJobMatches(context.Background(), talentID, 10)
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestZeroRetryConfigStillFetchesOnce(t *testing.T) {
	talentID := database.TestTalent1.UserID
	attempts := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		fmt.Fprintf(w, `[{"job_id": %q, "score": 55}]`, database.TestJobPost2.ID)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.retries = 0

	rows, err := c.TalentJobMatches(context.Background(), talentID, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
	require.Len(t, rows, 1)
	assert.Equal(t, database.TestJobPost2.ID, rows[0].JobID)
}

func TestWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range Weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
