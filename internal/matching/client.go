// Package matching consumes the external talent/job matching service.
// The service owns the scoring; this client only fetches results, keeps a
// stored copy, and degrades to that copy when the service is unreachable.
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
)

// Weights mirror the component weighting the matching service applies.
// They are published for display alongside scores; no computation here uses them.
var Weights = map[string]float64{
	"skill":      0.5,
	"experience": 0.3,
	"location":   0.2,
}

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultRetries   = 3
	defaultBaseDelay = 200 * time.Millisecond
	defaultMaxDelay  = 2 * time.Second
)

// JobMatch is one entry of the matching service response.
type JobMatch struct {
	JobID           uuid.UUID `json:"job_id"`
	Score           int       `json:"score"`
	SkillScore      int       `json:"skill_score"`
	ExperienceScore int       `json:"experience_score"`
	LocationScore   int       `json:"location_score"`
	MatchedSkills   []string  `json:"matched_skills"`
}

// Client calls the matching endpoint and manages the stored fallback rows.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	DB      *gorm.DB

	retries   int
	baseDelay time.Duration
	maxDelay  time.Duration
	sleep     func(time.Duration)
}

// NewClient creates a matching client. The base URL comes from
// MATCHING_SERVICE_URL when set.
func NewClient(db *gorm.DB) *Client {
	baseURL := os.Getenv("MATCHING_SERVICE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL:   baseURL,
		HTTP:      &http.Client{},
		DB:        db,
		retries:   defaultRetries,
		baseDelay: defaultBaseDelay,
		maxDelay:  defaultMaxDelay,
		sleep:     time.Sleep,
	}
}

// TalentJobMatches returns fresh matches for a talent, replacing the stored
// rows on success. On any transport failure it falls back to the previously
// stored rows rather than failing visibly.
func (c *Client) TalentJobMatches(ctx context.Context, talentID uuid.UUID, limit int) ([]model.Match, error) {
	fetched, err := c.fetchWithRetry(ctx, talentID, limit)
	if err != nil {
		log.Printf("matching service unavailable, serving stored matches: %v", err)
		return c.storedMatches(talentID, limit)
	}

	rows := make([]model.Match, 0, len(fetched))
	for _, m := range fetched {
		rows = append(rows, model.Match{
			TalentID:        talentID,
			JobID:           m.JobID,
			Score:           m.Score,
			SkillScore:      m.SkillScore,
			ExperienceScore: m.ExperienceScore,
			LocationScore:   m.LocationScore,
			MatchedSkills:   m.MatchedSkills,
		})
	}

	// Replace the stored copy; a failure here only degrades the next fallback.
	if err := c.DB.WithContext(ctx).Where("talent_id = ?", talentID).Delete(&model.Match{}).Error; err != nil {
		log.Printf("failed to clear stored matches: %v", err)
	} else if len(rows) > 0 {
		if err := c.DB.WithContext(ctx).Create(&rows).Error; err != nil {
			log.Printf("failed to store matches: %v", err)
		}
	}

	return rows, nil
}

func (c *Client) storedMatches(talentID uuid.UUID, limit int) ([]model.Match, error) {
	var rows []model.Match
	q := c.DB.Preload("Job").Where("talent_id = ?", talentID).Order("score DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load stored matches: %w", err)
	}
	return rows, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, talentID uuid.UUID, limit int) ([]JobMatch, error) {
	attempts := c.retries
	if attempts < 1 {
		// A misconfigured zero would skip the loop and report success with
		// no rows, wiping the stored fallback.
		attempts = 1
	}
	delay := c.baseDelay
	var matches []JobMatch
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			c.sleep(delay)
			delay *= 2
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		matches, err = c.fetch(ctx, talentID, limit)
		if err == nil {
			return matches, nil
		}
	}
	return nil, err
}

func (c *Client) fetch(ctx context.Context, talentID uuid.UUID, limit int) ([]JobMatch, error) {
	url := fmt.Sprintf("%s/api/matching/talent/%s/jobs?limit=%d", c.BaseURL, talentID, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call matching service: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Printf("warning: failed to close response body: %v", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("matching service error (status %d): %s", resp.StatusCode, string(body))
	}

	var matches []JobMatch
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return matches, nil
}
