package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/parlay-engine/internal/models"
)

const (
	picksSourceName = "picks_api"
	picksPath       = "/v1/picks"
)

// HTTPPickRepository reads candidates from a remote picks API
type HTTPPickRepository struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Entry
}

// NewHTTPPickRepository creates a picks API client
func NewHTTPPickRepository(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *HTTPPickRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPPickRepository{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger.WithField("component", "picks_api"),
	}
}

type picksResponse struct {
	Picks []pickPayload `json:"picks"`
}

// pickPayload is the wire form of a pick. Numeric fields arrive as numbers or strings.
type pickPayload struct {
	ID              string              `json:"id"`
	PlayerName      string              `json:"player_name"`
	TeamName        string              `json:"team_name"`
	PropType        string              `json:"prop_type"`
	Category        string              `json:"category"`
	Side            string              `json:"side"`
	RecommendedLine decimal.NullDecimal `json:"recommended_line"`
	ActualLine      decimal.NullDecimal `json:"actual_line"`
	ProjectedValue  decimal.NullDecimal `json:"projected_value"`
	L10Avg          decimal.NullDecimal `json:"l10_avg"`
	L10HitRate      decimal.NullDecimal `json:"l10_hit_rate"`
	ConfidenceScore decimal.NullDecimal `json:"confidence_score"`
	AnalysisDate    string              `json:"analysis_date"`
	Outcome         string              `json:"outcome"`
}

// GetSettledByDateRange fetches settled picks with analysis dates in [start, end]
func (r *HTTPPickRepository) GetSettledByDateRange(ctx context.Context, start, end time.Time) ([]*models.Pick, error) {
	params := url.Values{}
	params.Set("start", start.UTC().Format(models.DateLayout))
	params.Set("end", end.UTC().Format(models.DateLayout))
	params.Set("settled", "true")

	picks, err := r.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	settled := picks[:0]
	for _, p := range picks {
		if p.IsSettled() {
			settled = append(settled, p)
		}
	}

	r.logger.WithFields(logrus.Fields{
		"start": params.Get("start"),
		"end":   params.Get("end"),
		"count": len(settled),
	}).Debug("Fetched settled picks")

	return settled, nil
}

// GetByAnalysisDate fetches every pick for one analysis date
func (r *HTTPPickRepository) GetByAnalysisDate(ctx context.Context, date time.Time) ([]*models.Pick, error) {
	params := url.Values{}
	params.Set("date", date.UTC().Format(models.DateLayout))
	return r.fetch(ctx, params)
}

func (r *HTTPPickRepository) fetch(ctx context.Context, params url.Values) ([]*models.Pick, error) {
	endpoint := r.baseURL + picksPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(picksSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(picksSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, NewDataSourceError(picksSourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case http.StatusNotFound:
		return nil, NewDataSourceError(picksSourceName, ErrCodeNotFound, "picks endpoint not found", nil)
	case http.StatusTooManyRequests:
		return nil, NewDataSourceError(picksSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, NewDataSourceError(picksSourceName, ErrCodeServerError,
			fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var payload picksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError(picksSourceName, ErrCodeInvalidData, "failed to decode response", err)
	}

	picks := make([]*models.Pick, 0, len(payload.Picks))
	for i := range payload.Picks {
		pick, err := payload.Picks[i].toModel()
		if err != nil {
			r.logger.WithError(err).WithField("player", payload.Picks[i].PlayerName).Warn("Skipping malformed pick")
			continue
		}
		picks = append(picks, pick)
	}

	return picks, nil
}

func (p pickPayload) toModel() (*models.Pick, error) {
	date, err := time.Parse(models.DateLayout, strings.TrimSpace(p.AnalysisDate))
	if err != nil {
		date, err = time.Parse(time.RFC3339, strings.TrimSpace(p.AnalysisDate))
		if err != nil {
			return nil, fmt.Errorf("%w: analysis_date %q", models.ErrInvalidPick, p.AnalysisDate)
		}
		date = date.UTC().Truncate(24 * time.Hour)
	}

	id := uuid.Nil
	if p.ID != "" {
		parsed, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidID, err)
		}
		id = parsed
	}

	pick := &models.Pick{
		ID:              id,
		PlayerName:      p.PlayerName,
		TeamName:        p.TeamName,
		PropType:        p.PropType,
		Category:        models.Category(p.Category),
		Side:            models.Side(p.Side),
		RecommendedLine: optionalFloat(p.RecommendedLine),
		ActualLine:      optionalFloat(p.ActualLine),
		ProjectedValue:  optionalFloat(p.ProjectedValue),
		L10Avg:          optionalFloat(p.L10Avg),
		L10HitRate:      optionalFloat(p.L10HitRate),
		ConfidenceScore: optionalFloat(p.ConfidenceScore),
		AnalysisDate:    date,
		Outcome:         models.Outcome(p.Outcome),
	}
	pick.Normalize()
	return pick, nil
}

func optionalFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v, _ := d.Decimal.Float64()
	return &v
}
