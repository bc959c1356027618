package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rateMenu/business/recommend"
	"rateMenu/domain"

	"github.com/labstack/echo/v4"
)

type fakeRecommendationService struct {
	gotUserID int64
	gotLimit  int
	err       error
}

func (f *fakeRecommendationService) Recommend(ctx context.Context, userID int64, limit int) (domain.RecommendationResponse, error) {
	f.gotUserID, f.gotLimit = userID, limit
	if f.err != nil {
		return domain.RecommendationResponse{}, f.err
	}
	return domain.RecommendationResponse{
		UserID:          userID,
		Source:          domain.SourcePersonalized,
		Recommendations: []domain.Recommendation{{MenuItemID: 9, Score: 2.5}},
	}, nil
}

func (f *fakeRecommendationService) Popular(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []domain.PopularItem{{MenuItemID: 3, AverageRating: 4.5, RatingCount: 2}}, nil
}

func TestRecommendationHandler_RecommendForUser(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		query      string
		svcErr     error
		wantStatus int
		wantLimit  int
	}{
		{"default limit", "1", "", nil, http.StatusOK, 10},
		{"explicit limit", "1", "?limit=3", nil, http.StatusOK, 3},
		{"max limit", "1", "?limit=100", nil, http.StatusOK, 100},
		{"zero limit", "1", "?limit=0", nil, http.StatusBadRequest, 0},
		{"limit too large", "1", "?limit=101", nil, http.StatusBadRequest, 0},
		{"non numeric limit", "1", "?limit=ten", nil, http.StatusBadRequest, 0},
		{"non numeric user", "abc", "", nil, http.StatusBadRequest, 0},
		{"negative user", "-4", "", nil, http.StatusBadRequest, 0},
		{"store unavailable", "1", "", fmt.Errorf("%w: down", recommend.ErrStoreUnavailable), http.StatusServiceUnavailable, 10},
		{"unexpected error", "1", "", errors.New("boom"), http.StatusInternalServerError, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRecommendationService{err: tt.svcErr}
			h := NewRecommendationHandler(svc)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/user/"+tt.userID+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("user_id")
			c.SetParamValues(tt.userID)

			if err := h.RecommendForUser(c); err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if svc.gotLimit != tt.wantLimit {
				t.Errorf("limit passed = %d, want %d", svc.gotLimit, tt.wantLimit)
			}

			if tt.wantStatus == http.StatusOK {
				var resp domain.RecommendationResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatal(err)
				}
				if resp.UserID != 1 || resp.Source != domain.SourcePersonalized || len(resp.Recommendations) != 1 {
					t.Errorf("response = %+v", resp)
				}
			}
		})
	}
}

func TestRecommendationHandler_RecommendBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLimit  int
	}{
		{"user only", `{"user_id": 7}`, http.StatusOK, 10},
		{"with limit", `{"user_id": 7, "limit": 2}`, http.StatusOK, 2},
		{"explicit zero limit", `{"user_id": 7, "limit": 0}`, http.StatusBadRequest, 0},
		{"missing user", `{"limit": 2}`, http.StatusBadRequest, 0},
		{"malformed json", `{"user_id":`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRecommendationService{}
			h := NewRecommendationHandler(svc)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			if err := h.Recommend(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK && (svc.gotUserID != 7 || svc.gotLimit != tt.wantLimit) {
				t.Errorf("service got user %d limit %d, want 7 %d", svc.gotUserID, svc.gotLimit, tt.wantLimit)
			}
		})
	}
}

func TestRecommendationHandler_RecommendForMe(t *testing.T) {
	svc := &fakeRecommendationService{}
	h := NewRecommendationHandler(svc)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/me", nil), rec)
	if err := h.RecommendForMe(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without user = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/me?limit=4", nil), rec)
	c.Set("user_id", int64(12))
	if err := h.RecommendForMe(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || svc.gotUserID != 12 || svc.gotLimit != 4 {
		t.Errorf("status = %d, user = %d, limit = %d", rec.Code, svc.gotUserID, svc.gotLimit)
	}
}

func TestRecommendationHandler_Popular(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		svcErr     error
		wantStatus int
	}{
		{"ok", "?limit=5", nil, http.StatusOK},
		{"bad limit", "?limit=-1", nil, http.StatusBadRequest},
		{"breaker open", "", fmt.Errorf("%w: circuit breaker is open", recommend.ErrStoreUnavailable), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRecommendationHandler(&fakeRecommendationService{err: tt.svcErr})

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/popular"+tt.query, nil), rec)

			if err := h.Popular(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && !strings.Contains(rec.Body.String(), `"menu_item_id":3`) {
				t.Errorf("body = %s, want popular item 3", rec.Body.String())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()

	if err := Health(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"status":"ok"}` {
		t.Errorf("Health() = %d %s", rec.Code, rec.Body.String())
	}
}
