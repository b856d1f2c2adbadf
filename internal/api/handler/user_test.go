package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

func TestUserHandler_WatchHistory(t *testing.T) {
	principal := uuid.New()
	owner := model.OwnerProfile{ID: uuid.New(), Username: "ada"}
	card := model.VideoCard{
		Video: model.Video{ID: uuid.New(), OwnerID: owner.ID, Title: "Watched", IsPublished: true},
		Owner: owner,
	}

	tests := []struct {
		name           string
		principal      uuid.UUID
		query          string
		feedErr        error
		expectedStatus int
		wantPage       model.PageRequest
	}{
		{
			name:           "lists the principal's history",
			principal:      principal,
			query:          "?page=2&limit=5",
			expectedStatus: http.StatusOK,
			wantPage:       model.PageRequest{Page: 2, PageSize: 5},
		},
		{
			name:           "huge page is clamped",
			principal:      principal,
			query:          "?page=9223372036854775807",
			expectedStatus: http.StatusOK,
			wantPage:       model.PageRequest{Page: model.MaxPage, PageSize: model.DefaultPageSize},
		},
		{
			name:           "anonymous",
			principal:      uuid.Nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-numeric page",
			principal:      principal,
			query:          "?page=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "store failure",
			principal:      principal,
			feedErr:        errors.Join(model.ErrUpstream, errors.New("connection refused")),
			expectedStatus: http.StatusBadGateway,
			wantPage:       model.PageRequest{Page: 1, PageSize: model.DefaultPageSize},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := &mockFeedService{
				watchHistoryFn: func(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.VideoCard], error) {
					if userID != tt.principal {
						t.Errorf("userID = %v, want %v", userID, tt.principal)
					}
					if page != tt.wantPage {
						t.Errorf("page = %+v, want %+v", page, tt.wantPage)
					}
					if tt.feedErr != nil {
						return nil, tt.feedErr
					}
					return model.NewPage([]model.VideoCard{card}, page, 1), nil
				},
			}
			h := NewUserHandler(feed)

			rec := httptest.NewRecorder()
			h.WatchHistory(rec, newRequest(http.MethodGet, "/v1/users/watch-history"+tt.query, nil, tt.principal, nil))

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if rec.Code != http.StatusOK {
				return
			}

			var page PageResponse[VideoResponse]
			decodeData(t, rec.Body.Bytes(), &page)
			if len(page.Items) != 1 || page.Items[0].Owner == nil || page.Items[0].Owner.Username != "ada" {
				t.Errorf("unexpected items: %+v", page.Items)
			}
		})
	}
}
