package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Mix","description":"d"}`},
		{name: "missing required field", body: `{"description":"d"}`, wantErr: "name is required"},
		{name: "unknown field", body: `{"name":"Mix","owner":"x"}`, wantErr: "invalid JSON body"},
		{name: "malformed", body: `{"name":`, wantErr: "invalid JSON body"},
		{name: "too long", body: `{"name":"` + strings.Repeat("a", 201) + `"}`, wantErr: "name must be at most 200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest PlaylistRequest

			err := decodeJSON(httptest.NewRecorder(), req, &dest)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, model.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	id := uuid.New()

	got, err := pathID(newRequest(http.MethodGet, "/", nil, uuid.Nil, map[string]string{"videoId": id.String()}), "videoId")
	if err != nil || got != id {
		t.Errorf("pathID() = %v, %v", got, err)
	}

	for _, raw := range []string{"", "abc", uuid.Nil.String()} {
		_, err := pathID(newRequest(http.MethodGet, "/", nil, uuid.Nil, map[string]string{"videoId": raw}), "videoId")
		if !errors.Is(err, model.ErrValidation) {
			t.Errorf("pathID(%q) error = %v, want validation error", raw, err)
		}
	}
}

func TestPageRequest(t *testing.T) {
	tests := []struct {
		query   string
		want    model.PageRequest
		wantErr bool
	}{
		{query: "", want: model.PageRequest{Page: 1, PageSize: model.DefaultPageSize}},
		{query: "?page=3&limit=20", want: model.PageRequest{Page: 3, PageSize: 20}},
		{query: "?page=0&limit=-1", want: model.PageRequest{Page: 1, PageSize: model.DefaultPageSize}},
		{query: "?limit=1000", want: model.PageRequest{Page: 1, PageSize: model.MaxPageSize}},
		{query: "?limit=ten", wantErr: true},
		{query: "?page=9223372036854775807", want: model.PageRequest{Page: model.MaxPage, PageSize: model.DefaultPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := pageRequest(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("pageRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
