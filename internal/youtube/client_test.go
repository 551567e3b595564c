// Package youtube tests document the expected behavior of the YouTube client.
//
// Test requirements (this file serves as documentation):
// - Client authenticates every call with the configured API key
// - Client fetches snippet, statistics and content details for one video
// - Client reports a missing video distinctly from other failures
// - Client fetches top comments ordered by relevance
// - Client handles API errors gracefully
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func videoFixture() map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"id": "abc123",
				"snippet": map[string]interface{}{
					"title":        "Test Video",
					"description":  "A <b>test</b> video",
					"channelTitle": "Test Channel",
					"tags":         []string{"go", "cli"},
				},
				"statistics": map[string]interface{}{
					"viewCount":    "1000",
					"likeCount":    "50",
					"commentCount": "7",
				},
				"contentDetails": map[string]interface{}{
					"duration": "PT10M30S",
				},
			},
		},
	}
}

// TestNewClient documents client creation requirements.
func TestNewClient(t *testing.T) {
	client := NewClient("test-key")

	if client == nil {
		t.Fatal("client should not be nil")
	}
}

// TestClient_FetchVideo documents video metadata fetching:
// - Calls the videos endpoint with the three parts the report needs
// - Maps counts from decimal strings to numbers
func TestClient_FetchVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/youtube/v3/videos" {
			t.Errorf("expected /youtube/v3/videos, got %q", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("expected API key in query, got %q", q.Get("key"))
		}
		if q.Get("part") != "snippet,statistics,contentDetails" {
			t.Errorf("unexpected part set %q", q.Get("part"))
		}
		if q.Get("id") != "abc123" {
			t.Errorf("expected id abc123, got %q", q.Get("id"))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(videoFixture())
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	video, err := client.FetchVideo(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if video.Title != "Test Video" {
		t.Errorf("expected title 'Test Video', got %q", video.Title)
	}
	if len(video.Tags) != 2 || video.Tags[0] != "go" {
		t.Errorf("expected tags [go cli], got %v", video.Tags)
	}
	if video.ViewCount == nil || *video.ViewCount != 1000 {
		t.Errorf("expected view count 1000, got %v", video.ViewCount)
	}
	if video.LikeCount == nil || *video.LikeCount != 50 {
		t.Errorf("expected like count 50, got %v", video.LikeCount)
	}
	if video.CommentCount == nil || *video.CommentCount != 7 {
		t.Errorf("expected comment count 7, got %v", video.CommentCount)
	}
	if video.Duration != "PT10M30S" {
		t.Errorf("expected duration PT10M30S, got %q", video.Duration)
	}
}

// TestClient_FetchVideo_NotFound documents the empty-items outcome.
func TestClient_FetchVideo_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.FetchVideo(context.Background(), "missing")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

// TestClient_FetchComments documents comment fetching:
// - Requests relevance ordering and the caller's limit
// - Returns bodies in response order
func TestClient_FetchComments(t *testing.T) {
	mockResponse := map[string]interface{}{
		"items": []map[string]interface{}{
			{"snippet": map[string]interface{}{"topLevelComment": map[string]interface{}{
				"snippet": map[string]interface{}{"textDisplay": "First <b>comment</b>"},
			}}},
			{"snippet": map[string]interface{}{"topLevelComment": map[string]interface{}{
				"snippet": map[string]interface{}{"textDisplay": "Second"},
			}}},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/youtube/v3/commentThreads" {
			t.Errorf("expected /youtube/v3/commentThreads, got %q", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("order") != "relevance" {
			t.Errorf("expected order=relevance, got %q", q.Get("order"))
		}
		if q.Get("maxResults") != "20" {
			t.Errorf("expected maxResults=20, got %q", q.Get("maxResults"))
		}
		if q.Get("videoId") != "abc123" {
			t.Errorf("expected videoId=abc123, got %q", q.Get("videoId"))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(mockResponse)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	comments, err := client.FetchComments(context.Background(), "abc123", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0] != "First <b>comment</b>" {
		t.Errorf("expected raw first comment, got %q", comments[0])
	}
}

// TestClient_APIError documents error handling:
// - Returns meaningful error on API failure
func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    401,
				"message": "Invalid credentials",
			},
		})
	}))
	defer server.Close()

	client := NewClient("invalid-key", WithBaseURL(server.URL))

	_, err := client.FetchVideo(context.Background(), "abc123")
	if err == nil {
		t.Fatal("expected error for invalid credentials")
	}
	if errors.Is(err, ErrVideoNotFound) {
		t.Error("auth failure must not be reported as a missing video")
	}
}

// TestClient_Timeout documents timeout handling:
// - Respects context deadline
func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.FetchVideo(ctx, "abc123")
	if err == nil {
		t.Fatal("expected timeout error")
	}

	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", ctx.Err())
	}
}

func TestClient_FetchVideo_URLEncodesVideoID(t *testing.T) {
	var capturedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, _ = client.FetchVideo(context.Background(), "abc&key=stolen")

	if strings.Contains(capturedQuery, "&key=stolen") {
		t.Error("video ID must be URL-encoded in the query string to prevent parameter injection")
	}
}
