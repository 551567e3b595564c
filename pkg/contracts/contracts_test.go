// Package contracts_test verifies that the real clients parse the recorded
// API responses.
package contracts_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/gauthierbraillon/ytdigest/internal/dislikes"
	"github.com/gauthierbraillon/ytdigest/internal/sanitize"
	"github.com/gauthierbraillon/ytdigest/internal/youtube"
	"github.com/gauthierbraillon/ytdigest/pkg/contracts"
)

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestYouTubeClient_ParsesVideoContract(t *testing.T) {
	server := serve(t, contracts.YouTubeVideoContract)
	client := youtube.NewClient("test-key", youtube.WithBaseURL(server.URL))

	video, err := client.FetchVideo(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}

	if video.Title != "Rick Astley - Never Gonna Give You Up (Official Music Video)" {
		t.Errorf("unexpected title: %q", video.Title)
	}
	if len(video.Tags) != 3 || video.Tags[2] != "rickroll" {
		t.Errorf("unexpected tags: %v", video.Tags)
	}
	if video.ViewCount == nil || *video.ViewCount != 1500000000 {
		t.Errorf("unexpected view count: %v", video.ViewCount)
	}
	if video.LikeCount == nil || *video.LikeCount != 17000000 {
		t.Errorf("unexpected like count: %v", video.LikeCount)
	}
	if video.CommentCount == nil || *video.CommentCount != 2300000 {
		t.Errorf("unexpected comment count: %v", video.CommentCount)
	}
	secs, err := youtube.ParseDuration(video.Duration)
	if err != nil || secs != 213 {
		t.Errorf("duration %q should decode to 213 seconds, got %d (%v)", video.Duration, secs, err)
	}
}

func TestYouTubeClient_ParsesHiddenStatisticsContract(t *testing.T) {
	server := serve(t, contracts.YouTubeVideoNoStatsContract)
	client := youtube.NewClient("test-key", youtube.WithBaseURL(server.URL))

	video, err := client.FetchVideo(context.Background(), "hidden01")
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}

	if video.LikeCount != nil || video.CommentCount != nil {
		t.Errorf("omitted counters must stay absent, got likes=%v comments=%v", video.LikeCount, video.CommentCount)
	}
	if video.ViewCount == nil || *video.ViewCount != 42 {
		t.Errorf("unexpected view count: %v", video.ViewCount)
	}
	if secs, err := youtube.ParseDuration(video.Duration); err != nil || secs != 93600 {
		t.Errorf("P1DT2H should decode to 93600 seconds, got %d (%v)", secs, err)
	}
}

func TestYouTubeClient_EmptyContractIsNotFound(t *testing.T) {
	server := serve(t, contracts.YouTubeEmptyVideoContract)
	client := youtube.NewClient("test-key", youtube.WithBaseURL(server.URL))

	_, err := client.FetchVideo(context.Background(), "nope")

	if !errors.Is(err, youtube.ErrVideoNotFound) {
		t.Errorf("empty items should be not found, got %v", err)
	}
}

func TestYouTubeClient_ParsesCommentThreadsContract(t *testing.T) {
	server := serve(t, contracts.YouTubeCommentThreadsContract)
	client := youtube.NewClient("test-key", youtube.WithBaseURL(server.URL))

	comments, err := client.FetchComments(context.Background(), "dQw4w9WgXcQ", 20)
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	first := sanitize.StripTags(comments[0])
	if !strings.HasPrefix(first, "Still a banger") || strings.Contains(first, "<") {
		t.Errorf("first comment should be plain text after sanitizing, got %q", first)
	}
	if comments[1] != "Got me again" {
		t.Errorf("unexpected second comment: %q", comments[1])
	}
}

func TestDislikeClient_ParsesVotesContract(t *testing.T) {
	server := serve(t, contracts.DislikeVotesContract)
	client := dislikes.NewClient(dislikes.WithBaseURL(server.URL))

	n, err := client.FetchDislikes(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("client should parse contract response: %v", err)
	}

	if n != 480000 {
		t.Errorf("expected 480000 dislikes, got %d", n)
	}
}
