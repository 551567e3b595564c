// Package youtube provides a client for the YouTube Data API v3.
//
// This package enables ytdigest to:
// - Turn watch URLs and short links into video ids
// - Fetch a video's snippet, statistics and content details
// - Fetch the most relevant top-level comments of a video
// - Decode contentDetails durations into seconds
package youtube

// Video holds the metadata of a single video as returned by the videos endpoint.
// Counts are nil when YouTube omits them (hidden likes, disabled comments).
type Video struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags,omitempty"`
	ChannelTitle string   `json:"channel_title"`
	ViewCount    *int64   `json:"view_count,omitempty"`
	LikeCount    *int64   `json:"like_count,omitempty"`
	CommentCount *int64   `json:"comment_count,omitempty"`
	Duration     string   `json:"duration"`
}
