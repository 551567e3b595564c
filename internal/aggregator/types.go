// Package aggregator builds one uniform report row per video out of several
// independent sources.
//
// This package enables ytdigest to:
// - Parse a free-text block of links into references
// - Query metadata, dislikes, comments and transcripts for each reference
// - Keep going when a single link or source fails
// - Render every missing field with one well-known placeholder
package aggregator

import (
	"encoding/json"
	"strconv"
)

// Placeholders rendered for values that could not be determined.
const (
	Unavailable           = "Data not available"
	TranscriptUnavailable = "Transcript not available"
	CommentsUnavailable   = "Comments not available"
)

// Kind tells what a Value holds.
type Kind int

const (
	KindUnavailable Kind = iota
	KindText
	KindCount
	KindSeconds
)

// Reason explains why a Value is unavailable.
type Reason string

const (
	ReasonNone   Reason = ""
	ReasonAbsent Reason = "absent"
	ReasonFailed Reason = "failed"
)

// Value is one report cell. Unavailable values keep the cause for
// diagnostics and only turn into a placeholder string when rendered.
type Value struct {
	Kind   Kind
	Text   string
	Number int64
	Reason Reason
	Err    error

	placeholder string
}

// Text wraps free text.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Count wraps an integer counter.
func Count(n int64) Value { return Value{Kind: KindCount, Number: n} }

// Seconds wraps a duration in whole seconds.
func Seconds(n int) Value { return Value{Kind: KindSeconds, Number: int64(n)} }

// Absent marks a field the source did not provide.
func Absent() Value { return Value{Kind: KindUnavailable, Reason: ReasonAbsent} }

// Failed marks a field whose source could not be queried.
func Failed(err error) Value { return Value{Kind: KindUnavailable, Reason: ReasonFailed, Err: err} }

// WithPlaceholder overrides the string rendered when v is unavailable.
func (v Value) WithPlaceholder(s string) Value {
	v.placeholder = s
	return v
}

// Available reports whether v carries real data.
func (v Value) Available() bool { return v.Kind != KindUnavailable }

// String renders v for display.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindCount:
		return strconv.FormatInt(v.Number, 10)
	case KindSeconds:
		return strconv.FormatInt(v.Number, 10) + " seconds"
	default:
		if v.placeholder != "" {
			return v.placeholder
		}
		return Unavailable
	}
}

// MarshalJSON renders counts and durations as numbers and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindCount || v.Kind == KindSeconds {
		return []byte(strconv.FormatInt(v.Number, 10)), nil
	}
	return json.Marshal(v.String())
}

// Columns are the report headers, in the order Record.Cells renders them.
var Columns = []string{
	"Link",
	"Tags",
	"Title",
	"Likes",
	"Dislikes",
	"Views",
	"Comments count",
	"Top comments",
	"Duration",
	"Video description",
	"Transcript",
}

// Record is one finished report row.
type Record struct {
	Reference    string `json:"link"`
	VideoID      string `json:"video_id"`
	Tags         Value  `json:"tags"`
	Title        Value  `json:"title"`
	Likes        Value  `json:"likes"`
	Dislikes     Value  `json:"dislikes"`
	Views        Value  `json:"views"`
	CommentCount Value  `json:"comment_count"`
	Comments     Value  `json:"top_comments"`
	Duration     Value  `json:"duration_seconds"`
	Description  Value  `json:"description"`
	Transcript   Value  `json:"transcript"`
}

// Cells renders the record in Columns order.
func (r Record) Cells() []string {
	return []string{
		r.Reference,
		r.Tags.String(),
		r.Title.String(),
		r.Likes.String(),
		r.Dislikes.String(),
		r.Views.String(),
		r.CommentCount.String(),
		r.Comments.String(),
		r.Duration.String(),
		r.Description.String(),
		r.Transcript.String(),
	}
}

// NoticeKind classifies a per-reference problem.
type NoticeKind string

const (
	NoticeInvalidReference NoticeKind = "invalid_reference"
	NoticeNotFound         NoticeKind = "not_found"
	NoticeSourceError      NoticeKind = "source_error"
)

// Notice is a user-visible message about a skipped reference.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Index     int        `json:"index"`
	Reference string     `json:"link"`
	Message   string     `json:"message"`
	Err       error      `json:"-"`
}

// Status summarizes how a run ended.
type Status string

const (
	StatusComplete Status = "complete"
	StatusEmpty    Status = "empty"
	StatusCanceled Status = "canceled"
)

// Report is the outcome of one pipeline run.
type Report struct {
	RunID     string   `json:"run_id"`
	Total     int      `json:"total"`
	Processed int      `json:"processed"`
	Records   []Record `json:"records"`
	Notices   []Notice `json:"notices"`

	canceled bool
}

// Status reports whether the run finished, produced nothing, or was cut short.
func (r *Report) Status() Status {
	switch {
	case r.canceled:
		return StatusCanceled
	case len(r.Records) == 0:
		return StatusEmpty
	default:
		return StatusComplete
	}
}

// MarshalJSON adds the derived status to the encoded report.
func (r *Report) MarshalJSON() ([]byte, error) {
	type plain Report
	return json.Marshal(struct {
		*plain
		Status Status `json:"status"`
	}{(*plain)(r), r.Status()})
}

// Hooks receive live updates while a run is in progress.
type Hooks struct {
	OnProgress func(done, total int)
	OnNotice   func(Notice)
}

func (h Hooks) progress(done, total int) {
	if h.OnProgress != nil {
		h.OnProgress(done, total)
	}
}

func (h Hooks) notice(n Notice) {
	if h.OnNotice != nil {
		h.OnNotice(n)
	}
}
