package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/gauthierbraillon/ytdigest/internal/sanitize"
	"github.com/gauthierbraillon/ytdigest/internal/youtube"
)

// Source names reported to the Recorder.
const (
	SourceMetadata   = "metadata"
	SourceDislikes   = "dislikes"
	SourceComments   = "comments"
	SourceTranscript = "transcript"
)

// Source outcomes reported to the Recorder.
const (
	OutcomeOK     = "ok"
	OutcomeAbsent = "absent"
	OutcomeFailed = "failed"
)

// DefaultPace is the pause between two consecutive references.
const DefaultPace = 200 * time.Millisecond

var errNoSource = errors.New("source not configured")

// Source fetches one kind of data for a key.
type Source[T any] interface {
	Fetch(ctx context.Context, key string) (T, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc[T any] func(ctx context.Context, key string) (T, error)

// Fetch calls f.
func (f SourceFunc[T]) Fetch(ctx context.Context, key string) (T, error) {
	return f(ctx, key)
}

// Sources groups the backends a Pipeline queries. Metadata, Dislikes and
// Comments are keyed by video id; Transcript by the reference as given.
type Sources struct {
	Metadata   Source[*youtube.Video]
	Dislikes   Source[int64]
	Comments   Source[[]string]
	Transcript Source[string]
}

// Recorder observes pipeline activity.
type Recorder interface {
	ObserveSource(source, outcome string)
	ObserveItem(d time.Duration, produced bool)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSource(string, string) {}
func (nopRecorder) ObserveItem(time.Duration, bool) {}

// Option configures the Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithPace sets the pause between references. Zero or less disables pacing.
func WithPace(d time.Duration) Option {
	return func(p *Pipeline) { p.pace = d }
}

// WithRecorder sets the activity recorder.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// Pipeline turns references into report records, one at a time and in
// input order.
type Pipeline struct {
	sources  Sources
	pace     time.Duration
	logger   logrus.FieldLogger
	recorder Recorder
}

// New creates a Pipeline over the given sources.
func New(sources Sources, opts ...Option) *Pipeline {
	p := &Pipeline{
		sources:  sources,
		pace:     DefaultPace,
		logger:   logrus.StandardLogger(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseReferences splits a free-text block on commas and newlines and
// drops blank entries.
func ParseReferences(block string) []string {
	fields := strings.FieldsFunc(block, func(r rune) bool { return r == ',' || r == '\n' })
	refs := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			refs = append(refs, f)
		}
	}
	return refs
}

// Run processes refs sequentially. A reference that cannot be resolved is
// skipped with a notice; progress is reported after every reference either
// way. Cancelling ctx stops the run between references and marks the report
// canceled, keeping the records produced so far.
func (p *Pipeline) Run(ctx context.Context, refs []string, hooks Hooks) *Report {
	report := &Report{
		RunID:   uuid.NewString(),
		Total:   len(refs),
		Records: make([]Record, 0, len(refs)),
		Notices: make([]Notice, 0),
	}
	log := p.logger.WithField("run_id", report.RunID)
	log.WithField("references", len(refs)).Info("Starting report run")

	limit := rate.Inf
	if p.pace > 0 {
		limit = rate.Every(p.pace)
	}
	limiter := rate.NewLimiter(limit, 1)

	for i, ref := range refs {
		if err := limiter.Wait(ctx); err != nil {
			report.canceled = true
			break
		}

		start := time.Now()
		rec, notice := p.process(ctx, ref, log.WithField("reference", ref))
		if notice != nil {
			notice.Index = i
			report.Notices = append(report.Notices, *notice)
			log.WithFields(logrus.Fields{"index": i, "kind": notice.Kind}).WithError(notice.Err).Info(notice.Message)
			hooks.notice(*notice)
		}
		if rec != nil {
			report.Records = append(report.Records, *rec)
		}
		p.recorder.ObserveItem(time.Since(start), rec != nil)

		report.Processed = i + 1
		hooks.progress(report.Processed, report.Total)
	}

	log.WithFields(logrus.Fields{
		"status":    report.Status(),
		"records":   len(report.Records),
		"notices":   len(report.Notices),
		"processed": report.Processed,
	}).Info("Report run finished")

	return report
}

func (p *Pipeline) process(ctx context.Context, ref string, log logrus.FieldLogger) (*Record, *Notice) {
	id, ok := youtube.ExtractVideoID(ref)
	if !ok {
		return nil, &Notice{
			Kind:      NoticeInvalidReference,
			Reference: ref,
			Message:   fmt.Sprintf("Invalid link: %s", ref),
		}
	}

	log = log.WithField("video_id", id)

	video, err := fetch(ctx, p.sources.Metadata, id)
	p.recorder.ObserveSource(SourceMetadata, outcomeOf(err))
	if err == nil && video == nil {
		err = youtube.ErrVideoNotFound
	}
	if err != nil {
		n := &Notice{
			Kind:      NoticeNotFound,
			Reference: ref,
			Message:   fmt.Sprintf("No data found for video: %s", ref),
			Err:       err,
		}
		if !errors.Is(err, youtube.ErrVideoNotFound) {
			n.Kind = NoticeSourceError
			n.Message = fmt.Sprintf("No data found for video: %s (%v)", ref, err)
		}
		return nil, n
	}

	rec := &Record{
		Reference:    ref,
		VideoID:      id,
		Title:        textOrAbsent(video.Title),
		Tags:         textOrAbsent(strings.Join(video.Tags, ", ")),
		Description:  textOrAbsent(sanitize.StripTags(video.Description)),
		Views:        countOrAbsent(video.ViewCount),
		Likes:        countOrAbsent(video.LikeCount),
		CommentCount: countOrAbsent(video.CommentCount),
		Duration:     durationValue(video.Duration),
	}

	dislikes, err := fetch(ctx, p.sources.Dislikes, id)
	p.recorder.ObserveSource(SourceDislikes, outcomeOf(err))
	if err != nil {
		log.WithField("source", SourceDislikes).WithError(err).Debug("Source unavailable")
		rec.Dislikes = Failed(err)
	} else {
		rec.Dislikes = Count(dislikes)
	}

	comments, err := fetch(ctx, p.sources.Comments, id)
	rec.Comments = commentsValue(comments, err)
	p.recorder.ObserveSource(SourceComments, outcomeOfValue(rec.Comments))
	if err != nil {
		log.WithField("source", SourceComments).WithError(err).Debug("Source unavailable")
	}

	transcript, err := fetch(ctx, p.sources.Transcript, ref)
	rec.Transcript = transcriptValue(transcript, err)
	p.recorder.ObserveSource(SourceTranscript, outcomeOfValue(rec.Transcript))
	if err != nil {
		log.WithField("source", SourceTranscript).WithError(err).Debug("Source unavailable")
	}

	return rec, nil
}

// fetch queries src and turns a panic inside it into an error.
func fetch[T any](ctx context.Context, src Source[T], key string) (v T, err error) {
	if src == nil {
		return v, errNoSource
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("source panicked: %v", r)
		}
	}()
	return src.Fetch(ctx, key)
}

func textOrAbsent(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Absent()
	}
	return Text(s)
}

func countOrAbsent(n *int64) Value {
	if n == nil {
		return Absent()
	}
	return Count(*n)
}

func durationValue(code string) Value {
	if code == "" {
		return Absent()
	}
	secs, err := youtube.ParseDuration(code)
	if err != nil {
		return Failed(err)
	}
	return Seconds(secs)
}

func commentsValue(comments []string, err error) Value {
	if err != nil {
		return Failed(err).WithPlaceholder(CommentsUnavailable)
	}
	cleaned := make([]string, 0, len(comments))
	for _, c := range comments {
		if c = sanitize.StripTags(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		return Absent().WithPlaceholder(CommentsUnavailable)
	}
	return Text(strings.Join(cleaned, "\n"))
}

func transcriptValue(text string, err error) Value {
	if err != nil {
		return Failed(err).WithPlaceholder(TranscriptUnavailable)
	}
	if strings.TrimSpace(text) == "" {
		return Absent().WithPlaceholder(TranscriptUnavailable)
	}
	return Text(text)
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeFailed
	}
	return OutcomeOK
}

func outcomeOfValue(v Value) string {
	switch v.Reason {
	case ReasonAbsent:
		return OutcomeAbsent
	case ReasonFailed:
		return OutcomeFailed
	default:
		return OutcomeOK
	}
}
