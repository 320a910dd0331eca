// Package report turns annotations into physician-facing counseling
// reports via an OpenAI-compatible completion API, with a persistent
// response cache so identical annotations never hit the API twice.
package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/haneul-health/lipidlens/internal/clientdata"
	"github.com/haneul-health/lipidlens/internal/clients/openai"
	"github.com/haneul-health/lipidlens/internal/modules/annotate"
)

// ErrDisabled is returned when no API key is configured. Handlers map it
// to 503 so the rest of the service keeps working without the LLM.
var ErrDisabled = errors.New("report generation is not configured")

// Report is the generated counseling report with its provenance.
type Report struct {
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"created_at"`
}

// Service generates counseling reports from annotations.
type Service struct {
	client  *openai.Client
	cache   *clientdata.Repository
	ttl     time.Duration
	enabled bool
	log     zerolog.Logger
}

// NewService creates the report service. A nil client or empty API key
// leaves the service disabled; cache may be nil to skip caching.
func NewService(client *openai.Client, enabled bool, cache *clientdata.Repository, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{
		client:  client,
		cache:   cache,
		ttl:     ttl,
		enabled: enabled && client != nil,
		log:     log.With().Str("service", "report").Logger(),
	}
}

// Enabled reports whether report generation is configured.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Generate produces a counseling report for the annotation, serving from
// cache when a fresh entry exists. The cache key is a digest of the
// assembled prompt, so any change to the annotation or to the prompt
// templates invalidates naturally.
func (s *Service) Generate(ctx context.Context, a annotate.Annotation) (Report, error) {
	if !s.enabled {
		return Report{}, ErrDisabled
	}

	prompt := BuildPrompt(a)
	key := cacheKey(prompt)

	if s.cache != nil {
		var cached Report
		hit, err := s.cache.GetIfFresh(key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("Report cache read failed")
		} else if hit {
			cached.Cached = true
			return cached, nil
		}
	}

	text, err := s.client.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Text:      text,
		Model:     s.client.Model(),
		CreatedAt: time.Now().UTC(),
	}

	if s.cache != nil {
		if err := s.cache.Store(key, rep, s.ttl); err != nil {
			s.log.Warn().Err(err).Msg("Report cache write failed")
		}
	}

	s.log.Info().
		Str("trace_id", a.TraceID).
		Str("model", rep.Model).
		Msg("Counseling report generated")

	return rep, nil
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "report:" + hex.EncodeToString(sum[:])
}
