// Package service wires the sampling, estimation, classification and
// ranking components into the two operations callers actually use:
// Analyze and Recommend.
package service

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/TaddsTechnology/Ai-Fashion/internal/config"
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/classify"
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/confidence"
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/estimate"
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/ranking"
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/sampler"
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/tone"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/logger"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/metrics"
)

// ErrNilImage is returned when Analyze is called without an image.
var ErrNilImage = errors.New("analyze: nil image")

// AnalyzeRequest carries one face image and, optionally, its face mesh
// landmarks already scaled to the image coordinate space.
type AnalyzeRequest struct {
	Image     image.Image
	Landmarks []image.Point
}

// AnalyzeResult is the full outcome of one analysis.
type AnalyzeResult struct {
	RequestID  string
	Tone       tone.Category
	Color      colorspace.RGB
	Hex        string
	Confidence float64
	Method     classify.Method
	Reason     classify.Reason
	Samples    []sampler.Sample
}

// Service runs the analysis and recommendation pipelines. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	sampler    *sampler.Sampler
	estimator  *estimate.Estimator
	classifier *classify.Classifier
	scorer     *confidence.Scorer
	ranker     *ranking.Ranker

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSampler replaces the default sampler.
func WithSampler(sm *sampler.Sampler) Option {
	return func(s *Service) {
		if sm != nil {
			s.sampler = sm
		}
	}
}

// New constructs a Service from a validated Config.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	scale, err := cfg.Scale()
	if err != nil {
		return nil, err
	}
	profiles, defaultProfile, err := cfg.Profiles()
	if err != nil {
		return nil, err
	}
	occasions, contrast, err := cfg.Tables()
	if err != nil {
		return nil, err
	}

	s := &Service{
		sampler:    sampler.New(sampler.WithWhiteBalance(cfg.Sampler.WhiteBalance)),
		estimator:  estimate.New(),
		classifier: classify.New(scale),
		scorer:     confidence.New(),
		ranker: ranking.New(
			ranking.WithProfiles(profiles, defaultProfile),
			ranking.WithOccasionTable(occasions),
			ranking.WithContrastTable(contrast),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s, nil
}

// Analyze runs the full pipeline: sample face regions, estimate the
// underlying skin color, classify it on the tone scale, and score the
// overall confidence. It never fails on image content; only a missing
// image or a cancelled context yields an error.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResult, error) {
	if req.Image == nil {
		return AnalyzeResult{}, ErrNilImage
	}
	if err := ctx.Err(); err != nil {
		return AnalyzeResult{}, err
	}

	start := time.Now()
	id := uuid.NewString()

	samples := s.sampler.Sample(req.Image, req.Landmarks)

	colors := make([]colorspace.RGB, len(samples))
	spreads := make([]float64, len(samples))
	for i, sm := range samples {
		colors[i] = sm.Color
		spreads[i] = confidence.ChannelSpread(sm.Color)
	}

	est := s.estimator.Estimate(colors)
	cls := s.classifier.Classify(est.Color)

	conf := s.scorer.Score(confidence.Input{
		ClusterConfidence: est.ClusterConfidence,
		RegionSpreads:     spreads,
		SharpnessVariance: confidence.Sharpness(req.Image),
		MatchDistance:     cls.MatchDistance,
		Color:             est.Color,
	})

	res := AnalyzeResult{
		RequestID:  id,
		Tone:       cls.Category,
		Color:      est.Color,
		Hex:        est.Color.Hex(),
		Confidence: conf,
		Method:     cls.Method,
		Reason:     cls.Reason,
		Samples:    samples,
	}

	elapsed := time.Since(start)
	metrics.RecordAnalysis(res.Tone.ID(), string(res.Method), conf, elapsed)
	s.logger.Info(ctx, "analysis complete",
		logger.String("requestID", id),
		logger.String("tone", res.Tone.ID()),
		logger.String("color", res.Hex),
		logger.Float64("confidence", conf),
		logger.String("method", string(res.Method)),
		logger.String("reason", string(res.Reason)),
		logger.Int("regions", len(samples)),
		logger.Duration("elapsed", elapsed),
	)
	return res, nil
}

// Recommend ranks the request's candidates against its palette and
// returns them best first.
func (s *Service) Recommend(ctx context.Context, req ranking.Request) ([]ranking.Scored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	scored := s.ranker.Rank(req)

	elapsed := time.Since(start)
	metrics.RecordRanking(len(scored), elapsed)
	s.logger.Debug(ctx, "ranking complete",
		logger.String("tone", req.Palette.ToneID),
		logger.String("occasion", req.Occasion),
		logger.Int("candidates", len(scored)),
		logger.Duration("elapsed", elapsed),
	)
	return scored, nil
}
