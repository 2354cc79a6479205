package vision

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"go-deskpilot/pkg/logger"
	"go-deskpilot/pkg/models"
)

// OCRClient recognizes text on a frame, optionally restricted to regions.
type OCRClient interface {
	Recognize(ctx context.Context, shot *models.Screenshot, regions []models.Box) ([]models.TextBox, error)
}

// Detector locates and labels interface elements on a frame. It may be
// entirely absent.
type Detector interface {
	Detect(ctx context.Context, shot *models.Screenshot) ([]models.UIElement, error)
}

// Service fronts the external recognition runtimes with a shared cache and a
// bounded worker pool. Recognition calls run under a time budget; a call that
// exceeds it is abandoned and recorded as a degraded (empty) observation so
// the pipeline never blocks on perception.
type Service struct {
	cache    *Cache
	ocr      OCRClient
	detector Detector
	workers  *semaphore.Weighted
	timeout  time.Duration
}

func NewService(cache *Cache, ocr OCRClient, detector Detector, poolSize int64, timeout time.Duration) *Service {
	if poolSize <= 0 {
		poolSize = 2
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		cache:    cache,
		ocr:      ocr,
		detector: detector,
		workers:  semaphore.NewWeighted(poolSize),
		timeout:  timeout,
	}
}

// Perceive returns the observation for a frame restricted to the given
// regions (nil means full frame), consulting the cache first.
func (s *Service) Perceive(ctx context.Context, shot *models.Screenshot, regions []models.Box) models.Perception {
	if shot == nil {
		return models.Perception{Degraded: true}
	}
	l := log.With().Str(logger.ComponentField, "perception").Logger()

	key := KeyFor(shot, regions)
	if p, ok := s.cache.Get(key); ok {
		l.Debug().Str("image", shot.ID).Msg("cache hit")
		return p
	}

	p := s.observe(ctx, shot, regions)
	s.cache.Put(key, p)
	return p
}

func (s *Service) observe(ctx context.Context, shot *models.Screenshot, regions []models.Box) models.Perception {
	l := log.With().Str(logger.ComponentField, "perception").Str("image", shot.ID).Logger()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		p        models.Perception
		degraded bool
	)

	run := func(name string, fn func(context.Context) error) {
		defer wg.Done()
		if err := s.workers.Acquire(ctx, 1); err != nil {
			mu.Lock()
			degraded = true
			mu.Unlock()
			l.Warn().Err(err).Str("call", name).Msg("perception pool wait exceeded budget")
			return
		}
		defer s.workers.Release(1)
		if err := fn(ctx); err != nil {
			mu.Lock()
			degraded = true
			mu.Unlock()
			l.Warn().Err(err).Str("call", name).Msg("perception call failed")
		}
	}

	if s.ocr != nil {
		wg.Add(1)
		go run("ocr", func(ctx context.Context) error {
			texts, err := s.ocr.Recognize(ctx, shot, regions)
			if err != nil {
				return err
			}
			mu.Lock()
			p.Texts = texts
			mu.Unlock()
			return nil
		})
	}
	if s.detector != nil {
		wg.Add(1)
		go run("detect", func(ctx context.Context) error {
			elements, err := s.detector.Detect(ctx, shot)
			if err != nil {
				return err
			}
			mu.Lock()
			p.Elements = elements
			mu.Unlock()
			return nil
		})
	}
	wg.Wait()

	p.Degraded = degraded
	return p
}
