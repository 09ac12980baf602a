// Package removal strips the background from a garment image through a
// prioritized chain of external providers. The orchestrator is defined never
// to fail: when every provider is exhausted the original image is returned
// unmodified and the caller only loses quality, not functionality.
package removal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/rs/zerolog/log"
)

// ErrProviderFailed is the base error for provider attempts that did not
// produce an image. It never escapes the orchestrator.
var ErrProviderFailed = errors.New("background removal provider failed")

// Provider is one background removal backend. Attempt either returns the
// processed image bytes or an error; the orchestrator treats every provider
// through this contract regardless of its wire format.
type Provider interface {
	Name() string
	Attempt(ctx context.Context, imageData []byte) ([]byte, error)
}

// Cache stores successful removal results keyed by source image content
// hash. Get returns nil, nil on a miss.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, image []byte) error
}

// Result is the outcome of a removal request. Success is always true;
// UsedFallback reports that the image is the unprocessed original.
type Result struct {
	Image        []byte
	Success      bool
	UsedFallback bool
}

// Orchestrator runs the provider fallback chain with caching.
type Orchestrator struct {
	providers []Provider
	cache     Cache
}

// NewOrchestrator creates an orchestrator that tries providers in the given
// order. cache may be nil to disable caching.
func NewOrchestrator(cache Cache, providers ...Provider) *Orchestrator {
	return &Orchestrator{providers: providers, cache: cache}
}

// hashImage derives the cache key from the image content.
func hashImage(imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return hex.EncodeToString(sum[:])
}

// RemoveBackground returns imageData with its background removed when any
// provider succeeds, or the original bytes otherwise. Provider errors are
// absorbed: each failure only advances the chain. Successful results are
// cached by content hash before returning.
func (o *Orchestrator) RemoveBackground(ctx context.Context, imageData []byte) Result {
	key := hashImage(imageData)

	if o.cache != nil {
		cached, err := o.cache.Get(key)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check removal cache")
		} else if cached != nil {
			log.Debug().Str("hash", key[:16]).Msg("removal cache hit")
			return Result{Image: cached, Success: true}
		}
	}

	for _, p := range o.providers {
		if ctx.Err() != nil {
			break
		}
		out, err := p.Attempt(ctx, imageData)
		if err != nil || len(out) == 0 {
			if err == nil {
				err = ErrProviderFailed
			}
			log.Warn().Err(err).Str("provider", p.Name()).Msg("removal provider failed, trying next")
			continue
		}

		if o.cache != nil {
			if err := o.cache.Set(key, out); err != nil {
				log.Warn().Err(err).Msg("failed to cache removal result")
			}
		}
		log.Info().Str("provider", p.Name()).Msg("background removed")
		return Result{Image: out, Success: true}
	}

	log.Warn().Int("providers", len(o.providers)).Msg("all removal providers failed, returning original image")
	return Result{Image: imageData, Success: true, UsedFallback: true}
}
