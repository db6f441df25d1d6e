// internal/classify/classifier.go

// Package classify buckets free-text field descriptions into one of a fixed
// set of broad academic domains. The domain acts as a hard gate in the match
// scorer before any fine-grained similarity scoring.
package classify

import (
	"context"
	"strings"
	"sync"

	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/embedding"
	"github.com/sana-bil/Smart-Scholar/internal/normalize"
)

const (
	DomainEngineering = "Engineering & Technology"
	DomainHumanities  = "Humanities & Social Sciences"

	// DefaultDomain is substituted for empty input and on any classification
	// failure. Classification never raises to the caller.
	DefaultDomain = DomainEngineering
)

// Domains is the fixed ordered list of broad academic domains.
var Domains = []string{
	"Engineering & Technology",
	"Law & Governance",
	"Mathematics & Statistics",
	"Psychology & Cognitive Science",
	"Biology & Life Sciences",
	"Physics & Physical Sciences",
	"Business & Economics",
	"Humanities & Social Sciences",
	"Medicine & Health",
	"Environmental Science",
}

// Keyword shortcuts checked before the embedding fallback, in order.
var (
	techKeywords       = []string{"ai", "machine learning", "data science", "analytics", "software", "computer"}
	humanitiesKeywords = []string{"art", "design", "creative", "culture", "humanities"}
)

// Classifier maps cleaned field text to a domain label. The embedding
// provider handle and the domain label vectors are shared read-only across
// all scoring calls in the session.
type Classifier struct {
	embedder embedding.Provider
	logger   logger.Logger

	mu         sync.Mutex
	domainVecs [][]float32
}

// NewClassifier creates a Classifier backed by the given embedding provider.
func NewClassifier(embedder embedding.Provider, log logger.Logger) *Classifier {
	return &Classifier{
		embedder: embedder,
		logger:   log.WithFields(map[string]interface{}{"component": "classifier"}),
	}
}

// Infer buckets text into exactly one domain label. Order of resolution:
// empty input → default; keyword shortcuts; embedding argmax over the ten
// domain labels. Any embedding failure falls back to the default domain.
func (c *Classifier) Infer(ctx context.Context, text string) string {
	text = normalize.Clean(text)
	if text == "" {
		return DefaultDomain
	}

	low := strings.ToLower(text)
	for _, k := range techKeywords {
		if strings.Contains(low, k) {
			return DomainEngineering
		}
	}
	for _, k := range humanitiesKeywords {
		if strings.Contains(low, k) {
			return DomainHumanities
		}
	}

	textVec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		c.logger.Warn("embedding failed, falling back to default domain", map[string]interface{}{
			"text":  text,
			"error": err.Error(),
		})
		return DefaultDomain
	}

	domainVecs, err := c.domainVectors(ctx)
	if err != nil {
		c.logger.Warn("domain label embedding failed, falling back to default domain", map[string]interface{}{
			"error": err.Error(),
		})
		return DefaultDomain
	}

	best := 0
	bestSim := embedding.Cosine(textVec, domainVecs[0])
	for i := 1; i < len(domainVecs); i++ {
		if sim := embedding.Cosine(textVec, domainVecs[i]); sim > bestSim {
			bestSim = sim
			best = i
		}
	}
	return Domains[best]
}

// domainVectors embeds the ten domain labels once and reuses the vectors for
// the rest of the process lifetime.
func (c *Classifier) domainVectors(ctx context.Context) ([][]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.domainVecs != nil {
		return c.domainVecs, nil
	}

	vecs := make([][]float32, 0, len(Domains))
	for _, d := range Domains {
		vec, err := c.embedder.Embed(ctx, d)
		if err != nil {
			return nil, err
		}
		vecs = append(vecs, vec)
	}
	c.domainVecs = vecs
	return vecs, nil
}
