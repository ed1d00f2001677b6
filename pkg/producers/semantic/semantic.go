package semantic

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/VettaLabs/ThesisGate/pkg/common"
	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/embedding"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/infra/cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// CategorySemanticMatch marks evidence whose pattern is the scam
// template nearest to the submission.
const CategorySemanticMatch = "scam_semantic"

const maxMatches = 5

// Producer embeds the submission and scores it against the scam template
// index. Template vectors are built once per process, backed by the
// vector cache so restarts do not re-embed the whole set.
type Producer struct {
	logger    *logrus.Logger
	cfg       *embedding.Config
	threshold float64
	creator   embedding.Creator
	repo      embedding.Repository

	group   singleflight.Group
	mu      sync.RWMutex
	vectors [][]float64
}

func NewProducer(
	cfg *embedding.Config,
	threshold float64,
	creator embedding.Creator,
	repo embedding.Repository,
	logger *logrus.Logger,
) *Producer {
	return &Producer{
		logger:    logger,
		cfg:       cfg,
		threshold: threshold,
		creator:   creator,
		repo:      repo,
	}
}

func (p *Producer) Name() string {
	return signal.Semantic
}

// Warmup builds the template index ahead of the first request so the
// first moderation call does not pay the embedding latency.
func (p *Producer) Warmup(ctx context.Context) error {
	if p.cfg == nil || !p.cfg.Enabled {
		return nil
	}
	_, err := p.templateVectors(ctx)
	return err
}

// Ready reports whether the template index has been built.
func (p *Producer) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.vectors != nil
}

func (p *Producer) Produce(ctx context.Context, doc *content.Document) (signal.Signal, error) {
	sig := signal.Signal{Name: signal.Semantic}

	if p.cfg == nil || !p.cfg.Enabled {
		return sig, domain.NewSignalUnavailableError(signal.Semantic, "disabled by configuration")
	}

	vectors, err := p.templateVectors(ctx)
	if err != nil {
		p.logger.WithError(err).Warn("scam template index unavailable")
		return sig, domain.NewSignalUnavailableError(signal.Semantic, err.Error())
	}

	emb, err := p.creator.Generate(ctx, doc.Text)
	if err != nil {
		return sig, domain.NewSignalUnavailableError(signal.Semantic, err.Error())
	}

	type match struct {
		idx int
		sim float64
	}
	var above []match
	maxSim := 0.0
	for i, vec := range vectors {
		sim := cosine(emb.Value, vec)
		if sim > maxSim {
			maxSim = sim
		}
		if sim >= p.threshold {
			above = append(above, match{idx: i, sim: sim})
		}
	}

	sort.SliceStable(above, func(i, j int) bool { return above[i].sim > above[j].sim })
	if len(above) > maxMatches {
		above = above[:maxMatches]
	}
	for _, m := range above {
		sig.Evidence = append(sig.Evidence, signal.Evidence{
			Category: CategorySemanticMatch,
			Pattern:  scamTemplates[m.idx],
			Score:    m.sim,
		})
	}

	sig.Score = p.scale(maxSim)

	// Semantic matches have no anchored span; context flags anywhere in
	// the document apply to the whole signal.
	if doc.Annotations.Available {
		sig.Flags = doc.Annotations.FlagsAt(0, len(doc.Text))
	}

	return sig, nil
}

// scale maps the best cosine similarity into [0,1]: matches at or above
// the threshold span 0.5..1.0 linearly, sub-threshold similarity decays
// quadratically so ordinary finance talk stays near zero.
func (p *Producer) scale(maxSim float64) float64 {
	if maxSim >= p.threshold {
		spread := 1 - p.threshold
		if spread <= 0 {
			return 1.0
		}
		return 0.5 + (maxSim-p.threshold)/spread*0.5
	}
	if p.threshold <= 0 {
		return 0.0
	}
	ratio := maxSim / p.threshold
	return ratio * ratio * 0.5
}

func (p *Producer) templateVectors(ctx context.Context) ([][]float64, error) {
	p.mu.RLock()
	if p.vectors != nil {
		defer p.mu.RUnlock()
		return p.vectors, nil
	}
	p.mu.RUnlock()

	v, err, _ := p.group.Do(common.ScamTemplateIndexName, func() (interface{}, error) {
		p.mu.RLock()
		if p.vectors != nil {
			defer p.mu.RUnlock()
			return p.vectors, nil
		}
		p.mu.RUnlock()

		vectors := make([][]float64, 0, len(scamTemplates))
		for _, tpl := range scamTemplates {
			vec, err := p.templateVector(ctx, tpl)
			if err != nil {
				return nil, err
			}
			vectors = append(vectors, vec)
		}

		p.mu.Lock()
		p.vectors = vectors
		p.mu.Unlock()
		return vectors, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([][]float64), nil
}

func (p *Producer) templateVector(ctx context.Context, template string) ([]float64, error) {
	key := fmt.Sprintf(cache.TemplateVectorKeyPattern, p.cfg.Model, hashTemplate(template))

	cached, err := p.repo.Get(ctx, key)
	if err != nil {
		p.logger.WithError(err).Debug("template vector cache read failed")
	}
	if cached != nil && len(cached.Value) > 0 {
		return cached.Value, nil
	}

	emb, err := p.creator.Generate(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("embedding scam template: %w", err)
	}
	emb.EntityID = hashTemplate(template)
	if err := p.repo.Store(ctx, key, emb, common.TemplateVectorCacheTTL); err != nil {
		p.logger.WithError(err).Debug("template vector cache write failed")
	}
	return emb.Value, nil
}

func hashTemplate(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}

func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
