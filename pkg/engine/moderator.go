package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/VettaLabs/ThesisGate/pkg/gate"
	"github.com/VettaLabs/ThesisGate/pkg/infra/annotate"
	"github.com/VettaLabs/ThesisGate/pkg/infra/textnorm"
	"github.com/VettaLabs/ThesisGate/pkg/producers"
	"github.com/sirupsen/logrus"
)

// minContentLength is the shortest submission worth moderating. Anything
// below it is rejected before any signal computation runs.
const minContentLength = 10

// Moderation bundles everything one request produced: the verdict and
// result for the caller, the document and signals for the quality phase.
type Moderation struct {
	Result   moderation.Result
	Verdict  moderation.DomainVerdict
	Document *content.Document
	Signals  []signal.Signal
}

// Moderator orchestrates phase one: input validation, normalization,
// annotation, the producer fan-out and the gate/engine decision. The
// relevance producer runs first so an off-topic gate verdict skips the
// safety producers entirely.
type Moderator struct {
	cfg       config.ModerationConfig
	logger    *logrus.Logger
	annotator annotate.Annotator
	relevance producers.Producer
	safety    []producers.Producer
	gate      *gate.Gate
	engine    *Engine
}

func NewModerator(
	cfg config.ModerationConfig,
	annotator annotate.Annotator,
	relevance producers.Producer,
	safety []producers.Producer,
	logger *logrus.Logger,
) *Moderator {
	return &Moderator{
		cfg:       cfg,
		logger:    logger,
		annotator: annotator,
		relevance: relevance,
		safety:    safety,
		gate:      gate.New(cfg),
		engine:    New(cfg, logger),
	}
}

func (m *Moderator) Moderate(ctx context.Context, text string) (*Moderation, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, domain.NewInvalidInputError("content is empty")
	}
	if utf8.RuneCountInString(trimmed) < minContentLength {
		return nil, domain.NewInvalidInputError("content too short")
	}

	normalized := textnorm.Normalize(text)
	doc := &content.Document{
		Raw:      text,
		Text:     normalized.Text,
		URLs:     normalized.URLs,
		Mentions: normalized.Mentions,
	}
	doc.Annotations = m.annotator.Annotate(doc.Text)

	relevanceSig, err := m.produce(ctx, m.relevance, doc)
	if err != nil {
		return nil, err
	}

	verdict := m.gate.Evaluate(relevanceSig)
	signals := []signal.Signal{relevanceSig}

	if m.gate.ShortCircuits(verdict) {
		m.logger.WithField("relevance", verdict.RelevanceScore).
			Debug("off-topic short-circuit, skipping safety producers")
		return &Moderation{
			Result:   m.engine.Decide(signals, verdict),
			Verdict:  verdict,
			Document: doc,
			Signals:  signals,
		}, nil
	}

	safetySignals, err := m.fanOut(ctx, doc)
	if err != nil {
		return nil, err
	}
	signals = append(signals, safetySignals...)

	return &Moderation{
		Result:   m.engine.Decide(signals, verdict),
		Verdict:  verdict,
		Document: doc,
		Signals:  signals,
	}, nil
}

type produced struct {
	idx int
	sig signal.Signal
	err error
}

// fanOut runs every enabled safety producer concurrently and waits for
// all of them. Disabled or unavailable producers contribute a zero-score
// signal so the decision table stays well-defined; any other producer
// error fails the request.
func (m *Moderator) fanOut(ctx context.Context, doc *content.Document) ([]signal.Signal, error) {
	results := make(chan produced, len(m.safety))
	var wg sync.WaitGroup

	for i, p := range m.safety {
		if !m.enabled(p.Name()) {
			results <- produced{idx: i, sig: signal.Signal{Name: p.Name()}}
			continue
		}
		wg.Add(1)
		go func(idx int, p producers.Producer) {
			defer wg.Done()
			sig, err := p.Produce(ctx, doc)
			results <- produced{idx: idx, sig: sig, err: err}
		}(i, p)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	close(results)

	signals := make([]signal.Signal, len(m.safety))
	errs := make([]error, len(m.safety))
	for r := range results {
		signals[r.idx] = r.sig
		errs[r.idx] = r.err
	}
	for i, err := range errs {
		if err == nil {
			continue
		}
		if domain.IsSignalUnavailable(err) {
			m.logger.WithError(err).Debug("producer unavailable, scoring zero")
			signals[i] = signal.Signal{Name: m.safety[i].Name()}
			continue
		}
		return nil, fmt.Errorf("producing %s signal: %w", m.safety[i].Name(), err)
	}
	return signals, nil
}

func (m *Moderator) produce(ctx context.Context, p producers.Producer, doc *content.Document) (signal.Signal, error) {
	sig, err := p.Produce(ctx, doc)
	if err != nil {
		if domain.IsSignalUnavailable(err) {
			m.logger.WithError(err).Debug("producer unavailable, scoring zero")
			return signal.Signal{Name: p.Name()}, nil
		}
		return signal.Signal{}, fmt.Errorf("producing %s signal: %w", p.Name(), err)
	}
	return sig, nil
}

func (m *Moderator) enabled(name string) bool {
	switch name {
	case signal.Fuzzy:
		return m.cfg.EnableFuzzy
	case signal.Semantic:
		return m.cfg.EnableSemantic
	default:
		return true
	}
}
