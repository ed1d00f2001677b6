package http

import (
	"context"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/quality"
	"github.com/VettaLabs/ThesisGate/pkg/engine"
	"github.com/gofiber/fiber/v2"
)

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

// Moderator runs the phase-one pipeline for a raw submission.
//
//go:generate mockery --name=Moderator --dir=. --output=./mocks --filename=moderator_mock.go --case=underscore --with-expecter
type Moderator interface {
	Moderate(ctx context.Context, text string) (*engine.Moderation, error)
}

// Scorer grades a document that already passed moderation.
//
//go:generate mockery --name=Scorer --dir=. --output=./mocks --filename=scorer_mock.go --case=underscore --with-expecter
type Scorer interface {
	Score(ctx context.Context, doc *content.Document) (*quality.Report, error)
}

// TemplateIndex is the lazily built scam-template vector index. A nil
// index means the semantic producer is disabled.
type TemplateIndex interface {
	Warmup(ctx context.Context) error
	Ready() bool
}

// Pinger reports connectivity of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerTransport struct {
	// Pipeline
	ModerationHandler Handler
	AnalysisHandler   Handler

	// Manual review
	CreateReviewHandler Handler
	ListReviewsHandler  Handler

	// Operational
	HealthHandler  Handler
	WarmupHandler  Handler
	VersionHandler Handler
}
