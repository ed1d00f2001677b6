package audit

import (
	"context"
)

//go:generate mockery --name=Exporter --dir=. --output=./mocks --filename=audit_exporter_mock.go --case=underscore

type Exporter interface {
	Name() string
	ValidateConfig(settings map[string]interface{}) error
	WithSettings(settings map[string]interface{}) (Exporter, error)
	Handle(ctx context.Context, evt *Event) error
	Close()
}
