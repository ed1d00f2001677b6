package audit

import (
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/audit"
)

// ExporterLocatorOption is a function that configures an ExporterLocator
type ExporterLocatorOption func(*ExporterLocator)

// WithExporter registers an exporter with the given name
func WithExporter(name string, exporter audit.Exporter) ExporterLocatorOption {
	return func(el *ExporterLocator) {
		if el.exporters == nil {
			el.exporters = make(map[string]audit.Exporter)
		}
		el.exporters[name] = exporter
	}
}

type ExporterLocator struct {
	exporters map[string]audit.Exporter
}

func NewExporterLocator(opts ...ExporterLocatorOption) *ExporterLocator {
	el := &ExporterLocator{
		exporters: make(map[string]audit.Exporter),
	}
	for _, opt := range opts {
		opt(el)
	}
	return el
}

// GetExporter validates the settings and returns a configured exporter
// for the given name.
func (p *ExporterLocator) GetExporter(name string, settings map[string]interface{}) (audit.Exporter, error) {
	base, ok := p.exporters[name]
	if !ok {
		return nil, fmt.Errorf("unknown exporter: %s", name)
	}
	if err := base.ValidateConfig(settings); err != nil {
		return nil, err
	}
	exporter, err := base.WithSettings(settings)
	if err != nil {
		return nil, err
	}
	return exporter, nil
}
