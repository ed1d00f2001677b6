package common

import "time"

const (
	TemplateVectorCacheTTL = 24 * time.Hour
	StrikeWindowDefault    = 1 * time.Hour

	RequestIDHeader = "X-Request-Id"

	ScamTemplateIndexName = "thesisgate_scam_templates"
)
