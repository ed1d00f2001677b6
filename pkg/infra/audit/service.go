package audit

import (
	"context"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/domain/audit"
	"github.com/VettaLabs/ThesisGate/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const exportTimeout = 3 * time.Second

type Service interface {
	Emit(c *fiber.Ctx, event audit.Event)
	Close()
}

type service struct {
	enabled  bool
	logger   *logrus.Logger
	exporter audit.Exporter
}

func NewService(exporter audit.Exporter, logger *logrus.Logger, enabled bool) Service {
	return &service{
		enabled:  enabled,
		logger:   logger,
		exporter: exporter,
	}
}

// Emit stamps and exports one decision event. The export runs detached,
// so a slow broker never delays the response. Request state is read
// before detaching because fiber recycles its contexts.
func (s *service) Emit(c *fiber.Ctx, event audit.Event) {
	if !s.enabled || s.exporter == nil {
		return
	}

	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()
	if info := utils.ParseUserAgent(c.Get("User-Agent"), c.Get("Accept-Language")); info != nil {
		event.DeviceClass = info.Device
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		if err := s.exporter.Handle(ctx, &event); err != nil {
			s.logger.WithError(err).Warn("failed to export audit event")
		}
	}()
}

func (s *service) Close() {
	if s.exporter != nil {
		s.exporter.Close()
	}
}
