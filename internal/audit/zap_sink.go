package audit

import "go.uber.org/zap"

// ZapSink writes audit events to the application log. Used when no
// database is configured.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("audit")}
}

func (s *ZapSink) Log(ev Event) error {
	fields := []zap.Field{
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
		zap.String("entity_id", ev.EntityID),
		zap.Any("metadata", ev.Metadata),
	}
	if ev.UserID != nil {
		fields = append(fields, zap.Uint("user_id", *ev.UserID))
	}

	s.log.Info("audit", fields...)
	return nil
}
