// Package events handles event emission for transfer run lifecycle changes
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Emitter publishes transfer run outcomes. A nil producer disables emission
// entirely, which is the default deployment.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitTransferFinished emits the terminal event for a transfer run. Emission
// failures are logged and swallowed; the run outcome stands either way.
func (e *Emitter) EmitTransferFinished(ctx context.Context, result *models.TransferResult) {
	if e.producer == nil {
		return
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitTransferFinished")
	defer span.End()

	event := &kafka.TransferEvent{
		EventType:   "transfer." + string(result.Status),
		RunID:       result.RunID,
		Status:      string(result.Status),
		Transferred: result.Transferred,
		Skipped:     result.Skipped,
		Failed:      result.Failed,
		DryRun:      result.DryRun,
		Duration:    result.Duration.String(),
	}

	if err := e.producer.PublishTransferEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit transfer event")
	}
}
