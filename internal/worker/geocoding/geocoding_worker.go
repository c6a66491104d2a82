package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/radiomap-service/internal/domain"
	"github.com/radiomap-service/internal/domain/repository"
	"github.com/radiomap-service/internal/worker"
	"go.uber.org/zap"
)

const (
	// jobBatchSize - прогоны геокодирования тяжёлые, берём по одной задаче
	jobBatchSize    = 1
	emptyQueueSleep = time.Second
	errorSleep      = 5 * time.Second
)

// PipelineRunner запускает прогон пайплайна геокодирования
type PipelineRunner interface {
	Run(ctx context.Context, limit int) (*domain.GeocodeRunReport, error)
}

// GeocodingWorker обрабатывает задачи батч-геокодирования из Redis Stream
type GeocodingWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	pipeline     PipelineRunner
	consumerName string
}

// NewGeocodingWorker создает новый GeocodingWorker
func NewGeocodingWorker(
	streamRepo repository.StreamRepository,
	pipeline PipelineRunner,
	consumerGroup string,
	logger *zap.Logger,
) *GeocodingWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &GeocodingWorker{
		BaseWorker:   worker.NewBaseWorker("geocoding", consumerGroup, logger),
		streamRepo:   streamRepo,
		pipeline:     pipeline,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *GeocodingWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting GeocodingWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamGeocodeJobs, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processNext(ctx)
			if err != nil {
				logger.Error("Failed to process job", zap.Error(err))
				time.Sleep(errorSleep)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processNext читает и обрабатывает очередную задачу.
// Возвращает количество обработанных сообщений.
func (w *GeocodingWorker) processNext(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamGeocodeJobs,
		w.ConsumerGroup(),
		w.consumerName,
		jobBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamGeocodeJobs, w.ConsumerGroup(), msg.ID)
			continue
		}

		w.runJob(ctx, event)

		if err := w.streamRepo.AckMessage(ctx, domain.StreamGeocodeJobs, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

// runJob выполняет прогон пайплайна и публикует итоговое событие
func (w *GeocodingWorker) runJob(ctx context.Context, event *domain.GeocodeJobEvent) {
	logger := w.Logger()
	logger.Info("Processing geocoding job",
		zap.String("job_id", event.JobID.String()),
		zap.Int("limit", event.Limit))

	started := time.Now()
	report, err := w.pipeline.Run(ctx, event.Limit)

	done := domain.GeocodeDoneEvent{
		JobID:    event.JobID,
		Duration: time.Since(started).Seconds(),
	}
	if err != nil {
		done.Error = err.Error()
		logger.Error("Geocoding job failed",
			zap.String("job_id", event.JobID.String()),
			zap.Error(err))
	} else {
		done.Report = *report
		logger.Info("Geocoding job finished",
			zap.String("job_id", event.JobID.String()),
			zap.Int("processed", report.Processed),
			zap.Int("geocoded", report.Geocoded),
			zap.Int("failed", report.Failed),
			zap.Int("skipped", report.Skipped),
			zap.Int("api_calls", report.APICalls))
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamGeocodeDone, done); err != nil {
		logger.Error("Failed to publish done event",
			zap.String("job_id", event.JobID.String()),
			zap.Error(err))
	}
}

// parseMessage парсит событие из сообщения стрима
func (w *GeocodingWorker) parseMessage(msg domain.StreamMessage) (*domain.GeocodeJobEvent, error) {
	var event domain.GeocodeJobEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
