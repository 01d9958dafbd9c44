package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dasindu02/diapredict-main/internal/application/dto"
	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/internal/domain/port"
	"github.com/Dasindu02/diapredict-main/internal/domain/service"
)

const instrumentationName = "github.com/Dasindu02/diapredict-main/internal/application/usecase"

// PredictRisk is the use case for scoring a survey record.
type PredictRisk struct {
	encoder   *service.FeatureEncoder
	predictor port.Predictor
	repo      port.PredictionRepository
	publisher port.EventPublisher
	logger    *slog.Logger

	predictions       metric.Int64Counter
	failures          metric.Int64Counter
	sideEffectErrors  metric.Int64Counter
	inferenceDuration metric.Float64Histogram
}

// NewPredictRisk creates a new PredictRisk use case and registers its
// instruments on meter.
func NewPredictRisk(
	encoder *service.FeatureEncoder,
	predictor port.Predictor,
	repo port.PredictionRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
	meter metric.Meter,
) (*PredictRisk, error) {
	uc := &PredictRisk{
		encoder:   encoder,
		predictor: predictor,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}

	var err error
	uc.predictions, err = meter.Int64Counter("risk_predictions_total",
		metric.WithDescription("Completed predictions by risk tier"))
	if err != nil {
		return nil, fmt.Errorf("failed to create predictions counter: %w", err)
	}
	uc.failures, err = meter.Int64Counter("risk_prediction_failures_total",
		metric.WithDescription("Failed predictions by stage"))
	if err != nil {
		return nil, fmt.Errorf("failed to create failures counter: %w", err)
	}
	uc.sideEffectErrors, err = meter.Int64Counter("risk_side_effect_failures_total",
		metric.WithDescription("Audit or event publication failures that did not fail the request"))
	if err != nil {
		return nil, fmt.Errorf("failed to create side effect counter: %w", err)
	}
	uc.inferenceDuration, err = meter.Float64Histogram("risk_inference_duration_seconds",
		metric.WithDescription("Time spent in the classifier"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference histogram: %w", err)
	}

	return uc, nil
}

// Execute encodes the survey, runs the classifier, maps the label to a tier,
// then records and announces the prediction. Saving and publishing never fail
// the request.
func (uc *PredictRisk) Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictionResponse, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "PredictRisk.Execute")
	defer span.End()

	// 1. Encode the survey into the model's feature vector.
	features, err := uc.encoder.Encode(req.Survey)
	if err != nil {
		uc.fail(ctx, span, "encode", err)
		return dto.PredictionResponse{}, err
	}

	// 2. Run inference.
	start := time.Now()
	label, err := uc.predictor.Predict(ctx, features)
	uc.inferenceDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		uc.fail(ctx, span, "predict", err)
		return dto.PredictionResponse{}, fmt.Errorf("inference failed: %w", err)
	}

	// 3. Build the aggregate, which maps the label to a tier.
	prediction, err := model.NewPrediction(features, label)
	if err != nil {
		uc.fail(ctx, span, "record", err)
		return dto.PredictionResponse{}, fmt.Errorf("failed to create prediction: %w", err)
	}

	tier := prediction.Tier().String()
	span.SetAttributes(
		attribute.String("prediction.id", prediction.ID().String()),
		attribute.Int("prediction.risk_level", label),
		attribute.String("prediction.risk_text", tier),
	)
	uc.predictions.Add(ctx, 1, metric.WithAttributes(attribute.String("tier", tier)))

	uc.logger.InfoContext(ctx, "prediction completed",
		"prediction_id", prediction.ID(),
		"risk_level", label,
		"risk_text", tier,
	)

	// 4. Persist the audit record.
	if err := uc.repo.Save(ctx, prediction); err != nil {
		uc.sideEffectFailed(ctx, "save", err)
	}

	// 5. Publish domain events.
	evts := prediction.DomainEvents()
	if len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.sideEffectFailed(ctx, "publish", err)
		}
	}

	return dto.FromModel(prediction), nil
}

func (uc *PredictRisk) fail(ctx context.Context, span trace.Span, stage string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, stage+" failed")
	uc.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

func (uc *PredictRisk) sideEffectFailed(ctx context.Context, kind string, err error) {
	uc.sideEffectErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	uc.logger.WarnContext(ctx, "prediction side effect failed",
		"kind", kind,
		"error", err,
	)
}
