// Package api exposes the scheduling engine over HTTP with fiber and reports
// liveness over the standard gRPC health protocol.
package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Barritosaurus/cpusched/internal/scheduler"
	"github.com/Barritosaurus/cpusched/internal/stats"
	"github.com/Barritosaurus/cpusched/internal/telemetry"
	"github.com/Barritosaurus/cpusched/pkg/types"
)

// ScheduleRequest is the body accepted by both scheduling endpoints. A nil
// Quantum falls back to the server default.
type ScheduleRequest struct {
	Processes []types.Process `json:"processes"`
	Quantum   *int64          `json:"quantum,omitempty"`
}

// ScheduleResponse is the body returned for a single-algorithm run.
type ScheduleResponse struct {
	Result  types.Result  `json:"result"`
	Summary stats.Summary `json:"summary"`
}

type SchedulerHandler interface {
	Schedule(ctx *fiber.Ctx) error
	Compare(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	metrics *telemetry.Collector
	quantum int64
}

// NewSchedulerHandlerImpl returns handlers that record into metrics and use
// quantum when a request does not carry one.
func NewSchedulerHandlerImpl(metrics *telemetry.Collector, quantum int64) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{metrics: metrics, quantum: quantum}
}

func (s *SchedulerHandlerImpl) parse(ctx *fiber.Ctx) (ScheduleRequest, int64, error) {
	var request ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return request, 0, err
	}
	quantum := s.quantum
	if request.Quantum != nil {
		quantum = *request.Quantum
	}
	return request, quantum, nil
}

func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	alg, err := types.ParseAlgorithm(ctx.Params("algorithm"))
	if err != nil {
		return fail(ctx, err)
	}
	request, quantum, err := s.parse(ctx)
	if err != nil {
		return badRequest(ctx)
	}

	start := time.Now()
	result, err := scheduler.Run(alg, request.Processes, scheduler.Options{Quantum: quantum})
	if err != nil {
		s.metrics.ObserveFailure(alg, err)
		return fail(ctx, err)
	}
	summary, err := stats.Summarize(request.Processes, result)
	if err != nil {
		s.metrics.ObserveFailure(alg, err)
		return fail(ctx, err)
	}
	s.metrics.ObserveRun(alg, summary, time.Since(start))

	return ctx.JSON(ScheduleResponse{Result: result, Summary: summary})
}

func (s *SchedulerHandlerImpl) Compare(ctx *fiber.Ctx) error {
	request, quantum, err := s.parse(ctx)
	if err != nil {
		return badRequest(ctx)
	}

	start := time.Now()
	cmp, err := scheduler.Compare(request.Processes, quantum)
	if err != nil {
		s.metrics.ObserveComparisonFailure(err)
		return fail(ctx, err)
	}
	s.metrics.ObserveComparison(cmp, time.Since(start))

	return ctx.JSON(cmp)
}

func badRequest(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
}

func fail(ctx *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	if field := types.FieldOf(err); field != "" {
		body["field"] = field
	}
	return ctx.Status(statusOf(err)).JSON(body)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, types.ErrMissingField):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, types.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, types.ErrUnknownAlgorithm):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
