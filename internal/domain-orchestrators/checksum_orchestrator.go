package orchestrators

import (
	"context"
	"fmt"
	"strings"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces"
)

// ChangeDetector plans and saves baselines for a business operation
type ChangeDetector interface {
	Plan(ctx context.Context, operation string, inputs []string, mode entities.ChecksumMode) (*entities.PlanResult, error)
	Save(ctx context.Context, operation string, inputs []string, mode entities.ChecksumMode) (*entities.PlanResult, error)
}

// ChecksumOrchestrator runs the plan and save use cases
type ChecksumOrchestrator struct {
	detector ChangeDetector
	logger   interfaces.Logger
}

// NewChecksumOrchestrator creates a new checksum orchestrator
func NewChecksumOrchestrator(detector ChangeDetector, logger interfaces.Logger) *ChecksumOrchestrator {
	return &ChecksumOrchestrator{detector: detector, logger: logger.Named("checksum")}
}

// ChecksumRequest names the operation and inputs of a plan or save
type ChecksumRequest struct {
	Operation string
	Inputs    []string
	Mode      entities.ChecksumMode
}

func (r ChecksumRequest) validate() error {
	if strings.TrimSpace(r.Operation) == "" {
		return fmt.Errorf("%w: operation name is required", entities.ErrInvocation)
	}
	if len(r.Inputs) == 0 {
		return fmt.Errorf("%w: at least one input path is required", entities.ErrInvocation)
	}
	if r.Mode != entities.ModeAggregate && r.Mode != entities.ModeDetailed {
		return fmt.Errorf("%w: unknown checksum mode %q", entities.ErrInvocation, r.Mode)
	}
	return nil
}

// Plan reports changes since the stored baseline
func (o *ChecksumOrchestrator) Plan(ctx context.Context, req ChecksumRequest) (*entities.PlanResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	result, err := o.detector.Plan(ctx, req.Operation, req.Inputs, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to plan %s: %w", req.Operation, err)
	}
	o.logger.Info("plan computed",
		interfaces.F("operation", req.Operation),
		interfaces.F("mode", req.Mode),
		interfaces.F("changed", result.Changed))
	return result, nil
}

// Save replaces the stored baseline and reports the plan it superseded
func (o *ChecksumOrchestrator) Save(ctx context.Context, req ChecksumRequest) (*entities.PlanResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	result, err := o.detector.Save(ctx, req.Operation, req.Inputs, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", req.Operation, err)
	}
	return result, nil
}

// FormatPlan renders a plan result as the single line downstream automation parses
func FormatPlan(result *entities.PlanResult) string {
	var body string
	if result.Mode == entities.ModeDetailed {
		body = strings.Join(result.Paths, ",")
	} else {
		body = fmt.Sprintf("%t", result.Changed)
	}
	return "PlanCommandExecutionStart " + body + " PlanCommandExecutionEnd"
}
