package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/toyz/autoinject/internal/models"
	"github.com/toyz/autoinject/internal/program"
)

// GenerationFailedMessage prefixes the message of the AUTODI01 diagnostic
const GenerationFailedMessage = "failed to generate injection code"

// SafeAggregate runs Aggregate and converts any error or panic into a single
// AUTODI01 diagnostic. A partial aggregation is never returned alongside it.
// Cancellation is not a failure and comes back as err.
func (g *Generator) SafeAggregate(ctx context.Context, prog *program.Program, set *models.TargetSet) (agg *Aggregation, diag *models.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			d := failure(fmt.Errorf("panic: %v", r))
			agg, diag, err = nil, &d, nil
		}
	}()

	agg, err = g.Aggregate(ctx, prog, set)
	if err == nil {
		return agg, nil, nil
	}
	if isCancellation(err) {
		return nil, nil, err
	}

	d := failure(err)
	return nil, &d, nil
}

// failure builds the diagnostic reported for a failed aggregation
func failure(cause error) models.Diagnostic {
	return models.Diagnostic{
		Code:     models.CodeGenerationFailed,
		Severity: models.SeverityError,
		Message:  fmt.Sprintf("%s: %v", GenerationFailedMessage, cause),
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
