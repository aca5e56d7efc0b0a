package usecase

import (
	"context"

	"github.com/oseme/esusu/internal/domain"
)

// ActivityUseCase exposes the activity log for auditing.
type ActivityUseCase struct {
	activityRepo ActivityRepository
}

// NewActivityUseCase creates a new ActivityUseCase.
func NewActivityUseCase(activityRepo ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{activityRepo: activityRepo}
}

// ListActivity lists activity entries matching the filter, newest
// first.
func (uc *ActivityUseCase) ListActivity(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.activityRepo.List(ctx, filter)
}
