package contract

import (
	"context"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type IEmployerRepository interface {
	CreateEmployer(ctx context.Context, employer *entity.Employer) error
}
