package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// EmployerUsecase handles employer registration requests.
type EmployerUsecase struct {
	userRepo      contract.IUserRepository
	employerRepo  contract.IEmployerRepository
	notifier      usecasecontract.INotifier
	transactor    contract.ITransactor
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
}

func NewEmployerUsecase(
	userRepo contract.IUserRepository,
	employerRepo contract.IEmployerRepository,
	notifier usecasecontract.INotifier,
	transactor contract.ITransactor,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *EmployerUsecase {
	return &EmployerUsecase{
		userRepo:      userRepo,
		employerRepo:  employerRepo,
		notifier:      notifier,
		transactor:    transactor,
		uuidGenerator: uuidGenerator,
		logger:        logger,
	}
}

var _ usecasecontract.IEmployerUseCase = (*EmployerUsecase)(nil)

func (uc *EmployerUsecase) RequestEmployerRole(ctx context.Context, userID string) (*entity.User, error) {
	user, err := loadUser(ctx, uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if user.IsEmployer || user.PendingEmployer {
		return nil, fmt.Errorf("employer role already requested: %w", ErrInvalidState)
	}
	updated, err := uc.userRepo.UpdateUser(ctx, userID, map[string]interface{}{
		"pending_employer": true,
		"role":             entity.UserRolePendingEmployer,
	})
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return updated, nil
}

// ApproveEmployer grants the employer role and writes the employer record.
func (uc *EmployerUsecase) ApproveEmployer(ctx context.Context, adminID, userID string) (*entity.User, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	if !user.PendingEmployer {
		return nil, fmt.Errorf("user %s has no pending employer request: %w", userID, ErrInvalidState)
	}

	var (
		updated *entity.User
		n       *entity.Notification
	)
	err = uc.transactor.WithinTransaction(ctx, func(tx context.Context) error {
		var err error
		updated, err = uc.userRepo.UpdateUser(tx, userID, map[string]interface{}{
			"pending_employer": false,
			"is_employer":      true,
			"role":             entity.UserRoleEmployer,
		})
		if err != nil {
			return err
		}
		err = uc.employerRepo.CreateEmployer(tx, &entity.Employer{
			ID:         uc.uuidGenerator.NewUUID(),
			UserID:     userID,
			Name:       user.Name,
			Email:      user.Email,
			ApprovedBy: adminID,
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil && !errors.Is(err, contract.ErrDuplicate) {
			return err
		}
		n, err = uc.notifier.Notify(tx, userID, entity.NotificationTypeEmployerApproved,
			"Your employer account was approved", entity.NotificationRefs{})
		return err
	})
	if err != nil {
		return nil, storeErr(err, "user")
	}
	uc.notifier.Deliver(ctx, n)
	return updated, nil
}

func (uc *EmployerUsecase) RejectEmployer(ctx context.Context, adminID, userID string) (*entity.User, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	if !user.PendingEmployer {
		return nil, fmt.Errorf("user %s has no pending employer request: %w", userID, ErrInvalidState)
	}

	var (
		updated *entity.User
		n       *entity.Notification
	)
	err = uc.transactor.WithinTransaction(ctx, func(tx context.Context) error {
		var err error
		updated, err = uc.userRepo.UpdateUser(tx, userID, map[string]interface{}{
			"pending_employer": false,
			"role":             entity.UserRoleUser,
		})
		if err != nil {
			return err
		}
		n, err = uc.notifier.Notify(tx, userID, entity.NotificationTypeEmployerRejected,
			"Your employer request was declined", entity.NotificationRefs{})
		return err
	})
	if err != nil {
		return nil, storeErr(err, "user")
	}
	uc.notifier.Deliver(ctx, n)
	return updated, nil
}

func (uc *EmployerUsecase) ListPendingEmployers(ctx context.Context, adminID string) ([]*entity.User, error) {
	if _, err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}
	users, err := uc.userRepo.ListPendingEmployers(ctx)
	if err != nil {
		return nil, storeErr(err, "users")
	}
	return users, nil
}
