package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/dberrors"
)

// Unique constraint names from migrations/001_init.sql. Uniqueness is
// enforced here, at the storage layer, so two registrations racing past
// an application-level existence check still cannot both commit.
const (
	constraintUsersEmail      = "users_email_lower_idx"
	constraintUsersRollNumber = "users_roll_number_idx"
)

// IUserRepository defines the interface for account persistence
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRoleAndStatus(ctx context.Context, role models.RoleType, status models.ApprovalStatus) ([]*models.User, error)
	UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserRepository handles account database operations
type UserRepository struct {
	db *pgxpool.Pool
}

var _ IUserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, name, role_type, roll_number, id_card_url, approval_status, created_at, updated_at, last_login_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.RoleType,
		&user.RollNumber, &user.IDCardURL, &user.ApprovalStatus,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new account and returns its id. Duplicate email or
// roll number surfaces as the matching apperrors sentinel.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password, name, role_type, roll_number, id_card_url, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		user.Email, user.Password, user.Name, user.RoleType,
		user.RollNumber, user.IDCardURL, user.ApprovalStatus).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintUsersEmail) {
			return 0, apperrors.ErrDuplicateAccount
		}
		if dberrors.IsDuplicateConstraintError(err, constraintUsersRollNumber) {
			return 0, apperrors.ErrRollNumberExists
		}
		return 0, apperrors.StorageError("create user", user.Email, err)
	}

	return id, nil
}

// GetByID retrieves an account by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.StorageError("get user", fmt.Sprintf("id=%d", id), err)
	}

	return user, nil
}

// GetByEmail retrieves an account by email, compared case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)`, email))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.StorageError("get user", email, err)
	}

	return user, nil
}

// ListByRoleAndStatus lists accounts with the given role and approval
// status in stable storage (insertion) order.
func (r *UserRepository) ListByRoleAndStatus(ctx context.Context, role models.RoleType, status models.ApprovalStatus) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role_type = $1 AND approval_status = $2
		ORDER BY id`, role, status)
	if err != nil {
		return nil, apperrors.StorageError("list users", fmt.Sprintf("%s/%s", role, status), err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.StorageError("scan user", fmt.Sprintf("%s/%s", role, status), err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.StorageError("list users", fmt.Sprintf("%s/%s", role, status), err)
	}

	return users, nil
}

// UpdateApprovalStatus sets the approval status in place and returns the
// updated account. Established sessions are not touched.
func (r *UserRepository) UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET approval_status = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+userColumns, status, time.Now(), id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.StorageError("update approval", fmt.Sprintf("id=%d", id), err)
	}

	return user, nil
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET last_login_at = $1
		WHERE id = $2`, time.Now(), id)

	if err != nil {
		return apperrors.StorageError("update last login", fmt.Sprintf("id=%d", id), err)
	}

	return nil
}

// EmailExists checks if an email is already registered. This is a
// fast-path check only; the unique index remains the authority.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`,
		email).Scan(&exists)

	if err != nil {
		return false, apperrors.StorageError("check email", email, err)
	}

	return exists, nil
}
