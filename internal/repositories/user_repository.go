package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	ListProfiles(ctx context.Context, params models.ProfileListParams) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error)
	CountByRole(ctx context.Context) (map[models.Role]int, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO accounts (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, account.Email, account.PasswordHash).Scan(&account.ID, &account.CreatedAt)

	return backendError(err, "")
}

func (r *userRepository) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `DELETE FROM accounts WHERE id = $1`, id)

	return backendError(err, "")
}

func (r *userRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	account := &models.Account{}
	query := `SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1`

	err := r.DB.QueryRowContext(dbCtx, query, email).Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		return nil, backendError(err, "Account not found")
	}

	return account, nil
}

func (r *userRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	account := &models.Account{}
	query := `SELECT id, email, password_hash, created_at FROM accounts WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		return nil, backendError(err, "Account not found")
	}

	return account, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE accounts SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return backendError(err, "")
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return backendError(sql.ErrNoRows, "Account not found")
	}

	return nil
}

const (
	profileColumns = `p.id, COALESCE(a.email, ''), COALESCE(p.full_name, ''), COALESCE(p.phone, ''),
	       COALESCE(p.address, ''), p.role, p.created_at`
	profileFrom = `profiles p
	LEFT JOIN accounts a ON a.id = p.id`
	profileSelect = `SELECT ` + profileColumns + ` FROM ` + profileFrom
)

var profileSort = sortColumns{
	columns: map[string]string{
		"full_name":  "p.full_name",
		"role":       "p.role",
		"created_at": "p.created_at",
	},
	defaultCol: "p.created_at",
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile

	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Address, &p.Role, &p.CreatedAt)

	return p, err
}

func (r *userRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO profiles (id, full_name, phone, address, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING created_at`

	err := r.DB.QueryRowContext(dbCtx, query, profile.ID, profile.FullName, profile.Phone,
		profile.Address, profile.Role).Scan(&profile.CreatedAt)

	return backendError(err, "")
}

func (r *userRepository) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	p, err := scanProfile(r.DB.QueryRowContext(dbCtx, profileSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, backendError(err, "User not found")
	}

	return &p, nil
}

func (r *userRepository) ListProfiles(ctx context.Context, params models.ProfileListParams) ([]models.Profile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	q := psql.Select(profileColumns).From(profileFrom).
		OrderBy(profileSort.orderBy(params.SortBy, params.SortAsc))

	if params.Role != "" {
		q = q.Where(sq.Eq{"p.role": params.Role})
	}

	if params.Search != "" {
		q = q.Where(ilikeAny(params.Search, "p.full_name", "p.phone"))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile query: %w", err)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, backendError(err, "")
	}
	defer rows.Close()

	profiles := []models.Profile{}

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, backendError(err, "")
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, backendError(err, "")
	}

	return profiles, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE profiles SET full_name = $1, phone = $2, address = $3 WHERE id = $4 RETURNING role, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, profile.FullName, profile.Phone, profile.Address, profile.ID).
		Scan(&profile.Role, &profile.CreatedAt)

	return backendError(err, "User not found")
}

func (r *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.Profile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE profiles SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return nil, backendError(err, "")
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, backendError(sql.ErrNoRows, "User not found")
	}

	p, err := scanProfile(r.DB.QueryRowContext(dbCtx, profileSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, backendError(err, "User not found")
	}

	return &p, nil
}

func (r *userRepository) CountByRole(ctx context.Context) (map[models.Role]int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT role, COUNT(*) FROM profiles GROUP BY role`)
	if err != nil {
		return nil, backendError(err, "")
	}
	defer rows.Close()

	counts := map[models.Role]int{}

	for rows.Next() {
		var (
			role  models.Role
			count int
		)

		if err := rows.Scan(&role, &count); err != nil {
			return nil, backendError(err, "")
		}

		counts[role] = count
	}

	if err := rows.Err(); err != nil {
		return nil, backendError(err, "")
	}

	return counts, nil
}
