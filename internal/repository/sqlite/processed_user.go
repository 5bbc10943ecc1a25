package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/dataproc/internal/domain"
)

// ProcessedUserRepository implements domain.ProcessedUserRepository using SQLite.
type ProcessedUserRepository struct {
	db *sql.DB
}

// NewProcessedUserRepository creates a new SQLite-backed ProcessedUserRepository.
func NewProcessedUserRepository(db *DB) *ProcessedUserRepository {
	return &ProcessedUserRepository{db: db.SqlDB}
}

// Upsert inserts or replaces the record keyed by user_id. The conflict clause
// updates in place, so a re-processed record keeps its original rowid and
// therefore its position in List.
func (r *ProcessedUserRepository) Upsert(ctx context.Context, user *domain.ProcessedUser) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO processed_users
		 (user_id, name, email, age, name_length, email_domain, age_category,
		  name_upper, email_upper, age_squared, is_adult, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   name = excluded.name,
		   email = excluded.email,
		   age = excluded.age,
		   name_length = excluded.name_length,
		   email_domain = excluded.email_domain,
		   age_category = excluded.age_category,
		   name_upper = excluded.name_upper,
		   email_upper = excluded.email_upper,
		   age_squared = excluded.age_squared,
		   is_adult = excluded.is_adult,
		   processed_at = excluded.processed_at`,
		user.UserID, user.Name, user.Email, user.Age, user.NameLength,
		user.EmailDomain, string(user.AgeCategory), user.NameUpper,
		user.EmailUpper, user.AgeSquared, user.IsAdult, user.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert processed user: %w", err)
	}
	return nil
}

// Get returns the stored record or domain.ErrNotFound.
func (r *ProcessedUserRepository) Get(ctx context.Context, userID string) (*domain.ProcessedUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, email, age, name_length, email_domain, age_category,
		        name_upper, email_upper, age_squared, is_adult, processed_at
		 FROM processed_users WHERE user_id = ?`, userID,
	)
	user, err := scanProcessedUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query processed user: %w", err)
	}
	return user, nil
}

// List returns all stored records ordered by first insertion.
func (r *ProcessedUserRepository) List(ctx context.Context) ([]domain.ProcessedUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, name, email, age, name_length, email_domain, age_category,
		        name_upper, email_upper, age_squared, is_adult, processed_at
		 FROM processed_users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query processed users: %w", err)
	}
	defer rows.Close()

	var users []domain.ProcessedUser
	for rows.Next() {
		user, err := scanProcessedUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan processed user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// Delete removes the record if present, or returns domain.ErrNotFound.
func (r *ProcessedUserRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM processed_users WHERE user_id = ?", userID,
	)
	if err != nil {
		return fmt.Errorf("delete processed user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of stored records.
func (r *ProcessedUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM processed_users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count processed users: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProcessedUser(row rowScanner) (*domain.ProcessedUser, error) {
	user := &domain.ProcessedUser{}
	var category string
	err := row.Scan(
		&user.UserID, &user.Name, &user.Email, &user.Age, &user.NameLength,
		&user.EmailDomain, &category, &user.NameUpper, &user.EmailUpper,
		&user.AgeSquared, &user.IsAdult, &user.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	user.AgeCategory = domain.AgeCategory(category)
	return user, nil
}
