package repository

import (
	"database/sql"

	entity "skillswap/internal/domain"
)

type accountRepository struct {
	db *sql.DB
}

type AccountRepository interface {
	CreateAccount(email, passwordHash string) (int64, error)
	GetByEmail(email string) (*entity.Account, error)
	GetByID(id int64) (*entity.Account, error)
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(email, passwordHash string) (int64, error) {
	var id int64
	query := `INSERT INTO account (email, password_hash) VALUES ($1, $2) RETURNING account_id`
	if err := r.db.QueryRow(query, email, passwordHash).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *accountRepository) GetByEmail(email string) (*entity.Account, error) {
	var acc entity.Account
	query := `SELECT account_id, email, password_hash, created_at FROM account WHERE email = $1`
	err := r.db.QueryRow(query, email).Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *accountRepository) GetByID(id int64) (*entity.Account, error) {
	var acc entity.Account
	query := `SELECT account_id, email, password_hash, created_at FROM account WHERE account_id = $1`
	err := r.db.QueryRow(query, id).Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
