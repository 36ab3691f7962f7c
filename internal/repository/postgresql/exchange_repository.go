package repository

import (
	"database/sql"
	"time"

	entity "skillswap/internal/domain"
)

type exchangeRepository struct {
	db *sql.DB
}

type ExchangeRepository interface {
	CreateExchange(ex *entity.Exchange) (int64, error)
	GetExchangeByID(id int64) (*entity.Exchange, error)
	UpdateStatus(id int64, status entity.Status) error
	GetReceived(profileID int64) ([]entity.ExchangeView, error)
	GetSent(profileID int64) ([]entity.ExchangeView, error)
}

func NewExchangeRepository(db *sql.DB) ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) CreateExchange(ex *entity.Exchange) (int64, error) {
	query := `
        INSERT INTO exchange (profile_id_1, profile_id_2, skill_id_1, skill_id_2, status, location, date_start, date_end)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING exchange_id
    `
	var id int64
	err := r.db.QueryRow(query,
		ex.ProfileID1, ex.ProfileID2, ex.SkillID1, ex.SkillID2,
		ex.Status, ex.Location, ex.DateStart, ex.DateEnd,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	ex.ID = id
	return id, nil
}

func (r *exchangeRepository) GetExchangeByID(id int64) (*entity.Exchange, error) {
	var ex entity.Exchange
	query := `
        SELECT exchange_id, profile_id_1, profile_id_2, skill_id_1, skill_id_2, status, location, date_start, date_end
        FROM exchange WHERE exchange_id = $1
    `
	err := r.db.QueryRow(query, id).Scan(
		&ex.ID, &ex.ProfileID1, &ex.ProfileID2, &ex.SkillID1, &ex.SkillID2,
		&ex.Status, &ex.Location, &ex.DateStart, &ex.DateEnd,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// UpdateStatus also advances date_end; date_start stays the creation time.
func (r *exchangeRepository) UpdateStatus(id int64, status entity.Status) error {
	query := `UPDATE exchange SET status = $1, date_end = $2 WHERE exchange_id = $3`
	res, err := r.db.Exec(query, status, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrExchangeNotFound
	}
	return nil
}

const viewColumns = `
        SELECT e.exchange_id, e.profile_id_1, e.profile_id_2,
               p1.name AS profile_1_name, p2.name AS profile_2_name,
               COALESCE(s1.skill, '') AS offered_skill, COALESCE(s2.skill, '') AS requested_skill,
               e.status, e.location, e.date_start, e.date_end
        FROM exchange e
        LEFT JOIN skill_listing s1 ON e.skill_id_1 = s1.skill_id
        LEFT JOIN skill_listing s2 ON e.skill_id_2 = s2.skill_id
        JOIN skill_profile p1 ON e.profile_id_1 = p1.profile_id
        JOIN skill_profile p2 ON e.profile_id_2 = p2.profile_id
`

// GetReceived returns open requests addressed to the profile. Settled
// exchanges are not part of the inbox view.
func (r *exchangeRepository) GetReceived(profileID int64) ([]entity.ExchangeView, error) {
	query := viewColumns + ` WHERE e.profile_id_2 = $1 AND e.status = $2`
	return r.queryViews(query, profileID, entity.StatusRequested)
}

func (r *exchangeRepository) GetSent(profileID int64) ([]entity.ExchangeView, error) {
	query := viewColumns + ` WHERE e.profile_id_1 = $1`
	return r.queryViews(query, profileID)
}

func (r *exchangeRepository) queryViews(query string, args ...interface{}) ([]entity.ExchangeView, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []entity.ExchangeView{}
	for rows.Next() {
		var v entity.ExchangeView
		err := rows.Scan(
			&v.ExchangeID, &v.ProfileID1, &v.ProfileID2,
			&v.Profile1Name, &v.Profile2Name,
			&v.OfferedSkill, &v.RequestedSkill,
			&v.Status, &v.Location, &v.DateStart, &v.DateEnd,
		)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
