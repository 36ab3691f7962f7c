package repository

import (
	"database/sql"

	"github.com/lib/pq"

	entity "skillswap/internal/domain"
)

type profileRepository struct {
	db *sql.DB
}

type ProfileRepository interface {
	CreateProfile(p *entity.Profile) (int64, error)
	GetByAccountID(accountID int64) (*entity.Profile, error)
	GetLocation(profileID int64) (string, error)
	GetView(profileID int64) (*entity.ProfileView, error)
	UpdateProfile(profileID int64, name string, languages []string) error
	ReplaceSkills(profileID int64, skills []string, languages []string) error
	GetSkills(profileID int64) ([]entity.Skill, error)
	ListProfiles(limit int) ([]entity.ProfileView, error)
	SearchProfiles(query string) ([]entity.ProfileView, error)
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateProfile(p *entity.Profile) (int64, error) {
	var id int64
	query := `
        INSERT INTO skill_profile (account_id, name, location, reputation_points, languages)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING profile_id
    `
	err := r.db.QueryRow(query, p.AccountID, p.Name, p.Location, p.ReputationPoints, pq.Array(p.Languages)).Scan(&id)
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func (r *profileRepository) GetByAccountID(accountID int64) (*entity.Profile, error) {
	var p entity.Profile
	query := `
        SELECT profile_id, account_id, name, location, reputation_points, languages
        FROM skill_profile WHERE account_id = $1
    `
	err := r.db.QueryRow(query, accountID).Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Location, &p.ReputationPoints, pq.Array(&p.Languages),
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetLocation(profileID int64) (string, error) {
	var location sql.NullString
	query := `SELECT location FROM skill_profile WHERE profile_id = $1`
	err := r.db.QueryRow(query, profileID).Scan(&location)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return location.String, nil
}

func (r *profileRepository) GetView(profileID int64) (*entity.ProfileView, error) {
	query := `
        SELECT p.profile_id, p.name, p.reputation_points, p.languages,
               array_remove(array_agg(s.skill), NULL) AS skills
        FROM skill_profile p
        LEFT JOIN skill_listing s ON p.profile_id = s.profile_id
        WHERE p.profile_id = $1
        GROUP BY p.profile_id
    `
	var v entity.ProfileView
	err := r.db.QueryRow(query, profileID).Scan(
		&v.ProfileID, &v.Name, &v.ReputationPoints, pq.Array(&v.Languages), pq.Array(&v.Skills),
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *profileRepository) UpdateProfile(profileID int64, name string, languages []string) error {
	query := `UPDATE skill_profile SET name = $1, languages = $2 WHERE profile_id = $3`
	_, err := r.db.Exec(query, name, pq.Array(languages), profileID)
	return err
}

// ReplaceSkills rewrites the listing delete-then-insert. The statements are
// not wrapped in a transaction; a crash mid-sequence can leave a partial
// listing, which the next full update repairs.
func (r *profileRepository) ReplaceSkills(profileID int64, skills []string, languages []string) error {
	if _, err := r.db.Exec(`DELETE FROM skill_listing WHERE profile_id = $1`, profileID); err != nil {
		return err
	}
	for _, skill := range skills {
		_, err := r.db.Exec(
			`INSERT INTO skill_listing (profile_id, skill, description, languages) VALUES ($1, $2, '', $3)`,
			profileID, skill, pq.Array(languages),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *profileRepository) GetSkills(profileID int64) ([]entity.Skill, error) {
	rows, err := r.db.Query(`SELECT skill_id, profile_id, skill FROM skill_listing WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []entity.Skill{}
	for rows.Next() {
		var s entity.Skill
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Skill); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

const profileViewQuery = `
        SELECT p.profile_id, p.name, p.reputation_points, p.languages,
               array_remove(array_agg(s.skill), NULL) AS skills
        FROM skill_profile p
        LEFT JOIN skill_listing s ON p.profile_id = s.profile_id
`

func (r *profileRepository) ListProfiles(limit int) ([]entity.ProfileView, error) {
	query := profileViewQuery + ` GROUP BY p.profile_id LIMIT $1`
	return r.queryProfileViews(query, limit)
}

func (r *profileRepository) SearchProfiles(search string) ([]entity.ProfileView, error) {
	query := profileViewQuery + ` WHERE p.name ILIKE $1 OR s.skill ILIKE $1 GROUP BY p.profile_id`
	return r.queryProfileViews(query, "%"+search+"%")
}

func (r *profileRepository) queryProfileViews(query string, args ...interface{}) ([]entity.ProfileView, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []entity.ProfileView{}
	for rows.Next() {
		var v entity.ProfileView
		err := rows.Scan(&v.ProfileID, &v.Name, &v.ReputationPoints, pq.Array(&v.Languages), pq.Array(&v.Skills))
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
