package entity

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfile       = errors.New("you must create your profile first")
	ErrInvalidSkills   = errors.New("invalid skills")
	ErrInvalidLangs    = errors.New("invalid languages")
)

type Profile struct {
	ID               int64    `db:"profile_id"`
	AccountID        int64    `db:"account_id"`
	Name             string   `db:"name"`
	Location         string   `db:"location"`
	ReputationPoints int      `db:"reputation_points"`
	Languages        []string `db:"languages"`
}

type Skill struct {
	ID        int64  `db:"skill_id" json:"skill_id"`
	ProfileID int64  `db:"profile_id" json:"-"`
	Skill     string `db:"skill" json:"skill"`
}

// ProfileView is the joined shape used by listings and search: profile
// columns plus the aggregated skill names.
type ProfileView struct {
	ProfileID        int64    `json:"profile_id"`
	Name             string   `json:"name"`
	ReputationPoints int      `json:"reputation_points"`
	Languages        []string `json:"languages"`
	Skills           []string `json:"skills"`
}

type OwnProfileResponse struct {
	ProfileID        int64    `json:"profile_id"`
	Name             string   `json:"name"`
	ReputationPoints int      `json:"reputation_points"`
	Languages        []string `json:"languages"`
	Skills           []Skill  `json:"skills"`
}

type UpdateProfileInput struct {
	Name      string   `json:"name"`
	Skills    []string `json:"skills"`
	Languages []string `json:"languages"`
}
