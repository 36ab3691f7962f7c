package service

import (
	entity "skillswap/internal/domain"
	repo "skillswap/internal/repository/postgresql"
)

type ProfileService struct {
	profileRepo repo.ProfileRepository
}

func NewProfileService(profileRepo repo.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetOwnProfile returns the caller's profile with its full skill listing,
// skill ids included so the exchange form can reference them.
func (s *ProfileService) GetOwnProfile(accountID int64) (*entity.OwnProfileResponse, error) {
	profile, err := s.profileRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, entity.ErrProfileNotFound
	}

	skills, err := s.profileRepo.GetSkills(profile.ID)
	if err != nil {
		return nil, err
	}

	return &entity.OwnProfileResponse{
		ProfileID:        profile.ID,
		Name:             profile.Name,
		ReputationPoints: profile.ReputationPoints,
		Languages:        profile.Languages,
		Skills:           skills,
	}, nil
}

func (s *ProfileService) GetProfile(profileID int64) (*entity.ProfileView, error) {
	view, err := s.profileRepo.GetView(profileID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, entity.ErrProfileNotFound
	}
	return view, nil
}

// UpdateProfile rewrites name, languages and the full skill listing.
func (s *ProfileService) UpdateProfile(accountID int64, input entity.UpdateProfileInput) error {
	if len(input.Skills) == 0 || hasEmpty(input.Skills) {
		return entity.ErrInvalidSkills
	}
	if len(input.Languages) == 0 || hasEmpty(input.Languages) {
		return entity.ErrInvalidLangs
	}

	profile, err := s.profileRepo.GetByAccountID(accountID)
	if err != nil {
		return err
	}
	if profile == nil {
		return entity.ErrProfileNotFound
	}

	if err := s.profileRepo.UpdateProfile(profile.ID, input.Name, input.Languages); err != nil {
		return err
	}
	return s.profileRepo.ReplaceSkills(profile.ID, input.Skills, input.Languages)
}

func (s *ProfileService) ListProfiles() ([]entity.ProfileView, error) {
	return s.profileRepo.ListProfiles(4)
}

func (s *ProfileService) SearchProfiles(query string) ([]entity.ProfileView, error) {
	return s.profileRepo.SearchProfiles(query)
}

func (s *ProfileService) GetSkills(profileID int64) ([]entity.Skill, error) {
	return s.profileRepo.GetSkills(profileID)
}

func hasEmpty(values []string) bool {
	for _, v := range values {
		if v == "" {
			return true
		}
	}
	return false
}
