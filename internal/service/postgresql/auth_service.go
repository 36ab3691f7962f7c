package service

import (
	entity "skillswap/internal/domain"
	repo "skillswap/internal/repository/postgresql"
	utils "skillswap/pkg"
)

type AuthService struct {
	accountRepo repo.AccountRepository
	profileRepo repo.ProfileRepository
}

func NewAuthService(accountRepo repo.AccountRepository, profileRepo repo.ProfileRepository) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
	}
}

// Register creates the account and its profile in one go. The profile starts
// with defaults when the optional fields are omitted, matching the signup
// form's behavior.
func (s *AuthService) Register(input entity.RegisterInput) (int64, error) {
	existing, err := s.accountRepo.GetByEmail(input.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, entity.ErrEmailTaken
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return 0, err
	}

	accountID, err := s.accountRepo.CreateAccount(input.Email, hashed)
	if err != nil {
		return 0, err
	}

	name := input.Name
	if name == "" {
		name = "Unnamed"
	}
	location := input.Location
	if location == "" {
		location = "Unknown"
	}

	profile := &entity.Profile{
		AccountID: accountID,
		Name:      name,
		Location:  location,
		Languages: []string{input.Language},
	}
	if _, err := s.profileRepo.CreateProfile(profile); err != nil {
		return 0, err
	}

	return accountID, nil
}

func (s *AuthService) Login(input entity.LoginInput) (int64, error) {
	account, err := s.accountRepo.GetByEmail(input.Email)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, entity.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, account.PasswordHash) {
		return 0, entity.ErrInvalidCredentials
	}
	return account.ID, nil
}
