package service

import (
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	entity "skillswap/internal/domain"
	mongorepo "skillswap/internal/repository/mongodb"
	repo "skillswap/internal/repository/postgresql"
)

type ExchangeService struct {
	exchangeRepo repo.ExchangeRepository
	profileRepo  repo.ProfileRepository
	logRepo      mongorepo.LogRepository
	log          *logrus.Entry
}

func NewExchangeService(exchangeRepo repo.ExchangeRepository, profileRepo repo.ProfileRepository, logRepo mongorepo.LogRepository) *ExchangeService {
	return &ExchangeService{
		exchangeRepo: exchangeRepo,
		profileRepo:  profileRepo,
		logRepo:      logRepo,
		log:          logrus.WithField("component", "exchange_service"),
	}
}

// CreateRequest opens an exchange from the caller's profile toward another
// profile, in status Requested. The recipient's location is copied onto the
// record, defaulting to "Online" when the profile has none.
func (s *ExchangeService) CreateRequest(accountID int64, input entity.CreateExchangeInput) (int64, error) {
	profile, err := s.profileRepo.GetByAccountID(accountID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, entity.ErrNoProfile
	}

	if input.ToProfileID == profile.ID {
		return 0, entity.ErrSelfExchange
	}

	location, err := s.profileRepo.GetLocation(input.ToProfileID)
	if err != nil {
		return 0, err
	}
	if location == "" {
		location = "Online"
	}

	now := time.Now()
	ex := &entity.Exchange{
		ProfileID1: profile.ID,
		ProfileID2: input.ToProfileID,
		SkillID1:   input.SkillID1,
		SkillID2:   input.SkillID2,
		Status:     entity.StatusRequested,
		Location:   location,
		DateStart:  now,
		DateEnd:    now,
	}

	id, err := s.exchangeRepo.CreateExchange(ex)
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"exchange_id": id,
		"from":        profile.ID,
		"to":          input.ToProfileID,
	}).Info("exchange request created")

	return id, nil
}

// GetReceived lists open requests addressed to the caller's profile.
func (s *ExchangeService) GetReceived(accountID int64) ([]entity.ExchangeView, error) {
	profile, err := s.profileRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, entity.ErrNoProfile
	}
	return s.exchangeRepo.GetReceived(profile.ID)
}

// GetSent lists every exchange the caller's profile initiated, any status.
func (s *ExchangeService) GetSent(accountID int64) ([]entity.ExchangeView, error) {
	profile, err := s.profileRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, entity.ErrNoProfile
	}
	return s.exchangeRepo.GetSent(profile.ID)
}

// UpdateStatus runs the transition rules against the caller's profile and
// persists the new status on success.
func (s *ExchangeService) UpdateStatus(accountID int64, exchangeID int64, target entity.Status) error {
	profile, err := s.profileRepo.GetByAccountID(accountID)
	if err != nil {
		return err
	}
	if profile == nil {
		return entity.ErrNoProfile
	}

	ex, err := s.exchangeRepo.GetExchangeByID(exchangeID)
	if err != nil {
		return err
	}
	if ex == nil {
		return entity.ErrExchangeNotFound
	}

	oldStatus := ex.Status
	if err := ex.Transition(target, profile.ID); err != nil {
		return err
	}

	if err := s.exchangeRepo.UpdateStatus(exchangeID, ex.Status); err != nil {
		return err
	}

	history := &entity.HistoryStatus{
		ID:         primitive.NewObjectID(),
		ExchangeID: exchangeID,
		OldStatus:  oldStatus,
		NewStatus:  ex.Status,
		ChangedBy:  profile.ID,
		Timestamp:  time.Now(),
	}
	if err := s.logRepo.SaveHistoryStatus(history); err != nil {
		s.log.WithError(err).WithField("exchange_id", exchangeID).Warn("failed to save status history")
	}

	return nil
}
