// Package testutil provides in-memory repository implementations for tests.
package testutil

import (
	"sync"

	entity "skillswap/internal/domain"
)

// MemExchangeRepository is an in-memory ExchangeRepository.
type MemExchangeRepository struct {
	mu        sync.Mutex
	nextID    int64
	Exchanges map[int64]*entity.Exchange
	// Profiles feeds the joined name/skill columns of the view queries.
	Profiles *MemProfileRepository
}

func NewMemExchangeRepository(profiles *MemProfileRepository) *MemExchangeRepository {
	return &MemExchangeRepository{
		nextID:    1,
		Exchanges: make(map[int64]*entity.Exchange),
		Profiles:  profiles,
	}
}

func (m *MemExchangeRepository) CreateExchange(ex *entity.Exchange) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *ex
	stored.ID = m.nextID
	m.nextID++
	m.Exchanges[stored.ID] = &stored
	ex.ID = stored.ID
	return stored.ID, nil
}

func (m *MemExchangeRepository) GetExchangeByID(id int64) (*entity.Exchange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ex, ok := m.Exchanges[id]
	if !ok {
		return nil, nil
	}
	copied := *ex
	return &copied, nil
}

func (m *MemExchangeRepository) UpdateStatus(id int64, status entity.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ex, ok := m.Exchanges[id]
	if !ok {
		return entity.ErrExchangeNotFound
	}
	ex.Status = status
	return nil
}

func (m *MemExchangeRepository) GetReceived(profileID int64) ([]entity.ExchangeView, error) {
	return m.views(func(ex *entity.Exchange) bool {
		return ex.ProfileID2 == profileID && ex.Status == entity.StatusRequested
	})
}

func (m *MemExchangeRepository) GetSent(profileID int64) ([]entity.ExchangeView, error) {
	return m.views(func(ex *entity.Exchange) bool {
		return ex.ProfileID1 == profileID
	})
}

func (m *MemExchangeRepository) views(match func(*entity.Exchange) bool) ([]entity.ExchangeView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	views := []entity.ExchangeView{}
	for id := int64(1); id < m.nextID; id++ {
		ex, ok := m.Exchanges[id]
		if !ok || !match(ex) {
			continue
		}
		views = append(views, entity.ExchangeView{
			ExchangeID:     ex.ID,
			ProfileID1:     ex.ProfileID1,
			ProfileID2:     ex.ProfileID2,
			Profile1Name:   m.Profiles.profileName(ex.ProfileID1),
			Profile2Name:   m.Profiles.profileName(ex.ProfileID2),
			OfferedSkill:   m.Profiles.skillName(ex.SkillID1),
			RequestedSkill: m.Profiles.skillName(ex.SkillID2),
			Status:         ex.Status,
			Location:       ex.Location,
			DateStart:      ex.DateStart,
			DateEnd:        ex.DateEnd,
		})
	}
	return views, nil
}

// MemProfileRepository is an in-memory ProfileRepository.
type MemProfileRepository struct {
	mu          sync.Mutex
	nextID      int64
	nextSkillID int64
	ByAccount   map[int64]*entity.Profile
	ByID        map[int64]*entity.Profile
	Skills      map[int64][]entity.Skill // profile id -> skills
}

func NewMemProfileRepository() *MemProfileRepository {
	return &MemProfileRepository{
		nextID:      1,
		nextSkillID: 1,
		ByAccount:   make(map[int64]*entity.Profile),
		ByID:        make(map[int64]*entity.Profile),
		Skills:      make(map[int64][]entity.Skill),
	}
}

// AddProfile seeds a profile and returns its id.
func (m *MemProfileRepository) AddProfile(accountID int64, name, location string) int64 {
	id, _ := m.CreateProfile(&entity.Profile{AccountID: accountID, Name: name, Location: location})
	return id
}

// AddSkill seeds a skill listing row and returns its id.
func (m *MemProfileRepository) AddSkill(profileID int64, skill string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSkillID
	m.nextSkillID++
	m.Skills[profileID] = append(m.Skills[profileID], entity.Skill{ID: id, ProfileID: profileID, Skill: skill})
	return id
}

func (m *MemProfileRepository) CreateProfile(p *entity.Profile) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *p
	stored.ID = m.nextID
	m.nextID++
	m.ByAccount[stored.AccountID] = &stored
	m.ByID[stored.ID] = &stored
	p.ID = stored.ID
	return stored.ID, nil
}

func (m *MemProfileRepository) GetByAccountID(accountID int64) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.ByAccount[accountID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *MemProfileRepository) GetLocation(profileID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.ByID[profileID]; ok {
		return p.Location, nil
	}
	return "", nil
}

func (m *MemProfileRepository) GetView(profileID int64) (*entity.ProfileView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.ByID[profileID]
	if !ok {
		return nil, nil
	}
	skills := []string{}
	for _, s := range m.Skills[profileID] {
		skills = append(skills, s.Skill)
	}
	return &entity.ProfileView{
		ProfileID:        p.ID,
		Name:             p.Name,
		ReputationPoints: p.ReputationPoints,
		Languages:        p.Languages,
		Skills:           skills,
	}, nil
}

func (m *MemProfileRepository) UpdateProfile(profileID int64, name string, languages []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.ByID[profileID]; ok {
		p.Name = name
		p.Languages = languages
	}
	return nil
}

func (m *MemProfileRepository) ReplaceSkills(profileID int64, skills []string, languages []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Skills[profileID] = nil
	for _, skill := range skills {
		id := m.nextSkillID
		m.nextSkillID++
		m.Skills[profileID] = append(m.Skills[profileID], entity.Skill{ID: id, ProfileID: profileID, Skill: skill})
	}
	return nil
}

func (m *MemProfileRepository) GetSkills(profileID int64) ([]entity.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]entity.Skill{}, m.Skills[profileID]...), nil
}

func (m *MemProfileRepository) ListProfiles(limit int) ([]entity.ProfileView, error) {
	m.mu.Lock()
	ids := []int64{}
	for id := int64(1); id < m.nextID; id++ {
		if _, ok := m.ByID[id]; ok {
			ids = append(ids, id)
		}
	}
	m.mu.Unlock()

	views := []entity.ProfileView{}
	for _, id := range ids {
		if len(views) == limit {
			break
		}
		v, _ := m.GetView(id)
		views = append(views, *v)
	}
	return views, nil
}

func (m *MemProfileRepository) SearchProfiles(string) ([]entity.ProfileView, error) {
	return m.ListProfiles(int(m.nextID))
}

func (m *MemProfileRepository) profileName(profileID int64) string {
	if p, ok := m.ByID[profileID]; ok {
		return p.Name
	}
	return ""
}

func (m *MemProfileRepository) skillName(skillID int64) string {
	for _, skills := range m.Skills {
		for _, s := range skills {
			if s.ID == skillID {
				return s.Skill
			}
		}
	}
	return ""
}

// MemAccountRepository is an in-memory AccountRepository.
type MemAccountRepository struct {
	mu       sync.Mutex
	nextID   int64
	ByEmail  map[string]*entity.Account
	Accounts map[int64]*entity.Account
}

func NewMemAccountRepository() *MemAccountRepository {
	return &MemAccountRepository{
		nextID:   1,
		ByEmail:  make(map[string]*entity.Account),
		Accounts: make(map[int64]*entity.Account),
	}
}

func (m *MemAccountRepository) CreateAccount(email, passwordHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := &entity.Account{ID: m.nextID, Email: email, PasswordHash: passwordHash}
	m.nextID++
	m.ByEmail[email] = acc
	m.Accounts[acc.ID] = acc
	return acc.ID, nil
}

func (m *MemAccountRepository) GetByEmail(email string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.ByEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *acc
	return &copied, nil
}

func (m *MemAccountRepository) GetByID(id int64) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.Accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *acc
	return &copied, nil
}

// MemLogRepository records status history documents in memory.
type MemLogRepository struct {
	mu      sync.Mutex
	History []*entity.HistoryStatus
}

func (m *MemLogRepository) SaveHistoryStatus(doc *entity.HistoryStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.History = append(m.History, doc)
	return nil
}
