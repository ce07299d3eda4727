package auth

import (
	"fmt"
	"sync"
)

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Repository interface {
	LoadAll() ([]User, error)
	Upsert(user User) error
}

// Service decides who may talk to the bot. With no known users it is open to
// everyone.
type Service struct {
	mu           sync.RWMutex
	repo         Repository
	allowedUsers map[int64]User
}

// NewWithRepo merges the users stored in repo (may be nil) with the initial IDs.
func NewWithRepo(repo Repository, initial []int64) (*Service, error) {
	s := &Service{repo: repo, allowedUsers: make(map[int64]User)}
	if repo != nil {
		users, err := repo.LoadAll()
		if err != nil {
			return nil, fmt.Errorf("load allowlist: %w", err)
		}
		for _, u := range users {
			s.allowedUsers[u.ID] = u
		}
	}
	for _, id := range initial {
		if _, ok := s.allowedUsers[id]; !ok {
			s.allowedUsers[id] = User{ID: id}
		}
	}
	return s, nil
}

func (s *Service) Open() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.allowedUsers) == 0
}

func (s *Service) IsAllowed(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.allowedUsers) == 0 {
		return true
	}
	_, ok := s.allowedUsers[userID]
	return ok
}

// Remember stores the profile of an allowed user when it changed. Unknown users and
// an open service are ignored.
func (s *Service) Remember(user User) error {
	s.mu.Lock()
	cur, ok := s.allowedUsers[user.ID]
	if !ok || cur == user {
		s.mu.Unlock()
		return nil
	}
	s.allowedUsers[user.ID] = user
	s.mu.Unlock()
	if s.repo != nil {
		return s.repo.Upsert(user)
	}
	return nil
}
