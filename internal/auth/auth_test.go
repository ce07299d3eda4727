package auth

import (
	"errors"
	"path/filepath"
	"testing"
)

type memRepo struct {
	users   []User
	loadErr error
	upserts int
}

func (m *memRepo) LoadAll() ([]User, error) { return append([]User{}, m.users...), m.loadErr }
func (m *memRepo) Upsert(u User) error {
	m.upserts++
	for i, x := range m.users {
		if x.ID == u.ID {
			m.users[i] = u
			return nil
		}
	}
	m.users = append(m.users, u)
	return nil
}

func TestServiceMergesRepoAndInitial(t *testing.T) {
	repo := &memRepo{users: []User{{ID: 10, Username: "alice"}}}
	svc, err := NewWithRepo(repo, []int64{20})
	if err != nil {
		t.Fatalf("NewWithRepo: %v", err)
	}
	if svc.Open() {
		t.Fatal("service with users must not be open")
	}
	if !svc.IsAllowed(10) || !svc.IsAllowed(20) {
		t.Fatal("expected 10 and 20 to be allowed")
	}
	if svc.IsAllowed(30) {
		t.Fatal("30 must not be allowed")
	}
}

func TestServiceOpenWhenEmpty(t *testing.T) {
	svc, err := NewWithRepo(nil, nil)
	if err != nil {
		t.Fatalf("NewWithRepo: %v", err)
	}
	if !svc.Open() || !svc.IsAllowed(12345) {
		t.Fatal("empty allowlist should let everyone in")
	}
	if err := svc.Remember(User{ID: 12345, Username: "x"}); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if !svc.Open() {
		t.Fatal("Remember must not close an open service")
	}
}

func TestServiceLoadError(t *testing.T) {
	if _, err := NewWithRepo(&memRepo{loadErr: errors.New("corrupt")}, nil); err == nil {
		t.Fatal("expected load error")
	}
}

func TestRememberPersistsChangedProfile(t *testing.T) {
	repo := &memRepo{}
	svc, _ := NewWithRepo(repo, []int64{42})

	if err := svc.Remember(User{ID: 42, Username: "bob"}); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if err := svc.Remember(User{ID: 42, Username: "bob"}); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if err := svc.Remember(User{ID: 7, Username: "stranger"}); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if repo.upserts != 1 {
		t.Fatalf("expected 1 upsert, got %d", repo.upserts)
	}
	if len(repo.users) != 1 || repo.users[0].Username != "bob" {
		t.Fatalf("unexpected repo content: %+v", repo.users)
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "allowlist.json")
	repo := NewFileRepository(path)

	users, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll on missing file: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %+v", users)
	}

	if err := repo.Upsert(User{ID: 1, Username: "a"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(User{ID: 2, Username: "b"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(User{ID: 1, Username: "a2"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	users, err = NewFileRepository(path).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(users) != 2 || users[0].Username != "a2" || users[1].ID != 2 {
		t.Fatalf("unexpected users: %+v", users)
	}
}
