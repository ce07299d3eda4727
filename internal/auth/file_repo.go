package auth

import (
	"sync"

	"chatbots/internal/storage"
)

// FileRepository keeps the allowlist as one JSON array.
type FileRepository struct {
	file *storage.JSONFile[[]User]
	mu   sync.Mutex
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{file: storage.NewJSONFile[[]User](path)}
}

func (r *FileRepository) LoadAll() ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Load()
}

func (r *FileRepository) Upsert(user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.file.Load()
	if err != nil {
		return err
	}
	updated := false
	for i, u := range users {
		if u.ID == user.ID {
			users[i] = user
			updated = true
			break
		}
	}
	if !updated {
		users = append(users, user)
	}
	return r.file.Save(users)
}
