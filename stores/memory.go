package stores

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"warbler/models"
)

type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[int]models.User)}
}

// Add stores a user with a caller-chosen id, replacing any existing row.
func (s *MemoryUserStore) Add(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
}

func (s *MemoryUserStore) Create(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.User{}, ErrConflict
		}
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryUserStore) Get(_ context.Context, id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) GetByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryUserStore) Update(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return ErrConflict
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *MemoryUserStore) Search(_ context.Context, query string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.User
	for _, u := range s.users {
		if query == "" || strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type MemoryMessageStore struct {
	mu       sync.RWMutex
	nextID   int
	messages map[int]models.Message
	users    UserStore
}

// NewMemoryMessageStore creates a message store that resolves author names
// through users. users may be nil.
func NewMemoryMessageStore(users UserStore) *MemoryMessageStore {
	return &MemoryMessageStore{nextID: 1, messages: make(map[int]models.Message), users: users}
}

// Add stores a message with a caller-chosen id.
func (s *MemoryMessageStore) Add(m models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	s.messages[m.ID] = m
	if m.ID >= s.nextID {
		s.nextID = m.ID + 1
	}
}

func (s *MemoryMessageStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *MemoryMessageStore) All() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryMessageStore) withAuthor(ctx context.Context, m models.Message) models.Message {
	if s.users == nil {
		return m
	}
	if u, err := s.users.Get(ctx, m.UserID); err == nil {
		m.Username = u.Username
		m.UserImageURL = u.ImageURL
	}
	return m
}

func (s *MemoryMessageStore) Get(ctx context.Context, id int) (models.Message, error) {
	s.mu.RLock()
	m, ok := s.messages[id]
	s.mu.RUnlock()
	if !ok {
		return models.Message{}, ErrNotFound
	}
	return s.withAuthor(ctx, m), nil
}

func (s *MemoryMessageStore) Create(ctx context.Context, text string, ownerID int) (models.Message, error) {
	s.mu.Lock()
	m := models.Message{
		ID:        s.nextID,
		Text:      text,
		Timestamp: time.Now().UTC(),
		UserID:    ownerID,
	}
	s.nextID++
	s.messages[m.ID] = m
	s.mu.Unlock()
	return s.withAuthor(ctx, m), nil
}

func (s *MemoryMessageStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return ErrNotFound
	}
	delete(s.messages, id)
	return nil
}

func (s *MemoryMessageStore) ListByUser(ctx context.Context, userID, limit int) ([]models.Message, error) {
	return s.Timeline(ctx, []int{userID}, limit)
}

func (s *MemoryMessageStore) CountByUser(_ context.Context, userID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, m := range s.messages {
		if m.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryMessageStore) Timeline(ctx context.Context, userIDs []int, limit int) ([]models.Message, error) {
	wanted := make(map[int]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}

	s.mu.RLock()
	var out []models.Message
	for _, m := range s.messages {
		if wanted[m.UserID] {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i] = s.withAuthor(ctx, out[i])
	}
	return out, nil
}

type follow struct {
	follower, followed int
}

type MemoryFollowStore struct {
	mu      sync.RWMutex
	follows map[follow]bool
	users   UserStore
}

func NewMemoryFollowStore(users UserStore) *MemoryFollowStore {
	return &MemoryFollowStore{follows: make(map[follow]bool), users: users}
}

func (s *MemoryFollowStore) Follow(_ context.Context, followerID, followedID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follows[follow{followerID, followedID}] = true
	return nil
}

func (s *MemoryFollowStore) Unfollow(_ context.Context, followerID, followedID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.follows, follow{followerID, followedID})
	return nil
}

func (s *MemoryFollowStore) IsFollowing(_ context.Context, followerID, followedID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.follows[follow{followerID, followedID}], nil
}

func (s *MemoryFollowStore) Following(ctx context.Context, userID int) ([]models.User, error) {
	return s.collect(ctx, func(f follow) (int, bool) { return f.followed, f.follower == userID })
}

func (s *MemoryFollowStore) Followers(ctx context.Context, userID int) ([]models.User, error) {
	return s.collect(ctx, func(f follow) (int, bool) { return f.follower, f.followed == userID })
}

func (s *MemoryFollowStore) collect(ctx context.Context, pick func(follow) (int, bool)) ([]models.User, error) {
	s.mu.RLock()
	var ids []int
	for f := range s.follows {
		if id, ok := pick(f); ok {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()

	sort.Ints(ids)
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.users.Get(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}
