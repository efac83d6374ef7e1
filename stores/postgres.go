package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"warbler/models"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = "id, username, email, password, COALESCE(image_url, ''), COALESCE(header_image_url, ''), COALESCE(bio, ''), COALESCE(location, '')"

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.ImageURL, &u.HeaderImageURL, &u.Bio, &u.Location)
	return u, err
}

func (s *PostgresUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password, image_url) VALUES ($1, $2, $3, NULLIF($4, '')) RETURNING id",
		user.Username, user.Email, user.Password, user.ImageURL,
	).Scan(&user.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", translate(err))
	}
	return user, nil
}

func (s *PostgresUserStore) Get(ctx context.Context, id int) (models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

func (s *PostgresUserStore) Update(ctx context.Context, user models.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET username = $2, email = $3, password = $4,
			image_url = NULLIF($5, ''), header_image_url = NULLIF($6, ''),
			bio = NULLIF($7, ''), location = NULLIF($8, '')
		WHERE id = $1`,
		user.ID, user.Username, user.Email, user.Password,
		user.ImageURL, user.HeaderImageURL, user.Bio, user.Location,
	)
	if err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, translate(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresUserStore) Search(ctx context.Context, query string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username ILIKE '%' || $1 || '%' ORDER BY id", query)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type PostgresMessageStore struct {
	db *sql.DB
}

func NewPostgresMessageStore(db *sql.DB) *PostgresMessageStore {
	return &PostgresMessageStore{db: db}
}

const messageSelect = `
	SELECT m.id, m.text, m.timestamp, m.user_id, u.username, COALESCE(u.image_url, '')
	FROM messages m JOIN users u ON u.id = m.user_id`

func scanMessage(row interface{ Scan(...any) error }) (models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.Text, &m.Timestamp, &m.UserID, &m.Username, &m.UserImageURL)
	return m, err
}

func (s *PostgresMessageStore) Get(ctx context.Context, id int) (models.Message, error) {
	m, err := scanMessage(s.db.QueryRowContext(ctx, messageSelect+" WHERE m.id = $1", id))
	if err != nil {
		return models.Message{}, translate(err)
	}
	return m, nil
}

func (s *PostgresMessageStore) Create(ctx context.Context, text string, ownerID int) (models.Message, error) {
	var newID int
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO messages (text, user_id) VALUES ($1, $2) RETURNING id",
		text, ownerID,
	).Scan(&newID)
	if err != nil {
		return models.Message{}, fmt.Errorf("insert message: %w", translate(err))
	}
	return s.Get(ctx, newID)
}

func (s *PostgresMessageStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete message %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresMessageStore) ListByUser(ctx context.Context, userID, limit int) ([]models.Message, error) {
	return s.Timeline(ctx, []int{userID}, limit)
}

func (s *PostgresMessageStore) CountByUser(ctx context.Context, userID int) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages WHERE user_id = $1", userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

func (s *PostgresMessageStore) Timeline(ctx context.Context, userIDs []int, limit int) ([]models.Message, error) {
	ids := make([]int64, len(userIDs))
	for i, id := range userIDs {
		ids[i] = int64(id)
	}

	var lim any
	if limit > 0 {
		lim = limit
	}

	rows, err := s.db.QueryContext(ctx,
		messageSelect+" WHERE m.user_id = ANY($1) ORDER BY m.timestamp DESC, m.id DESC LIMIT $2",
		pq.Array(ids), lim,
	)
	if err != nil {
		return nil, fmt.Errorf("timeline query: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

type PostgresFollowStore struct {
	db *sql.DB
}

func NewPostgresFollowStore(db *sql.DB) *PostgresFollowStore {
	return &PostgresFollowStore{db: db}
}

func (s *PostgresFollowStore) Follow(ctx context.Context, followerID, followedID int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO follows (user_following_id, user_being_followed_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		followerID, followedID,
	)
	if err != nil {
		return fmt.Errorf("follow: %w", translate(err))
	}
	return nil
}

func (s *PostgresFollowStore) Unfollow(ctx context.Context, followerID, followedID int) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM follows WHERE user_following_id = $1 AND user_being_followed_id = $2",
		followerID, followedID,
	)
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

func (s *PostgresFollowStore) IsFollowing(ctx context.Context, followerID, followedID int) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM follows WHERE user_following_id = $1 AND user_being_followed_id = $2)",
		followerID, followedID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("is following: %w", err)
	}
	return exists, nil
}

func (s *PostgresFollowStore) Following(ctx context.Context, userID int) ([]models.User, error) {
	return s.list(ctx, `
		SELECT `+prefixed("u")+` FROM follows f JOIN users u ON u.id = f.user_being_followed_id
		WHERE f.user_following_id = $1 ORDER BY u.id`, userID)
}

func (s *PostgresFollowStore) Followers(ctx context.Context, userID int) ([]models.User, error) {
	return s.list(ctx, `
		SELECT `+prefixed("u")+` FROM follows f JOIN users u ON u.id = f.user_following_id
		WHERE f.user_being_followed_id = $1 ORDER BY u.id`, userID)
}

func (s *PostgresFollowStore) list(ctx context.Context, query string, userID int) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("follow list: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func prefixed(alias string) string {
	return fmt.Sprintf("%[1]s.id, %[1]s.username, %[1]s.email, %[1]s.password, COALESCE(%[1]s.image_url, ''), COALESCE(%[1]s.header_image_url, ''), COALESCE(%[1]s.bio, ''), COALESCE(%[1]s.location, '')", alias)
}
