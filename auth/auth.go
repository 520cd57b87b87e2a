// Package auth is the credential service: account registration, login,
// and profile-settings updates over the users table. Passwords are
// stored as bcrypt hashes. Uniqueness violations come back as
// field-identified conflicts so the caller can tell the user which
// field collided; a failed login never reveals whether the email or the
// password was wrong.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kravetsdev/staff-core/db"
	"github.com/kravetsdev/staff-core/models"
)

var (
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrUsernameTaken is returned when the username is already taken.
	ErrUsernameTaken = errors.New("auth: username already taken")

	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike.
	ErrInvalidCredentials = errors.New("auth: email or password incorrect")

	// ErrPasswordTooShort is returned when the password has fewer than
	// MinPasswordLen characters.
	ErrPasswordTooShort = errors.New("auth: password must be at least 6 characters")
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// Service implements the credential operations.
type Service struct {
	q    db.Querier
	cost int
}

// NewService returns a Service backed by q. cost is the bcrypt cost;
// pass 0 for the default.
func NewService(q db.Querier, cost int) *Service {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &Service{q: q, cost: cost}
}

const (
	sqlInsertUser = `
		INSERT INTO users (email, username, password) VALUES (?, ?, ?)`

	sqlUserByEmail = `
		SELECT id, email, username, password FROM users WHERE email = ? LIMIT 1`

	sqlUserIDByUsername = `
		SELECT id FROM users WHERE username = ? LIMIT 1`

	sqlEmailByUsername = `
		SELECT email FROM users WHERE username = ? LIMIT 1`

	sqlUpdateEmail = `
		UPDATE users SET email = ? WHERE id = ?`

	sqlUpdatePassword = `
		UPDATE users SET password = ? WHERE id = ?`
)

// Register creates an account. Email is trimmed and lowercased, the
// username trimmed. Returns ErrEmailTaken or ErrUsernameTaken on a
// uniqueness conflict, identified by the violated column.
func (s *Service) Register(ctx context.Context, email, username, password string) (models.User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if len(password) < MinPasswordLen {
		return models.User{}, ErrPasswordTooShort
	}

	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: hash: %w", err)
	}

	res, err := s.q.Exec(ctx, sqlInsertUser, email, username, hash)
	if err != nil {
		return models.User{}, conflictFor(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: id, Email: email, Username: username, Password: hash}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (models.Credentials, error) {
	email = normalizeEmail(email)

	var u models.User
	err := s.q.QueryRow(ctx, sqlUserByEmail, email).
		Scan(&u.ID, &u.Email, &u.Username, &u.Password)
	if err != nil {
		if db.IsNotFound(err) {
			return models.Credentials{}, ErrInvalidCredentials
		}
		return models.Credentials{}, err
	}
	if !verifyPassword(u.Password, password) {
		return models.Credentials{}, ErrInvalidCredentials
	}
	return models.Credentials{ID: u.ID, Username: u.Username}, nil
}

// EmailByUsername returns the stored email for the profile-settings
// form. Returns db.ErrNotFound when the username does not exist.
func (s *Service) EmailByUsername(ctx context.Context, username string) (string, error) {
	var email string
	err := s.q.QueryRow(ctx, sqlEmailByUsername, username).Scan(&email)
	if err != nil {
		return "", err
	}
	return email, nil
}

// UpdateEmail changes the account's email. Returns db.ErrNotFound for an
// unknown username and ErrEmailTaken when the new email is already in
// use by another account.
func (s *Service) UpdateEmail(ctx context.Context, username, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("auth: email must not be empty")
	}

	id, err := s.userID(ctx, username)
	if err != nil {
		return err
	}
	if _, err := s.q.Exec(ctx, sqlUpdateEmail, email, id); err != nil {
		return conflictFor(err)
	}
	return nil
}

// UpdatePassword re-hashes and stores a new password for the account.
// Returns db.ErrNotFound for an unknown username.
func (s *Service) UpdatePassword(ctx context.Context, username, password string) error {
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	id, err := s.userID(ctx, username)
	if err != nil {
		return err
	}
	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return fmt.Errorf("auth: hash: %w", err)
	}
	_, err = s.q.Exec(ctx, sqlUpdatePassword, hash, id)
	return err
}

func (s *Service) userID(ctx context.Context, username string) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, sqlUserIDByUsername, strings.TrimSpace(username)).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// conflictFor narrows a duplicate-key error to the violated column.
// MySQL names the key ("users.email"), SQLite the column
// ("users.email"); both show up in the driver message.
func conflictFor(err error) error {
	if !db.IsDuplicateKey(err) {
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "email"):
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	case strings.Contains(msg, "username"):
		return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	}
	return err
}
