package user

import (
	"regexp"
	"strings"
	"time"

	"boaz/internal/domain/user/valueobjects"
	"boaz/internal/shared/biztime"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PasswordHasher abstracts password hashing so the domain stays free of
// the concrete algorithm.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}

// User is an operator account. Only operators with a manage-capable role
// can mutate housing units and subscriptions.
type User struct {
	id           uint
	email        string
	name         string
	passwordHash string
	role         valueobjects.Role
	active       bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active account with a hashed password.
func NewUser(email, name, password string, role valueobjects.Role, hasher PasswordHasher) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	return &User{
		email:        email,
		name:         name,
		passwordHash: hash,
		role:         role,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds an account from persistence without validation
// beyond structural checks.
func ReconstructUser(
	id uint,
	email, name, passwordHash string,
	role valueobjects.Role,
	active bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, ErrInvalidUserID
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                { return u.id }
func (u *User) Email() string           { return u.email }
func (u *User) Name() string            { return u.name }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Role() valueobjects.Role { return u.role }
func (u *User) IsActive() bool          { return u.active }
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }

// SetID assigns the database identifier after insertion.
func (u *User) SetID(id uint) {
	u.id = id
}

// Authenticate verifies the password and requires an active account.
func (u *User) Authenticate(password string, hasher PasswordHasher) error {
	if !u.active {
		return ErrUserDisabled
	}
	if err := hasher.Verify(u.passwordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// RecordLogin stamps the last successful authentication time.
func (u *User) RecordLogin(at time.Time) {
	t := at.UTC()
	u.lastLoginAt = &t
	u.touch()
}

// ChangePassword replaces the stored hash after validating the new password.
func (u *User) ChangePassword(password string, hasher PasswordHasher) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

// ChangeRole reassigns the account role.
func (u *User) ChangeRole(role valueobjects.Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	u.role = role
	u.touch()
	return nil
}

// Deactivate disables the account; disabled accounts cannot authenticate.
func (u *User) Deactivate() {
	u.active = false
	u.touch()
}

// Activate re-enables the account.
func (u *User) Activate() {
	u.active = true
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
}
