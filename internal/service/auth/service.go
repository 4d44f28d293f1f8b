// Package auth verifies employee logins against salted password hashes.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

const saltBytes = 16

type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) (int64, error)
	CredentialsByLogin(ctx context.Context, login string) (*model.Credentials, error)
	UpdateCredentials(ctx context.Context, employeeID int64, passwordHash, salt string) error
}

type service struct {
	repo EmployeeRepository
}

func NewAuthService(repo EmployeeRepository) *service {
	return &service{repo: repo}
}

// Hash returns the hex digest of SHA-256 over password concatenated with the
// salt. Stored hashes use this exact form, so it must not change.
func Hash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// GenerateSalt returns 16 random bytes in base64.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Login checks the password for the given login and returns the employee id
// on success. An unknown login and a wrong password both come back as
// ErrInvalidCredentials so callers cannot tell the two apart.
func (svc *service) Login(ctx context.Context, login, password string) (int64, error) {
	const op = "auth.service.Login"

	creds, err := svc.repo.CredentialsByLogin(ctx, login)
	if err != nil {
		logger.Warn(ctx, "login attempt for unknown user", logger.String("login", login))
		return 0, fmt.Errorf("%s: %w", op, model.ErrInvalidCredentials)
	}

	got := Hash(password, creds.Salt)
	if subtle.ConstantTimeCompare([]byte(got), []byte(creds.PasswordHash)) != 1 {
		logger.Warn(ctx, "password mismatch", logger.String("login", login))
		return 0, fmt.Errorf("%s: %w", op, model.ErrInvalidCredentials)
	}

	return creds.EmployeeID, nil
}

// Register creates an employee with a fresh salt and the password hashed
// under it.
func (svc *service) Register(ctx context.Context, e model.Employee, password string) (int64, error) {
	const op = "auth.service.Register"

	if e.Login == "" || password == "" {
		return 0, fmt.Errorf("%s: login and password required: %w", op, model.ErrValidation)
	}

	salt, err := GenerateSalt()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	e.Salt = salt
	e.PasswordHash = Hash(password, salt)

	id, err := svc.repo.Create(ctx, &e)
	if err != nil {
		logger.Error(ctx, "register employee", logger.String("login", e.Login), logger.ErrorF(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// ChangePassword re-salts and re-hashes, leaving old hashes unusable.
func (svc *service) ChangePassword(ctx context.Context, employeeID int64, password string) error {
	const op = "auth.service.ChangePassword"

	if password == "" {
		return fmt.Errorf("%s: password required: %w", op, model.ErrValidation)
	}

	salt, err := GenerateSalt()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.repo.UpdateCredentials(ctx, employeeID, Hash(password, salt), salt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
