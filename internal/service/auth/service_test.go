package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

type fakeEmployeeRepository struct {
	createFn      func(ctx context.Context, e *model.Employee) (int64, error)
	credentialsFn func(ctx context.Context, login string) (*model.Credentials, error)
	updateFn      func(ctx context.Context, employeeID int64, passwordHash, salt string) error
}

func (r *fakeEmployeeRepository) Create(ctx context.Context, e *model.Employee) (int64, error) {
	return r.createFn(ctx, e)
}

func (r *fakeEmployeeRepository) CredentialsByLogin(ctx context.Context, login string) (*model.Credentials, error) {
	return r.credentialsFn(ctx, login)
}

func (r *fakeEmployeeRepository) UpdateCredentials(ctx context.Context, employeeID int64, passwordHash, salt string) error {
	return r.updateFn(ctx, employeeID, passwordHash, salt)
}

func TestHashFormat(t *testing.T) {
	t.Parallel()

	password := gofakeit.Password(true, true, true, false, false, 12)
	salt, err := GenerateSalt()
	require.NoError(t, err)

	// Stored hashes are hex(sha256(password+salt)); the format is load-bearing
	// for already-persisted credentials.
	sum := sha256.Sum256([]byte(password + salt))
	assert.Equal(t, hex.EncodeToString(sum[:]), Hash(password, salt))
}

func TestGenerateSalt(t *testing.T) {
	t.Parallel()

	a, err := GenerateSalt()
	require.NoError(t, err)
	b, err := GenerateSalt()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 16)
	assert.NotEqual(t, a, b)
}

func TestServiceLogin(t *testing.T) {
	t.Parallel()

	password := gofakeit.Password(true, true, true, false, false, 12)
	salt, err := GenerateSalt()
	require.NoError(t, err)

	creds := &model.Credentials{
		EmployeeID:   7,
		Salt:         salt,
		PasswordHash: Hash(password, salt),
	}

	type testCase struct {
		name     string
		password string
		lookup   func(ctx context.Context, login string) (*model.Credentials, error)
		wantID   int64
		wantErr  error
	}

	tests := []testCase{
		{
			name:     "correct password",
			password: password,
			lookup: func(ctx context.Context, login string) (*model.Credentials, error) {
				return creds, nil
			},
			wantID: 7,
		},
		{
			name:     "wrong password",
			password: password + "x",
			lookup: func(ctx context.Context, login string) (*model.Credentials, error) {
				return creds, nil
			},
			wantErr: model.ErrInvalidCredentials,
		},
		{
			name:     "unknown login looks the same as a wrong password",
			password: password,
			lookup: func(ctx context.Context, login string) (*model.Credentials, error) {
				return nil, model.ErrEmployeeNotFound
			},
			wantErr: model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewAuthService(&fakeEmployeeRepository{credentialsFn: tt.lookup})

			id, err := svc.Login(context.Background(), "worker", tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestServiceRegister(t *testing.T) {
	t.Parallel()

	password := gofakeit.Password(true, true, true, false, false, 12)

	var saved *model.Employee
	repo := &fakeEmployeeRepository{
		createFn: func(ctx context.Context, e *model.Employee) (int64, error) {
			saved = e
			return 3, nil
		},
	}

	svc := NewAuthService(repo)

	id, err := svc.Register(context.Background(), model.Employee{
		FullName: gofakeit.Name(),
		Login:    gofakeit.Username(),
	}, password)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.Salt)
	assert.Equal(t, Hash(password, saved.Salt), saved.PasswordHash)
}

func TestServiceRegisterValidation(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(&fakeEmployeeRepository{
		createFn: func(ctx context.Context, e *model.Employee) (int64, error) {
			return 0, errors.New("must not be called")
		},
	})

	_, err := svc.Register(context.Background(), model.Employee{Login: "worker"}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
}
