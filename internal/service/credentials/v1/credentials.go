// Package credentials provides functionality for account registration and
// opaque session token handling.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danilovkiri/dk_go_letterfeed/internal/service/credentials"
	serviceErrors "github.com/danilovkiri/dk_go_letterfeed/internal/service/errors"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/secretary"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_letterfeed/internal/storage/errors"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ credentials.Registrar = (*Registrar)(nil)
)

// Registrar struct defines data structure handling and provides support for adding new implementations.
type Registrar struct {
	kvStorage storage.KVStorage
	sec       secretary.Secretary
}

// InitRegistrar initializes a Registrar object and sets its attributes.
func InitRegistrar(s storage.KVStorage, sec secretary.Secretary) (*Registrar, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if sec == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil secretary was passed to service initializer"}
	}
	return &Registrar{
		kvStorage: s,
		sec:       sec,
	}, nil
}

// CreateAccount registers a new account under a case-folded unique email.
// The uniqueness check and the index write are two independent storage calls,
// a concurrent duplicate registration may race past the check.
func (r *Registrar) CreateAccount(ctx context.Context, email string, password string) (modelmail.User, error) {
	email = foldEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return modelmail.User{}, &serviceErrors.ValidationError{Msg: "email address is malformed"}
	}
	if len(password) < 8 {
		return modelmail.User{}, &serviceErrors.ValidationError{Msg: "password must be at least 8 characters"}
	}
	_, err := r.kvStorage.Get(ctx, keyUserEmail(email))
	if err == nil {
		return modelmail.User{}, &serviceErrors.ConflictError{ID: email}
	}
	var notFoundError *storageErrors.NotFoundError
	if !errors.As(err, &notFoundError) {
		return modelmail.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return modelmail.User{}, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	record := modelstorage.UserRecord{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Unix(),
	}
	value, err := json.Marshal(record)
	if err != nil {
		return modelmail.User{}, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	if err := r.kvStorage.Put(ctx, keyUser(record.ID), value); err != nil {
		return modelmail.User{}, err
	}
	if err := r.kvStorage.Put(ctx, keyUserEmail(email), []byte(record.ID)); err != nil {
		return modelmail.User{}, err
	}
	log.Println("Creating account:", record.ID)
	return userFromRecord(record), nil
}

// VerifyCredentials checks an email and password pair against the stored hash.
func (r *Registrar) VerifyCredentials(ctx context.Context, email string, password string) (modelmail.User, error) {
	email = foldEmail(email)
	userID, err := r.kvStorage.Get(ctx, keyUserEmail(email))
	if err != nil {
		var notFoundError *storageErrors.NotFoundError
		if errors.As(err, &notFoundError) {
			return modelmail.User{}, &serviceErrors.AuthenticationError{Msg: "unknown email or wrong password"}
		}
		return modelmail.User{}, err
	}
	value, err := r.kvStorage.Get(ctx, keyUser(string(userID)))
	if err != nil {
		return modelmail.User{}, err
	}
	var record modelstorage.UserRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return modelmail.User{}, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return modelmail.User{}, &serviceErrors.AuthenticationError{Msg: "unknown email or wrong password"}
	}
	return userFromRecord(record), nil
}

// IssueSession seals a user id into an opaque session token.
func (r *Registrar) IssueSession(userID string) string {
	return r.sec.Encode(userID)
}

// ValidateSession unseals a session token into a user id.
func (r *Registrar) ValidateSession(token string) (string, error) {
	userID, err := r.sec.Decode(token)
	if err != nil {
		return "", &serviceErrors.AuthenticationError{Msg: "session token is invalid"}
	}
	return userID, nil
}

// foldEmail case-folds and trims an email address.
func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userFromRecord(record modelstorage.UserRecord) modelmail.User {
	return modelmail.User{
		ID:        record.ID,
		Email:     record.Email,
		CreatedAt: time.Unix(record.CreatedAt, 0),
	}
}

func keyUser(userID string) string {
	return "user:" + userID
}

func keyUserEmail(email string) string {
	return "user:email:" + email
}
