package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/domain"
	"github.com/spec-kit/contact-bridge/internal/extract"
)

// LookupStatus is the outcome of a user search.
type LookupStatus int

const (
	LookupNotFound LookupStatus = iota
	LookupFound
	LookupTransientError
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupTransientError:
		return "transient_error"
	default:
		return "not_found"
	}
}

// LookupResult keeps a failed search distinct from an empty one.
type LookupResult struct {
	Status LookupStatus
	User   *domain.User
	Err    error
}

// LookupPolicy decides what a failed search means to Resolve.
type LookupPolicy int

const (
	// FoldTransientIntoNotFound treats a failed search as "no such user" and
	// creates one. A duplicate may be created if the search failure was spurious.
	FoldTransientIntoNotFound LookupPolicy = iota
	// FailOnTransient aborts resolution when the search fails.
	FailOnTransient
)

// UserResolver finds or creates the helpdesk user for a contact.
type UserResolver struct {
	users  UserAPI
	policy LookupPolicy
	logger *zap.Logger
}

// NewUserResolver creates the resolver.
func NewUserResolver(users UserAPI, policy LookupPolicy, logger *zap.Logger) *UserResolver {
	return &UserResolver{users: users, policy: policy, logger: logger}
}

// Lookup searches for a user with exactly this email.
func (r *UserResolver) Lookup(ctx context.Context, email string) LookupResult {
	users, err := r.users.SearchUsersByEmail(ctx, email)
	if err != nil {
		return LookupResult{Status: LookupTransientError, Err: err}
	}
	if len(users) == 0 {
		return LookupResult{Status: LookupNotFound}
	}
	return LookupResult{Status: LookupFound, User: &users[0]}
}

// Resolve returns the existing user for contact.Email or creates one.
// created reports whether a new user was made.
func (r *UserResolver) Resolve(ctx context.Context, contact domain.ContactInfo) (user *domain.User, created bool, err error) {
	lookup := r.Lookup(ctx, contact.Email)

	switch lookup.Status {
	case LookupFound:
		r.logger.Info("user already exists",
			zap.Int64("user_id", lookup.User.ID), zap.String("email", lookup.User.Email))
		return lookup.User, false, nil
	case LookupTransientError:
		if r.policy == FailOnTransient {
			return nil, false, fmt.Errorf("search user %s: %w", contact.Email, lookup.Err)
		}
		r.logger.Warn("user search failed; treating as not found",
			zap.String("email", contact.Email), zap.Error(lookup.Err))
	}

	req := newUserCreate(contact)
	if contact.Phone != "" && req.Phone == "" {
		r.logger.Info("phone number not in a supported format; omitting it",
			zap.String("phone", contact.Phone))
	}

	user, err = r.users.CreateUser(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("create user %s: %w", contact.Email, err)
	}
	r.logger.Info("created user", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return user, true, nil
}

func newUserCreate(contact domain.ContactInfo) domain.UserCreate {
	req := domain.UserCreate{
		Name:     contact.FullName(),
		Email:    contact.Email,
		Role:     domain.UserRoleEndUser,
		Verified: true,
	}
	if contact.Phone != "" {
		if phone, ok := extract.NormalizePhone(contact.Phone); ok {
			req.Phone = phone
		}
	}
	return req
}
