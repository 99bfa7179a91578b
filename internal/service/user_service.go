package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/avinash-a11y/insta-clone/internal/audit"
	"github.com/avinash-a11y/insta-clone/internal/domain"
	"github.com/avinash-a11y/insta-clone/internal/repository"
	"github.com/avinash-a11y/insta-clone/pkg/apperr"
	pkglog "github.com/avinash-a11y/insta-clone/pkg/log"
)

// userService implements UserService.
type userService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(users repository.UserRepository, follows repository.FollowRepository) UserService {
	return &userService{
		users:   users,
		follows: follows,
	}
}

// Signup registers a new account. The password is stored only as a bcrypt
// hash.
func (s *userService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.Profile, error) {
	l := pkglog.Ctx(ctx)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, apperr.Internal("failed to create user")
	}

	user := &domain.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hashed),
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, ErrUsernameTaken
		}
		l.Error().Err(err).Str(pkglog.FieldUsername, req.Username).Msg("failed to create user")
		return nil, apperr.Unavailable("failed to create user", err)
	}

	audit.Log(ctx, audit.ActionSignup, user.Username, "user signed up")

	profile := user.ToProfile()
	return &profile, nil
}

// Signin checks credentials and returns the profile on success.
func (s *userService) Signin(ctx context.Context, req *domain.SigninRequest) (*domain.Profile, error) {
	l := pkglog.Ctx(ctx)

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			audit.Log(ctx, audit.ActionSigninFailed, req.Username, "signin failed: user not found")
			return nil, ErrInvalidCredentials
		}
		l.Error().Err(err).Msg("failed to get user")
		return nil, apperr.Unavailable("failed to sign in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		audit.Log(ctx, audit.ActionSigninFailed, req.Username, "signin failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	audit.Log(ctx, audit.ActionSignin, user.Username, "user signed in")

	return s.GetProfile(ctx, user.Username)
}

// GetProfile returns the public profile with both sides of the follow graph
// resolved. The two directional views read the same edge rows, so they can
// never disagree.
func (s *userService) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	l := pkglog.Ctx(ctx)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to get user")
		return nil, apperr.Unavailable("failed to load profile", err)
	}

	followers, err := s.follows.Followers(ctx, username)
	if err != nil {
		l.Error().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to load followers")
		return nil, apperr.Unavailable("failed to load profile", err)
	}
	following, err := s.follows.Following(ctx, username)
	if err != nil {
		l.Error().Err(err).Str(pkglog.FieldUsername, username).Msg("failed to load following")
		return nil, apperr.Unavailable("failed to load profile", err)
	}

	user.Followers = followers
	user.Following = following

	profile := user.ToProfile()
	return &profile, nil
}

// Ensure interface is satisfied at compile time.
var _ UserService = (*userService)(nil)
