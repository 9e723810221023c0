package service

import (
	"context"
	"errors"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/config"
	"github.com/alfurqan/tahfiz-api/internal/dto"
)

// ErrInvalidIDToken indicates the identity provider token failed verification.
var ErrInvalidIDToken = errors.New("invalid identity token")

// ErrEmailNotAllowed indicates the verified email is not on the allow-list.
var ErrEmailNotAllowed = errors.New("email not on the allow-list")

// Identity is what the identity provider asserts about the signer.
type Identity struct {
	Email string
	Name  string
}

// IdentityVerifier validates an identity-provider ID token and extracts the
// asserted identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

// GoogleVerifier checks Google sign-in ID tokens against the configured client id.
type GoogleVerifier struct {
	ClientID string
}

// Verify validates the token signature and audience, then decodes the claims.
func (g GoogleVerifier) Verify(_ context.Context, idToken string) (Identity, error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{g.ClientID}); err != nil {
		return Identity{}, ErrInvalidIDToken
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return Identity{}, ErrInvalidIDToken
	}

	return Identity{Email: claims.Email, Name: claims.Name}, nil
}

// AuthService gates access behind the teacher email allow-list.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	cfg       config.Config
	verifier  IdentityVerifier
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(cfg config.Config, verifier IdentityVerifier, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) AuthService {
	return &authService{
		cfg:       cfg,
		verifier:  verifier,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Login verifies the provider token, rejects emails outside the allow-list
// and issues the API's own bearer token. A rejected sign-in never produces
// a session.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	identity, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	if !s.cfg.EmailAllowed(identity.Email) {
		s.logger.Warn().Str("email", identity.Email).Msg("sign-in rejected, email not allowed")
		return dto.LoginResponse{}, ErrEmailNotAllowed
	}

	expiresAt := s.now().Add(s.cfg.JWTTokenTTL)
	claims := jwt.MapClaims{
		"sub":  identity.Email,
		"name": identity.Name,
		"role": "teacher",
		"iat":  s.now().Unix(),
		"exp":  expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			Actor:      ActivityActor{Email: identity.Email, Name: identity.Name},
			Action:     "auth.signed_in",
			EntityType: "auth",
		})
	}

	return dto.LoginResponse{
		Token:     token,
		Email:     identity.Email,
		Name:      identity.Name,
		ExpiresIn: int64(s.cfg.JWTTokenTTL.Seconds()),
	}, nil
}
