package usecase

import (
	"context"
	"errors"
	"strings"

	"forpharma-console/internal/converter"
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"
	"forpharma-console/internal/domain/repository"
	"forpharma-console/internal/service"
	"forpharma-console/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, session entity.Session, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, session entity.Session) (*dto.UserResponse, error)
	RevokeAllUserTokens(ctx context.Context, userID string) error
}

type authUsecase struct {
	log          *logrus.Logger
	gateway      gateway.ForPharmaGateway
	sessionRepo  repository.SessionRepository
	jwtService   *jwt.JWTService
	auditService service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	gw gateway.ForPharmaGateway,
	sessionRepo repository.SessionRepository,
	jwtService *jwt.JWTService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		gateway:      gw,
		sessionRepo:  sessionRepo,
		jwtService:   jwtService,
		auditService: auditService,
	}
}

// Login checks the credentials against the platform backend and opens a console
// session holding the upstream token.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	result, err := u.gateway.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, gateway.ErrUpstreamUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to login upstream: %+v", err)
		return nil, err
	}

	user := result.User
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrAccountInactive
	}

	session := entity.Session{
		UserID:           user.ID,
		Email:            user.Email,
		FullName:         strings.TrimSpace(user.FirstName + " " + user.LastName),
		Role:             strings.ToLower(user.Role),
		OrganizationID:   user.Organization.ID,
		OrganizationName: user.Organization.Name,
		UpstreamToken:    result.Token,
	}

	resp, err := u.issueTokens(ctx, session)
	if err != nil {
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, session, entity.AuditActionUserLogin, nil)

	return resp, nil
}

// Logout revokes the current access token and, when given, the refresh token.
func (u *authUsecase) Logout(ctx context.Context, session entity.Session, refreshToken string) error {
	if err := u.sessionRepo.Delete(ctx, repository.SessionAccessToken, session.UserID, session.TokenID); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == session.UserID {
			if err := u.sessionRepo.Delete(ctx, repository.SessionRefreshToken, claims.UserID, claims.TokenID); err != nil {
				u.log.Warnf("Failed to delete refresh token: %+v", err)
				return err
			}
		}
	}

	_ = u.auditService.LogAction(ctx, session, entity.AuditActionUserLogout, nil)
	return nil
}

// RefreshToken rotates both tokens. The old refresh token is single use.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	session, err := u.sessionRepo.Find(ctx, repository.SessionRefreshToken, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if session == nil {
		return nil, ErrTokenRevoked
	}

	if err := u.sessionRepo.Delete(ctx, repository.SessionRefreshToken, claims.UserID, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, *session)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, session entity.Session) (*dto.UserResponse, error) {
	return converter.SessionToUserResponse(session), nil
}

// RevokeAllUserTokens signs a user out everywhere.
func (u *authUsecase) RevokeAllUserTokens(ctx context.Context, userID string) error {
	if err := u.sessionRepo.DeleteAllForUser(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke user tokens: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) issueTokens(ctx context.Context, session entity.Session) (*dto.TokenResponse, error) {
	subject := jwt.Subject{
		UserID:         session.UserID,
		Email:          session.Email,
		OrganizationID: session.OrganizationID,
		Role:           session.Role,
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(subject)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(subject)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessSession := session
	accessSession.TokenID = accessTokenID
	if err := u.sessionRepo.Save(ctx, repository.SessionAccessToken, accessTokenID, accessSession, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	refreshSession := session
	refreshSession.TokenID = refreshTokenID
	if err := u.sessionRepo.Save(ctx, repository.SessionRefreshToken, refreshTokenID, refreshSession, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.SessionToUserResponse(accessSession),
	}, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
