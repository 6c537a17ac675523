package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"forpharma-console/internal/converter"
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"
	"forpharma-console/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrWeakPassword = errors.New("password is too weak")

// minPasswordStrength is the number of character classes an activation password
// must cover, out of: length 8+, upper case, lower case, digit, symbol.
const minPasswordStrength = 3

// UserUsecase manages the organization's members and the account lifecycle around
// them: organization signup, member creation and account activation.
type UserUsecase interface {
	ListUsers(ctx context.Context, session entity.Session, search string) (*dto.MemberListResponse, error)
	CreateUser(ctx context.Context, session entity.Session, req *dto.CreateUserRequest) (*dto.MemberResponse, error)
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	ActivateAccount(ctx context.Context, req *dto.ActivateAccountRequest) error
}

type userUsecase struct {
	log          *logrus.Logger
	gateway      gateway.ForPharmaGateway
	auditService service.AuditService
}

func NewUserUsecase(log *logrus.Logger, gw gateway.ForPharmaGateway, auditService service.AuditService) UserUsecase {
	return &userUsecase{
		log:          log,
		gateway:      gw,
		auditService: auditService,
	}
}

// ListUsers filters on email, first or last name, case-insensitively.
func (u *userUsecase) ListUsers(ctx context.Context, session entity.Session, search string) (*dto.MemberListResponse, error) {
	users, err := u.gateway.ListUsers(ctx, session)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search != "" {
		filtered := make([]entity.User, 0, len(users))
		for _, user := range users {
			if strings.Contains(strings.ToLower(user.Email), search) ||
				strings.Contains(strings.ToLower(user.FirstName), search) ||
				strings.Contains(strings.ToLower(user.LastName), search) {
				filtered = append(filtered, user)
			}
		}
		users = filtered
	}

	responses := converter.UsersToMemberResponses(users)
	return &dto.MemberListResponse{Users: responses, Total: len(responses)}, nil
}

// CreateUser registers a member with a throwaway password. The member sets a real
// one through account activation.
func (u *userUsecase) CreateUser(ctx context.Context, session entity.Session, req *dto.CreateUserRequest) (*dto.MemberResponse, error) {
	user, err := u.gateway.CreateUser(ctx, session, converter.CreateUserRequestToEntity(req, session, temporaryPassword()))
	if err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	resp := converter.UserToMemberResponse(user)
	_ = u.auditService.LogCreate(ctx, session, entity.AuditActionUserCreate, "user", user.ID, resp)
	return resp, nil
}

func (u *userUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	created, err := u.gateway.CreateOrganization(ctx, converter.SignupRequestToEntity(req))
	if err != nil {
		u.log.Warnf("Failed to create organization: %+v", err)
		return nil, err
	}

	resp := &dto.SignupResponse{
		OrganizationID: created.OrganizationID,
		AdminUserID:    created.AdminUserID,
		AdminEmail:     req.AdminEmail,
	}

	// Nobody is signed in yet; the trail is attributed to the new admin.
	admin := entity.Session{
		UserID:           created.AdminUserID,
		Email:            req.AdminEmail,
		Role:             entity.RoleAdmin,
		OrganizationID:   created.OrganizationID,
		OrganizationName: req.OrganizationName,
	}
	_ = u.auditService.LogCreate(ctx, admin, entity.AuditActionOrgSignup, "organization", created.OrganizationID, resp)
	return resp, nil
}

func (u *userUsecase) ActivateAccount(ctx context.Context, req *dto.ActivateAccountRequest) error {
	if passwordStrength(req.Password) < minPasswordStrength {
		return ErrWeakPassword
	}

	if err := u.gateway.ActivateAccount(ctx, req.Email, req.Password); err != nil {
		u.log.Warnf("Failed to activate account: %+v", err)
		return err
	}
	return nil
}

func passwordStrength(password string) int {
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	strength := 0
	for _, ok := range []bool{len(password) >= 8, upper, lower, digit, symbol} {
		if ok {
			strength++
		}
	}
	return strength
}

func temporaryPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
