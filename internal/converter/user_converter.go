package converter

import (
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
)

// SessionToUserResponse converts the signed-in session to UserResponse DTO
func SessionToUserResponse(session entity.Session) *dto.UserResponse {
	return &dto.UserResponse{
		ID:               session.UserID,
		Email:            session.Email,
		FullName:         session.FullName,
		Role:             session.Role,
		OrganizationID:   session.OrganizationID,
		OrganizationName: session.OrganizationName,
	}
}

// UserToMemberResponse converts a platform user to MemberResponse DTO
func UserToMemberResponse(user *entity.User) *dto.MemberResponse {
	if user == nil {
		return nil
	}

	resp := &dto.MemberResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		Phone:        user.Phone,
		EmployeeCode: user.EmployeeCode,
		City:         user.City,
		State:        user.State,
		IsActive:     user.IsActive,
	}
	if !user.CreatedAt.IsZero() {
		createdAt := user.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

func UsersToMemberResponses(users []entity.User) []dto.MemberResponse {
	responses := make([]dto.MemberResponse, len(users))
	for i := range users {
		responses[i] = *UserToMemberResponse(&users[i])
	}
	return responses
}

// CreateUserRequestToEntity builds the member form for the session's organization
func CreateUserRequestToEntity(req *dto.CreateUserRequest, session entity.Session, password string) entity.NewUser {
	return entity.NewUser{
		OrganizationName: session.OrganizationName,
		Email:            req.Email,
		Password:         password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Role:             req.Role,
		EmployeeCode:     req.EmployeeCode,
		City:             req.City,
		State:            req.State,
		DateOfBirth:      req.DateOfBirth,
	}
}

func SignupRequestToEntity(req *dto.SignupRequest) entity.NewOrganization {
	return entity.NewOrganization{
		Name:           req.OrganizationName,
		Email:          req.OrganizationEmail,
		Address:        req.OrganizationAddress,
		Website:        req.OrganizationWebsite,
		Phone:          req.OrganizationPhone,
		AdminEmail:     req.AdminEmail,
		AdminPassword:  req.AdminPassword,
		AdminFirstName: req.AdminFirstName,
		AdminLastName:  req.AdminLastName,
	}
}
