package forpharma

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"forpharma-console/internal/domain/entity"
)

func (c *Client) ActivateAccount(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	_, err := c.do(ctx, http.MethodPost, "/user/activate_account", "", body)
	return err
}

func (c *Client) CreateOrganization(ctx context.Context, organization entity.NewOrganization) (*entity.CreatedOrganization, error) {
	raw, err := c.do(ctx, http.MethodPost, "/organizations/create", "", organization)
	if err != nil {
		return nil, err
	}

	created := &entity.CreatedOrganization{}
	if err := decodeBody(raw, created); err != nil {
		return nil, err
	}
	if created.OrganizationID == "" {
		return nil, fmt.Errorf("%w: organization created without id", ErrInvalidResponse)
	}
	return created, nil
}

func (c *Client) ListUsers(ctx context.Context, session entity.Session) ([]entity.User, error) {
	path := "/user/get_users?organizationId=" + url.QueryEscape(session.OrganizationID)
	raw, err := c.do(ctx, http.MethodGet, path, session.UpstreamToken, nil)
	if err != nil {
		return nil, err
	}

	users := []entity.User{}
	if err := decodeBody(raw, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser posts the member form as multipart/form-data, the way the backend's
// upload-capable endpoint expects it.
func (c *Client) CreateUser(ctx context.Context, session entity.Session, user entity.NewUser) (*entity.User, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"organizationName", user.OrganizationName},
		{"email", user.Email},
		{"password", user.Password},
		{"firstName", user.FirstName},
		{"lastName", user.LastName},
		{"phone", user.Phone},
		{"role", user.Role},
		{"employeeCode", user.EmployeeCode},
		{"city", user.City},
		{"state", user.State},
		{"dob", user.DateOfBirth},
	}
	for _, f := range fields {
		if err := form.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	raw, err := c.send(ctx, http.MethodPost, "/user/create", session.UpstreamToken, &buf, form.FormDataContentType())
	if err != nil {
		return nil, err
	}

	created := &entity.User{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Phone:     user.Phone,
	}
	if err := decodeBody(raw, created); err != nil {
		return nil, err
	}
	return created, nil
}
