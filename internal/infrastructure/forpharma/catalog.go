package forpharma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"
)

func (c *Client) Login(ctx context.Context, email, password string) (*entity.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := c.do(ctx, http.MethodPost, "/user/login", "", body)
	if err != nil {
		// The backend answers unknown users and wrong passwords with 400 or 404.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return nil, gateway.ErrUpstreamUnauthorized
		}
		return nil, err
	}

	// Login answers with {token, user} directly, without the data envelope.
	result := &entity.LoginResult{}
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if result.Token == "" || result.User.Organization.ID == "" {
		return nil, fmt.Errorf("%w: login response without token or organization", ErrInvalidResponse)
	}
	return result, nil
}

func (c *Client) ListHospitals(ctx context.Context, session entity.Session) ([]entity.Hospital, error) {
	hospitals := []entity.Hospital{}
	if _, err := c.call(ctx, http.MethodGet, "/hospitals/", session.UpstreamToken, nil, &hospitals); err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (c *Client) CreateHospital(ctx context.Context, session entity.Session, hospital *entity.Hospital) (*entity.Hospital, error) {
	created := *hospital
	if _, err := c.call(ctx, http.MethodPost, "/hospitals/create", session.UpstreamToken, hospital, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListChemists(ctx context.Context, session entity.Session) ([]entity.Chemist, error) {
	chemists := []entity.Chemist{}
	if _, err := c.call(ctx, http.MethodGet, "/chemists", session.UpstreamToken, nil, &chemists); err != nil {
		return nil, err
	}
	return chemists, nil
}

func (c *Client) CreateChemist(ctx context.Context, session entity.Session, chemist *entity.Chemist) (*entity.Chemist, error) {
	created := *chemist
	if _, err := c.call(ctx, http.MethodPost, "/chemists/create", session.UpstreamToken, chemist, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListDrugs(ctx context.Context, session entity.Session) ([]entity.Drug, error) {
	drugs := []entity.Drug{}
	if _, err := c.call(ctx, http.MethodGet, "/drugs", session.UpstreamToken, nil, &drugs); err != nil {
		return nil, err
	}
	return drugs, nil
}

func (c *Client) CreateDrug(ctx context.Context, session entity.Session, drug *entity.Drug) (*entity.Drug, error) {
	created := *drug
	if _, err := c.call(ctx, http.MethodPost, "/drugs/create", session.UpstreamToken, drug, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
