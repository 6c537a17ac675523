package forpharma

import (
	"context"
	"net/http"
	"net/url"

	"forpharma-console/internal/domain/entity"
)

func (c *Client) ListDoctors(ctx context.Context, session entity.Session) ([]entity.Doctor, error) {
	doctors := []entity.Doctor{}
	if _, err := c.call(ctx, http.MethodGet, "/doctors", session.UpstreamToken, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (c *Client) CreateDoctor(ctx context.Context, session entity.Session, draft entity.DoctorDraft) (*entity.CreatedDoctor, error) {
	var created struct {
		ID string `json:"id"`
	}
	env, err := c.call(ctx, http.MethodPost, "/doctors/create", session.UpstreamToken, draft, &created)
	if err != nil {
		return nil, err
	}
	return &entity.CreatedDoctor{Success: env.Success, ID: created.ID}, nil
}

func (c *Client) CreateHospitalAssociations(ctx context.Context, session entity.Session, associations []entity.HospitalAssociationRecord) error {
	body := map[string]interface{}{"associations": associations}
	_, err := c.call(ctx, http.MethodPost, "/doctors/createAssociations", session.UpstreamToken, body, nil)
	return err
}

func (c *Client) ListDoctorHospitalAssociations(ctx context.Context, session entity.Session, doctorID string) ([]entity.HospitalAssociationRecord, error) {
	var rows []struct {
		ID string `json:"id"`
		entity.HospitalAssociationRecord
	}
	path := "/doctors/" + url.PathEscape(doctorID) + "/hospitals"
	if _, err := c.call(ctx, http.MethodGet, path, session.UpstreamToken, nil, &rows); err != nil {
		return nil, err
	}

	associations := make([]entity.HospitalAssociationRecord, 0, len(rows))
	for _, row := range rows {
		a := row.HospitalAssociationRecord
		if a.AssociationID == "" {
			a.AssociationID = row.ID
		}
		if a.DoctorID == "" {
			a.DoctorID = doctorID
		}
		associations = append(associations, a)
	}
	return associations, nil
}

func (c *Client) UpdateHospitalAssociation(ctx context.Context, session entity.Session, associationID string, association entity.HospitalAssociationRecord) error {
	path := "/doctors/updateAssociations/" + url.PathEscape(associationID)
	_, err := c.call(ctx, http.MethodPut, path, session.UpstreamToken, association, nil)
	return err
}

func (c *Client) DeleteHospitalAssociation(ctx context.Context, session entity.Session, associationID string) error {
	path := "/doctors/deleteAssociations/" + url.PathEscape(associationID)
	_, err := c.call(ctx, http.MethodDelete, path, session.UpstreamToken, nil, nil)
	return err
}

func (c *Client) CreateConsultationSchedule(ctx context.Context, session entity.Session, doctorID string, consultations []entity.ConsultationRecord) error {
	if consultations == nil {
		consultations = []entity.ConsultationRecord{}
	}
	body := map[string]interface{}{"consultations": consultations}
	// A doctor that was not created has no id; the key is left out rather than sent empty.
	if doctorID != "" {
		body["doctorId"] = doctorID
	}
	_, err := c.call(ctx, http.MethodPost, "/doctors/createSchedules", session.UpstreamToken, body, nil)
	return err
}

func (c *Client) CreateChemistRelations(ctx context.Context, session entity.Session, relations []entity.ChemistRelation) error {
	body := map[string]interface{}{"relations": relations}
	_, err := c.call(ctx, http.MethodPost, "/chemists/doctor-relations", session.UpstreamToken, body, nil)
	return err
}
