package forpharma

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"forpharma-console/config"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(config.UpstreamConfig{BaseURL: server.URL + "/", Timeout: 2 * time.Second}, log)
}

var session = entity.Session{UpstreamToken: "upstream-token"}

func TestCreateDoctorReadsEnvelopeID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/doctors/create", r.URL.Path)
		assert.Equal(t, "Bearer upstream-token", r.Header.Get("Authorization"))

		var draft entity.DoctorDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Dr. A", draft.Name)

		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"D1","name":"Dr. A"}}`))
	})

	created, err := client.CreateDoctor(context.Background(), session, entity.DoctorDraft{Name: "Dr. A"})
	require.NoError(t, err)
	assert.Equal(t, &entity.CreatedDoctor{Success: true, ID: "D1"}, created)
}

func TestCreateDoctorWithoutID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"duplicate email"}`))
	})

	created, err := client.CreateDoctor(context.Background(), session, entity.DoctorDraft{})
	require.NoError(t, err)
	assert.False(t, created.Success)
	assert.Empty(t, created.ID)
}

func TestConsultationSchedulePayload(t *testing.T) {
	var body map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/doctors/createSchedules", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	err := client.CreateConsultationSchedule(context.Background(), session, "D1", []entity.ConsultationRecord{{
		DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "12:00", ConsultationType: entity.ConsultationTypeOPD, IsActive: true, HospitalID: "H1",
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `"D1"`, string(body["doctorId"]))

	var consultations []map[string]interface{}
	require.NoError(t, json.Unmarshal(body["consultations"], &consultations))
	require.Len(t, consultations, 1)
	assert.Equal(t, "MONDAY", consultations[0]["dayOfWeek"])
}

func TestConsultationScheduleWithoutDoctorOmitsID(t *testing.T) {
	var body map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	err := client.CreateConsultationSchedule(context.Background(), session, "", nil)
	require.NoError(t, err)
	assert.NotContains(t, body, "doctorId")
	assert.JSONEq(t, `[]`, string(body["consultations"]))
}

func TestAssociationAndRelationPayloads(t *testing.T) {
	paths := map[string]map[string]json.RawMessage{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		paths[r.URL.Path] = body
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	err := client.CreateHospitalAssociations(context.Background(), session, []entity.HospitalAssociationRecord{{
		HospitalAssociationDraft: entity.HospitalAssociationDraft{HospitalID: "H1"},
		DoctorID:                 "D1",
	}})
	require.NoError(t, err)
	err = client.CreateChemistRelations(context.Background(), session, []entity.ChemistRelation{{DoctorID: "D1", ChemistID: "C1"}})
	require.NoError(t, err)

	var associations []map[string]interface{}
	require.NoError(t, json.Unmarshal(paths["/doctors/createAssociations"]["associations"], &associations))
	require.Len(t, associations, 1)
	assert.Equal(t, "H1", associations[0]["hospitalId"])
	assert.Equal(t, "D1", associations[0]["doctorId"])
	assert.Contains(t, associations[0], "schedule")

	assert.JSONEq(t, `[{"doctorId":"D1","chemistId":"C1"}]`, string(paths["/chemists/doctor-relations"]["relations"]))
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListHospitals(context.Background(), session)
	assert.ErrorIs(t, err, gateway.ErrUpstreamUnauthorized)
}

func TestErrorStatusCarriesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"hospitalId is invalid"}`))
	})

	err := client.DeleteHospitalAssociation(context.Background(), session, "as-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "hospitalId is invalid", apiErr.Message)
}

func TestInvalidJSONIsReported(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := client.ListDrugs(context.Background(), session)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":"u1","email":"a@b.com","firstName":"A","role":"admin","organization":{"id":"org-1","name":"Acme"}}}`))
	})

	result, err := client.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", result.Token)
	assert.Equal(t, "org-1", result.User.Organization.ID)
}

func TestLoginWithoutOrganizationIsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":"u1"}}`))
	})

	_, err := client.Login(context.Background(), "a@b.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestLoginRejectedCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"User not found"}`))
	})

	_, err := client.Login(context.Background(), "a@b.com", "secret")
	assert.ErrorIs(t, err, gateway.ErrUpstreamUnauthorized)
}

func TestListDoctorHospitalAssociationsFillsIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/doctors/D1/hospitals", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"as-1","hospitalId":"H1","department":"ENT"}]}`))
	})

	associations, err := client.ListDoctorHospitalAssociations(context.Background(), session, "D1")
	require.NoError(t, err)
	require.Len(t, associations, 1)
	assert.Equal(t, "as-1", associations[0].AssociationID)
	assert.Equal(t, "D1", associations[0].DoctorID)
	assert.Equal(t, "ENT", associations[0].Department)
}

func TestListDrugsDecodesPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"dr1","name":"Paracetamol","price":"12.50","is_available":true}]}`))
	})

	drugs, err := client.ListDrugs(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, drugs, 1)
	assert.Equal(t, "12.5", drugs[0].Price.String())
	assert.True(t, drugs[0].IsAvailable)
}
