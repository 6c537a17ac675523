package usecase

import (
	"context"
	"testing"
	"time"

	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway/gatewaytest"
	repo "forpharma-console/internal/repository"
	"forpharma-console/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceFixture(t *testing.T) (ReferenceUsecase, *gatewaytest.Fake, *fakeAuditService) {
	t.Helper()
	_, client := newTestRedis(t)
	log := quietLogger()

	gw := gatewaytest.NewFake()
	sync := service.NewReferenceSyncService(gw, repo.NewReferenceCache(client), log, time.Minute)
	t.Cleanup(sync.Stop)

	audit := &fakeAuditService{}
	return NewReferenceUsecase(log, gw, sync, audit), gw, audit
}

func TestListDoctorsSearch(t *testing.T) {
	uc, gw, _ := newReferenceFixture(t)
	gw.Doctors = []entity.Doctor{
		{ID: "D1", Name: "Dr. Ana", Specialization: "Cardiology"},
		{ID: "D2", Name: "Dr. Budi", Specialization: "ENT"},
		{ID: "D3", Name: "Dr. Cardi", Specialization: "Dermatology"},
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"no filter", "", []string{"D1", "D2", "D3"}},
		{"by specialization", "ent", []string{"D2"}},
		{"by name or specialization", "CARDI", []string{"D1", "D3"}},
		{"no match", "neuro", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.ListDoctors(context.Background(), testSession, tt.search)
			require.NoError(t, err)
			ids := []string{}
			for _, d := range resp.Doctors {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), resp.Total)
		})
	}

	// Every search is served by one cached fetch.
	assert.Len(t, gw.CallsTo("ListDoctors"), 1)
}

func TestCreateHospitalInvalidatesList(t *testing.T) {
	uc, gw, audit := newReferenceFixture(t)
	ctx := context.Background()
	gw.Hospitals = []entity.Hospital{{ID: "H1", Name: "General"}}

	list, err := uc.ListHospitals(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	created, err := uc.CreateHospital(ctx, testSession, &dto.CreateHospitalRequest{Name: "North", City: "Pune"})
	require.NoError(t, err)
	assert.Equal(t, "hosp-1", created.ID)
	assert.Equal(t, []string{entity.AuditActionHospitalCreate}, audit.actions())

	gw.Hospitals = append(gw.Hospitals, entity.Hospital{ID: "hosp-1", Name: "North"})
	list, err = uc.ListHospitals(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, gw.CallsTo("ListHospitals"), 2)
}

func TestCreateChemistAndDrug(t *testing.T) {
	uc, gw, audit := newReferenceFixture(t)
	ctx := context.Background()

	chemist, err := uc.CreateChemist(ctx, testSession, &dto.CreateChemistRequest{Name: "Apotek", Type: "STOCKIST"})
	require.NoError(t, err)
	assert.Equal(t, "chem-1", chemist.ID)
	assert.Equal(t, "STOCKIST", chemist.Type)

	drug, err := uc.CreateDrug(ctx, testSession, &dto.CreateDrugRequest{Name: "Paracetamol"})
	require.NoError(t, err)
	assert.Equal(t, "drug-1", drug.ID)

	assert.Len(t, gw.CallsTo("CreateChemist"), 1)
	assert.Equal(t, []string{entity.AuditActionChemistCreate, entity.AuditActionDrugCreate}, audit.actions())
}
