package repository

import (
	"context"
	"testing"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctors_CreateCopiesClinicName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)

	d, err := f.doctors.Create(ctx, NewDoctor{Name: "Dr. A", Specialization: "GP", ClinicID: c.ID, Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "doctor-001", d.ID)
	assert.Equal(t, "Alpha Clinic", *d.ClinicName)
	assert.True(t, d.IsAvailable)

	d2, err := f.doctors.Create(ctx, NewDoctor{Name: "Dr. B", Specialization: "ENT", ClinicID: c.ID, Phone: "556"})
	require.NoError(t, err)
	assert.Equal(t, "doctor-002", d2.ID)
}

func TestDoctors_CreateRejectsMissingOrInactiveClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.doctors.Create(ctx, NewDoctor{Name: "Dr. A", ClinicID: "clinic-404"})
	assert.True(t, apperr.IsValidation(err))

	c, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)
	_, err = f.clinics.Update(ctx, c.ID, models.ClinicUpdate{IsActive: boolPtr(false)})
	require.NoError(t, err)

	_, err = f.doctors.Create(ctx, NewDoctor{Name: "Dr. A", ClinicID: c.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "clinic not found or inactive", err.Error())
}

func TestDoctors_UpdateReassignsClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)
	b, err := f.clinics.Create(ctx, "Beta Clinic", nil)
	require.NoError(t, err)
	d, err := f.doctors.Create(ctx, NewDoctor{Name: "Dr. A", Specialization: "GP", ClinicID: a.ID, Phone: "1"})
	require.NoError(t, err)

	d, err = f.doctors.Update(ctx, d.ID, models.DoctorUpdate{ClinicID: &b.ID, IsAvailable: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, b.ID, d.ClinicID)
	assert.Equal(t, "Beta Clinic", *d.ClinicName)
	assert.False(t, d.IsAvailable)
	assert.Equal(t, "Dr. A", d.Name)

	_, err = f.doctors.Update(ctx, d.ID, models.DoctorUpdate{ClinicID: strPtr("clinic-404")})
	assert.True(t, apperr.IsValidation(err))
}

func TestDoctors_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)
	b, err := f.clinics.Create(ctx, "Beta Clinic", nil)
	require.NoError(t, err)
	_, err = f.doctors.Create(ctx, NewDoctor{Name: "Dr. A", ClinicID: a.ID})
	require.NoError(t, err)
	d2, err := f.doctors.Create(ctx, NewDoctor{Name: "Dr. B", ClinicID: a.ID})
	require.NoError(t, err)
	_, err = f.doctors.Create(ctx, NewDoctor{Name: "Dr. C", ClinicID: b.ID})
	require.NoError(t, err)
	_, err = f.doctors.Update(ctx, d2.ID, models.DoctorUpdate{IsAvailable: boolPtr(false)})
	require.NoError(t, err)

	inA, err := f.doctors.List(ctx, DoctorFilter{ClinicID: a.ID})
	require.NoError(t, err)
	assert.Len(t, inA, 2)

	available, err := f.doctors.List(ctx, DoctorFilter{ClinicID: a.ID, IsAvailable: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Dr. A", available[0].Name)

	assert.True(t, apperr.IsNotFound(f.doctors.Delete(ctx, "doctor-404")))
}
