package repository

import (
	"context"
	"testing"
	"time"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitInput(queueID, patientID, clinicID string, amount float64) models.VisitInput {
	return models.VisitInput{
		QueueID:           queueID,
		PatientID:         patientID,
		PatientName:       "Ann",
		ClinicID:          clinicID,
		ClinicName:        "Alpha Clinic",
		DoctorID:          "doctor-001",
		DoctorName:        "Dr. A",
		Reason:            "checkup",
		PaymentAmount:     amount,
		ModeOfPayment:     "cash",
		ModeOfAppointment: "walk-in",
	}
}

func TestVisits_RecordStampsTodayAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, err := f.visits.Record(ctx, visitInput("q1", "p1", "clinic-001", 150000))
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "2025-03-15", v.VisitDate)
	assert.Equal(t, models.DefaultAppointmentStatus, v.AppointmentStatus)

	got, err := f.visits.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 150000.0, got.PaymentAmount)
	assert.Equal(t, "Dr. A", got.DoctorName)
}

func TestVisits_ListFiltersAndOrdersNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	days := []string{"2025-03-01", "2025-03-10", "2025-03-20"}
	for i, day := range days {
		at, err := time.ParseInLocation(models.DateLayout, day, time.Local)
		require.NoError(t, err)
		rec := NewVisits(f.db, func() time.Time { return at })
		clinic := "clinic-001"
		if i == 1 {
			clinic = "clinic-002"
		}
		_, err = rec.Record(ctx, visitInput("q", "p1", clinic, 100))
		require.NoError(t, err)
	}
	_, err := f.visits.Record(ctx, visitInput("q", "p2", "clinic-001", 100))
	require.NoError(t, err)

	all, err := f.visits.List(ctx, models.VisitFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2025-03-20", all[0].VisitDate)
	assert.Equal(t, "2025-03-01", all[3].VisitDate)

	ranged, err := f.visits.List(ctx, models.VisitFilter{StartDate: "2025-03-10", EndDate: "2025-03-15"})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "2025-03-15", ranged[0].VisitDate)
	assert.Equal(t, "2025-03-10", ranged[1].VisitDate)

	byPatient, err := f.visits.List(ctx, models.VisitFilter{PatientID: "p1", ClinicID: "clinic-001"})
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)
}

func TestVisits_ByQueueReturnsLatest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.visits.ByQueue(ctx, "q1")
	assert.True(t, apperr.IsNotFound(err))

	early := NewVisits(f.db, func() time.Time { return testStart.AddDate(0, 0, -1) })
	_, err = early.Record(ctx, visitInput("q1", "p1", "clinic-001", 10))
	require.NoError(t, err)
	latest, err := f.visits.Record(ctx, visitInput("q1", "p1", "clinic-001", 20))
	require.NoError(t, err)

	got, err := f.visits.ByQueue(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, latest.ID, got.ID)
}

func TestVisits_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, err := f.visits.Record(ctx, visitInput("q1", "p1", "clinic-001", 10))
	require.NoError(t, err)

	amount := 25.5
	v, err = f.visits.Update(ctx, v.ID, models.VisitUpdate{PaymentAmount: &amount, AppointmentStatus: strPtr("No-show")})
	require.NoError(t, err)
	assert.Equal(t, 25.5, v.PaymentAmount)
	assert.Equal(t, "No-show", v.AppointmentStatus)
	assert.Equal(t, "checkup", v.Reason)

	negative := -1.0
	_, err = f.visits.Update(ctx, v.ID, models.VisitUpdate{PaymentAmount: &negative})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.visits.Update(ctx, "missing", models.VisitUpdate{})
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, f.visits.Delete(ctx, v.ID))
	assert.True(t, apperr.IsNotFound(f.visits.Delete(ctx, v.ID)))
}
