package repository

import (
	"context"
	"testing"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueNumberPrefix(t *testing.T) {
	assert.Equal(t, "ALP", queueNumberPrefix("Alpha Clinic"))
	assert.Equal(t, "EN", queueNumberPrefix("en"))
	assert.Equal(t, "ÄRZ", queueNumberPrefix("ärzte"))
}

func TestQueues_NumberingAndPositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)

	q1, err := f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: c.ID})
	require.NoError(t, err)
	q2, err := f.queues.Create(ctx, NewQueue{PatientID: "p2", PatientName: "Bo", ClinicID: c.ID})
	require.NoError(t, err)

	assert.Equal(t, "ALP001", q1.QueueNumber)
	assert.Equal(t, "ALP002", q2.QueueNumber)
	assert.Equal(t, models.StatusWaiting, q1.Status)
	assert.Equal(t, "Alpha Clinic", q1.ClinicName)
	assert.Less(t, q1.RegistrationTime, q2.RegistrationTime)

	pos, err := f.queues.Position(ctx, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	pos, err = f.queues.Position(ctx, q2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	_, err = f.queues.Transition(ctx, q1.ID, models.StatusCompleted, models.QueueExtra{})
	require.NoError(t, err)

	pos, err = f.queues.Position(ctx, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	pos, err = f.queues.Position(ctx, q2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	pos, err = f.queues.Position(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	// completed entries still count towards the next number
	q3, err := f.queues.Create(ctx, NewQueue{PatientID: "p3", PatientName: "Cy", ClinicID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, "ALP003", q3.QueueNumber)
}

func TestQueues_PositionIsPerClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)
	b, err := f.clinics.Create(ctx, "Beta Clinic", nil)
	require.NoError(t, err)

	_, err = f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: a.ID})
	require.NoError(t, err)
	qb, err := f.queues.Create(ctx, NewQueue{PatientID: "p2", PatientName: "Bo", ClinicID: b.ID})
	require.NoError(t, err)

	assert.Equal(t, "BET001", qb.QueueNumber)
	pos, err := f.queues.Position(ctx, qb.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestQueues_CreateValidatesClinicAndDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: "clinic-404"})
	require.Error(t, err)
	assert.Equal(t, "clinic not found or inactive", err.Error())

	a, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)
	b, err := f.clinics.Create(ctx, "Beta Clinic", nil)
	require.NoError(t, err)
	other, err := f.doctors.Create(ctx, NewDoctor{Name: "Dr. B", ClinicID: b.ID})
	require.NoError(t, err)
	busy, err := f.doctors.Create(ctx, NewDoctor{Name: "Dr. Busy", ClinicID: a.ID})
	require.NoError(t, err)
	_, err = f.doctors.Update(ctx, busy.ID, models.DoctorUpdate{IsAvailable: boolPtr(false)})
	require.NoError(t, err)

	for _, id := range []string{"doctor-404", other.ID, busy.ID} {
		_, err = f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: a.ID, DoctorID: strPtr(id)})
		require.Error(t, err, id)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "doctor not found or not available", err.Error())
	}

	_, err = f.clinics.Update(ctx, a.ID, models.ClinicUpdate{IsActive: boolPtr(false)})
	require.NoError(t, err)
	_, err = f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: a.ID})
	assert.True(t, apperr.IsValidation(err))

	// rejected registrations do not consume numbers
	q, err := f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: b.ID, DoctorID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, "BET001", q.QueueNumber)
	assert.Equal(t, "Dr. B", *q.DoctorName)
}

func TestQueues_TransitionTimestamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)
	q, err := f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: c.ID})
	require.NoError(t, err)

	first, err := f.queues.Transition(ctx, q.ID, models.StatusInService, models.QueueExtra{})
	require.NoError(t, err)
	require.NotNil(t, first.CalledTime)
	require.NotNil(t, first.ServiceStartTime)
	assert.Equal(t, *first.CalledTime, *first.ServiceStartTime)
	assert.Nil(t, first.ServiceEndTime)

	again, err := f.queues.Transition(ctx, q.ID, models.StatusInService, models.QueueExtra{})
	require.NoError(t, err)
	assert.Equal(t, *first.CalledTime, *again.CalledTime)
	assert.Equal(t, *first.ServiceStartTime, *again.ServiceStartTime)

	done, err := f.queues.Transition(ctx, q.ID, models.StatusCompleted, models.QueueExtra{})
	require.NoError(t, err)
	require.NotNil(t, done.ServiceEndTime)

	redone, err := f.queues.Transition(ctx, q.ID, models.StatusCompleted, models.QueueExtra{})
	require.NoError(t, err)
	assert.Greater(t, *redone.ServiceEndTime, *done.ServiceEndTime)
	assert.Equal(t, *first.CalledTime, *redone.CalledTime)

	// any status may follow any other
	back, err := f.queues.Transition(ctx, q.ID, models.StatusWaiting, models.QueueExtra{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, back.Status)
	assert.NotNil(t, back.ServiceEndTime)
}

func TestQueues_TransitionMergesExtras(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)
	d, err := f.doctors.Create(ctx, NewDoctor{Name: "Dr. A", ClinicID: c.ID})
	require.NoError(t, err)
	q, err := f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: c.ID})
	require.NoError(t, err)

	q, err = f.queues.Transition(ctx, q.ID, models.StatusInService, models.QueueExtra{DoctorID: &d.ID, Notes: strPtr("room 4")})
	require.NoError(t, err)
	assert.Equal(t, d.ID, *q.DoctorID)
	assert.Equal(t, "Dr. A", *q.DoctorName)
	assert.Equal(t, "room 4", *q.Notes)

	q, err = f.queues.Transition(ctx, q.ID, models.StatusCompleted, models.QueueExtra{})
	require.NoError(t, err)
	assert.Equal(t, "room 4", *q.Notes)
	assert.Equal(t, d.ID, *q.DoctorID)

	_, err = f.queues.Transition(ctx, q.ID, models.StatusCompleted, models.QueueExtra{DoctorID: strPtr("doctor-404")})
	assert.True(t, apperr.IsValidation(err))
}

func TestQueues_TransitionErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.queues.Transition(ctx, "missing", models.StatusCompleted, models.QueueExtra{})
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.queues.Transition(ctx, "missing", "paused", models.QueueExtra{})
	assert.True(t, apperr.IsValidation(err))
}

func TestQueues_ListFiltersAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.clinics.Create(ctx, "Alpha Clinic", nil)
	require.NoError(t, err)
	b, err := f.clinics.Create(ctx, "Beta Clinic", nil)
	require.NoError(t, err)

	q1, err := f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: a.ID})
	require.NoError(t, err)
	_, err = f.queues.Create(ctx, NewQueue{PatientID: "p2", PatientName: "Bo", ClinicID: b.ID})
	require.NoError(t, err)
	q3, err := f.queues.Create(ctx, NewQueue{PatientID: "p1", PatientName: "Ann", ClinicID: a.ID})
	require.NoError(t, err)
	_, err = f.queues.Transition(ctx, q3.ID, models.StatusCancelled, models.QueueExtra{})
	require.NoError(t, err)

	all, err := f.queues.List(ctx, QueueFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, q1.ID, all[0].ID)
	assert.Equal(t, q3.ID, all[2].ID)

	waitingA, err := f.queues.List(ctx, QueueFilter{ClinicID: a.ID, Status: models.StatusWaiting})
	require.NoError(t, err)
	require.Len(t, waitingA, 1)
	assert.Equal(t, q1.ID, waitingA[0].ID)

	mine, err := f.queues.List(ctx, QueueFilter{PatientID: "p1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, f.queues.Delete(ctx, q1.ID))
	assert.True(t, apperr.IsNotFound(f.queues.Delete(ctx, q1.ID)))
}
