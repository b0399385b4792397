package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medappointment/internal/database"
	"medappointment/internal/domain/auth"
)

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyAppointmentBooked(ctx context.Context, doctorID, appointmentID, patientName string, at time.Time) error {
	return m.Called(ctx, doctorID, appointmentID, patientName, at).Error(0)
}

func (m *MockNotificationSender) NotifyAppointmentCancelled(ctx context.Context, userID, appointmentID string, at time.Time) error {
	return m.Called(ctx, userID, appointmentID, at).Error(0)
}

type fixture struct {
	svc     *Service
	repo    *Repository
	users   *auth.UserRepository
	notifs  *MockNotificationSender
	now     time.Time
	doctor  *auth.User
	patient *auth.User
	admin   *auth.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(database.MemoryDSN(uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &auth.User{}, &Appointment{}))

	f := &fixture{
		repo:   NewRepository(db),
		users:  auth.NewUserRepository(db),
		notifs: new(MockNotificationSender),
		now:    time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.repo, f.users, f.notifs)
	f.svc.now = func() time.Time { return f.now }

	f.doctor = f.user(t, auth.RoleDoctor, "Gregory", "House")
	f.patient = f.user(t, auth.RolePatient, "Jane", "Doe")
	f.admin = f.user(t, auth.RoleAdmin, "Ad", "Min")
	return f
}

func (f *fixture) user(t *testing.T, role auth.UserRole, first, last string) *auth.User {
	t.Helper()
	u := &auth.User{
		Email: uuid.NewString() + "@clinic.test", PasswordHash: "x",
		FirstName: first, LastName: last, Role: role, IsActive: true,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) actor(u *auth.User) Actor {
	return Actor{UserID: u.ID, Role: string(u.Role)}
}

func (f *fixture) at(hour, minute int) time.Time {
	return time.Date(2026, 5, 10, hour, minute, 0, 0, time.UTC)
}

func (f *fixture) book(t *testing.T, start time.Time, duration int) *Appointment {
	t.Helper()
	a, err := f.svc.CreateAppointment(context.Background(), f.actor(f.patient), CreateAppointmentRequest{
		DoctorID: f.doctor.ID, AppointmentDate: start, Duration: duration, Reason: "Routine checkup",
	})
	require.NoError(t, err)
	return a
}

func TestService_CreateAppointment(t *testing.T) {
	f := newFixture(t)
	f.notifs.On("NotifyAppointmentBooked", mock.Anything, f.doctor.ID, mock.Anything, "Jane Doe", f.at(9, 0)).Return(nil).Once()

	a := f.book(t, f.at(9, 0), 0)

	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, DefaultDuration, a.Duration)
	assert.Equal(t, f.patient.ID, a.PatientID)
	require.NotNil(t, a.Doctor)
	assert.Equal(t, "House", a.Doctor.LastName)
	f.notifs.AssertExpectations(t)
}

func TestService_CreateAppointment_Conflicts(t *testing.T) {
	f := newFixture(t)
	f.notifs.On("NotifyAppointmentBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.book(t, f.at(9, 0), 60)

	tests := []struct {
		name     string
		start    time.Time
		duration int
		wantErr  error
	}{
		{"same start", f.at(9, 0), 30, ErrTimeSlotNotAvailable},
		{"starts inside", f.at(9, 30), 30, ErrTimeSlotNotAvailable},
		{"ends inside", f.at(8, 30), 45, ErrTimeSlotNotAvailable},
		{"wraps around", f.at(8, 0), 180, ErrTimeSlotNotAvailable},
		{"back to back after", f.at(10, 0), 30, nil},
		{"back to back before", f.at(8, 30), 30, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateAppointment(context.Background(), f.actor(f.patient), CreateAppointmentRequest{
				DoctorID: f.doctor.ID, AppointmentDate: tt.start, Duration: tt.duration, Reason: "Follow-up visit",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_CancelledSlotIsFree(t *testing.T) {
	f := newFixture(t)
	f.notifs.On("NotifyAppointmentBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifs.On("NotifyAppointmentCancelled", mock.Anything, f.doctor.ID, mock.Anything, mock.Anything).Return(nil).Once()

	a := f.book(t, f.at(11, 0), 30)
	cancelled, err := f.svc.CancelAppointment(context.Background(), f.actor(f.patient), a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	f.book(t, f.at(11, 0), 30)
	f.notifs.AssertExpectations(t)
}

func TestService_CreateAppointment_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.user(t, auth.RolePatient, "Other", "Patient")

	_, err := f.svc.CreateAppointment(ctx, f.actor(f.patient), CreateAppointmentRequest{
		DoctorID: f.doctor.ID, PatientID: other.ID, AppointmentDate: f.at(9, 0), Reason: "For a friend",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.CreateAppointment(ctx, f.actor(f.patient), CreateAppointmentRequest{
		DoctorID: f.patient.ID, AppointmentDate: f.at(9, 0), Reason: "Wrong doctor",
	})
	assert.ErrorIs(t, err, ErrInvalidDoctor)

	_, err = f.svc.CreateAppointment(ctx, f.actor(f.admin), CreateAppointmentRequest{
		DoctorID: f.doctor.ID, PatientID: f.doctor.ID, AppointmentDate: f.at(9, 0), Reason: "Wrong patient",
	})
	assert.ErrorIs(t, err, ErrInvalidPatient)

	_, err = f.svc.CreateAppointment(ctx, f.actor(f.patient), CreateAppointmentRequest{
		DoctorID: f.doctor.ID, AppointmentDate: f.now.Add(-time.Hour), Reason: "Too late now",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.svc.CreateAppointment(ctx, f.actor(f.patient), CreateAppointmentRequest{
		DoctorID: f.doctor.ID, AppointmentDate: f.at(9, 0), Duration: 240, Reason: "Marathon visit",
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	f.notifs.AssertNotCalled(t, "NotifyAppointmentBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Visibility(t *testing.T) {
	f := newFixture(t)
	f.notifs.On("NotifyAppointmentBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()
	a := f.book(t, f.at(9, 0), 30)
	stranger := f.user(t, auth.RolePatient, "Nosy", "Neighbor")
	otherDoctor := f.user(t, auth.RoleDoctor, "Other", "Doctor")

	_, err := f.svc.GetAppointment(ctx, f.actor(stranger), a.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := f.svc.GetAppointment(ctx, f.actor(f.admin), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	mine, err := f.svc.ListMine(ctx, f.actor(f.doctor), "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.svc.ListByDoctor(ctx, f.actor(stranger), f.doctor.ID, "")
	require.NoError(t, err)
	assert.Empty(t, theirs, "patients only see their own bookings")

	_, err = f.svc.ListByDoctor(ctx, f.actor(otherDoctor), f.doctor.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)

	pending, err := f.svc.ListAll(ctx, StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	confirmed, err := f.svc.ListAll(ctx, StatusConfirmed)
	require.NoError(t, err)
	assert.Empty(t, confirmed)
}

func TestService_UpdateAppointment(t *testing.T) {
	f := newFixture(t)
	f.notifs.On("NotifyAppointmentBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()
	first := f.book(t, f.at(9, 0), 30)
	second := f.book(t, f.at(10, 0), 30)

	newStart := f.at(9, 15)
	_, err := f.svc.UpdateAppointment(ctx, f.actor(f.patient), second.ID, UpdateAppointmentRequest{AppointmentDate: &newStart})
	assert.ErrorIs(t, err, ErrTimeSlotNotAvailable)

	tooLong := 300
	_, err = f.svc.UpdateAppointment(ctx, f.actor(f.patient), first.ID, UpdateAppointmentRequest{Duration: &tooLong})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	longer := 45
	updated, err := f.svc.UpdateAppointment(ctx, f.actor(f.patient), first.ID, UpdateAppointmentRequest{Duration: &longer})
	require.NoError(t, err, "extending into free time does not clash with itself")
	assert.Equal(t, 45, updated.Duration)

	confirm := "CONFIRMED"
	_, err = f.svc.UpdateAppointment(ctx, f.actor(f.patient), first.ID, UpdateAppointmentRequest{Status: &confirm})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err = f.svc.UpdateAppointment(ctx, f.actor(f.doctor), first.ID, UpdateAppointmentRequest{Status: &confirm})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)

	bogus := "later"
	_, err = f.svc.UpdateAppointment(ctx, f.actor(f.doctor), first.ID, UpdateAppointmentRequest{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_CancelFinished(t *testing.T) {
	f := newFixture(t)
	f.notifs.On("NotifyAppointmentBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()
	a := f.book(t, f.at(9, 0), 30)

	done := "completed"
	_, err := f.svc.UpdateAppointment(ctx, f.actor(f.doctor), a.ID, UpdateAppointmentRequest{Status: &done})
	require.NoError(t, err)

	_, err = f.svc.CancelAppointment(ctx, f.actor(f.patient), a.ID)
	assert.ErrorIs(t, err, ErrAlreadyFinished)
	f.notifs.AssertNotCalled(t, "NotifyAppointmentCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_DeleteAppointment(t *testing.T) {
	f := newFixture(t)
	f.notifs.On("NotifyAppointmentBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	a := f.book(t, f.at(9, 0), 30)

	require.NoError(t, f.svc.DeleteAppointment(context.Background(), a.ID))
	assert.ErrorIs(t, f.svc.DeleteAppointment(context.Background(), a.ID), ErrAppointmentNotFound)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("  No-Show ")
	assert.True(t, ok)
	assert.Equal(t, StatusNoShow, st)

	_, ok = ParseStatus("no_show")
	assert.False(t, ok)
}
