package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medappointment/internal/database"
	"medappointment/internal/domain/auth"
)

type testEnv struct {
	svc   *Service
	users *auth.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Connect(database.MemoryDSN(uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &auth.User{}, &DoctorProfile{}, &PatientProfile{}))

	users := auth.NewUserRepository(db)
	return &testEnv{
		svc:   NewService(NewDoctorRepository(db), NewPatientRepository(db), users),
		users: users,
	}
}

func (e *testEnv) user(t *testing.T, role auth.UserRole) *auth.User {
	t.Helper()
	u := &auth.User{
		Email:        uuid.NewString() + "@clinic.test",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     string(role),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func doctorReq(license string) CreateDoctorProfileRequest {
	return CreateDoctorProfileRequest{
		LicenseNumber:   license,
		Specialty:       SpecialtyCardiology,
		YearsExperience: 12,
		ConsultationFee: 80,
		AvailableFrom:   "08:00",
		AvailableTo:     "17:30",
	}
}

func TestService_CreateDoctorProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.user(t, auth.RoleDoctor)

	p, err := env.svc.CreateDoctorProfile(ctx, doc.ID, doctorReq("LIC-00001"))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	require.NotNil(t, p.User)
	assert.Equal(t, doc.Email, p.User.Email)

	_, err = env.svc.CreateDoctorProfile(ctx, doc.ID, doctorReq("LIC-00002"))
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)

	other := env.user(t, auth.RoleDoctor)
	_, err = env.svc.CreateDoctorProfile(ctx, other.ID, doctorReq("LIC-00001"))
	assert.ErrorIs(t, err, ErrLicenseNumberTaken)
}

func TestService_DoctorAvailabilityWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doc := env.user(t, auth.RoleDoctor)

	req := doctorReq("LIC-10000")
	req.AvailableFrom, req.AvailableTo = "18:00", "9:00"
	_, err := env.svc.CreateDoctorProfile(ctx, doc.ID, req)
	assert.ErrorIs(t, err, ErrInvalidAvailability)

	_, err = env.svc.CreateDoctorProfile(ctx, doc.ID, doctorReq("LIC-10000"))
	require.NoError(t, err)

	late := "20:00"
	_, err = env.svc.UpdateDoctorProfile(ctx, doc.ID, UpdateDoctorProfileRequest{AvailableFrom: &late})
	assert.ErrorIs(t, err, ErrInvalidAvailability)

	bio := "Heart specialist"
	p, err := env.svc.UpdateDoctorProfile(ctx, doc.ID, UpdateDoctorProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Heart specialist", p.Bio)
	assert.Equal(t, "08:00", p.AvailableFrom)
}

func TestService_ListDoctorsBySpecialty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.user(t, auth.RoleDoctor)
	b := env.user(t, auth.RoleDoctor)
	_, err := env.svc.CreateDoctorProfile(ctx, a.ID, doctorReq("LIC-20001"))
	require.NoError(t, err)
	req := doctorReq("LIC-20002")
	req.Specialty = SpecialtyPediatrics
	_, err = env.svc.CreateDoctorProfile(ctx, b.ID, req)
	require.NoError(t, err)

	all, err := env.svc.ListDoctors(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	peds, err := env.svc.ListDoctors(ctx, SpecialtyPediatrics)
	require.NoError(t, err)
	require.Len(t, peds, 1)
	assert.Equal(t, b.ID, peds[0].UserID)
}

func TestService_PatientProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pat := env.user(t, auth.RolePatient)

	_, err := env.svc.GetPatientProfile(ctx, pat.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	group := "O+"
	p, err := env.svc.CreatePatientProfile(ctx, pat.ID, PatientProfileRequest{BloodGroup: &group})
	require.NoError(t, err)
	assert.Equal(t, "O+", p.BloodGroup)

	allergies := "penicillin"
	p, err = env.svc.UpdatePatientProfile(ctx, pat.ID, PatientProfileRequest{Allergies: &allergies})
	require.NoError(t, err)
	assert.Equal(t, "O+", p.BloodGroup)
	assert.Equal(t, "penicillin", p.Allergies)

	_, err = env.svc.CreatePatientProfile(ctx, pat.ID, PatientProfileRequest{})
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)

	list, err := env.svc.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestValidWindow(t *testing.T) {
	assert.True(t, validWindow("", "10:00"))
	assert.True(t, validWindow("8:00", "10:00"))
	assert.False(t, validWindow("10:00", "10:00"))
	assert.False(t, validWindow("23:00", "01:00"))
}
