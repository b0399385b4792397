package appointment

import (
	"context"
	"errors"
	"log"
	"time"

	"medappointment/internal/database"
	"medappointment/internal/domain/auth"
)

type Service struct {
	appointments AppointmentRepository
	users        UserReader
	notifs       NotificationSender
	now          func() time.Time
}

func NewService(appointments AppointmentRepository, users UserReader, notifs NotificationSender) *Service {
	return &Service{
		appointments: appointments,
		users:        users,
		notifs:       notifs,
		now:          time.Now,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, actor Actor, req CreateAppointmentRequest) (*Appointment, error) {
	patientID := req.PatientID
	if actor.IsPatient() {
		if patientID != "" && patientID != actor.UserID {
			return nil, ErrForbidden
		}
		patientID = actor.UserID
	}
	if patientID == "" {
		return nil, ErrInvalidPatient
	}

	start := req.AppointmentDate.UTC()
	if !start.After(s.now()) {
		return nil, ErrInvalidDate
	}

	duration := req.Duration
	if duration == 0 {
		duration = DefaultDuration
	}
	if duration < MinDuration || duration > MaxDuration {
		return nil, ErrInvalidDuration
	}

	doctor, err := s.userWithRole(ctx, req.DoctorID, roleDoctor, ErrInvalidDoctor)
	if err != nil {
		return nil, err
	}
	patient, err := s.userWithRole(ctx, patientID, rolePatient, ErrInvalidPatient)
	if err != nil {
		return nil, err
	}

	a := &Appointment{
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		AppointmentDate: start,
		Duration:        duration,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Status:          StatusPending,
	}
	if err := s.ensureSlotFree(ctx, a); err != nil {
		return nil, err
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		if database.IsUniqueViolation(err, slotIndex) {
			return nil, ErrTimeSlotNotAvailable
		}
		return nil, err
	}

	if err := s.notifs.NotifyAppointmentBooked(ctx, a.DoctorID, a.ID, patient.FullName(), a.AppointmentDate); err != nil {
		log.Printf("appointment_notify_failed appointment_id=%s error=%q", a.ID, err.Error())
	}

	a.Doctor = summaryOf(doctor)
	a.Patient = summaryOf(patient)
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, actor Actor, id string) (*Appointment, error) {
	a, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return a, s.attach(ctx, a)
}

// ListMine returns the caller's own appointments; admins get everything.
func (s *Service) ListMine(ctx context.Context, actor Actor, status Status) ([]Appointment, error) {
	f := ListFilter{Status: status}
	switch {
	case actor.IsDoctor():
		f.DoctorID = actor.UserID
	case actor.IsPatient():
		f.PatientID = actor.UserID
	}
	return s.list(ctx, f)
}

// ListByDoctor shows a patient only their own bookings with that doctor.
func (s *Service) ListByDoctor(ctx context.Context, actor Actor, doctorID string, status Status) ([]Appointment, error) {
	f := ListFilter{DoctorID: doctorID, Status: status}
	if actor.IsPatient() {
		f.PatientID = actor.UserID
	}
	if actor.IsDoctor() && actor.UserID != doctorID {
		return nil, ErrForbidden
	}
	return s.list(ctx, f)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string, status Status) ([]Appointment, error) {
	return s.list(ctx, ListFilter{PatientID: patientID, Status: status})
}

func (s *Service) ListAll(ctx context.Context, status Status) ([]Appointment, error) {
	return s.list(ctx, ListFilter{Status: status})
}

func (s *Service) UpdateAppointment(ctx context.Context, actor Actor, id string, req UpdateAppointmentRequest) (*Appointment, error) {
	a, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	rescheduled := false
	if req.AppointmentDate != nil {
		start := req.AppointmentDate.UTC()
		if !start.After(s.now()) {
			return nil, ErrInvalidDate
		}
		rescheduled = rescheduled || !start.Equal(a.AppointmentDate)
		a.AppointmentDate = start
	}
	if req.Duration != nil {
		if *req.Duration < MinDuration || *req.Duration > MaxDuration {
			return nil, ErrInvalidDuration
		}
		rescheduled = rescheduled || *req.Duration != a.Duration
		a.Duration = *req.Duration
	}
	if req.Reason != nil {
		a.Reason = *req.Reason
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	if req.Status != nil {
		st, ok := ParseStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		// Patients may only cancel; confirming or closing is for staff.
		if actor.IsPatient() && st != a.Status && st != StatusCancelled {
			return nil, ErrForbidden
		}
		rescheduled = rescheduled || (!isActive(a.Status) && isActive(st))
		a.Status = st
	}

	if rescheduled && isActive(a.Status) {
		if err := s.ensureSlotFree(ctx, a); err != nil {
			return nil, err
		}
	}

	if err := s.appointments.Update(ctx, a); err != nil {
		if database.IsUniqueViolation(err, slotIndex) {
			return nil, ErrTimeSlotNotAvailable
		}
		return nil, err
	}
	return a, s.attach(ctx, a)
}

// CancelAppointment cancels and tells the other participant.
func (s *Service) CancelAppointment(ctx context.Context, actor Actor, id string) (*Appointment, error) {
	a, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCompleted || a.Status == StatusNoShow {
		return nil, ErrAlreadyFinished
	}
	if a.Status == StatusCancelled {
		return a, s.attach(ctx, a)
	}

	a.Status = StatusCancelled
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}

	recipients := []string{a.DoctorID, a.PatientID}
	if actor.UserID == a.DoctorID {
		recipients = []string{a.PatientID}
	} else if actor.UserID == a.PatientID {
		recipients = []string{a.DoctorID}
	}
	for _, userID := range recipients {
		if err := s.notifs.NotifyAppointmentCancelled(ctx, userID, a.ID, a.AppointmentDate); err != nil {
			log.Printf("appointment_notify_failed appointment_id=%s user_id=%s error=%q", a.ID, userID, err.Error())
		}
	}

	return a, s.attach(ctx, a)
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	return s.appointments.Delete(ctx, id)
}

// ensureSlotFree rejects a when another active appointment of the same doctor overlaps it.
func (s *Service) ensureSlotFree(ctx context.Context, a *Appointment) error {
	from := a.AppointmentDate.Add(-MaxDuration * time.Minute)
	existing, err := s.appointments.ActiveForDoctorBetween(ctx, a.DoctorID, from, a.EndsAt())
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].ID != a.ID && existing[i].Overlaps(a.AppointmentDate, a.EndsAt()) {
			return ErrTimeSlotNotAvailable
		}
	}
	return nil
}

func (s *Service) visible(ctx context.Context, actor Actor, id string) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !a.IsParticipant(actor.UserID) {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *Service) list(ctx context.Context, f ListFilter) ([]Appointment, error) {
	list, err := s.appointments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if err := s.attach(ctx, &list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *Service) attach(ctx context.Context, a *Appointment) error {
	for _, p := range []struct {
		id  string
		dst **auth.Summary
	}{{a.DoctorID, &a.Doctor}, {a.PatientID, &a.Patient}} {
		u, err := s.users.GetByID(ctx, p.id)
		if errors.Is(err, auth.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		*p.dst = summaryOf(u)
	}
	return nil
}

func (s *Service) userWithRole(ctx context.Context, id string, role auth.UserRole, invalid error) (*auth.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, auth.ErrUserNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if u.Role != role || !u.IsActive {
		return nil, invalid
	}
	return u, nil
}

func summaryOf(u *auth.User) *auth.Summary {
	s := u.Summary()
	return &s
}

func isActive(st Status) bool {
	return st == StatusPending || st == StatusConfirmed
}
