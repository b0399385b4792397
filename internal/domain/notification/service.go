package notification

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Publisher pushes events to connected clients.
type Publisher interface {
	Publish(userID string, event WSEvent)
}

type Service struct {
	repo Repository
	push Publisher
	now  func() time.Time
}

func NewService(repo Repository, push Publisher) *Service {
	return &Service{repo: repo, push: push, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Notification, error) {
	t := req.Type
	if t == "" {
		t = TypeInfo
	}

	n := &Notification{
		UserID:    req.UserID,
		Title:     req.Title,
		Message:   req.Message,
		Type:      t,
		Link:      req.Link,
		Metadata:  req.Metadata,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.publish(ctx, n)
	return n, nil
}

func (s *Service) List(ctx context.Context, userID string, f ListFilter) (*ListResult, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}

	now := s.now()
	list, err := s.repo.List(ctx, userID, f, now)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &ListResult{Notifications: list, UnreadCount: unread, LastSyncAt: now}, nil
}

func (s *Service) MarkAsRead(ctx context.Context, userID, id string, read bool) (*Notification, error) {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetRead(ctx, n, read, s.now()); err != nil {
		return nil, err
	}
	s.publishUnread(ctx, userID)
	return n, nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	updated, err := s.repo.MarkAllAsRead(ctx, userID, s.now())
	if err != nil {
		return 0, err
	}
	s.publishUnread(ctx, userID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishUnread(ctx, userID)
	return nil
}

// Clear removes read notifications, or every notification for ClearAll.
func (s *Service) Clear(ctx context.Context, userID string, scope ClearScope) (int64, error) {
	if scope != ClearAll {
		scope = ClearRead
	}
	deleted, err := s.repo.Clear(ctx, userID, scope)
	if err != nil {
		return 0, err
	}
	s.publishUnread(ctx, userID)
	return deleted, nil
}

func (s *Service) NotifyAppointmentBooked(ctx context.Context, doctorID, appointmentID, patientName string, at time.Time) error {
	_, err := s.Create(ctx, CreateRequest{
		UserID:   doctorID,
		Title:    "New appointment",
		Message:  fmt.Sprintf("%s booked an appointment on %s", patientName, at.Format("02.01.2006 15:04")),
		Type:     TypeAppointment,
		Link:     "/appointments/" + appointmentID,
		Metadata: Metadata{"appointment_id": appointmentID},
	})
	return err
}

func (s *Service) NotifyAppointmentCancelled(ctx context.Context, userID, appointmentID string, at time.Time) error {
	_, err := s.Create(ctx, CreateRequest{
		UserID:   userID,
		Title:    "Appointment cancelled",
		Message:  fmt.Sprintf("The appointment on %s has been cancelled", at.Format("02.01.2006 15:04")),
		Type:     TypeWarning,
		Link:     "/appointments/" + appointmentID,
		Metadata: Metadata{"appointment_id": appointmentID},
	})
	return err
}

func (s *Service) NotifyDocumentAdded(ctx context.Context, patientID, recordID, documentName string) error {
	_, err := s.Create(ctx, CreateRequest{
		UserID:   patientID,
		Title:    "New document in your medical record",
		Message:  fmt.Sprintf("%s was added to your medical record", documentName),
		Type:     TypeMedicalRecord,
		Link:     "/medical-records/" + recordID,
		Metadata: Metadata{"record_id": recordID},
	})
	return err
}

func (s *Service) owned(ctx context.Context, userID, id string) (*Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrForbidden
	}
	return n, nil
}

func (s *Service) publish(ctx context.Context, n *Notification) {
	if s.push == nil {
		return
	}
	s.push.Publish(n.UserID, WSEvent{Type: EventNotificationCreated, Payload: n})
	s.publishUnread(ctx, n.UserID)
}

func (s *Service) publishUnread(ctx context.Context, userID string) {
	if s.push == nil {
		return
	}
	count, err := s.repo.CountUnread(ctx, userID, s.now())
	if err != nil {
		log.Printf("notification_unread_count_failed user_id=%s error=%q", userID, err.Error())
		return
	}
	s.push.Publish(userID, WSEvent{Type: EventUnreadCount, Payload: map[string]int64{"unread_count": count}})
}
