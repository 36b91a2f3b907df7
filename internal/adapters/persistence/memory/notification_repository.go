package memory

import (
	"context"
	"sort"

	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
)

// notificationRepository implements repositories.NotificationRepository over
// the shared store
type notificationRepository struct {
	store *Store
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(store *Store) repositories.NotificationRepository {
	return &notificationRepository{store: store}
}

// ListByUser lists a user's notifications sorted by createdAt descending.
// This is the one list read that does not preserve insertion order.
func (r *notificationRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Notification, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]*domain.Notification, 0)
	for _, id := range s.notificationOrder {
		n := s.notifications[id]
		if n.UserID == userID {
			notifications = append(notifications, &n)
		}
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// Create inserts a new notification. Type defaults to info, isRead to false.
func (r *notificationRepository) Create(ctx context.Context, in *domain.InsertNotification) (*domain.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	typ := in.Type
	if typ == "" {
		typ = domain.NotificationInfo
	}
	n := domain.Notification{
		ID:        s.ids.Next(),
		UserID:    in.UserID,
		Title:     in.Title,
		Message:   in.Message,
		Type:      typ,
		IsRead:    false,
		CreatedAt: s.now(),
	}
	s.notifications[n.ID] = n
	s.notificationOrder = append(s.notificationOrder, n.ID)
	return &n, nil
}

// MarkRead flags the notification as read; false when the ID is absent
func (r *notificationRepository) MarkRead(ctx context.Context, id int) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return false, nil
	}
	n.IsRead = true
	s.notifications[id] = n
	return true, nil
}
