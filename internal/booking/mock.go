package booking

import (
	"context"
	"sync"
)

// MockService is a mock implementation of Service for testing.
// It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	BookTrainerFunc         func(ctx context.Context, requester, trainerUsername, date, slot string) (*Booking, error)
	ListBookingsForUserFunc func(ctx context.Context, username string) ([]BookingWithTrainer, error)

	BookTrainerCalls []BookTrainerCall
}

// BookTrainerCall holds the arguments for a call to BookTrainer.
type BookTrainerCall struct {
	Requester       string
	TrainerUsername string
	Date            string
	Slot            string
}

// NewMock creates a new MockService.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) BookTrainer(ctx context.Context, requester, trainerUsername, date, slot string) (*Booking, error) {
	m.mu.Lock()
	m.BookTrainerCalls = append(m.BookTrainerCalls, BookTrainerCall{requester, trainerUsername, date, slot})
	fn := m.BookTrainerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, requester, trainerUsername, date, slot)
	}
	return &Booking{Username: requester, TimeSlot: slot, Status: StatusPending}, nil
}

func (m *MockService) ListBookingsForUser(ctx context.Context, username string) ([]BookingWithTrainer, error) {
	if m.ListBookingsForUserFunc != nil {
		return m.ListBookingsForUserFunc(ctx, username)
	}
	return []BookingWithTrainer{}, nil
}
