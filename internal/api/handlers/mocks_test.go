package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/baechuer/barbershop-admin/internal/domain"
	"github.com/stretchr/testify/mock"
)

type fakeStore struct {
	mu      sync.Mutex
	token   string
	user    *domain.User
	saveErr error
}

func loggedInAs(role string) *fakeStore {
	return &fakeStore{
		token: "tok",
		user:  &domain.User{ID: 7, Nombre: "Camila", RoleID: 1, Role: domain.Role{ID: 1, Nombre: role}},
	}
}

func (s *fakeStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *fakeStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *fakeStore) Login(_ context.Context, token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, &user
	return s.saveErr
}

func (s *fakeStore) Logout(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	return s.saveErr
}

func (s *fakeStore) RefreshUser(_ context.Context, token string, user domain.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.token != token {
		return false, nil
	}
	s.user = &user
	return true, s.saveErr
}

var errDisk = errors.New("disk full")

type mockAuthClient struct {
	mock.Mock
}

func (m *mockAuthClient) Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

type mockBarberClient struct {
	mock.Mock
}

func (m *mockBarberClient) ListByShop(ctx context.Context, shopID int) ([]domain.Barber, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Barber), args.Error(1)
}

func (m *mockBarberClient) Create(ctx context.Context, in domain.CreateBarberInput) (*domain.Barber, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Barber), args.Error(1)
}

func (m *mockBarberClient) Update(ctx context.Context, id int, in domain.UpdateBarberInput) (*domain.Barber, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Barber), args.Error(1)
}

type mockServiceClient struct {
	mock.Mock
}

func (m *mockServiceClient) ListByShop(ctx context.Context, shopID int) ([]domain.Service, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

type mockAppointmentClient struct {
	mock.Mock
}

func (m *mockAppointmentClient) ListMine(ctx context.Context) ([]domain.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *mockAppointmentClient) Create(ctx context.Context, in domain.CreateAppointmentInput) (*domain.Appointment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

type mockUserClient struct {
	mock.Mock
}

func (m *mockUserClient) Update(ctx context.Context, id int, in domain.UpdateProfileInput) (*domain.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
