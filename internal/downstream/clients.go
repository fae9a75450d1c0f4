package downstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/baechuer/barbershop-admin/internal/domain"
)

func shopQuery(path string, shopID int) string {
	q := url.Values{}
	q.Set("barberia_id", strconv.Itoa(shopID))
	return path + "?" + q.Encode()
}

type AuthClient struct {
	api *Client
}

func NewAuthClient(api *Client) *AuthClient {
	return &AuthClient{api: api}
}

// Login exchanges credentials for a token and profile. It does not touch
// the session; the caller decides what to do with the result.
func (c *AuthClient) Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error) {
	var out domain.LoginResult
	if err := c.api.Post(ctx, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("downstream: login response carried no token")
	}
	return &out, nil
}

type BarberClient struct {
	api *Client
}

func NewBarberClient(api *Client) *BarberClient {
	return &BarberClient{api: api}
}

func (c *BarberClient) ListByShop(ctx context.Context, shopID int) ([]domain.Barber, error) {
	var out []domain.Barber
	if err := c.api.Get(ctx, shopQuery("/barberos", shopID), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]domain.Barber, 0)
	}
	return out, nil
}

func (c *BarberClient) Create(ctx context.Context, in domain.CreateBarberInput) (*domain.Barber, error) {
	var out domain.Barber
	if err := c.api.Post(ctx, "/barberos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BarberClient) Update(ctx context.Context, id int, in domain.UpdateBarberInput) (*domain.Barber, error) {
	var out domain.Barber
	if err := c.api.Put(ctx, "/barberos/"+strconv.Itoa(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ServiceClient struct {
	api *Client
}

func NewServiceClient(api *Client) *ServiceClient {
	return &ServiceClient{api: api}
}

func (c *ServiceClient) ListByShop(ctx context.Context, shopID int) ([]domain.Service, error) {
	var out []domain.Service
	if err := c.api.Get(ctx, shopQuery("/servicios", shopID), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]domain.Service, 0)
	}
	return out, nil
}

type AppointmentClient struct {
	api *Client
}

func NewAppointmentClient(api *Client) *AppointmentClient {
	return &AppointmentClient{api: api}
}

// ListMine returns the appointments visible to the logged-in user.
func (c *AppointmentClient) ListMine(ctx context.Context) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := c.api.Get(ctx, "/citas/mis-citas", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]domain.Appointment, 0)
	}
	return out, nil
}

func (c *AppointmentClient) Create(ctx context.Context, in domain.CreateAppointmentInput) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := c.api.Post(ctx, "/citas", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type UserClient struct {
	api *Client
}

func NewUserClient(api *Client) *UserClient {
	return &UserClient{api: api}
}

func (c *UserClient) Update(ctx context.Context, id int, in domain.UpdateProfileInput) (*domain.User, error) {
	var out domain.User
	if err := c.api.Put(ctx, "/usuarios/"+strconv.Itoa(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
