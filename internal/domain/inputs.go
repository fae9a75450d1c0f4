package domain

import "encoding/json"

// LoginInput is what the login form submits.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token string `json:"access_token"`
	User  User   `json:"user"`
}

// UnmarshalJSON also accepts the token under "token".
func (r *LoginResult) UnmarshalJSON(b []byte) error {
	var raw struct {
		AccessToken string `json:"access_token"`
		Token       string `json:"token"`
		User        User   `json:"user"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Token = raw.AccessToken
	if r.Token == "" {
		r.Token = raw.Token
	}
	r.User = raw.User
	return nil
}

type CreateBarberInput struct {
	Nombre     string `json:"nombre" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Telefono   string `json:"telefono" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
	Biografia  string `json:"biografia,omitempty"`
	BarberiaID int    `json:"barberia_id" validate:"required,gt=0"`
}

type UpdateBarberInput struct {
	Nombre    string       `json:"nombre" validate:"required"`
	Email     string       `json:"email" validate:"required,email"`
	Telefono  string       `json:"telefono" validate:"required"`
	Biografia string       `json:"biografia"`
	Estado    BarberStatus `json:"estado" validate:"required,oneof=activo inactivo"`
}

type PaymentMethod string

const (
	PayInStore PaymentMethod = "en_local"
	PayOnline  PaymentMethod = "online"
)

type CreateAppointmentInput struct {
	BarberiaID int           `json:"barberia_id" validate:"required,gt=0"`
	Fecha      string        `json:"fecha" validate:"required,datetime=2006-01-02"`
	Hora       string        `json:"hora" validate:"required,datetime=15:04"`
	ServicioID int           `json:"servicio_id" validate:"required,gt=0"`
	BarberoID  int           `json:"barbero_id" validate:"required,gt=0"`
	MetodoPago PaymentMethod `json:"metodo_pago" validate:"required,oneof=en_local online"`
}

type UpdateProfileInput struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Telefono string `json:"telefono" validate:"required"`
	Cedula   string `json:"cedula"`
}
