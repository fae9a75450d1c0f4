package domain

import "time"

// Role names as issued by the backend.
const (
	RoleAdmin  = "admin"
	RoleOwner  = "dueño"
	RoleBarber = "barbero"
	RoleClient = "cliente"
)

type Role struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// User is the profile the backend returns on login and profile update.
type User struct {
	ID        int     `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     string  `json:"email"`
	Telefono  string  `json:"telefono"`
	Cedula    *string `json:"cedula"`
	Bloqueado bool    `json:"bloqueado"`
	RoleID    int     `json:"role_id"`
	Role      Role    `json:"role"`
}

// UserSummary is the user record nested inside a barber.
type UserSummary struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono,omitempty"`
}

type BarberStatus string

const (
	BarberActive   BarberStatus = "activo"
	BarberInactive BarberStatus = "inactivo"
)

type Barber struct {
	ID         int          `json:"id"`
	UserID     int          `json:"user_id"`
	BarberiaID int          `json:"barberia_id"`
	FotoURL    *string      `json:"foto_url"`
	Biografia  *string      `json:"biografia"`
	Estado     BarberStatus `json:"estado"`
	User       UserSummary  `json:"user"`
	Servicios  []Service    `json:"servicios"`
	CreatedAt  *time.Time   `json:"created_at,omitempty"`
}

type Service struct {
	ID          int     `json:"id"`
	BarberiaID  int     `json:"barberia_id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Duracion    int     `json:"duracion"`
}

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pendiente"
	AppointmentConfirmed AppointmentStatus = "confirmada"
	AppointmentCompleted AppointmentStatus = "completada"
	AppointmentCanceled  AppointmentStatus = "cancelada"
)

// Appointment is a "cita".
type Appointment struct {
	ID         int               `json:"id"`
	BarberiaID int               `json:"barberia_id"`
	BarberoID  int               `json:"barbero_id"`
	ServicioID int               `json:"servicio_id"`
	ClienteID  int               `json:"cliente_id,omitempty"`
	Fecha      string            `json:"fecha"`
	Hora       string            `json:"hora"`
	Estado     AppointmentStatus `json:"estado"`
	MetodoPago string            `json:"metodo_pago"`
	EstadoPago string            `json:"estado_pago"`
	Total      float64           `json:"total"`
	Barbero    *Barber           `json:"barbero,omitempty"`
	Servicio   *Service          `json:"servicio,omitempty"`
}

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}
