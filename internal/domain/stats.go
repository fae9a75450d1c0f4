package domain

import "time"

// NewBarberWindow is how recent a hire must be to count as "nuevo".
const NewBarberWindow = 30 * 24 * time.Hour

type BarberStats struct {
	Total     int `json:"total"`
	Activos   int `json:"activos"`
	Inactivos int `json:"inactivos"`
	Nuevos    int `json:"nuevos"`
}

func SummarizeBarbers(barbers []Barber, now time.Time) BarberStats {
	stats := BarberStats{Total: len(barbers)}
	for _, b := range barbers {
		switch b.Estado {
		case BarberActive:
			stats.Activos++
		case BarberInactive:
			stats.Inactivos++
		}
		if b.CreatedAt != nil && now.Sub(*b.CreatedAt) <= NewBarberWindow {
			stats.Nuevos++
		}
	}
	return stats
}

type AppointmentStats struct {
	Total       int `json:"total"`
	Pendientes  int `json:"pendientes"`
	Confirmadas int `json:"confirmadas"`
	Completadas int `json:"completadas"`
}

func SummarizeAppointments(appointments []Appointment) AppointmentStats {
	stats := AppointmentStats{Total: len(appointments)}
	for _, a := range appointments {
		switch a.Estado {
		case AppointmentPending:
			stats.Pendientes++
		case AppointmentConfirmed:
			stats.Confirmadas++
		case AppointmentCompleted:
			stats.Completadas++
		}
	}
	return stats
}
