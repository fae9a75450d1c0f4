package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeBarbers(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-48 * time.Hour)
	old := now.Add(-90 * 24 * time.Hour)

	stats := SummarizeBarbers([]Barber{
		{Estado: BarberActive, CreatedAt: &recent},
		{Estado: BarberActive, CreatedAt: &old},
		{Estado: BarberInactive},
	}, now)

	assert.Equal(t, BarberStats{Total: 3, Activos: 2, Inactivos: 1, Nuevos: 1}, stats)
}

func TestSummarizeAppointments(t *testing.T) {
	stats := SummarizeAppointments([]Appointment{
		{Estado: AppointmentPending},
		{Estado: AppointmentPending},
		{Estado: AppointmentConfirmed},
		{Estado: AppointmentCompleted},
		{Estado: AppointmentCanceled},
	})

	assert.Equal(t, AppointmentStats{Total: 5, Pendientes: 2, Confirmadas: 1, Completadas: 1}, stats)
}

func TestLoginResult_AcceptsBothTokenKeys(t *testing.T) {
	var a, b LoginResult
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"t1","user":{"id":1}}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"token":"t2","user":{"id":2}}`), &b))

	assert.Equal(t, "t1", a.Token)
	assert.Equal(t, 1, a.User.ID)
	assert.Equal(t, "t2", b.Token)
	assert.Equal(t, 2, b.User.ID)
}
