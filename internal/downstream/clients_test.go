package downstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baechuer/barbershop-admin/internal/domain"
	"github.com/baechuer/barbershop-admin/internal/downstream"
	"github.com/baechuer/barbershop-admin/internal/navigation"
	"github.com/baechuer/barbershop-admin/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

func fakeBackend(t *testing.T, status int, response string) (*httptest.Server, chan recordedCall) {
	t.Helper()
	calls := make(chan recordedCall, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
		}
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&call.Body)
		}
		calls <- call
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	fs, err := session.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	s, err := session.Open(context.Background(), fs)
	require.NoError(t, err)
	return s
}

func newAPI(t *testing.T, baseURL string, store *session.Store) *downstream.Client {
	t.Helper()
	c, err := downstream.NewAuthorizedClient(downstream.ClientConfig{BaseURL: baseURL + "/api"}, store, navigation.ContextNavigator{})
	require.NoError(t, err)
	return c
}

func TestBarberClient_ListByShop(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusOK, `[{"id":1,"estado":"activo","user":{"id":3,"nombre":"Andrés"},"servicios":[{"id":9,"nombre":"Corte","precio":25000,"duracion":30}]}]`)
	store := newStore(t)
	require.NoError(t, store.Login(context.Background(), "tok", domain.User{ID: 1}))

	barbers, err := downstream.NewBarberClient(newAPI(t, srv.URL, store)).ListByShop(context.Background(), 1)
	require.NoError(t, err)

	call := <-calls
	assert.Equal(t, http.MethodGet, call.Method)
	assert.Equal(t, "/api/barberos", call.Path)
	assert.Equal(t, "barberia_id=1", call.Query)
	assert.Equal(t, "Bearer tok", call.Auth)

	require.Len(t, barbers, 1)
	assert.Equal(t, domain.BarberActive, barbers[0].Estado)
	assert.Equal(t, "Andrés", barbers[0].User.Nombre)
	assert.Equal(t, 30, barbers[0].Servicios[0].Duracion)
}

func TestBarberClient_ListByShop_NullBecomesEmpty(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusOK, `null`)
	barbers, err := downstream.NewBarberClient(newAPI(t, srv.URL, newStore(t))).ListByShop(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, barbers)
	assert.Empty(t, barbers)
}

func TestBarberClient_CreateAndUpdate(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusCreated, `{"id":4,"estado":"activo"}`)
	api := newAPI(t, srv.URL, newStore(t))
	barbers := downstream.NewBarberClient(api)

	created, err := barbers.Create(context.Background(), domain.CreateBarberInput{Nombre: "Luis", Email: "luis@b.co", Telefono: "300", Password: "secreto", BarberiaID: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	call := <-calls
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/api/barberos", call.Path)
	assert.Equal(t, "Luis", call.Body["nombre"])
	assert.Equal(t, float64(1), call.Body["barberia_id"])

	_, err = barbers.Update(context.Background(), 4, domain.UpdateBarberInput{Nombre: "Luis", Email: "luis@b.co", Telefono: "300", Estado: domain.BarberInactive})
	require.NoError(t, err)
	call = <-calls
	assert.Equal(t, http.MethodPut, call.Method)
	assert.Equal(t, "/api/barberos/4", call.Path)
	assert.Equal(t, "inactivo", call.Body["estado"])
}

func TestServiceClient_ListByShop(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusOK, `[{"id":1,"nombre":"Barba","precio":15000,"duracion":20}]`)
	services, err := downstream.NewServiceClient(newAPI(t, srv.URL, newStore(t))).ListByShop(context.Background(), 3)
	require.NoError(t, err)

	call := <-calls
	assert.Equal(t, "/api/servicios", call.Path)
	assert.Equal(t, "barberia_id=3", call.Query)
	assert.Empty(t, call.Auth)
	require.Len(t, services, 1)
	assert.Equal(t, 15000.0, services[0].Precio)
}

func TestAppointmentClient(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusOK, `[{"id":1,"estado":"pendiente","fecha":"2026-05-02","hora":"10:30","metodo_pago":"en_local","estado_pago":"pendiente","total":25000}]`)
	appointments := downstream.NewAppointmentClient(newAPI(t, srv.URL, newStore(t)))

	list, err := appointments.ListMine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/citas/mis-citas", (<-calls).Path)
	require.Len(t, list, 1)
	assert.Equal(t, domain.AppointmentPending, list[0].Estado)
}

func TestAppointmentClient_Create(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusCreated, `{"id":8,"estado":"pendiente"}`)
	appointments := downstream.NewAppointmentClient(newAPI(t, srv.URL, newStore(t)))

	created, err := appointments.Create(context.Background(), domain.CreateAppointmentInput{
		BarberiaID: 1, Fecha: "2026-05-02", Hora: "10:30", ServicioID: 2, BarberoID: 3, MetodoPago: domain.PayInStore,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, created.ID)

	call := <-calls
	assert.Equal(t, "/api/citas", call.Path)
	assert.Equal(t, "en_local", call.Body["metodo_pago"])
	assert.Equal(t, float64(3), call.Body["barbero_id"])
}

func TestUserClient_Update(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusOK, `{"id":7,"nombre":"Camila R.","email":"c@b.co","role":{"id":1,"nombre":"admin"}}`)
	user, err := downstream.NewUserClient(newAPI(t, srv.URL, newStore(t))).Update(context.Background(), 7, domain.UpdateProfileInput{Nombre: "Camila R.", Email: "c@b.co", Telefono: "300"})
	require.NoError(t, err)

	call := <-calls
	assert.Equal(t, http.MethodPut, call.Method)
	assert.Equal(t, "/api/usuarios/7", call.Path)
	assert.Equal(t, "Camila R.", user.Nombre)
	assert.Equal(t, "admin", user.Role.Nombre)
}

func TestAuthClient_Login(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusOK, `{"access_token":"new-token","user":{"id":7,"nombre":"Camila"}}`)
	res, err := downstream.NewAuthClient(newAPI(t, srv.URL, newStore(t))).Login(context.Background(), domain.LoginInput{Email: "c@b.co", Password: "x"})
	require.NoError(t, err)

	call := <-calls
	assert.Equal(t, "/api/auth/login", call.Path)
	assert.Equal(t, "c@b.co", call.Body["email"])
	assert.Equal(t, "new-token", res.Token)
	assert.Equal(t, 7, res.User.ID)
}

func TestAuthClient_LoginWithoutToken(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusOK, `{"user":{"id":7}}`)
	_, err := downstream.NewAuthClient(newAPI(t, srv.URL, newStore(t))).Login(context.Background(), domain.LoginInput{Email: "c@b.co", Password: "x"})
	assert.Error(t, err)
}

func TestAuthClient_BadCredentialsDoNotTouchAnonymousSession(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusUnauthorized, `{"detail":"Credenciales inválidas"}`)
	store := newStore(t)
	tracker := navigation.NewTracker("/login")
	ctx := navigation.WithTracker(context.Background(), tracker)

	_, err := downstream.NewAuthClient(newAPI(t, srv.URL, store)).Login(ctx, domain.LoginInput{Email: "c@b.co", Password: "bad"})

	assert.ErrorIs(t, err, downstream.ErrUnauthorized)
	assert.False(t, store.IsAuthenticated())
	_, redirected := tracker.Pending()
	assert.False(t, redirected)
}

func TestForcedLogout_PersistsThroughRestart(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusUnauthorized, `{"detail":"Token expirado"}`)
	dir := t.TempDir()
	fs, err := session.NewFileStorage(dir)
	require.NoError(t, err)
	store, err := session.Open(context.Background(), fs)
	require.NoError(t, err)
	require.NoError(t, store.Login(context.Background(), "expired", domain.User{ID: 1}))

	tracker := navigation.NewTracker("/citas")
	ctx := navigation.WithTracker(context.Background(), tracker)
	_, err = downstream.NewAppointmentClient(newAPI(t, srv.URL, store)).ListMine(ctx)
	assert.ErrorIs(t, err, downstream.ErrUnauthorized)

	restarted, err := session.Open(context.Background(), fs)
	require.NoError(t, err)
	assert.Equal(t, session.State{}, restarted.Snapshot())
}
