package appointment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medappointment/internal/domain/auth"
	"medappointment/internal/middleware"
	"medappointment/internal/pkg/jwt"
)

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	f.notifs.On("NotifyAppointmentBooked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifs.On("NotifyAppointmentCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	jwtService := jwt.New("test-secret", time.Hour)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1", middleware.JWTAuth(jwtService)), NewHandler(f.svc))

	token := func(u *auth.User) string {
		tok, err := jwtService.GenerateToken(u.ID, u.Email, string(u.Role))
		require.NoError(t, err)
		return tok
	}
	send := func(method, path string, u *auth.User, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			_ = json.NewEncoder(&buf).Encode(body)
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Authorization", "Bearer "+token(u))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	booking := map[string]any{
		"doctor_id":        f.doctor.ID,
		"appointment_date": f.at(14, 0).Format(time.RFC3339),
		"duration":         30,
		"reason":           "Persistent headache",
	}

	w := send(http.MethodPost, "/api/v1/appointments", f.patient, map[string]any{"doctor_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = send(http.MethodPost, "/api/v1/appointments", f.patient, booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, StatusPending, created.Data.Status)

	w = send(http.MethodPost, "/api/v1/appointments", f.patient, booking)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "TIME_SLOT_NOT_AVAILABLE")

	w = send(http.MethodGet, "/api/v1/appointments/my-appointments?status=pending", f.doctor, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Data.ID)

	w = send(http.MethodGet, "/api/v1/appointments/my-appointments?status=someday", f.doctor, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(http.MethodGet, "/api/v1/appointments", f.patient, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(http.MethodGet, "/api/v1/appointments", f.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(http.MethodGet, "/api/v1/appointments/patient/"+f.patient.ID, f.patient, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(http.MethodGet, "/api/v1/appointments/patient/"+f.patient.ID, f.doctor, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(http.MethodPatch, "/api/v1/appointments/"+created.Data.ID+"/cancel", f.patient, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)

	w = send(http.MethodGet, "/api/v1/appointments/does-not-exist", f.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(http.MethodDelete, "/api/v1/appointments/"+created.Data.ID, f.doctor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(http.MethodDelete, "/api/v1/appointments/"+created.Data.ID, f.admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
