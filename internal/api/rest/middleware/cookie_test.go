package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	"github.com/danilovkiri/dk_go_letterfeed/internal/mocks"
)

func TestAuthHandleAbsentCookie(t *testing.T) {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()
	cfg, _ := config.NewSecretConfig()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registrar := mocks.NewMockRegistrar(ctrl)
	cookieHandler, _ := NewCookieHandler(registrar, cfg)
	router.Use(cookieHandler.AuthHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("authorized"))
	})
	requestCookie := &http.Cookie{
		Name:  "some-other-key",
		Value: "some-token",
		Raw:   "some-other-key=some-token; Path=/",
		Path:  "/",
	}
	client := resty.New()
	res, err := client.R().SetCookie(requestCookie).Get(ts.URL + "/get")
	if err != nil {
		t.Fatalf(err.Error())
	}

	assert.Equal(t, 401, res.StatusCode())
}

func TestAuthHandleGoodCookie(t *testing.T) {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()
	cfg, _ := config.NewSecretConfig()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registrar := mocks.NewMockRegistrar(ctrl)
	cookieHandler, _ := NewCookieHandler(registrar, cfg)
	router.Use(cookieHandler.AuthHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "some-user-id", userID)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("authorized"))
	})
	requestCookie := &http.Cookie{
		Name:  cfg.AuthKey,
		Value: "some-valid-token",
		Raw:   "user=some-valid-token; Path=/",
		Path:  "/",
	}
	registrar.EXPECT().ValidateSession("some-valid-token").Return("some-user-id", nil)
	client := resty.New()
	res, err := client.R().SetCookie(requestCookie).Get(ts.URL + "/get")
	if err != nil {
		t.Fatalf(err.Error())
	}

	assert.Equal(t, 200, res.StatusCode())
}

func TestAuthHandleBadCookie(t *testing.T) {
	router := chi.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()
	cfg, _ := config.NewSecretConfig()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registrar := mocks.NewMockRegistrar(ctrl)
	cookieHandler, _ := NewCookieHandler(registrar, cfg)
	router.Use(cookieHandler.AuthHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("authorized"))
	})
	requestCookie := &http.Cookie{
		Name:  cfg.AuthKey,
		Value: "some-erroneous-token",
		Raw:   "user=some-erroneous-token; Path=/",
		Path:  "/",
	}
	registrar.EXPECT().ValidateSession("some-erroneous-token").Return("", errors.New("some-generic-error"))
	client := resty.New()
	res, err := client.R().SetCookie(requestCookie).Get(ts.URL + "/get")
	if err != nil {
		t.Fatalf(err.Error())
	}

	assert.Equal(t, 401, res.StatusCode())
}

func TestSetSessionCookie(t *testing.T) {
	cfg, _ := config.NewSecretConfig()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registrar := mocks.NewMockRegistrar(ctrl)
	cookieHandler, _ := NewCookieHandler(registrar, cfg)
	recorder := httptest.NewRecorder()
	cookieHandler.SetSessionCookie(recorder, "some-session-token")
	cookies := recorder.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, cfg.AuthKey, cookies[0].Name)
	assert.Equal(t, "some-session-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}
