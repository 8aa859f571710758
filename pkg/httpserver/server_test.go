package httpserver

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andreyxaxa/Media-Pipeline/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	s := New(logger.Nop(),
		Port("9090"),
		ReadTimeout(time.Second),
		WriteTimeout(2*time.Second),
		ShutdownTimeout(3*time.Second),
		BodyLimit(1024),
	)

	assert.Equal(t, ":9090", s.address)
	assert.Equal(t, time.Second, s.readTimeout)
	assert.Equal(t, 2*time.Second, s.writeTimeout)
	assert.Equal(t, 3*time.Second, s.shutdownTimeout)
	assert.Equal(t, 1024, s.bodyLimit)
	assert.Equal(t, 1024, s.App.Config().BodyLimit)
}

func TestBodyWithinLimit(t *testing.T) {
	s := New(logger.Nop(), BodyLimit(16))
	s.App.Post("/", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(http.StatusOK)
	})

	resp, err := s.App.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	s := New(logger.Nop())
	s.App.Get("/panic", func(*fiber.Ctx) error {
		panic("boom")
	})
	s.App.Get("/teapot", func(*fiber.Ctx) error {
		return fiber.NewError(http.StatusTeapot, "short and stout")
	})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/panic", http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"/teapot", http.StatusTeapot, `{"error":"short and stout"}`},
		{"/missing", http.StatusNotFound, `{"error":"Cannot GET /missing"}`},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.code, resp.StatusCode)
			assert.JSONEq(t, tc.body, string(body))
		})
	}
}

func TestWrapErrorHandler(t *testing.T) {
	s := New(logger.Nop(), WrapErrorHandler(func(next fiber.ErrorHandler) fiber.ErrorHandler {
		return func(ctx *fiber.Ctx, err error) error {
			if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
				return ctx.Status(http.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "wrapped"})
			}

			return next(ctx, err)
		}
	}))
	s.App.Get("/big", func(*fiber.Ctx) error { return fiber.ErrRequestEntityTooLarge })

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/big", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.JSONEq(t, `{"error":"wrapped"}`, string(body))

	resp, err = s.App.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
