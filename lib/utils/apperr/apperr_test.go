package apperr

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestApperr(t *testing.T) {
	t.Run(`status mapping check`, func(t *testing.T) {
		require.Equal(t, fiber.StatusBadRequest, HTTPStatus(Validation("bad field")))
		require.Equal(t, fiber.StatusUnauthorized, HTTPStatus(Auth("expired token")))
		require.Equal(t, fiber.StatusForbidden, HTTPStatus(Forbidden("other tenant")))
		require.Equal(t, fiber.StatusNotFound, HTTPStatus(NotFound("no record")))
		require.Equal(t, fiber.StatusConflict, HTTPStatus(Conflict("already promoted")))
		require.Equal(t, fiber.StatusBadGateway, HTTPStatus(External("parser down")))
		require.Equal(t, fiber.StatusInternalServerError, HTTPStatus(errors.New("db broke")))
	})

	t.Run(`kind survives wrapping`, func(t *testing.T) {
		err := NotFound("candidate not found")
		wrapped := errors.Wrap(err, "transition")
		require.True(t, IsNotFound(wrapped))
		require.Equal(t, fiber.StatusNotFound, HTTPStatus(wrapped))
	})

	t.Run(`external wrap keeps cause`, func(t *testing.T) {
		cause := errors.New("connection refused")
		err := ExternalWrap(cause, "scoring service call failed")
		require.True(t, IsExternal(err))
		require.Contains(t, err.Error(), "connection refused")
	})

	t.Run(`nil wrap stays nil`, func(t *testing.T) {
		require.Nil(t, ExternalWrap(nil, "no error"))
	})
}
