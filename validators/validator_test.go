package validators

import (
	"net/http"
	"testing"

	"github.com/campushub/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.SignupRequest{Username: "alice", Password: "longenough"}))

	err := v.Validate(&models.SignupRequest{Username: "al", Password: "short"})
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	assert.Error(t, v.Validate(&models.SendMessageRequest{Receiver: 0, Content: ""}))
	assert.NoError(t, v.Validate(&models.SendMessageRequest{Receiver: 2, Content: "hi"}))
}
