package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusPending, NormalizeStatus("pending"))
	assert.Equal(t, StatusConfirmed, NormalizeStatus(" CONFIRMED "))
	assert.Equal(t, StatusCancelled, NormalizeStatus("canceled"))
	assert.Equal(t, StatusCompleted, NormalizeStatus("Completed"))
	assert.Equal(t, "Refunded", NormalizeStatus(" Refunded "))
}

func TestAdminSettable(t *testing.T) {
	assert.True(t, IsAdminSettable(StatusConfirmed))
	assert.True(t, IsAdminSettable(StatusCancelled))
	assert.False(t, IsAdminSettable(StatusPending))
	assert.False(t, IsAdminSettable("confirmed"))
}

func TestSessionRequire(t *testing.T) {
	err := Session{Token: "  "}.Require()
	assert.True(t, IsUnauthenticated(err))
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.NoError(t, Session{Token: "t"}.Require())
}

func TestUpstreamErrorMessage(t *testing.T) {
	assert.Equal(t, "list: upstream status 502", UpstreamError{Op: "list", Status: 502}.Error())
	up, ok := AsUpstream(NotFoundError{Resource: "booking", Err: UpstreamError{Op: "get", Status: 404}})
	assert.True(t, ok)
	assert.Equal(t, 404, up.Status)
}
