package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinelsMatch(t *testing.T) {
	err := fmt.Errorf("%w: status must be one of the known statuses", Invalid)
	assert.True(t, errors.Is(err, Invalid))
	assert.False(t, errors.Is(err, NotFound))

	err = fmt.Errorf("%w: shipment %q", NotFound, "abc")
	assert.True(t, errors.Is(err, NotFound))

	err = fmt.Errorf("%w: notification belongs to another user", Unauthorized)
	assert.True(t, errors.Is(err, Unauthorized))
}
