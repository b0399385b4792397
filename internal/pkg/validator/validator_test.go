package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string  `validate:"required,email"`
	From  *string `validate:"omitempty,hhmm"`
}

func TestValidate(t *testing.T) {
	ok := "08:30"
	assert.Nil(t, Validate(&sample{Email: "a@b.co", From: &ok}))

	bad := "25:00"
	errs := Validate(&sample{Email: "nope", From: &bad})
	assert.Equal(t, "email", errs["Email"])
	assert.Equal(t, "hhmm", errs["From"])
}
