package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesCodeThroughWrapping(t *testing.T) {
	err := Wrap(CodeLoadFailed, "open workbook", errors.New("no such file"))
	wrapped := fmt.Errorf("startup: %w", err)

	assert.True(t, Is(wrapped, CodeLoadFailed))
	assert.False(t, Is(wrapped, CodeBadRequest))
	assert.False(t, Is(errors.New("plain"), CodeLoadFailed))
}

func TestErrorStringIncludesCauseWhenPresent(t *testing.T) {
	assert.Equal(t, "bad_request: department must be a 2-digit DANE code",
		New(CodeBadRequest, "department must be a 2-digit DANE code").Error())

	cause := errors.New("eof")
	assert.Contains(t, Wrap(CodeLoadFailed, "decode", cause).Error(), "eof")
	assert.ErrorIs(t, Wrap(CodeLoadFailed, "decode", cause), cause)
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeBadRequest))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("mystery")))
}
