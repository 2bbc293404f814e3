package validator_test

import (
	"testing"

	"github.com/ravosoft/photohub/backend/internal/platform/validator"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Sunset", validator.SanitizeText("<b>Sunset</b>"))
	assert.Equal(t, "hello", validator.SanitizeText(`<script>alert(1)</script>hello`))
	assert.Equal(t, "Tom & Jerry", validator.SanitizeText(" Tom & Jerry "))
	assert.Equal(t, "", validator.SanitizeText(`<img src=x onerror=alert(1)>`))
}

func TestSanitizeTextPtr(t *testing.T) {
	assert.Nil(t, validator.SanitizeTextPtr(nil))

	in := "<i>caption</i>"
	out := validator.SanitizeTextPtr(&in)
	if assert.NotNil(t, out) {
		assert.Equal(t, "caption", *out)
	}
}
