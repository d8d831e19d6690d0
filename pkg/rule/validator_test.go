package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjemme/inventar/pkg/rule"
)

type serverSettings struct {
	Host string `rule:"required"`
	Port int    `rule:"gte=1,lte=65535"`
}

func TestEngine(t *testing.T) {
	require.NotNil(t, rule.Engine())
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, rule.ValidateStruct(serverSettings{Host: "0.0.0.0", Port: 3000}))

	assert.Error(t, rule.ValidateStruct(serverSettings{Host: "", Port: 3000}))
	assert.Error(t, rule.ValidateStruct(serverSettings{Host: "0.0.0.0", Port: 70000}))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, rule.ValidateVar("ops@example.com", "required,email"))
	assert.Error(t, rule.ValidateVar("not-an-email", "required,email"))

	assert.NoError(t, rule.ValidateVar(3000, "gte=1"))
	assert.Error(t, rule.ValidateVar(0, "gte=1"))
}

func TestRegisterValidation(t *testing.T) {
	err := rule.RegisterValidation("hexdigest", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		for _, r := range str {
			if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
				return false
			}
		}

		return len(str) == 64
	})
	require.NoError(t, err)

	assert.NoError(t, rule.ValidateVar("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", "hexdigest"))
	assert.Error(t, rule.ValidateVar("nope", "hexdigest"))
}
