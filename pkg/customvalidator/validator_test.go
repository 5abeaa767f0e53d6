package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Type   string `validate:"order_type"`
	Area   string `validate:"prep_area"`
	Method string `validate:"bill_method"`
	Phone  string `validate:"phone"`
}

func TestRegisterCustomValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	assert.NoError(t, v.Struct(sample{Type: "pickup", Area: "bar", Method: "card", Phone: "+38 (050) 123-45-67"}))

	err := v.Struct(sample{Type: "takeaway", Area: "grill", Method: "crypto", Phone: "123"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 4)
}
