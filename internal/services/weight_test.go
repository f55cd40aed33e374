package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"fitlog/internal/services"
	"fitlog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeight_UnmarshalJSON(t *testing.T) {
	valid := []struct {
		body string
		want float64
	}{
		{`{"weight": 60.5}`, 60.5},
		{`{"weight": "60.50"}`, 60.5},
		{`{"weight": " 72 "}`, 72},
		{`{"weight": "1e2"}`, 100},
		{`{"weight": -3}`, -3},
	}
	for _, tc := range valid {
		t.Run(tc.body, func(t *testing.T) {
			var req services.TrainingRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			require.NotNil(t, req.Weight)
			assert.Equal(t, tc.want, float64(*req.Weight))
		})
	}

	t.Run("null leaves weight unset", func(t *testing.T) {
		var req services.TrainingRequest
		require.NoError(t, json.Unmarshal([]byte(`{"weight": null}`), &req))
		assert.Nil(t, req.Weight)
	})

	for _, body := range []string{`{"weight": "heavy"}`, `{"weight": ""}`, `{"weight": "NaN"}`, `{"weight": "0x10"}`, `{"weight": true}`, `{"weight": [1]}`} {
		t.Run(body, func(t *testing.T) {
			var req services.TrainingRequest
			err := json.Unmarshal([]byte(body), &req)

			var errs validation.Errors
			require.True(t, errors.As(err, &errs), "got %v", err)
			assert.Equal(t, []string{"A valid number is required."}, errs["weight"])
		})
	}
}
