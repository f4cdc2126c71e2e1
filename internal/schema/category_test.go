package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_RoundTripLabels(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(c.String())
		require.NoError(t, err, c.String())
		assert.Equal(t, c, parsed)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"created-on", CategoryCreatedOn, false},
		{"CREATED_ON", CategoryCreatedOn, false},
		{"", CategoryNone, false},
		{"other", CategoryOther, false},
		{"bogus", CategoryNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Invalid(t *testing.T) {
	c := Category(99)
	assert.False(t, c.Valid())
	assert.Equal(t, "Category(99)", c.String())

	_, err := c.MarshalText()
	assert.Error(t, err)
}
