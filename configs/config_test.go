package config

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateUniqueInstance(t *testing.T) {
	a := CreateUniqueInstance("eventsvc")
	b := CreateUniqueInstance("eventsvc")
	require.NotEqual(t, a, b)

	id, err := uuid.FromString(a)
	require.NoError(t, err)
	require.Equal(t, byte(uuid.V4), id.Version())
}

func TestCORS_Wildcard(t *testing.T) {
	require.NotNil(t, CORS([]string{"*"}))
	require.NotNil(t, CORS(nil))
}
