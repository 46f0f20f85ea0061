package broker

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClientExchangeName(t *testing.T) {
	userUUID := uuid.MustParse("4fbd7696-2c70-4a2c-9b4c-16bd11ec2a3f")

	name := ClientExchangeName(userUUID)
	assert.Equal(t, "client_4fbd7696-2c70-4a2c-9b4c-16bd11ec2a3f", name)
	assert.Equal(t, name, ClientExchangeName(userUUID), "derivation must be deterministic")
	assert.NotEqual(t, name, ClientExchangeName(uuid.New()))
}
