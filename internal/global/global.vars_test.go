package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestGetCollectionResolvesThroughRegistry(t *testing.T) {
	// MongoDB_Session chưa init trong test: nếu GetCollection không đi qua
	// registry mà mở master DB trực tiếp thì sẽ panic
	registered := &mongo.Collection{}
	_, err := RegistryCollections.Register("test_registered_things", registered)
	require.NoError(t, err)

	got := GetCollection("test_registered_things")
	assert.Same(t, registered, got)
}
