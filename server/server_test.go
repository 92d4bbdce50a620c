package server_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-forum-connect/server"
)

func TestNewRequiresSessionProvider(t *testing.T) {
	_, err := server.New(newTestConfig(t), server.Deps{})
	require.Error(t, err)
}
