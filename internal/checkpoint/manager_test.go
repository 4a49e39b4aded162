package checkpoint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/ifstate/internal/daemon"
)

func TestManager_Create(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("CheckpointCreate", uint32(30)).Return("cp-7", nil)

	handle, err := NewManager(client).Create(30)
	require.NoError(t, err)
	assert.Equal(t, "cp-7", handle)
	client.AssertExpectations(t)
}

func TestManager_Create_DefaultTimeout(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("CheckpointCreate", DefaultTimeoutSeconds).Return("cp-1", nil)

	_, err := NewManager(client).Create(0)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestManager_Create_Error(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("CheckpointCreate", uint32(60)).Return("", errors.New("busy"))

	_, err := NewManager(client).Create(60)
	require.Error(t, err)
	var derr *daemon.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "checkpoint create", derr.Op)
}

func TestManager_Destroy_ExplicitHandle(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("CheckpointDestroy", "cp-3").Return(nil)

	require.NoError(t, NewManager(client).Destroy("cp-3"))
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "CheckpointList")
}

func TestManager_Destroy_EmptyHandleResolvesNewest(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("CheckpointList").Return([]string{"cp-2", "cp-1"}, nil)
	client.On("CheckpointDestroy", "cp-2").Return(nil)

	require.NoError(t, NewManager(client).Destroy(""))
	client.AssertExpectations(t)
}

func TestManager_Rollback_EmptyHandleResolvesNewest(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("CheckpointList").Return([]string{"cp-2", "cp-1"}, nil)
	client.On("CheckpointRollback", "cp-2").Return(nil)

	require.NoError(t, NewManager(client).Rollback(""))
	client.AssertExpectations(t)
}

func TestManager_Rollback_NoCheckpoints(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("CheckpointList").Return([]string{}, nil)

	err := NewManager(client).Rollback("")
	require.Error(t, err)
	assert.ErrorIs(t, err, daemon.ErrNotFound)
}

func TestManager_Extend(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("CheckpointExtend", "cp-1", uint32(30)).Return(nil)

	require.NoError(t, NewManager(client).Extend("cp-1", 30))
	client.AssertExpectations(t)
}
