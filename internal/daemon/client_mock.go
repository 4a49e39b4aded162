package daemon

import (
	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client for testing.
type MockClient struct {
	mock.Mock
}

// Compile-time check that MockClient implements Client.
var _ Client = (*MockClient)(nil)

func (m *MockClient) Version() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockClient) CheckpointCreate(timeoutSeconds uint32) (string, error) {
	args := m.Called(timeoutSeconds)
	return args.String(0), args.Error(1)
}

func (m *MockClient) CheckpointDestroy(handle string) error {
	return m.Called(handle).Error(0)
}

func (m *MockClient) CheckpointRollback(handle string) error {
	return m.Called(handle).Error(0)
}

func (m *MockClient) CheckpointList() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClient) CheckpointExtend(handle string, addedSeconds uint32) error {
	return m.Called(handle, addedSeconds).Error(0)
}

func (m *MockClient) ConnectionList() ([]Ref, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Ref), args.Error(1)
}

func (m *MockClient) ConnectionGet(ref Ref) (*Connection, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Connection), args.Error(1)
}

func (m *MockClient) ConnectionAdd(conn *Connection, memoryOnly bool) error {
	return m.Called(conn, memoryOnly).Error(0)
}

func (m *MockClient) ConnectionUpdate(ref Ref, conn *Connection, memoryOnly bool) error {
	return m.Called(ref, conn, memoryOnly).Error(0)
}

func (m *MockClient) ConnectionDelete(ref Ref) error {
	return m.Called(ref).Error(0)
}

func (m *MockClient) ConnectionActivate(ref Ref) error {
	return m.Called(ref).Error(0)
}

func (m *MockClient) ConnectionDeactivate(ref Ref) error {
	return m.Called(ref).Error(0)
}

func (m *MockClient) ConnectionReapply(ref Ref, conn *Connection) error {
	return m.Called(ref, conn).Error(0)
}

func (m *MockClient) DeviceList() ([]Ref, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Ref), args.Error(1)
}

func (m *MockClient) DeviceGet(ref Ref) (*Device, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Device), args.Error(1)
}

func (m *MockClient) DeviceDelete(ref Ref) error {
	return m.Called(ref).Error(0)
}

func (m *MockClient) DeviceLldpNeighbors(ref Ref) ([]LldpNeighbor, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LldpNeighbor), args.Error(1)
}

func (m *MockClient) ActiveConnectionList() ([]Ref, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Ref), args.Error(1)
}

func (m *MockClient) ActiveConnectionGet(ref Ref) (*ActiveConnection, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ActiveConnection), args.Error(1)
}

func (m *MockClient) DNSConfiguration() ([]DnsEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DnsEntry), args.Error(1)
}

func (m *MockClient) HostnameSet(name string) error {
	return m.Called(name).Error(0)
}
