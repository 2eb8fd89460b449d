package mock

import (
	context "context"
	reflect "reflect"

	snowflake "github.com/disgoorg/snowflake/v2"
	gomock "go.uber.org/mock/gomock"
)

// MockRoleManager is a mock of RoleManager interface.
type MockRoleManager struct {
	ctrl     *gomock.Controller
	recorder *MockRoleManagerMockRecorder
	isgomock struct{}
}

// MockRoleManagerMockRecorder is the mock recorder for MockRoleManager.
type MockRoleManagerMockRecorder struct {
	mock *MockRoleManager
}

// NewMockRoleManager creates a new mock instance.
func NewMockRoleManager(ctrl *gomock.Controller) *MockRoleManager {
	mock := &MockRoleManager{ctrl: ctrl}
	mock.recorder = &MockRoleManagerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRoleManager) EXPECT() *MockRoleManagerMockRecorder {
	return m.recorder
}

// GrantRole mocks base method.
func (m *MockRoleManager) GrantRole(ctx context.Context, userID, roleID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GrantRole", ctx, userID, roleID)
	ret0, _ := ret[0].(error)
	return ret0
}

// GrantRole indicates an expected call of GrantRole.
func (mr *MockRoleManagerMockRecorder) GrantRole(ctx, userID, roleID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GrantRole", reflect.TypeOf((*MockRoleManager)(nil).GrantRole), ctx, userID, roleID)
}

// ResolveRole mocks base method.
func (m *MockRoleManager) ResolveRole(planID string) snowflake.ID {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveRole", planID)
	ret0, _ := ret[0].(snowflake.ID)
	return ret0
}

// ResolveRole indicates an expected call of ResolveRole.
func (mr *MockRoleManagerMockRecorder) ResolveRole(planID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveRole", reflect.TypeOf((*MockRoleManager)(nil).ResolveRole), planID)
}

// RevokeRole mocks base method.
func (m *MockRoleManager) RevokeRole(ctx context.Context, userID, roleID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RevokeRole", ctx, userID, roleID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RevokeRole indicates an expected call of RevokeRole.
func (mr *MockRoleManagerMockRecorder) RevokeRole(ctx, userID, roleID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RevokeRole", reflect.TypeOf((*MockRoleManager)(nil).RevokeRole), ctx, userID, roleID)
}

// MockMailer is a mock of Mailer interface.
type MockMailer struct {
	ctrl     *gomock.Controller
	recorder *MockMailerMockRecorder
	isgomock struct{}
}

// MockMailerMockRecorder is the mock recorder for MockMailer.
type MockMailerMockRecorder struct {
	mock *MockMailer
}

// NewMockMailer creates a new mock instance.
func NewMockMailer(ctrl *gomock.Controller) *MockMailer {
	mock := &MockMailer{ctrl: ctrl}
	mock.recorder = &MockMailerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMailer) EXPECT() *MockMailerMockRecorder {
	return m.recorder
}

// SendClaimEmail mocks base method.
func (m *MockMailer) SendClaimEmail(ctx context.Context, toEmail, userName, planID, claimURL string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendClaimEmail", ctx, toEmail, userName, planID, claimURL)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendClaimEmail indicates an expected call of SendClaimEmail.
func (mr *MockMailerMockRecorder) SendClaimEmail(ctx, toEmail, userName, planID, claimURL any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendClaimEmail", reflect.TypeOf((*MockMailer)(nil).SendClaimEmail), ctx, toEmail, userName, planID, claimURL)
}
