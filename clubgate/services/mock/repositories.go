package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	models "github.com/vantage-club/clubgate/clubgate/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockClaimRepository is a mock of ClaimRepository interface.
type MockClaimRepository struct {
	ctrl     *gomock.Controller
	recorder *MockClaimRepositoryMockRecorder
	isgomock struct{}
}

// MockClaimRepositoryMockRecorder is the mock recorder for MockClaimRepository.
type MockClaimRepositoryMockRecorder struct {
	mock *MockClaimRepository
}

// NewMockClaimRepository creates a new mock instance.
func NewMockClaimRepository(ctrl *gomock.Controller) *MockClaimRepository {
	mock := &MockClaimRepository{ctrl: ctrl}
	mock.recorder = &MockClaimRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClaimRepository) EXPECT() *MockClaimRepositoryMockRecorder {
	return m.recorder
}

// GetByJTI mocks base method.
func (m *MockClaimRepository) GetByJTI(ctx context.Context, jti string) (*models.ClaimRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByJTI", ctx, jti)
	ret0, _ := ret[0].(*models.ClaimRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByJTI indicates an expected call of GetByJTI.
func (mr *MockClaimRepositoryMockRecorder) GetByJTI(ctx, jti any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByJTI", reflect.TypeOf((*MockClaimRepository)(nil).GetByJTI), ctx, jti)
}

// IsUsed mocks base method.
func (m *MockClaimRepository) IsUsed(ctx context.Context, jti string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsUsed", ctx, jti)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IsUsed indicates an expected call of IsUsed.
func (mr *MockClaimRepositoryMockRecorder) IsUsed(ctx, jti any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsUsed", reflect.TypeOf((*MockClaimRepository)(nil).IsUsed), ctx, jti)
}

// MarkUsed mocks base method.
func (m *MockClaimRepository) MarkUsed(ctx context.Context, jti, discordID, ip string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkUsed", ctx, jti, discordID, ip)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MarkUsed indicates an expected call of MarkUsed.
func (mr *MockClaimRepositoryMockRecorder) MarkUsed(ctx, jti, discordID, ip any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkUsed", reflect.TypeOf((*MockClaimRepository)(nil).MarkUsed), ctx, jti, discordID, ip)
}

// RecordIssued mocks base method.
func (m *MockClaimRepository) RecordIssued(ctx context.Context, jti, membershipID, planID string, issuedAt, expiresAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordIssued", ctx, jti, membershipID, planID, issuedAt, expiresAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecordIssued indicates an expected call of RecordIssued.
func (mr *MockClaimRepositoryMockRecorder) RecordIssued(ctx, jti, membershipID, planID, issuedAt, expiresAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordIssued", reflect.TypeOf((*MockClaimRepository)(nil).RecordIssued), ctx, jti, membershipID, planID, issuedAt, expiresAt)
}

// MockMembershipRepository is a mock of MembershipRepository interface.
type MockMembershipRepository struct {
	ctrl     *gomock.Controller
	recorder *MockMembershipRepositoryMockRecorder
	isgomock struct{}
}

// MockMembershipRepositoryMockRecorder is the mock recorder for MockMembershipRepository.
type MockMembershipRepositoryMockRecorder struct {
	mock *MockMembershipRepository
}

// NewMockMembershipRepository creates a new mock instance.
func NewMockMembershipRepository(ctrl *gomock.Controller) *MockMembershipRepository {
	mock := &MockMembershipRepository{ctrl: ctrl}
	mock.recorder = &MockMembershipRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMembershipRepository) EXPECT() *MockMembershipRepositoryMockRecorder {
	return m.recorder
}

// Deactivate mocks base method.
func (m *MockMembershipRepository) Deactivate(ctx context.Context, membershipID string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deactivate", ctx, membershipID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Deactivate indicates an expected call of Deactivate.
func (mr *MockMembershipRepositoryMockRecorder) Deactivate(ctx, membershipID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deactivate", reflect.TypeOf((*MockMembershipRepository)(nil).Deactivate), ctx, membershipID)
}

// GetByMembershipID mocks base method.
func (m *MockMembershipRepository) GetByMembershipID(ctx context.Context, membershipID string) (*models.MembershipLink, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByMembershipID", ctx, membershipID)
	ret0, _ := ret[0].(*models.MembershipLink)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByMembershipID indicates an expected call of GetByMembershipID.
func (mr *MockMembershipRepositoryMockRecorder) GetByMembershipID(ctx, membershipID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByMembershipID", reflect.TypeOf((*MockMembershipRepository)(nil).GetByMembershipID), ctx, membershipID)
}

// Upsert mocks base method.
func (m *MockMembershipRepository) Upsert(ctx context.Context, membershipID, discordID, discordUsername, discordEmail, planID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Upsert", ctx, membershipID, discordID, discordUsername, discordEmail, planID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Upsert indicates an expected call of Upsert.
func (mr *MockMembershipRepositoryMockRecorder) Upsert(ctx, membershipID, discordID, discordUsername, discordEmail, planID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Upsert", reflect.TypeOf((*MockMembershipRepository)(nil).Upsert), ctx, membershipID, discordID, discordUsername, discordEmail, planID)
}

// MockEventRepository is a mock of EventRepository interface.
type MockEventRepository struct {
	ctrl     *gomock.Controller
	recorder *MockEventRepositoryMockRecorder
	isgomock struct{}
}

// MockEventRepositoryMockRecorder is the mock recorder for MockEventRepository.
type MockEventRepositoryMockRecorder struct {
	mock *MockEventRepository
}

// NewMockEventRepository creates a new mock instance.
func NewMockEventRepository(ctrl *gomock.Controller) *MockEventRepository {
	mock := &MockEventRepository{ctrl: ctrl}
	mock.recorder = &MockEventRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEventRepository) EXPECT() *MockEventRepositoryMockRecorder {
	return m.recorder
}

// MarkProcessed mocks base method.
func (m *MockEventRepository) MarkProcessed(ctx context.Context, eventID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkProcessed", ctx, eventID)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkProcessed indicates an expected call of MarkProcessed.
func (mr *MockEventRepositoryMockRecorder) MarkProcessed(ctx, eventID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkProcessed", reflect.TypeOf((*MockEventRepository)(nil).MarkProcessed), ctx, eventID)
}

// Record mocks base method.
func (m *MockEventRepository) Record(ctx context.Context, eventID, eventType string, data []byte) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Record", ctx, eventID, eventType, data)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Record indicates an expected call of Record.
func (mr *MockEventRepositoryMockRecorder) Record(ctx, eventID, eventType, data any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Record", reflect.TypeOf((*MockEventRepository)(nil).Record), ctx, eventID, eventType, data)
}
