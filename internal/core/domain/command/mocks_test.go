package command

import (
	"context"
	"errors"
	"officebot/internal/core/domain"
	"sync"

	"github.com/stretchr/testify/mock"
)

var errMock = errors.New("mock error")

// recordingSender keeps every reply it is asked to deliver.
type recordingSender struct {
	mutex   sync.Mutex
	replies []domain.Reply
	err     error
}

func (s *recordingSender) Send(_ context.Context, reply domain.Reply) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.replies = append(s.replies, reply)
	return s.err
}

func (s *recordingSender) contents() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	contents := make([]string, 0, len(s.replies))
	for _, reply := range s.replies {
		contents = append(contents, reply.Content)
	}

	return contents
}

func (s *recordingSender) last() domain.Reply {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.replies) == 0 {
		return domain.Reply{}
	}

	return s.replies[len(s.replies)-1]
}

type MockSources struct {
	mock.Mock
}

func (m *MockSources) CommitMessage(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSources) Reaction(ctx context.Context) (domain.Reaction, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Reaction), args.Error(1)
}

func (m *MockSources) Pug(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSources) TopPosts(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]domain.Post)
	return posts, args.Error(1)
}

type MockDoor struct {
	mock.Mock
}

func (m *MockDoor) Open(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPlayer struct {
	mock.Mock
}

func (m *MockPlayer) Stop(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlayer) ClearTracklist(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlayer) AddTrack(ctx context.Context, uri string) (string, error) {
	args := m.Called(ctx, uri)
	return args.String(0), args.Error(1)
}

func (m *MockPlayer) Play(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ListVMs(ctx context.Context) ([]domain.VM, error) {
	args := m.Called(ctx)
	vms, _ := args.Get(0).([]domain.VM)
	return vms, args.Error(1)
}

func (m *MockProvider) Reboot(ctx context.Context, vmID int) error {
	return m.Called(ctx, vmID).Error(0)
}

func (m *MockProvider) CreateVM(ctx context.Context, datacenterID, planID, paymentTerm int) (int, error) {
	args := m.Called(ctx, datacenterID, planID, paymentTerm)
	return args.Int(0), args.Error(1)
}

func (m *MockProvider) SetLabel(ctx context.Context, vmID int, label string) error {
	return m.Called(ctx, vmID, label).Error(0)
}

func (m *MockProvider) CreateDiskFromDistribution(ctx context.Context, vmID, distributionID int, label string,
	size int, rootPassword string) (int, error) {
	args := m.Called(ctx, vmID, distributionID, label, size, rootPassword)
	return args.Int(0), args.Error(1)
}

func (m *MockProvider) CreateDisk(ctx context.Context, vmID int, diskType, label string, size int) (int, error) {
	args := m.Called(ctx, vmID, diskType, label, size)
	return args.Int(0), args.Error(1)
}

func (m *MockProvider) CreateConfig(ctx context.Context, vmID, kernelID int, label string,
	diskIDs []int) (int, error) {
	args := m.Called(ctx, vmID, kernelID, label, diskIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockProvider) Boot(ctx context.Context, vmID int) error {
	return m.Called(ctx, vmID).Error(0)
}

func (m *MockProvider) ListIPs(ctx context.Context, vmID int) ([]string, error) {
	args := m.Called(ctx, vmID)
	ips, _ := args.Get(0).([]string)
	return ips, args.Error(1)
}

func (m *MockProvider) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	args := m.Called(ctx)
	domains, _ := args.Get(0).([]domain.Domain)
	return domains, args.Error(1)
}

func (m *MockProvider) ListRecords(ctx context.Context, domainID int) ([]domain.DNSRecord, error) {
	args := m.Called(ctx, domainID)
	records, _ := args.Get(0).([]domain.DNSRecord)
	return records, args.Error(1)
}

func (m *MockProvider) CreateRecord(ctx context.Context, domainID int, recordType, name, target string) (int, error) {
	args := m.Called(ctx, domainID, recordType, name, target)
	return args.Int(0), args.Error(1)
}

func (m *MockProvider) DeleteRecord(ctx context.Context, domainID, recordID int) error {
	return m.Called(ctx, domainID, recordID).Error(0)
}

// mapCache is a VMCache over a plain map.
type mapCache struct {
	vms map[string]domain.VMRecord
	err error
}

func (c *mapCache) Replace(_ context.Context, vms map[string]domain.VMRecord) error {
	if c.err != nil {
		return c.err
	}

	c.vms = vms
	return nil
}

func (c *mapCache) Lookup(_ context.Context, label string) (domain.VMRecord, bool, error) {
	if c.err != nil {
		return domain.VMRecord{}, false, c.err
	}

	vm, ok := c.vms[label]
	return vm, ok, nil
}

type stubRenderer struct{}

func (stubRenderer) VMList(vms map[string]domain.VMRecord) (string, string, error) {
	return "<table>list</table>", "list", nil
}

func (stubRenderer) VMCreated(label, ip, password string) (string, string, error) {
	return "<b>" + label + "</b> " + ip + " " + password, label + " " + ip + " " + password, nil
}
