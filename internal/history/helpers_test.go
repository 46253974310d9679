package history

import (
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/mock"
)

type stubState struct {
	id     int
	source string
	value  string
}

func (s stubState) ID() int        { return s.id }
func (s stubState) Source() string { return s.source }

type stubObject struct {
	domain.Tracker
	id      int
	source  string
	value   string
	loadErr error
}

func (o *stubObject) SaveState() domain.State {
	return stubState{id: o.id, source: o.source, value: o.value}
}

func (o *stubObject) LoadState(s domain.State) error {
	if o.loadErr != nil {
		return o.loadErr
	}
	if err := domain.CheckIdentity(o.id, s); err != nil {
		return err
	}
	o.value = s.(stubState).value
	return nil
}

// MockFactory for testing Load and replay logic
type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) Get(id int) (domain.Undoable, bool) {
	args := m.Called(id)
	u, _ := args.Get(0).(domain.Undoable)
	return u, args.Bool(1)
}

func (m *MockFactory) GetAll() []domain.Undoable {
	args := m.Called()
	all, _ := args.Get(0).([]domain.Undoable)
	return all
}

func (m *MockFactory) HasKey(id int) bool {
	return m.Called(id).Bool(0)
}

func (m *MockFactory) Create(source string) (domain.Undoable, error) {
	args := m.Called(source)
	u, _ := args.Get(0).(domain.Undoable)
	return u, args.Error(1)
}

func (m *MockFactory) CreateWithID(source string, id int) (domain.Undoable, error) {
	args := m.Called(source, id)
	u, _ := args.Get(0).(domain.Undoable)
	return u, args.Error(1)
}

func (m *MockFactory) Delete(u domain.Undoable) {
	m.Called(u)
}
