package calendar

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/hrygo/meetcal/internal/errors"
	"github.com/hrygo/meetcal/store"
)

// MockStoreForCalendar is an in-memory implementation of the Store interface
// for testing. It honors the same sentinel errors as the real drivers.
type MockStoreForCalendar struct {
	persons map[string]*store.Person
	slots   []*store.Slot
	nextID  int32
}

func NewMockStore() *MockStoreForCalendar {
	return &MockStoreForCalendar{persons: map[string]*store.Person{}}
}

func (m *MockStoreForCalendar) CreatePerson(_ context.Context, create *store.Person) (*store.Person, error) {
	if _, ok := m.persons[create.Username]; ok {
		return nil, store.ErrAlreadyExists
	}
	m.persons[create.Username] = create
	return create, nil
}

func (m *MockStoreForCalendar) GetPerson(_ context.Context, find *store.FindPerson) (*store.Person, error) {
	if find.Username == nil {
		return nil, nil
	}
	return m.persons[*find.Username], nil
}

func (m *MockStoreForCalendar) CreateSlot(_ context.Context, create *store.Slot) (*store.Slot, error) {
	if _, ok := m.persons[create.Username]; !ok {
		return nil, store.ErrPersonNotFound
	}
	m.nextID++
	create.ID = m.nextID
	m.slots = append(m.slots, create)
	return create, nil
}

func (m *MockStoreForCalendar) ListSlots(_ context.Context, find *store.FindSlot) ([]*store.Slot, error) {
	result := make([]*store.Slot, 0)
	for _, slot := range m.slots {
		if find.Username != nil && slot.Username != *find.Username {
			continue
		}
		result = append(result, slot)
	}
	return result, nil
}

func at(day, hour int) time.Time {
	return time.Date(2018, 11, day, hour, 0, 0, 0, time.UTC)
}

func TestAddUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())

	env, err := svc.AddUser(ctx, "manager1", "Manager 1")
	require.NoError(t, err)
	assert.Equal(t, 0, env.Code)

	env, err = svc.AddUser(ctx, "manager1", "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, cerrors.ErrCodeDuplicatePerson.Numeric(), env.Code)

	env, err = svc.AddUser(ctx, "", "No Name")
	require.NoError(t, err)
	assert.Equal(t, cerrors.ErrCodeInvalidArgument.Numeric(), env.Code)
}

func TestGetUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())

	_, err := svc.AddUser(ctx, "interviewee", "Interview Candidate")
	require.NoError(t, err)

	env, err := svc.GetUser(ctx, "interviewee")
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)
	assert.Equal(t, "Interview Candidate", env.Data)

	// An unregistered person yields success with an empty name.
	env, err = svc.GetUser(ctx, "nobody")
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)
	assert.Equal(t, "", env.Data)

	// A registered person with an empty display name looks the same.
	_, err = svc.AddUser(ctx, "anon", "")
	require.NoError(t, err)
	env, err = svc.GetUser(ctx, "anon")
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)
	assert.Equal(t, "", env.Data)
}

func TestAddSlotsValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	_, err := svc.AddUser(ctx, "existing_username", "Existing User")
	require.NoError(t, err)

	valid := at(15, 13)
	tests := []struct {
		name     string
		username string
		from     time.Time
		to       time.Time
		wantCode int
	}{
		{"empty username", "", valid, at(15, 14), cerrors.ErrCodeInvalidArgument.Numeric()},
		{"zero from", "existing_username", time.Time{}, at(15, 14), cerrors.ErrCodeInvalidArgument.Numeric()},
		{"zero to", "existing_username", valid, time.Time{}, cerrors.ErrCodeInvalidArgument.Numeric()},
		{"all empty", "", time.Time{}, time.Time{}, cerrors.ErrCodeInvalidArgument.Numeric()},
		{"end equals start", "existing_username", valid, valid, cerrors.ErrCodeEmptyRange.Numeric()},
		{"end before start", "existing_username", at(15, 14), valid, cerrors.ErrCodeEmptyRange.Numeric()},
		{"unregistered person", "random_username", at(15, 8), at(15, 21), cerrors.ErrCodeUnknownPerson.Numeric()},
		{"valid range", "existing_username", valid, at(15, 14), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := svc.AddSlots(ctx, tt.username, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}

func TestAddSlotsTruncatesToHour(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	_, err := svc.AddUser(ctx, "p", "P")
	require.NoError(t, err)

	// 13:30-15:10 is stored as [13:00, 15:00): two hourly slots.
	from := time.Date(2018, 11, 19, 13, 30, 0, 0, time.UTC)
	to := time.Date(2018, 11, 19, 15, 10, 0, 0, time.UTC)
	env, err := svc.AddSlots(ctx, "p", from, to)
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)

	env, err = svc.GetSlots(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"2018-11-19T13:00:00", "2018-11-19T14:00:00"}, env.Data)
}

func TestAddSlotsEmptyAfterTruncation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	_, err := svc.AddUser(ctx, "p", "P")
	require.NoError(t, err)

	// Both instants truncate to the same hour, so the range is empty.
	from := time.Date(2018, 11, 19, 13, 10, 0, 0, time.UTC)
	to := time.Date(2018, 11, 19, 13, 50, 0, 0, time.UTC)
	env, err := svc.AddSlots(ctx, "p", from, to)
	require.NoError(t, err)
	assert.Equal(t, cerrors.ErrCodeEmptyRange.Numeric(), env.Code)
}

func TestGetSlotsExpansion(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	_, err := svc.AddUser(ctx, "existing_username", "Existing User")
	require.NoError(t, err)

	env, err := svc.AddSlots(ctx, "existing_username", at(15, 8), at(15, 21))
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)

	env, err = svc.GetSlots(ctx, "existing_username")
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)

	stamps, ok := env.Data.([]string)
	require.True(t, ok)
	require.Len(t, stamps, 13)
	for k, stamp := range stamps {
		assert.Equal(t, fmt.Sprintf("2018-11-15T%02d:00:00", 8+k), stamp)
	}
}

func TestGetSlotsUnknownPersonSucceedsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())

	env, err := svc.GetSlots(ctx, "random_username")
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)
	assert.Equal(t, []string{}, env.Data)
}

func TestGetSlotsKeepsOverlapDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	_, err := svc.AddUser(ctx, "p", "P")
	require.NoError(t, err)

	// Two overlapping ranges: 8-12 and 10-14. The shared hours 10 and 11
	// must appear twice in the raw output; no deduplication on read.
	_, err = svc.AddSlots(ctx, "p", at(19, 8), at(19, 12))
	require.NoError(t, err)
	_, err = svc.AddSlots(ctx, "p", at(19, 10), at(19, 14))
	require.NoError(t, err)

	env, err := svc.GetSlots(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2018-11-19T08:00:00",
		"2018-11-19T09:00:00",
		"2018-11-19T10:00:00",
		"2018-11-19T11:00:00",
		"2018-11-19T10:00:00",
		"2018-11-19T11:00:00",
		"2018-11-19T12:00:00",
		"2018-11-19T13:00:00",
	}, env.Data)
}

func TestGetSlotsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	_, err := svc.AddUser(ctx, "p", "P")
	require.NoError(t, err)
	_, err = svc.AddSlots(ctx, "p", at(19, 8), at(19, 18))
	require.NoError(t, err)
	_, err = svc.AddSlots(ctx, "p", at(21, 8), at(21, 18))
	require.NoError(t, err)

	first, err := svc.GetSlots(ctx, "p")
	require.NoError(t, err)
	second, err := svc.GetSlots(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOrganizeMeetingValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())

	env, err := svc.OrganizeMeeting(ctx, "x", nil)
	require.NoError(t, err)
	assert.Equal(t, cerrors.ErrCodeInvalidInterviewerList.Numeric(), env.Code)

	env, err = svc.OrganizeMeeting(ctx, "x", []string{"ok", ""})
	require.NoError(t, err)
	assert.Equal(t, cerrors.ErrCodeInvalidInterviewerList.Numeric(), env.Code)

	env, err = svc.OrganizeMeeting(ctx, "", []string{"manager1"})
	require.NoError(t, err)
	assert.Equal(t, cerrors.ErrCodeInvalidInterviewee.Numeric(), env.Code)

	env, err = svc.OrganizeMeeting(ctx, "x", []string{})
	require.NoError(t, err)
	assert.Equal(t, cerrors.ErrCodeMissingInterviewer.Numeric(), env.Code)
}

// seedInterviewWeek loads the reference fixture: the week of 2018-11-19
// (a Monday), three managers and one interview candidate.
func seedInterviewWeek(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()

	for _, p := range []struct{ username, name string }{
		{"manager1", "Manager 1"},
		{"manager2", "Manager 2"},
		{"manager3", "Manager 3"},
		{"interviewee", "Interview Candidate"},
	} {
		_, err := svc.AddUser(ctx, p.username, p.name)
		require.NoError(t, err)
	}

	for _, r := range []struct {
		username string
		from, to time.Time
	}{
		{"manager1", at(19, 8), at(19, 18)},
		{"manager1", at(21, 8), at(21, 18)},
		{"manager1", at(23, 8), at(23, 18)},
		{"manager2", at(19, 11), at(19, 21)},
		{"manager2", at(20, 11), at(20, 21)},
		{"manager2", at(21, 11), at(21, 21)},
		{"manager2", at(22, 11), at(22, 13)},
		{"manager3", at(22, 16), at(23, 18)},
		{"interviewee", at(19, 9), at(19, 17)},
		{"interviewee", at(20, 9), at(20, 17)},
		{"interviewee", at(21, 9), at(21, 17)},
	} {
		env, err := svc.AddSlots(ctx, r.username, r.from, r.to)
		require.NoError(t, err)
		require.Equal(t, 0, env.Code)
	}
}

func TestInterviewWeekSlotCounts(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	seedInterviewWeek(t, svc)

	for _, tt := range []struct {
		username string
		slots    int
	}{
		{"manager1", 30},
		{"manager2", 32},
		{"manager3", 26},
		{"interviewee", 24},
	} {
		env, err := svc.GetSlots(ctx, tt.username)
		require.NoError(t, err)
		require.Equal(t, 0, env.Code)
		stamps, ok := env.Data.([]string)
		require.True(t, ok)
		assert.Len(t, stamps, tt.slots, "slot count for %s", tt.username)
	}
}

func TestOrganizeMeetingSingleDay(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())

	_, err := svc.AddUser(ctx, "manager1", "Manager 1")
	require.NoError(t, err)
	_, err = svc.AddUser(ctx, "interviewee", "Interview Candidate")
	require.NoError(t, err)

	// manager1 free 08-18, interviewee free 09-17 on the same Monday.
	_, err = svc.AddSlots(ctx, "manager1", at(19, 8), at(19, 18))
	require.NoError(t, err)
	_, err = svc.AddSlots(ctx, "interviewee", at(19, 9), at(19, 17))
	require.NoError(t, err)

	env, err := svc.OrganizeMeeting(ctx, "interviewee", []string{"manager1"})
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)

	want := []string{}
	for hour := 9; hour < 17; hour++ {
		want = append(want, fmt.Sprintf("2018-11-19T%02d:00:00", hour))
	}
	assert.Equal(t, want, env.Data)
}

func TestOrganizeMeetingThreeWay(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	seedInterviewWeek(t, svc)

	// manager3 is only free Thu/Fri while the interviewee is only free
	// Mon-Wed, so no common hour exists.
	env, err := svc.OrganizeMeeting(ctx, "interviewee", []string{"manager1", "manager3"})
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)
	assert.Equal(t, []string{}, env.Data)

	// Give manager3 a single hour that everyone shares.
	addEnv, err := svc.AddSlots(ctx, "manager3", at(19, 10), at(19, 11))
	require.NoError(t, err)
	require.Equal(t, 0, addEnv.Code)

	env, err = svc.OrganizeMeeting(ctx, "interviewee", []string{"manager1", "manager3"})
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)
	assert.Equal(t, []string{"2018-11-19T10:00:00"}, env.Data)
}

func TestOrganizeMeetingResultIsSorted(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	seedInterviewWeek(t, svc)

	env, err := svc.OrganizeMeeting(ctx, "interviewee", []string{"manager1", "manager2"})
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)

	stamps, ok := env.Data.([]string)
	require.True(t, ok)
	require.NotEmpty(t, stamps)
	for i := 1; i < len(stamps); i++ {
		assert.Less(t, stamps[i-1], stamps[i])
	}
}

func TestOrganizeMeetingOverlapDoesNotInflateAttribution(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())

	_, err := svc.AddUser(ctx, "doublebooked", "Double Booked")
	require.NoError(t, err)
	_, err = svc.AddUser(ctx, "other", "Other")
	require.NoError(t, err)

	// doublebooked reports 10:00 twice via overlapping ranges; other never
	// reports it. The hour must not qualify just because the raw occurrence
	// count reaches the participant count.
	_, err = svc.AddSlots(ctx, "doublebooked", at(19, 10), at(19, 11))
	require.NoError(t, err)
	_, err = svc.AddSlots(ctx, "doublebooked", at(19, 10), at(19, 11))
	require.NoError(t, err)

	env, err := svc.OrganizeMeeting(ctx, "doublebooked", []string{"other"})
	require.NoError(t, err)
	require.Equal(t, 0, env.Code)
	assert.Equal(t, []string{}, env.Data)
}

func TestOrganizeMeetingDuplicateInterviewers(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMockStore())
	seedInterviewWeek(t, svc)

	// Duplicate entries in the interviewer list are semantically meaningless.
	dedup, err := svc.OrganizeMeeting(ctx, "interviewee", []string{"manager1"})
	require.NoError(t, err)
	doubled, err := svc.OrganizeMeeting(ctx, "interviewee", []string{"manager1", "manager1"})
	require.NoError(t, err)
	assert.Equal(t, dedup.Data, doubled.Data)
}
