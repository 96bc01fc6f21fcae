// Package calendar implements the availability engine: it stores per-person
// availability ranges and computes the hours at which a group of required
// participants are simultaneously free.
//
// Every operation is a single synchronous request/response over the store and
// returns an Envelope. Misuse (duplicate registration, empty ranges, unknown
// persons, malformed meeting queries) is reported through envelope codes;
// only storage-layer infrastructure failures surface as Go errors for the
// adapter to escalate.
package calendar

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/meetcal/internal/timefmt"
	cerrors "github.com/hrygo/meetcal/internal/errors"
	"github.com/hrygo/meetcal/store"
)

// Store is the interface for store operations needed by the calendar service.
type Store interface {
	CreatePerson(ctx context.Context, create *store.Person) (*store.Person, error)
	GetPerson(ctx context.Context, find *store.FindPerson) (*store.Person, error)
	CreateSlot(ctx context.Context, create *store.Slot) (*store.Slot, error)
	ListSlots(ctx context.Context, find *store.FindSlot) ([]*store.Slot, error)
}

// Service is the availability engine.
type Service struct {
	store Store
}

// NewService creates a new calendar service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddUser registers a person under a unique username.
func (s *Service) AddUser(ctx context.Context, username, name string) (Envelope, error) {
	if username == "" {
		return Failure(cerrors.InvalidArgument("username must not be empty")), nil
	}

	_, err := s.store.CreatePerson(ctx, &store.Person{Username: username, Name: name})
	if errors.Is(err, store.ErrAlreadyExists) {
		return Failure(cerrors.DuplicatePerson(username)), nil
	}
	if err != nil {
		return Envelope{}, errors.Wrap(err, "failed to create person")
	}

	slog.Debug("user registered", slog.String("username", username))
	return OK(nil), nil
}

// GetUser looks up a person's display name. An unregistered username yields a
// success envelope with an empty name; callers distinguish the two cases by
// convention, matching the registry contract.
func (s *Service) GetUser(ctx context.Context, username string) (Envelope, error) {
	if username == "" {
		return Failure(cerrors.InvalidArgument("username must not be empty")), nil
	}

	person, err := s.store.GetPerson(ctx, &store.FindPerson{Username: &username})
	if err != nil {
		return Envelope{}, errors.Wrap(err, "failed to get person")
	}
	if person == nil {
		return OK(""), nil
	}
	return OK(person.Name), nil
}

// AddSlots stores the half-open availability range [from, to) for a person.
// Both ends are truncated to the hour before validation, so the stored range
// always satisfies end > start at hour granularity.
func (s *Service) AddSlots(ctx context.Context, username string, from, to time.Time) (Envelope, error) {
	if username == "" || from.IsZero() || to.IsZero() {
		return Failure(cerrors.InvalidArgument("username and both instants are required")), nil
	}

	from = timefmt.TruncateHour(from)
	to = timefmt.TruncateHour(to)
	if !to.After(from) {
		return Failure(cerrors.EmptyRange()), nil
	}

	_, err := s.store.CreateSlot(ctx, &store.Slot{Username: username, Start: from, End: to})
	if errors.Is(err, store.ErrPersonNotFound) {
		return Failure(cerrors.UnknownPerson(username)), nil
	}
	if err != nil {
		return Envelope{}, errors.Wrap(err, "failed to create slot")
	}

	slog.Debug("slot range added",
		slog.String("username", username),
		slog.String("from", timefmt.Format(from)),
		slog.String("to", timefmt.Format(to)),
	)
	return OK(nil), nil
}

// GetSlots expands every stored range of a person into hourly slot stamps.
// The stamps come back in range order, each hour covered by overlapping
// ranges appearing once per covering range. An unknown username yields a
// success envelope with an empty list.
func (s *Service) GetSlots(ctx context.Context, username string) (Envelope, error) {
	if username == "" {
		return Failure(cerrors.InvalidArgument("username must not be empty")), nil
	}

	stamps, err := s.slotStamps(ctx, username)
	if err != nil {
		return Envelope{}, err
	}
	return OK(stamps), nil
}

// OrganizeMeeting computes the hourly slots at which the interviewee and all
// interviewers are simultaneously free, sorted chronologically.
func (s *Service) OrganizeMeeting(ctx context.Context, interviewee string, interviewers []string) (Envelope, error) {
	if interviewers == nil {
		return Failure(cerrors.InvalidInterviewerList("interviewer list is required")), nil
	}
	for _, username := range interviewers {
		if username == "" {
			return Failure(cerrors.InvalidInterviewerList("interviewer usernames must not be empty")), nil
		}
	}
	if interviewee == "" {
		return Failure(cerrors.InvalidInterviewee("interviewee username must not be empty")), nil
	}
	if len(interviewers) == 0 {
		return Failure(cerrors.MissingInterviewer()), nil
	}

	// Deduplicate the participant set: each person counts at most once per
	// hour, no matter how often they appear in the query or how many
	// overlapping ranges cover that hour.
	participants := []string{interviewee}
	seen := map[string]bool{interviewee: true}
	for _, username := range interviewers {
		if !seen[username] {
			seen[username] = true
			participants = append(participants, username)
		}
	}

	attribution := map[string]int{}
	for _, username := range participants {
		stamps, err := s.slotStamps(ctx, username)
		if err != nil {
			return Envelope{}, err
		}
		reported := map[string]bool{}
		for _, stamp := range stamps {
			if !reported[stamp] {
				reported[stamp] = true
				attribution[stamp]++
			}
		}
	}

	common := []string{}
	for stamp, count := range attribution {
		if count == len(participants) {
			common = append(common, stamp)
		}
	}
	// Lexicographic order equals chronological order for ISO 8601 stamps.
	sort.Strings(common)

	slog.Debug("meeting organized",
		slog.String("interviewee", interviewee),
		slog.Int("participants", len(participants)),
		slog.Int("common_slots", len(common)),
	)
	return OK(common), nil
}

// slotStamps lists and expands all stored ranges for one person.
func (s *Service) slotStamps(ctx context.Context, username string) ([]string, error) {
	slots, err := s.store.ListSlots(ctx, &store.FindSlot{Username: &username})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list slots for %q", username)
	}

	stamps := []string{}
	for _, slot := range slots {
		for _, hour := range ExpandHours(slot.Start, slot.End) {
			stamps = append(stamps, timefmt.Format(hour))
		}
	}
	return stamps, nil
}
