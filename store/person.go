package store

import (
	"context"
)

// Person is the object representing a registered participant.
type Person struct {
	// Username is the unique identifier, chosen at registration.
	Username string
	// Name is the display name. May be empty.
	Name      string
	CreatedTs int64
}

// FindPerson is the find condition for person.
type FindPerson struct {
	Username *string
}

// CreatePerson registers a new person. A duplicate username is rejected by
// the primary key constraint; drivers surface it as ErrAlreadyExists.
func (s *Store) CreatePerson(ctx context.Context, create *Person) (*Person, error) {
	person, err := s.driver.CreatePerson(ctx, create)
	if err != nil {
		return nil, err
	}
	s.personCache.Set(ctx, person.Username, person)
	return person, nil
}

// GetPerson gets a person by username. Returns nil (no error) when absent.
// Persons are never updated or deleted, so cached entries cannot go stale.
func (s *Store) GetPerson(ctx context.Context, find *FindPerson) (*Person, error) {
	if find.Username != nil {
		if cached, ok := s.personCache.Get(ctx, *find.Username); ok {
			if person, ok := cached.(*Person); ok {
				return person, nil
			}
		}
	}

	person, err := s.driver.GetPerson(ctx, find)
	if err != nil {
		return nil, err
	}
	if person != nil {
		s.personCache.Set(ctx, person.Username, person)
	}
	return person, nil
}
