package insurance

import (
	"context"
	"errors"
)

var (
	ErrPolicyNotFound = errors.New("insurance policy not found")

	// ErrSourceUnavailable marks a transient failure of the policy source.
	// The in-memory store never returns it; a remote payer gateway would.
	ErrSourceUnavailable = errors.New("insurance source unavailable")
)

// Source is where the checker looks policies up. The local store satisfies
// it directly; a real clearinghouse client would too.
type Source interface {
	LookupPolicy(ctx context.Context, insuranceID string) (*Policy, error)
}

// Store is the in-memory policy set. Populated before the server starts and
// read-only afterwards.
type Store struct {
	byID map[string]Policy
}

func NewStore(policies []Policy) *Store {
	s := &Store{byID: make(map[string]Policy, len(policies))}
	for _, p := range policies {
		s.byID[p.InsuranceID] = p
	}
	return s
}

func (s *Store) LookupPolicy(_ context.Context, insuranceID string) (*Policy, error) {
	p, ok := s.byID[insuranceID]
	if !ok {
		return nil, ErrPolicyNotFound
	}
	return &p, nil
}

func (s *Store) Count() int {
	return len(s.byID)
}
