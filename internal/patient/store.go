package patient

import (
	"errors"
	"sync"
)

var ErrPatientNotFound = errors.New("patient not found")

// Store keeps registered patients in memory, guarded for concurrent
// registrations from the HTTP layer.
type Store struct {
	mu   sync.RWMutex
	byID map[string]Patient
}

func NewStore() *Store {
	return &Store{byID: make(map[string]Patient)}
}

// Register validates the form and stores the new patient.
func (s *Store) Register(req RegistrationRequest) (Patient, error) {
	if err := Validate(req); err != nil {
		return Patient{}, err
	}

	p := NewPatient(req)

	s.mu.Lock()
	s.byID[p.PatientID] = p
	s.mu.Unlock()

	return p, nil
}

func (s *Store) Get(patientID string) (Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[patientID]
	if !ok {
		return Patient{}, ErrPatientNotFound
	}
	return p, nil
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
