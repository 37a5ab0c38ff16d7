package scheduling

import (
	"errors"
	"sync"
)

var (
	ErrSlotAlreadyBooked   = errors.New("time slot already booked")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

type slotKey struct {
	doctorID string
	date     string
	time     string
}

// Store owns all appointment state. A single RWMutex guards it: Insert is
// the one check-then-act operation in the system, so the existence check for
// a (doctor, date, time) key and the insert happen under the same write lock.
type Store struct {
	mu     sync.RWMutex
	bySlot map[slotKey]*Appointment
	byID   map[string]*Appointment
	events []Event
}

func NewStore() *Store {
	return &Store{
		bySlot: make(map[slotKey]*Appointment),
		byID:   make(map[string]*Appointment),
	}
}

// Insert commits a confirmed appointment, failing with ErrSlotAlreadyBooked
// if the slot is already held. This is the compare-and-insert the booking
// pipeline relies on for its at-most-one-appointment-per-slot invariant.
func (s *Store) Insert(appt Appointment, ev Event) error {
	key := slotKey{doctorID: appt.DoctorID, date: appt.Date, time: appt.Time}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bySlot[key]; taken {
		return ErrSlotAlreadyBooked
	}

	stored := appt
	s.bySlot[key] = &stored
	s.byID[appt.AppointmentID] = &stored
	s.events = append(s.events, ev)
	return nil
}

// BookedTimes returns the set of times already held for a doctor on a date;
// callers filter the template against it.
func (s *Store) BookedTimes(doctorID, date string) map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booked := make(map[string]struct{})
	for key := range s.bySlot {
		if key.doctorID == doctorID && key.date == date {
			booked[key.time] = struct{}{}
		}
	}
	return booked
}

func (s *Store) GetAppointment(id string) (Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appt, ok := s.byID[id]
	if !ok {
		return Appointment{}, ErrAppointmentNotFound
	}
	return *appt, nil
}

// ListForPatient returns a patient's appointments in no particular order.
func (s *Store) ListForPatient(patientID string) []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Appointment
	for _, appt := range s.byID {
		if appt.PatientID == patientID {
			out = append(out, *appt)
		}
	}
	return out
}

func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
