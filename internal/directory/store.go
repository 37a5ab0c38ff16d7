package directory

// Store holds the doctor directory. It is populated once before the server
// starts accepting traffic and is read-only from then on, so lookups need no
// locking.
type Store struct {
	byID  map[string]Doctor
	order []string
}

func NewStore(doctors []Doctor) *Store {
	s := &Store{
		byID:  make(map[string]Doctor, len(doctors)),
		order: make([]string, 0, len(doctors)),
	}
	for _, d := range doctors {
		if _, dup := s.byID[d.DoctorID]; dup {
			continue
		}
		s.byID[d.DoctorID] = d
		s.order = append(s.order, d.DoctorID)
	}
	return s
}

func (s *Store) DoctorExists(doctorID string) bool {
	_, ok := s.byID[doctorID]
	return ok
}

func (s *Store) GetDoctor(doctorID string) (Doctor, bool) {
	d, ok := s.byID[doctorID]
	return d, ok
}

// ListDoctors returns doctors in insertion order.
func (s *Store) ListDoctors() []Doctor {
	out := make([]Doctor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store) Count() int {
	return len(s.byID)
}
