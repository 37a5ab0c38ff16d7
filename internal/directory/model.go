package directory

// Doctor is reference data loaded at startup and never mutated afterwards.
type Doctor struct {
	DoctorID  string `json:"doctor_id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}
