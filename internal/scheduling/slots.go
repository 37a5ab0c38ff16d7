package scheduling

// The daily slot template is fixed: 09:00 through 16:30 at 30-minute
// spacing, identical for every doctor and every date. Per-doctor schedules
// are a known simplification left out on purpose.
var slotTemplate = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30",
}

var slotSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(slotTemplate))
	for _, s := range slotTemplate {
		m[s] = struct{}{}
	}
	return m
}()

// SlotTemplate returns a copy of the daily template in ascending order.
func SlotTemplate() []string {
	out := make([]string, len(slotTemplate))
	copy(out, slotTemplate)
	return out
}

func ValidSlot(t string) bool {
	_, ok := slotSet[t]
	return ok
}
