package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ConsultationType tags a consultation slot. The zero value means "not chosen yet".
type ConsultationType string

const (
	ConsultationTypeUnset     ConsultationType = ""
	ConsultationTypeOPD       ConsultationType = "OPD"
	ConsultationTypeEmergency ConsultationType = "EMERGENCY"
	ConsultationTypeSpecial   ConsultationType = "SPECIAL"
	ConsultationTypeSurgery   ConsultationType = "SURGERY"
)

func (t ConsultationType) Valid() bool {
	switch t {
	case ConsultationTypeUnset, ConsultationTypeOPD, ConsultationTypeEmergency,
		ConsultationTypeSpecial, ConsultationTypeSurgery:
		return true
	}
	return false
}

// ConsultationSlot has no identity beyond its position in a day list.
type ConsultationSlot struct {
	ConsultationType ConsultationType `json:"consultationType"`
	From             string           `json:"from"`
	To               string           `json:"to"`
}

// Defaults for a freshly added slot.
const (
	DefaultSlotFrom = "09:00"
	DefaultSlotTo   = "17:00"
)

func NewConsultationSlot() ConsultationSlot {
	return ConsultationSlot{From: DefaultSlotFrom, To: DefaultSlotTo}
}

var weekdayNames = [7]string{
	"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY",
}

// WeekdayName returns the upper-case day key used on the wire.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// ParseWeekday accepts a day name in any case.
func ParseWeekday(name string) (time.Weekday, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == upper {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// WeeklySchedule holds the consultation slots of one hospital association,
// indexed by time.Weekday. The fixed array keeps all seven days present at all times.
type WeeklySchedule [7][]ConsultationSlot

// Day returns the slots of d. The returned slice must not be modified.
func (w WeeklySchedule) Day(d time.Weekday) []ConsultationSlot {
	return w[d]
}

// SlotCount is the number of slots across the week.
func (w WeeklySchedule) SlotCount() int {
	n := 0
	for _, slots := range w {
		n += len(slots)
	}
	return n
}

// Clone returns a deep copy so that edits to a draft never leak into a stored association.
func (w WeeklySchedule) Clone() WeeklySchedule {
	var out WeeklySchedule
	for d, slots := range w {
		if len(slots) == 0 {
			continue
		}
		out[d] = append([]ConsultationSlot(nil), slots...)
	}
	return out
}

func (w WeeklySchedule) MarshalJSON() ([]byte, error) {
	days := make(map[string][]ConsultationSlot, len(weekdayNames))
	for d, name := range weekdayNames {
		slots := w[d]
		if slots == nil {
			slots = []ConsultationSlot{}
		}
		days[name] = slots
	}
	return json.Marshal(days)
}

// UnmarshalJSON accepts any subset of day keys; missing days stay empty.
func (w *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var days map[string][]ConsultationSlot
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}

	var out WeeklySchedule
	for name, slots := range days {
		d, ok := ParseWeekday(name)
		if !ok {
			return fmt.Errorf("unknown schedule day %q", name)
		}
		if len(slots) > 0 {
			out[d] = slots
		}
	}
	*w = out
	return nil
}
