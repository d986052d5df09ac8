package models

// Status is the lifecycle state shared by Prospects and Activities. The
// machine-readable keys below are a wire-format contract: they are what gets
// persisted and what any external report consumes.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// statusLabels is the display mapping. It must stay a total bijection:
// every key maps to exactly one label and back.
var statusLabels = map[Status]string{
	StatusNew:        "Baru",
	StatusInProgress: "Dalam Proses",
	StatusSucceeded:  "Berhasil",
	StatusFailed:     "Gagal",
}

var statusKeys = func() map[string]Status {
	m := make(map[string]Status, len(statusLabels))
	for k, label := range statusLabels {
		m[label] = k
	}
	return m
}()

// AllStatuses lists every valid status key.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusSucceeded, StatusFailed}
}

// IsValid reports whether s is one of the known status keys.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label for a status key.
func (s Status) Label() string {
	return statusLabels[s]
}

// StatusFromLabel maps a display label back to its status key.
func StatusFromLabel(label string) (Status, bool) {
	s, ok := statusKeys[label]
	return s, ok
}

// There is deliberately no transition table here. Any status may be written
// over any other, either by an explicit edit or alongside a followup append:
// manual override by the operator is always allowed.
