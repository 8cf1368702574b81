package notify

import "testing"

func TestUrgencyMatchesFreedesktop(t *testing.T) {
	for u, want := range map[Urgency]byte{UrgencyLow: 0, UrgencyNormal: 1, UrgencyCritical: 2} {
		if byte(u) != want {
			t.Errorf("urgency %d, want %d", u, want)
		}
	}
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	id, err := n.Notify(Notification{Title: "x"})
	if id != 0 || err != nil {
		t.Errorf("Notify() = %d, %v; want 0, nil", id, err)
	}
	if err := n.Close(3); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
