//go:build linux

package notify

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

type fakeBus struct {
	method string
	args   []any
	reply  *dbus.Call
}

func (f *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.method = method
	f.args = args
	if f.reply != nil {
		return f.reply
	}
	return &dbus.Call{}
}

func TestDBusNotify_Arguments(t *testing.T) {
	bus := &fakeBus{reply: &dbus.Call{Body: []any{uint32(42)}}}
	n := &dbusNotifier{obj: bus}

	id, err := n.Notify(Notification{
		Title:      "Song",
		Body:       "Artist · Album",
		Icon:       "/tmp/cover.png",
		Timeout:    5000,
		ReplacesID: 41,
		Urgency:    UrgencyLow,
		Transient:  true,
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if bus.method != notifyMethod {
		t.Errorf("method = %q", bus.method)
	}
	if len(bus.args) != 8 {
		t.Fatalf("args = %d, want 8", len(bus.args))
	}
	if bus.args[0] != AppName || bus.args[1] != uint32(41) || bus.args[2] != "/tmp/cover.png" || bus.args[3] != "Song" {
		t.Errorf("unexpected leading args %v", bus.args[:4])
	}
	if bus.args[7] != int32(5000) {
		t.Errorf("timeout arg = %v", bus.args[7])
	}

	h, ok := bus.args[6].(map[string]dbus.Variant)
	if !ok {
		t.Fatalf("hints arg is %T", bus.args[6])
	}
	if h["urgency"].Value() != byte(UrgencyLow) {
		t.Errorf("urgency hint = %v", h["urgency"].Value())
	}
	if h["transient"].Value() != true {
		t.Error("transient hint missing")
	}
}

func TestDBusNotify_CallError(t *testing.T) {
	bus := &fakeBus{reply: &dbus.Call{Err: errors.New("no server")}}
	n := &dbusNotifier{obj: bus}

	if _, err := n.Notify(Notification{Title: "x"}); err == nil {
		t.Error("Notify() error = nil, want call error")
	}
}

func TestDBusClose(t *testing.T) {
	bus := &fakeBus{}
	n := &dbusNotifier{obj: bus}

	if err := n.Close(9); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if bus.method != closeMethod || bus.args[0] != uint32(9) {
		t.Errorf("Close called %q with %v", bus.method, bus.args)
	}
}

func TestHints_NotTransientByDefault(t *testing.T) {
	h := hints(Notification{Urgency: UrgencyCritical})
	if _, ok := h["transient"]; ok {
		t.Error("transient hint set")
	}
	if h["desktop-entry"].Value() != desktopEntry {
		t.Errorf("desktop-entry = %v", h["desktop-entry"].Value())
	}
}
