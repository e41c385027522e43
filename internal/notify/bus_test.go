package notify_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
	"github.com/openhlxgo/hlx/internal/notify"
)

func TestBusSubscribePublish(t *testing.T) {
	bus := notify.NewBus()

	var got notify.Notification
	bus.Subscribe("test1", func(n notify.Notification) { got = n })

	bus.Publish(notify.ZoneVolume{Zone: 3, Level: -25})

	zv, ok := got.(notify.ZoneVolume)
	if !ok {
		t.Fatalf("got %T, want notify.ZoneVolume", got)
	}
	if zv.Zone != 3 || zv.Level != -25 {
		t.Fatalf("got %+v, want {Zone:3 Level:-25}", zv)
	}
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := notify.NewBus()
	calls := 0
	bus.Subscribe("s1", func(notify.Notification) { calls++ })

	bus.Publish(notify.ConfigurationSaved{})
	bus.Unsubscribe("s1")
	bus.Publish(notify.ConfigurationSaved{})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestBusSubscriberCount(t *testing.T) {
	bus := notify.NewBus()
	if n := bus.SubscriberCount(); n != 0 {
		t.Fatalf("SubscriberCount() = %d, want 0", n)
	}
	bus.Subscribe("s1", func(notify.Notification) {})
	bus.Subscribe("s2", func(notify.Notification) {})
	if n := bus.SubscriberCount(); n != 2 {
		t.Fatalf("SubscriberCount() = %d, want 2", n)
	}
	bus.Unsubscribe("s1")
	if n := bus.SubscriberCount(); n != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", n)
	}
}

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := notify.NewBus()
	var order []string
	bus.Subscribe("a", func(notify.Notification) { order = append(order, "a") })
	bus.Subscribe("b", func(notify.Notification) { order = append(order, "b") })
	bus.Subscribe("c", func(notify.Notification) { order = append(order, "c") })

	bus.Publish(notify.ConfigurationLoaded{})

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestBusReentrantPublishDoesNotDeadlockOrCorrupt(t *testing.T) {
	bus := notify.NewBus()
	var inner notify.Notification
	bus.Subscribe("outer", func(n notify.Notification) {
		if _, ok := n.(notify.ZoneMute); ok {
			bus.Publish(notify.ZoneName{Zone: 1, Name: "reentrant"})
		}
	})
	bus.Subscribe("inner-observer", func(n notify.Notification) {
		if zn, ok := n.(notify.ZoneName); ok {
			inner = zn
		}
	})

	bus.Publish(notify.ZoneMute{Zone: 1, Mute: true})

	zn, ok := inner.(notify.ZoneName)
	if !ok || zn.Name != "reentrant" {
		t.Fatalf("inner = %+v, want ZoneName{Name: reentrant}", inner)
	}
}

func TestBusGroupSourceMixedCarriesNilSource(t *testing.T) {
	bus := notify.NewBus()
	var got notify.GroupSource
	bus.Subscribe("s", func(n notify.Notification) {
		if gs, ok := n.(notify.GroupSource); ok {
			got = gs
		}
	})
	bus.Publish(notify.GroupSource{Group: model.Identifier(4), Source: nil})
	if got.Source != nil {
		t.Fatalf("got.Source = %v, want nil", got.Source)
	}
}

func TestBusRefreshedIsLastOfBatch(t *testing.T) {
	bus := notify.NewBus()
	var order []string
	bus.Subscribe("s", func(n notify.Notification) {
		switch n.(type) {
		case notify.RefreshProgress:
			order = append(order, "progress")
		case notify.GroupVolume:
			order = append(order, "group")
		case notify.Refreshed:
			order = append(order, "refreshed")
		}
	})

	bus.Publish(notify.RefreshProgress{Percent: 50})
	bus.Publish(notify.RefreshProgress{Percent: 100})
	bus.Publish(notify.GroupVolume{Group: 1, Level: -10})
	bus.Publish(notify.Refreshed{})

	if len(order) != 4 || order[3] != "refreshed" {
		t.Fatalf("order = %v, want group-derived notifications before a trailing refreshed", order)
	}
}
