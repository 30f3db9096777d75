package watch

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	a, cancelA := hub.Subscribe("records")
	defer cancelA()
	b, cancelB := hub.Subscribe("records")
	defer cancelB()
	other, cancelOther := hub.Subscribe("diary")
	defer cancelOther()

	hub.Publish("records")

	select {
	case <-a:
	default:
		t.Fatalf("subscriber a missed the signal")
	}
	select {
	case <-b:
	default:
		t.Fatalf("subscriber b missed the signal")
	}
	select {
	case <-other:
		t.Fatalf("diary subscriber must not receive records signals")
	default:
	}
}

func TestSlowSubscriberCoalescesSignals(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("records")
	defer cancel()

	// Three bursts while the subscriber is busy collapse into one pending
	// signal; the next read gets the freshest snapshot anyway.
	hub.Publish("records")
	hub.Publish("records")
	hub.Publish("records")

	select {
	case <-ch:
	default:
		t.Fatalf("expected one pending signal")
	}
	select {
	case <-ch:
		t.Fatalf("bursts must coalesce into a single signal")
	default:
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("records")
	cancel()

	hub.Publish("records")

	select {
	case <-ch:
		t.Fatalf("cancelled subscriber must not receive signals")
	default:
	}
}

func TestNotifyFuncPublishes(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("logbook")
	defer cancel()

	notify := hub.NotifyFunc("logbook")
	notify()

	select {
	case <-ch:
	default:
		t.Fatalf("NotifyFunc must publish to the collection")
	}
}
