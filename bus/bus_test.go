package bus

import (
	"context"
	"sort"
	"testing"
	"time"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("svc")

	sub := conn.Subscribe(Topic{"config", "pins"})

	conn.Publish(conn.NewMessage(Topic{"config", "pins"}, "LED1=OUT", false))

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "LED1=OUT" {
			t.Errorf("expected payload 'LED1=OUT', got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
}

func TestRetainedStateSurvivesSubscribe(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("svc")

	// state published before anyone is listening
	conn.Publish(conn.NewMessage(Topic{"pinctl", "state"}, "ready", true))

	sub := conn.Subscribe(Topic{"pinctl", "state"})

	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != "ready" {
			t.Errorf("expected retained payload 'ready', got %v", got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for retained message")
	}
}

// -----------------------------------------------------------------------------
// Wildcards
// -----------------------------------------------------------------------------

func TestWildcard_SingleToken(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("mon")

	anyPinState := c.Subscribe(Topic{"pinctl", "+", "state"})
	anyAny := c.Subscribe(Topic{"pinctl", "+", "+"})
	ledAny := c.Subscribe(Topic{"pinctl", "LED1", "+"})
	wrongLeaf := c.Subscribe(Topic{"pinctl", "+", "level"})

	c.Publish(b.NewMessage(Topic{"pinctl", "LED1", "state"}, "high", false))

	wantPayload(t, anyPinState, "high")
	wantPayload(t, anyAny, "high")
	wantPayload(t, ledAny, "high")
	wantSilence(t, wrongLeaf)

	c.Publish(b.NewMessage(Topic{"pinctl", "SW3", "config"}, "pull_up", false))

	wantPayload(t, anyAny, "pull_up")
	wantSilence(t, anyPinState)
	wantSilence(t, ledAny)
	wantSilence(t, wrongLeaf)

	// + never spans a missing token
	c.Publish(b.NewMessage(Topic{"pinctl", "state"}, "ready", false))
	wantSilence(t, anyPinState)
	wantSilence(t, anyAny)
	wantSilence(t, ledAny)
	wantSilence(t, wrongLeaf)
}

func TestWildcard_MultiToken(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("mon")

	svcTree := c.Subscribe(Topic{"pinctl", "#"})
	everything := c.Subscribe(Topic{"#"})
	pinTree := c.Subscribe(Topic{"pinctl", "pin", "#"})
	svcRoot := c.Subscribe(Topic{"pinctl"})

	c.Publish(b.NewMessage(Topic{"pinctl"}, "up", false))
	wantPayload(t, svcTree, "up")
	wantPayload(t, everything, "up")
	wantPayload(t, svcRoot, "up")
	wantSilence(t, pinTree)

	c.Publish(b.NewMessage(Topic{"pinctl", "pin"}, "list", false))
	wantPayload(t, svcTree, "list")
	wantPayload(t, everything, "list")
	wantPayload(t, pinTree, "list")
	wantSilence(t, svcRoot)

	c.Publish(b.NewMessage(Topic{"pinctl", "pin", "LED1"}, "out", false))
	wantPayload(t, svcTree, "out")
	wantPayload(t, everything, "out")
	wantPayload(t, pinTree, "out")
	wantSilence(t, svcRoot)
}

func TestWildcard_RetainedFanOut(t *testing.T) {
	b := NewBus(32)
	c := b.NewConnection("mon")

	c.Publish(b.NewMessage(Topic{"pinctl"}, "up", true))
	c.Publish(b.NewMessage(Topic{"pinctl", "state"}, "ready", true))
	c.Publish(b.NewMessage(Topic{"pinctl", "state", "detail"}, "ok", true))
	c.Publish(b.NewMessage(Topic{"pinctl", "debug"}, "off", true))

	tree := c.Subscribe(Topic{"pinctl", "#"})
	assertSameSet(t, collect(t, tree, 4), []string{"up", "ready", "ok", "off"})

	below := c.Subscribe(Topic{"pinctl", "+", "#"})
	assertSameSet(t, collect(t, below, 3), []string{"ready", "ok", "off"})

	oneDeep := c.Subscribe(Topic{"pinctl", "+"})
	assertSameSet(t, collect(t, oneDeep, 2), []string{"ready", "off"})
}

func TestRetainedClearDropsState(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("svc")

	c.Publish(b.NewMessage(Topic{"pinctl", "pin", "LED1", "state"}, "high", true))
	c.Publish(b.NewMessage(Topic{"pinctl", "pin", "SW3", "state"}, "low", true))

	// nil payload wipes the retained entry for LED1
	c.Publish(b.NewMessage(Topic{"pinctl", "pin", "LED1", "state"}, nil, true))

	s := c.Subscribe(Topic{"pinctl", "pin", "#"})
	got := collect(t, s, 1)

	if len(got) != 1 || got[0] != "low" {
		t.Fatalf("expected only 'low' after clear, got %v", got)
	}
}

func TestWildcard_NoCrossTokenMatch(t *testing.T) {
	b := NewBus(8)
	c := b.NewConnection("mon")

	s := c.Subscribe(Topic{"pinctl", "+", "state"})

	c.Publish(b.NewMessage(Topic{"pinctl", "state"}, "x", false))
	wantSilence(t, s)

	c.Publish(b.NewMessage(Topic{"pinctl", "LED1", "level"}, "y", false))
	wantSilence(t, s)
}

// -----------------------------------------------------------------------------
// Request-reply
// -----------------------------------------------------------------------------

func TestRequestWaitRoundTrip(t *testing.T) {
	b := NewBus(8)
	client := b.NewConnection("cli")
	svc := b.NewConnection("pinctl")

	ctrl := Topic{"pinctl", "pin", "LED1", "control", "get"}
	ctrlSub := svc.Subscribe(ctrl)
	defer svc.Unsubscribe(ctrlSub)

	go func() {
		if msg, ok := <-ctrlSub.Channel(); ok {
			svc.Reply(msg, "high", false)
		}
	}()

	req := b.NewMessage(ctrl, nil, false)
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	reply, err := client.RequestWait(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error waiting for reply: %v", err)
	}
	if got, ok := reply.Payload.(string); !ok || got != "high" {
		t.Fatalf("unexpected reply payload: %#v", reply.Payload)
	}
	if len(req.ReplyTo) == 0 {
		t.Fatal("request lacks ReplyTo after RequestWait")
	}
	if !sameTopic(reply.Topic, req.ReplyTo) {
		t.Fatalf("reply topic %v != request ReplyTo %v", reply.Topic, req.ReplyTo)
	}
}

func TestRequestWaitTimeout(t *testing.T) {
	b := NewBus(8)
	client := b.NewConnection("cli")

	// nobody serves this verb
	req := b.NewMessage(Topic{"pinctl", "pin", "LED1", "control", "set"}, nil, false)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.RequestWait(ctx, req)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

func TestRequestManualReplySubscription(t *testing.T) {
	b := NewBus(8)
	client := b.NewConnection("cli")
	svc := b.NewConnection("pinctl")

	ctrl := Topic{"pinctl", "control", "names"}
	ctrlSub := svc.Subscribe(ctrl)
	defer svc.Unsubscribe(ctrlSub)

	req := b.NewMessage(ctrl, nil, false)
	replySub := client.Request(req)
	defer client.Unsubscribe(replySub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if msg, ok := <-ctrlSub.Channel(); ok {
			svc.Reply(msg, map[string]any{"count": 3}, false)
		}
	}()

	select {
	case got := <-replySub.Channel():
		m, ok := got.Payload.(map[string]any)
		if !ok {
			t.Fatalf("unexpected reply type: %#v", got.Payload)
		}
		if m["count"] != 3 {
			t.Fatalf("unexpected reply content: %#v", m)
		}
	case <-time.After(300 * time.Millisecond):
		t.Fatal("timeout waiting for manual reply")
	}

	<-done
}

func TestTopicBuilderPanicsOnBadToken(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for unrenderable token, got none")
		}
	}()

	// []byte has no stable token rendering
	_ = T("pinctl", []byte{1, 2, 3})
}

// -----------------------------------------------------------------------------
// helpers
// -----------------------------------------------------------------------------

func sameTopic(a, b Topic) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func wantPayload(t *testing.T, sub *Subscription, want string) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		s, ok := got.Payload.(string)
		if !ok || s != want {
			t.Fatalf("unexpected payload: %v (want %q)", got.Payload, want)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func wantSilence(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		t.Fatalf("unexpected message: %#v", got)
	case <-time.After(60 * time.Millisecond):
	}
}

func collect(t *testing.T, sub *Subscription, n int) []string {
	t.Helper()
	var out []string
	deadline := time.Now().Add(300 * time.Millisecond)
	for len(out) < n && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			s, ok := m.Payload.(string)
			if !ok {
				t.Fatalf("non-string payload: %#v", m.Payload)
			}
			out = append(out, s)
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(out) != n {
		t.Fatalf("collect: expected %d messages, got %d (%v)", n, len(out), out)
	}
	return out
}

func assertSameSet(t *testing.T, got, want []string) {
	t.Helper()
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("mismatch at %d: got %q, want %q (got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}
