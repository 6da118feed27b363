// Package bus is a small in-process pub/sub fabric with retained messages.
// Topics are token paths; subscription patterns may use "+" to match any
// single token and a trailing "#" to match any remainder.
package bus

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Topic is a sequence of path tokens, e.g. Topic{"pinctl", "pin", "LED1", "state"}.
type Topic []string

func (t Topic) String() string { return strings.Join(t, "/") }

func (t Topic) key() string { return t.String() }

// T builds a Topic from loosely typed tokens. It panics on token types that
// cannot be rendered as a stable string, which catches topics accidentally
// built from raw payload values.
func T(parts ...any) Topic {
	out := make(Topic, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			out = append(out, v)
		case fmt.Stringer:
			out = append(out, v.String())
		case int:
			out = append(out, strconv.Itoa(v))
		case uint8:
			out = append(out, strconv.FormatUint(uint64(v), 10))
		case uint16:
			out = append(out, strconv.FormatUint(uint64(v), 10))
		case uint32:
			out = append(out, strconv.FormatUint(uint64(v), 10))
		case bool:
			out = append(out, strconv.FormatBool(v))
		default:
			panic(fmt.Sprintf("bus: unsupported topic token %T", p))
		}
	}
	return out
}

// match reports whether a concrete topic matches a pattern. "+" in a
// pattern matches exactly one token; a trailing "#" matches any remainder,
// including none.
func match(pattern, topic Topic) bool {
	for i, p := range pattern {
		if p == "#" && i == len(pattern)-1 {
			return true
		}
		if i >= len(topic) {
			return false
		}
		if p != "+" && p != topic[i] {
			return false
		}
	}
	return len(pattern) == len(topic)
}

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	ReplyTo  Topic
}

type Subscription struct {
	pattern Topic
	ch      chan *Message
	conn    *Connection
}

func (s *Subscription) Pattern() Topic           { return s.pattern }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

type Bus struct {
	mu       sync.RWMutex
	subs     []*Subscription
	retained map[string]*Message
	qLen     int
}

// NewBus creates a bus with the given per-subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{retained: make(map[string]*Message), qLen: queueLen}
}

// Publish delivers a message to every matching subscriber. A full queue
// drops the oldest entry rather than blocking the publisher. Retained
// messages replace (or, with a nil payload, clear) the stored document for
// their topic.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if !match(sub.pattern, msg.Topic) {
			continue
		}
		deliver(sub.ch, msg)
	}

	if msg.Retained {
		if msg.Payload == nil {
			delete(b.retained, msg.Topic.key())
		} else {
			b.retained[msg.Topic.key()] = msg
		}
	}
}

func deliver(ch chan *Message, msg *Message) {
	select {
	case ch <- msg:
	default:
		// drop oldest if queue full
		select {
		case <-ch:
		default:
		}
		ch <- msg
	}
}

func (b *Bus) addSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)
	for _, m := range b.retained {
		if match(sub.pattern, m.Topic) {
			deliver(sub.ch, m)
		}
	}
}

func (b *Bus) removeSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Connection is one client's attachment to the bus; it owns its
// subscriptions and tears them down on Disconnect.
type Connection struct {
	bus  *Bus
	mu   sync.Mutex
	subs []*Subscription
	id   string
}

func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

var replySeq atomic.Uint64

// Request stamps the message with a fresh ReplyTo topic, subscribes to it
// and publishes the request. The caller owns the returned subscription.
func (c *Connection) Request(req *Message) *Subscription {
	n := replySeq.Add(1)
	req.ReplyTo = Topic{"$reply", c.id, strconv.FormatUint(n, 10)}
	sub := c.Subscribe(req.ReplyTo)
	c.bus.Publish(req)
	return sub
}

// RequestWait issues a request and blocks for a single reply or context
// expiry. The reply subscription is torn down before returning.
func (c *Connection) RequestWait(ctx context.Context, req *Message) (*Message, error) {
	sub := c.Request(req)
	defer c.Unsubscribe(sub)
	select {
	case msg, ok := <-sub.Channel():
		if !ok {
			return nil, context.Canceled
		}
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Reply publishes a response on the request's ReplyTo topic, if any.
func (c *Connection) Reply(req *Message, payload any, retained bool) {
	if len(req.ReplyTo) == 0 {
		return
	}
	c.bus.Publish(&Message{Topic: req.ReplyTo, Payload: payload, Retained: retained})
}

func (c *Connection) Subscribe(pattern Topic) *Subscription {
	sub := &Subscription{
		pattern: pattern,
		ch:      make(chan *Message, c.bus.qLen),
		conn:    c,
	}
	c.bus.addSubscription(sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.removeSubscription(sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes all subscriptions and clears them.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.removeSubscription(sub)
		close(sub.ch)
	}
}
