// Package pinctl is the bus-facing binding layer over the pin engine: it
// accepts pin configuration documents, applies them through a resolver and a
// register backend, publishes retained per-pin state, and answers control
// verbs addressed to individual pins.
package pinctl

import (
	"context"
	"encoding/json"
	"time"

	"pinctl-go/bus"
	"pinctl-go/periph"
	"pinctl-go/pin"
	"pinctl-go/services/pinctl/config"
)

func Run(ctx context.Context, conn *bus.Connection, hw pin.Hardware, resolver *pin.Resolver, periphs *periph.Registry) {
	if periphs == nil {
		periphs = periph.NewRegistry()
	}
	s := &service{
		conn:     conn,
		hw:       hw,
		resolver: resolver,
		periphs:  periphs,
		pins:     map[string]*pin.Descriptor{},
	}
	s.loop(ctx)
}

type service struct {
	conn     *bus.Connection
	hw       pin.Hardware
	resolver *pin.Resolver
	periphs  *periph.Registry

	// configured pins by cpu name, mirroring the retained state documents
	pins map[string]*pin.Descriptor
}

func (s *service) loop(ctx context.Context) {
	cfgSub := s.conn.Subscribe(bus.Topic{"config", "pins"})
	pinCtrlSub := s.conn.Subscribe(bus.Topic{"pinctl", "pin", "+", "control", "+"})
	ctrlSub := s.conn.Subscribe(bus.Topic{"pinctl", "control", "+"})
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(pinCtrlSub)
	defer s.conn.Unsubscribe(ctrlSub)

	s.publishState("idle", "awaiting_config", nil)

	for {
		select {
		case <-ctx.Done():
			s.publishState("stopped", "context_cancelled", nil)
			return

		case msg := <-cfgSub.Channel():
			var cfg config.PinsConfig
			if err := decodeJSON(msg.Payload, &cfg); err != nil {
				s.publishState("error", "config_decode_failed", err)
				continue
			}
			if err := s.applyConfig(cfg); err != nil {
				s.publishState("error", "apply_config_failed", err)
				continue
			}
			s.publishState("ready", "configured", nil)

		case msg := <-pinCtrlSub.Channel():
			// pinctl/pin/<id>/control/<verb>
			if len(msg.Topic) < 5 {
				continue
			}
			s.handlePinControl(msg, msg.Topic[2], msg.Topic[4])

		case msg := <-ctrlSub.Channel():
			// pinctl/control/<verb>
			if len(msg.Topic) < 3 {
				continue
			}
			s.handleControl(msg, msg.Topic[2])
		}
	}
}

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

func (s *service) applyConfig(cfg config.PinsConfig) error {
	s.resolver.SetDebug(cfg.Debug)

	seen := map[string]struct{}{}
	var firstErr error

	for _, pc := range cfg.Pins {
		d, err := s.resolver.Resolve(pc.ID)
		if err == nil {
			var intent pin.Config
			if intent, err = pc.Intent(); err == nil {
				err = pin.Configure(s.hw, d, intent)
			}
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		seen[d.Name] = struct{}{}
		s.pins[d.Name] = d
		s.publishPinState(d)
	}

	// clear retained state for pins dropped from the document
	for name := range s.pins {
		if _, ok := seen[name]; ok {
			continue
		}
		s.pubRet(pinTopic(name, "state"), nil)
		delete(s.pins, name)
	}

	return firstErr
}

// -----------------------------------------------------------------------------
// Control verbs
// -----------------------------------------------------------------------------

func (s *service) handlePinControl(msg *bus.Message, id, verb string) {
	d, err := s.resolver.Resolve(id)
	if err != nil {
		s.replyErr(msg, err.Error())
		return
	}

	switch verb {
	case "describe":
		s.replyOK(msg, map[string]any{"desc": pin.Describe(s.hw, d)})

	case "af_list":
		afs := make([]map[string]any, 0, len(d.AFs))
		for _, a := range d.AFList() {
			e := map[string]any{"name": a.Name, "index": int(a.Index)}
			if a.Periph != "" {
				e["periph"] = a.Periph
			}
			afs = append(afs, e)
		}
		s.replyOK(msg, map[string]any{"afs": afs})

	case "names":
		s.replyOK(msg, map[string]any{"names": s.resolver.Names(d)})

	case "set":
		level := wantBool(msg.Payload, "level")
		s.hw.Write(d.Port, d.Pin, level)
		if _, configured := s.pins[d.Name]; configured {
			s.publishPinState(d)
		}
		s.replyOK(msg, map[string]any{"level": level})

	case "get":
		s.replyOK(msg, map[string]any{"level": s.hw.Read(d.Port, d.Pin)})

	case "claim_i2c":
		// default to the function the pin is currently muxed to
		af := pin.CurrentAF(s.hw, d)
		if n, ok := wantInt(msg.Payload, "af"); ok {
			af = uint8(n)
		}
		if _, err := s.periphs.ClaimPinI2C(d, af); err != nil {
			s.replyErr(msg, err.Error())
			return
		}
		a, _ := d.FindAF(af)
		s.replyOK(msg, map[string]any{"periph": a.Periph, "af": int(af)})

	default:
		s.replyErr(msg, "unknown control verb: "+verb)
	}
}

func (s *service) handleControl(msg *bus.Message, verb string) {
	switch verb {
	case "set_debug":
		on := wantBool(msg.Payload, "debug")
		s.resolver.SetDebug(on)
		s.replyOK(msg, map[string]any{"debug": on})
	case "get_debug":
		s.replyOK(msg, map[string]any{"debug": s.resolver.Debug()})
	default:
		s.replyErr(msg, "unknown control verb: "+verb)
	}
}

// -----------------------------------------------------------------------------
// State + helpers
// -----------------------------------------------------------------------------

func (s *service) publishState(level, status string, err error) {
	payload := map[string]any{"level": level, "status": status, "ts_ms": time.Now().UnixMilli()}
	if err != nil {
		payload["error"] = err.Error()
	}
	s.pubRet(bus.Topic{"pinctl", "state"}, payload)
}

func (s *service) publishPinState(d *pin.Descriptor) {
	s.pubRet(pinTopic(d.Name, "state"), map[string]any{
		"desc":  pin.Describe(s.hw, d),
		"level": s.hw.Read(d.Port, d.Pin),
		"names": s.resolver.Names(d),
		"ts_ms": time.Now().UnixMilli(),
	})
}

func pinTopic(name string, rest ...string) bus.Topic {
	base := bus.Topic{"pinctl", "pin", name}
	return append(base, rest...)
}

func (s *service) pubRet(t bus.Topic, p any) {
	s.conn.Publish(s.conn.NewMessage(t, p, true))
}

func (s *service) replyOK(req *bus.Message, extra map[string]any) {
	if len(req.ReplyTo) == 0 {
		return
	}
	m := map[string]any{"ok": true}
	for k, v := range extra {
		m[k] = v
	}
	s.conn.Reply(req, m, false)
}

func (s *service) replyErr(req *bus.Message, e string) {
	if len(req.ReplyTo) == 0 {
		return
	}
	s.conn.Reply(req, map[string]any{"ok": false, "error": e}, false)
}

func decodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}

// wantInt extracts an integer from either a map payload (by key) or a scalar.
func wantInt(src any, key string) (int, bool) {
	if m, ok := src.(map[string]any); ok {
		if v, ok := m[key]; ok {
			return wantInt(v, "")
		}
		return 0, false
	}
	switch v := src.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// wantBool extracts a boolean from either a map payload (by key) or a scalar.
func wantBool(src any, key string) bool {
	if m, ok := src.(map[string]any); ok {
		if v, ok := m[key]; ok {
			return wantBool(v, "")
		}
		return false
	}
	switch v := src.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch v {
		case "1", "on", "true", "yes":
			return true
		}
	}
	return false
}
