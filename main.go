package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"pinctl-go/boards/lpc54628evk"
	"pinctl-go/bus"
	"pinctl-go/periph"
	"pinctl-go/platform"
	"pinctl-go/services/config"
	"pinctl-go/services/pinctl"
)

// Host demo: wire the pin service to the default backend, publish the
// embedded board configuration and print the retained state that results.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = context.WithValue(ctx, config.CtxBoardKey, "lpc54628evk")

	b := bus.NewBus(64)
	hw := platform.Default()

	periphs := periph.NewRegistry()
	for _, fc := range []string{"FLEXCOMM2", "FLEXCOMM3", "FLEXCOMM4"} {
		periphs.RegisterI2C(fc, &periph.SimI2C{})
	}

	go pinctl.Run(ctx, b.NewConnection("pinctl"), hw, lpc54628evk.NewResolver(), periphs)

	mon := b.NewConnection("monitor")
	stateSub := mon.Subscribe(bus.Topic{"pinctl", "state"})
	pinSub := mon.Subscribe(bus.Topic{"pinctl", "pin", "+", "state"})
	defer mon.Disconnect()

	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	idle := time.NewTimer(2 * time.Second)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			println("shutdown")
			return
		case msg := <-stateSub.Channel():
			if m, ok := msg.Payload.(map[string]any); ok {
				println("state:", m["level"].(string), m["status"].(string))
			}
		case msg := <-pinSub.Channel():
			if m, ok := msg.Payload.(map[string]any); ok {
				println("pin", msg.Topic[2]+":", m["desc"].(string))
			}
			idle.Reset(500 * time.Millisecond)
		case <-idle.C:
			println("done")
			return
		}
	}
}
