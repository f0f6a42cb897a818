package main

import (
	"log"

	"github.com/stianeikeland/go-rpio"
)

type rpioPin struct {
	pin   int
	state bool
}

func (rp *rpioPin) initialize() error {
	if err := rpio.Open(); err != nil {
		return err
	}
	pin := rpio.Pin(rp.pin)
	pin.Output()
	pin.Low()
	rp.state = false
	return nil
}

func (rp *rpioPin) setActive(on bool) error {
	log.Printf("Set pin %v to %v", rp.pin, on)
	pin := rpio.Pin(rp.pin)
	if on {
		pin.High()
	} else {
		pin.Low()
	}
	rp.state = on
	return nil
}

func (rp *rpioPin) lastState() bool {
	return rp.state
}

func (rp *rpioPin) teardown() {
	// leave the pin inactive on the way out
	rpio.Pin(rp.pin).Low()
	rpio.Close()
}
