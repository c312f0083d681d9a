package board

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Button is a momentary input sampled by the presentation loop.
type Button interface {
	Active() bool
}

// GPIOButton is a push button wired between a pin and VCC.
type GPIOButton struct {
	pin gpio.PinIn
}

// NewGPIOButton configures pin as a pulled-down input.
func NewGPIOButton(pin gpio.PinIn) (*GPIOButton, error) {
	if err := pin.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure %s: %w", pin.Name(), err)
	}
	return &GPIOButton{pin: pin}, nil
}

// OpenGPIO initializes the host drivers and opens the named pins.
func OpenGPIO(names ...string) ([]*GPIOButton, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}
	buttons := make([]*GPIOButton, 0, len(names))
	for _, name := range names {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("unknown gpio pin %q", name)
		}
		b, err := NewGPIOButton(pin)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, b)
	}
	return buttons, nil
}

// Active reports whether the button is held.
func (b *GPIOButton) Active() bool {
	return b.pin.Read() == gpio.High
}

func (b *GPIOButton) String() string { return b.pin.Name() }
