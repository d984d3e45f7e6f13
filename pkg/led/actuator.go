// Package led drives the robot's RGB indicator from emotion state.
//
// The package separates the raw pin-level actuator from the emotion-aware
// gateway. Consumers depend on the small Actuator interface; whether the
// writes reach real GPIO pins or a log line is decided once at startup.
package led

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Actuator is the minimal capability the gateway needs from hardware.
type Actuator interface {
	// SetRGB drives the indicator to the given color.
	SetRGB(r, g, b uint8) error
}

// Pins holds the BCM pin numbers for the RGB channels.
type Pins struct {
	Red   int
	Green int
	Blue  int
}

// DefaultPins matches the robot's wiring harness.
var DefaultPins = Pins{Red: 18, Green: 23, Blue: 24}

// DetectRaspberryPi probes whether the process is running on a Pi.
// Any read failure means no: the caller falls back to simulation.
func DetectRaspberryPi() bool {
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return false
	}
	return isRaspberryPi(string(data))
}

// isRaspberryPi matches the model line Pi kernels put in cpuinfo.
func isRaspberryPi(cpuinfo string) bool {
	return strings.Contains(cpuinfo, "Raspberry Pi")
}

// GPIO implements Actuator against the sysfs GPIO interface.
// Channels are digital: any nonzero component drives its pin high.
type GPIO struct {
	pins    Pins
	baseDir string
}

// NewGPIO creates a sysfs-backed actuator and exports the three pins.
func NewGPIO(pins Pins) (*GPIO, error) {
	g := &GPIO{pins: pins, baseDir: "/sys/class/gpio"}
	for _, pin := range []int{pins.Red, pins.Green, pins.Blue} {
		if err := g.exportPin(pin); err != nil {
			return nil, fmt.Errorf("export pin %d: %w", pin, err)
		}
	}
	return g, nil
}

// SetRGB drives the three channel pins.
func (g *GPIO) SetRGB(r, gr, b uint8) error {
	if err := g.writePin(g.pins.Red, r > 0); err != nil {
		return err
	}
	if err := g.writePin(g.pins.Green, gr > 0); err != nil {
		return err
	}
	return g.writePin(g.pins.Blue, b > 0)
}

func (g *GPIO) exportPin(pin int) error {
	dir := fmt.Sprintf("%s/gpio%d", g.baseDir, pin)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.WriteFile(g.baseDir+"/export", []byte(strconv.Itoa(pin)), 0o644); err != nil {
			return err
		}
	}
	return os.WriteFile(dir+"/direction", []byte("out"), 0o644)
}

func (g *GPIO) writePin(pin int, high bool) error {
	value := "0"
	if high {
		value = "1"
	}
	path := fmt.Sprintf("%s/gpio%d/value", g.baseDir, pin)
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write pin %d: %w", pin, err)
	}
	return nil
}

// Simulated implements Actuator by logging writes.
// It is used whenever no real hardware is detected, so the rest of the
// system behaves identically on a laptop and on the robot.
type Simulated struct {
	logger *slog.Logger
}

// NewSimulated creates a logging actuator.
func NewSimulated(logger *slog.Logger) *Simulated {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulated{logger: logger.With("component", "led.simulated")}
}

// SetRGB logs the requested color.
func (s *Simulated) SetRGB(r, g, b uint8) error {
	s.logger.Debug("led color", "r", r, "g", g, "b", b)
	return nil
}

// Verify implementations at compile time.
var (
	_ Actuator = (*GPIO)(nil)
	_ Actuator = (*Simulated)(nil)
)
