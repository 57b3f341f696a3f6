package light

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

// DefaultFullScaleMv is the supply of a typical photoresistor divider.
const DefaultFullScaleMv = 3300

// sampleRate only matters for continuous reads; single reads wait for one
// conversion at the nearest supported data rate.
const sampleRate = 8 * physic.Hertz

var adsChannels = []ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// adcPin is the part of an ADC pin the sensor uses.
type adcPin interface {
	Read() (analog.Sample, error)
	Halt() error
}

// ADS1x15 reads a photoresistor divider through an ADS1015 or ADS1115 ADC
// on I2C.
type ADS1x15 struct {
	pin       adcPin
	bus       i2c.BusCloser
	fullScale physic.ElectricPotential
}

// NewADS1x15 opens the I2C bus and configures one single ended channel.
func NewADS1x15(cfg Config) (*ADS1x15, error) {
	if cfg.Model != "" && cfg.Model != "ads1115" && cfg.Model != "ads1015" {
		return nil, fmt.Errorf("unknown ADC model %q", cfg.Model)
	}
	channel, err := adsChannel(cfg.Channel)
	if err != nil {
		return nil, err
	}
	fullScale := fullScaleOf(cfg.FullScaleMv)

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.Bus, err)
	}

	opts := ads1x15.DefaultOpts
	if cfg.Address != 0 {
		opts.I2cAddress = cfg.Address
	}

	var adc *ads1x15.Dev
	if cfg.Model == "ads1015" {
		adc, err = ads1x15.NewADS1015(bus, &opts)
	} else {
		adc, err = ads1x15.NewADS1115(bus, &opts)
	}
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("open ADC: %w", err)
	}

	pin, err := adc.PinForChannel(channel, fullScale, sampleRate, ads1x15.SaveEnergy)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("configure ADC channel %d: %w", cfg.Channel, err)
	}

	return &ADS1x15{pin: pin, bus: bus, fullScale: fullScale}, nil
}

// Level implements Sensor.Level.
func (s *ADS1x15) Level() (int, error) {
	sample, err := s.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("read ADC: %w", err)
	}
	return scaleVoltage(sample.V, s.fullScale), nil
}

// Close halts the channel and releases the bus.
func (s *ADS1x15) Close() error {
	var errs []error
	if err := s.pin.Halt(); err != nil {
		errs = append(errs, err)
	}
	if s.bus != nil {
		if err := s.bus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func adsChannel(n int) (ads1x15.Channel, error) {
	if n < 0 || n >= len(adsChannels) {
		return 0, fmt.Errorf("ADC channel %d out of range 0..%d", n, len(adsChannels)-1)
	}
	return adsChannels[n], nil
}

func fullScaleOf(mv int) physic.ElectricPotential {
	if mv <= 0 {
		mv = DefaultFullScaleMv
	}
	return physic.ElectricPotential(mv) * physic.MilliVolt
}

// scaleVoltage maps 0..fullScale onto 0..MaxLevel.
func scaleVoltage(v, fullScale physic.ElectricPotential) int {
	return clamp(int(v * MaxLevel / fullScale))
}
