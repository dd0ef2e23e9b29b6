package rainbird

import (
	"github.com/arloliu/go-rainbird/sip"
)

// GetModelAndVersion returns the controller model id and protocol revision.
func (c *Client) GetModelAndVersion() (*sip.Response, error) {
	return c.Do(sip.ModelAndVersionRequest)
}

// GetFirmwareVersion returns the controller firmware version.
func (c *Client) GetFirmwareVersion() (*sip.Response, error) {
	return c.Do(sip.ControllerFirmwareVersionRequest)
}

// GetSerialNumber returns the controller serial number.
func (c *Client) GetSerialNumber() (*sip.Response, error) {
	return c.Do(sip.SerialNumberRequest)
}

// GetTime returns the controller clock.
func (c *Client) GetTime() (*sip.Response, error) {
	return c.Do(sip.CurrentTimeRequest)
}

// SetTime sets the controller clock.
func (c *Client) SetTime(hour, minute, second uint8) (*sip.Response, error) {
	return c.Do(sip.SetCurrentTimeRequest,
		sip.Hex(uint64(hour), 2), sip.Hex(uint64(minute), 2), sip.Hex(uint64(second), 2))
}

// GetDate returns the controller date.
func (c *Client) GetDate() (*sip.Response, error) {
	return c.Do(sip.CurrentDateRequest)
}

// SetDate sets the controller date. The month takes a single hex digit and the year three.
func (c *Client) SetDate(day, month uint8, year uint16) (*sip.Response, error) {
	return c.Do(sip.SetCurrentDateRequest,
		sip.Hex(uint64(day), 2), sip.Hex(uint64(month), 1), sip.Hex(uint64(year), 3))
}

// GetRainSensorState reports whether the rain sensor is tripped.
func (c *Client) GetRainSensorState() (*sip.Response, error) {
	return c.Do(sip.CurrentRainSensorStateRequest)
}

// GetRainDelay returns the current rain delay in days.
func (c *Client) GetRainDelay() (*sip.Response, error) {
	return c.Do(sip.RainDelayGetRequest)
}

// SetRainDelay sets the rain delay in days. The business range of the delay is left to the
// caller, the controller accepts any 16-bit value.
func (c *Client) SetRainDelay(days uint16) (*sip.Response, error) {
	return c.Do(sip.RainDelaySetRequest, sip.Hex(uint64(days), 4))
}

// GetAvailableZones returns the zones wired to the controller, see sip.FieldAvailableZones.
func (c *Client) GetAvailableZones() (*sip.Response, error) {
	return c.Do(sip.AvailableStationsRequest, sip.Hex(0, 2))
}

// GetActiveZones returns the zones currently watering, see sip.FieldActiveZones.
func (c *Client) GetActiveZones() (*sip.Response, error) {
	return c.Do(sip.CurrentStationsActiveRequest, sip.Hex(0, 2))
}

// GetWaterBudget returns the seasonal adjustment of a program.
func (c *Client) GetWaterBudget(program uint8) (*sip.Response, error) {
	return c.Do(sip.WaterBudgetRequest, sip.Hex(uint64(program), 2))
}

// GetSeasonalAdjust returns the per-zone seasonal adjust factors of a program.
func (c *Client) GetSeasonalAdjust(program uint8) (*sip.Response, error) {
	return c.Do(sip.ZonesSeasonalAdjustFactorRequest, sip.Hex(uint64(program), 2))
}

// GetIrrigationState reports whether irrigation is enabled.
func (c *Client) GetIrrigationState() (*sip.Response, error) {
	return c.Do(sip.CurrentIrrigationStateRequest)
}

// GetCombinedControllerState returns clock, date, rain delay, sensor and irrigation state in a
// single response.
func (c *Client) GetCombinedControllerState() (*sip.Response, error) {
	return c.Do(sip.CombinedControllerStateRequest)
}

// GetEventTimestamp returns the timestamp of a controller event.
func (c *Client) GetEventTimestamp(eventID uint8) (*sip.Response, error) {
	return c.Do(sip.ControllerEventTimestampRequest, sip.Hex(uint64(eventID), 2))
}

// CheckCommandSupport asks the controller whether it implements the command with the given
// opcode, see sip.FieldSupported.
func (c *Client) CheckCommandSupport(opcode byte) (*sip.Response, error) {
	return c.Do(sip.CommandSupportRequest, sip.Hex(uint64(opcode), 2))
}

// StopIrrigation stops all watering.
func (c *Client) StopIrrigation() (*sip.Response, error) {
	return c.Do(sip.StopIrrigationRequest)
}

// StartZone waters a single zone for the given number of minutes.
func (c *Client) StartZone(zone uint16, minutes uint8) (*sip.Response, error) {
	return c.Do(sip.ManuallyRunStationRequest, sip.Hex(uint64(zone), 4), sip.Hex(uint64(minutes), 2))
}

// StartAllZones waters every zone in turn for the given number of minutes.
func (c *Client) StartAllZones(minutes uint8) (*sip.Response, error) {
	return c.Do(sip.TestStationsRequest, sip.Hex(uint64(minutes), 2))
}

// StartProgram runs a program manually.
func (c *Client) StartProgram(program uint8) (*sip.Response, error) {
	return c.Do(sip.ManuallyRunProgramRequest, sip.Hex(uint64(program), 2))
}

// AdvanceZone skips to the next zone of the running program.
func (c *Client) AdvanceZone(zone uint8) (*sip.Response, error) {
	return c.Do(sip.AdvanceStationRequest, sip.Hex(uint64(zone), 2))
}
