package sip

import (
	"math/bits"
	"strconv"
)

// Names of fields derived by decode transforms.
const (
	FieldAck            = "ack"
	FieldNAKCode        = "nakCode"
	FieldSupported      = "supported"
	FieldActiveZones    = "activeZones"
	FieldActiveZone     = "activeZone"
	FieldAvailableZones = "availableZones"
	FieldZoneCount      = "zoneCount"
	FieldData           = "data"
)

// transform derives typed values from the raw fields of a response of the given kind.
// raw must only contain valid hex strings.
func transform(kind ResponseType, raw map[string]string, out map[string]any) {
	switch kind {
	case NotAcknowledgeResponse:
		out[FieldAck] = false
		out[FieldNAKCode] = hexUint(raw["NAKCode"])

	case AcknowledgeResponse:
		out[FieldAck] = true

	case ModelAndVersionResponse:
		toUint(raw, out, "protocolRevisionMajor", "protocolRevisionMinor")

	case AvailableStationsResponse:
		toUint(raw, out, "pageNumber")
		zones := bitmaskZones(raw["setStations"])
		out[FieldAvailableZones] = zones
		out[FieldZoneCount] = len(zones)

	case CommandSupportResponse:
		out[FieldSupported] = hexUint(raw["support"]) != 0

	case ControllerFirmwareVersionResponse:
		toUint(raw, out, "major", "minor", "patch")

	case CurrentTimeResponse:
		toUint(raw, out, "hour", "minute", "second")

	case CurrentDateResponse:
		toUint(raw, out, "day", "month", "year")

	case WaterBudgetResponse:
		toUint(raw, out, "programCode", "seasonalAdjust")

	case ZonesSeasonalAdjustFactorResponse:
		toUint(raw, out, "programCode")

	case RainDelaySettingResponse:
		toUint(raw, out, "delaySetting")

	case CurrentRainSensorStateResponse:
		toBool(raw, out, "sensorState")

	case CurrentStationsActiveResponse:
		toUint(raw, out, "pageNumber")
		zones := bitmaskZones(raw["activeStations"])
		out[FieldActiveZones] = zones
		if len(zones) > 0 {
			out[FieldActiveZone] = zones[0]
		} else {
			out[FieldActiveZone] = 0
		}

	case CurrentIrrigationStateResponse:
		toBool(raw, out, "irrigationState")

	case ControllerEventTimestampResponse:
		toUint(raw, out, "eventId", "timestamp")

	case CombinedControllerStateResponse:
		toUint(raw, out, "hour", "minute", "second", "day", "month", "year",
			"delaySetting", "seasonalAdjust", "remainingRuntime", "activeStation")
		toBool(raw, out, "sensorState", "irrigationState")
	}
}

func toUint(raw map[string]string, out map[string]any, names ...string) {
	for _, name := range names {
		if v, ok := raw[name]; ok {
			out[name] = hexUint(v)
		}
	}
}

func toBool(raw map[string]string, out map[string]any, names ...string) {
	for _, name := range names {
		if v, ok := raw[name]; ok {
			out[name] = hexUint(v) != 0
		}
	}
}

// bitmaskZones returns the 1-based zone numbers set in a hex station bitmask.
// Each byte covers eight zones, the least significant bit of byte i is zone 8*i+1.
func bitmaskZones(mask string) []int {
	zones := []int{}
	for i := 0; i+2 <= len(mask); i += 2 {
		b := uint8(hexUint(mask[i : i+2])) //nolint:gosec
		for b != 0 {
			bit := bits.TrailingZeros8(b)
			zones = append(zones, i/2*8+bit+1)
			b &^= 1 << bit
		}
	}

	return zones
}

func parseHex(s string) (uint64, error) {
	return strconv.ParseUint(s, 16, 64)
}

func hexUint(s string) uint64 {
	n, _ := parseHex(s)
	return n
}
