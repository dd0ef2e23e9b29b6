package sip

// Command names of the built-in registry.
const (
	ModelAndVersionRequest           = "ModelAndVersionRequest"
	AvailableStationsRequest         = "AvailableStationsRequest"
	CommandSupportRequest            = "CommandSupportRequest"
	SerialNumberRequest              = "SerialNumberRequest"
	ControllerFirmwareVersionRequest = "ControllerFirmwareVersionRequest"
	CurrentTimeRequest               = "CurrentTimeRequest"
	SetCurrentTimeRequest            = "SetCurrentTimeRequest"
	CurrentDateRequest               = "CurrentDateRequest"
	SetCurrentDateRequest            = "SetCurrentDateRequest"
	RetrieveScheduleRequest          = "RetrieveScheduleRequest"
	WaterBudgetRequest               = "WaterBudgetRequest"
	ZonesSeasonalAdjustFactorRequest = "ZonesSeasonalAdjustFactorRequest"
	RainDelayGetRequest              = "RainDelayGetRequest"
	RainDelaySetRequest              = "RainDelaySetRequest"
	ManuallyRunProgramRequest        = "ManuallyRunProgramRequest"
	ManuallyRunStationRequest        = "ManuallyRunStationRequest"
	TestStationsRequest              = "TestStationsRequest"
	CurrentQueueRequest              = "CurrentQueueRequest"
	CurrentRainSensorStateRequest    = "CurrentRainSensorStateRequest"
	CurrentStationsActiveRequest     = "CurrentStationsActiveRequest"
	StopIrrigationRequest            = "StopIrrigationRequest"
	AdvanceStationRequest            = "AdvanceStationRequest"
	CurrentIrrigationStateRequest    = "CurrentIrrigationStateRequest"
	CurrentControllerStateSet        = "CurrentControllerStateSet"
	ControllerEventTimestampRequest  = "ControllerEventTimestampRequest"
	StackManuallyRunStationRequest   = "StackManuallyRunStationRequest"
	CombinedControllerStateRequest   = "CombinedControllerStateRequest"
)

// ResponseType is the kind of a controller response.
type ResponseType string

// Response kinds of the built-in registry.
const (
	NotAcknowledgeResponse            ResponseType = "NotAcknowledgeResponse"
	AcknowledgeResponse               ResponseType = "AcknowledgeResponse"
	ModelAndVersionResponse           ResponseType = "ModelAndVersionResponse"
	AvailableStationsResponse         ResponseType = "AvailableStationsResponse"
	CommandSupportResponse            ResponseType = "CommandSupportResponse"
	SerialNumberResponse              ResponseType = "SerialNumberResponse"
	ControllerFirmwareVersionResponse ResponseType = "ControllerFirmwareVersionResponse"
	CurrentTimeResponse               ResponseType = "CurrentTimeResponse"
	CurrentDateResponse               ResponseType = "CurrentDateResponse"
	RetrieveScheduleResponse          ResponseType = "RetrieveScheduleResponse"
	WaterBudgetResponse               ResponseType = "WaterBudgetResponse"
	ZonesSeasonalAdjustFactorResponse ResponseType = "ZonesSeasonalAdjustFactorResponse"
	RainDelaySettingResponse          ResponseType = "RainDelaySettingResponse"
	CurrentQueueResponse              ResponseType = "CurrentQueueResponse"
	CurrentRainSensorStateResponse    ResponseType = "CurrentRainSensorStateResponse"
	CurrentStationsActiveResponse     ResponseType = "CurrentStationsActiveResponse"
	CurrentIrrigationStateResponse    ResponseType = "CurrentIrrigationStateResponse"
	ControllerEventTimestampResponse  ResponseType = "ControllerEventTimestampResponse"
	CombinedControllerStateResponse   ResponseType = "CombinedControllerStateResponse"
)

var defaultCommands = []CommandSpec{
	{Name: ModelAndVersionRequest, Opcode: 0x02, Response: 0x82, Length: 1},
	{Name: AvailableStationsRequest, Opcode: 0x03, Params: []int{2}, Response: 0x83, Length: 2},
	{Name: CommandSupportRequest, Opcode: 0x04, Params: []int{2}, Response: 0x84, Length: 2},
	{Name: SerialNumberRequest, Opcode: 0x05, Response: 0x85, Length: 1},
	{Name: ControllerFirmwareVersionRequest, Opcode: 0x0B, Response: 0x8B, Length: 1},
	{Name: CurrentTimeRequest, Opcode: 0x10, Response: 0x90, Length: 1},
	{Name: SetCurrentTimeRequest, Opcode: 0x11, Params: []int{2, 2, 2}, Response: 0x01, Length: 4},
	{Name: CurrentDateRequest, Opcode: 0x12, Response: 0x92, Length: 1},
	{Name: SetCurrentDateRequest, Opcode: 0x13, Params: []int{2, 1, 3}, Response: 0x01, Length: 4},
	{Name: RetrieveScheduleRequest, Opcode: 0x20, Params: []int{4}, Response: 0xA0, Length: 3},
	{Name: WaterBudgetRequest, Opcode: 0x30, Params: []int{2}, Response: 0xB0, Length: 2},
	{Name: ZonesSeasonalAdjustFactorRequest, Opcode: 0x32, Params: []int{2}, Response: 0xB2, Length: 2},
	{Name: RainDelayGetRequest, Opcode: 0x36, Response: 0xB6, Length: 1},
	{Name: RainDelaySetRequest, Opcode: 0x37, Params: []int{4}, Response: 0x01, Length: 3},
	{Name: ManuallyRunProgramRequest, Opcode: 0x38, Params: []int{2}, Response: 0x01, Length: 2},
	{Name: ManuallyRunStationRequest, Opcode: 0x39, Params: []int{4, 2}, Response: 0x01, Length: 4},
	{Name: TestStationsRequest, Opcode: 0x3A, Params: []int{2}, Response: 0x01, Length: 2},
	{Name: CurrentQueueRequest, Opcode: 0x3B, Params: []int{2}, Response: 0xBB, Length: 2},
	{Name: CurrentRainSensorStateRequest, Opcode: 0x3E, Response: 0xBE, Length: 1},
	{Name: CurrentStationsActiveRequest, Opcode: 0x3F, Params: []int{2}, Response: 0xBF, Length: 2},
	{Name: StopIrrigationRequest, Opcode: 0x40, Response: 0x01, Length: 1},
	{Name: AdvanceStationRequest, Opcode: 0x42, Params: []int{2}, Response: 0x01, Length: 2},
	{Name: CurrentIrrigationStateRequest, Opcode: 0x48, Response: 0xC8, Length: 1},
	{Name: CurrentControllerStateSet, Opcode: 0x49, Params: []int{2}, Response: 0x01, Length: 2},
	{Name: ControllerEventTimestampRequest, Opcode: 0x4A, Params: []int{2}, Response: 0xCA, Length: 2},
	{Name: StackManuallyRunStationRequest, Opcode: 0x4B, Params: []int{2, 2, 2}, Response: 0x01, Length: 4},
	{Name: CombinedControllerStateRequest, Opcode: 0x4C, Response: 0xCC, Length: 1},
}

var defaultResponses = []ResponseSpec{
	{Opcode: 0x00, Type: NotAcknowledgeResponse, Length: 3, Fields: []Field{
		{Name: "commandEcho", Offset: 2, Width: 2},
		{Name: "NAKCode", Offset: 4, Width: 2},
	}},
	{Opcode: 0x01, Type: AcknowledgeResponse, Length: 2, Fields: []Field{
		{Name: "commandEcho", Offset: 2, Width: 2},
	}},
	{Opcode: 0x82, Type: ModelAndVersionResponse, Length: 5, Fields: []Field{
		{Name: "modelID", Offset: 2, Width: 4},
		{Name: "protocolRevisionMajor", Offset: 6, Width: 2},
		{Name: "protocolRevisionMinor", Offset: 8, Width: 2},
	}},
	{Opcode: 0x83, Type: AvailableStationsResponse, Length: 6, Fields: []Field{
		{Name: "pageNumber", Offset: 2, Width: 2},
		{Name: "setStations", Offset: 4, Width: 8},
	}},
	{Opcode: 0x84, Type: CommandSupportResponse, Length: 3, Fields: []Field{
		{Name: "commandEcho", Offset: 2, Width: 2},
		{Name: "support", Offset: 4, Width: 2},
	}},
	{Opcode: 0x85, Type: SerialNumberResponse, Length: 9, Fields: []Field{
		{Name: "serialNumber", Offset: 2, Width: 16},
	}},
	{Opcode: 0x8B, Type: ControllerFirmwareVersionResponse, Length: 5, Fields: []Field{
		{Name: "major", Offset: 2, Width: 2},
		{Name: "minor", Offset: 4, Width: 2},
		{Name: "patch", Offset: 6, Width: 4},
	}},
	{Opcode: 0x90, Type: CurrentTimeResponse, Length: 4, Fields: []Field{
		{Name: "hour", Offset: 2, Width: 2},
		{Name: "minute", Offset: 4, Width: 2},
		{Name: "second", Offset: 6, Width: 2},
	}},
	{Opcode: 0x92, Type: CurrentDateResponse, Length: 4, Fields: []Field{
		{Name: "day", Offset: 2, Width: 2},
		{Name: "month", Offset: 4, Width: 1},
		{Name: "year", Offset: 5, Width: 3},
	}},
	{Opcode: 0xA0, Type: RetrieveScheduleResponse, Variable: true},
	{Opcode: 0xB0, Type: WaterBudgetResponse, Length: 4, Fields: []Field{
		{Name: "programCode", Offset: 2, Width: 2},
		{Name: "seasonalAdjust", Offset: 4, Width: 4},
	}},
	{Opcode: 0xB2, Type: ZonesSeasonalAdjustFactorResponse, Length: 18, Fields: []Field{
		{Name: "programCode", Offset: 2, Width: 2},
		{Name: "stationsSA", Offset: 4, Width: 32},
	}},
	{Opcode: 0xB6, Type: RainDelaySettingResponse, Length: 3, Fields: []Field{
		{Name: "delaySetting", Offset: 2, Width: 4},
	}},
	{Opcode: 0xBB, Type: CurrentQueueResponse, Variable: true},
	{Opcode: 0xBE, Type: CurrentRainSensorStateResponse, Length: 2, Fields: []Field{
		{Name: "sensorState", Offset: 2, Width: 2},
	}},
	{Opcode: 0xBF, Type: CurrentStationsActiveResponse, Length: 6, Fields: []Field{
		{Name: "pageNumber", Offset: 2, Width: 2},
		{Name: "activeStations", Offset: 4, Width: 8},
	}},
	{Opcode: 0xC8, Type: CurrentIrrigationStateResponse, Length: 2, Fields: []Field{
		{Name: "irrigationState", Offset: 2, Width: 2},
	}},
	{Opcode: 0xCA, Type: ControllerEventTimestampResponse, Length: 6, Fields: []Field{
		{Name: "eventId", Offset: 2, Width: 2},
		{Name: "timestamp", Offset: 4, Width: 8},
	}},
	{Opcode: 0xCC, Type: CombinedControllerStateResponse, Length: 16, Fields: []Field{
		{Name: "hour", Offset: 2, Width: 2},
		{Name: "minute", Offset: 4, Width: 2},
		{Name: "second", Offset: 6, Width: 2},
		{Name: "day", Offset: 8, Width: 2},
		{Name: "month", Offset: 10, Width: 1},
		{Name: "year", Offset: 11, Width: 3},
		{Name: "delaySetting", Offset: 14, Width: 4},
		{Name: "sensorState", Offset: 18, Width: 2},
		{Name: "irrigationState", Offset: 20, Width: 2},
		{Name: "seasonalAdjust", Offset: 22, Width: 4},
		{Name: "remainingRuntime", Offset: 26, Width: 4},
		{Name: "activeStation", Offset: 30, Width: 2},
	}},
}

var defaultRegistry = mustRegistry(defaultCommands, defaultResponses)

// DefaultRegistry returns the built-in registry of known controller commands and responses.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func mustRegistry(commands []CommandSpec, responses []ResponseSpec) *Registry {
	reg, err := NewRegistry(commands, responses)
	if err != nil {
		panic(err)
	}

	return reg
}
