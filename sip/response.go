package sip

// Response is a decoded controller response.
//
// Raw holds the hex slice of every declared field. Fields holds the same keys plus the values
// derived by the decode transform of the response kind, a transformed value replaces the raw
// hex string of its field. Values are string, uint64, bool or []int.
type Response struct {
	Type   ResponseType
	Opcode byte
	Raw    map[string]string
	Fields map[string]any
}

// String returns the raw hex value of the named field.
func (r *Response) String(name string) (string, bool) {
	v, ok := r.Raw[name]
	return v, ok
}

// Uint returns the named field as an unsigned integer.
func (r *Response) Uint(name string) (uint64, bool) {
	switch v := r.Fields[name].(type) {
	case uint64:
		return v, true
	case string:
		n, err := parseHex(v)
		return n, err == nil
	default:
		return 0, false
	}
}

// Int returns the named field as an int.
func (r *Response) Int(name string) (int, bool) {
	if v, ok := r.Fields[name].(int); ok {
		return v, true
	}
	n, ok := r.Uint(name)

	return int(n), ok //nolint:gosec
}

// Bool returns the named field as a boolean.
func (r *Response) Bool(name string) (bool, bool) {
	v, ok := r.Fields[name].(bool)
	return v, ok
}

// Ints returns the named field as a list of integers, e.g. "activeZones".
func (r *Response) Ints(name string) ([]int, bool) {
	v, ok := r.Fields[name].([]int)
	return v, ok
}

// Ack reports whether the response is an AcknowledgeResponse.
func (r *Response) Ack() bool {
	ack, _ := r.Bool(FieldAck)
	return r.Type == AcknowledgeResponse && ack
}

// Map returns the decoded fields with the response kind under the "_type" key.
func (r *Response) Map() map[string]any {
	m := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		m[k] = v
	}
	m["_type"] = string(r.Type)

	return m
}
