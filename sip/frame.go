package sip

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	frameID      = 9
	frameVersion = "2.0"
	frameMethod  = "tunnelSip"
)

// Frame is the JSON-RPC envelope carrying a SIP command.
type Frame struct {
	ID      int         `json:"id"`
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  FrameParams `json:"params"`
}

// FrameParams holds the hex command and its length in bytes.
type FrameParams struct {
	Data   string `json:"data"`
	Length int    `json:"length"`
}

// replyEnvelope is the decrypted JSON-RPC reply of the controller.
type replyEnvelope struct {
	Result *struct {
		Length int    `json:"length"`
		Data   string `json:"data"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Hex formats value as an upper-case hex string, zero padded to width characters.
//
// The result is longer than width if value doesn't fit, Encode rejects such parameters.
func Hex(value uint64, width int) string {
	s := strings.ToUpper(strconv.FormatUint(value, 16))
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}

	return s
}

// CommandData returns the hex command string of cmd with the given hex parameters.
//
// It returns ErrInvalidParameters if the number of parameters differs from the declared slots,
// if a parameter doesn't have the width of its slot or isn't a hex string, or if the command
// doesn't add up to the declared request length.
func CommandData(cmd CommandSpec, params ...string) (string, error) {
	if len(params) != len(cmd.Params) {
		return "", fmt.Errorf("%w: %s takes %d parameters, got %d", ErrInvalidParameters, cmd.Name, len(cmd.Params), len(params))
	}

	var sb strings.Builder
	sb.Grow(cmd.Length * 2)
	sb.WriteString(Hex(uint64(cmd.Opcode), 2))
	for i, p := range params {
		if len(p) != cmd.Params[i] {
			return "", fmt.Errorf("%w: %s parameter %d is %q, want %d hex chars", ErrInvalidParameters, cmd.Name, i+1, p, cmd.Params[i])
		}
		if !isHex(p) {
			return "", fmt.Errorf("%w: %s parameter %d is %q, not hex", ErrInvalidParameters, cmd.Name, i+1, p)
		}
		sb.WriteString(strings.ToUpper(p))
	}

	data := sb.String()
	if len(data) != cmd.Length*2 {
		return "", fmt.Errorf("%w: %s is %d hex chars, want %d", ErrInvalidParameters, cmd.Name, len(data), cmd.Length*2)
	}

	return data, nil
}

// Encode builds the plaintext "tunnelSip" frame of cmd with the given hex parameters.
func Encode(cmd CommandSpec, params ...string) ([]byte, error) {
	data, err := CommandData(cmd, params...)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Frame{
		ID:      frameID,
		JSONRPC: frameVersion,
		Method:  frameMethod,
		Params:  FrameParams{Data: data, Length: cmd.Length},
	})
}

// Decode parses a decrypted controller reply.
//
// It returns ErrDecryptOrParse if plaintext is not JSON, a *ControllerError if the controller
// replied with an error object, ErrMalformedEnvelope if there is no result, and otherwise the
// result of DecodeResult.
func (r *Registry) Decode(plaintext []byte) (*Response, error) {
	if len(plaintext) == 0 {
		return nil, ErrNoResponse
	}

	var env replyEnvelope
	if err := json.Unmarshal(plaintext, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptOrParse, err)
	}

	if env.Error != nil {
		return nil, &ControllerError{Code: env.Error.Code, Message: env.Error.Message}
	}
	if env.Result == nil {
		return nil, ErrMalformedEnvelope
	}

	return r.DecodeResult(env.Result.Data, env.Result.Length)
}

// DecodeResult decodes the hex data of a result whose declared length is length bytes.
//
// It returns ErrUnknownResponseCode if the opcode is unknown, and ErrInvalidResponseLength if
// the declared length differs from the registry, or the data differs from the declared length.
func (r *Registry) DecodeResult(data string, length int) (*Response, error) {
	if len(data) < 2 || !isHex(data) {
		return nil, fmt.Errorf("%w: result data %q", ErrMalformedEnvelope, data)
	}

	opcode := uint8(hexUint(data[:2])) //nolint:gosec
	spec, err := r.ResolveResponse(opcode)
	if err != nil {
		return nil, err
	}

	if len(data) != length*2 {
		return nil, fmt.Errorf("%w: %s declares %d bytes, carries %d hex chars", ErrInvalidResponseLength, spec.Type, length, len(data))
	}
	if !spec.Variable && length != spec.Length {
		return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrInvalidResponseLength, spec.Type, length, spec.Length)
	}

	rsp := &Response{
		Type:   spec.Type,
		Opcode: opcode,
		Raw:    make(map[string]string, len(spec.Fields)),
	}
	for _, f := range spec.Fields {
		rsp.Raw[f.Name] = data[f.Offset : f.Offset+f.Width]
	}
	if spec.Variable {
		rsp.Raw[FieldData] = data[2:]
	}

	rsp.Fields = make(map[string]any, len(rsp.Raw)+2)
	for k, v := range rsp.Raw {
		rsp.Fields[k] = v
	}
	transform(spec.Type, rsp.Raw, rsp.Fields)

	return rsp, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}
