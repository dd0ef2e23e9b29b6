package sip

import (
	"fmt"
	"sort"
)

// CommandSpec describes a controller command.
type CommandSpec struct {
	// Name is the symbolic command name, e.g. "ManuallyRunStationRequest".
	Name string
	// Opcode is the command opcode, the first byte of the request.
	Opcode byte
	// Params holds the width, in hex characters, of each parameter slot in wire order.
	Params []int
	// Length is the request length in bytes, opcode included.
	Length int
	// Response is the opcode of the expected response.
	Response byte
}

// nibbles returns the request length, in hex characters, implied by the opcode and parameter slots.
func (c CommandSpec) nibbles() int {
	n := 2
	for _, w := range c.Params {
		n += w
	}

	return n
}

// Field describes a response field as a slice of the hex response data.
type Field struct {
	Name string
	// Offset is the position of the field in hex characters, the opcode occupies [0, 2).
	Offset int
	// Width is the field width in hex characters.
	Width int
}

// ResponseSpec describes a controller response.
type ResponseSpec struct {
	// Opcode is the response opcode, the first byte of the response data.
	Opcode byte
	// Type is the response kind, it selects the decode transform.
	Type ResponseType
	// Length is the response length in bytes, opcode included.
	Length int
	// Variable marks responses whose length depends on their content. Their length is not
	// validated and their payload is exposed as the "data" field.
	Variable bool
	// Fields lists the fixed fields in wire order.
	Fields []Field
}

// Registry is an immutable lookup table of commands and responses.
//
// A Registry is safe for concurrent use.
type Registry struct {
	commands  map[string]CommandSpec
	byOpcode  map[byte]CommandSpec
	responses map[byte]ResponseSpec
}

// NewRegistry validates the given tables and builds a Registry from them.
//
// It returns ErrInvalidRegistry if a name or an opcode is declared twice, if a command's parameter
// slots don't add up to its request length, if a command expects an unknown response, or if a
// response field doesn't fit in the response length.
func NewRegistry(commands []CommandSpec, responses []ResponseSpec) (*Registry, error) {
	reg := &Registry{
		commands:  make(map[string]CommandSpec, len(commands)),
		byOpcode:  make(map[byte]CommandSpec, len(commands)),
		responses: make(map[byte]ResponseSpec, len(responses)),
	}

	for _, rsp := range responses {
		if _, ok := reg.responses[rsp.Opcode]; ok {
			return nil, fmt.Errorf("%w: duplicate response opcode %02X", ErrInvalidRegistry, rsp.Opcode)
		}
		if !rsp.Variable && rsp.Length < 1 {
			return nil, fmt.Errorf("%w: response %s has no length", ErrInvalidRegistry, rsp.Type)
		}
		for _, f := range rsp.Fields {
			if f.Offset < 2 || f.Width < 1 {
				return nil, fmt.Errorf("%w: response %s field %s overlaps the opcode", ErrInvalidRegistry, rsp.Type, f.Name)
			}
			if !rsp.Variable && f.Offset+f.Width > rsp.Length*2 {
				return nil, fmt.Errorf("%w: response %s field %s exceeds length %d", ErrInvalidRegistry, rsp.Type, f.Name, rsp.Length)
			}
		}
		reg.responses[rsp.Opcode] = rsp
	}

	for _, cmd := range commands {
		if _, ok := reg.commands[cmd.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate command %s", ErrInvalidRegistry, cmd.Name)
		}
		if _, ok := reg.byOpcode[cmd.Opcode]; ok {
			return nil, fmt.Errorf("%w: duplicate command opcode %02X", ErrInvalidRegistry, cmd.Opcode)
		}
		if cmd.nibbles() != cmd.Length*2 {
			return nil, fmt.Errorf("%w: command %s parameters add up to %d hex chars, want %d",
				ErrInvalidRegistry, cmd.Name, cmd.nibbles(), cmd.Length*2)
		}
		if _, ok := reg.responses[cmd.Response]; !ok {
			return nil, fmt.Errorf("%w: command %s expects unknown response %02X", ErrInvalidRegistry, cmd.Name, cmd.Response)
		}
		reg.commands[cmd.Name] = cmd
		reg.byOpcode[cmd.Opcode] = cmd
	}

	return reg, nil
}

// ResolveCommand returns the command with the given symbolic name.
// It returns ErrInvalidCommand if the name is unknown.
func (r *Registry) ResolveCommand(name string) (CommandSpec, error) {
	cmd, ok := r.commands[name]
	if !ok {
		return CommandSpec{}, fmt.Errorf("%w: %s", ErrInvalidCommand, name)
	}

	return cmd, nil
}

// CommandByOpcode returns the command with the given opcode.
func (r *Registry) CommandByOpcode(opcode byte) (CommandSpec, bool) {
	cmd, ok := r.byOpcode[opcode]
	return cmd, ok
}

// ResolveResponse returns the response with the given opcode.
// It returns ErrUnknownResponseCode if the opcode is unknown.
func (r *Registry) ResolveResponse(opcode byte) (ResponseSpec, error) {
	rsp, ok := r.responses[opcode]
	if !ok {
		return ResponseSpec{}, fmt.Errorf("%w: %02X", ErrUnknownResponseCode, opcode)
	}

	return rsp, nil
}

// Commands returns all commands ordered by opcode.
func (r *Registry) Commands() []CommandSpec {
	cmds := make([]CommandSpec, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Opcode < cmds[j].Opcode })

	return cmds
}
