package main

import (
	"errors"

	"github.com/arloliu/go-rainbird/sip"
	"github.com/spf13/cobra"
)

type supportedCommand struct {
	Opcode string `json:"opcode"`
	Name   string `json:"name,omitempty"`
}

func (a *app) scanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List the commands the controller supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			supported, err := a.scan()
			if err != nil {
				return err
			}

			return printJSON(cmd, supported)
		},
	}
}

// scan asks the controller about every opcode and names the supported ones from the client's
// registry. A NAK counts as unsupported, any other error stops the scan.
func (a *app) scan() ([]supportedCommand, error) {
	reg := a.client.Registry()
	supported := []supportedCommand{}
	for op := 0; op <= 0xFF; op++ {
		opcode := byte(op)

		rsp, err := a.client.CheckCommandSupport(opcode)
		if errors.Is(err, sip.ErrNotAcknowledged) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if ok, _ := rsp.Bool(sip.FieldSupported); !ok {
			continue
		}

		entry := supportedCommand{Opcode: sip.Hex(uint64(opcode), 2)}
		if spec, ok := reg.CommandByOpcode(opcode); ok {
			entry.Name = spec.Name
		}
		supported = append(supported, entry)
	}

	return supported, nil
}
