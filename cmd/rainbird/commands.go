package main

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/arloliu/go-rainbird/sip"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	minRainDelay = 1
	maxRainDelay = 14
)

// query runs the named queries concurrently and returns their decoded fields by name.
// The client serializes the requests, the fan-out only saves the caller from sequencing them.
func query(queries map[string]func() (*sip.Response, error)) (map[string]any, error) {
	var (
		g   errgroup.Group
		mu  sync.Mutex
		out = make(map[string]any, len(queries))
	)

	for name, q := range queries {
		name, q := name, q
		g.Go(func() error {
			rsp, err := q()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			mu.Lock()
			out[name] = rsp.Map()
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func runOne(f func() (*sip.Response, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		rsp, err := f()
		if err != nil {
			return err
		}

		return printJSON(cmd, rsp.Map())
	}
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the controller state and the active zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := query(map[string]func() (*sip.Response, error){
				"state":       a.client.GetCombinedControllerState,
				"activeZones": a.client.GetActiveZones,
				"irrigation":  a.client.GetIrrigationState,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, out)
		},
	}
}

func (a *app) zonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the available zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(a.client.GetAvailableZones)(cmd, args)
		},
	}
}

func (a *app) timeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "time",
		Short: "Show the controller clock and date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := query(map[string]func() (*sip.Response, error){
				"time": a.client.GetTime,
				"date": a.client.GetDate,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, out)
		},
	}
}

func (a *app) startZoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start-zone ZONE MINUTES",
		Short: "Water a zone for a number of minutes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone, err := parseUint(args[0], "zone", 16)
			if err != nil {
				return err
			}
			minutes, err := parseUint(args[1], "minutes", 8)
			if err != nil {
				return err
			}

			return runOne(func() (*sip.Response, error) {
				return a.client.StartZone(uint16(zone), uint8(minutes)) //nolint:gosec
			})(cmd, args)
		},
	}
}

func (a *app) startAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start-all MINUTES",
		Short: "Water every zone in turn for a number of minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseUint(args[0], "minutes", 8)
			if err != nil {
				return err
			}

			return runOne(func() (*sip.Response, error) {
				return a.client.StartAllZones(uint8(minutes)) //nolint:gosec
			})(cmd, args)
		},
	}
}

func (a *app) startProgramCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start-program N",
		Short: "Run a program manually",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := parseUint(args[0], "program", 8)
			if err != nil {
				return err
			}

			return runOne(func() (*sip.Response, error) {
				return a.client.StartProgram(uint8(program)) //nolint:gosec
			})(cmd, args)
		},
	}
}

func (a *app) stopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop all watering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(a.client.StopIrrigation)(cmd, args)
		},
	}
}

func (a *app) rainDelayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rain-delay [DAYS]",
		Short: "Show the rain delay, or set it to 1-14 days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runOne(a.client.GetRainDelay)(cmd, args)
			}

			days, err := parseRainDelay(args[0])
			if err != nil {
				return err
			}

			return runOne(func() (*sip.Response, error) {
				return a.client.SetRainDelay(days)
			})(cmd, args)
		},
	}
}

func (a *app) advanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "advance ZONE",
		Short: "Advance the running program past a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone, err := parseUint(args[0], "zone", 8)
			if err != nil {
				return err
			}

			return runOne(func() (*sip.Response, error) {
				return a.client.AdvanceZone(uint8(zone)) //nolint:gosec
			})(cmd, args)
		},
	}
}

func parseUint(arg, name string, bitSize int) (uint64, error) {
	n, err := strconv.ParseUint(arg, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, err)
	}

	return n, nil
}

func parseRainDelay(arg string) (uint16, error) {
	days, err := parseUint(arg, "days", 16)
	if err != nil {
		return 0, err
	}
	if days < minRainDelay || days > maxRainDelay {
		return 0, fmt.Errorf("rain delay %d out of range [%d, %d]", days, minRainDelay, maxRainDelay)
	}

	return uint16(days), nil
}
