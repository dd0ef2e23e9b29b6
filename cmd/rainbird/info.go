package main

import (
	"github.com/arloliu/go-rainbird/logger"
	"github.com/arloliu/go-rainbird/sip"
	"github.com/spf13/cobra"
)

// programBudget is the water budget of one program, or the reason it couldn't be read.
type programBudget struct {
	Program       int    `json:"program"`
	BudgetPercent uint64 `json:"waterBudgetPercent,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show controller model, serial number, clock and zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := query(map[string]func() (*sip.Response, error){
				"serialNumber":    a.client.GetSerialNumber,
				"modelAndVersion": a.client.GetModelAndVersion,
				"time":            a.client.GetTime,
				"date":            a.client.GetDate,
				"availableZones":  a.client.GetAvailableZones,
				"rainSensorState": a.client.GetRainSensorState,
			})
			if err != nil {
				return err
			}

			modelID, _ := out["modelAndVersion"].(map[string]any)["modelID"].(string)
			model := sip.LookupModel(modelID)
			out["model"] = model
			if model.SupportsWaterBudget {
				out["programsWaterBudget"] = a.waterBudgets(model.MaxPrograms)
			}

			return printJSON(cmd, out)
		},
	}
}

// waterBudgets reads the water budget of each program. A failed program is reported in place
// and doesn't fail the others.
func (a *app) waterBudgets(programs int) []programBudget {
	budgets := make([]programBudget, 0, programs)
	for p := 0; p < programs; p++ {
		budget := programBudget{Program: p}

		rsp, err := a.client.GetWaterBudget(uint8(p)) //nolint:gosec
		if err != nil {
			logger.Warn("failed to read water budget", "program", p, "error", err)
			budget.Error = err.Error()
		} else {
			budget.BudgetPercent, _ = rsp.Uint("seasonalAdjust")
		}

		budgets = append(budgets, budget)
	}

	return budgets
}
