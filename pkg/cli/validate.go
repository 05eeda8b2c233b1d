package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/themis/pkg/cli/config"
	"github.com/secmon-lab/themis/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog
	var workflowCfg config.Workflow

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, workflowCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the control catalog and workflow configuration files",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			pass := color.New(color.FgGreen).SprintFunc()
			fail := color.New(color.FgRed, color.Bold).SprintFunc()
			skip := color.New(color.FgYellow).SprintFunc()

			var failed bool

			if catalogCfg.Path() == "" {
				fmt.Printf("%s catalog: no file given\n", skip("SKIP"))
			} else if err := catalogCfg.Load(); err != nil {
				fmt.Printf("%s catalog: %s\n", fail("FAIL"), catalogCfg.Path())
				logger.Error("catalog validation failed", "error", err.Error())
				failed = true
			} else {
				domains := make(map[string]int)
				for _, entry := range catalogCfg.Controls {
					domains[entry.Domain]++
				}
				fmt.Printf("%s catalog: %s (%d controls, %d domains)\n",
					pass("OK"), catalogCfg.Path(), len(catalogCfg.Controls), len(domains))
			}

			if workflowCfg.Path() == "" {
				fmt.Printf("%s workflow: no file given, defaults apply\n", skip("SKIP"))
			} else if err := workflowCfg.Load(); err != nil {
				fmt.Printf("%s workflow: %s\n", fail("FAIL"), workflowCfg.Path())
				logger.Error("workflow validation failed", "error", err.Error())
				failed = true
			} else {
				policy := workflowCfg.PhasePolicy()
				thresholds := workflowCfg.ALEThresholds()
				fmt.Printf("%s workflow: %s (completion phases: %d, ALE high: %.0f, medium: %.0f)\n",
					pass("OK"), workflowCfg.Path(),
					len(policy.CompletionPhases()), thresholds.High, thresholds.Medium)
			}

			if failed {
				return fmt.Errorf("configuration validation failed")
			}
			return nil
		},
	}
}
