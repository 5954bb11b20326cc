package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/regguard/internal/domain-orchestrators"
	"github.com/ochairo/regguard/internal/domain/entities"
)

type checksumAction string

const (
	checksumPlan checksumAction = "plan"
	checksumSave checksumAction = "save"
)

func newChecksumCmd(a *app, action checksumAction) *cobra.Command {
	var files, detailed []string

	short := "Report artifacts changed since the stored baseline"
	if action == checksumSave {
		short = "Store current checksums as the new baseline"
	}

	cmd := &cobra.Command{
		Use:   string(action) + " <operation>",
		Short: short,
		Long: short + `.

--file digests each directory as a whole and prints true or false.
--file-detailed digests every file and prints the changed paths.
Inputs that do not exist are skipped.`,
		Example: fmt.Sprintf(`  regguard %[1]s deploy-forms --file=forms,roles
  regguard %[1]s deploy-forms --file-detailed=forms`, action),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := orchestrators.ChecksumRequest{Operation: args[0]}
			switch {
			case len(files) > 0 && len(detailed) > 0:
				return fmt.Errorf("%w: --file and --file-detailed are mutually exclusive", entities.ErrInvocation)
			case len(detailed) > 0:
				req.Inputs, req.Mode = detailed, entities.ModeDetailed
			default:
				req.Inputs, req.Mode = files, entities.ModeAggregate
			}
			return a.runChecksum(cmd.Context(), action, req)
		},
	}

	cmd.Flags().StringSliceVar(&files, "file", nil, "comma-separated files or directories, digested as a whole")
	cmd.Flags().StringSliceVar(&detailed, "file-detailed", nil, "comma-separated files or directories, digested file by file")
	return cmd
}

func (a *app) runChecksum(ctx context.Context, action checksumAction, req orchestrators.ChecksumRequest) error {
	orch, err := a.checksumOrchestrator()
	if err != nil {
		return err
	}

	var result *entities.PlanResult
	if action == checksumSave {
		result, err = orch.Save(ctx, req)
	} else {
		result, err = orch.Plan(ctx, req)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, orchestrators.FormatPlan(result))
	return nil
}
