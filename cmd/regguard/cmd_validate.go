package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/regguard/internal/domain/entities"
)

func newValidateCmd(a *app) *cobra.Command {
	overrides := make(map[entities.ArtifactType]*[]string)

	cmd := &cobra.Command{
		Use:   "validate [registry-dir]",
		Short: "Validate every artifact of a registry",
		Long: `Validate discovers the artifacts of a registry directory and runs every
structural, schema, semantic, collection and cross-reference check.

A --<type> flag replaces discovery for that artifact type. Without a
registry directory only the listed artifacts are checked.`,
		Example: `  # Validate the registry in the current directory
  regguard validate .

  # Check two process definitions and a role catalog only
  regguard validate --bpmn bpmn/a.bpmn,bpmn/b.bpmn --roles roles/officer.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle := entities.NewBundle()
			for t, paths := range overrides {
				if cmd.Flags().Changed(t.String()) {
					bundle.Add(t, *paths...)
				}
			}

			registryDir := ""
			if len(args) == 1 {
				registryDir = args[0]
			} else if len(bundle) == 0 {
				registryDir = "."
			}

			return a.runValidate(registryDir, bundle)
		},
	}

	for _, t := range entities.ArtifactTypes() {
		spec, _ := t.Spec()
		overrides[t] = cmd.Flags().StringSlice(t.String(), nil, "comma-separated "+spec.Description+" to check instead of discovering them")
	}
	return cmd
}

func (a *app) runValidate(registryDir string, overrides entities.Bundle) error {
	orch, err := a.validationOrchestrator()
	if err != nil {
		return err
	}

	result, err := orch.ValidateRegistry(registryDir, overrides)
	if err != nil {
		return err
	}

	if result.Valid() {
		fmt.Fprintf(a.stdout, "✅ %s\n", result.GetValidationSummary())
		return nil
	}

	for _, e := range result.Errors.Sorted() {
		fmt.Fprintf(a.stdout, "❌ %s\n", e)
	}
	fmt.Fprintf(a.stdout, "\n%s\n", result.GetValidationSummary())
	return errValidationFailed
}
