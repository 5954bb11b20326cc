package services

import (
	"fmt"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/validation"
)

type integrationCheck = validation.CheckFunc[*entities.Integration]

// IntegrationChecks are the semantic checks for bp-trembita files
func IntegrationChecks() []validation.Check[*entities.Integration] {
	return []validation.Check[*entities.Integration]{
		integrationCheck(checkIntegratedProcessesUnique),
		integrationCheck(checkStartVarsUnique),
	}
}

func checkIntegratedProcessesUnique(cfg *entities.Integration, path string, vctx entities.ValidationContext) entities.ErrorSet {
	ids := make([]string, 0, len(cfg.ProcessDefinitions))
	for _, p := range cfg.ProcessDefinitions {
		ids = append(ids, p.ProcessDefinitionID)
	}
	if dups := duplicates(ids); len(dups) > 0 {
		return entities.NewErrorSet(entities.NewValidationError(vctx, path,
			"process definitions exposed more than once: "+entities.JoinSorted(dups)))
	}
	return entities.NewErrorSet()
}

func checkStartVarsUnique(cfg *entities.Integration, path string, vctx entities.ValidationContext) entities.ErrorSet {
	result := entities.NewErrorSet()
	for _, p := range cfg.ProcessDefinitions {
		if dups := duplicates(p.StartVars); len(dups) > 0 {
			result.Add(entities.NewValidationError(vctx, path,
				fmt.Sprintf("process definition '%s' repeats start variables: %s",
					p.ProcessDefinitionID, entities.JoinSorted(dups))))
		}
	}
	return result
}

// IntegrationProcessRefs extracts the process ids an integration file exposes
func IntegrationProcessRefs(load validation.Loader[*entities.Integration]) validation.KeyExtractor {
	return func(path string) ([]string, error) {
		cfg, err := load(path)
		if err != nil {
			return nil, err
		}
		refs := make([]string, 0, len(cfg.ProcessDefinitions))
		for _, p := range cfg.ProcessDefinitions {
			refs = append(refs, p.ProcessDefinitionID)
		}
		return refs, nil
	}
}
