package services

import (
	"fmt"
	"regexp"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/validation"
)

var processIDPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

type processCheck = validation.CheckFunc[*entities.ProcessDefinitionFile]

// ProcessDefinitionChecks are the semantic checks for BPMN files
func ProcessDefinitionChecks() []validation.Check[*entities.ProcessDefinitionFile] {
	return []validation.Check[*entities.ProcessDefinitionFile]{
		processCheck(checkDeclaresProcess),
		processCheck(checkProcessIDs),
		processCheck(checkProcessNames),
	}
}

func checkDeclaresProcess(def *entities.ProcessDefinitionFile, path string, vctx entities.ValidationContext) entities.ErrorSet {
	if len(def.Processes) == 0 {
		return entities.NewErrorSet(entities.NewValidationError(vctx, path, "file declares no process"))
	}
	return entities.NewErrorSet()
}

func checkProcessIDs(def *entities.ProcessDefinitionFile, path string, vctx entities.ValidationContext) entities.ErrorSet {
	result := entities.NewErrorSet()
	for i, p := range def.Processes {
		switch {
		case p.ID == "":
			result.Add(entities.NewValidationError(vctx, path, fmt.Sprintf("process %d has no id", i)))
		case !processIDPattern.MatchString(p.ID):
			result.Add(entities.NewValidationError(vctx, path,
				fmt.Sprintf("process id '%s' must match %s", p.ID, processIDPattern)))
		}
	}
	return result
}

func checkProcessNames(def *entities.ProcessDefinitionFile, path string, vctx entities.ValidationContext) entities.ErrorSet {
	result := entities.NewErrorSet()
	for _, p := range def.Processes {
		if p.ID != "" && p.Name == "" {
			result.Add(entities.NewValidationError(vctx, path, fmt.Sprintf("process '%s' has no name", p.ID)))
		}
	}
	return result
}

// ProcessIDs extracts the process ids declared by a BPMN file
func ProcessIDs(load validation.Loader[*entities.ProcessDefinitionFile]) validation.KeyExtractor {
	return func(path string) ([]string, error) {
		def, err := load(path)
		if err != nil {
			return nil, err
		}
		return def.ProcessIDs(), nil
	}
}
