package services

import (
	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/validation"
)

type groupsCheck = validation.CheckFunc[*entities.ProcessGroups]

// ProcessGroupChecks are the semantic checks for bp-grouping files
func ProcessGroupChecks() []validation.Check[*entities.ProcessGroups] {
	return []validation.Check[*entities.ProcessGroups]{
		groupsCheck(checkGroupNamesUnique),
		groupsCheck(checkProcessGroupedOnce),
	}
}

func checkGroupNamesUnique(cfg *entities.ProcessGroups, path string, vctx entities.ValidationContext) entities.ErrorSet {
	names := make([]string, 0, len(cfg.Groups))
	for _, g := range cfg.Groups {
		names = append(names, g.Name)
	}
	if dups := duplicates(names); len(dups) > 0 {
		return entities.NewErrorSet(entities.NewValidationError(vctx, path,
			"group names are not unique: "+entities.JoinSorted(dups)))
	}
	return entities.NewErrorSet()
}

func checkProcessGroupedOnce(cfg *entities.ProcessGroups, path string, vctx entities.ValidationContext) entities.ErrorSet {
	if dups := duplicates(groupedProcesses(cfg)); len(dups) > 0 {
		return entities.NewErrorSet(entities.NewValidationError(vctx, path,
			"process definitions listed more than once: "+entities.JoinSorted(dups)))
	}
	return entities.NewErrorSet()
}

func groupedProcesses(cfg *entities.ProcessGroups) []string {
	var ids []string
	for _, g := range cfg.Groups {
		ids = append(ids, g.ProcessDefinitions...)
	}
	return append(ids, cfg.Ungrouped...)
}

// ProcessGroupRefs extracts every process id a grouping file lists
func ProcessGroupRefs(load validation.Loader[*entities.ProcessGroups]) validation.KeyExtractor {
	return func(path string) ([]string, error) {
		cfg, err := load(path)
		if err != nil {
			return nil, err
		}
		return groupedProcesses(cfg), nil
	}
}
