package services

import (
	"fmt"
	"regexp"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/validation"
)

var formNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type formCheck = validation.CheckFunc[*entities.FormDefinition]

// FormChecks are the semantic checks for UI form definitions
func FormChecks() []validation.Check[*entities.FormDefinition] {
	return []validation.Check[*entities.FormDefinition]{
		formCheck(checkFormName),
		formCheck(checkComponentKeysUnique),
	}
}

func checkFormName(form *entities.FormDefinition, path string, vctx entities.ValidationContext) entities.ErrorSet {
	if formNamePattern.MatchString(form.Name) {
		return entities.NewErrorSet()
	}
	return entities.NewErrorSet(entities.NewValidationError(vctx, path,
		fmt.Sprintf("form name '%s' must match %s", form.Name, formNamePattern)))
}

func checkComponentKeysUnique(form *entities.FormDefinition, path string, vctx entities.ValidationContext) entities.ErrorSet {
	keys := make([]string, 0, len(form.Components))
	for _, c := range form.Components {
		keys = append(keys, c.Key)
	}
	if dups := duplicates(keys); len(dups) > 0 {
		return entities.NewErrorSet(entities.NewValidationError(vctx, path,
			"component keys are not unique: "+entities.JoinSorted(dups)))
	}
	return entities.NewErrorSet()
}

// FormNames extracts the form name for collection uniqueness
func FormNames(load validation.Loader[*entities.FormDefinition]) validation.KeyExtractor {
	return func(path string) ([]string, error) {
		form, err := load(path)
		if err != nil {
			return nil, err
		}
		return []string{form.Name}, nil
	}
}

// FormRoleRefs extracts the roles a form is restricted to
func FormRoleRefs(load validation.Loader[*entities.FormDefinition]) validation.KeyExtractor {
	return func(path string) ([]string, error) {
		form, err := load(path)
		if err != nil {
			return nil, err
		}
		return form.Roles, nil
	}
}
