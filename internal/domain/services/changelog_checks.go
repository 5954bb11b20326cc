package services

import (
	"fmt"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/validation"
)

type changelogCheck = validation.CheckFunc[*entities.Changelog]

// ChangelogChecks are the semantic checks for database changelogs
func ChangelogChecks() []validation.Check[*entities.Changelog] {
	return []validation.Check[*entities.Changelog]{
		changelogCheck(checkChangeSetIdentity),
		changelogCheck(checkChangeSetsUnique),
	}
}

func checkChangeSetIdentity(log *entities.Changelog, path string, vctx entities.ValidationContext) entities.ErrorSet {
	result := entities.NewErrorSet()
	for i, cs := range log.ChangeSets {
		if cs.ID == "" {
			result.Add(entities.NewValidationError(vctx, path, fmt.Sprintf("changeSet %d has no id", i)))
		}
		if cs.Author == "" {
			result.Add(entities.NewValidationError(vctx, path, fmt.Sprintf("changeSet %d has no author", i)))
		}
	}
	return result
}

func checkChangeSetsUnique(log *entities.Changelog, path string, vctx entities.ValidationContext) entities.ErrorSet {
	ids := make([]string, 0, len(log.ChangeSets))
	for _, cs := range log.ChangeSets {
		if cs.ID != "" && cs.Author != "" {
			ids = append(ids, cs.ID+"::"+cs.Author)
		}
	}
	if dups := duplicates(ids); len(dups) > 0 {
		return entities.NewErrorSet(entities.NewValidationError(vctx, path,
			"changeSets declared more than once: "+entities.JoinSorted(dups)))
	}
	return entities.NewErrorSet()
}
