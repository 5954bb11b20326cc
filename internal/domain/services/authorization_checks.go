package services

import (
	"fmt"
	"slices"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/validation"
)

// Realms an authorization file may target
var allowedRealms = []string{"citizen", "external-system", "officer"}

type authorizationCheck = validation.CheckFunc[*entities.Authorization]

// AuthorizationChecks are the semantic checks for bp-auth files
func AuthorizationChecks() []validation.Check[*entities.Authorization] {
	return []validation.Check[*entities.Authorization]{
		authorizationCheck(checkRealm),
		authorizationCheck(checkGrantedProcessesUnique),
		authorizationCheck(checkGrantsHaveRoles),
	}
}

func checkRealm(auth *entities.Authorization, path string, vctx entities.ValidationContext) entities.ErrorSet {
	if slices.Contains(allowedRealms, auth.Realm) {
		return entities.NewErrorSet()
	}
	return entities.NewErrorSet(entities.NewValidationError(vctx, path,
		fmt.Sprintf("unknown realm '%s', expected one of: %s", auth.Realm, entities.JoinSorted(allowedRealms))))
}

func checkGrantedProcessesUnique(auth *entities.Authorization, path string, vctx entities.ValidationContext) entities.ErrorSet {
	ids := make([]string, 0, len(auth.ProcessDefinitions))
	for _, g := range auth.ProcessDefinitions {
		ids = append(ids, g.ProcessDefinitionID)
	}
	if dups := duplicates(ids); len(dups) > 0 {
		return entities.NewErrorSet(entities.NewValidationError(vctx, path,
			"process definitions granted more than once: "+entities.JoinSorted(dups)))
	}
	return entities.NewErrorSet()
}

func checkGrantsHaveRoles(auth *entities.Authorization, path string, vctx entities.ValidationContext) entities.ErrorSet {
	result := entities.NewErrorSet()
	for _, g := range auth.ProcessDefinitions {
		if len(g.Roles) == 0 {
			result.Add(entities.NewValidationError(vctx, path,
				fmt.Sprintf("process definition '%s' grants no roles", g.ProcessDefinitionID)))
		}
	}
	return result
}

// AuthorizationProcessRefs extracts the process ids an authorization file grants
func AuthorizationProcessRefs(load validation.Loader[*entities.Authorization]) validation.KeyExtractor {
	return func(path string) ([]string, error) {
		auth, err := load(path)
		if err != nil {
			return nil, err
		}
		refs := make([]string, 0, len(auth.ProcessDefinitions))
		for _, g := range auth.ProcessDefinitions {
			refs = append(refs, g.ProcessDefinitionID)
		}
		return refs, nil
	}
}

// AuthorizationRoleRefs extracts the roles an authorization file grants
func AuthorizationRoleRefs(load validation.Loader[*entities.Authorization]) validation.KeyExtractor {
	return func(path string) ([]string, error) {
		auth, err := load(path)
		if err != nil {
			return nil, err
		}
		var refs []string
		for _, g := range auth.ProcessDefinitions {
			refs = append(refs, g.Roles...)
		}
		return refs, nil
	}
}
