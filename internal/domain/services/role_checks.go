package services

import (
	"fmt"
	"regexp"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/validation"
)

var roleNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

type roleCheck = validation.CheckFunc[*entities.RoleCatalog]

// RoleChecks are the semantic checks for role catalogs
func RoleChecks() []validation.Check[*entities.RoleCatalog] {
	return []validation.Check[*entities.RoleCatalog]{
		roleCheck(checkRoleNames),
		roleCheck(checkRoleNamesUnique),
	}
}

func checkRoleNames(catalog *entities.RoleCatalog, path string, vctx entities.ValidationContext) entities.ErrorSet {
	result := entities.NewErrorSet()
	for _, r := range catalog.Roles {
		if !roleNamePattern.MatchString(r.Name) {
			result.Add(entities.NewValidationError(vctx, path,
				fmt.Sprintf("role name '%s' must match %s", r.Name, roleNamePattern)))
		}
	}
	return result
}

func checkRoleNamesUnique(catalog *entities.RoleCatalog, path string, vctx entities.ValidationContext) entities.ErrorSet {
	if dups := duplicates(RoleNames(catalog)); len(dups) > 0 {
		return entities.NewErrorSet(entities.NewValidationError(vctx, path,
			"roles declared more than once: "+entities.JoinSorted(dups)))
	}
	return entities.NewErrorSet()
}

// RoleNames returns the names declared by a catalog
func RoleNames(catalog *entities.RoleCatalog) []string {
	names := make([]string, 0, len(catalog.Roles))
	for _, r := range catalog.Roles {
		names = append(names, r.Name)
	}
	return names
}

// DeclaredRoles extracts the role names a catalog declares
func DeclaredRoles(load validation.Loader[*entities.RoleCatalog]) validation.KeyExtractor {
	return func(path string) ([]string, error) {
		catalog, err := load(path)
		if err != nil {
			return nil, err
		}
		return RoleNames(catalog), nil
	}
}
