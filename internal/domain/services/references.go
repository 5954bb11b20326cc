package services

import (
	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/validation"
)

// ProcessReferences checks that every process referenced from authorization,
// integration and grouping files is defined by a BPMN file in the bundle.
func ProcessReferences(l Loaders) validation.CrossValidator {
	return validation.NewReferences("process definitions",
		validation.KeysFrom(entities.TypeProcessDefinition, ProcessIDs(l.ProcessDefinition)),
		validation.ReferenceSource{Type: entities.TypeAuthorization, Extract: AuthorizationProcessRefs(l.Authorization)},
		validation.ReferenceSource{Type: entities.TypeIntegration, Extract: IntegrationProcessRefs(l.Integration)},
		validation.ReferenceSource{Type: entities.TypeProcessGroups, Extract: ProcessGroupRefs(l.ProcessGroups)},
	)
}

// RoleReferences checks that every role granted by authorization files or
// required by forms is either a default role or declared in a role catalog.
func RoleReferences(l Loaders, defaultRoles []string) validation.CrossValidator {
	return validation.NewReferences("roles",
		validation.KeysFrom(entities.TypeRoles, DeclaredRoles(l.Roles), defaultRoles...),
		validation.ReferenceSource{Type: entities.TypeAuthorization, Extract: AuthorizationRoleRefs(l.Authorization)},
		validation.ReferenceSource{Type: entities.TypeForm, Extract: FormRoleRefs(l.Form)},
	)
}
