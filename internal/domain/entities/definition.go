package entities

// ProcessDefinitionFile represents a parsed BPMN file
type ProcessDefinitionFile struct {
	Source    string
	Processes []Process
}

// Process represents one executable process declared in a BPMN file
type Process struct {
	ID         string
	Name       string
	Executable bool
}

// ProcessIDs returns the ids of every process in the file
func (f *ProcessDefinitionFile) ProcessIDs() []string {
	ids := make([]string, 0, len(f.Processes))
	for _, p := range f.Processes {
		ids = append(ids, p.ID)
	}
	return ids
}

// Authorization represents a business process authorization config
type Authorization struct {
	Source             string
	Realm              string
	ProcessDefinitions []ProcessGrant
}

// ProcessGrant grants roles access to a process
type ProcessGrant struct {
	ProcessDefinitionID string
	ProcessName         string
	Roles               []string
}

// Integration represents an external system integration config
type Integration struct {
	Source             string
	ProcessDefinitions []IntegratedProcess
}

// IntegratedProcess exposes a process to an external system
type IntegratedProcess struct {
	ProcessDefinitionID string
	StartVars           []string
}

// ProcessGroups represents the grouping of processes shown to users
type ProcessGroups struct {
	Source    string
	Groups    []ProcessGroup
	Ungrouped []string
}

// ProcessGroup is a named list of process references
type ProcessGroup struct {
	Name               string
	ProcessDefinitions []string
}

// RoleCatalog represents a file declaring roles
type RoleCatalog struct {
	Source string
	Roles  []Role
}

// Role is a declared role
type Role struct {
	Name        string
	Description string
}

// FormDefinition represents a UI form
type FormDefinition struct {
	Source     string
	Name       string
	Title      string
	Roles      []string
	Components []FormComponent
}

// FormComponent is one input of a form
type FormComponent struct {
	Key   string
	Type  string
	Label string
}

// RegistrySettings represents the registry settings file
type RegistrySettings struct {
	Source    string
	Present   bool // the top-level settings block was found
	Package   string
	Register  string
	Version   string
	Title     string
	Retention RetentionPolicy
}

// RetentionPolicy holds data retention periods in days
type RetentionPolicy struct {
	AuditDays    int
	RequestsDays int
}

// Changelog represents a database changelog file
type Changelog struct {
	Source     string
	ChangeSets []ChangeSet
}

// ChangeSet is one changelog entry
type ChangeSet struct {
	ID     string
	Author string
}
