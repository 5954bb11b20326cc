package services

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces"
	"github.com/ochairo/regguard/internal/domain/rules"
	"github.com/ochairo/regguard/internal/domain/validation"
)

var (
	packagePattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)
	registerPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{1,30}$`)
)

// Identifiers a generated Java package segment may not use
var reservedWords = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "false", "final", "finally", "float", "for", "goto", "if",
	"implements", "import", "instanceof", "int", "interface", "long", "native",
	"new", "null", "package", "private", "protected", "public", "return",
	"short", "static", "strictfp", "super", "switch", "synchronized", "this",
	"throw", "throws", "transient", "true", "try", "void", "volatile", "while",
}

// SettingsFacts is the fact value the settings rule set runs against
type SettingsFacts struct {
	Settings         *entities.RegistrySettings
	File             string
	Context          entities.ValidationContext
	RetentionMinDays int
}

func (f SettingsFacts) fail(out *rules.Outcome, msg string) {
	out.Fail(entities.NewValidationError(f.Context, f.File, msg))
}

// NewSettingsEngine builds the registry settings rule set
func NewSettingsEngine() (*rules.Engine[SettingsFacts], error) {
	always := func(SettingsFacts) bool { return true }

	return rules.NewEngine(
		rules.Rule[SettingsFacts]{
			Name:     "settings-present",
			Priority: 1,
			When:     func(f SettingsFacts) bool { return !f.Settings.Present },
			Then: func(f SettingsFacts, out *rules.Outcome) rules.Signal {
				f.fail(out, "missing settings block")
				return rules.Stop
			},
		},
		rules.Rule[SettingsFacts]{
			Name:     "version-semver",
			Priority: 2,
			When:     always,
			Then: func(f SettingsFacts, out *rules.Outcome) rules.Signal {
				if _, err := semver.StrictNewVersion(f.Settings.Version); err != nil {
					f.fail(out, fmt.Sprintf("version '%s' is not a semantic version", f.Settings.Version))
				}
				return rules.Continue
			},
		},
		rules.Rule[SettingsFacts]{
			Name:     "package-format",
			Priority: 3,
			When:     func(f SettingsFacts) bool { return !packagePattern.MatchString(f.Settings.Package) },
			Then: func(f SettingsFacts, out *rules.Outcome) rules.Signal {
				f.fail(out, fmt.Sprintf("package '%s' must match %s", f.Settings.Package, packagePattern))
				return rules.Continue
			},
		},
		rules.Rule[SettingsFacts]{
			Name:     "package-reserved-words",
			Priority: 4,
			When:     always,
			Then: func(f SettingsFacts, out *rules.Outcome) rules.Signal {
				var used []string
				for _, segment := range strings.Split(f.Settings.Package, ".") {
					if slices.Contains(reservedWords, segment) && !slices.Contains(used, segment) {
						used = append(used, segment)
					}
				}
				if len(used) > 0 {
					f.fail(out, "package uses reserved words: "+entities.JoinSorted(used))
				}
				return rules.Continue
			},
		},
		rules.Rule[SettingsFacts]{
			Name:     "register-name",
			Priority: 5,
			When:     func(f SettingsFacts) bool { return !registerPattern.MatchString(f.Settings.Register) },
			Then: func(f SettingsFacts, out *rules.Outcome) rules.Signal {
				f.fail(out, fmt.Sprintf("register name '%s' must match %s", f.Settings.Register, registerPattern))
				return rules.Continue
			},
		},
		rules.Rule[SettingsFacts]{
			Name:     "retention-threshold",
			Priority: 6,
			When:     func(f SettingsFacts) bool { return f.RetentionMinDays > 0 },
			Then: func(f SettingsFacts, out *rules.Outcome) rules.Signal {
				r := f.Settings.Retention
				if r.AuditDays > 0 && r.AuditDays < f.RetentionMinDays {
					out.Warn(fmt.Sprintf("audit retention of %d days is below %d", r.AuditDays, f.RetentionMinDays))
				}
				if r.RequestsDays > 0 && r.RequestsDays < f.RetentionMinDays {
					out.Warn(fmt.Sprintf("request retention of %d days is below %d", r.RequestsDays, f.RetentionMinDays))
				}
				return rules.Continue
			},
		},
	)
}

// SettingsRules adapts the settings engine to a typed check. Warnings are
// logged and never fail validation.
func SettingsRules(engine *rules.Engine[SettingsFacts], retentionMinDays int, logger interfaces.Logger) validation.Check[*entities.RegistrySettings] {
	return validation.CheckFunc[*entities.RegistrySettings](
		func(s *entities.RegistrySettings, path string, vctx entities.ValidationContext) entities.ErrorSet {
			out := engine.Run(SettingsFacts{
				Settings:         s,
				File:             path,
				Context:          vctx,
				RetentionMinDays: retentionMinDays,
			})
			for _, w := range out.Warnings {
				logger.Warn(w, interfaces.F("type", vctx.Type), interfaces.F("file", path))
			}
			return out.Errors
		})
}
