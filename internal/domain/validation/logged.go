package validation

import (
	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces"
)

type loggedValidator struct {
	name   string
	next   Validator
	logger interfaces.Logger
}

// Logged wraps a validator and logs its outcome without altering it
func Logged(name string, next Validator, logger interfaces.Logger) Validator {
	return &loggedValidator{name: name, next: next, logger: logger}
}

func (l *loggedValidator) Validate(path string, vctx entities.ValidationContext) entities.ErrorSet {
	errs := l.next.Validate(path, vctx)
	if errs.Empty() {
		l.logger.Info("artifact is valid",
			interfaces.F("validator", l.name),
			interfaces.F("type", vctx.Type),
			interfaces.F("file", path))
		return errs
	}

	for _, e := range errs.Sorted() {
		fields := []interfaces.Field{
			interfaces.F("validator", l.name),
			interfaces.F("type", e.Type),
			interfaces.F("file", e.File),
		}
		if e.Cause != "" {
			fields = append(fields, interfaces.F("cause", e.Cause))
		}
		l.logger.Error(e.Message, fields...)
	}
	return errs
}
