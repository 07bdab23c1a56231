package report

import (
	"github.com/sitecrew/sitelog/internal/domain"
)

// Field keys used in the validation error map. They match the wire names of
// the report query parameters so the UI can attach messages inline.
const (
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)

// ValidateRange checks a report window against the project's lifecycle
// bounds and returns a field→message map. The map is advisory: a non-empty
// result does not stop the window from being computed or displayed, it only
// tells the caller which inputs to flag. Callers that must not aggregate an
// out-of-bounds window check FieldErrors.Any themselves.
//
// A project with no bounds set validates everything.
func ValidateRange(r domain.DateRange, project domain.Project) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if !project.StartDate.IsZero() && Day(r.Start).Before(Day(project.StartDate)) {
		errs[FieldStartDate] = "cannot be before project start date"
	}
	if project.EndDate != nil && Day(r.End).After(Day(*project.EndDate)) {
		errs[FieldEndDate] = "cannot be after project deadline"
	}

	return errs
}
