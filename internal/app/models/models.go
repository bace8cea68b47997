package models

// SortCriterion selects the ordering for roster listings.
type SortCriterion string

const (
	SortByIdentifier SortCriterion = "identifier"
	SortBySurname    SortCriterion = "surname"
	SortByFirstName  SortCriterion = "firstName"
	SortByProgram    SortCriterion = "program"
)

// ParseSortCriterion maps a query-string value to a SortCriterion,
// falling back to identifier ordering for unknown values.
func ParseSortCriterion(s string) SortCriterion {
	switch SortCriterion(s) {
	case SortBySurname, SortByFirstName, SortByProgram:
		return SortCriterion(s)
	default:
		return SortByIdentifier
	}
}
