package model

// RequiredSubject is one (subject, required grade) pair a course demands.
// Courses preserve the order requirements were entered in.
type RequiredSubject struct {
	Subject       string
	RequiredGrade string
}

// Course is the enriched, read-only course record the engine scores
// against. Every enrichment field is a pointer so a missing value is
// distinguishable from a zero value — each scorer defines its own
// neutral default for an absent field.
type Course struct {
	CourseID         string
	UniversityID     string
	Name             string
	RequiredSubjects []RequiredSubject
	CAHCodes         []string
	AnnualFee        *int
	UniversityRegion *string
	UniversityCity   *string
	UniversityRank   *int
	EmploymentRate   *float64
}

// CandidateFilter narrows the set of courses the reader fetches. All
// fields are optional; a zero value means "no filter".
type CandidateFilter struct {
	SubjectKeyword string
	University     string
	MaxFee         *int
	Limit          int
}
