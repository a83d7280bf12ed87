package model

import "time"

// Course represents a catalog course.
type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Hours        int       `json:"hours"`
	Instructor   string    `json:"instructor"`
	CreatorEmail string    `json:"creatorEmail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CourseWithEvaluations is the read-only composite returned by the course
// detail endpoint. It is never persisted; the derived fields are recomputed
// whenever the underlying evaluation set changes.
type CourseWithEvaluations struct {
	Course
	Evaluations      []Evaluation `json:"evaluations"`
	AverageRating    float64      `json:"averageRating"`
	TotalEvaluations int          `json:"totalEvaluations"`
}

// CourseSummary is the list-view row: a course plus its rating aggregate,
// without the evaluation bodies.
type CourseSummary struct {
	Course
	AverageRating    float64 `json:"averageRating"`
	TotalEvaluations int     `json:"totalEvaluations"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"required"`
	Hours       int    `json:"hours" binding:"required,gt=0"`
	Instructor  string `json:"instructor" binding:"required,min=2,max=100"`
}

// UpdateCourseRequest is the payload for updating a course.
type UpdateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"required"`
	Hours       int    `json:"hours" binding:"required,gt=0"`
	Instructor  string `json:"instructor" binding:"required,min=2,max=100"`
}
