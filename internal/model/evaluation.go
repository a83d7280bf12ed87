package model

import "time"

// Evaluation is a star-rated review a student leaves on a course. A student
// may leave more than one evaluation per course.
type Evaluation struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"courseId"`
	StudentEmail string    `json:"studentEmail"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateEvaluationRequest is the payload for submitting an evaluation.
// Rating is constrained to the closed 1..5 range.
type CreateEvaluationRequest struct {
	CourseID    string `json:"courseId" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"required"`
}
