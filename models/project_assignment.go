package models

import "time"

// ProjectAssignment links a user to a project. A user is assigned to a
// given project at most once.
type ProjectAssignment struct {
	ID         int64     `json:"id" db:"id"`
	ProjectID  int64     `json:"project_id" db:"project_id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
}

// TableName returns the table name for the ProjectAssignment model
func (ProjectAssignment) TableName() string {
	return "project_assignments"
}

// NewProjectAssignment creates a new ProjectAssignment instance
func NewProjectAssignment(projectID, userID int64) *ProjectAssignment {
	return &ProjectAssignment{
		ProjectID:  projectID,
		UserID:     userID,
		AssignedAt: time.Now(),
	}
}
