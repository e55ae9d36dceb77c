// Package store persists the portfolio records.
package store

import (
	"context"
	"errors"

	"github.com/aTrapDeer/portfolio/internal/models"
)

// Store defines persistence operations for every record kind.
// Lookups return ok == false when the record does not exist.
type Store interface {
	// users
	GetUser(ctx context.Context, id uint) (models.User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, bool, error)
	CreateUser(ctx context.Context, in models.NewUser) (models.User, error)

	// contact messages
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)
	GetContactMessage(ctx context.Context, id uint) (models.ContactMessage, bool, error)
	CreateContactMessage(ctx context.Context, in models.NewContactMessage) (models.ContactMessage, error)
	MarkContactMessageRead(ctx context.Context, id uint) error

	// skills
	ListSkills(ctx context.Context) ([]models.Skill, error)
	GetSkill(ctx context.Context, id uint) (models.Skill, bool, error)
	CreateSkill(ctx context.Context, in models.NewSkill) (models.Skill, error)
	UpdateSkill(ctx context.Context, id uint, patch models.SkillPatch) (models.Skill, bool, error)
	DeleteSkill(ctx context.Context, id uint) error

	// projects
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectsByCategory(ctx context.Context, category string) ([]models.Project, error)
	GetProject(ctx context.Context, id uint) (models.Project, bool, error)
	CreateProject(ctx context.Context, in models.NewProject) (models.Project, error)
	UpdateProject(ctx context.Context, id uint, patch models.ProjectPatch) (models.Project, bool, error)
	DeleteProject(ctx context.Context, id uint) error

	// milestones
	ListMilestones(ctx context.Context) ([]models.Milestone, error)
	GetMilestone(ctx context.Context, id uint) (models.Milestone, bool, error)
	CreateMilestone(ctx context.Context, in models.NewMilestone) (models.Milestone, error)
	UpdateMilestone(ctx context.Context, id uint, patch models.MilestonePatch) (models.Milestone, bool, error)
	DeleteMilestone(ctx context.Context, id uint) error

	Close() error
}

// ErrDuplicate is the cause of an Error raised by a unique constraint,
// e.g. a username that is already taken.
var ErrDuplicate = errors.New("duplicate key")

// Error wraps a failure of the underlying database.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
