package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/aTrapDeer/portfolio/internal/models"
)

// GormStore implements Store using GORM on sqlite or Postgres.
type GormStore struct {
	db *gorm.DB
}

// Open picks the driver from dsn: Postgres URLs and keyword DSNs go to
// Postgres, anything else is a sqlite database path. Tables are created on
// first use.
func Open(dsn string) (*GormStore, error) {
	return openWithLog(dsn, os.Stderr)
}

// newLogger reports slow queries and errors to w. Missing records are
// ordinary 404s and are not logged.
func newLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func openWithLog(dsn string, logOut io.Writer) (*GormStore, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(logOut),
	}
	isSQLite := !isPostgresDSN(dsn)

	var dialector gorm.Dialector
	if isSQLite {
		dialector = sqlite.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if isSQLite {
		// sqlite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func byDisplayOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrDuplicate, err)}
	}
	return wrap(op, err)
}

// first loads the record with id into dst. It reports false when the record
// does not exist.
func first[T any](ctx context.Context, db *gorm.DB, op string, id any, conds ...any) (T, bool, error) {
	var rec T
	tx := db.WithContext(ctx)
	var err error
	if len(conds) > 0 {
		err = tx.Where(conds[0], conds[1:]...).First(&rec).Error
	} else {
		err = tx.First(&rec, id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, false, nil
		}
		return rec, false, wrap(op, err)
	}
	return rec, true, nil
}

func find[T any](ctx context.Context, tx *gorm.DB, op string) ([]T, error) {
	recs := make([]T, 0)
	if err := tx.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, wrap(op, err)
	}
	return recs, nil
}

func create[T any](ctx context.Context, db *gorm.DB, op string, rec T) (T, error) {
	if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
		var zero T
		return zero, translate(op, err)
	}
	return rec, nil
}

// update reads the current record, applies the patch and saves it back.
func update[T any](ctx context.Context, db *gorm.DB, op string, id uint, apply func(*T)) (T, bool, error) {
	rec, ok, err := first[T](ctx, db, op, id)
	if err != nil || !ok {
		return rec, ok, err
	}
	apply(&rec)
	if err := db.WithContext(ctx).Save(&rec).Error; err != nil {
		var zero T
		return zero, false, translate(op, err)
	}
	return rec, true, nil
}

func remove[T any](ctx context.Context, db *gorm.DB, op string, id uint) error {
	var rec T
	return wrap(op, db.WithContext(ctx).Delete(&rec, id).Error)
}

// users

func (s *GormStore) GetUser(ctx context.Context, id uint) (models.User, bool, error) {
	return first[models.User](ctx, s.db, "get user", id)
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (models.User, bool, error) {
	return first[models.User](ctx, s.db, "get user by username", nil, "username = ?", username)
}

func (s *GormStore) CreateUser(ctx context.Context, in models.NewUser) (models.User, error) {
	return create(ctx, s.db, "create user", in.Record())
}

// contact messages

// ListContactMessages returns messages oldest first.
func (s *GormStore) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return find[models.ContactMessage](ctx, s.db.Order("created_at ASC").Order("id ASC"), "list contact messages")
}

func (s *GormStore) GetContactMessage(ctx context.Context, id uint) (models.ContactMessage, bool, error) {
	return first[models.ContactMessage](ctx, s.db, "get contact message", id)
}

func (s *GormStore) CreateContactMessage(ctx context.Context, in models.NewContactMessage) (models.ContactMessage, error) {
	return create(ctx, s.db, "create contact message", in.Record())
}

// MarkContactMessageRead sets the read flag. Unknown ids are ignored.
func (s *GormStore) MarkContactMessageRead(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("read", true).Error
	return wrap("mark contact message read", err)
}

// skills

func (s *GormStore) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return find[models.Skill](ctx, byDisplayOrder(s.db), "list skills")
}

func (s *GormStore) GetSkill(ctx context.Context, id uint) (models.Skill, bool, error) {
	return first[models.Skill](ctx, s.db, "get skill", id)
}

func (s *GormStore) CreateSkill(ctx context.Context, in models.NewSkill) (models.Skill, error) {
	return create(ctx, s.db, "create skill", in.Record())
}

func (s *GormStore) UpdateSkill(ctx context.Context, id uint, patch models.SkillPatch) (models.Skill, bool, error) {
	return update(ctx, s.db, "update skill", id, patch.Apply)
}

func (s *GormStore) DeleteSkill(ctx context.Context, id uint) error {
	return remove[models.Skill](ctx, s.db, "delete skill", id)
}

// projects

func (s *GormStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	return find[models.Project](ctx, byDisplayOrder(s.db), "list projects")
}

func (s *GormStore) ListProjectsByCategory(ctx context.Context, category string) ([]models.Project, error) {
	return find[models.Project](ctx, byDisplayOrder(s.db.Where("category = ?", category)), "list projects by category")
}

func (s *GormStore) GetProject(ctx context.Context, id uint) (models.Project, bool, error) {
	return first[models.Project](ctx, s.db, "get project", id)
}

func (s *GormStore) CreateProject(ctx context.Context, in models.NewProject) (models.Project, error) {
	return create(ctx, s.db, "create project", in.Record())
}

func (s *GormStore) UpdateProject(ctx context.Context, id uint, patch models.ProjectPatch) (models.Project, bool, error) {
	return update(ctx, s.db, "update project", id, patch.Apply)
}

func (s *GormStore) DeleteProject(ctx context.Context, id uint) error {
	return remove[models.Project](ctx, s.db, "delete project", id)
}

// milestones

func (s *GormStore) ListMilestones(ctx context.Context) ([]models.Milestone, error) {
	return find[models.Milestone](ctx, byDisplayOrder(s.db), "list milestones")
}

func (s *GormStore) GetMilestone(ctx context.Context, id uint) (models.Milestone, bool, error) {
	return first[models.Milestone](ctx, s.db, "get milestone", id)
}

func (s *GormStore) CreateMilestone(ctx context.Context, in models.NewMilestone) (models.Milestone, error) {
	return create(ctx, s.db, "create milestone", in.Record())
}

func (s *GormStore) UpdateMilestone(ctx context.Context, id uint, patch models.MilestonePatch) (models.Milestone, bool, error) {
	return update(ctx, s.db, "update milestone", id, patch.Apply)
}

func (s *GormStore) DeleteMilestone(ctx context.Context, id uint) error {
	return remove[models.Milestone](ctx, s.db, "delete milestone", id)
}
