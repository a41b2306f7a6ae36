package courses

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Courses is the catalog store. Every write is scoped to the creating
// admin; the ownership rule lives here, in the query shape, not in a
// separate existence check.
type Courses interface {
	Create(ctx context.Context, course *Course) (*Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	UpdateOwned(ctx context.Context, courseID, adminID uuid.UUID, fields CourseUpdate) (*Course, error)
	ListByCreator(ctx context.Context, adminID uuid.UUID) ([]*Course, error)
	ListAll(ctx context.Context) ([]*Course, error)
}

// CourseUpdate carries the mutable course fields for an ownership-scoped
// update. Nil means "leave unchanged". CreatorID is not here on purpose;
// it is immutable after creation.
type CourseUpdate struct {
	Title       *string
	Description *string
	ImageURL    *string
	Price       *float64
}

func (u CourseUpdate) isZero() bool {
	return u.Title == nil && u.Description == nil && u.ImageURL == nil && u.Price == nil
}

type coursesRepo struct {
	db *bun.DB
}

var _ Courses = (*coursesRepo)(nil)

// NewCoursesRepository creates a new catalog repository
func NewCoursesRepository(db *bun.DB) Courses {
	return &coursesRepo{db: db}
}

func (r *coursesRepo) Create(ctx context.Context, course *Course) (*Course, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(course).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create course")
	}

	return course, nil
}

func (r *coursesRepo) GetByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	course := &Course{}
	err := r.db.NewSelect().
		Model(course).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("course not found", errors.CategoryNotFound).
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not load course")
	}

	return course, nil
}

// UpdateOwned applies fields to the course in a single conditional UPDATE
// matched on both the course id and creator_id. Zero matched rows comes
// back as ErrForbidden whether the course belongs to another admin or does
// not exist at all; splitting those cases would leak catalog contents and
// reintroduce a check-then-act race.
func (r *coursesRepo) UpdateOwned(ctx context.Context, courseID, adminID uuid.UUID, fields CourseUpdate) (*Course, error) {
	if fields.isZero() {
		return r.getOwned(ctx, courseID, adminID)
	}

	q := r.db.NewUpdate().
		Model((*Course)(nil)).
		Set("updated_at = ?", time.Now())

	if fields.Title != nil {
		q = q.Set("title = ?", *fields.Title)
	}
	if fields.Description != nil {
		q = q.Set("description = ?", *fields.Description)
	}
	if fields.ImageURL != nil {
		q = q.Set("image_url = ?", *fields.ImageURL)
	}
	if fields.Price != nil {
		q = q.Set("price = ?", *fields.Price)
	}

	res, err := q.
		Where("id = ?", courseID).
		Where("creator_id = ?", adminID).
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not update course")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not read update result")
	}

	if affected == 0 {
		return nil, ErrForbidden
	}

	return r.getOwned(ctx, courseID, adminID)
}

func (r *coursesRepo) getOwned(ctx context.Context, courseID, adminID uuid.UUID) (*Course, error) {
	course := &Course{}
	err := r.db.NewSelect().
		Model(course).
		Where("?TableAlias.id = ?", courseID).
		Where("?TableAlias.creator_id = ?", adminID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrForbidden
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not load course")
	}

	return course, nil
}

func (r *coursesRepo) ListByCreator(ctx context.Context, adminID uuid.UUID) ([]*Course, error) {
	var records []*Course
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.creator_id = ?", adminID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return []*Course{}, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not list courses")
	}

	if records == nil {
		records = []*Course{}
	}

	return records, nil
}

func (r *coursesRepo) ListAll(ctx context.Context) ([]*Course, error) {
	var records []*Course
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return []*Course{}, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not list courses")
	}

	if records == nil {
		records = []*Course{}
	}

	return records, nil
}
