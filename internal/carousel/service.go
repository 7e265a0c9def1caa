package carousel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
)

const imageUploadPrefix = "carousel"

// SlideView is one homepage carousel entry.
type SlideView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImagePath string    `json:"image_path"`
	LinkURL   *string   `json:"link_url,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateParams carries an admin slide upload. Image is the file stream.
type CreateParams struct {
	Title     string
	Image     io.Reader
	ImageName string
	LinkURL   *string
	Position  int
}

// Service manages the homepage carousel.
type Service interface {
	List(ctx context.Context) ([]SlideView, error)
	Create(ctx context.Context, params CreateParams) (*SlideView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type imageStore interface {
	Save(prefix, originalName string, src io.Reader) (string, error)
	Remove(rel string) error
}

type service struct {
	repo  Repository
	store imageStore
	logg  *logger.Logger
}

// ServiceParams bundles the dependencies required to build a carousel service.
type ServiceParams struct {
	Repo    Repository
	Storage imageStore
	Logger  *logger.Logger
}

// NewService constructs a carousel service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("carousel repository is required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("image store is required")
	}
	return &service{repo: params.Repo, store: params.Storage, logg: params.Logger}, nil
}

func (s *service) List(ctx context.Context) ([]SlideView, error) {
	slides, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list carousel slides")
	}

	views := make([]SlideView, 0, len(slides))
	for _, slide := range slides {
		views = append(views, toSlideView(slide))
	}
	return views, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*SlideView, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if params.Image == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slide image is required")
	}

	imagePath, err := s.store.Save(imageUploadPrefix, params.ImageName, params.Image)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store slide image")
	}

	slide := models.CarouselSlide{
		Title:     strings.TrimSpace(params.Title),
		ImagePath: imagePath,
		LinkURL:   params.LinkURL,
		Position:  params.Position,
	}
	if err := s.repo.Create(ctx, &slide); err != nil {
		if removeErr := s.store.Remove(imagePath); removeErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "failed to remove orphaned slide image")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create carousel slide")
	}

	view := toSlideView(slide)
	return &view, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	slide, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "carousel slide not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find carousel slide")
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete carousel slide")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "carousel slide not found")
	}

	// the row is gone either way, a leftover file is only worth a warning
	if err := s.store.Remove(slide.ImagePath); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to remove slide image")
	}
	return nil
}

func toSlideView(slide models.CarouselSlide) SlideView {
	return SlideView{
		ID:        slide.ID,
		Title:     slide.Title,
		ImagePath: slide.ImagePath,
		LinkURL:   slide.LinkURL,
		Position:  slide.Position,
		CreatedAt: slide.CreatedAt,
	}
}
