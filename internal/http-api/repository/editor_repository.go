package repository

import (
	"musicbrainz/internal/http-api/models"

	"gorm.io/gorm"
)

// EditorRepository defines the interface for editor account operations.
type EditorRepository interface {
	Create(editor *models.Editor) error
	FindByName(name string) (*models.Editor, error)
	FindByID(id string) (*models.Editor, error)
	FindByEmail(email string) (*models.Editor, error)
}

type editorRepository struct {
	db *gorm.DB
}

func NewEditorRepository(db *gorm.DB) EditorRepository {
	return &editorRepository{db: db}
}

func (r *editorRepository) Create(editor *models.Editor) error {
	return r.db.Create(editor).Error
}

func (r *editorRepository) FindByName(name string) (*models.Editor, error) {
	var editor models.Editor
	// return nil on error rather than a zero-value struct so callers can't
	// mistake "not found" for a real row
	if err := r.db.Where("name = ?", name).First(&editor).Error; err != nil {
		return nil, err
	}
	return &editor, nil
}

func (r *editorRepository) FindByID(id string) (*models.Editor, error) {
	var editor models.Editor
	if err := r.db.First(&editor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &editor, nil
}

func (r *editorRepository) FindByEmail(email string) (*models.Editor, error) {
	var editor models.Editor
	if err := r.db.Where("email = ?", email).First(&editor).Error; err != nil {
		return nil, err
	}
	return &editor, nil
}
