package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"myplan-backend/models"
	"myplan-backend/utils"
)

// ExperienceService manages the admin experience catalog: the experience row,
// its schedule details and its image gallery.
type ExperienceService struct {
	DB *gorm.DB
}

func NewExperienceService(db *gorm.DB) *ExperienceService {
	return &ExperienceService{DB: db}
}

// DetailInput is one schedule slot in an experience payload. A zero ID means
// a new slot; existing slots are never rewritten through this path.
type DetailInput struct {
	ID        uint       `json:"id"`
	Date      *time.Time `json:"date"`
	StartTime string     `json:"start_time"`
	Price     float64    `json:"price"`
}

// ExperienceInput carries the validated create/update payload.
type ExperienceInput struct {
	Title       string
	Description string
	Type        string
	Location    string
	MinPrice    float64
	MaxPrice    float64
	StartDate   *time.Time
	EndDate     *time.Time
	MaxCapacity int
	Lat         *float64
	Lng         *float64
	Details     []DetailInput
}

// List returns experiences with their details and images, optionally filtered
// by category.
func (s *ExperienceService) List(category string) ([]models.Experience, error) {
	query := s.DB.Preload("Details").Preload("Images")
	if category != "" {
		query = query.Where("type = ?", category)
	}

	var experiences []models.Experience
	err := query.Order("added_at DESC").Find(&experiences).Error
	return experiences, err
}

// Get loads one experience with details, images and reviews.
func (s *ExperienceService) Get(id uint) (*models.Experience, error) {
	var experience models.Experience
	err := s.DB.
		Preload("Details").
		Preload("Images").
		Preload("Reviews").
		Preload("Reviews.Visitor").Preload("Reviews.Visitor.User").
		First(&experience, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: experience not found", utils.ErrNotFound)
		}
		return nil, err
	}
	return &experience, nil
}

// Create inserts the experience with its initial slots and images in one
// transaction.
func (s *ExperienceService) Create(input ExperienceInput, imagePaths []string) (*models.Experience, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", utils.ErrValidation)
	}

	experience := models.Experience{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Location:    input.Location,
		MinPrice:    input.MinPrice,
		MaxPrice:    input.MaxPrice,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		MaxCapacity: input.MaxCapacity,
		Lat:         input.Lat,
		Lng:         input.Lng,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&experience).Error; err != nil {
			return err
		}
		for _, d := range input.Details {
			detail := models.ExperienceDetail{
				ExperienceID: experience.ID,
				Date:         d.Date,
				StartTime:    d.StartTime,
				Price:        d.Price,
				Status:       models.DetailActive,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}
		for _, path := range imagePaths {
			image := models.Image{ExperienceID: &experience.ID, Attachment: path}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(experience.ID)
}

// Update rewrites the experience fields and appends new slots and images.
// Slot edits are append-only: payload rows carrying an id are ignored, the
// existing schedule is never mutated under sold bookings.
func (s *ExperienceService) Update(id uint, input ExperienceInput, imagePaths []string) (*models.Experience, error) {
	var experience models.Experience
	if err := s.DB.First(&experience, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: experience not found", utils.ErrNotFound)
		}
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":        input.Title,
			"description":  input.Description,
			"type":         input.Type,
			"location":     input.Location,
			"min_price":    input.MinPrice,
			"max_price":    input.MaxPrice,
			"start_date":   input.StartDate,
			"end_date":     input.EndDate,
			"max_capacity": input.MaxCapacity,
			"lat":          input.Lat,
			"lng":          input.Lng,
		}
		if err := tx.Model(&experience).Updates(updates).Error; err != nil {
			return err
		}

		for _, d := range input.Details {
			if d.ID != 0 {
				continue
			}
			detail := models.ExperienceDetail{
				ExperienceID: experience.ID,
				Date:         d.Date,
				StartTime:    d.StartTime,
				Price:        d.Price,
				Status:       models.DetailActive,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}

		for _, path := range imagePaths {
			image := models.Image{ExperienceID: &experience.ID, Attachment: path}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(experience.ID)
}

// Delete removes the experience with its slots and images and returns the
// stored image paths so the caller can clean up files best-effort.
func (s *ExperienceService) Delete(id uint) ([]string, error) {
	var experience models.Experience
	err := s.DB.Preload("Images").First(&experience, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: experience not found", utils.ErrNotFound)
		}
		return nil, err
	}

	paths := make([]string, 0, len(experience.Images))
	for _, img := range experience.Images {
		paths = append(paths, img.Attachment)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("experience_id = ?", experience.ID).
			Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("experience_id = ?", experience.ID).
			Delete(&models.ExperienceDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&experience).Error
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// DeleteImage removes one gallery image and returns its stored path.
func (s *ExperienceService) DeleteImage(imageID uint) (string, error) {
	var image models.Image
	if err := s.DB.First(&image, imageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("%w: image not found", utils.ErrNotFound)
		}
		return "", err
	}
	if err := s.DB.Delete(&image).Error; err != nil {
		return "", err
	}
	return image.Attachment, nil
}
