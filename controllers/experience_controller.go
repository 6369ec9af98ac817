package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"myplan-backend/services"
	"myplan-backend/utils"
)

// ExperienceController is the admin CRUD surface for the experience catalog.
// Create and Update take multipart form data so images upload in the same
// request.
type ExperienceController struct {
	Service *services.ExperienceService
}

func NewExperienceController(service *services.ExperienceService) *ExperienceController {
	return &ExperienceController{Service: service}
}

// Index lists experiences, optionally filtered by ?category=.
func (ec *ExperienceController) Index(c *gin.Context) {
	experiences, err := ec.Service.List(c.Query("category"))
	if err != nil {
		utils.RespondServiceError(c, err, "experience list")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, experiences)
}

// Show returns one experience with details, images and reviews.
func (ec *ExperienceController) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}

	experience, err := ec.Service.Get(uint(id))
	if err != nil {
		utils.RespondServiceError(c, err, "experience show")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, experience)
}

// parseExperienceForm reads the multipart fields shared by Create and Update.
// The schedule slots arrive as a JSON array in the "details" field.
func parseExperienceForm(c *gin.Context) (services.ExperienceInput, error) {
	var input services.ExperienceInput

	input.Title = strings.TrimSpace(c.PostForm("title"))
	input.Description = c.PostForm("description")
	input.Type = strings.TrimSpace(c.PostForm("type"))
	input.Location = strings.TrimSpace(c.PostForm("location"))

	if v := c.PostForm("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			input.MinPrice = f
		}
	}
	if v := c.PostForm("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			input.MaxPrice = f
		}
	}
	if v := c.PostForm("max_capacity"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			input.MaxCapacity = n
		}
	}
	if v := c.PostForm("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			input.StartDate = &t
		}
	}
	if v := c.PostForm("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			input.EndDate = &t
		}
	}
	if v := c.PostForm("lat"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			input.Lat = &f
		}
	}
	if v := c.PostForm("lng"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			input.Lng = &f
		}
	}

	if raw := c.PostForm("details"); raw != "" {
		var details []struct {
			ID        uint    `json:"id"`
			Date      string  `json:"date"`
			StartTime string  `json:"start_time"`
			Price     float64 `json:"price"`
		}
		if err := json.Unmarshal([]byte(raw), &details); err != nil {
			return input, err
		}
		for _, d := range details {
			di := services.DetailInput{ID: d.ID, StartTime: d.StartTime, Price: d.Price}
			if d.Date != "" {
				if t, err := time.Parse("2006-01-02", d.Date); err == nil {
					di.Date = &t
				}
			}
			input.Details = append(input.Details, di)
		}
	}

	return input, nil
}

func saveExperienceImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	var paths []string
	for _, file := range form.File["images"] {
		path, err := utils.SaveUploadedImage(file, "experiences")
		if err != nil {
			for _, p := range paths {
				utils.DeleteUploadedFile(p)
			}
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Create adds an experience with its slots and images.
func (ec *ExperienceController) Create(c *gin.Context) {
	input, err := parseExperienceForm(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "details must be a JSON array")
		return
	}

	imagePaths, err := saveExperienceImages(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	experience, err := ec.Service.Create(input, imagePaths)
	if err != nil {
		for _, p := range imagePaths {
			utils.DeleteUploadedFile(p)
		}
		utils.RespondServiceError(c, err, "experience create")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, experience)
}

// Update edits an experience. New slots append; existing slots stay put.
func (ec *ExperienceController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}

	input, err := parseExperienceForm(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "details must be a JSON array")
		return
	}

	imagePaths, err := saveExperienceImages(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	experience, err := ec.Service.Update(uint(id), input, imagePaths)
	if err != nil {
		for _, p := range imagePaths {
			utils.DeleteUploadedFile(p)
		}
		utils.RespondServiceError(c, err, "experience update")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, experience)
}

// Delete removes an experience and cleans up its image files best-effort.
func (ec *ExperienceController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}

	imagePaths, err := ec.Service.Delete(uint(id))
	if err != nil {
		utils.RespondServiceError(c, err, "experience delete")
		return
	}

	for _, p := range imagePaths {
		utils.DeleteUploadedFile(p)
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "experience deleted"})
}

// DeleteImage removes a single gallery image.
func (ec *ExperienceController) DeleteImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("imageId"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid image id")
		return
	}

	path, err := ec.Service.DeleteImage(uint(id))
	if err != nil {
		utils.RespondServiceError(c, err, "experience image delete")
		return
	}
	if path != "" {
		utils.DeleteUploadedFile(path)
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "image deleted"})
}
