package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	entity "skillswap/internal/domain"
	service "skillswap/internal/service/postgresql"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GET /api/profile
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	accountID := c.MustGet("account_id").(int64)

	profile, err := h.profileService.GetOwnProfile(accountID)
	if err != nil {
		if errors.Is(err, entity.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logrus.WithError(err).Error("error fetching own profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GET /api/profile/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return
	}

	view, err := h.profileService.GetProfile(profileID)
	if err != nil {
		if errors.Is(err, entity.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logrus.WithError(err).Error("error fetching profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	accountID := c.MustGet("account_id").(int64)

	var input entity.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skills"})
		return
	}

	if err := h.profileService.UpdateProfile(accountID, input); err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidSkills):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skills"})
		case errors.Is(err, entity.ErrInvalidLangs):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid languages"})
		case errors.Is(err, entity.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		default:
			logrus.WithError(err).Error("error updating profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// GET /api/profiles. Small sample for the landing view.
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	views, err := h.profileService.ListProfiles()
	if err != nil {
		logrus.WithError(err).Error("error fetching profiles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /api/search?query=
func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	views, err := h.profileService.SearchProfiles(c.Query("query"))
	if err != nil {
		logrus.WithError(err).Error("error searching profiles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /api/profile/skills/:id
func (h *ProfileHandler) GetProfileSkills(c *gin.Context) {
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return
	}

	skills, err := h.profileService.GetSkills(profileID)
	if err != nil {
		logrus.WithError(err).Error("error fetching profile skills")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, skills)
}
