package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/database"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// PropertyHandler handles listing routes
type PropertyHandler struct {
	Properties database.PropertyStore
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties database.PropertyStore) *PropertyHandler {
	return &PropertyHandler{Properties: properties}
}

// ListProperties returns listings matching the query filters. Only
// admins see unapproved listings.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	filter := models.PropertyFilter{
		City:             c.Query("city"),
		NearbyUniversity: c.Query("university"),
		PropertyType:     c.Query("type"),
		GenderPreference: c.Query("gender"),
		ApprovedOnly:     true,
	}

	if role, exists := c.Get("role"); exists && role == models.RoleAdmin {
		filter.ApprovedOnly = false
	}

	if v := c.Query("minRent"); v != "" {
		if rent, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinRent = rent
		}
	}
	if v := c.Query("maxRent"); v != "" {
		if rent, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxRent = rent
		}
	}

	props, err := h.Properties.FindProperties(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, props)
}

// GetProperty returns one listing by id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("propertyID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	prop, err := h.Properties.GetPropertyByID(c.Request.Context(), id)
	if err == database.ErrPropertyNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve property"})
		return
	}
	c.JSON(http.StatusOK, prop)
}

// CreateProperty adds a new listing for the authenticated owner. It
// starts unapproved and invisible to students until an admin approves
// it.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	role, _ := c.Get("role")
	if role != models.RoleOwner && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only owners can create listings"})
		return
	}

	var req models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prop := &models.Property{
		OwnerID:          userID,
		Title:            req.Title,
		Description:      req.Description,
		PropertyType:     req.PropertyType,
		City:             req.City,
		Area:             req.Area,
		NearbyUniversity: req.NearbyUniversity,
		MonthlyRent:      req.MonthlyRent,
		GenderPreference: req.GenderPreference,
		Amenities:        req.Amenities,
		Images:           req.Images,
	}

	prop, err := h.Properties.InsertProperty(c.Request.Context(), prop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}
	c.JSON(http.StatusCreated, prop)
}

// ApproveProperty flips a listing's approval state. Admin only.
func (h *PropertyHandler) ApproveProperty(c *gin.Context) {
	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin only"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("propertyID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	var body struct {
		Approved bool `json:"approved"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Properties.SetPropertyApproved(c.Request.Context(), id, body.Approved); err != nil {
		if err == database.ErrPropertyNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property updated"})
}
