package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/auth"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// setupPropertyRouter injects the given identity the way the auth
// middleware would; a zero userID leaves the request anonymous.
func setupPropertyRouter(store *MockStore, userID primitive.ObjectID, role models.Role) *gin.Engine {
	handler := NewPropertyHandler(store)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	identity := func(c *gin.Context) {
		if !userID.IsZero() {
			c.Set("userID", userID)
			c.Set("role", role)
		}
		c.Next()
	}
	router.GET("/properties", identity, handler.ListProperties)
	router.POST("/properties", identity, handler.CreateProperty)
	router.PUT("/properties/:propertyID/approval", identity, handler.ApproveProperty)
	return router
}

func TestListProperties_AnonymousSeesApprovedOnly(t *testing.T) {
	store := new(MockStore)
	store.On("FindProperties", mock.Anything, mock.MatchedBy(func(f models.PropertyFilter) bool {
		return f.ApprovedOnly && f.City == "Lahore" && f.MinRent == 10000
	})).Return([]*models.Property{
		{ID: primitive.NewObjectID(), Title: "Hostel near LUMS", City: "Lahore", Approved: true},
	}, nil)
	router := setupPropertyRouter(store, primitive.NilObjectID, "")

	req := httptest.NewRequest(http.MethodGet, "/properties?city=Lahore&minRent=10000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

// setupPublicListingRoute registers the listing route the way the
// server does: public, with session resolution but no auth gate.
func setupPublicListingRoute(store *MockStore) *gin.Engine {
	handler := NewPropertyHandler(store)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/properties", OptionalAuthMiddleware(), handler.ListProperties)
	return router
}

func TestListProperties_PublicRouteResolvesAdminSession(t *testing.T) {
	auth.InitJWTKey([]byte("test-secret-key-for-handler-tests"))

	admin := &models.User{
		ID:   primitive.NewObjectID(),
		Name: "RoomMatch Support",
		Role: models.RoleAdmin,
	}
	token, _, err := auth.GenerateToken(admin, time.Hour)
	assert.NoError(t, err)

	store := new(MockStore)
	store.On("FindProperties", mock.Anything, mock.MatchedBy(func(f models.PropertyFilter) bool {
		return !f.ApprovedOnly
	})).Return([]*models.Property{}, nil)
	router := setupPublicListingRoute(store)

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestListProperties_PublicRouteWithoutSessionStaysApprovedOnly(t *testing.T) {
	auth.InitJWTKey([]byte("test-secret-key-for-handler-tests"))

	approvedOnly := func(f models.PropertyFilter) bool { return f.ApprovedOnly }

	t.Run("anonymous", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindProperties", mock.Anything, mock.MatchedBy(approvedOnly)).
			Return([]*models.Property{}, nil)
		router := setupPublicListingRoute(store)

		req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		store.AssertExpectations(t)
	})

	t.Run("garbage token still serves the public view", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindProperties", mock.Anything, mock.MatchedBy(approvedOnly)).
			Return([]*models.Property{}, nil)
		router := setupPublicListingRoute(store)

		req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
		req.Header.Set("Authorization", "Bearer not.a.valid.token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		store.AssertExpectations(t)
	})
}

func TestCreateProperty_StudentForbidden(t *testing.T) {
	router := setupPropertyRouter(new(MockStore), primitive.NewObjectID(), models.RoleStudent)

	body, _ := json.Marshal(map[string]any{
		"title":        "Room in shared apartment",
		"description":  "Near campus",
		"propertyType": "room",
		"city":         "Karachi",
		"area":         "Gulshan",
		"monthlyRent":  12000,
	})
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateProperty_OwnerListingStartsUnapproved(t *testing.T) {
	ownerID := primitive.NewObjectID()
	store := new(MockStore)
	store.On("InsertProperty", mock.Anything, mock.MatchedBy(func(p *models.Property) bool {
		return p.OwnerID == ownerID && !p.Approved && p.Title == "Girls hostel near NUST"
	})).Return(&models.Property{
		ID:      primitive.NewObjectID(),
		OwnerID: ownerID,
		Title:   "Girls hostel near NUST",
	}, nil)
	router := setupPropertyRouter(store, ownerID, models.RoleOwner)

	body, _ := json.Marshal(map[string]any{
		"title":            "Girls hostel near NUST",
		"description":      "Furnished rooms with mess",
		"propertyType":     "hostel",
		"city":             "Islamabad",
		"area":             "H-12",
		"nearbyUniversity": "NUST",
		"monthlyRent":      18000,
		"genderPreference": "female",
	})
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	store.AssertExpectations(t)
}

func TestApproveProperty_AdminOnly(t *testing.T) {
	propertyID := primitive.NewObjectID()
	body, _ := json.Marshal(map[string]bool{"approved": true})

	t.Run("owner forbidden", func(t *testing.T) {
		router := setupPropertyRouter(new(MockStore), primitive.NewObjectID(), models.RoleOwner)

		req := httptest.NewRequest(http.MethodPut, "/properties/"+propertyID.Hex()+"/approval", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin approves", func(t *testing.T) {
		store := new(MockStore)
		store.On("SetPropertyApproved", mock.Anything, propertyID, true).Return(nil)
		router := setupPropertyRouter(store, primitive.NewObjectID(), models.RoleAdmin)

		req := httptest.NewRequest(http.MethodPut, "/properties/"+propertyID.Hex()+"/approval", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		store.AssertExpectations(t)
	})
}
