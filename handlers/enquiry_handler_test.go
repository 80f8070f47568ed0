package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
)

func newEnquiryApp(userEmail, shopEmail string) *fiber.App {
	app := fiber.New()
	app.Post("/enquiries", authAs(userEmail, "User"), CreateEnquiry)
	app.Get("/enquiries/me", authAs(userEmail, "User"), GetUserEnquiries)
	app.Delete("/enquiries/:enquiryId", authAs(userEmail, "User"), DeleteEnquiry)
	app.Get("/shop/enquiries", authAs(shopEmail, "Shop"), GetShopEnquiries)
	app.Put("/shop/enquiries/:enquiryId", authAs(shopEmail, "Shop"), ReplyEnquiry)
	return app
}

func TestEnquiryLifecycle(t *testing.T) {
	setupTestDB(t)

	user := seedUser(t, "alice@example.com")
	app := newEnquiryApp(user.Email, "glam@example.com")

	resp, created := doJSON(t, app, "POST", "/enquiries",
		map[string]string{"parlor_email": "glam@example.com", "user_message": "Do you do bridal packages?"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "new", created["status"])
	enquiryID, _ := created["id"].(string)
	require.NotEmpty(t, enquiryID)

	resp = doGet(t, app, "/shop/enquiries")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var forShop []map[string]interface{}
	decodeList(t, resp, &forShop)
	require.Len(t, forShop, 1)

	resp, _ = doJSON(t, app, "PUT", "/shop/enquiries/"+enquiryID,
		map[string]string{"sp_message": "Yes, from 5000 INR."}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.Enquiry
	require.NoError(t, database.DB.First(&saved, "id = ?", enquiryID).Error)
	assert.Equal(t, "Yes, from 5000 INR.", saved.SpMessage)
	assert.Equal(t, "approved", saved.Status)

	// a different shop cannot reply
	other := newEnquiryApp(user.Email, "other@example.com")
	resp, _ = doJSON(t, other, "PUT", "/shop/enquiries/"+enquiryID,
		map[string]string{"sp_message": "mine now"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, "DELETE", "/enquiries/"+enquiryID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Enquiry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteEnquiryScopedToOwner(t *testing.T) {
	setupTestDB(t)

	owner := seedUser(t, "alice@example.com")
	stranger := seedUser(t, "bob@example.com")

	enquiry := models.Enquiry{UserID: owner.ID, ParlorEmail: "glam@example.com", Email: owner.Email, UserMessage: "hi"}
	require.NoError(t, database.DB.Create(&enquiry).Error)

	app := newEnquiryApp(stranger.Email, "glam@example.com")
	resp, _ := doJSON(t, app, "DELETE", "/enquiries/"+enquiry.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
