package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"profileservice/internal/domain"
	"profileservice/internal/logs"
	"profileservice/internal/service"
	"profileservice/internal/storage"
	"profileservice/internal/validation"
)

// Handler wires HTTP routes to the profile service.
type Handler struct {
	users     service.ProfileService
	storage   storage.Service
	bucket    string
	keyPrefix string
	logDir    string
	jwtSecret string
}

func NewHandler(users service.ProfileService, store storage.Service, bucket, keyPrefix, logDir, jwtSecret string) *Handler {
	return &Handler{
		users:     users,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		logDir:    logDir,
		jwtSecret: jwtSecret,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/users", h.listUsers)
		api.GET("/users/lookup", h.lookupUser)
		api.GET("/users/:id", h.getUser)
		api.GET("/users/:id/exists", h.userExists)
		api.GET("/exists/email", h.emailExists)
		api.GET("/exists/username", h.usernameExists)
		api.GET("/logs/latest", h.latestLog)

		mutating := api.Group("")
		if h.jwtSecret != "" {
			mutating.Use(authMiddleware(h.jwtSecret))
		}
		mutating.POST("/users", h.createUser)
		mutating.PUT("/users/:id", h.updateUser)
		mutating.DELETE("/users/:id", h.deleteUser)
		mutating.DELETE("/users/:id/profile", h.deleteUserProfile)
		mutating.POST("/users/:id/picture", h.uploadPicture)
	}
}

type createUserRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Email              string `json:"email"`
	Name               string `json:"name"`
	Surname            string `json:"surname"`
	Username           string `json:"username"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Phonenumber        string `json:"phonenumber"`
	Picture            string `json:"picture"`
	ZipCode            string `json:"zip_code"`
	PersonalCodeNumber string `json:"personal_code_number"`
}

type UserResponse struct {
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Surname            string `json:"surname"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Phonenumber        string `json:"phonenumber"`
	Picture            string `json:"picture"`
	ZipCode            string `json:"zip_code"`
	PersonalCodeNumber string `json:"personal_code_number"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alive": h.users.IsAlive()})
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := h.users.CreateUser(c.Request.Context(), domain.NewUser{
		Email:     req.Email,
		FirstName: req.FirstName,
		Surname:   req.Surname,
		Username:  req.Username,
		Password:  req.Password,
	})
	if user == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user could not be created"})
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.users.UpdateUser(c.Request.Context(), domain.User{
		ID:                 id,
		Username:           req.Username,
		Email:              req.Email,
		Name:               req.Name,
		Surname:            req.Surname,
		Address:            req.Address,
		City:               req.City,
		Phonenumber:        req.Phonenumber,
		Picture:            req.Picture,
		ZipCode:            req.ZipCode,
		PersonalCodeNumber: req.PersonalCodeNumber,
	})
	if !result.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user could not be updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if !h.users.DeleteUser(c.Request.Context(), id) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user could not be fully deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) deleteUserProfile(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if !h.users.DeleteUserProfile(c.Request.Context(), id) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "profile could not be deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) listUsers(c *gin.Context) {
	users := h.users.GetAllUsers(c.Request.Context())
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user := h.users.GetUserByID(c.Request.Context(), id)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) lookupUser(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter key is required"})
		return
	}

	user := h.users.GetUserByUsernameOrEmail(c.Request.Context(), key)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) userExists(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": h.users.UserIDExists(c.Request.Context(), id)})
}

func (h *Handler) emailExists(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter email is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": h.users.EmailExists(c.Request.Context(), email)})
}

func (h *Handler) usernameExists(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter username is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": h.users.UsernameExists(c.Request.Context(), username)})
}

func (h *Handler) uploadPicture(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user := h.users.GetUserByID(c.Request.Context(), id)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "form file picture is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := fmt.Sprintf("%d/%s%s", id, uuid.NewString(), ext)

	url, err := h.storage.UploadPicture(c.Request.Context(), key, file, storage.UploadOptions{
		Bucket:      h.bucket,
		KeyPrefix:   h.keyPrefix,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(url) > validation.MaxPictureLength {
		h.discardObject(c, url)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "uploaded picture produces a URL longer than the profile allows"})
		return
	}

	previous := user.Picture
	user.Picture = url
	if !h.users.UpdateUser(c.Request.Context(), *user).OK() {
		h.discardObject(c, url)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "picture uploaded but profile update failed"})
		return
	}

	// The profile now points at the new object.
	h.discardObject(c, previous)

	c.JSON(http.StatusOK, userToResponse(*user))
}

// discardObject removes a picture object no profile references anymore.
// Delete failures are ignored; the orphaned object holds no profile state.
func (h *Handler) discardObject(c *gin.Context, url string) {
	bucket, key, ok := parseObjectURL(url)
	if !ok {
		return
	}
	_ = h.storage.DeletePicture(c.Request.Context(), bucket, key)
}

// parseObjectURL splits an s3://bucket/key URL produced by the storage layer.
func parseObjectURL(url string) (string, string, bool) {
	rest, found := strings.CutPrefix(url, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func (h *Handler) latestLog(c *gin.Context) {
	content, err := logs.Latest(h.logDir)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, content)
}

func parseUserID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Name:               user.Name,
		Surname:            user.Surname,
		Address:            user.Address,
		City:               user.City,
		Phonenumber:        user.Phonenumber,
		Picture:            user.Picture,
		ZipCode:            user.ZipCode,
		PersonalCodeNumber: user.PersonalCodeNumber,
	}
}
