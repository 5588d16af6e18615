package authControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/httperr"
	"github.com/MasterGroupNew/Luxeparfum-Backend/media"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
	"github.com/MasterGroupNew/Luxeparfum-Backend/models"
)

const tokenValidity = 24 * time.Hour

type LoginRequest struct {
	// Identifier is the email or the phone contact, interchangeably.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// IssueToken signs a 24h HS256 token carrying the user's id and role.
func IssueToken(secret string, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(tokenValidity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func findByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? OR contact = ?", identifier, identifier).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("user not found")
		}
		return nil, httperr.Storage(err)
	}
	return &user, nil
}

// createUser is shared by public registration and the admin add_user
// endpoint; both are multipart so a photo can ride along.
func createUser(db *gorm.DB, m *media.Client, c *gin.Context, requireRole bool) (*models.User, error) {
	name := c.PostForm("name")
	surname := c.PostForm("surname")
	contact := c.PostForm("contact")
	email := c.PostForm("email")
	password := c.PostForm("password")
	role := c.PostForm("role")

	if name == "" || surname == "" || contact == "" || email == "" || password == "" {
		return nil, httperr.Validation("name, surname, contact, email and password are required")
	}
	if requireRole && role == "" {
		return nil, httperr.Validation("role is required")
	}
	if role != string(models.RoleAdmin) {
		role = string(models.RoleUser)
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ? OR contact = ?", email, contact).
		Count(&count).Error; err != nil {
		return nil, httperr.Storage(err)
	}
	if count > 0 {
		return nil, httperr.Conflict("a user with this email or contact already exists")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, httperr.Storage(err)
	}

	user := models.User{
		Name:     name,
		Surname:  surname,
		Contact:  contact,
		Email:    email,
		Password: hash,
		Role:     models.Role(role),
		Address: models.Address{
			Street:     c.PostForm("street"),
			City:       c.PostForm("city"),
			PostalCode: c.PostForm("postal_code"),
			Country:    c.PostForm("country"),
		},
	}

	if file, err := c.FormFile("photo"); err == nil && m != nil {
		url, key, err := m.Upload(c.Request.Context(), file, "users")
		if err != nil {
			return nil, httperr.Storage(err)
		}
		user.PhotoURL = url
		user.PhotoID = key
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, httperr.Storage(err)
	}
	return &user, nil
}

// -------- Handlers --------

func RegisterHandler(db *gorm.DB, m *media.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := createUser(db, m, c, false)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User created", "user": user})
	}
}

func LoginHandler(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("identifier and password are required"))
			return
		}

		user, err := findByIdentifier(db, req.Identifier)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			httperr.Respond(c, httperr.Auth("incorrect password"))
			return
		}

		token, err := IssueToken(secret, user)
		if err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": user})
	}
}

func AddUserHandler(db *gorm.DB, m *media.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := createUser(db, m, c, true)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User added", "user": user})
	}
}

func GetAllUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func GetUserByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("user not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func GetUsersByRoleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Where("role = ?", c.Param("role")).Find(&users).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// updateUserRecord applies the multipart fields present in the request. A new
// photo replaces the old one; the superseded object is removed best-effort.
func updateUserRecord(db *gorm.DB, m *media.Client, c *gin.Context, user *models.User, allowRole bool) error {
	updates := map[string]interface{}{}
	for form, column := range map[string]string{
		"name": "name", "surname": "surname", "contact": "contact",
		"email": "email", "street": "street", "city": "city",
		"postal_code": "postal_code", "country": "country",
	} {
		if v := c.PostForm(form); v != "" {
			updates[column] = v
		}
	}
	if role := c.PostForm("role"); allowRole && (role == string(models.RoleUser) || role == string(models.RoleAdmin)) {
		updates["role"] = role
	}
	if password := c.PostForm("password"); password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return httperr.Storage(err)
		}
		updates["password"] = hash
	}

	oldPhotoID := ""
	if file, err := c.FormFile("photo"); err == nil && m != nil {
		url, key, err := m.Upload(c.Request.Context(), file, "users")
		if err != nil {
			return httperr.Storage(err)
		}
		oldPhotoID = user.PhotoID
		updates["photo_url"] = url
		updates["photo_id"] = key
	}

	if len(updates) > 0 {
		if err := db.Model(user).Updates(updates).Error; err != nil {
			return httperr.Storage(err)
		}
	}
	if oldPhotoID != "" {
		m.DeleteAsync(oldPhotoID)
	}
	return nil
}

func UpdateUserHandler(db *gorm.DB, m *media.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("user not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		if err := updateUserRecord(db, m, c, &user, true); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": user})
	}
}

func DeleteUserHandler(db *gorm.DB, m *media.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("user not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		if err := db.Delete(&user).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		if m != nil {
			m.DeleteAsync(user.PhotoID)
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("user not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func UpdateProfileHandler(db *gorm.DB, m *media.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("user not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		// Profile updates never change the role.
		if err := updateUserRecord(db, m, c, &user, false); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
	}
}

func ChangePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("current and new password are required"))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("user not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			httperr.Respond(c, httperr.Auth("current password is incorrect"))
			return
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		if err := db.Model(&user).Update("password", hash).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

func ResetPasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("email and new password are required"))
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("user not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		if err := db.Model(&user).Update("password", hash).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
	}
}
