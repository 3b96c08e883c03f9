package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mayur79/ecommercebackend/model"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthController struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewAuthController(db *gorm.DB, secret string) *AuthController {
	return &AuthController{DB: db, JWTSecret: secret}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	switch {
	case req.Name == "":
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	case req.Email == "":
		return c.Status(400).JSON(fiber.Map{"error": "Email is required"})
	case req.Password == "":
		return c.Status(400).JSON(fiber.Map{"error": "Password is required"})
	case req.Answer == "":
		return c.Status(400).JSON(fiber.Map{"error": "Answer is required"})
	}

	var existing model.User
	if err := ac.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Already registered, please login",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error in registration",
			"error":   err.Error(),
		})
	}

	user := model.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Phone:     req.Phone,
		Address:   req.Address,
		Answer:    req.Answer,
		Role:      model.RoleCustomer,
		CreatedAt: time.Now(),
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error in registration",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	var user model.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Email is not registered",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Invalid password",
		})
	}

	token, err := ac.signToken(&user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error in login",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (ac *AuthController) signToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.JWTSecret))
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

// ForgotPassword resets the password when email and security answer match.
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	switch {
	case req.Email == "":
		return c.Status(400).JSON(fiber.Map{"error": "Email is required"})
	case req.Answer == "":
		return c.Status(400).JSON(fiber.Map{"error": "Answer is required"})
	case req.NewPassword == "":
		return c.Status(400).JSON(fiber.Map{"error": "New password is required"})
	}

	var user model.User
	if err := ac.DB.Where("email = ? AND answer = ?", req.Email, req.Answer).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Wrong email or answer",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   err.Error(),
		})
	}

	if err := ac.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset successfully",
	})
}

type profileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Password != "" && len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 6 characters"})
	}

	var user model.User
	if err := ac.DB.First(&user, c.Locals("user_id").(uint)).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"message": "Error while updating profile",
				"error":   err.Error(),
			})
		}
		user.Password = string(hashed)
	}

	if err := ac.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error while updating profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Profile updated successfully",
		"updatedUser": user,
	})
}

// Orders lists the authenticated buyer's orders, newest first.
func (ac *AuthController) Orders(c *fiber.Ctx) error {
	var orders []model.Order
	err := ac.DB.Preload("Buyer").
		Where("buyer_id = ?", c.Locals("user_id").(uint)).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error while getting orders",
			"error":   err.Error(),
		})
	}
	if orders == nil {
		orders = []model.Order{}
	}

	return c.JSON(orders)
}

func (ac *AuthController) AllOrders(c *fiber.Ctx) error {
	var orders []model.Order
	err := ac.DB.Preload("Buyer").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error while getting orders",
			"error":   err.Error(),
		})
	}
	if orders == nil {
		orders = []model.Order{}
	}

	return c.JSON(orders)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (ac *AuthController) OrderStatus(c *fiber.Ctx) error {
	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if !model.ValidOrderStatus(req.Status) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order status"})
	}

	id, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var order model.Order
	if err := ac.DB.First(&order, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Order not found",
		})
	}

	order.Status = req.Status
	if err := ac.DB.Save(&order).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error while updating order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(order)
}
