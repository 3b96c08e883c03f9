package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Mayur79/ecommercebackend/model"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (cc *CategoryController) Create(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	var existing model.Category
	if err := cc.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Category already exists",
		})
	}

	category := model.Category{Name: req.Name, Slug: slug.Make(req.Name)}
	if err := cc.DB.Create(&category).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error in category creation",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":  true,
		"message":  "New category created",
		"category": category,
	})
}

func (cc *CategoryController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	var category model.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Category not found",
		})
	}

	category.Name = req.Name
	category.Slug = slug.Make(req.Name)
	if err := cc.DB.Save(&category).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error while updating category",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Category updated successfully",
		"category": category,
	})
}

func (cc *CategoryController) List(c *fiber.Ctx) error {
	var categories []model.Category
	if err := cc.DB.Find(&categories).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error while getting all categories",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "All categories list",
		"categories": categories,
	})
}

func (cc *CategoryController) GetBySlug(c *fiber.Ctx) error {
	var category model.Category
	if err := cc.DB.Where("slug = ?", c.Params("slug")).First(&category).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Category not found",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Single category fetched",
		"category": category,
	})
}

func (cc *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := cc.DB.Delete(&model.Category{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error while deleting category",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category deleted successfully",
	})
}
