package controller

import (
	"encoding/json"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Mayur79/ecommercebackend/cache"
	"github.com/Mayur79/ecommercebackend/gateway"
	"github.com/Mayur79/ecommercebackend/kafka"
	"github.com/Mayur79/ecommercebackend/model"
)

const (
	maxPhotoBytes  = 1 << 20 // 1 MB cap on inline photo storage
	perPage        = 5
	storefrontSize = 12
	relatedLimit   = 3
)

type ProductController struct {
	DB       *gorm.DB
	Gateway  gateway.Gateway
	Cache    *cache.Cache
	Producer *kafka.Producer
}

func NewProductController(db *gorm.DB, gw gateway.Gateway, c *cache.Cache, p *kafka.Producer) *ProductController {
	return &ProductController{DB: db, Gateway: gw, Cache: c, Producer: p}
}

type productForm struct {
	Name        string
	Description string
	Price       float64
	CategoryID  uint
	Quantity    int
	Shipping    bool
}

// parseProductForm validates the multipart fields shared by create and
// update. Missing required fields answer with the field-specific message.
func parseProductForm(c *fiber.Ctx) (*productForm, string) {
	f := &productForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
	}

	switch {
	case f.Name == "":
		return nil, "Name is required"
	case f.Description == "":
		return nil, "Description is required"
	case c.FormValue("price") == "":
		return nil, "Price is required"
	case c.FormValue("category") == "":
		return nil, "Category is required"
	case c.FormValue("quantity") == "":
		return nil, "Quantity is required"
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return nil, "Price is invalid"
	}
	categoryID, err := strconv.ParseUint(c.FormValue("category"), 10, 32)
	if err != nil {
		return nil, "Category is invalid"
	}
	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || quantity < 0 {
		return nil, "Quantity is invalid"
	}

	f.Price = price
	f.CategoryID = uint(categoryID)
	f.Quantity = quantity
	f.Shipping = c.FormValue("shipping") == "true" || c.FormValue("shipping") == "1"
	return f, ""
}

// readPhoto returns the uploaded photo bytes and content type, or an error
// message when the upload breaks the size cap. No photo field is fine.
func readPhoto(c *fiber.Ctx) ([]byte, string, string) {
	fh, err := c.FormFile("photo")
	if err != nil || fh == nil {
		return nil, "", ""
	}
	if fh.Size > maxPhotoBytes {
		return nil, "", "Photo should be less than 1MB"
	}

	file, err := fh.Open()
	if err != nil {
		return nil, "", "Photo could not be read"
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "Photo could not be read"
	}
	return data, fh.Header.Get("Content-Type"), ""
}

func (pc *ProductController) Create(c *fiber.Ctx) error {
	form, msg := parseProductForm(c)
	if msg != "" {
		return c.Status(500).JSON(fiber.Map{"error": msg})
	}
	photo, contentType, msg := readPhoto(c)
	if msg != "" {
		return c.Status(500).JSON(fiber.Map{"error": msg})
	}

	p := model.Product{
		Name:             form.Name,
		Slug:             slug.Make(form.Name),
		Description:      form.Description,
		Price:            form.Price,
		CategoryID:       form.CategoryID,
		Quantity:         form.Quantity,
		Shipping:         form.Shipping,
		Photo:            photo,
		PhotoContentType: contentType,
		CreatedAt:        time.Now(),
	}

	if err := pc.DB.Create(&p).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error in creating product",
			"error":   err.Error(),
		})
	}

	pc.Cache.InvalidateProducts(c.Context())
	pc.Producer.ProductCreated(&p)

	return c.Status(201).JSON(fiber.Map{
		"success":  true,
		"message":  "Product created successfully",
		"products": p,
	})
}

func (pc *ProductController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("pid"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	form, msg := parseProductForm(c)
	if msg != "" {
		return c.Status(500).JSON(fiber.Map{"error": msg})
	}
	photo, contentType, msg := readPhoto(c)
	if msg != "" {
		return c.Status(500).JSON(fiber.Map{"error": msg})
	}

	var p model.Product
	if err := pc.DB.First(&p, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Product not found",
		})
	}

	// Slug follows the name; the photo is replaced only when a new one
	// is uploaded.
	p.Name = form.Name
	p.Slug = slug.Make(form.Name)
	p.Description = form.Description
	p.Price = form.Price
	p.CategoryID = form.CategoryID
	p.Quantity = form.Quantity
	p.Shipping = form.Shipping
	if photo != nil {
		p.Photo = photo
		p.PhotoContentType = contentType
	}

	if err := pc.DB.Save(&p).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error in updating product",
			"error":   err.Error(),
		})
	}

	pc.Cache.InvalidateProducts(c.Context())
	pc.Producer.ProductUpdated(&p)

	return c.Status(201).JSON(fiber.Map{
		"success":  true,
		"message":  "Product updated successfully",
		"products": p,
	})
}

// Delete is idempotent-in-effect: removing an unknown id still reports
// success.
func (pc *ProductController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("pid"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := pc.DB.Delete(&model.Product{}, id).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error while deleting product",
			"error":   err.Error(),
		})
	}

	pc.Cache.InvalidateProducts(c.Context())
	pc.Producer.ProductDeleted(uint(id))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// List is the storefront listing: newest first, capped, photo omitted.
func (pc *ProductController) List(c *fiber.Ctx) error {
	if payload, ok := pc.Cache.Storefront(c.Context()); ok {
		c.Set("Content-Type", "application/json")
		return c.Send(payload)
	}

	var products []model.Product
	err := pc.DB.Select(model.ProductColumns).
		Preload("Category").
		Order("created_at desc").
		Limit(storefrontSize).
		Find(&products).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error in getting products",
			"error":   err.Error(),
		})
	}

	envelope := fiber.Map{
		"success":  true,
		"total":    len(products),
		"message":  "All Products",
		"products": products,
	}
	if payload, err := json.Marshal(envelope); err == nil {
		pc.Cache.SetStorefront(c.Context(), payload)
	}
	return c.JSON(envelope)
}

func (pc *ProductController) GetBySlug(c *fiber.Ctx) error {
	var p model.Product
	err := pc.DB.Select(model.ProductColumns).
		Preload("Category").
		Where("slug = ?", c.Params("slug")).
		First(&p).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Product not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Single Product Fetched",
		"product": p,
	})
}

// Photo serves the stored photo bytes with the stored content type, or an
// empty body when the product has no photo.
func (pc *ProductController) Photo(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("pid"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var p model.Product
	if err := pc.DB.Select("photo, photo_content_type").First(&p, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Product not found",
		})
	}

	if len(p.Photo) == 0 {
		return c.Status(200).Send(nil)
	}
	c.Set("Content-Type", p.PhotoContentType)
	return c.Status(200).Send(p.Photo)
}

type filterRequest struct {
	Checked []uint    `json:"checked"`
	Radio   []float64 `json:"radio"`
}

// Filters composes the optional category and inclusive price filters.
// Neither supplied returns the unfiltered set.
func (pc *ProductController) Filters(c *fiber.Ctx) error {
	var req filterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	q := pc.DB.Select(model.ProductColumns).Preload("Category")
	if len(req.Checked) > 0 {
		q = q.Where("category_id IN ?", req.Checked)
	}
	if len(req.Radio) >= 2 {
		q = q.Where("price >= ? AND price <= ?", req.Radio[0], req.Radio[1])
	}

	var products []model.Product
	if err := q.Find(&products).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Error while filtering products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

func (pc *ProductController) Count(c *fiber.Ctx) error {
	if total, ok := pc.Cache.ProductCount(c.Context()); ok {
		return c.JSON(fiber.Map{"success": true, "total": total})
	}

	var total int64
	if err := pc.DB.Model(&model.Product{}).Count(&total).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Error in product count",
			"error":   err.Error(),
		})
	}

	pc.Cache.SetProductCount(c.Context(), total)
	return c.JSON(fiber.Map{"success": true, "total": total})
}

// ListPage pages the catalog newest-first, perPage at a time. Pages past
// the end come back empty rather than erroring.
func (pc *ProductController) ListPage(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Params("page"))
	if err != nil || page < 1 {
		page = 1
	}

	var products []model.Product
	err = pc.DB.Select(model.ProductColumns).
		Preload("Category").
		Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Error in per page product list",
			"error":   err.Error(),
		})
	}
	if products == nil {
		products = []model.Product{}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

// Search does case-insensitive substring matching on name or description.
// It answers with a bare array, not the usual envelope; clients depend on
// that shape.
func (pc *ProductController) Search(c *fiber.Ctx) error {
	keyword := strings.ToLower(c.Params("keyword"))
	pattern := "%" + keyword + "%"

	var products []model.Product
	err := pc.DB.Select(model.ProductColumns).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Find(&products).Error
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Error in searching products",
			"error":   err.Error(),
		})
	}
	if products == nil {
		products = []model.Product{}
	}

	return c.JSON(products)
}

func (pc *ProductController) Related(c *fiber.Ctx) error {
	pid, err := strconv.Atoi(c.Params("pid"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid product id"})
	}
	cid, err := strconv.Atoi(c.Params("cid"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid category id"})
	}

	var products []model.Product
	err = pc.DB.Select(model.ProductColumns).
		Preload("Category").
		Where("category_id = ? AND id <> ?", cid, pid).
		Limit(relatedLimit).
		Find(&products).Error
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Error while getting related products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

func (pc *ProductController) ByCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := pc.DB.Where("slug = ?", c.Params("slug")).First(&category).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Category not found",
		})
	}

	var products []model.Product
	err := pc.DB.Select(model.ProductColumns).
		Preload("Category").
		Where("category_id = ?", category.ID).
		Find(&products).Error
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Error while getting products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"category": category,
		"products": products,
	})
}

func (pc *ProductController) BraintreeToken(c *fiber.Ctx) error {
	token, err := pc.Gateway.ClientToken(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"clientToken": token})
}

type paymentRequest struct {
	Cart  model.OrderedProducts `json:"cart"`
	Nonce string                `json:"nonce"`
}

// BraintreePayment runs the two-step checkout: sale through the gateway,
// then order persistence. The cart is a client-supplied snapshot; the total
// is the plain sum of its prices. A gateway failure creates no order. An
// order persistence failure after a successful sale is only logged; there
// is no compensation step.
func (pc *ProductController) BraintreePayment(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	var total float64
	for _, item := range req.Cart {
		total += item.Price
	}

	result, err := pc.Gateway.Sale(c.Context(), total, req.Nonce)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	payment, err := json.Marshal(result)
	if err != nil {
		payment = []byte(`{}`)
	}

	order := model.Order{
		Products:  req.Cart,
		Payment:   datatypes.JSON(payment),
		BuyerID:   c.Locals("user_id").(uint),
		Status:    model.StatusNotProcess,
		CreatedAt: time.Now(),
	}
	if err := pc.DB.Create(&order).Error; err != nil {
		log.Printf("order persist failed after gateway sale %s: %v", result.TransactionID, err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	pc.Producer.OrderCreated(&order)
	return c.JSON(fiber.Map{"ok": true})
}
