package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/timberhaus/sawmill-backend/internal/address"
	"github.com/timberhaus/sawmill-backend/internal/admin"
	"github.com/timberhaus/sawmill-backend/internal/cart"
	"github.com/timberhaus/sawmill-backend/internal/category"
	"github.com/timberhaus/sawmill-backend/internal/checkout"
	"github.com/timberhaus/sawmill-backend/internal/config"
	"github.com/timberhaus/sawmill-backend/internal/gallery"
	"github.com/timberhaus/sawmill-backend/internal/order"
	"github.com/timberhaus/sawmill-backend/internal/product"
	"github.com/timberhaus/sawmill-backend/internal/promotion"
	"github.com/timberhaus/sawmill-backend/internal/review"
	"github.com/timberhaus/sawmill-backend/internal/user"
	"github.com/timberhaus/sawmill-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	bootstrapSchema(db)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))
	galleryHandler := gallery.NewHandler(gallery.NewService(gallery.NewPostgresRepository(db)))

	promotionService := promotion.NewService(promotion.NewPostgresRepository(db))
	promotionHandler := promotion.NewHandler(promotionService)

	cartService := cart.NewService(cart.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(order.NewPostgresRepository(db))
	orderHandler := order.NewHandler(orderService, productService)

	checkoutService := checkout.NewService(checkout.NewStore(), cartService, userService, orderService, promotionService)
	checkoutHandler := checkout.NewHandler(checkoutService)

	reviewHandler := review.NewHandler(review.NewService(review.NewPostgresRepository(db), productService, userService))
	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlist.NewPostgresRepository(db)))
	addressHandler := address.NewHandler(address.NewService(address.NewPostgresRepository(db)))
	adminHandler := admin.NewHandler(admin.NewService(admin.NewPostgresRepository(db)))

	// public surface: catalog browsing, sign-in/up, storefront furniture
	userHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	galleryHandler.RegisterPublicRoutes(app)
	promotionHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	app.Static("/uploads", cfg.UploadDir)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != "GET" {
				return false
			}
			p := c.Path()
			for _, prefix := range []string{"/api/v1/products", "/api/v1/categories", "/api/v1/gallery", "/api/v1/promotions", "/uploads"} {
				if strings.HasPrefix(p, prefix) {
					return true
				}
			}
			return false
		},
	}))

	// everything past this point carries a verified token
	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	promotionHandler.RegisterProtectedRoutes(app)
	galleryHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	adminHandler.RegisterProtectedRoutes(app)

	app.Post("/upload", func(c *fiber.Ctx) error {
		return uploadFile(c, cfg.UploadDir)
	})

	log.Printf("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// bootstrapSchema creates the tables on first run. Statements are idempotent
// so restarting against an existing database is a no-op.
func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			phone TEXT,
			role TEXT NOT NULL DEFAULT 'customer',
			main_address_id INT,
			cart jsonb NOT NULL DEFAULT '{}',
			wishlist_product_ids integer[] NOT NULL DEFAULT ARRAY[]::integer[],
			order_ids integer[] NOT NULL DEFAULT ARRAY[]::integer[],
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			product_name TEXT NOT NULL,
			product_desc TEXT,
			species TEXT,
			grade TEXT,
			length_mm INT,
			width_mm INT,
			thickness_mm INT,
			product_price numeric NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			score INT NOT NULL DEFAULT 0,
			category TEXT,
			product_img TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS category (
			category_id SERIAL PRIMARY KEY,
			category_name TEXT NOT NULL,
			category_img TEXT,
			ord INT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			items jsonb NOT NULL DEFAULT '[]',
			subtotal numeric NOT NULL DEFAULT 0,
			discount numeric NOT NULL DEFAULT 0,
			total numeric NOT NULL DEFAULT 0,
			customer_name TEXT,
			customer_email TEXT,
			phone_number TEXT,
			delivery_method TEXT,
			shipping_address TEXT,
			special_instructions TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			review_id SERIAL PRIMARY KEY,
			product_id INT NOT NULL,
			user_id INT NOT NULL,
			reviewer_name TEXT,
			score INT NOT NULL,
			comment TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS promotions (
			promo_id SERIAL PRIMARY KEY,
			promo_name TEXT NOT NULL,
			kind TEXT NOT NULL,
			value numeric NOT NULL DEFAULT 0,
			starts_at TEXT,
			ends_at TEXT,
			active BOOLEAN NOT NULL DEFAULT false,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS gallery (
			gallery_id SERIAL PRIMARY KEY,
			image_ref TEXT NOT NULL,
			link TEXT,
			caption TEXT,
			ord INT
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			address_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			label TEXT,
			line TEXT NOT NULL,
			city TEXT NOT NULL,
			postal_code TEXT NOT NULL,
			phone TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}

	seedCategories(db)
	seedGallery(db)
}

// seedCategories fills the navigation on a fresh database.
func seedCategories(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&count); err != nil || count > 0 {
		return
	}

	seed := []struct{ name, img string }{
		{"Structural timber", "/Category/structural_timber.jpg"},
		{"Decking", "/Category/decking.jpg"},
		{"Cladding", "/Category/cladding.jpg"},
		{"Flooring", "/Category/flooring.jpg"},
		{"Poles and posts", "/Category/poles_and_posts.jpg"},
		{"Mouldings", "/Category/mouldings.jpg"},
		{"Firewood and offcuts", "/Category/firewood.jpg"},
	}
	for i, s := range seed {
		if _, err := db.Exec(`INSERT INTO category (category_name, category_img, ord) VALUES ($1, $2, $3)`, s.name, s.img, len(seed)-i); err != nil {
			continue
		}
	}
}

// seedGallery gives the storefront strip something to show on first run.
func seedGallery(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM gallery`).Scan(&count); err != nil || count > 0 {
		return
	}

	seed := []string{
		"/gallery/yard.jpg",
		"/gallery/kiln.jpg",
		"/gallery/bandsaw.jpg",
	}
	for i, img := range seed {
		if _, err := db.Exec(`INSERT INTO gallery (image_ref, ord) VALUES ($1, $2)`, img, len(seed)-i); err != nil {
			continue
		}
	}
}

func uploadFile(c *fiber.Ctx, dir string) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	if err := c.SaveFile(file, dir+"/"+file.Filename); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	return c.SendString("File uploaded successfully: " + file.Filename)
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
