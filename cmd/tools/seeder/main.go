package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedUsers(db)
	seedCatalog(db)
	seedCoupons(db)
	seedAddresses(db)

	log.Println("Seeding completed successfully!")
}

func seedUsers(db *sql.DB) {
	users := []struct {
		Name  string
		Email string
		Role  string
	}{
		{"Admin User", "admin@bazaar.in", "admin"},
		{"Asha Rao", "asha@example.com", "customer"},
		{"Vikram Iyer", "vikram@example.com", "customer"},
		{"Priya Sharma", "priya@example.com", "customer"},
		{"Rahul Mehta", "rahul@example.com", "customer"},
		{"Sneha Patel", "sneha@example.com", "customer"},
		{"Arjun Nair", "arjun@example.com", "customer"},
		{"Kavya Reddy", "kavya@example.com", "customer"},
	}

	fmt.Println("Seeding Users...")
	for _, u := range users {
		_, err := db.Exec(`
			INSERT INTO users (name, email, roles)
			VALUES ($1, $2, ARRAY[$3])
			ON CONFLICT (email) DO NOTHING;
		`, u.Name, u.Email, u.Role)
		if err != nil {
			log.Printf("Failed to seed user %s: %v", u.Email, err)
		}
	}
}

func seedCatalog(db *sql.DB) {
	categories := []struct {
		Name    string
		Slug    string
		TaxRate sql.NullString
	}{
		{"Electronics", "electronics", sql.NullString{String: "18", Valid: true}},
		{"Groceries", "groceries", sql.NullString{String: "5", Valid: true}},
		{"Fashion", "fashion", sql.NullString{String: "12", Valid: true}},
		{"Home & Kitchen", "home-kitchen", sql.NullString{String: "18", Valid: true}},
		{"Books", "books", sql.NullString{String: "0", Valid: true}},
		{"Beauty", "beauty", sql.NullString{}},
	}

	fmt.Println("Seeding Categories...")
	catIDs := make(map[string]string)
	for _, c := range categories {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug, tax_rate)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, tax_rate = EXCLUDED.tax_rate;
		`, c.Name, c.Slug, c.TaxRate)
		if err != nil {
			log.Printf("Failed to upsert category %s: %v", c.Name, err)
		}

		var id string
		if err := db.QueryRow("SELECT id FROM categories WHERE slug = $1", c.Slug).Scan(&id); err != nil {
			log.Printf("Failed to get ID for category %s: %v", c.Name, err)
			continue
		}
		catIDs[c.Slug] = id
	}

	products := []struct {
		Title     string
		Slug      string
		SKU       string
		Category  string
		UnitPrice string
		TaxRate   sql.NullString
		PriceMode string
		Image     string
	}{
		{"Noise Cancelling Headphones", "noise-cancelling-headphones", "ELEC-NCH-01", "electronics", "4999.00", sql.NullString{}, "exclusive", "https://img.bazaar.in/p/nch.jpg"},
		{"Bluetooth Speaker", "bluetooth-speaker", "ELEC-BTS-02", "electronics", "1499.00", sql.NullString{}, "exclusive", "https://img.bazaar.in/p/bts.jpg"},
		{"Smartphone Stand", "smartphone-stand", "ELEC-SPS-03", "electronics", "299.00", sql.NullString{String: "28", Valid: true}, "inclusive", "https://img.bazaar.in/p/sps.jpg"},
		{"Basmati Rice 5kg", "basmati-rice-5kg", "GROC-BR5-01", "groceries", "650.00", sql.NullString{}, "inclusive", "https://img.bazaar.in/p/rice.jpg"},
		{"Cold Pressed Coconut Oil 1L", "coconut-oil-1l", "GROC-CCO-02", "groceries", "399.00", sql.NullString{}, "inclusive", "https://img.bazaar.in/p/oil.jpg"},
		{"Cotton Kurta", "cotton-kurta", "FASH-CK-01", "fashion", "899.00", sql.NullString{}, "inclusive", "https://img.bazaar.in/p/kurta.jpg"},
		{"Running Shoes", "running-shoes", "FASH-RS-02", "fashion", "2499.00", sql.NullString{}, "exclusive", "https://img.bazaar.in/p/shoes.jpg"},
		{"Pressure Cooker 3L", "pressure-cooker-3l", "HOME-PC3-01", "home-kitchen", "1299.00", sql.NullString{}, "inclusive", "https://img.bazaar.in/p/cooker.jpg"},
		{"Non-stick Tawa", "non-stick-tawa", "HOME-NST-02", "home-kitchen", "549.00", sql.NullString{}, "inclusive", "https://img.bazaar.in/p/tawa.jpg"},
		{"The Midnight Library", "the-midnight-library", "BOOK-TML-01", "books", "350.00", sql.NullString{}, "inclusive", "https://img.bazaar.in/p/tml.jpg"},
		{"Vitamin C Face Serum", "vitamin-c-face-serum", "BEAU-VCS-01", "beauty", "699.00", sql.NullString{String: "18", Valid: true}, "inclusive", "https://img.bazaar.in/p/serum.jpg"},
	}

	fmt.Println("Seeding Products...")
	for _, p := range products {
		catID, ok := catIDs[p.Category]
		if !ok {
			log.Printf("Missing category ID for %s", p.Category)
			continue
		}

		_, err := db.Exec(`
			INSERT INTO products (category_id, title, slug, sku, image_url, unit_price, tax_rate, price_mode, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
			ON CONFLICT (slug) DO UPDATE SET
				unit_price = EXCLUDED.unit_price,
				tax_rate = EXCLUDED.tax_rate,
				price_mode = EXCLUDED.price_mode,
				category_id = EXCLUDED.category_id,
				image_url = EXCLUDED.image_url;
		`, catID, p.Title, p.Slug, p.SKU, p.Image, p.UnitPrice, p.TaxRate, p.PriceMode)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.Title, err)
		}
	}
}

func seedCoupons(db *sql.DB) {
	coupons := []struct {
		Code        string
		Kind        string
		Value       string
		MaxDiscount sql.NullString
		MinCart     sql.NullString
		Conditions  string
	}{
		{"WELCOME10", "PERCENTAGE", "10", sql.NullString{String: "150", Valid: true}, sql.NullString{String: "499", Valid: true}, "{}"},
		{"FLAT50", "FLAT", "50", sql.NullString{}, sql.NullString{String: "299", Valid: true}, "{}"},
		{"FREESHIP", "FREE_SHIPPING", "0", sql.NullString{}, sql.NullString{}, "{}"},
		{"BIGCART200", "MIN_CART_VALUE", "200", sql.NullString{}, sql.NullString{String: "1999", Valid: true}, "{}"},
	}

	fmt.Println("Seeding Coupons...")
	for _, c := range coupons {
		_, err := db.Exec(`
			INSERT INTO coupons (code, kind, value, max_discount, min_cart_value, starts_at, expires_at, status, conditions)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW() + INTERVAL '1 year', 'ACTIVE', $6::jsonb)
			ON CONFLICT (code) DO NOTHING;
		`, c.Code, c.Kind, c.Value, c.MaxDiscount, c.MinCart, c.Conditions)
		if err != nil {
			log.Printf("Failed to seed coupon %s: %v", c.Code, err)
		}
	}
}

func seedAddresses(db *sql.DB) {
	var userID string
	err := db.QueryRow("SELECT id FROM users WHERE email = 'asha@example.com'").Scan(&userID)
	if err != nil {
		log.Printf("Skipping address seed: user 'asha@example.com' not found: %v", err)
		return
	}

	fmt.Println("Seeding Addresses...")
	_, err = db.Exec(`
		INSERT INTO addresses (user_id, receiver_name, phone, address_line1, city, state, postal_code)
		VALUES ($1, 'Asha Rao', '+919876543210', '12 MG Road', 'Bengaluru', 'Karnataka', '560001')
		ON CONFLICT DO NOTHING;
	`, userID)
	if err != nil {
		log.Printf("Failed to seed address: %v", err)
	}
}
