package seed

import (
	"errors"
	"log"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run は開発用の初期データを投入する。
// 既存データがあればスキップするので、起動のたびに呼んで問題ない。
func Run(db *gorm.DB) error {
	admin, err := seedAdminUser(db)
	if err != nil {
		return err
	}

	products, err := seedCatalog(db)
	if err != nil {
		return err
	}

	if err := seedDemoCart(db, admin, products); err != nil {
		return err
	}

	log.Println("[seed] done")
	return nil
}

func seedAdminUser(db *gorm.DB) (model.User, error) {
	var admin model.User

	err := db.Where("email = ?", "admin@mizu.com").First(&admin).Error
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-dev-password"), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	admin = model.User{
		Email:        "admin@mizu.com",
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return model.User{}, err
	}

	log.Println("[seed] admin user created")
	return admin, nil
}

func seedCatalog(db *gorm.DB) ([]model.Product, error) {
	type productSeed struct {
		name        string
		description string
		price       string
		stock       int64
		imageURL    string
		subcategory string
	}

	catalog := []struct {
		category      string
		description   string
		subcategories []string
		products      []productSeed
	}{
		{
			category:      "Bebidas",
			description:   "Aguas, jugos y más",
			subcategories: []string{"Aguas", "Jugos"},
			products: []productSeed{
				{"Agua mineral 1.5L", "Agua mineral sin gas", "2.50", 120, "/images/agua-mineral.jpg", "Aguas"},
				{"Jugo de naranja 1L", "Exprimido natural", "4.90", 60, "/images/jugo-naranja.jpg", "Jugos"},
			},
		},
		{
			category:      "Snacks",
			description:   "Dulces y salados",
			subcategories: []string{"Galletas"},
			products: []productSeed{
				{"Galletas de avena", "Paquete de 12 unidades", "3.20", 80, "/images/galletas-avena.jpg", "Galletas"},
			},
		},
	}

	var created []model.Product

	for _, c := range catalog {
		var category model.Category
		if err := db.Where(model.Category{Name: c.category}).
			Attrs(model.Category{Description: c.description, IsActive: true}).
			FirstOrCreate(&category).Error; err != nil {
			return nil, err
		}

		subIDs := map[string]string{}
		for _, name := range c.subcategories {
			var sub model.Subcategory
			if err := db.Where(model.Subcategory{CategoryID: category.ID, Name: name}).
				Attrs(model.Subcategory{IsActive: true}).
				FirstOrCreate(&sub).Error; err != nil {
				return nil, err
			}
			subIDs[name] = sub.ID
		}

		for _, p := range c.products {
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				return nil, err
			}

			subID := subIDs[p.subcategory]
			var product model.Product
			if err := db.Where(model.Product{Name: p.name, CategoryID: category.ID}).
				Attrs(model.Product{
					Description:   p.description,
					Price:         price,
					Stock:         p.stock,
					IsActive:      true,
					ImageURL:      p.imageURL,
					SubcategoryID: &subID,
				}).
				FirstOrCreate(&product).Error; err != nil {
				return nil, err
			}
			created = append(created, product)
		}
	}

	return created, nil
}

// 管理者に1件入りのデモカートを用意する
func seedDemoCart(db *gorm.DB, admin model.User, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	var cart model.Cart
	err := db.Where("user_id = ? AND status = ?", admin.ID, model.CartStatusActive).First(&cart).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	cart = model.Cart{UserID: admin.ID, Status: model.CartStatusActive}
	if err := db.Create(&cart).Error; err != nil {
		return err
	}

	item := model.CartItem{
		CartID:    cart.ID,
		ProductID: products[0].ID,
		Quantity:  1,
		UnitPrice: products[0].Price,
	}
	if err := db.Create(&item).Error; err != nil {
		return err
	}

	log.Println("[seed] demo cart created")
	return nil
}
