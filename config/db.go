package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelops-backend/models"
	"hotelops-backend/money"
	"hotelops-backend/utils"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "hotelops_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent -> child order.
	if err := DB.AutoMigrate(
		&models.HotelSetting{},
		&models.Guest{},
		&models.Room{},
		&models.Item{},
		&models.ItemIngredient{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderLineItem{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase inserts the default happy-hour window, a starter room
// inventory and a small catalog with one cocktail recipe. Each block is
// guarded by a count so re-running is a no-op.
func SeedDatabase() {
	// ---------------- Happy hour settings ----------------
	var settingCount int64
	DB.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		categories, _ := json.Marshal([]models.ItemCategory{
			models.CategoryBeer,
			models.CategoryWine,
			models.CategorySpirits,
			models.CategoryCocktails,
		})
		setting := models.HotelSetting{
			Name:                "Hotel Ops",
			HappyHourStart:      "16:00",
			HappyHourEnd:        "18:00",
			HappyHourCategories: datatypes.JSON(categories),
		}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed hotel settings: %v", err)
		} else {
			log.Println("Hotel settings seeded")
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", Type: models.RoomStandard, Status: models.RoomVacant, Capacity: 2, DailyRateUSD: money.MustParse("100")},
			{RoomNumber: "102", Type: models.RoomStandard, Status: models.RoomVacant, Capacity: 2, DailyRateUSD: money.MustParse("100")},
			{RoomNumber: "201", Type: models.RoomSuperior, Status: models.RoomVacant, Capacity: 3, DailyRateUSD: money.MustParse("150")},
			{RoomNumber: "301", Type: models.RoomDeluxe, Status: models.RoomVacant, Capacity: 4, DailyRateUSD: money.MustParse("220")},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	// ---------------- Catalog ----------------
	var itemCount int64
	DB.Model(&models.Item{}).Count(&itemCount)
	if itemCount > 0 {
		return
	}

	gin := models.Item{Name: "Gin (shot)", Category: models.CategorySpirits, PriceUSD: money.MustParse("6.00"), QuantityInStock: 200, Unit: "shot"}
	campari := models.Item{Name: "Campari (shot)", Category: models.CategorySpirits, PriceUSD: money.MustParse("5.50"), QuantityInStock: 120, Unit: "shot"}
	vermouth := models.Item{Name: "Sweet Vermouth (shot)", Category: models.CategoryIngredient, PriceUSD: money.MustParse("4.00"), QuantityInStock: 120, Unit: "shot"}
	tonic := models.Item{Name: "Tonic Water", Category: models.CategorySoftDrinks, PriceUSD: money.MustParse("3.00"), QuantityInStock: 300, Unit: "bottle"}
	lager := models.Item{Name: "House Lager", Category: models.CategoryBeer, PriceUSD: money.MustParse("7.00"), HappyHourPriceUSD: amountPtr("5.00"), QuantityInStock: 240, Unit: "bottle"}
	nuts := models.Item{Name: "Bar Nuts", Category: models.CategorySnacks, PriceUSD: money.MustParse("4.50"), QuantityInStock: 80}

	leaves := []*models.Item{&gin, &campari, &vermouth, &tonic, &lager, &nuts}
	for _, item := range leaves {
		if err := DB.Create(item).Error; err != nil {
			log.Printf("warning: failed to seed item %s: %v", item.Name, err)
			return
		}
	}

	negroni := models.Item{Name: "Negroni", Category: models.CategoryCocktails, PriceUSD: money.MustParse("14.00"), HappyHourPriceUSD: amountPtr("10.00")}
	ginTonic := models.Item{Name: "Gin & Tonic", Category: models.CategoryCocktails, PriceUSD: money.MustParse("11.00"), HappyHourPriceUSD: amountPtr("8.00")}
	for _, item := range []*models.Item{&negroni, &ginTonic} {
		if err := DB.Create(item).Error; err != nil {
			log.Printf("warning: failed to seed item %s: %v", item.Name, err)
			return
		}
	}

	edges := []models.ItemIngredient{
		{ParentItemID: negroni.ID, ChildItemID: gin.ID, Quantity: money.MustParse("1"), Unit: "shot"},
		{ParentItemID: negroni.ID, ChildItemID: campari.ID, Quantity: money.MustParse("1"), Unit: "shot"},
		{ParentItemID: negroni.ID, ChildItemID: vermouth.ID, Quantity: money.MustParse("1"), Unit: "shot"},
		{ParentItemID: ginTonic.ID, ChildItemID: gin.ID, Quantity: money.MustParse("1.5"), Unit: "shot"},
		{ParentItemID: ginTonic.ID, ChildItemID: tonic.ID, Quantity: money.MustParse("1"), Unit: "bottle"},
	}
	if err := DB.Create(&edges).Error; err != nil {
		log.Printf("warning: failed to seed ingredient edges: %v", err)
		return
	}
	log.Println("Catalog seeded")
}

func amountPtr(s string) *money.Amount {
	a := money.MustParse(s)
	return &a
}
