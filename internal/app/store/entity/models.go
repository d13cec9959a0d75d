package entity

import (
	"time"
)

// Product представляет товар каталога
// (name, category) уникальны на уровне приложения и БД
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_products_name_category"`
	Category  string    `json:"category" gorm:"size:50;not null;uniqueIndex:idx_products_name_category"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Ассоциация нужна только для каскадного удаления отзывов вместе с товаром
	Reviews []Review `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductWithRange - товар с вычисляемыми полями для фронтенда
type ProductWithRange struct {
	Product
	PriceRange     string `json:"priceRange"`
	FormattedPrice string `json:"formattedPrice"`
}

// ProductBrief - проекция товара {id, name, category, price},
// присоединяемая к отзывам через JOIN
type ProductBrief struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// TableName - проекция читает из таблицы products
func (ProductBrief) TableName() string {
	return "products"
}

// Review представляет отзыв на товар
// Category копируется из товара в момент создания и больше не обновляется:
// аналитика намеренно группирует по исторической категории,
// даже если категория товара потом изменится
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"productId" gorm:"not null;index"`
	Category  string    `json:"category" gorm:"size:50;not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   *string   `json:"comment" gorm:"size:300"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// constraint:- чтобы миграция не создавала второй FK поверх product_id,
	// каскад задает единственная связь Product.Reviews
	Product *ProductBrief `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:-"`
}

// User представляет сотрудника магазина
// Password хранит только bcrypt-хэш и никогда не сериализуется в JSON
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	FirstName string    `json:"firstName" gorm:"size:50;not null"`
	LastName  string    `json:"lastName" gorm:"size:50;not null"`
	Password  string    `json:"-" gorm:"size:100;not null"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewEvent представляет событие создания отзыва для Kafka
type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED
	ReviewID  uint      `json:"review_id"`
	ProductID uint      `json:"product_id"`
	Category  string    `json:"category"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
