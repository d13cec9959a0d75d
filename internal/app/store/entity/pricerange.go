package entity

import "fmt"

// Categories - фиксированный набор категорий товаров
var Categories = []string{
	"Electronics",
	"Clothing",
	"Home & Garden",
	"Sports",
	"Beauty",
	"Food & Drink",
}

// PriceRanges - фиксированный набор ценовых диапазонов в порядке возрастания.
// Порядок важен: он используется как tie-break при выборе
// mostReviewedPriceRange в аналитике
var PriceRanges = []string{
	PriceRangeUnder20,
	PriceRange20to50,
	PriceRange50to100,
	PriceRange100to200,
	PriceRangeOver200,
}

const (
	PriceRangeUnder20  = "Under £20"
	PriceRange20to50   = "£20-£50"
	PriceRange50to100  = "£50-£100"
	PriceRange100to200 = "£100-£200"
	PriceRangeOver200  = "Over £200"
)

// PriceRangeOf классифицирует цену в один из пяти диапазонов.
// Интервалы полуоткрытые, нижняя граница включается: 20.00 -> "£20-£50".
// Эта же разбивка используется и в каталоге, и в аналитике,
// чтобы принадлежность к диапазону нигде не расходилась
func PriceRangeOf(price float64) string {
	switch {
	case price < 20:
		return PriceRangeUnder20
	case price < 50:
		return PriceRange20to50
	case price < 100:
		return PriceRange50to100
	case price < 200:
		return PriceRange100to200
	default:
		return PriceRangeOver200
	}
}

// PriceRangeBounds возвращает числовые границы диапазона [min, max).
// Для "Over £200" верхней границы нет: unbounded = true.
// ok = false для неизвестной метки диапазона
func PriceRangeBounds(label string) (min, max float64, unbounded, ok bool) {
	switch label {
	case PriceRangeUnder20:
		return 0, 20, false, true
	case PriceRange20to50:
		return 20, 50, false, true
	case PriceRange50to100:
		return 50, 100, false, true
	case PriceRange100to200:
		return 100, 200, false, true
	case PriceRangeOver200:
		return 200, 0, true, true
	default:
		return 0, 0, false, false
	}
}

// IsValidCategory проверяет принадлежность категории к фиксированному набору
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// FormatPrice форматирует цену для отображения: 12.5 -> "£12.50"
func FormatPrice(price float64) string {
	return fmt.Sprintf("£%.2f", price)
}

// WithPriceRange декорирует товар вычисляемыми полями priceRange и formattedPrice
func WithPriceRange(p Product) ProductWithRange {
	return ProductWithRange{
		Product:        p,
		PriceRange:     PriceRangeOf(p.Price),
		FormattedPrice: FormatPrice(p.Price),
	}
}
