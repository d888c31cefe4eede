package off

import (
	"strconv"
	"strings"
)

// Product mirrors a product record as returned by the Open Food Facts API.
// Nearly every field is optional; the API omits whatever it does not know.
type Product struct {
	ID            string `json:"_id"`
	Code          string `json:"code"`
	ProductName   string `json:"product_name"`
	ProductNameEn string `json:"product_name_en"`
	GenericName   string `json:"generic_name"`
	Brands        string `json:"brands"`

	ImageURL           string `json:"image_url"`
	ImageSmallURL      string `json:"image_small_url"`
	ImageFrontURL      string `json:"image_front_url"`
	ImageFrontSmallURL string `json:"image_front_small_url"`

	Categories     string   `json:"categories"`
	CategoriesTags []string `json:"categories_tags"`
	Labels         string   `json:"labels"`
	LabelsTags     []string `json:"labels_tags"`

	// Nutriments is the sparse per-nutrient block. Values are usually JSON
	// numbers but the API occasionally serializes them as strings, so the
	// raw map is kept and Nutrient performs the coercion.
	Nutriments map[string]any `json:"nutriments"`

	NutriscoreGrade string `json:"nutriscore_grade"`
	EcoscoreGrade   string `json:"ecoscore_grade"`
	NovaGroup       int    `json:"nova_group"`

	IngredientsText string   `json:"ingredients_text"`
	AllergensTags   []string `json:"allergens_tags"`
}

// Key returns the identifier used for de-duplication and favorites,
// preferring _id and falling back to the barcode.
func (p Product) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Code
}

// DisplayName returns the best available name using the fallback order
// product_name → product_name_en → generic_name → "".
func (p Product) DisplayName() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	if p.ProductNameEn != "" {
		return p.ProductNameEn
	}
	return p.GenericName
}

// Nutrient looks up the per-100g value for a nutrient name, e.g.
// Nutrient("sugars") reads "sugars_100g". The second return is false when
// the value is absent or not coercible to a number.
func (p Product) Nutrient(name string) (float64, bool) {
	return coerceFloat(p.Nutriments[name+"_100g"])
}

// EnergyKcal100g returns the kcal-per-100g value, or 0 when absent.
func (p Product) EnergyKcal100g() float64 {
	v, _ := p.Nutrient("energy-kcal")
	return v
}

// Grade returns the normalized (lowercase, trimmed) Nutri-Score letter,
// or "" when the product is ungraded.
func (p Product) Grade() string {
	return strings.ToLower(strings.TrimSpace(p.NutriscoreGrade))
}

// SearchResult is the normalized shape shared by the text-search and
// category endpoints.
type SearchResult struct {
	Count     int       `json:"count"`
	Page      int       `json:"page"`
	PageCount int       `json:"page_count"`
	PageSize  int       `json:"page_size"`
	Products  []Product `json:"products"`
}

// productEnvelope mirrors /api/v0/product/{id}. A zero status or missing
// product signals not-found rather than a transport failure.
type productEnvelope struct {
	Code          string   `json:"code"`
	Product       *Product `json:"product"`
	Status        int      `json:"status"`
	StatusVerbose string   `json:"status_verbose"`
}

func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
