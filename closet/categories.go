package closet

import "strings"

// categoryFamilies groups near-synonymous garment categories. Both singular
// and plural spellings are listed so model output ("tops") and inventory
// labels ("shirt") land in the same family.
var categoryFamilies = map[string]string{
	"top": "tops", "tops": "tops",
	"shirt": "tops", "shirts": "tops",
	"t-shirt": "tops", "t-shirts": "tops",
	"tshirt": "tops", "tshirts": "tops",
	"tee": "tops", "tees": "tops",
	"blouse": "tops", "blouses": "tops",
	"sweater": "tops", "sweaters": "tops",
	"hoodie": "tops", "hoodies": "tops",
	"cardigan": "tops", "cardigans": "tops",
	"tank top": "tops", "tank tops": "tops",
	"polo": "tops", "polos": "tops",

	"bottom": "bottoms", "bottoms": "bottoms",
	"pant": "bottoms", "pants": "bottoms",
	"jean": "bottoms", "jeans": "bottoms",
	"short": "bottoms", "shorts": "bottoms",
	"trouser": "bottoms", "trousers": "bottoms",
	"legging": "bottoms", "leggings": "bottoms",
	"skirt": "bottoms", "skirts": "bottoms",
	"chino": "bottoms", "chinos": "bottoms",

	"dress": "dresses", "dresses": "dresses",
	"gown": "dresses", "gowns": "dresses",
	"jumpsuit": "dresses", "jumpsuits": "dresses",
	"romper": "dresses", "rompers": "dresses",

	"outerwear": "outerwear",
	"jacket":    "outerwear", "jackets": "outerwear",
	"coat": "outerwear", "coats": "outerwear",
	"blazer": "outerwear", "blazers": "outerwear",
	"parka": "outerwear", "parkas": "outerwear",
	"vest": "outerwear", "vests": "outerwear",

	"shoe": "shoes", "shoes": "shoes",
	"footwear": "shoes",
	"sneaker":  "shoes", "sneakers": "shoes",
	"boot": "shoes", "boots": "shoes",
	"sandal": "shoes", "sandals": "shoes",
	"heel": "shoes", "heels": "shoes",
	"loafer": "shoes", "loafers": "shoes",

	"accessory": "accessories", "accessories": "accessories",
	"hat": "accessories", "hats": "accessories",
	"scarf": "accessories", "scarves": "accessories",
	"belt": "accessories", "belts": "accessories",
	"bag": "accessories", "bags": "accessories",
	"glove": "accessories", "gloves": "accessories",
	"jewelry": "accessories",
}

// categoryFamily resolves a raw category label to its family. Labels with
// no alias entry are their own family, so unknown categories still match
// themselves exactly.
func categoryFamily(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if family, ok := categoryFamilies[c]; ok {
		return family
	}
	return c
}

// CategoriesMatch reports whether two category labels belong to the same
// family. It is symmetric: CategoriesMatch(a, b) == CategoriesMatch(b, a).
func CategoriesMatch(a, b string) bool {
	fa, fb := categoryFamily(a), categoryFamily(b)
	if fa == "" || fb == "" {
		return false
	}
	return fa == fb
}
