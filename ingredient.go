package skillet

import (
	"strings"
)

// IngredientKind discriminates the Ingredient union.
type IngredientKind string

// Ingredient variants. Source data arrives in either shape and is
// normalized without loss.
const (
	IngredientPlain      IngredientKind = "plain"
	IngredientStructured IngredientKind = "structured"
)

// Ingredient is a tagged union: either free text (Plain) or a parsed
// name/quantity/unit record (Structured). Consumers must handle both
// variants; Display renders either.
type Ingredient struct {
	Kind IngredientKind `json:"kind"`

	// Plain variant.
	Text string `json:"text,omitempty"`

	// Structured variant.
	Name        string `json:"name,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	Unit        string `json:"unit,omitempty"`
	DisplayText string `json:"displayText,omitempty"`
}

// PlainIngredient returns the Plain variant for free-form text.
func PlainIngredient(text string) Ingredient {
	return Ingredient{Kind: IngredientPlain, Text: strings.TrimSpace(text)}
}

// StructuredIngredient returns the Structured variant.
func StructuredIngredient(name, quantity, unit string) Ingredient {
	parts := make([]string, 0, 3)
	for _, p := range []string{quantity, unit, name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return Ingredient{
		Kind:        IngredientStructured,
		Name:        name,
		Quantity:    quantity,
		Unit:        unit,
		DisplayText: strings.Join(parts, " "),
	}
}

// Display renders the ingredient for humans, whichever variant it is.
func (i Ingredient) Display() string {
	if i.Kind == IngredientStructured {
		return i.DisplayText
	}
	return i.Text
}

// unitVocabulary maps unit spellings (lowercase, singular and plural) to a
// canonical unit name.
var unitVocabulary = map[string]string{
	"cup": "cup", "cups": "cup",
	"tablespoon": "tablespoon", "tablespoons": "tablespoon", "tbsp": "tablespoon", "tbs": "tablespoon",
	"teaspoon": "teaspoon", "teaspoons": "teaspoon", "tsp": "teaspoon",
	"gram": "gram", "grams": "gram", "g": "gram",
	"kilogram": "kilogram", "kilograms": "kilogram", "kg": "kilogram",
	"milliliter": "milliliter", "milliliters": "milliliter", "ml": "milliliter",
	"liter": "liter", "liters": "liter", "l": "liter",
	"ounce": "ounce", "ounces": "ounce", "oz": "ounce",
	"pound": "pound", "pounds": "pound", "lb": "pound", "lbs": "pound",
	"pinch": "pinch", "pinches": "pinch",
	"dash": "dash", "dashes": "dash",
	"clove": "clove", "cloves": "clove",
	"slice": "slice", "slices": "slice",
	"can": "can", "cans": "can",
	"stick": "stick", "sticks": "stick",
	"piece": "piece", "pieces": "piece",
	"bunch": "bunch", "bunches": "bunch",
	"handful": "handful", "handfuls": "handful",
	"package": "package", "packages": "package", "pkg": "package",
}

// unicodeFractions maps single-rune vulgar fractions to ASCII.
var unicodeFractions = map[rune]string{
	'½': "1/2", '¼': "1/4", '¾': "3/4",
	'⅓': "1/3", '⅔': "2/3",
	'⅛': "1/8", '⅜': "3/8", '⅝': "5/8", '⅞': "7/8",
}

// ParseIngredient normalizes an {item, quantity} pair from the extraction
// model into the Ingredient union. Free-text amounts like "1 1/2 cups" or
// "½ tsp" are split into quantity and canonical unit; anything that does
// not parse stays a Plain ingredient so no information is lost.
func ParseIngredient(item, quantity string) Ingredient {
	item = strings.TrimSpace(item)
	quantity = strings.TrimSpace(quantity)
	if item == "" {
		return PlainIngredient(quantity)
	}
	if quantity == "" {
		return PlainIngredient(item)
	}

	amount, unit, rest := splitAmount(quantity)
	if amount == "" && unit == "" {
		return PlainIngredient(strings.TrimSpace(quantity + " " + item))
	}

	name := item
	if rest != "" {
		name = strings.TrimSpace(rest + " " + item)
	}
	return StructuredIngredient(name, amount, unit)
}

// splitAmount splits a free-text amount string into a numeric part, a
// canonical unit, and any leftover descriptive text.
func splitAmount(s string) (amount, unit, rest string) {
	fields := strings.Fields(normalizeFractions(s))
	i := 0

	// Consume leading numeric tokens ("1", "1.5", "1/2", "1 1/2").
	var nums []string
	for i < len(fields) && isNumericToken(fields[i]) {
		nums = append(nums, fields[i])
		i++
	}
	amount = strings.Join(nums, " ")

	// A unit may follow the number.
	if i < len(fields) {
		if canonical, ok := unitVocabulary[strings.ToLower(strings.Trim(fields[i], ".,"))]; ok {
			unit = canonical
			i++
		}
	}

	rest = strings.Join(fields[i:], " ")
	return amount, unit, rest
}

// normalizeFractions rewrites unicode vulgar fractions as ASCII, inserting
// a space between a leading integer and the fraction ("1½" → "1 1/2").
func normalizeFractions(s string) string {
	var b strings.Builder
	for _, r := range s {
		if frac, ok := unicodeFractions[r]; ok {
			if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
			b.WriteString(frac)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isNumericToken reports whether a token is an integer, decimal, fraction,
// or range ("1-2").
func isNumericToken(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == '/' || r == '-' || r == ',':
		default:
			return false
		}
	}
	// Reject pure punctuation.
	return strings.ContainsAny(tok, "0123456789")
}
