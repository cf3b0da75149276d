package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Nevera-api/internal/domain/entity"
)

// FallbackShelfLifeDays vida útil para alimentos que no están en la tabla.
const FallbackShelfLifeDays = 7

// shelfLifeDays vida útil por defecto (días) por nombre en minúsculas.
// Solo se lee a través de DefaultExpiryDays; no exportar.
var shelfLifeDays = map[string]int{
	// Lácteos
	"milk": 7, "glass of milk": 7, "greek yoghurt": 10, "curd": 10,
	"butter": 90, "salted butter": 90, "cottage cheese": 10, "ricotta cheese": 7,
	"goat_cheese": 14, "blue cheese": 21, "cheese": 14,
	"heavy cream": 7, "heavy whipping cream": 7, "sweet cream": 7,

	// Carnes y pescados
	"chicken": 2, "chicken_breast": 2, "meat": 3, "beef": 3, "ground_beef": 2,
	"bacon": 7, "ham": 7, "saussage": 7, "roasted turkey breast": 3,
	"fish": 2, "salmon": 2, "shrimp": 2,

	// Huevos
	"eggs": 21, "egg crate": 21, "egg bites": 3,

	// Panadería
	"bread": 7, "english muffins": 7, "cake": 4, "doughnut": 3,
	"texas toast": 7, "mac and cheese": 4, "chocolate": 30,

	// Frutas
	"apple": 30, "green apple": 30, "banana": 7, "avacado": 5, "dragon fruit": 7,
	"grapes": 7, "red grapes": 7, "pomegrante": 14, "pear": 7, "peach": 5,
	"mango": 7, "muskmelon": 7, "watermelon": 7, "papaya": 5, "kiwi": 7,
	"pineapple": 5, "orange": 14, "lime": 14, "lemon": 14,

	// Verduras
	"carrot": 30, "carrots": 30, "baby carrots": 21, "tomato": 7, "baby tomato": 7,
	"bell pepper": 10, "capsicum": 10, "red bell pepper": 10,
	"orange bell pepper": 10, "yellow bell pepper": 10,
	"brinjal": 7, "broccoli": 7, "brussel sprouts": 7,
	"cabbage": 30, "purple cabbage": 30, "red cabbage": 30, "cauliflower": 7,
	"lettuce": 7, "spinach": 5, "kale": 7, "parsley": 7, "coriander": 7,
	"rocket leaves": 5, "zucchini": 7, "pumpkin": 14, "turnip": 14,
	"onion": 30, "garlic": 30, "beans": 5, "green_beans": 5,
	"mushroom": 5, "mushrooms": 5, "beetroot": 14, "jalapeno": 7,
	"green onions": 7, "spring onion": 7,

	// Condimentos y envasados
	"mayonise": 30, "ketchup": 30, "sriracha": 90, "jam jar": 30,
	"strawberry jam": 30, "jar of pickles": 90, "pickles": 90,
	"pickled onion": 30, "pickled cucumber": 30, "pickled carrot": 30,
	"kimchi": 30, "pesto": 14, "hummus": 7,

	// Bebidas
	"alcohol": 90, "coconut water": 7, "orange juice": 7,
	"lemonade": 7, "tea": 90, "french vanilla": 7,

	// Varios
	"salad": 2, "flour": 30, "sugar": 90, "ice cubes": 90,
	"water bottle": 90, "fridge": 90, "bottle": 90, "container": 90, "box": 90,
}

// DefaultExpiryDays devuelve la vida útil en días para item (sin distinguir mayúsculas).
func DefaultExpiryDays(item string) int {
	if days, ok := shelfLifeDays[strings.ToLower(item)]; ok {
		return days
	}
	return FallbackShelfLifeDays
}

// DefaultExpiry fecha de vencimiento por defecto: hoy + vida útil de item.
func DefaultExpiry(item string, today time.Time) time.Time {
	return entity.Date(today).AddDate(0, 0, DefaultExpiryDays(item))
}

// ExpiryPolicy qué hacer con el vencimiento guardado cuando se vuelve a registrar
// un alimento sin fecha explícita.
type ExpiryPolicy string

const (
	// ExpiryRefresh sobrescribe siempre con el vencimiento recalculado.
	ExpiryRefresh ExpiryPolicy = "refresh"
	// ExpiryKeepEarliest conserva la fecha más próxima entre la guardada y la recalculada.
	ExpiryKeepEarliest ExpiryPolicy = "keep_earliest"
)

// ParseExpiryPolicy valida el valor de configuración. Vacío = refresh.
func ParseExpiryPolicy(s string) (ExpiryPolicy, error) {
	switch p := ExpiryPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", ExpiryRefresh:
		return ExpiryRefresh, nil
	case ExpiryKeepEarliest:
		return p, nil
	default:
		return "", fmt.Errorf("política de vencimiento desconocida: %q", s)
	}
}
