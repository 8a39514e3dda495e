package catalog

import "github.com/shopspring/decimal"

func brl(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// FallbackProducts is the bundled menu, served when the products table is
// empty or unreachable.
func FallbackProducts() []Product {
	return []Product{
		{
			ID:          1,
			Title:       "Açaí Tradicional 300ml",
			Description: "Cremosidade na medida, montado com camadas generosas.",
			Price:       brl("12.00"),
			Category:    CategoryTraditional,
			ImageURL:    "https://vtdmsvwuhvjpzjlvkmpc.supabase.co/storage/v1/object/public/Acai%20da%20Tati/001.jpg",
		},
		{
			ID:          2,
			Title:       "Açaí Tradicional 500ml",
			Description: "A porção favorita. Muita energia e muito recheio.",
			Price:       brl("15.00"),
			Category:    CategoryTraditional,
			ImageURL:    "https://vtdmsvwuhvjpzjlvkmpc.supabase.co/storage/v1/object/public/Acai%20da%20Tati/Gemini_Generated_Image_43tn3v43tn3v43tn.png",
		},
	}
}

// AvailableAddons lists every addon the store offers.
func AvailableAddons() []Addon {
	return []Addon{
		// frutas e crocantes
		{ID: "morango_fruta", Title: "Morango (Fruta)", Price: brl("4.00")},
		{ID: "banana", Title: "Banana", Price: brl("3.00")},
		{ID: "gran", Title: "Granola Crocante", Price: brl("3.00")},
		{ID: "leite_po", Title: "Leite em Pó", Price: brl("3.00")},
		{ID: "farofa", Title: "Farofa Crocante", Price: brl("3.00")},
		{ID: "pacoca_item", Title: "Paçoca", Price: brl("3.00")},
		{ID: "amendoim_granulado", Title: "Amendoim Granulado", Price: brl("3.00")},
		{ID: "ovomaltine", Title: "Ovomaltine em Pó", Price: brl("3.00")},
		{ID: "leite_condensado", Title: "Leite Condensado", Price: brl("3.00")},

		// cremes especiais
		{ID: "nutella", Title: "Nutella Original", Price: brl("4.00")},
		{ID: "creme_morango", Title: "Creme de Morango", Price: brl("3.00")},
		{ID: "creme_cookies", Title: "Creme de Cookies", Price: brl("3.00")},
		{ID: "creme_leitinho", Title: "Creme de Leitinho", Price: brl("3.00")},
		{ID: "creme_choco", Title: "Creme Chocowafer", Price: brl("3.00")},
	}
}
