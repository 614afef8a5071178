// internal/catalog/defaults.go
package catalog

import (
	"mcp-meal-plan/internal/models"
)

const (
	TagTraditional = "tradicional"
	TagVegetarian  = "vegetarian"
	TagLowCarb     = "low-carb"
)

// Default returns the catalog shipped with the service.
func Default() *Catalog {
	c, err := New(defaultTemplates)
	if err != nil {
		panic("catalog: built-in templates are invalid: " + err.Error())
	}
	return c
}

func item(name string, qty float64, measure, group string, aliases ...string) models.TemplateItem {
	return models.TemplateItem{FoodName: name, Aliases: aliases, Quantity: qty, Measure: measure, FoodGroup: group}
}

func optional(it models.TemplateItem) models.TemplateItem {
	it.Optional = true
	return it
}

var defaultTemplates = []models.MealTemplate{
	// breakfast
	{
		ID: "bf-pao-ovos", Name: "Pão francês com ovos mexidos", MealType: models.Breakfast, TargetKcal: 400,
		Description: "Pão francês, ovos mexidos e café com leite",
		Items: []models.TemplateItem{
			item("Pão francês", 1, "unidade", "cereais", "pão de sal", "pão"),
			item("Ovo de galinha", 2, "unidade", "proteinas", "ovo mexido", "ovo"),
			item("Café com leite", 200, "ml", "laticinios", "cafe com leite"),
			optional(item("Mamão papaia", 100, "g", "frutas", "mamão")),
		},
		Tags: []string{TagTraditional},
	},
	{
		ID: "bf-tapioca-queijo", Name: "Tapioca com queijo branco", MealType: models.Breakfast, TargetKcal: 350,
		Description: "Tapioca recheada com queijo minas e uma fruta",
		Items: []models.TemplateItem{
			item("Tapioca", 60, "g", "cereais", "goma de tapioca"),
			item("Queijo minas frescal", 40, "g", "laticinios", "queijo branco"),
			item("Banana prata", 1, "unidade", "frutas", "banana"),
		},
		Tags: []string{TagTraditional, TagVegetarian},
	},
	{
		ID: "bf-iogurte-granola", Name: "Iogurte com granola e frutas", MealType: models.Breakfast, TargetKcal: 450,
		Description: "Iogurte natural, granola sem açúcar e frutas vermelhas",
		Items: []models.TemplateItem{
			item("Iogurte natural", 170, "g", "laticinios", "iogurte"),
			item("Granola", 40, "g", "cereais"),
			item("Morango", 100, "g", "frutas", "frutas vermelhas"),
			optional(item("Mel", 10, "g", "acucares")),
		},
		Tags: []string{TagVegetarian},
	},
	{
		ID: "bf-omelete-legumes", Name: "Omelete de legumes", MealType: models.Breakfast, TargetKcal: 300,
		Description: "Omelete de três ovos com tomate, espinafre e queijo",
		Items: []models.TemplateItem{
			item("Ovo de galinha", 3, "unidade", "proteinas", "ovo"),
			item("Espinafre", 30, "g", "vegetais"),
			item("Tomate", 50, "g", "vegetais"),
			item("Queijo muçarela", 20, "g", "laticinios", "mussarela"),
		},
		Tags: []string{TagVegetarian, TagLowCarb},
	},
	{
		ID: "bf-cuscuz-ovo", Name: "Cuscuz nordestino com ovo", MealType: models.Breakfast, TargetKcal: 550,
		Description: "Cuscuz de milho com ovo cozido, manteiga e café",
		Items: []models.TemplateItem{
			item("Cuscuz de milho", 150, "g", "cereais", "flocão", "cuscuz"),
			item("Ovo de galinha", 2, "unidade", "proteinas", "ovo cozido"),
			item("Manteiga", 10, "g", "gorduras"),
			item("Café", 100, "ml", "bebidas"),
		},
		Tags: []string{TagTraditional, TagVegetarian},
	},

	// morning snack
	{
		ID: "ms-castanhas", Name: "Mix de castanhas", MealType: models.MorningSnack, TargetKcal: 200,
		Description: "Castanha-do-pará, amêndoas e nozes",
		Items: []models.TemplateItem{
			item("Castanha-do-pará", 10, "g", "oleaginosas", "castanha do brasil"),
			item("Amêndoa", 15, "g", "oleaginosas"),
			item("Nozes", 10, "g", "oleaginosas"),
		},
		Tags: []string{TagVegetarian, TagLowCarb},
	},
	{
		ID: "ms-banana-aveia", Name: "Banana com aveia", MealType: models.MorningSnack, TargetKcal: 220,
		Description: "Banana amassada com aveia em flocos e canela",
		Items: []models.TemplateItem{
			item("Banana prata", 1, "unidade", "frutas", "banana"),
			item("Aveia em flocos", 30, "g", "cereais", "aveia"),
			optional(item("Canela", 1, "g", "temperos")),
		},
		Tags: []string{TagTraditional, TagVegetarian},
	},
	{
		ID: "ms-sanduiche-natural", Name: "Sanduíche natural de frango", MealType: models.MorningSnack, TargetKcal: 280,
		Description: "Pão integral com frango desfiado, cenoura e alface",
		Items: []models.TemplateItem{
			item("Pão integral", 2, "fatia", "cereais", "pão de forma integral"),
			item("Frango desfiado", 50, "g", "proteinas", "peito de frango"),
			item("Cenoura ralada", 20, "g", "vegetais", "cenoura"),
			optional(item("Alface", 10, "g", "vegetais")),
		},
		Tags: []string{TagTraditional},
	},

	// lunch
	{
		ID: "lu-arroz-feijao-frango", Name: "Arroz, feijão e frango grelhado", MealType: models.Lunch, TargetKcal: 700,
		Description: "Prato feito com arroz branco, feijão carioca, frango e salada",
		Items: []models.TemplateItem{
			item("Arroz branco cozido", 150, "g", "cereais", "arroz"),
			item("Feijão carioca cozido", 100, "g", "leguminosas", "feijão"),
			item("Peito de frango grelhado", 120, "g", "proteinas", "frango grelhado", "frango"),
			item("Salada de folhas", 50, "g", "vegetais", "alface", "salada"),
			item("Azeite de oliva", 5, "ml", "gorduras", "azeite"),
		},
		Tags: []string{TagTraditional},
	},
	{
		ID: "lu-arroz-feijao-carne", Name: "Arroz, feijão e carne moída", MealType: models.Lunch, TargetKcal: 850,
		Description: "Arroz, feijão preto, carne moída refogada e legumes",
		Items: []models.TemplateItem{
			item("Arroz branco cozido", 180, "g", "cereais", "arroz"),
			item("Feijão preto cozido", 120, "g", "leguminosas", "feijão"),
			item("Carne moída refogada", 120, "g", "proteinas", "patinho moído", "carne moída"),
			item("Abobrinha refogada", 80, "g", "vegetais", "abobrinha"),
		},
		Tags: []string{TagTraditional},
	},
	{
		ID: "lu-arroz-feijao-omelete", Name: "Arroz, feijão e omelete", MealType: models.Lunch, TargetKcal: 650,
		Description: "Prato feito vegetariano com omelete e salada",
		Items: []models.TemplateItem{
			item("Arroz branco cozido", 150, "g", "cereais", "arroz"),
			item("Feijão carioca cozido", 100, "g", "leguminosas", "feijão"),
			item("Omelete", 2, "unidade", "proteinas", "ovo"),
			item("Salada de tomate", 80, "g", "vegetais", "tomate"),
		},
		Tags: []string{TagTraditional, TagVegetarian},
	},
	{
		ID: "lu-salada-frango", Name: "Salada completa com frango", MealType: models.Lunch, TargetKcal: 550,
		Description: "Folhas, legumes, frango grelhado e azeite",
		Items: []models.TemplateItem{
			item("Peito de frango grelhado", 150, "g", "proteinas", "frango"),
			item("Mix de folhas", 80, "g", "vegetais", "alface", "rúcula"),
			item("Brócolis cozido", 80, "g", "vegetais", "brócolis"),
			item("Abacate", 50, "g", "frutas"),
			item("Azeite de oliva", 10, "ml", "gorduras", "azeite"),
		},
		Tags: []string{TagLowCarb},
	},
	{
		ID: "lu-peixe-legumes", Name: "Peixe assado com legumes", MealType: models.Lunch, TargetKcal: 600,
		Description: "Tilápia assada, legumes no vapor e purê de abóbora",
		Items: []models.TemplateItem{
			item("Filé de tilápia assado", 180, "g", "proteinas", "tilápia", "peixe"),
			item("Legumes no vapor", 150, "g", "vegetais", "cenoura", "vagem"),
			item("Purê de abóbora", 100, "g", "vegetais", "abóbora"),
			item("Azeite de oliva", 10, "ml", "gorduras", "azeite"),
		},
		Tags: []string{TagLowCarb},
	},
	{
		ID: "lu-quinoa-grao-bico", Name: "Quinoa com grão-de-bico", MealType: models.Lunch, TargetKcal: 720,
		Description: "Quinoa, grão-de-bico, legumes assados e tahine",
		Items: []models.TemplateItem{
			item("Quinoa cozida", 150, "g", "cereais", "quinoa"),
			item("Grão-de-bico cozido", 120, "g", "leguminosas", "grão de bico"),
			item("Legumes assados", 150, "g", "vegetais", "abobrinha", "berinjela"),
			item("Tahine", 15, "g", "gorduras"),
		},
		Tags: []string{TagVegetarian},
	},

	// afternoon snack
	{
		ID: "as-iogurte-fruta", Name: "Iogurte com fruta", MealType: models.AfternoonSnack, TargetKcal: 200,
		Description: "Iogurte natural com mamão e chia",
		Items: []models.TemplateItem{
			item("Iogurte natural", 170, "g", "laticinios", "iogurte"),
			item("Mamão papaia", 100, "g", "frutas", "mamão"),
			optional(item("Chia", 5, "g", "sementes")),
		},
		Tags: []string{TagVegetarian},
	},
	{
		ID: "as-pao-queijo", Name: "Pão de queijo com café", MealType: models.AfternoonSnack, TargetKcal: 250,
		Description: "Pão de queijo e café sem açúcar",
		Items: []models.TemplateItem{
			item("Pão de queijo", 3, "unidade", "cereais"),
			item("Café", 100, "ml", "bebidas"),
		},
		Tags: []string{TagTraditional, TagVegetarian},
	},
	{
		ID: "as-ovos-cozidos", Name: "Ovos cozidos com tomate-cereja", MealType: models.AfternoonSnack, TargetKcal: 210,
		Description: "Dois ovos cozidos, tomates-cereja e queijo branco",
		Items: []models.TemplateItem{
			item("Ovo de galinha cozido", 2, "unidade", "proteinas", "ovo"),
			item("Tomate-cereja", 60, "g", "vegetais", "tomate"),
			item("Queijo minas frescal", 30, "g", "laticinios", "queijo branco"),
		},
		Tags: []string{TagVegetarian, TagLowCarb},
	},
	{
		ID: "as-vitamina-banana", Name: "Vitamina de banana", MealType: models.AfternoonSnack, TargetKcal: 300,
		Description: "Leite batido com banana, aveia e pasta de amendoim",
		Items: []models.TemplateItem{
			item("Leite semidesnatado", 250, "ml", "laticinios", "leite"),
			item("Banana prata", 1, "unidade", "frutas", "banana"),
			item("Aveia em flocos", 15, "g", "cereais", "aveia"),
			item("Pasta de amendoim", 10, "g", "oleaginosas"),
		},
		Tags: []string{TagVegetarian},
	},

	// dinner
	{
		ID: "di-sopa-frango", Name: "Sopa de legumes com frango", MealType: models.Dinner, TargetKcal: 450,
		Description: "Sopa de legumes com frango desfiado e macarrão",
		Items: []models.TemplateItem{
			item("Frango desfiado", 100, "g", "proteinas", "frango"),
			item("Batata", 100, "g", "tuberculos"),
			item("Cenoura", 60, "g", "vegetais"),
			item("Macarrão cozido", 50, "g", "cereais", "macarrão"),
		},
		Tags: []string{TagTraditional},
	},
	{
		ID: "di-omelete-salada", Name: "Omelete com salada", MealType: models.Dinner, TargetKcal: 400,
		Description: "Omelete de queijo com salada de folhas e azeite",
		Items: []models.TemplateItem{
			item("Ovo de galinha", 3, "unidade", "proteinas", "ovo"),
			item("Queijo minas", 30, "g", "laticinios", "queijo"),
			item("Salada de folhas", 80, "g", "vegetais", "alface"),
			item("Azeite de oliva", 5, "ml", "gorduras", "azeite"),
		},
		Tags: []string{TagVegetarian, TagLowCarb},
	},
	{
		ID: "di-frango-batata-doce", Name: "Frango com batata-doce", MealType: models.Dinner, TargetKcal: 550,
		Description: "Frango grelhado, batata-doce assada e brócolis",
		Items: []models.TemplateItem{
			item("Peito de frango grelhado", 120, "g", "proteinas", "frango"),
			item("Batata-doce assada", 150, "g", "tuberculos", "batata doce"),
			item("Brócolis cozido", 80, "g", "vegetais", "brócolis"),
		},
		Tags: []string{TagTraditional},
	},
	{
		ID: "di-wrap-vegetariano", Name: "Wrap vegetariano", MealType: models.Dinner, TargetKcal: 500,
		Description: "Wrap integral com homus, legumes grelhados e queijo",
		Items: []models.TemplateItem{
			item("Tortilha integral", 1, "unidade", "cereais", "wrap", "rap10"),
			item("Homus", 40, "g", "leguminosas", "pasta de grão de bico"),
			item("Legumes grelhados", 120, "g", "vegetais", "abobrinha", "pimentão"),
			item("Queijo muçarela", 30, "g", "laticinios", "mussarela"),
		},
		Tags: []string{TagVegetarian},
	},
	{
		ID: "di-carne-legumes", Name: "Carne com legumes salteados", MealType: models.Dinner, TargetKcal: 650,
		Description: "Patinho grelhado com legumes salteados no azeite",
		Items: []models.TemplateItem{
			item("Patinho grelhado", 150, "g", "proteinas", "bife", "carne"),
			item("Legumes salteados", 200, "g", "vegetais", "abobrinha", "vagem"),
			item("Azeite de oliva", 10, "ml", "gorduras", "azeite"),
		},
		Tags: []string{TagLowCarb},
	},

	// evening snack
	{
		ID: "es-cha-torrada", Name: "Chá com torrada integral", MealType: models.EveningSnack, TargetKcal: 200,
		Description: "Chá de camomila e torradas integrais com requeijão light",
		Items: []models.TemplateItem{
			item("Chá de camomila", 200, "ml", "bebidas", "chá"),
			item("Torrada integral", 3, "unidade", "cereais", "torrada"),
			item("Requeijão light", 20, "g", "laticinios", "requeijão"),
		},
		Tags: []string{TagTraditional, TagVegetarian},
	},
	{
		ID: "es-iogurte-natural", Name: "Iogurte natural com castanhas", MealType: models.EveningSnack, TargetKcal: 220,
		Description: "Iogurte natural sem açúcar com nozes",
		Items: []models.TemplateItem{
			item("Iogurte natural", 150, "g", "laticinios", "iogurte"),
			item("Nozes", 15, "g", "oleaginosas"),
		},
		Tags: []string{TagVegetarian, TagLowCarb},
	},
}
