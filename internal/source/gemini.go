package source

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// =============================================================================
// GEMINI LISTING GENERATOR
// =============================================================================

const promptTemplate = `Generate %d realistic hostels or PGs near %s in %s, India.
Include contact details (Indian phone format) and approximate lat/lng coordinates for Google Maps.
Crucial: Provide a list of room types (e.g., Single, 2-Sharing) with their specific monthly prices in INR.
Make them sound authentic with Indian amenities (e.g., North/South Indian food, AC/Non-AC).`

// GeminiGenerator генерирует объявления через Gemini API с JSON схемой ответа.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator создаёт генератор. Пустой ключ возвращает ErrNotConfigured.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// GenerateListings запрашивает n объявлений и возвращает текст ответа (JSON массив).
func (g *GeminiGenerator) GenerateListings(ctx context.Context, city, university string, n int) ([]byte, error) {
	prompt := fmt.Sprintf(promptTemplate, n, university, city)

	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   listingsSchema(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: generate content: %v", ErrGenerativeService, err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGenerativeService)
	}
	return []byte(text), nil
}

// Name возвращает имя генератора для логов.
func (g *GeminiGenerator) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}

// listingsSchema описывает массив объявлений; набор полей и перечисление
// типов совпадают с моделью Listing.
func listingsSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	num := func() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":          str(),
				"name":        str(),
				"type":        {Type: genai.TypeString, Enum: []string{"DORM", "PG", "APARTMENT"}},
				"currency":    str(),
				"distance":    str(),
				"rating":      num(),
				"reviewCount": {Type: genai.TypeInteger},
				"verified":    {Type: genai.TypeBoolean},
				"amenities":   {Type: genai.TypeArray, Items: str()},
				"description": str(),
				"address":     str(),
				"contact": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"phone": str(),
						"email": str(),
					},
				},
				"coordinates": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"lat": num(),
						"lng": num(),
					},
				},
				"roomTypes": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"type":        str(),
							"price":       num(),
							"description": str(),
						},
						Required: []string{"type", "price"},
					},
				},
			},
			Required: requiredFields,
		},
	}
}

var requiredFields = []string{"id", "name", "type", "roomTypes", "rating", "amenities", "description", "contact", "coordinates"}
