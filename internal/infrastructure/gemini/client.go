package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// PlaceBlurb generates a one-line description for a place the provider
// returned without one. If the API is unavailable a deterministic template
// is used instead, so the caller always gets something presentable.
func (c *Client) PlaceBlurb(ctx context.Context, name, cuisine string, rating float64) (string, error) {
	prompt := fmt.Sprintf(`
		Write one short, appetizing sentence describing this restaurant for a
		food discovery app card.
		Name: %s
		Cuisine: %s
		Rating: %.1f
		Output: just the sentence, no quotes.
	`, name, cuisine, rating)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fallbackBlurb(name, cuisine), nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fallbackBlurb(name, cuisine), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	blurb := strings.TrimSpace(sb.String())
	if blurb == "" {
		return fallbackBlurb(name, cuisine), nil
	}
	return blurb, nil
}

func fallbackBlurb(name, cuisine string) string {
	if cuisine != "" {
		return fmt.Sprintf("%s serves up %s favorites just around the corner.", name, strings.ToLower(cuisine))
	}
	return fmt.Sprintf("%s is a local spot worth a try.", name)
}
