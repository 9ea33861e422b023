// Package gemini wraps the Gemini API for the two language tasks the
// billing flows need: turning spoken text into a structured billing intent
// and classifying a product type from OCR lines.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const intentPrompt = `You are a billing assistant.

Return ONLY valid JSON.
Do NOT add markdown.
Do NOT explain.
Do NOT add extra text.

JSON format:
{
  "customer_name": string | null,
  "items": [
    {
      "name": string,
      "quantity": number | null,
      "price": number | null
    }
  ]
}`

// Intent is the structured form of a spoken billing request.
type Intent struct {
	CustomerName *string      `json:"customer_name"`
	Items        []IntentItem `json:"items"`
}

// IntentItem is one spoken line item. Quantity and price are nil when the
// speaker did not mention them.
type IntentItem struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Price    *float64 `json:"price"`
}

// Client is a thin wrapper over the Gemini SDK pinned to one model.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client for the given API key and model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Model returns the model name this client generates with.
func (c *Client) Model() string {
	return c.model
}

// Ping asks the model for a fixed reply, to verify connectivity and key.
func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text("Reply with exactly: OK"), nil)
	if err != nil {
		return "", fmt.Errorf("gemini ping: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// ParseBillingIntent converts spoken text into a structured billing intent.
// Low temperature plus a JSON response type keeps the output parseable; the
// fence-stripping extractor covers the models that wrap JSON anyway.
func (c *Client) ParseBillingIntent(ctx context.Context, text string) (*Intent, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(intentPrompt, genai.RoleUser),
		genai.NewContentFromText(fmt.Sprintf("Spoken input: %q", text), genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1),
		MaxOutputTokens:  512,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	var intent Intent
	if err := ExtractJSON(resp.Text(), &intent); err != nil {
		return nil, fmt.Errorf("invalid intent from model: %w", err)
	}
	return &intent, nil
}

// ClassifyProductType names the generic product type (2-4 words, brands
// stripped) described by OCR text lines.
func (c *Client) ClassifyProductType(ctx context.Context, lines []string) (string, error) {
	prompt := "You are a product classification assistant.\n\n" +
		"Rules:\n" +
		"- Ignore brand names completely.\n" +
		"- Identify ONLY the generic product type.\n" +
		"- Use 2-4 words.\n" +
		"- No marketing text.\n" +
		"- Capitalize properly.\n" +
		"- Return ONLY the product type.\n\n" +
		"Extracted text:\n" + strings.Join(lines, "\n") + "\n\n" +
		"Product type:"

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.1),
		MaxOutputTokens: 64,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
