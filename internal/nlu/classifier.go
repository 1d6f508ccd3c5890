// Package nlu maps free-form French requests onto document intents. Its
// output is untrusted input for the validation pipelines, never a
// validated model.
package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/smallbiznis/scribe/internal/config"
	"github.com/smallbiznis/scribe/internal/document/domain"
	"go.uber.org/zap"
)

// IntentChat is returned when the message does not describe a document
// request, or when the model reply cannot be parsed.
const IntentChat = "chat"

// Result is the classification outcome. Fields carries whatever the
// model extracted, to be re-validated by the pipelines.
type Result struct {
	Intent string         `json:"intent"`
	Fields map[string]any `json:"fields"`
	Reply  string         `json:"reply"`
}

// DocumentType maps the intent onto a pipeline type, or false for chat.
func (r *Result) DocumentType() (domain.DocumentType, bool) {
	t := domain.DocumentType(r.Intent)
	if t.Valid() {
		return t, true
	}
	return "", false
}

// completionClient is the slice of the OpenAI API the classifier uses.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Classifier struct {
	client completionClient
	model  string
	log    *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Classifier {
	c := &Classifier{
		model: cfg.OpenAI.Model,
		log:   log.Named("nlu"),
	}
	if cfg.OpenAI.APIKey == "" {
		return c
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}
	c.client = openai.NewClientWithConfig(clientCfg)
	return c
}

func newWithClient(client completionClient, model string, log *zap.Logger) *Classifier {
	return &Classifier{client: client, model: model, log: log.Named("nlu")}
}

// Enabled reports whether an API key was configured.
func (c *Classifier) Enabled() bool {
	return c.client != nil
}

const systemPrompt = `Tu es l'assistant d'un service de génération de documents administratifs français.
Analyse le message de l'utilisateur et détermine son intention parmi :
- "invoice" : créer une facture (champs : client_name, client_address, client_siret, items[{description, quantity, unit_price, tax_rate}], invoice_date, due_date, payment_terms, notes)
- "quote" : créer un devis (champs : client_name, client_address, client_siret, items, quote_date, validity_days, notes)
- "mileage" : créer une note de frais kilométriques (champs : travel_date, start_location, end_location, distance_km, purpose, vehicle_type [car|motorcycle|scooter], fiscal_power, ou une liste trips)
- "rent_receipt" : créer une quittance de loyer (champs : tenant_name, tenant_address, property_address, period_month, period_year, rent_amount, charges_amount, payment_date, payment_method [transfer|check|cash|direct-debit])
- "rental_charges" : créer une régularisation de charges (champs : tenant_name, property_address, period_start, period_end, charges[{label, amount}], provisions_amount)
- "chat" : toute autre demande

Réponds UNIQUEMENT avec un JSON valide, sans texte avant ni après :
{"intent": "...", "fields": {...}, "reply": "courte réponse en français"}

Les dates sont au format AAAA-MM-JJ, les montants des nombres en euros.
N'invente jamais de valeur : omets tout champ que l'utilisateur n'a pas donné.`

// Classify sends one user message through the model.
func (c *Classifier) Classify(ctx context.Context, message string) (*Result, error) {
	if c.client == nil {
		return nil, fmt.Errorf("nlu is not configured, set OPENAI_API_KEY")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		MaxTokens:   800,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	result, err := parseResult(content)
	if err != nil {
		// Models occasionally answer in prose despite the instructions;
		// degrade to a chat reply instead of failing the request.
		c.log.Warn("unparseable nlu reply, falling back to chat",
			zap.Error(err),
		)
		return &Result{Intent: IntentChat, Reply: content}, nil
	}
	return result, nil
}

func parseResult(content string) (*Result, error) {
	// Tolerate replies wrapped in markdown fences.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var result Result
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &result); err != nil {
		return nil, fmt.Errorf("parse nlu reply: %w", err)
	}
	if result.Intent == "" {
		return nil, fmt.Errorf("nlu reply has no intent")
	}
	if result.Fields == nil {
		result.Fields = map[string]any{}
	}
	return &result, nil
}
