package service

import (
	"context"
	"strings"

	"github.com/shopbill/billing-api/pkg/apperror"
	"github.com/shopbill/billing-api/pkg/ocr"
)

// ImageAnnotator detects labels, objects and text in product images.
// Satisfied by ocr.Client.
type ImageAnnotator interface {
	DetectLabels(ctx context.Context, content []byte) (labels, objects []ocr.Annotation, err error)
	DetectText(ctx context.Context, content []byte) (fullText string, lines []string, err error)
}

// ProductClassifier names the generic product type from OCR lines.
// Satisfied by gemini.Client.
type ProductClassifier interface {
	ClassifyProductType(ctx context.Context, lines []string) (string, error)
}

// Packaging text is noisy; known brands are resolved by rule rather than
// left to the model, which is told to ignore them entirely.
var brandKeywords = map[string]string{
	"fevicol":      "Fevicol",
	"pidilite":     "Pidilite",
	"asian paints": "Asian Paints",
	"berger":       "Berger",
	"nerolac":      "Nerolac",
}

// VisionDetection is the raw label/object detection output.
type VisionDetection struct {
	Labels  []ocr.Annotation `json:"labels"`
	Objects []ocr.Annotation `json:"objects"`
}

// VisionText is the OCR output for one image.
type VisionText struct {
	FullText string   `json:"full_text"`
	Lines    []string `json:"lines"`
}

// NormalizedProduct is a catalog-ready product name assembled from a brand
// rule hit and the model's product type.
type NormalizedProduct struct {
	Brand             *string `json:"brand"`
	ProductType       string  `json:"product_type"`
	NormalizedProduct string  `json:"normalized_product"`
}

// VisionResolveResult mirrors the voice parse result shape so the UI treats
// scanned and spoken items uniformly.
type VisionResolveResult struct {
	ReadyItems     []ReadyItem     `json:"ready_items"`
	UnmatchedItems []UnmatchedItem `json:"unmatched_items"`
	NextAction     string          `json:"next_action"`
	Source         string          `json:"source"`
}

// VisionService drives the scan-to-bill flow: detect what is in a product
// photo, OCR its packaging, normalize that into a product name and resolve
// it against the catalog.
type VisionService struct {
	annotator  ImageAnnotator
	classifier ProductClassifier
	items      *ItemService
}

// NewVisionService creates a new vision service.
func NewVisionService(annotator ImageAnnotator, classifier ProductClassifier, items *ItemService) *VisionService {
	return &VisionService{annotator: annotator, classifier: classifier, items: items}
}

// Detect runs label and object detection over a product image.
func (s *VisionService) Detect(ctx context.Context, content []byte) (*VisionDetection, error) {
	labels, objects, err := s.annotator.DetectLabels(ctx, content)
	if err != nil {
		return nil, apperror.NewUnavailableError("Image analysis failed: " + err.Error())
	}
	if labels == nil {
		labels = []ocr.Annotation{}
	}
	if objects == nil {
		objects = []ocr.Annotation{}
	}
	return &VisionDetection{Labels: labels, Objects: objects}, nil
}

// DetectText extracts the packaging text from a product image.
func (s *VisionService) DetectText(ctx context.Context, content []byte) (*VisionText, error) {
	fullText, lines, err := s.annotator.DetectText(ctx, content)
	if err != nil {
		return nil, apperror.NewUnavailableError("Text detection failed: " + err.Error())
	}
	if lines == nil {
		lines = []string{}
	}
	return &VisionText{FullText: fullText, Lines: lines}, nil
}

// NormalizeText turns raw OCR lines into a billing-ready product name:
// brand from the keyword rules, product type from the classifier.
func (s *VisionService) NormalizeText(ctx context.Context, lines []string) (*NormalizedProduct, error) {
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("No text lines to normalize")
	}

	brand := detectBrand(lines)

	productType, err := s.classifier.ClassifyProductType(ctx, lines)
	if err != nil {
		return nil, apperror.NewUnavailableError("Product classification failed: " + err.Error())
	}

	normalized := productType
	if brand != nil {
		normalized = *brand + " " + productType
	}
	return &NormalizedProduct{
		Brand:             brand,
		ProductType:       productType,
		NormalizedProduct: normalized,
	}, nil
}

// ResolveProduct matches a normalized product name against the catalog,
// producing the same ready/unmatched split as the voice flow.
func (s *VisionService) ResolveProduct(ctx context.Context, name string, quantity float64) (*VisionResolveResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if quantity <= 0 {
		quantity = 1
	}

	result := &VisionResolveResult{
		ReadyItems:     []ReadyItem{},
		UnmatchedItems: []UnmatchedItem{},
		NextAction:     "CONFIRM_ITEMS",
		Source:         "VISION",
	}

	master, err := s.items.MatchItem(ctx, name)
	if err != nil {
		return nil, err
	}
	if master != nil {
		result.ReadyItems = append(result.ReadyItems, ReadyItem{
			ItemID:   master.ID,
			Name:     master.Name,
			Rate:     master.Rate,
			Unit:     master.Unit,
			Quantity: &quantity,
		})
		return result, nil
	}

	masters, err := s.items.SuggestItems(ctx, name, 5)
	if err != nil {
		return nil, err
	}
	suggestions := make([]ItemSuggestion, 0, len(masters))
	for _, m := range masters {
		suggestions = append(suggestions, ItemSuggestion{
			ItemID: m.ID,
			Name:   m.Name,
			Rate:   m.Rate,
			Unit:   m.Unit,
		})
	}
	result.UnmatchedItems = append(result.UnmatchedItems, UnmatchedItem{
		Name:        name,
		Quantity:    &quantity,
		Suggestions: suggestions,
	})
	return result, nil
}

func detectBrand(lines []string) *string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for keyword, brand := range brandKeywords {
			if strings.Contains(lower, keyword) {
				return &brand
			}
		}
	}
	return nil
}
