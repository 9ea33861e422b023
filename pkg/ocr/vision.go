// Package ocr wraps the Google Cloud Vision REST API for product image
// analysis: label/object detection and text extraction.
package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// Annotation is one detected label or object with its confidence score.
type Annotation struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Client is a thin wrapper over the Vision image annotation service.
type Client struct {
	service *vision.Service
}

// NewClient creates a Vision client. credentialsJSON holds the service
// account key material; when empty, application default credentials apply.
func NewClient(ctx context.Context, credentialsJSON string) (*Client, error) {
	opts := []option.ClientOption{}
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	service, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}
	return &Client{service: service}, nil
}

// DetectLabels runs label and object detection over one image.
func (c *Client) DetectLabels(ctx context.Context, content []byte) (labels, objects []Annotation, err error) {
	resp, err := c.annotate(ctx, content,
		&vision.Feature{Type: "LABEL_DETECTION", MaxResults: 10},
		&vision.Feature{Type: "OBJECT_LOCALIZATION", MaxResults: 10},
	)
	if err != nil {
		return nil, nil, err
	}

	for _, label := range resp.LabelAnnotations {
		labels = append(labels, Annotation{
			Name:       label.Description,
			Confidence: round2(label.Score),
		})
	}
	for _, object := range resp.LocalizedObjectAnnotations {
		objects = append(objects, Annotation{
			Name:       object.Name,
			Confidence: round2(object.Score),
		})
	}
	return labels, objects, nil
}

// DetectText runs OCR over one image, returning the full extracted text and
// its non-empty lines.
func (c *Client) DetectText(ctx context.Context, content []byte) (fullText string, lines []string, err error) {
	resp, err := c.annotate(ctx, content, &vision.Feature{Type: "TEXT_DETECTION"})
	if err != nil {
		return "", nil, err
	}

	// The first annotation carries the whole text block; the rest are
	// per-word fragments.
	if len(resp.TextAnnotations) == 0 {
		return "", nil, nil
	}
	fullText = strings.TrimSpace(resp.TextAnnotations[0].Description)

	for _, line := range strings.Split(fullText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return fullText, lines, nil
}

func (c *Client) annotate(ctx context.Context, content []byte, features ...*vision.Feature) (*vision.AnnotateImageResponse, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(content)},
			Features: features,
		}},
	}

	resp, err := c.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("vision annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("vision annotate: empty response")
	}
	if apiErr := resp.Responses[0].Error; apiErr != nil {
		return nil, fmt.Errorf("vision annotate: %s", apiErr.Message)
	}
	return resp.Responses[0], nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
