package analysis

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
)

// ErrNoMatch means a decoder found nothing it recognizes; the chain moves on
// to the next tier.
var ErrNoMatch = errors.New("no structured content")

// Decoder is one coercion tier: raw narrative text in, document out.
type Decoder interface {
	Name() string
	Decode(raw string) (*Document, error)
}

// DecoderChain tries each tier in order. The chain is unit-testable
// independent of any network call.
type DecoderChain struct {
	decoders []Decoder
}

// NewDecoderChain returns the default three-tier chain: balanced-object
// extraction, whole-text parse, manual stub.
func NewDecoderChain() *DecoderChain {
	return &DecoderChain{decoders: []Decoder{
		fencedBlockDecoder{},
		directDecoder{},
		stubDecoder{},
	}}
}

// Coerce turns raw narrative text into a document. Empty input yields nil
// (narrative failed upstream; the caller substitutes the synthetic document).
// Any non-nil result carries all nine top-level sections.
func (c *DecoderChain) Coerce(raw string) *Document {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	for _, d := range c.decoders {
		doc, err := d.Decode(raw)
		if err != nil {
			continue
		}
		return doc
	}
	return nil
}

type fencedBlockDecoder struct{}

func (fencedBlockDecoder) Name() string { return "fenced_block" }

func (fencedBlockDecoder) Decode(raw string) (*Document, error) {
	span, ok := firstBalancedObject(raw)
	if !ok {
		return nil, ErrNoMatch
	}
	var doc Document
	if err := json.Unmarshal([]byte(stripCodeFences(span)), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

type directDecoder struct{}

func (directDecoder) Name() string { return "direct" }

func (directDecoder) Decode(raw string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// stubDecoder is the last tier and always succeeds: a minimal document with
// neutral values in every section, plus a diagnostic log of the raw prefix.
type stubDecoder struct{}

func (stubDecoder) Name() string { return "manual_stub" }

func (stubDecoder) Decode(raw string) (*Document, error) {
	prefix := raw
	if len(prefix) > 500 {
		prefix = prefix[:500]
	}
	log.Printf("narrative coercion exhausted parse tiers, using stub; raw prefix: %q", prefix)
	return &Document{
		Avatar:      Avatar{Name: "Dados não disponíveis"},
		Positioning: Positioning{Statement: "Análise indisponível"},
		Competition: Competition{Competitors: []CompetitorProfile{}},
		Marketing:   Marketing{LandingPageHeadlines: []string{}},
		Metrics:     Metrics{},
		Funnel:      Funnel{Phases: []FunnelPhase{}},
	}, nil
}

// firstBalancedObject returns the first top-level {...} span in the text,
// tracking string literals and escapes so braces inside values don't
// terminate the scan early.
func firstBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}
