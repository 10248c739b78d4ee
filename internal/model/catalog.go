package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Language codes used by the catalog and the emergency messages.
const (
	LangEnglish = "en"
	LangHindi   = "hi"
	LangTelugu  = "te"
)

// SignalPhrase is a single symptom phrase tagged with its language.
// In catalog files a bare string is shorthand for an English phrase.
type SignalPhrase struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Language returns the phrase language, defaulting to English.
func (p SignalPhrase) Language() string {
	if p.Lang == "" {
		return LangEnglish
	}
	return p.Lang
}

// SymptomCategory is a named bucket of symptom phrases.
// Category order in the catalog is significant: it decides which
// language tag wins when several categories match.
type SymptomCategory struct {
	Name    string
	Phrases []SignalPhrase
}

// ContextCategory is a named bucket of context qualifier phrases.
// Context phrases annotate a report but never contribute to the score.
type ContextCategory struct {
	Name    string
	Phrases []string
}

// Catalog is an immutable snapshot of symptom and context signals.
// The scoring path never mutates a catalog; updates swap in a new one.
type Catalog struct {
	Symptoms []SymptomCategory
	Contexts []ContextCategory
}

// EmptyCatalog returns a catalog with no signals. Scoring against it
// yields no matches, which is the degraded-but-safe behavior when no
// signal source is available.
func EmptyCatalog() *Catalog {
	return &Catalog{}
}

// IsEmpty reports whether the catalog carries no categories at all.
func (c *Catalog) IsEmpty() bool {
	return c == nil || (len(c.Symptoms) == 0 && len(c.Contexts) == 0)
}

// Symptom returns the phrase list for a symptom category by name.
func (c *Catalog) Symptom(name string) ([]SignalPhrase, bool) {
	if c == nil {
		return nil, false
	}
	for _, cat := range c.Symptoms {
		if cat.Name == name {
			return cat.Phrases, true
		}
	}
	return nil, false
}

// Context returns the phrase list for a context category by name.
func (c *Catalog) Context(name string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	for _, cat := range c.Contexts {
		if cat.Name == name {
			return cat.Phrases, true
		}
	}
	return nil, false
}

// UnmarshalJSON decodes the wire format used by the signals API:
//
//	{"symptomSignals": {"cardiac": ["chest pain", {"text": "...", "lang": "hi"}]},
//	 "contextSignals": {"sudden": ["sudden", "अचानक"]}}
//
// Key order inside symptomSignals and contextSignals is preserved, so the
// decoder walks tokens instead of unmarshalling into a map.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		switch key {
		case "symptomSignals":
			c.Symptoms, err = decodeSymptomGroups(dec)
		case "contextSignals":
			c.Contexts, err = decodeContextGroups(dec)
		default:
			var skip json.RawMessage
			err = dec.Decode(&skip)
		}
		if err != nil {
			return fmt.Errorf("catalog %q: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON encodes the catalog in the wire format, keeping category order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"symptomSignals":{`)
	for i, cat := range c.Symptoms {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyed(&buf, cat.Name, cat.Phrases); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"contextSignals":{`)
	for i, cat := range c.Contexts {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyed(&buf, cat.Name, cat.Phrases); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes the same shape from YAML catalog files,
// walking mapping nodes to keep category order.
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("catalog: expected mapping, got %v", node.Kind)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		switch key {
		case "symptomSignals":
			groups, err := yamlGroups(val)
			if err != nil {
				return fmt.Errorf("symptomSignals: %w", err)
			}
			for _, g := range groups {
				cat := SymptomCategory{Name: g.name}
				for _, item := range g.items {
					var p SignalPhrase
					if err := p.unmarshalYAMLNode(item); err != nil {
						return fmt.Errorf("symptomSignals.%s: %w", g.name, err)
					}
					cat.Phrases = append(cat.Phrases, p)
				}
				c.Symptoms = append(c.Symptoms, cat)
			}
		case "contextSignals":
			groups, err := yamlGroups(val)
			if err != nil {
				return fmt.Errorf("contextSignals: %w", err)
			}
			for _, g := range groups {
				cat := ContextCategory{Name: g.name}
				for _, item := range g.items {
					cat.Phrases = append(cat.Phrases, item.Value)
				}
				c.Contexts = append(c.Contexts, cat)
			}
		}
	}
	return nil
}

// MarshalYAML renders the catalog file format, keeping category order.
func (c *Catalog) MarshalYAML() (interface{}, error) {
	symptoms := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range c.Symptoms {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, p := range cat.Phrases {
			var n yaml.Node
			if err := n.Encode(struct {
				Text string `yaml:"text"`
				Lang string `yaml:"lang"`
			}{p.Text, p.Language()}); err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, &n)
		}
		symptoms.Content = append(symptoms.Content, scalarNode(cat.Name), seq)
	}

	contexts := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range c.Contexts {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, p := range cat.Phrases {
			seq.Content = append(seq.Content, scalarNode(p))
		}
		contexts.Content = append(contexts.Content, scalarNode(cat.Name), seq)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		scalarNode("symptomSignals"), symptoms,
		scalarNode("contextSignals"), contexts,
	)
	return root, nil
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// UnmarshalJSON accepts either a bare string or a {text, lang} object.
func (p *SignalPhrase) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		p.Text = s
		p.Lang = LangEnglish
		return nil
	}

	var raw struct {
		Text string `json:"text"`
		Lang string `json:"lang"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	p.Text = raw.Text
	p.Lang = raw.Lang
	if p.Lang == "" {
		p.Lang = LangEnglish
	}
	return nil
}

func (p *SignalPhrase) unmarshalYAMLNode(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Text = node.Value
		p.Lang = LangEnglish
		return nil
	}
	var raw struct {
		Text string `yaml:"text"`
		Lang string `yaml:"lang"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	p.Text = raw.Text
	p.Lang = raw.Lang
	if p.Lang == "" {
		p.Lang = LangEnglish
	}
	return nil
}

type yamlGroup struct {
	name  string
	items []*yaml.Node
}

func yamlGroups(node *yaml.Node) ([]yamlGroup, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping, got %v", node.Kind)
	}
	var groups []yamlGroup
	for i := 0; i+1 < len(node.Content); i += 2 {
		val := node.Content[i+1]
		if val.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("category %q: expected sequence", node.Content[i].Value)
		}
		groups = append(groups, yamlGroup{name: node.Content[i].Value, items: val.Content})
	}
	return groups, nil
}

func decodeSymptomGroups(dec *json.Decoder) ([]SymptomCategory, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var out []SymptomCategory
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		var phrases []SignalPhrase
		if err := dec.Decode(&phrases); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		out = append(out, SymptomCategory{Name: name, Phrases: phrases})
	}
	_, err := dec.Token() // closing brace
	return out, err
}

func decodeContextGroups(dec *json.Decoder) ([]ContextCategory, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var out []ContextCategory
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		var phrases []string
		if err := dec.Decode(&phrases); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		out = append(out, ContextCategory{Name: name, Phrases: phrases})
	}
	_, err := dec.Token() // closing brace
	return out, err
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string key, got %v", tok)
	}
	return s, nil
}

func writeKeyed(buf *bytes.Buffer, name string, v interface{}) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}
