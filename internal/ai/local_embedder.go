package ai

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultEmbedDimension = 384
	localModelName        = "local-hash-384"

	unigramWeight = 1.0
	bigramWeight  = 0.5
	trigramWeight = 0.3
)

var errNoTokens = errors.New("text has no embeddable tokens")

var defaultStopwords = []string{
	"a", "al", "con", "de", "del", "el", "en", "es", "la", "las", "lo", "los", "o", "para",
	"por", "que", "se", "su", "sus", "un", "una", "y",
	"an", "and", "are", "for", "in", "is", "of", "on", "or", "the", "to", "with",
}

type localConfig struct {
	VocabularyFile string `json:"vocabulary_file"`
}

type localModel struct {
	stopwords map[string]struct{}
	idf       map[string]float64
}

// LocalEmbedder is a deterministic in-process embedder: hashed word, word-pair and character
// trigram features folded into 384 dimensions and L2 normalised. The optional vocabulary
// file holds "token<TAB>idf" lines; it is read once, on first use.
type LocalEmbedder struct {
	vocabularyFile string

	once    sync.Once
	model   *localModel
	loadErr error
}

func NewLocalEmbedder(vocabularyFile string) *LocalEmbedder {
	return &LocalEmbedder{vocabularyFile: strings.TrimSpace(vocabularyFile)}
}

func (e *LocalEmbedder) Name() string {
	return "local"
}

func (e *LocalEmbedder) ModelName() string {
	return localModelName
}

// Embed satisfies IEmbedProvider; the model argument is ignored.
func (e *LocalEmbedder) Embed(ctx context.Context, _ string, text string) ([]float32, error) {
	return e.EmbedText(ctx, text)
}

func (e *LocalEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m, err := e.load()
	if err != nil {
		return nil, err
	}
	return m.embed(text)
}

func (e *LocalEmbedder) load() (*localModel, error) {
	e.once.Do(func() {
		m := &localModel{
			stopwords: make(map[string]struct{}, len(defaultStopwords)),
			idf:       map[string]float64{},
		}
		for _, w := range defaultStopwords {
			m.stopwords[w] = struct{}{}
		}
		if e.vocabularyFile != "" {
			if err := m.loadVocabulary(e.vocabularyFile); err != nil {
				e.loadErr = fmt.Errorf("load embedding vocabulary: %w", err)
				return
			}
		}
		e.model = m
	})
	return e.model, e.loadErr
}

func (m *localModel) loadVocabulary(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Split(text, "\t")
		if len(parts) != 2 {
			return fmt.Errorf("line %d: expected token and weight", line)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		for _, tok := range tokenize(parts[0]) {
			m.idf[tok] = weight
		}
	}
	return scanner.Err()
}

func (m *localModel) embed(text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errNoTokens
	}
	tokens := tokenize(trimmed)
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := m.stopwords[tok]; stop {
			continue
		}
		words = append(words, tok)
	}
	if len(words) == 0 {
		// stopword-only text still embeds on its own words
		words = tokens
	}
	var tf map[string]float64
	if len(words) > 0 {
		tf = m.wordFeatures(words)
	} else {
		tf = rawFeatures(trimmed)
	}
	return fold(tf)
}

func (m *localModel) wordFeatures(words []string) map[string]float64 {
	tf := make(map[string]float64, len(words)*4)
	for i, w := range words {
		tf["w:"+w] += unigramWeight * m.weight(w)
		if i > 0 {
			tf["b:"+words[i-1]+" "+w] += bigramWeight
		}
		addTrigrams(tf, "c:", w)
	}
	return tf
}

// rawFeatures covers text with no letters or digits, such as emoji or punctuation.
func rawFeatures(text string) map[string]float64 {
	tf := map[string]float64{}
	addTrigrams(tf, "r:", text)
	return tf
}

func addTrigrams(tf map[string]float64, prefix, s string) {
	padded := []rune("#" + s + "#")
	for j := 0; j+3 <= len(padded); j++ {
		tf[prefix+string(padded[j:j+3])] += trigramWeight
	}
}

func fold(tf map[string]float64) ([]float32, error) {
	features := make([]string, 0, len(tf))
	for feature := range tf {
		features = append(features, feature)
	}
	// fixed summation order keeps the output bit-identical across calls
	sort.Strings(features)
	acc := make([]float64, defaultEmbedDimension)
	for _, feature := range features {
		count := tf[feature]
		h := fnv.New64a()
		_, _ = h.Write([]byte(feature))
		sum := h.Sum64()
		idx := sum % defaultEmbedDimension
		sign := 1.0
		if sum>>63 == 1 {
			sign = -1.0
		}
		acc[idx] += sign * (1 + math.Log1p(count))
	}
	var norm2 float64
	for _, v := range acc {
		norm2 += v * v
	}
	if norm2 == 0 {
		return nil, errNoTokens
	}
	inv := 1 / math.Sqrt(norm2)
	out := make([]float32, defaultEmbedDimension)
	for i, v := range acc {
		out[i] = float32(v * inv)
	}
	return out, nil
}

func (m *localModel) weight(token string) float64 {
	if w, ok := m.idf[token]; ok && w > 0 {
		return w
	}
	return 1
}

// tokenize lowercases, strips accents and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = text
	}
	return strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func init() {
	RegisterEmbed("local", func(args interface{}) (IEmbedProvider, error) {
		cfg := &localConfig{}
		if err := decodeConfig(args, cfg); err != nil {
			return nil, err
		}
		return NewLocalEmbedder(cfg.VocabularyFile), nil
	})
}
