package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/model"
)

const (
	manualTemperature  = 0.7
	manualMaxTokens    = 4000
	contentTemperature = 0.7
	contentMaxTokens   = 1500
)

type ManagerConfig struct {
	Timeout int
}

// ManualBrief is what a user tells us about a product before a manual is generated.
type ManualBrief struct {
	Name           string
	Description    string
	ProductType    string
	Tone           string
	TargetAudience string
}

// Manager owns the prompts. Generators and the vision model are injected and may be nil when
// the matching provider is not configured.
type Manager struct {
	generator IGenerator
	vision    IVision
	cfg       ManagerConfig
}

func NewManager(generator IGenerator, vision IVision, cfg ManagerConfig) *Manager {
	return &Manager{
		generator: generator,
		vision:    vision,
		cfg:       cfg,
	}
}

func (m *Manager) GenerateManual(ctx context.Context, brief ManualBrief) (*model.ManualDocument, error) {
	if m.generator == nil {
		return nil, ErrUnavailable
	}
	prompt := fmt.Sprintf(manualPromptTemplate, brief.Name, brief.Description, brief.ProductType, brief.Tone, brief.TargetAudience)
	reply, err := m.generateText(ctx, &GenerateRequest{
		System:      manualSystemPrompt,
		Prompt:      prompt,
		Temperature: manualTemperature,
		MaxTokens:   manualMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return ParseManual(reply)
}

// ContentPrompt builds the generation prompt for one content type from the retrieved context.
func ContentPrompt(contentType, brandName, ragContext, additional string) (string, error) {
	additional = strings.TrimSpace(additional)
	extra := ""
	if additional != "" {
		extra = "\nCONTEXTO ADICIONAL: " + additional + "\n"
	}
	switch contentType {
	case model.ContentTypeProductDescription:
		return fmt.Sprintf(productDescriptionTemplate, brandName, ragContext, extra), nil
	case model.ContentTypeVideoScript:
		return fmt.Sprintf(videoScriptTemplate, brandName, ragContext, extra), nil
	case model.ContentTypeImagePrompt:
		if additional == "" {
			additional = "Ninguno proporcionado"
		}
		return fmt.Sprintf(imagePromptTemplate, brandName, ragContext, additional), nil
	default:
		return "", fmt.Errorf("no prompt for content type %q", contentType)
	}
}

func (m *Manager) GenerateContent(ctx context.Context, contentType, brandName, ragContext, additional string) (string, error) {
	if m.generator == nil {
		return "", ErrUnavailable
	}
	prompt, err := ContentPrompt(contentType, brandName, ragContext, additional)
	if err != nil {
		return "", err
	}
	return m.generateText(ctx, &GenerateRequest{
		Prompt:      prompt,
		Temperature: contentTemperature,
		MaxTokens:   contentMaxTokens,
	})
}

// AuditPrompt builds the scoring instruction sent along with the image.
func AuditPrompt(brandName string, doc *model.ManualDocument, ragContext string) string {
	return fmt.Sprintf(auditPromptTemplate, RenderAuditManual(brandName, doc), ragContext, int(ComplianceThreshold))
}

// AuditImage only fails when the vision model cannot be reached; an unreadable answer
// still yields a verdict.
func (m *Manager) AuditImage(ctx context.Context, brandName string, doc *model.ManualDocument, ragContext string, image []byte, mimeType string) (model.AuditVerdict, error) {
	if m.vision == nil {
		return model.AuditVerdict{}, ErrUnavailable
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	reply, err := m.vision.Inspect(ctx, AuditPrompt(brandName, doc, ragContext), image, mimeType)
	if err != nil {
		return model.AuditVerdict{}, err
	}
	verdict := ParseAuditVerdict(reply)
	if verdict.Fallback {
		logutil.GetLogger(ctx).Warn("audit reply is not structured, using fallback verdict",
			zap.String("model", m.vision.ModelName()), zap.Int("reply_len", len(reply)))
	}
	return verdict, nil
}

// PingVision asks the vision model for a trivial answer.
func (m *Manager) PingVision(ctx context.Context) (string, error) {
	if m.vision == nil {
		return "", ErrUnavailable
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.vision.Inspect(ctx, visionPingPrompt, nil, "")
}

func (m *Manager) VisionModel() string {
	if m.vision == nil {
		return ""
	}
	return m.vision.ModelName()
}

func (m *Manager) generateText(ctx context.Context, req *GenerateRequest) (string, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	resp, err := m.generator.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp)
	if text == "" {
		return "", fmt.Errorf("empty ai response")
	}
	return text, nil
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, time.Duration(m.cfg.Timeout)*time.Second)
	}
	return context.WithCancel(ctx)
}
