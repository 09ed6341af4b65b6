package services

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/samber/lo"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"wanderwise/internal/models/trip_models"
	"wanderwise/pkg/utils"
)

const (
	PlatformWhatsApp = "whatsapp"
	PlatformTelegram = "telegram"

	pdfMargin     = 15.0
	pdfLineHeight = 7.0
	qrSize        = 256
)

type ExportServiceInterface interface {
	FormatText(result trip_models.TripPlanResult, concise bool) (string, error)
	RenderPDF(result trip_models.TripPlanResult) ([]byte, error)
	PDFFileName(result trip_models.TripPlanResult) string
	ShareLink(result trip_models.TripPlanResult, platform, pageURL string) (string, error)
	ShareQRCode(link string) ([]byte, error)
	CostSummary(breakdown trip_models.CostBreakdown) CostSummary
}

type ExportService struct {
	logger *zap.Logger
}

func NewExportService(logger *zap.Logger) ExportServiceInterface {
	return &ExportService{logger: logger.Named("export")}
}

func (s *ExportService) FormatText(result trip_models.TripPlanResult, concise bool) (string, error) {
	if result.IsEmpty() {
		return "", utils.ErrNothingToExport
	}
	if concise {
		return formatConcise(result), nil
	}
	return formatFull(result), nil
}

func formatConcise(result trip_models.TripPlanResult) string {
	var b strings.Builder
	b.WriteString("Check out my WanderWise travel plan!\n")
	if dest := result.Destination(); dest != "" {
		fmt.Fprintf(&b, "Destination: %s\n", dest)
	}

	if result.DayCount() > 0 {
		days := result.ItineraryData.Days
		fmt.Fprintf(&b, "Duration: %d day(s)\n", len(days))

		firsts := lo.FilterMap(days[:min(2, len(days))], func(d trip_models.DayPlan, _ int) (string, bool) {
			if len(d.Activities) == 0 {
				return "", false
			}
			return d.Activities[0].Description, true
		})
		if highlights := strings.Join(firsts, "; "); highlights != "" {
			fmt.Fprintf(&b, "Highlights: %s...\n", highlights)
		}
	}
	return b.String()
}

func formatFull(result trip_models.TripPlanResult) string {
	var b strings.Builder
	b.WriteString("WanderWise Trip Plan\n\n")
	if dest := result.Destination(); dest != "" {
		fmt.Fprintf(&b, "Destination: %s\n", dest)
	}
	if result.SuggestedCity != nil && result.SuggestedCity.Justification != "" {
		fmt.Fprintf(&b, "Why this city? %s\n", result.SuggestedCity.Justification)
	}
	b.WriteString("\n")

	if result.DayCount() > 0 {
		b.WriteString("--- ITINERARY ---\n")
		for _, day := range result.ItineraryData.Days {
			fmt.Fprintf(&b, "Day %d:\n", day.Day)
			for _, act := range day.Activities {
				b.WriteString("- " + act.Description)
				if act.Time != "" {
					fmt.Fprintf(&b, " (%s)", act.Time)
				}
				b.WriteString("\n")
				if len(act.Alternatives) > 0 {
					fmt.Fprintf(&b, "  Alternatives: %s\n", strings.Join(act.Alternatives, ", "))
				}
			}
			b.WriteString("\n")
		}
	}

	if result.ItineraryData != nil {
		b.WriteString("--- COST BREAKDOWN ---\n")
		for _, item := range costItems(result.ItineraryData.CostBreakdown) {
			if item.Value != "" {
				fmt.Fprintf(&b, "%s: %s\n", item.Label, item.Value)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func (s *ExportService) PDFFileName(result trip_models.TripPlanResult) string {
	return fmt.Sprintf("WanderWise_Plan_%s.pdf", fileNameDestination(result))
}

func fileNameDestination(result trip_models.TripPlanResult) string {
	if dest := result.Destination(); dest != "" {
		return whitespaceRun.ReplaceAllString(dest, "_")
	}
	return "Trip"
}

// RenderPDF lays the full text export out on A4 pages, one wrapped line at a
// time, starting a new page before a line would cross the bottom margin.
func (s *ExportService) RenderPDF(result trip_models.TripPlanResult) ([]byte, error) {
	text, err := s.FormatText(result, false)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle("WanderWise Plan: "+fileNameDestination(result), true)
	pdf.SetSubject("Personalized Travel Itinerary", true)
	pdf.SetAuthor("WanderWise App", true)
	pdf.SetFont("Helvetica", "", 11)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, pageHeight := pdf.GetPageSize()
	textWidth := pageWidth - 2*pdfMargin

	pdf.AddPage()
	y := pdfMargin
	for _, para := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		lines := pdf.SplitLines([]byte(tr(para)), textWidth)
		if len(lines) == 0 {
			lines = [][]byte{nil}
		}
		for _, line := range lines {
			if y+pdfLineHeight > pageHeight-pdfMargin {
				pdf.AddPage()
				y = pdfMargin
			}
			pdf.Text(pdfMargin, y, string(line))
			y += pdfLineHeight
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("pdf render failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) ShareLink(result trip_models.TripPlanResult, platform, pageURL string) (string, error) {
	text, err := s.FormatText(result, true)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(platform) {
	case PlatformWhatsApp:
		return "https://wa.me/?text=" + encodeURIComponent(text), nil
	case PlatformTelegram:
		return "https://t.me/share/url?url=" + encodeURIComponent(pageURL) + "&text=" + encodeURIComponent(text), nil
	default:
		return "", utils.ErrUnsupportedSharePlatform
	}
}

func (s *ExportService) ShareQRCode(link string) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrExportFailed, err)
	}
	return png, nil
}

// encodeURIComponent escapes s for use inside a query value, with spaces as %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

type CostItem struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
}

// CostSummary.HasTotal is false when no category could be parsed into a
// number, in which case clients hide the total line.
type CostSummary struct {
	Items     []CostItem `json:"items"`
	TotalLow  float64    `json:"totalLow"`
	TotalHigh float64    `json:"totalHigh"`
	HasTotal  bool       `json:"hasTotal"`
}

func (s *ExportService) CostSummary(breakdown trip_models.CostBreakdown) CostSummary {
	return TotalCost(breakdown)
}

func costItems(b trip_models.CostBreakdown) []CostItem {
	return []CostItem{
		{Label: "Accommodation", Value: b.Accommodation},
		{Label: "Food", Value: b.Food},
		{Label: "Transportation", Value: b.Transportation},
		{Label: "Activities", Value: b.Activities},
	}
}

// TotalCost sums the parsed ranges of the non-empty categories.
func TotalCost(breakdown trip_models.CostBreakdown) CostSummary {
	items := lo.Filter(costItems(breakdown), func(item CostItem, _ int) bool {
		return item.Value != ""
	})

	var summary CostSummary
	for i := range items {
		items[i].Low, items[i].High = ParseCostRange(items[i].Value)
		summary.TotalLow += items[i].Low
		summary.TotalHigh += items[i].High
	}
	summary.Items = items
	summary.HasTotal = summary.TotalLow > 0 || summary.TotalHigh > 0
	return summary
}

// ParseCostRange reads "$100 - $200" as (100, 200) and "$50" as (50, 50).
// Anything else is (0, 0).
func ParseCostRange(s string) (float64, float64) {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if cleaned == "" {
		return 0, 0
	}

	parts := strings.Split(cleaned, "-")
	nums := make([]float64, 0, len(parts))
	for _, p := range parts {
		n, ok := leadingNumber(p)
		if !ok {
			return 0, 0
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 1:
		return nums[0], nums[0]
	case 2:
		return min(nums[0], nums[1]), max(nums[0], nums[1])
	default:
		return 0, 0
	}
}

var numberPrefix = regexp.MustCompile(`^\d+(\.\d+)?`)

// leadingNumber parses the number at the start of s, so "150/night" is 150.
func leadingNumber(s string) (float64, bool) {
	m := numberPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	return n, err == nil
}
