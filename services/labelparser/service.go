package labelparser

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"courier-service/logger"
	"courier-service/models/labelparser"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// Service handles waybill/label photo parsing via Gemini Vision
type Service struct {
	DB        *gorm.DB
	UploadDir string
}

// NewLabelParserService creates a new label parser service
func NewLabelParserService(db *gorm.DB) *Service {
	return &Service{
		DB:        db,
		UploadDir: "uploaded_labels",
	}
}

// GenerateRequestID generates a 24 character unique request ID
func (s *Service) GenerateRequestID() string {
	bytes := make([]byte, 12)
	rand.Read(bytes)

	requestID := hex.EncodeToString(bytes)
	timestamp := time.Now().Unix()

	// Last 6 hex chars of the timestamp + 18 chars of random hex
	return fmt.Sprintf("%06x%s", timestamp&0xffffff, requestID[:18])
}

// CreateInitialRequest creates an initial request record in the database
func (s *Service) CreateInitialRequest(c *fiber.Ctx, requestID, originalFileName string, fileSize int64, mimeType string) (*labelparser.LabelParseRequest, error) {
	ipAddress := c.IP()
	if ipAddress == "" {
		ipAddress = "unknown"
	}
	userAgent := c.Get("User-Agent")

	request := &labelparser.LabelParseRequest{
		RequestID:        requestID,
		OriginalFileName: originalFileName,
		FileSize:         fileSize,
		MimeType:         mimeType,
		Status:           "processing",
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
	}

	if err := s.DB.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create initial request: %w", err)
	}

	return request, nil
}

// SaveFileAsync saves the uploaded file asynchronously
func (s *Service) SaveFileAsync(requestID string, fileBytes []byte, originalFileName, mimeType string) {
	go func() {
		if err := s.saveFile(requestID, fileBytes, originalFileName); err != nil {
			logger.Error(fmt.Sprintf("Failed to save file for request %s", requestID), err)
			s.updateRequestWithFileError(requestID, err.Error())
		}
	}()
}

func (s *Service) saveFile(requestID string, fileBytes []byte, originalFileName string) error {
	if err := s.ensureUploadDir(); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	hash := sha256.Sum256(fileBytes)
	fileHash := hex.EncodeToString(hash[:])

	ext := filepath.Ext(originalFileName)
	savedFileName := fmt.Sprintf("%s_%d%s", requestID, time.Now().Unix(), ext)
	filePath := filepath.Join(s.UploadDir, savedFileName)

	if err := os.WriteFile(filePath, fileBytes, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	updates := map[string]interface{}{
		"saved_file_name": savedFileName,
		"file_hash":       fileHash,
		"file_path":       filePath,
	}

	if err := s.DB.Model(&labelparser.LabelParseRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		os.Remove(filePath)
		return fmt.Errorf("failed to update request with file info: %w", err)
	}

	logger.Success(fmt.Sprintf("File saved successfully for request %s: %s", requestID, savedFileName))
	return nil
}

// SaveSuccessResultAsync saves the parsing result asynchronously
func (s *Service) SaveSuccessResultAsync(requestID string, result *labelparser.LabelParseResult) {
	go func() {
		var request labelparser.LabelParseRequest
		if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to find request %s", requestID), err)
			return
		}
		if err := request.MarkAsSuccess(s.DB, result); err != nil {
			logger.Error(fmt.Sprintf("Failed to save success result for request %s", requestID), err)
		}
	}()
}

// SaveFailureResultAsync saves the failure result asynchronously
func (s *Service) SaveFailureResultAsync(requestID string, errorMsg string, processingTime int64) {
	go func() {
		var request labelparser.LabelParseRequest
		if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to find request %s", requestID), err)
			return
		}
		if err := request.MarkAsFailed(s.DB, errorMsg, processingTime); err != nil {
			logger.Error(fmt.Sprintf("Failed to save failure result for request %s", requestID), err)
		}
	}()
}

func (s *Service) updateRequestWithFileError(requestID string, errorMsg string) {
	updates := map[string]interface{}{
		"status":        "failed",
		"error_message": fmt.Sprintf("File saving error: %s", errorMsg),
	}

	if err := s.DB.Model(&labelparser.LabelParseRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to update request %s with file error", requestID), err)
	}
}

func (s *Service) ensureUploadDir() error {
	if _, err := os.Stat(s.UploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(s.UploadDir, 0755); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Created upload directory: %s", s.UploadDir))
	}
	return nil
}

// ParseWithGemini uses Gemini Vision to extract structured shipment fields
// from a waybill/label photo.
func (s *Service) ParseWithGemini(imageBytes []byte, mimeType string) (*labelparser.LabelParseResult, error) {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := `Analyze this shipping waybill or parcel label image and extract the following information. Return ONLY valid JSON.

			Extract these fields from the image. If a field is missing or unclear, use an empty string.

			Required JSON format:
			{
			"recipient_name": string,   // Consignee/recipient full name
			"recipient_phone": string,  // Recipient contact phone number
			"address_text": string,     // Delivery address (combine address lines into a single readable string)
			"city": string,             // Destination city
			"postal_code": string,      // Destination postal/ZIP code
			"country": string,          // Destination country
			"carrier": string,          // Carrier name printed on the label, if any
			"reference_code": string    // Waybill/airway bill/reference number
			}`

	content := &genai.Content{
		Parts: []*genai.Part{
			&genai.Part{Text: prompt},
			&genai.Part{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			}},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with OCR: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated by OCR")
	}

	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response from OCR")
	}

	jsonText := extractJSONFromMarkdown(responseText)

	var parsed labelparser.LabelParseResult
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}

	return &parsed, nil
}

// extractJSONFromMarkdown extracts JSON content from markdown code blocks
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			return strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return text
}

// GetRequestByID retrieves a request by ID
func (s *Service) GetRequestByID(requestID string) (*labelparser.LabelParseRequest, error) {
	var request labelparser.LabelParseRequest
	if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// CleanupOldFiles removes saved label images older than the given age
func (s *Service) CleanupOldFiles(daysOld int) error {
	cutoffDate := time.Now().AddDate(0, 0, -daysOld)

	var oldRequests []labelparser.LabelParseRequest
	if err := s.DB.Where("created_at < ? AND file_path != ''", cutoffDate).Find(&oldRequests).Error; err != nil {
		return err
	}

	for _, request := range oldRequests {
		if request.FilePath != "" {
			if err := os.Remove(request.FilePath); err != nil && !os.IsNotExist(err) {
				logger.Error(fmt.Sprintf("Failed to remove old file: %s", request.FilePath), err)
			}
		}
		if err := s.DB.Model(&request).Update("file_path", "").Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to clear file path for request %s", request.RequestID), err)
		}
	}

	return nil
}
