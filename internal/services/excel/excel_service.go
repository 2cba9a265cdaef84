// Package excel renders the campaign performance report as an .xlsx download.
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/models"
)

// Service handles Excel export of campaign data
type Service struct {
	campaignRepo     *repository.CampaignRepository
	goalRepo         *repository.GoalRepository
	conversationRepo *repository.ConversationRepository
	exportsDir       string
}

// NewExcelService creates a new Excel service instance
func NewExcelService(
	campaignRepo *repository.CampaignRepository,
	goalRepo *repository.GoalRepository,
	conversationRepo *repository.ConversationRepository,
	exportsDir string) *Service {
	// Create exports directory if it doesn't exist
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{
		campaignRepo:     campaignRepo,
		goalRepo:         goalRepo,
		conversationRepo: conversationRepo,
		exportsDir:       exportsDir,
	}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Success  bool
	Message  string
	Filename string
	FilePath string
}

// ExportCampaignReport writes every campaign with its goal and conversation
// metrics to an Excel file and returns the file location
func (s *Service) ExportCampaignReport() (*ExportResult, error) {
	// Unique filename so concurrent exports never clobber each other
	filename := fmt.Sprintf("campaign_report_%s_%s.xlsx", time.Now().Format("20060102"), uuid.New().String()[:8])
	filePath := filepath.Join(s.exportsDir, filename)

	campaigns, err := s.campaignRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	f := excelize.NewFile()

	// Status fills matching the dashboard's badge colors
	activeStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1}, // Green
	})
	upcomingStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1}, // Yellow
	})
	terminalStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1}, // Gray
	})

	sheetName := "Campaigns"
	defaultSheetName := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	columns := []string{
		"id", "name", "status", "goal_id", "goal_name", "goal_version",
		"starts_at", "ends_at", "conversations", "avg_score", "completion_rate",
	}

	for i, col := range columns {
		cell := fmt.Sprintf("%s1", columnToLetter(i+1))
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		lastCol := columnToLetter(len(columns))
		f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", lastCol), headerStyle)
	}

	for i, campaign := range campaigns {
		row := i + 2

		goalName := ""
		if goal, err := s.goalRepo.GetByID(campaign.GoalID); err == nil {
			goalName = goal.Name
		}

		conversations, err := s.conversationRepo.GetByCampaignID(campaign.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get conversations for campaign %s: %w", campaign.ID, err)
		}

		var scoreTotal float64
		scored := 0
		completed := 0
		for _, conversation := range conversations {
			if conversation.Score != nil {
				scoreTotal += *conversation.Score
				scored++
			}
			if conversation.IsCompleted {
				completed++
			}
		}

		values := []interface{}{
			campaign.ID,
			campaign.Name,
			string(campaign.Status),
			campaign.GoalID,
			goalName,
			campaign.GoalVersionNo,
			formatDate(campaign.StartsAt),
			formatDate(campaign.EndsAt),
			len(conversations),
			"",
			"",
		}
		if scored > 0 {
			values[9] = scoreTotal / float64(scored)
		}
		if len(conversations) > 0 {
			values[10] = float64(completed) / float64(len(conversations))
		}

		for j, value := range values {
			cell := fmt.Sprintf("%s%d", columnToLetter(j+1), row)
			f.SetCellValue(sheetName, cell, value)
		}

		statusCell := fmt.Sprintf("C%d", row)
		switch campaign.Status {
		case models.CampaignStatusActive:
			f.SetCellStyle(sheetName, statusCell, statusCell, activeStyle)
		case models.CampaignStatusUpcoming:
			f.SetCellStyle(sheetName, statusCell, statusCell, upcomingStyle)
		default:
			f.SetCellStyle(sheetName, statusCell, statusCell, terminalStyle)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save Excel file: %w", err)
	}

	return &ExportResult{
		Success:  true,
		Message:  fmt.Sprintf("Exported %d campaigns", len(campaigns)),
		Filename: filename,
		FilePath: filePath,
	}, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// columnToLetter converts a 1-based column index to its Excel letter
func columnToLetter(col int) string {
	letter := ""
	for col > 0 {
		col--
		letter = string(rune('A'+col%26)) + letter
		col /= 26
	}
	return letter
}
