package services

import (
	"fmt"
	"sync"

	"github.com/converseiq/converseiq-backend/internal/models"
)

// campaignSource is the slice of the campaign repository the evaluator needs
type campaignSource interface {
	GetByGoalID(goalID string) ([]*models.Campaign, error)
}

// EditabilityService decides whether a goal's draft may be edited. A goal is
// locked while any dependent campaign is upcoming or active; the flag is
// advisory on listings and re-checked on every edit submit.
type EditabilityService struct {
	campaigns campaignSource
}

func NewEditabilityService(campaigns campaignSource) *EditabilityService {
	return &EditabilityService{campaigns: campaigns}
}

// EvaluateEditability reports whether a goal with the given dependent
// campaigns is editable. No campaigns means editable.
func EvaluateEditability(campaigns []*models.Campaign) bool {
	for _, campaign := range campaigns {
		if !campaign.Status.IsTerminal() {
			return false
		}
	}
	return true
}

// CanEdit evaluates editability for a single goal
func (s *EditabilityService) CanEdit(goalID string) (bool, error) {
	campaigns, err := s.campaigns.GetByGoalID(goalID)
	if err != nil {
		return false, fmt.Errorf("failed to get campaigns for goal %s: %w", goalID, err)
	}
	return EvaluateEditability(campaigns), nil
}

// AnnotateAll fills the Editable flag on every response, fanning the campaign
// lookups out concurrently. Result order matches input order; a failed lookup
// leaves that goal's flag unset and surfaces as a single error.
func (s *EditabilityService) AnnotateAll(goals []*models.GoalResponse) error {
	if len(goals) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(goals))
	for i, goal := range goals {
		wg.Add(1)
		go func(i int, goal *models.GoalResponse) {
			defer wg.Done()
			editable, err := s.CanEdit(goal.ID)
			if err != nil {
				errs[i] = err
				return
			}
			goal.Editable = &editable
		}(i, goal)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("failed to evaluate editability: %w", err)
		}
	}
	return nil
}
