package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/converseiq/converseiq-backend/internal/database/repository"
	"github.com/converseiq/converseiq-backend/internal/listview"
	"github.com/converseiq/converseiq-backend/internal/models"
	"gorm.io/gorm"
)

type GoalService struct {
	goalRepo    *repository.GoalRepository
	versionRepo *repository.GoalVersionRepository
	campRepo    *repository.CampaignRepository
	userRepo    *repository.UserRepository
	teamRepo    *repository.TeamRepository
	editability *EditabilityService
	activity    *ActivityService
}

func NewGoalService(
	goalRepo *repository.GoalRepository,
	versionRepo *repository.GoalVersionRepository,
	campRepo *repository.CampaignRepository,
	userRepo *repository.UserRepository,
	teamRepo *repository.TeamRepository,
	editability *EditabilityService,
	activity *ActivityService,
) *GoalService {
	return &GoalService{
		goalRepo:    goalRepo,
		versionRepo: versionRepo,
		campRepo:    campRepo,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		editability: editability,
		activity:    activity,
	}
}

// GoalListQuery narrows the goal listing. Zero values mean "any".
type GoalListQuery struct {
	Search   string
	OwnerID  string
	TeamID   string
	States   []string
	Page     int
	PageSize int
}

// goalRow pairs a goal response with the filterable attributes that live
// outside it (owner comes from the current version, state is derived)
type goalRow struct {
	resp    *models.GoalResponse
	ownerID string
	state   string
}

// CreateGoal creates a goal with its initial draft version
func (s *GoalService) CreateGoal(actorID string, req *models.CreateGoalRequest) (*models.GoalResponse, error) {
	if req.TeamID != nil {
		if _, err := s.teamRepo.GetByID(*req.TeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newValidationError("team_id", "Team not found")
			}
			return nil, fmt.Errorf("failed to verify team: %w", err)
		}
	}

	goal := &models.Goal{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
	}
	if err := s.goalRepo.Create(goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	draft := versionFromPayload(goal.ID, 1, goal.Name, &req.GoalVersionPayload)
	if err := s.versionRepo.Create(draft); err != nil {
		return nil, fmt.Errorf("failed to create initial draft: %w", err)
	}

	one := 1
	goal.DraftVersionNo = &one
	if err := s.goalRepo.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to attach draft to goal: %w", err)
	}

	s.activity.Record("goal", goal.ID, actorID, "created",
		fmt.Sprintf("Goal %q created with draft v1", goal.Name), nil)

	return s.toResponse(goal), nil
}

// ListGoals retrieves non-archived goals filtered in memory by the listview
// predicates, with the editability flag evaluated concurrently per goal.
// Total counts the unfiltered collection, Count the filtered one.
func (s *GoalService) ListGoals(query GoalListQuery) (*models.GoalListResponse, error) {
	goals, err := s.goalRepo.GetAllActive()
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}

	rows := make([]goalRow, 0, len(goals))
	for _, goal := range goals {
		ownerID, err := s.currentOwner(goal)
		if err != nil {
			return nil, err
		}
		rows = append(rows, goalRow{
			resp:    s.toResponse(goal),
			ownerID: ownerID,
			state:   string(StateOf(goal)),
		})
	}

	filtered := listview.Filter(rows,
		listview.TextSearch(query.Search,
			func(r goalRow) string { return r.resp.Name },
			func(r goalRow) string { return r.resp.Description },
		),
		listview.Equals(query.OwnerID, func(r goalRow) string { return r.ownerID }),
		listview.Equals(query.TeamID, func(r goalRow) string {
			if r.resp.TeamID == nil {
				return ""
			}
			return *r.resp.TeamID
		}),
		listview.OneOf(query.States, func(r goalRow) string { return r.state }),
	)

	count := len(filtered)
	if query.PageSize > 0 {
		filtered = listview.Page(filtered, query.Page, query.PageSize)
	}

	responses := make([]*models.GoalResponse, len(filtered))
	for i, row := range filtered {
		responses[i] = row.resp
	}
	if err := s.editability.AnnotateAll(responses); err != nil {
		return nil, err
	}

	return &models.GoalListResponse{
		Goals: responses,
		Count: count,
		Total: len(goals),
	}, nil
}

// GetGoal retrieves one goal with its editability flag
func (s *GoalService) GetGoal(goalID string) (*models.GoalResponse, error) {
	goal, err := s.getGoal(goalID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(goal)
	editable, err := s.editability.CanEdit(goal.ID)
	if err != nil {
		return nil, err
	}
	resp.Editable = &editable
	return resp, nil
}

// GetActiveSummary lists published goals with their dependent-campaign counts
func (s *GoalService) GetActiveSummary() ([]*models.GoalSummaryResponse, error) {
	goals, err := s.goalRepo.GetPublished()
	if err != nil {
		return nil, fmt.Errorf("failed to get published goals: %w", err)
	}

	summaries := make([]*models.GoalSummaryResponse, len(goals))
	for i, goal := range goals {
		total, active, err := s.campRepo.CountByGoalID(goal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count campaigns for goal %s: %w", goal.ID, err)
		}
		summaries[i] = &models.GoalSummaryResponse{
			ID:                 goal.ID,
			Name:               goal.Name,
			PublishedVersionNo: *goal.PublishedVersionNo,
			CampaignCount:      int(total),
			ActiveCampaigns:    int(active),
		}
	}
	return summaries, nil
}

// GetVersion retrieves the goal's version in the requested variant:
// "active" for the published version, "draft" for the working draft.
func (s *GoalService) GetVersion(goalID, variant string) (*models.GoalVersionResponse, error) {
	goal, err := s.getGoal(goalID)
	if err != nil {
		return nil, err
	}

	var versionNo *int
	switch variant {
	case "active":
		versionNo = goal.PublishedVersionNo
	case "draft":
		versionNo = goal.DraftVersionNo
	default:
		return nil, newValidationError("variant", "Variant must be 'active' or 'draft'")
	}
	if versionNo == nil {
		return nil, ErrNotFound
	}

	version, err := s.versionRepo.GetByGoalAndVersion(goalID, *versionNo)
	if err != nil {
		return nil, asNotFound(err)
	}
	return versionToResponse(version), nil
}

// ResolveVersion retrieves the published version when one exists, falling
// back to the draft, and reports which variant satisfied the lookup
func (s *GoalService) ResolveVersion(goalID string) (*models.ResolvedVersionResponse, error) {
	goal, err := s.getGoal(goalID)
	if err != nil {
		return nil, err
	}

	versionNo := goal.PublishedVersionNo
	resolvedFrom := "active"
	if versionNo == nil {
		versionNo = goal.DraftVersionNo
		resolvedFrom = "draft"
	}
	if versionNo == nil {
		return nil, ErrNotFound
	}

	version, err := s.versionRepo.GetByGoalAndVersion(goalID, *versionNo)
	if err != nil {
		return nil, asNotFound(err)
	}
	return &models.ResolvedVersionResponse{
		Version:      versionToResponse(version),
		ResolvedFrom: resolvedFrom,
	}, nil
}

// ListVersions retrieves the full version history of a goal, newest first
func (s *GoalService) ListVersions(goalID string) ([]*models.GoalVersionResponse, error) {
	if _, err := s.getGoal(goalID); err != nil {
		return nil, err
	}

	versions, err := s.versionRepo.ListByGoal(goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	responses := make([]*models.GoalVersionResponse, len(versions))
	for i, version := range versions {
		responses[i] = versionToResponse(version)
	}
	return responses, nil
}

// UpdateDraft replaces the goal's draft content, creating a fresh draft
// version when none exists. Locked goals (active dependent campaigns) and
// archived goals reject the edit.
func (s *GoalService) UpdateDraft(goalID, actorID string, req *models.UpdateDraftRequest) (*models.GoalVersionResponse, error) {
	goal, err := s.getGoal(goalID)
	if err != nil {
		return nil, err
	}
	if err := CanEditDraft(goal); err != nil {
		return nil, err
	}

	editable, err := s.editability.CanEdit(goal.ID)
	if err != nil {
		return nil, err
	}
	if !editable {
		return nil, ErrConflict
	}

	var draft *models.GoalVersion
	if goal.DraftVersionNo != nil {
		draft, err = s.versionRepo.GetByGoalAndVersion(goalID, *goal.DraftVersionNo)
		if err != nil {
			return nil, asNotFound(err)
		}
		applyPayload(draft, req.Name, &req.GoalVersionPayload)
		if err := s.versionRepo.Update(draft); err != nil {
			return nil, fmt.Errorf("failed to update draft: %w", err)
		}
	} else {
		next := NextDraftVersion(goal)
		draft = versionFromPayload(goalID, next, req.Name, &req.GoalVersionPayload)
		if err := s.versionRepo.Create(draft); err != nil {
			return nil, fmt.Errorf("failed to create draft: %w", err)
		}
		goal.DraftVersionNo = &next
	}

	goal.Name = req.Name
	goal.Description = req.Description
	if err := s.goalRepo.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.activity.Record("goal", goal.ID, actorID, "draft_updated",
		fmt.Sprintf("Draft v%d of goal %q updated", draft.VersionNo, goal.Name),
		map[string]interface{}{"version_no": draft.VersionNo})

	return versionToResponse(draft), nil
}

// PublishGoal promotes the draft to published. The previously published
// version is retired; the draft slot empties.
func (s *GoalService) PublishGoal(goalID, actorID string) (*models.GoalResponse, error) {
	goal, err := s.getGoal(goalID)
	if err != nil {
		return nil, err
	}
	if err := CanPublish(goal); err != nil {
		return nil, err
	}

	draft, err := s.versionRepo.GetByGoalAndVersion(goalID, *goal.DraftVersionNo)
	if err != nil {
		return nil, asNotFound(err)
	}

	if goal.PublishedVersionNo != nil {
		published, err := s.versionRepo.GetByGoalAndVersion(goalID, *goal.PublishedVersionNo)
		if err != nil {
			return nil, asNotFound(err)
		}
		if err := s.versionRepo.SetState(published.ID, models.VersionStateRetired); err != nil {
			return nil, fmt.Errorf("failed to retire version v%d: %w", published.VersionNo, err)
		}
	}

	now := time.Now()
	draft.State = models.VersionStatePublished
	draft.PublishedAt = &now
	if err := s.versionRepo.Update(draft); err != nil {
		return nil, fmt.Errorf("failed to publish draft: %w", err)
	}

	ApplyPublish(goal)
	if err := s.goalRepo.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to update goal pointers: %w", err)
	}

	s.activity.Record("goal", goal.ID, actorID, "published",
		fmt.Sprintf("Goal %q published v%d", goal.Name, draft.VersionNo),
		map[string]interface{}{"version_no": draft.VersionNo})

	return s.toResponse(goal), nil
}

// CloneGoal creates a new goal seeded from the source's PUBLISHED version
// only; unpublished draft work never leaks into the clone.
func (s *GoalService) CloneGoal(goalID, actorID string, req *models.CloneGoalRequest) (*models.GoalResponse, error) {
	source, err := s.getGoal(goalID)
	if err != nil {
		return nil, err
	}
	if err := CanClone(source); err != nil {
		return nil, err
	}

	published, err := s.versionRepo.GetByGoalAndVersion(goalID, *source.PublishedVersionNo)
	if err != nil {
		return nil, asNotFound(err)
	}

	name := req.Name
	if name == "" {
		name = "Copy of " + source.Name
	}

	clone := &models.Goal{
		Name:        name,
		Description: source.Description,
		TeamID:      source.TeamID,
	}
	if err := s.goalRepo.Create(clone); err != nil {
		return nil, fmt.Errorf("failed to create clone: %w", err)
	}

	draft := SeedCloneDraft(clone.ID, name, published)
	if err := s.versionRepo.Create(draft); err != nil {
		return nil, fmt.Errorf("failed to create clone draft: %w", err)
	}

	one := 1
	clone.DraftVersionNo = &one
	if err := s.goalRepo.Update(clone); err != nil {
		return nil, fmt.Errorf("failed to attach draft to clone: %w", err)
	}

	s.activity.Record("goal", clone.ID, actorID, "cloned",
		fmt.Sprintf("Goal %q cloned from %q v%d", name, source.Name, published.VersionNo),
		map[string]interface{}{
			"source_goal_id":    source.ID,
			"source_version_no": published.VersionNo,
		})

	return s.toResponse(clone), nil
}

// ArchiveGoal archives a goal. Upcoming or active dependent campaigns block
// the archive; completed history never does.
func (s *GoalService) ArchiveGoal(goalID, actorID string) error {
	goal, err := s.getGoal(goalID)
	if err != nil {
		return err
	}

	_, active, err := s.campRepo.CountByGoalID(goalID)
	if err != nil {
		return fmt.Errorf("failed to count campaigns: %w", err)
	}
	if err := CanArchive(goal, active); err != nil {
		return err
	}

	if err := s.goalRepo.Archive(goalID); err != nil {
		return fmt.Errorf("failed to archive goal: %w", err)
	}

	s.activity.Record("goal", goal.ID, actorID, "archived",
		fmt.Sprintf("Goal %q archived", goal.Name), nil)
	return nil
}

// GetEditability reports whether the goal's draft may currently be edited
func (s *GoalService) GetEditability(goalID string) (*models.EditabilityResponse, error) {
	goal, err := s.getGoal(goalID)
	if err != nil {
		return nil, err
	}

	editable, err := s.editability.CanEdit(goal.ID)
	if err != nil {
		return nil, err
	}
	return &models.EditabilityResponse{GoalID: goal.ID, Editable: editable}, nil
}

// ListOwners lists all users as dropdown references
func (s *GoalService) ListOwners() ([]*models.OwnerResponse, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	owners := make([]*models.OwnerResponse, len(users))
	for i, user := range users {
		owners[i] = &models.OwnerResponse{ID: user.ID, Name: user.DisplayName()}
	}
	return owners, nil
}

// ListTeams lists all teams as dropdown references
func (s *GoalService) ListTeams() ([]*models.OwnerResponse, error) {
	teams, err := s.teamRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	refs := make([]*models.OwnerResponse, len(teams))
	for i, team := range teams {
		refs[i] = &models.OwnerResponse{ID: team.ID, Name: team.Name}
	}
	return refs, nil
}

func (s *GoalService) getGoal(goalID string) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return goal, nil
}

// currentOwner reads the owner off the published version, falling back to the
// draft; goals between versions have no owner.
func (s *GoalService) currentOwner(goal *models.Goal) (string, error) {
	versionNo := goal.PublishedVersionNo
	if versionNo == nil {
		versionNo = goal.DraftVersionNo
	}
	if versionNo == nil {
		return "", nil
	}

	version, err := s.versionRepo.GetByGoalAndVersion(goal.ID, *versionNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get version for goal %s: %w", goal.ID, err)
	}
	return version.OwnerID, nil
}

// toResponse converts Goal model to response DTO
func (s *GoalService) toResponse(goal *models.Goal) *models.GoalResponse {
	return &models.GoalResponse{
		ID:                 goal.ID,
		Name:               goal.Name,
		Description:        goal.Description,
		TeamID:             goal.TeamID,
		PublishedVersionNo: goal.PublishedVersionNo,
		DraftVersionNo:     goal.DraftVersionNo,
		UpdatedAt:          goal.UpdatedAt.Format(time.RFC3339),
	}
}

func versionFromPayload(goalID string, versionNo int, name string, payload *models.GoalVersionPayload) *models.GoalVersion {
	version := &models.GoalVersion{
		GoalID:    goalID,
		VersionNo: versionNo,
		State:     models.VersionStateDraft,
	}
	applyPayload(version, name, payload)
	return version
}

func applyPayload(version *models.GoalVersion, name string, payload *models.GoalVersionPayload) {
	version.Name = name
	version.OwnerID = payload.OwnerID
	version.Tags = payload.Tags
	version.PromptText = payload.PromptText
	version.OutcomeFields = payload.OutcomeFields
	version.Insights = payload.Insights
	version.Dispositions = payload.Dispositions
	version.ScorecardParameters = payload.ScorecardParameters
}

func versionToResponse(version *models.GoalVersion) *models.GoalVersionResponse {
	resp := &models.GoalVersionResponse{
		GoalID:              version.GoalID,
		VersionNo:           version.VersionNo,
		State:               string(version.State),
		Name:                version.Name,
		OwnerID:             version.OwnerID,
		Tags:                version.Tags,
		PromptText:          version.PromptText,
		OutcomeFields:       version.OutcomeFields,
		Insights:            version.Insights,
		Dispositions:        version.Dispositions,
		ScorecardParameters: version.ScorecardParameters,
		UpdatedAt:           version.UpdatedAt.Format(time.RFC3339),
	}
	if version.PublishedAt != nil {
		publishedAt := version.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &publishedAt
	}
	return resp
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
