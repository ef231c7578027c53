// services/problem_service.go - Problem catalog and team selection
package services

import (
	"errors"

	"hacksphere/models"
	"hacksphere/store"
)

// SelectionWindowKey is the settings flag gating problem selection. Absent
// means open.
const SelectionWindowKey = "problem_selection_open"

var (
	ErrSelectionClosed = errors.New("problem selection is currently closed")
	ErrTeamNotApproved = errors.New("team must be approved before selecting a problem")
)

type ProblemService struct {
	store store.Store
}

func NewProblemService(s store.Store) *ProblemService {
	return &ProblemService{store: s}
}

func (s *ProblemService) List() ([]models.Problem, error) {
	return s.store.Problems().List()
}

func (s *ProblemService) Get(id uint) (*models.Problem, error) {
	return s.store.Problems().GetByID(id)
}

func (s *ProblemService) Create(p *models.Problem) error {
	if p.Difficulty == "" {
		p.Difficulty = models.DifficultyMedium
	}
	if p.Type == "" {
		p.Type = models.ProblemBoth
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.store.Problems().Create(p)
}

func (s *ProblemService) Update(id uint, update *models.Problem) (*models.Problem, error) {
	existing, err := s.store.Problems().GetByID(id)
	if err != nil {
		return nil, err
	}
	existing.Title = update.Title
	existing.Description = update.Description
	existing.Category = update.Category
	existing.Difficulty = update.Difficulty
	existing.Type = update.Type
	existing.Tags = update.Tags
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Problems().Save(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// SelectionOpen reports whether teams may currently pick a problem. The
// window defaults to open until an admin toggles it.
func (s *ProblemService) SelectionOpen() (bool, error) {
	value, err := s.store.Settings().Get(SelectionWindowKey)
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return value != "false", nil
}

func (s *ProblemService) SetSelectionOpen(open bool) error {
	value := "false"
	if open {
		value = "true"
	}
	return s.store.Settings().Set(SelectionWindowKey, value)
}

// Select records the leader's problem choice for their approved team.
func (s *ProblemService) Select(leaderID, problemID uint) (*models.Problem, error) {
	open, err := s.SelectionOpen()
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrSelectionClosed
	}

	team, err := s.store.Teams().GetByLeader(leaderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotLeader
		}
		return nil, err
	}
	if team.Status != models.TeamStatusApproved {
		return nil, ErrTeamNotApproved
	}

	problem, err := s.store.Problems().GetByID(problemID)
	if err != nil {
		return nil, err
	}

	team.ProblemID = &problem.ID
	if err := s.store.Teams().Save(team); err != nil {
		return nil, err
	}
	return problem, nil
}

// Selection is a member's view of their team's problem choice.
type Selection struct {
	Problem         *models.Problem `json:"selected_problem"`
	IsSelectionOpen bool            `json:"is_selection_open"`
	CanSelect       bool            `json:"can_select"`
}

// MySelection reports the problem chosen by the user's team, whether the
// window is open, and whether this user could change the choice.
func (s *ProblemService) MySelection(userID uint) (*Selection, error) {
	open, err := s.SelectionOpen()
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.TeamID == nil {
		return nil, store.ErrNotFound
	}
	team, err := s.store.Teams().GetByID(*user.TeamID)
	if err != nil {
		return nil, err
	}

	sel := &Selection{
		IsSelectionOpen: open,
		CanSelect:       open && team.Status == models.TeamStatusApproved && team.LeaderID == userID,
	}
	if team.ProblemID != nil {
		problem, err := s.store.Problems().GetByID(*team.ProblemID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		sel.Problem = problem
	}
	return sel, nil
}

// SelectionGroup is one problem together with the approved teams that
// picked it.
type SelectionGroup struct {
	Problem models.Problem `json:"problem"`
	Teams   []models.Team  `json:"teams"`
}

// SelectionReport is the admin roll-up of who picked what.
type SelectionReport struct {
	IsSelectionOpen    bool             `json:"is_selection_open"`
	Selections         []SelectionGroup `json:"problem_selections"`
	UnselectedTeams    []models.Team    `json:"unselected_teams"`
	Problems           []models.Problem `json:"problem_stats"`
	TotalApprovedTeams int              `json:"total_approved_teams"`
	TeamsWithSelection int              `json:"teams_with_selection"`
}

// AllSelections groups approved teams by their chosen problem.
func (s *ProblemService) AllSelections() (*SelectionReport, error) {
	open, err := s.SelectionOpen()
	if err != nil {
		return nil, err
	}
	teams, err := s.store.Teams().List(store.TeamFilter{Status: models.TeamStatusApproved})
	if err != nil {
		return nil, err
	}
	problems, err := s.store.Problems().List()
	if err != nil {
		return nil, err
	}

	report := &SelectionReport{
		IsSelectionOpen:    open,
		Selections:         []SelectionGroup{},
		UnselectedTeams:    []models.Team{},
		Problems:           problems,
		TotalApprovedTeams: len(teams),
	}

	byProblem := make(map[uint]int)
	for _, p := range problems {
		byProblem[p.ID] = -1
	}
	for _, team := range teams {
		if team.ProblemID == nil {
			report.UnselectedTeams = append(report.UnselectedTeams, team)
			continue
		}
		report.TeamsWithSelection++
		idx, known := byProblem[*team.ProblemID]
		if !known {
			continue
		}
		if idx < 0 {
			for _, p := range problems {
				if p.ID == *team.ProblemID {
					report.Selections = append(report.Selections, SelectionGroup{Problem: p})
					break
				}
			}
			idx = len(report.Selections) - 1
			byProblem[*team.ProblemID] = idx
		}
		report.Selections[idx].Teams = append(report.Selections[idx].Teams, team)
	}
	return report, nil
}
