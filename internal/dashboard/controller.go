package dashboard

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/render"
)

type Tab string

const (
	TabWeight        Tab = "weight"
	TabBloodPressure Tab = "blood-pressure"
	TabGoals         Tab = "goals"
	TabReport        Tab = "report"
)

// Tabs in display order.
var Tabs = []Tab{TabWeight, TabBloodPressure, TabGoals, TabReport}

// Ranges are the selectable time ranges in days.
var Ranges = []int{7, 30, 90}

const DefaultRange = 30

const (
	MsgUnavailable  = "Unable to load data right now. Please try again later."
	MsgInvalidGoal  = "Please enter a valid numeric target value."
	MsgInvalidType  = "Please choose a goal type: weight, blood sugar or blood pressure."
	MsgGoalRequired = "Set a goal type and target value to track your progress."
)

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tab %q", domain.ErrInvalidInput, s)
}

// rangeDependent reports whether a tab's data depends on the time range.
func (t Tab) rangeDependent() bool {
	return t == TabWeight || t == TabBloodPressure
}

// GoalQuery is the goal the user asked to track.
type GoalQuery struct {
	GoalType string  `json:"goal_type"`
	Target   float64 `json:"target"`
}

// Controller drives one dashboard session: which tab is active, which time
// range is selected, and loading data into each tab's surface.
//
// Loads run in the caller's goroutine. The controller lock is not held
// while fetching, so overlapping loads are possible; each surface's
// generation counter decides which result is shown.
type Controller struct {
	mu       sync.Mutex
	userID   uuid.UUID
	active   Tab
	days     int
	goal     *GoalQuery
	surfaces map[Tab]*Surface

	source Source
	logger *zap.Logger
}

// NewController creates a controller on the weight tab with the default
// range. Nothing is loaded until Start.
func NewController(userID uuid.UUID, source Source, logger *zap.Logger) *Controller {
	c := &Controller{
		userID:   userID,
		active:   TabWeight,
		days:     DefaultRange,
		surfaces: make(map[Tab]*Surface, len(Tabs)),
		source:   source,
		logger:   logger.With(zap.String("user_id", userID.String())),
	}
	for _, t := range Tabs {
		c.surfaces[t] = newSurface(t)
	}
	c.surfaces[TabWeight].setActive(true)
	return c
}

// Start loads the initially active tab.
func (c *Controller) Start(ctx context.Context) {
	c.load(ctx, c.ActiveTab())
}

func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Controller) Range() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.days
}

func (c *Controller) Surface(tab Tab) (*Surface, error) {
	s, ok := c.surfaces[tab]
	if !ok {
		return nil, fmt.Errorf("%w: unknown tab %q", domain.ErrInvalidInput, tab)
	}
	return s, nil
}

// SelectTab deactivates the current surface, activates tab and loads it.
func (c *Controller) SelectTab(ctx context.Context, tab Tab) error {
	next, ok := c.surfaces[tab]
	if !ok {
		return fmt.Errorf("%w: unknown tab %q", domain.ErrInvalidInput, tab)
	}

	c.mu.Lock()
	c.surfaces[c.active].setActive(false)
	c.active = tab
	next.setActive(true)
	c.mu.Unlock()

	c.load(ctx, tab)
	return nil
}

// SelectRange sets the time range and reloads the active tab when its
// data depends on the range.
func (c *Controller) SelectRange(ctx context.Context, days int) error {
	if !validRange(days) {
		return fmt.Errorf("%w: %d days", domain.ErrInvalidRange, days)
	}

	c.mu.Lock()
	c.days = days
	active := c.active
	c.mu.Unlock()

	if active.rangeDependent() {
		c.load(ctx, active)
	}
	return nil
}

// SetGoal validates the goal input and stores it. Invalid input is shown
// as a notice on the goals surface and nothing is fetched. A valid goal
// is loaded immediately when the goals tab is active.
func (c *Controller) SetGoal(ctx context.Context, goalType, rawTarget string) error {
	goals := c.surfaces[TabGoals]

	if !domain.IsValidGoalType(goalType) {
		goals.Notify(MsgInvalidType)
		return fmt.Errorf("%w: %q", domain.ErrInvalidGoalType, goalType)
	}
	target, err := strconv.ParseFloat(strings.TrimSpace(rawTarget), 64)
	if err != nil || math.IsNaN(target) || math.IsInf(target, 0) {
		goals.Notify(MsgInvalidGoal)
		return fmt.Errorf("%w: target %q is not a number", domain.ErrInvalidInput, rawTarget)
	}

	c.mu.Lock()
	c.goal = &GoalQuery{GoalType: goalType, Target: target}
	active := c.active
	c.mu.Unlock()

	goals.Notify("")
	if active == TabGoals {
		c.load(ctx, TabGoals)
	}
	return nil
}

// Reload re-fetches the active tab.
func (c *Controller) Reload(ctx context.Context) {
	c.load(ctx, c.ActiveTab())
}

func (c *Controller) load(ctx context.Context, tab Tab) {
	surface := c.surfaces[tab]

	c.mu.Lock()
	days := c.days
	var goal *GoalQuery
	if c.goal != nil {
		g := *c.goal
		goal = &g
	}
	c.mu.Unlock()

	if tab == TabGoals && goal == nil {
		surface.Notify(MsgGoalRequired)
		return
	}

	gen := surface.Begin()
	out, err := c.fetch(ctx, tab, days, goal)
	if err != nil {
		c.logger.Error("failed to load dashboard tab",
			zap.String("tab", string(tab)),
			zap.Error(err),
		)
		out, _ = render.Notice(MsgUnavailable)
	}

	if !surface.Apply(gen, out) {
		c.logger.Debug("discarded stale dashboard response",
			zap.String("tab", string(tab)),
			zap.Uint64("generation", gen),
		)
	}
}

func (c *Controller) fetch(ctx context.Context, tab Tab, days int, goal *GoalQuery) (render.Output, error) {
	switch tab {
	case TabWeight:
		a, err := c.source.WeightTrend(ctx, c.userID, days)
		if err != nil {
			return render.Output{}, err
		}
		return render.Weight(a)
	case TabBloodPressure:
		a, err := c.source.BloodPressureTrend(ctx, c.userID, days)
		if err != nil {
			return render.Output{}, err
		}
		return render.BloodPressure(a)
	case TabGoals:
		a, err := c.source.GoalProgress(ctx, c.userID, goal.GoalType, goal.Target)
		if err != nil {
			return render.Output{}, err
		}
		return render.GoalProgress(a)
	case TabReport:
		a, err := c.source.HealthReport(ctx, c.userID)
		if err != nil {
			return render.Output{}, err
		}
		return render.Report(a)
	default:
		return render.Output{}, fmt.Errorf("%w: unknown tab %q", domain.ErrInvalidInput, tab)
	}
}

// State is a snapshot of the whole session.
type State struct {
	UserID    uuid.UUID         `json:"user_id"`
	ActiveTab Tab               `json:"active_tab"`
	RangeDays int               `json:"range_days"`
	Goal      *GoalQuery        `json:"goal,omitempty"`
	Surfaces  []SurfaceSnapshot `json:"surfaces"`
}

func (c *Controller) State() State {
	c.mu.Lock()
	st := State{
		UserID:    c.userID,
		ActiveTab: c.active,
		RangeDays: c.days,
	}
	if c.goal != nil {
		g := *c.goal
		st.Goal = &g
	}
	c.mu.Unlock()

	for _, t := range Tabs {
		st.Surfaces = append(st.Surfaces, c.surfaces[t].Snapshot())
	}
	return st
}

func validRange(days int) bool {
	for _, r := range Ranges {
		if r == days {
			return true
		}
	}
	return false
}
