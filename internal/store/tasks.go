package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// catalog is the fixed daily checklist. Only Completed and Data ever change
// at runtime.
var catalog = []Task{
	{ID: "wake-up", Title: "Wake up by 7:00 AM", Description: "Start the day early and energized", TimeTarget: "By 7:00 AM", Type: TaskSimple},
	{ID: "cycle-10", Title: "Cycle 10 miles", Description: "Morning cardio session", TimeTarget: "45-60 minutes", Type: TaskExercise},
	{ID: "walk-pack", Title: "Walk 1 mile with pack", Description: "Build endurance and strength", TimeTarget: "15-20 minutes", Type: TaskExercise},
	{ID: "homework", Title: "Do homework", Description: "Complete daily assignments", Type: TaskSimple},
	{ID: "boy-scouts", Title: "Work on Boy Scouts Project", Description: "Make progress on current project", Type: TaskSimple},
	{ID: "standing-work", Title: "Do all work while standing", Description: "Maintain good posture and health", Type: TaskSimple},
	{ID: "calories", Title: "Track daily calorie intake", Description: "Monitor nutrition and health", Type: TaskCalories},
	{ID: "cycle-5", Title: "Cycle 5 miles", Description: "Evening exercise session", TimeTarget: "25-30 minutes", Type: TaskExercise},
	{ID: "tsa-work", Title: "Do TSA work", Description: "Technology Student Association tasks", Type: TaskSimple},
	{ID: "software-dev", Title: "Work on Software Development", Description: "Code practice and projects", Type: TaskSimple},
	{ID: "journal", Title: "Journal", Description: "Reflect on the day and plan tomorrow", TimeTarget: "10-15 minutes", Type: TaskSimple},
}

// Catalog returns a fresh copy of the checklist with default state.
func Catalog() []Task {
	tasks := make([]Task, len(catalog))
	for i, t := range catalog {
		t.Data = zeroData(t.Type)
		tasks[i] = t
	}
	return tasks
}

// zeroData is the reset sub-data for a task type. Simple tasks carry none.
func zeroData(typ TaskType) *TaskData {
	switch typ {
	case TaskExercise:
		return &TaskData{Distance: Float(0), Duration: Int(0)}
	case TaskCalories:
		return &TaskData{Calories: Int(0)}
	}
	return nil
}

type TaskStore struct {
	slots Slots
	log   *zap.SugaredLogger
	now   func() time.Time
	tasks []Task
}

// LoadTasks runs the rollover check and then overlays the saved completion
// state onto the catalog, in that order.
func LoadTasks(slots Slots, log *zap.SugaredLogger, now func() time.Time) (*TaskStore, error) {
	if now == nil {
		now = time.Now
	}
	s := &TaskStore{slots: slots, log: orNop(log), now: now, tasks: Catalog()}

	if _, err := s.Rollover(); err != nil {
		return nil, err
	}
	if err := s.overlay(); err != nil {
		return nil, err
	}
	return s, nil
}

// overlay copies completed and data from saved tasks with a catalog id.
// Saved ids outside the catalog are dropped.
func (s *TaskStore) overlay() error {
	var saved []Task
	ok, err := readSlot(s.slots, s.log, TasksKey, &saved)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		return nil
	}

	byID := make(map[string]Task, len(saved))
	for _, t := range saved {
		if _, seen := byID[t.ID]; !seen {
			byID[t.ID] = t
		}
	}
	for i := range s.tasks {
		if t, found := byID[s.tasks[i].ID]; found {
			s.tasks[i].Completed = t.Completed
			s.tasks[i].Data = t.Data.clone()
		}
	}
	return nil
}

// Tasks returns a copy of the current list in catalog order.
func (s *TaskStore) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		t.Data = t.Data.clone()
		out[i] = t
	}
	return out
}

func (s *TaskStore) Get(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	t := s.tasks[i]
	t.Data = t.Data.clone()
	return t, true
}

func (s *TaskStore) Summary() Summary {
	return Summarize(s.tasks)
}

// Toggle flips the completion of one task. An unknown id is a no-op and
// reports found=false.
func (s *TaskStore) Toggle(id string) (Summary, bool, error) {
	i := s.index(id)
	if i < 0 {
		return s.Summary(), false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	if err := s.save(); err != nil {
		return s.Summary(), true, err
	}
	return s.Summary(), true, nil
}

// UpdateData merges the set fields of patch into the task's data, creating it
// if absent. The shape is not checked against the task type.
func (s *TaskStore) UpdateData(id string, patch TaskData) (Summary, bool, error) {
	i := s.index(id)
	if i < 0 {
		return s.Summary(), false, nil
	}
	s.tasks[i].Data = s.tasks[i].Data.merge(patch)
	if err := s.save(); err != nil {
		return s.Summary(), true, err
	}
	return s.Summary(), true, nil
}

func (s *TaskStore) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) save() error {
	if err := writeSlot(s.slots, TasksKey, s.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (d *TaskData) clone() *TaskData {
	if d == nil {
		return nil
	}
	c := &TaskData{}
	if d.Distance != nil {
		c.Distance = Float(*d.Distance)
	}
	if d.Duration != nil {
		c.Duration = Int(*d.Duration)
	}
	if d.Calories != nil {
		c.Calories = Int(*d.Calories)
	}
	return c
}

func (d *TaskData) merge(p TaskData) *TaskData {
	out := d.clone()
	if out == nil {
		out = &TaskData{}
	}
	if p.Distance != nil {
		out.Distance = Float(*p.Distance)
	}
	if p.Duration != nil {
		out.Duration = Int(*p.Duration)
	}
	if p.Calories != nil {
		out.Calories = Int(*p.Calories)
	}
	return out
}

// DistanceOr0 and friends read optional sub-data.
func (d *TaskData) DistanceOr0() float64 {
	if d == nil || d.Distance == nil {
		return 0
	}
	return *d.Distance
}

func (d *TaskData) DurationOr0() int {
	if d == nil || d.Duration == nil {
		return 0
	}
	return *d.Duration
}

func (d *TaskData) CaloriesOr0() int {
	if d == nil || d.Calories == nil {
		return 0
	}
	return *d.Calories
}
