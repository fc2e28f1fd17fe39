package task

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SampleTasks returns the sample set installed into an empty store on first
// start. IDs are fixed so the seed is recognizable and stable.
func SampleTasks() []*Task {
	now := time.Now().UnixMilli()
	hour := int64(time.Hour / time.Millisecond)
	day := 24 * hour

	return []*Task{
		{
			ID:          "1",
			Title:       "Send Weekly Newsletter",
			Description: "Automated email campaign to subscribers",
			TriggerType: Automatic,
			Inputs:      []Input{{Name: "subject", DefaultValue: "Weekly Update"}},
			Files:       []File{},
			Apps:        []string{"gmail"},
			CreatedAt:   now - hour,
			UpdatedAt:   now - hour/2,
			LastRun:     ptr(now - day),
			RunCount:    12,
		},
		{
			ID:          "2",
			Title:       "Generate Monthly Report",
			Description: "Compile analytics and create PDF report",
			TriggerType: Manual,
			Inputs:      []Input{{Name: "month", DefaultValue: "Current"}},
			Files:       []File{},
			Apps:        []string{"sheets", "drive"},
			CreatedAt:   now - 2*hour,
			UpdatedAt:   now - 2*hour,
			RunCount:    0,
		},
		{
			ID:          "3",
			Title:       "Backup Database",
			Description: "Create automated database backup to cloud storage",
			TriggerType: Automatic,
			Inputs:      []Input{},
			Files:       []File{},
			Apps:        []string{"drive"},
			CreatedAt:   now - day,
			UpdatedAt:   now - hour,
			LastRun:     ptr(now - hour),
			RunCount:    45,
		},
		{
			ID:          "4",
			Title:       "Sync Calendar Events",
			Description: "Synchronize events across multiple calendars",
			TriggerType: Automatic,
			Inputs:      []Input{},
			Files:       []File{},
			Apps:        []string{"calendar"},
			CreatedAt:   now - 3*hour,
			UpdatedAt:   now - hour - hour/2,
			LastRun:     ptr(now - 2*hour),
			RunCount:    8,
		},
		{
			ID:          "5",
			Title:       "Post Social Media Update",
			Description: "Share content across social platforms",
			TriggerType: Manual,
			Inputs:      []Input{{Name: "message"}, {Name: "hashtags"}},
			Files:       []File{},
			Apps:        []string{"slack"},
			CreatedAt:   now - 4*hour,
			UpdatedAt:   now - 4*hour,
			RunCount:    0,
		},
		{
			ID:          "6",
			Title:       "Create Project Tasks",
			Description: "Import tasks from template into project board",
			TriggerType: Manual,
			Inputs:      []Input{{Name: "project"}},
			Files:       []File{},
			Apps:        []string{"trello", "notion"},
			CreatedAt:   now - 2*day,
			UpdatedAt:   now - day,
			LastRun:     ptr(now - day),
			RunCount:    3,
		},
		{
			ID:          "7",
			Title:       "Analyze GitHub Issues",
			Description: "Review and categorize open issues in repository",
			TriggerType: Manual,
			Inputs:      []Input{{Name: "repository"}},
			Files:       []File{},
			Apps:        []string{"github"},
			CreatedAt:   now - 3*day,
			UpdatedAt:   now - 2*day,
			RunCount:    0,
		},
	}
}

// Seed installs the sample tasks when the store is empty. Existing data is
// never touched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Task{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := SampleTasks()
	if err := db.Create(&samples).Error; err != nil {
		return err
	}

	zap.L().Info("seeded sample tasks", zap.Int("count", len(samples)))
	return nil
}

func ptr(v int64) *int64 {
	return &v
}
