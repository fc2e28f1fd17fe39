package task

import (
	"strings"

	"taskpalette/pkg/errutil"
)

// Patch is the schema for partial updates. Nil fields are left untouched;
// non-nil fields replace the stored value wholesale (inputs, files and apps
// are replaced as sequences, not merged element-wise).
type Patch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	TriggerType *TriggerType `json:"triggerType"`
	Inputs      *[]Input     `json:"inputs"`
	Files       *[]File      `json:"files"`
	Apps        *[]string    `json:"apps"`
}

func (p *Patch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errutil.ValidationFailed("title must not be empty")
	}
	if p.TriggerType != nil && p.TriggerType.String() == "" {
		return errutil.ValidationFailed("triggerType must be manual or automatic")
	}
	if p.Inputs != nil {
		if err := validateInputs(*p.Inputs); err != nil {
			return err
		}
	}
	return nil
}

// apply merges the patch onto t. The caller owns timestamp bookkeeping.
func (p *Patch) apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.TriggerType != nil {
		t.TriggerType = *p.TriggerType
	}
	if p.Inputs != nil {
		t.Inputs = *p.Inputs
	}
	if p.Files != nil {
		t.Files = *p.Files
	}
	if p.Apps != nil {
		t.Apps = *p.Apps
	}
}

// validateInputs rejects duplicate input names, compared case-insensitively.
func validateInputs(inputs []Input) error {
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		name := strings.ToLower(strings.TrimSpace(in.Name))
		if name == "" {
			return errutil.ValidationFailed("input name must not be empty")
		}
		if _, ok := seen[name]; ok {
			return errutil.ValidationFailed("duplicate input name: " + in.Name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
