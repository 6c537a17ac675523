package wizard

import (
	"strings"

	"forpharma-console/internal/domain/entity"
)

// stepGuard decides whether the wizard may leave a step forwards.
type stepGuard func(s *entity.WizardState) bool

type stepTransition struct {
	next    entity.WizardStep
	back    entity.WizardStep
	hasNext bool
	hasBack bool
	guard   stepGuard
}

func always(*entity.WizardState) bool { return true }

func basicInfoComplete(s *entity.WizardState) bool {
	d := s.Doctor
	for _, v := range []string{d.Name, d.Email, d.Phone, d.Specialization} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Hospital and chemist associations are optional, so only the first step is gated.
var stepTransitions = map[entity.WizardStep]stepTransition{
	entity.StepBasicInfo: {
		next: entity.StepHospitalAssociations, hasNext: true,
		guard: basicInfoComplete,
	},
	entity.StepHospitalAssociations: {
		next: entity.StepChemistAssociations, hasNext: true,
		back: entity.StepBasicInfo, hasBack: true,
		guard: always,
	},
	entity.StepChemistAssociations: {
		next: entity.StepReview, hasNext: true,
		back: entity.StepHospitalAssociations, hasBack: true,
		guard: always,
	},
	entity.StepReview: {
		back: entity.StepChemistAssociations, hasBack: true,
		guard: always,
	},
}

// IsStepValid evaluates the guard of the current step.
func IsStepValid(s *entity.WizardState) bool {
	t, ok := stepTransitions[s.Step]
	if !ok {
		return false
	}
	return t.guard(s)
}

func (w *Wizard) IsStepValid() bool {
	return IsStepValid(w.state)
}

// CanAdvance reports whether GoNext would move.
func (w *Wizard) CanAdvance() bool {
	t, ok := stepTransitions[w.state.Step]
	return ok && t.hasNext && t.guard(w.state)
}

func (w *Wizard) GoNext() error {
	t, ok := stepTransitions[w.state.Step]
	if !ok || !t.hasNext {
		return ErrAtLastStep
	}
	if !t.guard(w.state) {
		return ErrStepInvalid
	}
	w.state.Step = t.next
	return nil
}

// GoBack moves one step back. On the first step it does nothing and returns
// exit=true: the caller leaves the wizard.
func (w *Wizard) GoBack() (exit bool) {
	t, ok := stepTransitions[w.state.Step]
	if !ok || !t.hasBack {
		return true
	}
	w.state.Step = t.back
	return false
}

// GoToStep jumps to an already visited step.
func (w *Wizard) GoToStep(step entity.WizardStep) error {
	if !step.Valid() || step > w.state.Step {
		return ErrStepUnreachable
	}
	w.state.Step = step
	return nil
}

// ReadyToSubmit holds on the review step when the basic information is complete.
func ReadyToSubmit(s *entity.WizardState) error {
	if s.Step != entity.LastWizardStep || !basicInfoComplete(s) {
		return ErrNotReadyToSubmit
	}
	return nil
}
