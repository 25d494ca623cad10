// Package terminal runs the contact form in an interactive terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-assessoria/pkg/contact"
	"github.com/goliatone/go-assessoria/pkg/model"
)

// Option configures a Form.
type Option func(*Form)

// WithTiming sets the controller delays.
func WithTiming(timing contact.Timing) Option {
	return func(f *Form) {
		f.timing = timing
	}
}

// WithScheduler overrides the timer source.
func WithScheduler(s contact.Scheduler) Option {
	return func(f *Form) {
		if s != nil {
			f.scheduler = s
		}
	}
}

// WithObserver registers the contact observer.
func WithObserver(o contact.Observer) Option {
	return func(f *Form) {
		if o != nil {
			f.observer = o
		}
	}
}

// Form prompts for every field of the contact form model and submits the
// answers through a contact controller.
type Form struct {
	driver    PromptDriver
	model     model.FormModel
	timing    contact.Timing
	scheduler contact.Scheduler
	observer  contact.Observer
}

// New builds a Form.
func New(driver PromptDriver, form model.FormModel, options ...Option) (*Form, error) {
	if driver == nil {
		return nil, errors.New("terminal: prompt driver is required")
	}
	if len(form.Fields) == 0 {
		return nil, errors.New("terminal: form has no fields")
	}
	f := &Form{
		driver:    driver,
		model:     form,
		timing:    contact.DefaultTiming(),
		scheduler: contact.SystemScheduler{},
		observer:  contact.NopObserver{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// Run asks every question, confirms, submits and prints the feedback lines.
// It returns the settled state. Declining the confirmation returns
// ErrAborted.
func (f *Form) Run(ctx context.Context) (contact.State, error) {
	answers := make([]contact.Input, 0, len(f.model.Fields))
	for _, field := range f.model.Fields {
		name, ok := contact.ParseField(field.Name)
		if !ok {
			continue
		}
		value, err := f.ask(ctx, name, field)
		if err != nil {
			return contact.State{}, err
		}
		answers = append(answers, contact.Input{Field: name, Value: value})
	}

	send, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Enviar mensagem?", Default: true})
	if err != nil {
		return contact.State{}, err
	}
	if !send {
		return contact.State{}, ErrAborted
	}
	return f.submit(ctx, answers)
}

func (f *Form) ask(ctx context.Context, name contact.Field, field model.Field) (string, error) {
	validate := fieldValidator(name, field)
	if field.Multiline() {
		return f.driver.TextArea(ctx, TextAreaConfig{
			Message:   field.Label,
			Help:      field.Placeholder,
			Validator: validate,
		})
	}

	value, err := f.driver.Input(ctx, InputConfig{
		Message:   field.Label,
		Help:      field.Placeholder,
		Validator: validate,
	})
	if err != nil {
		return "", err
	}
	if name == contact.FieldPhone {
		if masked := contact.FormatPhone(value); masked != "" && masked != value {
			if err := f.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, masked)); err != nil {
				return "", err
			}
		}
	}
	return value, nil
}

// fieldValidator combines the contact rule for name with the model's length
// limit.
func fieldValidator(name contact.Field, field model.Field) func(string) error {
	return func(value string) error {
		if name.Validated() {
			if msg := contact.ValidateField(name, value); msg != "" {
				return errors.New(msg)
			}
		}
		if field.MaxLength > 0 && name != contact.FieldPhone && utf8.RuneCountInString(value) > field.MaxLength {
			return fmt.Errorf("Máximo de %d caracteres.", field.MaxLength)
		}
		return nil
	}
}

// submit replays the answers into a controller bound to its own loop and
// waits for the submission to settle.
func (f *Form) submit(ctx context.Context, answers []contact.Input) (contact.State, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	loop := contact.NewLoop(len(answers) + 4)
	states := make(chan contact.State, len(answers)+4)
	ctrl := contact.NewController(
		contact.WithTiming(f.timing),
		contact.WithScheduler(f.scheduler),
		contact.WithLoop(loop),
		contact.WithObserver(f.observer),
		contact.WithStateListener(func(s contact.State) {
			select {
			case states <- s:
			case <-ctx.Done():
			}
		}),
	)

	g.Go(func() error {
		err := loop.Run(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, contact.ErrLoopStopped) {
			return nil
		}
		return err
	})

	var settled contact.State
	g.Go(func() error {
		loop.Post(func() {
			for _, in := range answers {
				ctrl.Dispatch(in)
			}
			ctrl.Submit()
		})

		shown := ""
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case s := <-states:
				if s.Feedback.Message != "" && s.Feedback.Message != shown {
					shown = s.Feedback.Message
					if err := f.driver.Info(ctx, shown); err != nil {
						return err
					}
				}
				if s.Phase == contact.PhaseSettledFailed {
					for _, field := range contact.RequiredFields() {
						if msg := s.Errors.Get(field); msg != "" {
							if err := f.driver.Info(ctx, "  - "+msg); err != nil {
								return err
							}
						}
					}
				}
				if s.Phase == contact.PhaseSettledOK || s.Phase == contact.PhaseSettledFailed {
					settled = s
					cancel()
					return nil
				}
			}
		}
	})

	err := g.Wait()
	ctrl.Close()
	if err != nil {
		return contact.State{}, fmt.Errorf("terminal: submit: %w", err)
	}
	return settled, nil
}
