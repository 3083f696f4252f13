package facade

import (
	"context"

	"github.com/pennywise/client/internal/preferences"
)

// DisplayMode returns the stored list/cards preference. A storage failure
// falls back to the list mode.
func (f *TransactionFacade) DisplayMode(ctx context.Context) preferences.DisplayMode {
	mode, err := f.prefs.DisplayMode(ctx)
	if err != nil {
		f.log.Warn().Err(err).Msg("Failed to read display mode")
		return preferences.DisplayList
	}
	return mode
}

// ToggleDisplayMode switches between list and cards and stores the choice.
func (f *TransactionFacade) ToggleDisplayMode(ctx context.Context) (preferences.DisplayMode, error) {
	next := f.DisplayMode(ctx).Toggle()
	if err := f.prefs.SetDisplayMode(ctx, next); err != nil {
		return f.DisplayMode(ctx), err
	}
	return next, nil
}

func (f *TransactionFacade) Language(ctx context.Context) string {
	lang, err := f.prefs.Language(ctx)
	if err != nil {
		f.log.Warn().Err(err).Msg("Failed to read language")
		return preferences.DefaultLanguage
	}
	return lang
}

func (f *TransactionFacade) SetLanguage(ctx context.Context, code string) error {
	return f.prefs.SetLanguage(ctx, code)
}
