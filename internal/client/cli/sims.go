package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/simkeeper/internal/client/models"
)

// List prints one line per Sim in creation order.
func (a *App) List(ctx context.Context, _ []string) error {
	r := a.store.GetAllSims(ctx)
	if err := report(a, r); err != nil {
		return err
	}

	if len(r.Data) == 0 {
		a.println("No sims yet.")
		return nil
	}
	for _, s := range r.Data {
		a.printf("%s  %s  [%d]  %s\n", s.ID, formatMillis(s.UpdatedAt),
			a.store.GetMetadataCount(ctx, s.ID), models.GetLogPreview(s.Log, 60))
	}
	return nil
}

func (a *App) Create(ctx context.Context, _ []string) error {
	text, err := GetMultiline(a.reader, "Enter log text", a.out)
	if err != nil {
		return err
	}

	r := a.store.CreateSim(ctx, models.CreateSimInput{Log: &text})
	if err := report(a, r); err != nil {
		return err
	}
	a.println("Created sim", r.Data.ID)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter sim id to show")
	if err != nil {
		return err
	}

	r := a.store.GetSim(ctx, id)
	if err := report(a, r); err != nil {
		return err
	}

	s := r.Data
	a.println("ID:     ", s.ID)
	a.println("Created:", formatMillis(s.CreatedAt))
	a.println("Updated:", formatMillis(s.UpdatedAt))
	a.println("Log:")
	a.println(s.Log)

	md := a.store.GetAllMetadataForEntity(ctx, id)
	if md.Success && len(md.Data) > 0 {
		a.println("Metadata:")
		a.printMetadata(md.Data)
	}
	return nil
}

// Update replaces the Sim's log.
func (a *App) Update(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter sim id to update")
	if err != nil {
		return err
	}
	if !a.store.SimExists(ctx, id) {
		return report(a, a.store.GetSim(ctx, id))
	}

	text, err := GetMultiline(a.reader, "Enter new log text", a.out)
	if err != nil {
		return err
	}

	r := a.store.UpdateSim(ctx, id, models.UpdateSimInput{Log: &text})
	if err := report(a, r); err != nil {
		return err
	}
	a.println("Updated sim", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter sim id to delete")
	if err != nil {
		return err
	}

	r := a.store.DeleteSim(ctx, id)
	if err := report(a, r); err != nil {
		return err
	}
	a.println("Deleted sim", id)
	return nil
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format(time.DateTime)
}
