package cli

import (
	"context"

	"github.com/dmitrijs2005/simkeeper/internal/client/models"
)

func (a *App) printMetadata(items []models.Metadata) {
	for _, md := range items {
		a.printf("  %s  %s = %s\n", md.ID, md.Key, models.GetValuePreview(md.Value, 0))
	}
}

func (a *App) Meta(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter sim id")
	if err != nil {
		return err
	}

	r := a.store.GetAllMetadataForEntity(ctx, id)
	if err := report(a, r); err != nil {
		return err
	}
	if len(r.Data) == 0 {
		a.println("No metadata.")
		return nil
	}
	a.printMetadata(r.Data)
	return nil
}

// AddMeta refuses to add past the per-Sim soft cap.
func (a *App) AddMeta(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter sim id")
	if err != nil {
		return err
	}

	if a.store.SimExists(ctx, id) && !a.store.CanAddMetadata(ctx, id) {
		a.printf("Sim already has %d metadata entries.\n", models.MaxMetadataPerSim)
		return nil
	}

	key, err := GetSimpleText(a.reader, "Enter key", a.out)
	if err != nil {
		return err
	}
	value, err := GetSimpleText(a.reader, "Enter value", a.out)
	if err != nil {
		return err
	}

	r := a.store.CreateMetadata(ctx, models.CreateMetadataInput{EntityID: id, Key: key, Value: value})
	if err := report(a, r); err != nil {
		return err
	}
	a.println("Created metadata", r.Data.ID)
	return nil
}

func (a *App) EditMeta(ctx context.Context, args []string) error {
	simID, err := a.argOrPrompt(args, 0, "Enter sim id")
	if err != nil {
		return err
	}
	mdID, err := a.argOrPrompt(args, 1, "Enter metadata id")
	if err != nil {
		return err
	}

	if found := a.store.GetMetadata(ctx, simID, mdID); !found.Success {
		return report(a, found)
	}

	key, err := GetOptionalText(a.reader, "Enter new key", a.out)
	if err != nil {
		return err
	}
	value, err := GetOptionalText(a.reader, "Enter new value", a.out)
	if err != nil {
		return err
	}

	r := a.store.UpdateMetadata(ctx, simID, mdID, models.UpdateMetadataInput{Key: key, Value: value})
	if err := report(a, r); err != nil {
		return err
	}
	a.printf("Updated metadata %s: %s = %s\n", r.Data.ID, r.Data.Key, models.GetValuePreview(r.Data.Value, 0))
	return nil
}

func (a *App) DelMeta(ctx context.Context, args []string) error {
	simID, err := a.argOrPrompt(args, 0, "Enter sim id")
	if err != nil {
		return err
	}
	mdID, err := a.argOrPrompt(args, 1, "Enter metadata id to delete")
	if err != nil {
		return err
	}

	r := a.store.DeleteMetadata(ctx, simID, mdID)
	if err := report(a, r); err != nil {
		return err
	}
	a.println("Deleted metadata", mdID)
	return nil
}

func (a *App) FindMeta(ctx context.Context, args []string) error {
	simID, err := a.argOrPrompt(args, 0, "Enter sim id")
	if err != nil {
		return err
	}
	key, err := a.argOrPrompt(args, 1, "Enter key")
	if err != nil {
		return err
	}

	r := a.store.FindMetadataByKey(ctx, simID, key)
	if err := report(a, r); err != nil {
		return err
	}
	if r.Data == nil {
		a.println("No metadata with key", key)
		return nil
	}
	a.printMetadata([]models.Metadata{*r.Data})
	return nil
}

func (a *App) Stats(ctx context.Context, args []string) error {
	simID, err := a.argOrPrompt(args, 0, "Enter sim id")
	if err != nil {
		return err
	}

	r := a.store.GetMetadataStats(ctx, simID)
	if err := report(a, r); err != nil {
		return err
	}

	st := r.Data
	a.printf("Entries:        %d (%d with content, %d empty)\n", st.Count, st.HasContent, st.IsEmpty)
	a.printf("Key length:     total %d, average %.1f\n", st.TotalKeyLength, st.AverageKeyLength)
	a.printf("Value length:   total %d, average %.1f\n", st.TotalValueLength, st.AverageValueLength)
	return nil
}
