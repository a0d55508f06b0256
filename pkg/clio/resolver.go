package clio

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// personalInjuryArea is matched by substring against practice area names.
const personalInjuryArea = "personal injury"

// SplitName splits "LAST, FIRST" into (first, last); "FIRST LAST" is
// handled as a fallback for reports that don't use the comma form.
func SplitName(fullName string) (first, last string) {
	if i := strings.Index(fullName, ","); i >= 0 {
		return strings.TrimSpace(fullName[i+1:]), strings.TrimSpace(fullName[:i])
	}
	parts := strings.Fields(fullName)
	if len(parts) >= 2 {
		return parts[0], strings.Join(parts[1:], " ")
	}
	return strings.TrimSpace(fullName), ""
}

// FindOrCreateContact looks a person up by display name and creates them on
// a miss. Two concurrent approvals can still race this into a duplicate
// contact; the remote system has no uniqueness constraint to lean on.
func FindOrCreateContact(ctx context.Context, client Client, name, email, phone, address string) (int64, error) {
	existing, err := client.FindContactByName(ctx, name)
	if err != nil {
		return 0, eris.Wrap(err, "resolve contact: search")
	}
	if existing != nil {
		zap.L().Info("contact already exists",
			zap.String("name", existing.Name),
			zap.Int64("contact_id", existing.ID),
		)
		return existing.ID, nil
	}

	first, last := SplitName(name)
	contact, err := client.CreateContact(ctx, ContactRequest{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		Address:   address,
	})
	if err != nil {
		return 0, eris.Wrap(err, "resolve contact: create")
	}

	zap.L().Info("contact created",
		zap.String("name", contact.Name),
		zap.Int64("contact_id", contact.ID),
	)
	return contact.ID, nil
}

// ResolveMatter returns a matter id for the pipeline to work against. A
// caller-supplied id is trusted as-is. Otherwise a new matter is created
// under the contact, attached to the personal-injury practice area when one
// is discoverable. The resolved practice area id (0 when none) is returned
// alongside so stage lookups can scope to it.
func ResolveMatter(ctx context.Context, client Client, existingID, contactID int64, description string, attorneyID int64) (*Matter, int64, error) {
	practiceAreaID := findPersonalInjuryArea(ctx, client)

	if existingID != 0 {
		return &Matter{ID: existingID}, practiceAreaID, nil
	}
	if contactID == 0 {
		return nil, practiceAreaID, eris.New("resolve matter: no client contact available")
	}

	matter, err := client.CreateMatter(ctx, MatterRequest{
		ClientID:              contactID,
		Description:           description,
		ResponsibleAttorneyID: attorneyID,
		PracticeAreaID:        practiceAreaID,
	})
	if err != nil {
		return nil, practiceAreaID, eris.Wrap(err, "resolve matter: create")
	}

	zap.L().Info("matter created",
		zap.Int64("matter_id", matter.ID),
		zap.String("display_number", matter.DisplayNumber),
	)
	return matter, practiceAreaID, nil
}

// findPersonalInjuryArea returns the id of the practice area whose name
// contains "personal injury", or 0. Lookup failures are tolerated; a
// matter without a practice area is still usable.
func findPersonalInjuryArea(ctx context.Context, client Client) int64 {
	areas, err := client.PracticeAreas(ctx)
	if err != nil {
		zap.L().Warn("practice area lookup failed", zap.Error(err))
		return 0
	}
	for _, pa := range areas {
		if strings.Contains(strings.ToLower(pa.Name), personalInjuryArea) {
			return pa.ID
		}
	}
	return 0
}
