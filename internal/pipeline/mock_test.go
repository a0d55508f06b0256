package pipeline

import (
	"context"

	"github.com/richards-law/intake-cli/internal/model"
	"github.com/richards-law/intake-cli/pkg/clio"
)

// mockClient implements clio.Client with happy-path defaults; individual
// tests override the calls they care about.
type mockClient struct {
	whoAmIFunc           func(ctx context.Context) (*clio.User, error)
	fieldIDMapFunc       func(ctx context.Context) (map[string]int64, error)
	findContactFunc      func(ctx context.Context, name string) (*clio.Contact, error)
	createContactFunc    func(ctx context.Context, req clio.ContactRequest) (*clio.Contact, error)
	practiceAreasFunc    func(ctx context.Context) ([]clio.PracticeArea, error)
	createMatterFunc     func(ctx context.Context, req clio.MatterRequest) (*clio.Matter, error)
	getMatterFunc        func(ctx context.Context, id int64) (*clio.Matter, error)
	updateFieldsFunc     func(ctx context.Context, id int64, etag string, values []clio.CustomFieldValue) error
	updateStageFunc      func(ctx context.Context, id int64, etag string, stageID int64) error
	stageByNameFunc      func(ctx context.Context, name string, practiceAreaID int64) (*clio.MatterStage, error)
	calendarsFunc        func(ctx context.Context) ([]clio.Calendar, error)
	createCalendarFunc   func(ctx context.Context, req clio.CalendarEntryRequest) error
	findTemplateFunc     func(ctx context.Context, name string) (*clio.DocumentTemplate, error)
	generateDocumentFunc func(ctx context.Context, matterID, templateID int64, name string) (*clio.Document, error)
	getDocumentFunc      func(ctx context.Context, id int64) (*clio.Document, error)
	downloadDocumentFunc func(ctx context.Context, id int64) ([]byte, error)
}

func (m *mockClient) WhoAmI(ctx context.Context) (*clio.User, error) {
	if m.whoAmIFunc == nil {
		return &clio.User{ID: 1, Name: "Dana Richards"}, nil
	}
	return m.whoAmIFunc(ctx)
}

func (m *mockClient) AuthURL() string { return "" }

func (m *mockClient) ExchangeCode(context.Context, string) error { return nil }

func (m *mockClient) TokenStatus() clio.TokenStatus { return clio.TokenStatus{} }

func (m *mockClient) CustomFields(ctx context.Context) ([]clio.CustomField, error) {
	return nil, nil
}

func (m *mockClient) FieldIDMap(ctx context.Context) (map[string]int64, error) {
	if m.fieldIDMapFunc == nil {
		return map[string]int64{
			"Accident Date":     11,
			"Accident Location": 12,
			"Plaintiff Name":    13,
			"Defendant Name":    14,
		}, nil
	}
	return m.fieldIDMapFunc(ctx)
}

func (m *mockClient) FindContactByName(ctx context.Context, name string) (*clio.Contact, error) {
	if m.findContactFunc == nil {
		return nil, nil
	}
	return m.findContactFunc(ctx, name)
}

func (m *mockClient) CreateContact(ctx context.Context, req clio.ContactRequest) (*clio.Contact, error) {
	if m.createContactFunc == nil {
		return &clio.Contact{ID: 100, Name: req.FirstName + " " + req.LastName}, nil
	}
	return m.createContactFunc(ctx, req)
}

func (m *mockClient) PracticeAreas(ctx context.Context) ([]clio.PracticeArea, error) {
	if m.practiceAreasFunc == nil {
		return []clio.PracticeArea{{ID: 3, Name: "Personal Injury"}}, nil
	}
	return m.practiceAreasFunc(ctx)
}

func (m *mockClient) CreateMatter(ctx context.Context, req clio.MatterRequest) (*clio.Matter, error) {
	if m.createMatterFunc == nil {
		return &clio.Matter{ID: 200, DisplayNumber: "00200-Doe"}, nil
	}
	return m.createMatterFunc(ctx, req)
}

func (m *mockClient) GetMatter(ctx context.Context, id int64) (*clio.Matter, error) {
	if m.getMatterFunc == nil {
		return &clio.Matter{ID: id, Etag: "etag-1", DisplayNumber: "00200-Doe"}, nil
	}
	return m.getMatterFunc(ctx, id)
}

func (m *mockClient) UpdateMatterCustomFields(ctx context.Context, id int64, etag string, values []clio.CustomFieldValue) error {
	if m.updateFieldsFunc == nil {
		return nil
	}
	return m.updateFieldsFunc(ctx, id, etag, values)
}

func (m *mockClient) UpdateMatterStage(ctx context.Context, id int64, etag string, stageID int64) error {
	if m.updateStageFunc == nil {
		return nil
	}
	return m.updateStageFunc(ctx, id, etag, stageID)
}

func (m *mockClient) StageByName(ctx context.Context, name string, practiceAreaID int64) (*clio.MatterStage, error) {
	if m.stageByNameFunc == nil {
		return &clio.MatterStage{ID: 9, Name: name}, nil
	}
	return m.stageByNameFunc(ctx, name, practiceAreaID)
}

func (m *mockClient) Calendars(ctx context.Context) ([]clio.Calendar, error) {
	if m.calendarsFunc == nil {
		return []clio.Calendar{{ID: 5, Name: "Dana Richards"}}, nil
	}
	return m.calendarsFunc(ctx)
}

func (m *mockClient) CreateCalendarEntry(ctx context.Context, req clio.CalendarEntryRequest) error {
	if m.createCalendarFunc == nil {
		return nil
	}
	return m.createCalendarFunc(ctx, req)
}

func (m *mockClient) DocumentTemplates(ctx context.Context) ([]clio.DocumentTemplate, error) {
	return nil, nil
}

func (m *mockClient) FindTemplateByName(ctx context.Context, name string) (*clio.DocumentTemplate, error) {
	if m.findTemplateFunc == nil {
		return &clio.DocumentTemplate{ID: 7, Name: "Personal Injury Retainer Agreement"}, nil
	}
	return m.findTemplateFunc(ctx, name)
}

func (m *mockClient) GenerateDocument(ctx context.Context, matterID, templateID int64, name string) (*clio.Document, error) {
	if m.generateDocumentFunc == nil {
		return &clio.Document{ID: 300, Name: name}, nil
	}
	return m.generateDocumentFunc(ctx, matterID, templateID, name)
}

func (m *mockClient) GetDocument(ctx context.Context, id int64) (*clio.Document, error) {
	if m.getDocumentFunc == nil {
		return &clio.Document{ID: id, LatestVersion: &clio.DocumentVersion{ID: 55}}, nil
	}
	return m.getDocumentFunc(ctx, id)
}

func (m *mockClient) DownloadDocument(ctx context.Context, id int64) ([]byte, error) {
	if m.downloadDocumentFunc == nil {
		return []byte("%PDF-1.7 remote"), nil
	}
	return m.downloadDocumentFunc(ctx, id)
}

// mockMailer records the email it was asked to send.
type mockMailer struct {
	sent     []model.EmailData
	sendFunc func(ctx context.Context, data model.EmailData) error
}

func (m *mockMailer) SendClientEmail(ctx context.Context, data model.EmailData) error {
	if m.sendFunc != nil {
		if err := m.sendFunc(ctx, data); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, data)
	return nil
}
