package clio

import "context"

// mockClient implements Client for testing poll and resolver logic.
type mockClient struct {
	whoAmIFunc            func(ctx context.Context) (*User, error)
	customFieldsFunc      func(ctx context.Context) ([]CustomField, error)
	fieldIDMapFunc        func(ctx context.Context) (map[string]int64, error)
	findContactFunc       func(ctx context.Context, name string) (*Contact, error)
	createContactFunc     func(ctx context.Context, req ContactRequest) (*Contact, error)
	practiceAreasFunc     func(ctx context.Context) ([]PracticeArea, error)
	createMatterFunc      func(ctx context.Context, req MatterRequest) (*Matter, error)
	getMatterFunc         func(ctx context.Context, id int64) (*Matter, error)
	updateFieldsFunc      func(ctx context.Context, id int64, etag string, values []CustomFieldValue) error
	updateStageFunc       func(ctx context.Context, id int64, etag string, stageID int64) error
	stageByNameFunc       func(ctx context.Context, name string, practiceAreaID int64) (*MatterStage, error)
	calendarsFunc         func(ctx context.Context) ([]Calendar, error)
	createCalendarFunc    func(ctx context.Context, req CalendarEntryRequest) error
	documentTemplatesFunc func(ctx context.Context) ([]DocumentTemplate, error)
	findTemplateFunc      func(ctx context.Context, name string) (*DocumentTemplate, error)
	generateDocumentFunc  func(ctx context.Context, matterID, templateID int64, name string) (*Document, error)
	getDocumentFunc       func(ctx context.Context, id int64) (*Document, error)
	downloadDocumentFunc  func(ctx context.Context, id int64) ([]byte, error)
}

func (m *mockClient) WhoAmI(ctx context.Context) (*User, error) {
	if m.whoAmIFunc == nil {
		return &User{ID: 1, Name: "Test Attorney"}, nil
	}
	return m.whoAmIFunc(ctx)
}

func (m *mockClient) AuthURL() string { return "" }

func (m *mockClient) ExchangeCode(context.Context, string) error { return nil }

func (m *mockClient) TokenStatus() TokenStatus { return TokenStatus{} }

func (m *mockClient) CustomFields(ctx context.Context) ([]CustomField, error) {
	if m.customFieldsFunc == nil {
		return nil, nil
	}
	return m.customFieldsFunc(ctx)
}

func (m *mockClient) FieldIDMap(ctx context.Context) (map[string]int64, error) {
	if m.fieldIDMapFunc == nil {
		return nil, nil
	}
	return m.fieldIDMapFunc(ctx)
}

func (m *mockClient) FindContactByName(ctx context.Context, name string) (*Contact, error) {
	if m.findContactFunc == nil {
		return nil, nil
	}
	return m.findContactFunc(ctx, name)
}

func (m *mockClient) CreateContact(ctx context.Context, req ContactRequest) (*Contact, error) {
	if m.createContactFunc == nil {
		return &Contact{ID: 100}, nil
	}
	return m.createContactFunc(ctx, req)
}

func (m *mockClient) PracticeAreas(ctx context.Context) ([]PracticeArea, error) {
	if m.practiceAreasFunc == nil {
		return nil, nil
	}
	return m.practiceAreasFunc(ctx)
}

func (m *mockClient) CreateMatter(ctx context.Context, req MatterRequest) (*Matter, error) {
	if m.createMatterFunc == nil {
		return &Matter{ID: 200}, nil
	}
	return m.createMatterFunc(ctx, req)
}

func (m *mockClient) GetMatter(ctx context.Context, id int64) (*Matter, error) {
	if m.getMatterFunc == nil {
		return &Matter{ID: id}, nil
	}
	return m.getMatterFunc(ctx, id)
}

func (m *mockClient) UpdateMatterCustomFields(ctx context.Context, id int64, etag string, values []CustomFieldValue) error {
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

func (m *mockClient) StageByName(ctx context.Context, name string, practiceAreaID int64) (*MatterStage, error) {
	if m.stageByNameFunc == nil {
		return nil, nil
	}
	return m.stageByNameFunc(ctx, name, practiceAreaID)
}

func (m *mockClient) Calendars(ctx context.Context) ([]Calendar, error) {
	if m.calendarsFunc == nil {
		return nil, nil
	}
	return m.calendarsFunc(ctx)
}

func (m *mockClient) CreateCalendarEntry(ctx context.Context, req CalendarEntryRequest) error {
	if m.createCalendarFunc == nil {
		return nil
	}
	return m.createCalendarFunc(ctx, req)
}

func (m *mockClient) DocumentTemplates(ctx context.Context) ([]DocumentTemplate, error) {
	if m.documentTemplatesFunc == nil {
		return nil, nil
	}
	return m.documentTemplatesFunc(ctx)
}

func (m *mockClient) FindTemplateByName(ctx context.Context, name string) (*DocumentTemplate, error) {
	if m.findTemplateFunc == nil {
		return nil, nil
	}
	return m.findTemplateFunc(ctx, name)
}

func (m *mockClient) GenerateDocument(ctx context.Context, matterID, templateID int64, name string) (*Document, error) {
	if m.generateDocumentFunc == nil {
		return &Document{ID: 300, Name: name}, nil
	}
	return m.generateDocumentFunc(ctx, matterID, templateID, name)
}

func (m *mockClient) GetDocument(ctx context.Context, id int64) (*Document, error) {
	if m.getDocumentFunc == nil {
		return &Document{ID: id}, nil
	}
	return m.getDocumentFunc(ctx, id)
}

func (m *mockClient) DownloadDocument(ctx context.Context, id int64) ([]byte, error) {
	if m.downloadDocumentFunc == nil {
		return nil, nil
	}
	return m.downloadDocumentFunc(ctx, id)
}
