package wire

import (
	"copydesk/internal/domain/models"
)

// FromProject converts a model aggregate to its wire form, including all
// nested collections. Nil collections become empty lists so the transport
// never carries JSON null where the schema expects an array.
func FromProject(p *models.Project) *Project {
	out := &Project{
		ID:        p.ID,
		Name:      p.Name,
		Personas:  make([]Persona, 0, len(p.Personas)),
		Folders:   make([]Folder, 0, len(p.Folders)),
		Documents: make([]Document, 0, len(p.Documents)),
		Snippets:  make([]Snippet, 0, len(p.Snippets)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.BrandVoice != nil {
		out.BrandVoice = FromBrandVoice(p.BrandVoice)
	}
	for i := range p.Personas {
		out.Personas = append(out.Personas, *FromPersona(&p.Personas[i]))
	}
	for i := range p.Folders {
		out.Folders = append(out.Folders, *FromFolder(&p.Folders[i]))
	}
	for i := range p.Documents {
		out.Documents = append(out.Documents, *FromDocument(&p.Documents[i]))
	}
	for i := range p.Snippets {
		out.Snippets = append(out.Snippets, *FromSnippet(&p.Snippets[i]))
	}
	return out
}

// ToProject converts a wire project back to the model schema.
func ToProject(p *Project) *models.Project {
	out := &models.Project{
		ID:        p.ID,
		Name:      p.Name,
		Personas:  make([]models.Persona, 0, len(p.Personas)),
		Folders:   make([]models.Folder, 0, len(p.Folders)),
		Documents: make([]models.Document, 0, len(p.Documents)),
		Snippets:  make([]models.Snippet, 0, len(p.Snippets)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.BrandVoice != nil {
		out.BrandVoice = ToBrandVoice(p.BrandVoice)
	}
	for i := range p.Personas {
		out.Personas = append(out.Personas, *ToPersona(&p.Personas[i]))
	}
	for i := range p.Folders {
		out.Folders = append(out.Folders, *ToFolder(&p.Folders[i]))
	}
	for i := range p.Documents {
		out.Documents = append(out.Documents, *ToDocument(&p.Documents[i]))
	}
	for i := range p.Snippets {
		out.Snippets = append(out.Snippets, *ToSnippet(&p.Snippets[i]))
	}
	return out
}

func FromDocument(d *models.Document) *Document {
	return &Document{
		ID:              d.ID,
		ProjectID:       d.ProjectID,
		FolderID:        d.FolderID,
		BaseTitle:       d.BaseTitle,
		Title:           d.Title,
		Version:         d.Version,
		ParentVersionID: d.ParentVersionID,
		Content:         d.Content,
		WordCount:       d.Metadata.WordCount,
		CharCount:       d.Metadata.CharCount,
		Tags:            d.Metadata.Tags,
		TemplateID:      d.Metadata.TemplateID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func ToDocument(d *Document) *models.Document {
	return &models.Document{
		ID:              d.ID,
		ProjectID:       d.ProjectID,
		FolderID:        d.FolderID,
		BaseTitle:       d.BaseTitle,
		Title:           d.Title,
		Version:         d.Version,
		ParentVersionID: d.ParentVersionID,
		Content:         d.Content,
		Metadata: models.DocumentMetadata{
			WordCount:  d.WordCount,
			CharCount:  d.CharCount,
			Tags:       d.Tags,
			TemplateID: d.TemplateID,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromFolder(f *models.Folder) *Folder {
	return &Folder{
		ID:             f.ID,
		ProjectID:      f.ProjectID,
		ParentFolderID: f.ParentFolderID,
		Name:           f.Name,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func ToFolder(f *Folder) *models.Folder {
	return &models.Folder{
		ID:             f.ID,
		ProjectID:      f.ProjectID,
		ParentFolderID: f.ParentFolderID,
		Name:           f.Name,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func FromPersona(p *models.Persona) *Persona {
	return &Persona{
		ID:             p.ID,
		ProjectID:      p.ProjectID,
		Name:           p.Name,
		Photo:          p.Photo,
		Demographics:   p.Demographics,
		Psychographics: p.Psychographics,
		PainPoints:     p.PainPoints,
		Goals:          p.Goals,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToPersona(p *Persona) *models.Persona {
	return &models.Persona{
		ID:             p.ID,
		ProjectID:      p.ProjectID,
		Name:           p.Name,
		Photo:          p.Photo,
		Demographics:   p.Demographics,
		Psychographics: p.Psychographics,
		PainPoints:     p.PainPoints,
		Goals:          p.Goals,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromSnippet(s *models.Snippet) *Snippet {
	return &Snippet{
		ID:          s.ID,
		ProjectID:   s.ProjectID,
		Name:        s.Name,
		Content:     s.Content,
		Description: s.Description,
		Tags:        s.Tags,
		UsageCount:  s.UsageCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func ToSnippet(s *Snippet) *models.Snippet {
	return &models.Snippet{
		ID:          s.ID,
		ProjectID:   s.ProjectID,
		Name:        s.Name,
		Content:     s.Content,
		Description: s.Description,
		Tags:        s.Tags,
		UsageCount:  s.UsageCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromBrandVoice(b *models.BrandVoice) *BrandVoice {
	return &BrandVoice{
		BrandName:        b.BrandName,
		Tone:             b.Tone,
		ApprovedPhrases:  b.ApprovedPhrases,
		ForbiddenPhrases: b.ForbiddenPhrases,
		Values:           b.Values,
		Mission:          b.Mission,
	}
}

func ToBrandVoice(b *BrandVoice) *models.BrandVoice {
	return &models.BrandVoice{
		BrandName:        b.BrandName,
		Tone:             b.Tone,
		ApprovedPhrases:  b.ApprovedPhrases,
		ForbiddenPhrases: b.ForbiddenPhrases,
		Values:           b.Values,
		Mission:          b.Mission,
	}
}
