package main

import (
	"time"

	"brickbybrick/models"
)

// Response shapes for the boundary. Each is built field by field from the
// stored record; nothing here reflects over storage types.

const dateLayout = "2006-01-02"

type categoryResponse struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	SubCategories []subCategoryResponse `json:"sub_categories"`
}

type subCategoryResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id"`
}

type phaseResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type tagResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type expenseResponse struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	Amount        float64              `json:"amount"`
	Description   string               `json:"description"`
	CreationDate  string               `json:"creation_date"`
	PurchaseDate  string               `json:"purchase_date"`
	Notes         string               `json:"notes"`
	Vendor        string               `json:"vendor"`
	CategoryID    uint                 `json:"category_id"`
	SubCategoryID *uint                `json:"sub_category_id"`
	PhaseID       *uint                `json:"phase_id"`
	Category      categoryResponse     `json:"category"`
	SubCategory   *subCategoryResponse `json:"sub_category"`
	Phase         *phaseResponse       `json:"phase"`
	Tags          []tagResponse        `json:"tags"`
	Attachments   []attachmentResponse `json:"attachments"`
}

type attachmentResponse struct {
	ID         uint   `json:"id"`
	ExpenseID  uint   `json:"expense_id"`
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	FileSize   int64  `json:"file_size"`
	UploadDate string `json:"upload_date"`
}

func toCategoryResponse(c *models.Category) categoryResponse {
	resp := categoryResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		SubCategories: []subCategoryResponse{},
	}
	for i := range c.SubCategories {
		resp.SubCategories = append(resp.SubCategories, toSubCategoryResponse(&c.SubCategories[i]))
	}
	return resp
}

func toSubCategoryResponse(sc *models.SubCategory) subCategoryResponse {
	return subCategoryResponse{
		ID:          sc.ID,
		Title:       sc.Title,
		Description: sc.Description,
		CategoryID:  sc.CategoryID,
	}
}

func toPhaseResponse(p *models.ConstructionPhase) phaseResponse {
	return phaseResponse{ID: p.ID, Title: p.Title, Description: p.Description}
}

func toTagResponse(t *models.Tag) tagResponse {
	return tagResponse{ID: t.ID, Title: t.Title}
}

func toAttachmentResponse(a *models.ExpenseAttachment) attachmentResponse {
	return attachmentResponse{
		ID:         a.ID,
		ExpenseID:  a.ExpenseID,
		Filename:   a.Filename,
		FilePath:   a.FilePath,
		FileSize:   a.FileSize,
		UploadDate: formatDate(a.UploadDate),
	}
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	resp := expenseResponse{
		ID:            e.ID,
		Title:         e.Title,
		Amount:        e.Amount,
		Description:   e.Description,
		CreationDate:  formatDate(e.CreationDate),
		PurchaseDate:  formatDate(e.PurchaseDate),
		Notes:         e.Notes,
		Vendor:        e.Vendor,
		CategoryID:    e.CategoryID,
		SubCategoryID: e.SubCategoryID,
		PhaseID:       e.PhaseID,
		Category:      toCategoryResponse(&e.Category),
		Tags:          []tagResponse{},
		Attachments:   []attachmentResponse{},
	}
	if e.SubCategory != nil {
		sc := toSubCategoryResponse(e.SubCategory)
		resp.SubCategory = &sc
	}
	if e.Phase != nil {
		p := toPhaseResponse(e.Phase)
		resp.Phase = &p
	}
	for i := range e.Tags {
		resp.Tags = append(resp.Tags, toTagResponse(&e.Tags[i]))
	}
	for i := range e.Attachments {
		resp.Attachments = append(resp.Attachments, toAttachmentResponse(&e.Attachments[i]))
	}
	return resp
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
