package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"brickbybrick/pkg/filestore"
	"brickbybrick/store"
)

const maxAttachmentSize = 20 * 1024 * 1024

type server struct {
	store *store.Store
	files *filestore.LocalDir
}

func setupRoutes(r *gin.Engine, s *server) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to BrickByBrick API"})
	})

	r.POST("/categories", s.createCategory)
	r.GET("/categories", s.listCategories)
	r.PUT("/categories/:id", s.updateCategory)
	r.DELETE("/categories/:id", s.deleteCategory)

	r.POST("/sub_categories", s.createSubCategory)
	r.GET("/sub_categories", s.listSubCategories)
	r.PUT("/sub_categories/:id", s.updateSubCategory)
	r.DELETE("/sub_categories/:id", s.deleteSubCategory)

	r.POST("/phases", s.createPhase)
	r.GET("/phases", s.listPhases)
	r.PUT("/phases/:id", s.updatePhase)
	r.DELETE("/phases/:id", s.deletePhase)

	r.POST("/tags", s.createTag)
	r.GET("/tags", s.listTags)
	r.PUT("/tags/:id", s.updateTag)
	r.DELETE("/tags/:id", s.deleteTag)

	r.POST("/expenses", s.createExpense)
	r.GET("/expenses", s.listExpenses)
	r.PUT("/expenses/:id", s.updateExpense)
	r.DELETE("/expenses/:id", s.deleteExpense)

	r.POST("/expenses/:id/attachments", s.uploadAttachment)
	r.GET("/expenses/:id/attachments", s.listAttachments)
	r.DELETE("/attachments/:id", s.deleteAttachment)

	// stored objects are served straight off the content directory
	r.Static("/uploads", s.files.Base())
}

// writeStoreError translates the store taxonomy into status codes. Guarded
// deletes come back as 400 with the reference count in the message.
func writeStoreError(c *gin.Context, err error) {
	var ref *store.ReferencedError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &ref):
		c.JSON(http.StatusBadRequest, gin.H{"error": ref.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func listParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return skip, limit
}

// --- Categories ---

type categoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *server) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := s.store.CreateCategory(req.Title, req.Description)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (s *server) listCategories(c *gin.Context) {
	skip, limit := listParams(c)
	cats, err := s.store.ListCategories(skip, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	resp := []categoryResponse{}
	for i := range cats {
		resp = append(resp, toCategoryResponse(&cats[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) updateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := s.store.UpdateCategory(id, req.Title, req.Description)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (s *server) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteCategory(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Sub-categories ---

type subCategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id" binding:"required"`
}

func (s *server) createSubCategory(c *gin.Context) {
	var req subCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sc, err := s.store.CreateSubCategory(req.Title, req.Description, req.CategoryID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubCategoryResponse(sc))
}

func (s *server) listSubCategories(c *gin.Context) {
	skip, limit := listParams(c)
	var categoryID uint
	if v := c.Query("category_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		categoryID = uint(parsed)
	}
	subs, err := s.store.ListSubCategories(categoryID, skip, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	resp := []subCategoryResponse{}
	for i := range subs {
		resp = append(resp, toSubCategoryResponse(&subs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) updateSubCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req subCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sc, err := s.store.UpdateSubCategory(id, req.Title, req.Description, req.CategoryID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubCategoryResponse(sc))
}

func (s *server) deleteSubCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteSubCategory(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Phases ---

type phaseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *server) createPhase(c *gin.Context) {
	var req phaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.store.CreatePhase(req.Title, req.Description)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPhaseResponse(p))
}

func (s *server) listPhases(c *gin.Context) {
	skip, limit := listParams(c)
	phases, err := s.store.ListPhases(skip, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	resp := []phaseResponse{}
	for i := range phases {
		resp = append(resp, toPhaseResponse(&phases[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) updatePhase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req phaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.store.UpdatePhase(id, req.Title, req.Description)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPhaseResponse(p))
}

func (s *server) deletePhase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeletePhase(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Tags ---

type tagRequest struct {
	Title string `json:"title" binding:"required"`
}

func (s *server) createTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := s.store.CreateTag(req.Title)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTagResponse(t))
}

func (s *server) listTags(c *gin.Context) {
	skip, limit := listParams(c)
	tags, err := s.store.ListTags(skip, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	resp := []tagResponse{}
	for i := range tags {
		resp = append(resp, toTagResponse(&tags[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) updateTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := s.store.UpdateTag(id, req.Title)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTagResponse(t))
}

func (s *server) deleteTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteTag(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Expenses ---

type expenseRequest struct {
	Title         string  `json:"title" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Description   string  `json:"description"`
	PurchaseDate  string  `json:"purchase_date"`
	Notes         string  `json:"notes"`
	Vendor        string  `json:"vendor"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	SubCategoryID *uint   `json:"sub_category_id"`
	PhaseID       *uint   `json:"phase_id"`
	Tags          []uint  `json:"tags"`
}

func (r *expenseRequest) toInput(c *gin.Context) (store.ExpenseInput, bool) {
	in := store.ExpenseInput{
		Title:         r.Title,
		Amount:        r.Amount,
		Description:   r.Description,
		Notes:         r.Notes,
		Vendor:        r.Vendor,
		CategoryID:    r.CategoryID,
		SubCategoryID: r.SubCategoryID,
		PhaseID:       r.PhaseID,
		TagIDs:        r.Tags,
	}
	if r.PurchaseDate != "" {
		t, err := time.Parse(dateLayout, r.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_date must be YYYY-MM-DD"})
			return in, false
		}
		in.PurchaseDate = &t
	}
	return in, true
}

func (s *server) createExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	e, err := s.store.CreateExpense(in)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpenseResponse(e))
}

func (s *server) listExpenses(c *gin.Context) {
	skip, limit := listParams(c)
	expenses, err := s.store.ListExpenses(skip, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	resp := []expenseResponse{}
	for i := range expenses {
		resp = append(resp, toExpenseResponse(&expenses[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) updateExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	e, err := s.store.UpdateExpense(id, in)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpenseResponse(e))
}

func (s *server) deleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteExpense(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Attachments ---

func (s *server) uploadAttachment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > maxAttachmentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 20MB)"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "open upload failed"})
		return
	}
	defer src.Close()
	att, err := s.store.CreateAttachment(id, file.Filename, src)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttachmentResponse(att))
}

func (s *server) listAttachments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	atts, err := s.store.ListAttachments(id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	resp := []attachmentResponse{}
	for i := range atts {
		resp = append(resp, toAttachmentResponse(&atts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) deleteAttachment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteAttachment(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
