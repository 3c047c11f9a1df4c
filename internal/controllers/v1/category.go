package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/notify"
	"github.com/pocketledger/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategories)
	}
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PUT("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
	{
		r.OPTIONS("/:id/allocations", OptionsCategoryAllocations)
		r.POST("/:id/allocations", CreateAllocation)
		r.OPTIONS("/:id/goals", OptionsCategoryGoals)
		r.POST("/:id/goals", CreateGoal)
		r.OPTIONS("/:id/transactions", OptionsCategoryTransactions)
		r.GET("/:id/transactions", GetCategoryTransactions)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Category{}, httputil.OptionsGetPutDelete)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/allocations [options]
func OptionsCategoryAllocations(c *gin.Context) {
	resourceOptionsDetail(c, models.Category{}, httputil.OptionsPost)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/goals [options]
func OptionsCategoryGoals(c *gin.Context) {
	resourceOptionsDetail(c, models.Category{}, httputil.OptionsPost)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/transactions [options]
func OptionsCategoryTransactions(c *gin.Context) {
	resourceOptionsDetail(c, models.Category{}, httputil.OptionsGet)
}

// @Summary		Create categories
// @Description	Creates new categories
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryCreateResponse
// @Failure		400			{object}	CategoryCreateResponse
// @Failure		500			{object}	CategoryCreateResponse
// @Param			categories	body		[]CategoryEditable	true	"Categories"
// @Router			/v1/categories [post]
func CreateCategories(c *gin.Context) {
	var editables []CategoryEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CategoryCreateResponse{}

	for _, create := range editables {
		category := create.model()
		err = models.DB.Create(&category).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource := newCategory(c, category)
		r.Data = append(r.Data, CategoryResponse{Data: &apiResource})
	}

	if len(r.Data) > 0 {
		notify.Emit(c.Request.Context(), notify.CategoryList())
	}

	c.JSON(status, r)
}

// parseCategoryQuery binds the query and resolves the window. start
// defaults to the current month and end to start.
func parseCategoryQuery(c *gin.Context) (CategoryQuery, ExpandOptions, error) {
	var query CategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return CategoryQuery{}, ExpandOptions{}, err
	}

	expand, err := ParseExpand(query.Expand)
	if err != nil {
		return CategoryQuery{}, ExpandOptions{}, err
	}

	if query.Start.IsZero() {
		query.Start = types.MonthOf(time.Now())
	}

	if query.End.IsZero() || query.End.Before(query.Start) {
		query.End = query.Start
	}

	return query, expand, nil
}

// readModel adds the parts of the read model requested by expand.
func readModel(c *gin.Context, db *gorm.DB, model models.Category, expand ExpandOptions, start, end types.Month) (Category, error) {
	category := newCategory(c, model)

	var goal *models.Goal
	if expand.IncludeStats || expand.IncludeGoal {
		var goals []models.Goal
		err := db.Where(&models.Goal{CategoryID: model.ID}).Limit(1).Find(&goals).Error
		if err != nil {
			return Category{}, err
		}

		if len(goals) == 1 {
			goal = &goals[0]
		}
	}

	if expand.IncludeGoal && goal != nil {
		g := newGoal(c, *goal)
		category.Goal = &g
	}

	if expand.IncludeAllocations {
		var allocations []models.Allocation
		err := db.
			Where("category_id = ?", model.ID).
			Where("month >= date(?) AND month < date(?)", start, end.AddDate(0, 1)).
			Order("month ASC").
			Find(&allocations).Error
		if err != nil {
			return Category{}, err
		}

		category.Allocations = make([]Allocation, 0, len(allocations))
		for _, a := range allocations {
			category.Allocations = append(category.Allocations, newAllocation(c, a))
		}
	}

	if expand.IncludeStats {
		stats, err := models.CategoryStats(db, model.ID, start, end)
		if err != nil {
			return Category{}, err
		}

		allocation, err := models.AllocationFor(db, model.ID, start)
		if err != nil {
			return Category{}, err
		}

		var ledgerGoal *ledger.Goal
		if goal != nil {
			ledgerGoal = goal.Ledger()
		}

		var ledgerAllocation *ledger.Allocation
		if allocation != nil {
			ledgerAllocation = allocation.Ledger()
		}

		// Funding and progress always describe the start month, also
		// when the stats cover a longer window
		monthStats := stats
		if !end.Equal(start) {
			monthStats, err = models.CategoryStats(db, model.ID, start, start)
			if err != nil {
				return Category{}, err
			}
		}

		summary := ledger.Summarize(start, monthStats, ledgerGoal, ledgerAllocation)
		category.Stats = &stats
		category.Funding = summary.Funding
		category.Progress = &summary.Progress
	}

	return category, nil
}

// @Summary		Get categories
// @Description	Returns a list of categories. Stats, allocations and goals are added with the expand parameter.
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	CategoryListResponse
// @Failure		400		{object}	CategoryListResponse
// @Failure		500		{object}	CategoryListResponse
// @Router			/v1/categories [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			expand	query	string	false	"Comma separated list of stats, allocations and goal"
// @Param			start	query	string	false	"First month of the window in YYYY-MM-01 format. Defaults to the current month."
// @Param			end		query	string	false	"Last month of the window in YYYY-MM-01 format. Defaults to start."
// @Param			offset	query	uint	false	"The offset of the first category returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of categories to return. Defaults to 50."
func GetCategories(c *gin.Context) {
	query, expand, err := parseCategoryQuery(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryListResponse{
			Error: &e,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, query)

	q := models.DB.
		Order("name ASC").
		Where(&models.Category{Name: query.Name}, queryFields...)

	if query.Search != "" {
		q = q.Where("categories.name LIKE ? OR categories.note LIKE ?", "%"+query.Search+"%", "%"+query.Search+"%")
	}

	q = q.Offset(int(query.Offset))

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = query.Limit
	}
	q = q.Limit(limit)

	var categories []models.Category
	err = q.Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		apiResource, err := readModel(c, models.DB, category, expand, query.Start, query.End)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), CategoryListResponse{
				Error: &e,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: query.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get category
// @Description	Returns a specific category. Stats, allocations and goals are added with the expand parameter.
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	CategoryResponse
// @Failure		400		{object}	CategoryResponse
// @Failure		404		{object}	CategoryResponse
// @Failure		500		{object}	CategoryResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expand	query		string	false	"Comma separated list of stats, allocations and goal"
// @Param			start	query		string	false	"First month of the window in YYYY-MM-01 format. Defaults to the current month."
// @Param			end		query		string	false	"Last month of the window in YYYY-MM-01 format. Defaults to start."
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	query, expand, err := parseCategoryQuery(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{
			Error: &e,
		})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	apiResource, err := readModel(c, models.DB, category, expand, query.Start, query.End)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &apiResource})
}

// @Summary		Update category
// @Description	Updates an existing category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [put]
func UpdateCategory(c *gin.Context) {
	category, err := fromURI[models.Category](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	var data CategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	notify.Emit(c.Request.Context(), notify.CategoryList(), notify.Category(category.ID))

	apiResource := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &apiResource})
}

// @Summary		Delete category
// @Description	Deletes a category with its allocations and goal. Categories that transactions are assigned to cannot be deleted.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	category, err := fromURI[models.Category](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	notify.Emit(c.Request.Context(), notify.CategoryList(), notify.Category(category.ID))

	c.JSON(http.StatusNoContent, nil)
}
